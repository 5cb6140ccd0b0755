package chainstore

import (
	"encoding/hex"
	"fmt"

	"github.com/novaguard/novachain/consensus"
)

func hashHex(h consensus.Hash32) string {
	return hex.EncodeToString(h[:])
}

func hashFromHex(s string) (consensus.Hash32, error) {
	var h consensus.Hash32
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("chainstore: bad hash hex: %w", err)
	}
	if len(b) != len(h) {
		return h, fmt.Errorf("chainstore: bad hash length %d", len(b))
	}
	copy(h[:], b)
	return h, nil
}

func outpointKey(op consensus.OutPoint) []byte {
	key := make([]byte, 36)
	copy(key[:32], op.TxHash[:])
	key[32] = byte(op.Index)
	key[33] = byte(op.Index >> 8)
	key[34] = byte(op.Index >> 16)
	key[35] = byte(op.Index >> 24)
	return key
}

func certKey(symbol string, ct consensus.CertType) []byte {
	return []byte(fmt.Sprintf("%s#%d", symbol, ct))
}
