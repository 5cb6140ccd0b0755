package consensus

import "github.com/novaguard/novachain/crypto"

// appendCompactSize appends n encoded as a CompactSize varint, the wire
// encoding's length-prefix convention.
func appendCompactSize(buf []byte, n uint64) []byte {
	switch {
	case n < 0xfd:
		return append(buf, byte(n))
	case n <= 0xffff:
		return append(buf, 0xfd, byte(n), byte(n>>8))
	case n <= 0xffffffff:
		return append(buf, 0xfe, byte(n), byte(n>>8), byte(n>>16), byte(n>>24))
	default:
		return append(buf, 0xff,
			byte(n), byte(n>>8), byte(n>>16), byte(n>>24),
			byte(n>>32), byte(n>>40), byte(n>>48), byte(n>>56))
	}
}

func appendU32LE(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendU64LE(buf []byte, v uint64) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}

// serializeBytes encodes tx in the wire layout the size and duplicate-hash
// rules are defined over. The validator never decodes this format — it
// only ever produces it from an
// already-parsed Tx, for the two consensus-visible uses of a byte
// representation: the size limit and the transaction hash.
func serializeBytes(tx *Tx) []byte {
	buf := make([]byte, 0, 256)
	buf = appendU32LE(buf, tx.Version)
	buf = appendCompactSize(buf, uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		buf = append(buf, in.PreviousOutput.TxHash[:]...)
		buf = appendU32LE(buf, in.PreviousOutput.Index)
		buf = appendCompactSize(buf, uint64(len(in.Script)))
		buf = append(buf, in.Script...)
		buf = appendU32LE(buf, in.Sequence)
	}
	buf = appendCompactSize(buf, uint64(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		buf = appendU64LE(buf, out.Value)
		buf = appendCompactSize(buf, uint64(len(out.Script)))
		buf = append(buf, out.Script...)
	}
	buf = appendU32LE(buf, tx.Locktime)
	return buf
}

// SerializedSize returns the wire-encoded length of tx, the quantity
// MaxTransactionSize bounds.
func SerializedSize(tx *Tx) int {
	return len(serializeBytes(tx))
}

// TxHash computes tx's identifying hash using p, for duplicate detection
// against the chain and mempool.
func TxHash(p crypto.Provider, tx *Tx) Hash32 {
	return Hash32(p.SHA3_256(serializeBytes(tx)))
}
