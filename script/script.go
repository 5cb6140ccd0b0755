// Package script adapts the (out-of-scope) script interpreter into the
// single entry point the validator needs: a pure consensus check over a
// previous output's locking script against the spending transaction. The
// Checker interface and VerifyFlags type it implements live in package
// consensus, since that is where they are consumed; this package only
// supplies concrete implementations.
package script

import (
	"bytes"

	"github.com/novaguard/novachain/consensus"
	"github.com/novaguard/novachain/crypto"
)

// NullChecker always reports success. It exists for unit tests exercising
// rules other than script semantics, where stubbing out signature
// verification keeps the fixture focused on the rule under test.
type NullChecker struct{}

func (NullChecker) CheckConsensus(consensus.Script, *consensus.Tx, int, consensus.VerifyFlags) (bool, error) {
	return true, nil
}

// KeyHashChecker implements a minimal pay-to-key-hash check: the previous
// output's script is the 32-byte SHA3-256 digest of a public key, and the
// spending input's script is the 32-byte preimage of that digest followed
// by a signature over the transaction. Covenant/timelock/vault/HTLC
// spending conditions are the script interpreter's business, not the
// validator's, so this checker only ever handles the single-signature
// case.
type KeyHashChecker struct {
	Provider  crypto.Provider
	SighashFn func(tx *consensus.Tx, inputIndex int) ([32]byte, error)
}

// ErrScriptFormat is returned when prevScript or the spending script do not
// match the expected pay-to-key-hash shape.
var ErrScriptFormat = &formatError{}

type formatError struct{}

func (*formatError) Error() string { return "script: malformed pay-to-key-hash script" }

func (c KeyHashChecker) CheckConsensus(prevScript consensus.Script, tx *consensus.Tx, inputIndex int, _ consensus.VerifyFlags) (bool, error) {
	if len(prevScript) != 32 {
		return false, ErrScriptFormat
	}
	if inputIndex < 0 || inputIndex >= len(tx.Inputs) {
		return false, ErrScriptFormat
	}
	spend := tx.Inputs[inputIndex].Script
	if len(spend) < 32+64 {
		return false, ErrScriptFormat
	}
	pubkey := spend[:32]
	sig := spend[32 : 32+64]

	keyID := c.Provider.SHA3_256(pubkey)
	if !bytes.Equal(keyID[:], prevScript) {
		return false, nil
	}
	if c.SighashFn == nil {
		return false, ErrScriptFormat
	}
	digest, err := c.SighashFn(tx, inputIndex)
	if err != nil {
		return false, err
	}
	return c.Provider.VerifyEd25519(pubkey, sig, digest), nil
}
