// Package crypto is the narrow, pluggable cryptography surface the script
// package's concrete checkers use to verify ownership of a key-hash script.
package crypto

// Provider is implemented by any cryptography backend the script package's
// checkers may be wired to.
type Provider interface {
	SHA3_256(input []byte) [32]byte
	VerifyEd25519(pubkey, sig []byte, digest [32]byte) bool
}
