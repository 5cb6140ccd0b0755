package crypto

import (
	"crypto/ed25519"

	"golang.org/x/crypto/sha3"
)

// DevProvider is a development-only Provider backed by stdlib/x/crypto
// primitives. It exists to unblock early tooling and tests; production
// deployments are expected to wire a hardware- or HSM-backed Provider
// instead.
type DevProvider struct{}

func (DevProvider) SHA3_256(input []byte) [32]byte {
	h := sha3.New256()
	_, _ = h.Write(input)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (DevProvider) VerifyEd25519(pubkey, sig []byte, digest [32]byte) bool {
	if len(pubkey) != ed25519.PublicKeySize {
		return false
	}
	if len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pubkey), digest[:], sig)
}
