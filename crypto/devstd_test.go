package crypto

import (
	"crypto/ed25519"
	"encoding/hex"
	"testing"
)

func TestDevProviderSHA3_256_KnownVector(t *testing.T) {
	p := DevProvider{}
	sum := p.SHA3_256([]byte("abc"))
	const want = "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"
	got := hex.EncodeToString(sum[:])
	if got != want {
		t.Fatalf("digest mismatch: got=%s want=%s", got, want)
	}
}

func TestDevProviderVerifyEd25519(t *testing.T) {
	p := DevProvider{}
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	digest := p.SHA3_256([]byte("message"))
	sig := ed25519.Sign(priv, digest[:])

	if !p.VerifyEd25519(pub, sig, digest) {
		t.Fatalf("VerifyEd25519 rejected a valid signature")
	}

	badDigest := p.SHA3_256([]byte("tampered"))
	if p.VerifyEd25519(pub, sig, badDigest) {
		t.Fatalf("VerifyEd25519 accepted a signature over the wrong digest")
	}
}

func TestDevProviderVerifyEd25519_WrongSizes(t *testing.T) {
	p := DevProvider{}
	var d [32]byte
	if p.VerifyEd25519(make([]byte, 4), make([]byte, ed25519.SignatureSize), d) {
		t.Fatalf("VerifyEd25519 accepted an undersized pubkey")
	}
	if p.VerifyEd25519(make([]byte, ed25519.PublicKeySize), make([]byte, 1), d) {
		t.Fatalf("VerifyEd25519 accepted an undersized signature")
	}
}
