package script

import (
	"crypto/ed25519"
	"testing"

	"github.com/novaguard/novachain/consensus"
	"github.com/novaguard/novachain/crypto"
)

func TestNullCheckerAlwaysSucceeds(t *testing.T) {
	ok, err := NullChecker{}.CheckConsensus(nil, &consensus.Tx{}, 0, consensus.AllEnabled())
	if err != nil || !ok {
		t.Fatalf("expected success, got ok=%v err=%v", ok, err)
	}
}

func sighashFn(tx *consensus.Tx, inputIndex int) ([32]byte, error) {
	return crypto.DevProvider{}.SHA3_256([]byte("fixed-digest")), nil
}

func TestKeyHashCheckerAcceptsValidSignature(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	provider := crypto.DevProvider{}
	keyID := provider.SHA3_256(pub)
	digest := provider.SHA3_256([]byte("fixed-digest"))
	sig := ed25519.Sign(priv, digest[:])

	tx := &consensus.Tx{Inputs: []consensus.TxInput{{Script: append(append([]byte{}, pub...), sig...)}}}
	checker := KeyHashChecker{Provider: provider, SighashFn: sighashFn}

	ok, err := checker.CheckConsensus(consensus.Script(keyID[:]), tx, 0, consensus.AllEnabled())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected valid signature to verify")
	}
}

func TestKeyHashCheckerRejectsWrongKey(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	otherPub, _, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	provider := crypto.DevProvider{}
	digest := provider.SHA3_256([]byte("fixed-digest"))
	sig := ed25519.Sign(priv, digest[:])

	tx := &consensus.Tx{Inputs: []consensus.TxInput{{Script: append(append([]byte{}, pub...), sig...)}}}
	checker := KeyHashChecker{Provider: provider, SighashFn: sighashFn}

	wrongKeyID := provider.SHA3_256(otherPub)
	ok, err := checker.CheckConsensus(consensus.Script(wrongKeyID[:]), tx, 0, consensus.AllEnabled())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected key-hash mismatch to fail verification")
	}
}

func TestKeyHashCheckerRejectsMalformedPrevScript(t *testing.T) {
	checker := KeyHashChecker{Provider: crypto.DevProvider{}, SighashFn: sighashFn}
	tx := &consensus.Tx{Inputs: []consensus.TxInput{{Script: make([]byte, 96)}}}

	_, err := checker.CheckConsensus(consensus.Script([]byte("too-short")), tx, 0, consensus.AllEnabled())
	if err != ErrScriptFormat {
		t.Fatalf("expected ErrScriptFormat, got %v", err)
	}
}
