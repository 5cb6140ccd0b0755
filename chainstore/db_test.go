package chainstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/novaguard/novachain/consensus"
)

func mustOpenDB(t *testing.T, settings consensus.ChainSettings) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data"), "deadbeef", settings)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDBPutConfirmedAndFetch(t *testing.T) {
	db := mustOpenDB(t, consensus.ChainSettings{})
	ctx := context.Background()

	tx := &consensus.Tx{
		Version: 1,
		Inputs:  []consensus.TxInput{{PreviousOutput: consensus.OutPoint{Index: ^uint32(0)}, Script: consensus.Script("cb")}},
		Outputs: []consensus.TxOutput{{Value: 5000, Script: consensus.Script("lock"), Attachment: consensus.NewETPAttachment()}},
	}
	hash := consensus.Hash32{0x9, 0x9}

	if err := db.PutConfirmed(hash, tx, 10); err != nil {
		t.Fatalf("put confirmed: %v", err)
	}

	got, height, found, err := db.FetchTransaction(ctx, hash)
	if err != nil || !found {
		t.Fatalf("fetch transaction: found=%v err=%v", found, err)
	}
	if height != 10 {
		t.Fatalf("expected height 10, got %d", height)
	}
	if len(got.Outputs) != 1 || got.Outputs[0].Value != 5000 {
		t.Fatalf("unexpected roundtrip tx: %+v", got)
	}

	idxHeight, found, err := db.FetchTransactionIndex(ctx, hash)
	if err != nil || !found || idxHeight != 10 {
		t.Fatalf("fetch index mismatch: height=%d found=%v err=%v", idxHeight, found, err)
	}

	lastHeight, err := db.FetchLastHeight(ctx)
	if err != nil || lastHeight != 10 {
		t.Fatalf("expected last height 10, got %d err=%v", lastHeight, err)
	}
}

func TestDBPutConfirmedMarksInputsSpent(t *testing.T) {
	db := mustOpenDB(t, consensus.ChainSettings{})
	ctx := context.Background()

	spentOp := consensus.OutPoint{TxHash: consensus.Hash32{0x1}, Index: 0}
	tx := &consensus.Tx{
		Version: 1,
		Inputs:  []consensus.TxInput{{PreviousOutput: spentOp, Script: consensus.Script("sig")}},
		Outputs: []consensus.TxOutput{{Value: 1, Script: consensus.Script("lock"), Attachment: consensus.NewETPAttachment()}},
	}
	if err := db.PutConfirmed(consensus.Hash32{0x2}, tx, 1); err != nil {
		t.Fatalf("put confirmed: %v", err)
	}

	spent, err := db.FetchSpend(ctx, spentOp)
	if err != nil {
		t.Fatalf("fetch spend: %v", err)
	}
	if !spent {
		t.Fatalf("expected input to be marked spent")
	}
}

func TestDBAssetCertMITAndDIDLookups(t *testing.T) {
	db := mustOpenDB(t, consensus.ChainSettings{})
	ctx := context.Background()

	if err := db.PutAsset(&consensus.Asset{Symbol: "NOVA", MaxSupply: 100}); err != nil {
		t.Fatalf("put asset: %v", err)
	}
	if exists, err := db.IsAssetExist(ctx, "NOVA"); err != nil || !exists {
		t.Fatalf("expected asset to exist: exists=%v err=%v", exists, err)
	}
	asset, found, err := db.GetAsset(ctx, "NOVA")
	if err != nil || !found || asset.MaxSupply != 100 {
		t.Fatalf("get asset mismatch: %+v found=%v err=%v", asset, found, err)
	}

	if err := db.PutAssetCert(&consensus.AssetCert{Symbol: "NOVA", CertType: consensus.CertIssue, OwnerDID: "did:nova:x"}); err != nil {
		t.Fatalf("put cert: %v", err)
	}
	if exists, err := db.IsAssetCertExist(ctx, "NOVA", consensus.CertIssue); err != nil || !exists {
		t.Fatalf("expected cert to exist: exists=%v err=%v", exists, err)
	}

	if err := db.PutMIT(&consensus.MIT{Symbol: "NOVA", Address: "addr1"}); err != nil {
		t.Fatalf("put mit: %v", err)
	}
	mit, found, err := db.GetRegisteredMIT(ctx, "NOVA")
	if err != nil || !found || mit.Address != "addr1" {
		t.Fatalf("get mit mismatch: %+v found=%v err=%v", mit, found, err)
	}

	if err := db.PutDID(&consensus.DID{Symbol: "did:nova:x", Address: "addr1"}); err != nil {
		t.Fatalf("put did: %v", err)
	}
	if exists, err := db.IsDIDExist(ctx, "did:nova:x"); err != nil || !exists {
		t.Fatalf("expected did to exist: exists=%v err=%v", exists, err)
	}
	symbol, found, err := db.GetDIDFromAddress(ctx, "addr1")
	if err != nil || !found || symbol != "did:nova:x" {
		t.Fatalf("get did from address mismatch: symbol=%s found=%v err=%v", symbol, found, err)
	}

	if err := db.SetAssetVolume("NOVA", 77); err != nil {
		t.Fatalf("set asset volume: %v", err)
	}
	volume, err := db.GetAssetVolume(ctx, "NOVA")
	if err != nil || volume != 77 {
		t.Fatalf("get asset volume mismatch: volume=%d err=%v", volume, err)
	}
}

func TestDBIsValidAddressDefaultsOpenUntilSeeded(t *testing.T) {
	db := mustOpenDB(t, consensus.ChainSettings{})

	if !db.IsValidAddress("anything") {
		t.Fatalf("expected any non-empty address to be valid before seeding")
	}
	if db.IsValidAddress("") {
		t.Fatalf("expected empty address to always be invalid")
	}

	if err := db.MarkAddressValid("addr1"); err != nil {
		t.Fatalf("mark address valid: %v", err)
	}
	if !db.IsValidAddress("addr1") {
		t.Fatalf("expected addr1 to be valid")
	}
	if db.IsValidAddress("addr2") {
		t.Fatalf("expected addr2 to be invalid once the allowlist is non-empty")
	}
}

func TestDBChainSettingsRoundTrip(t *testing.T) {
	db := mustOpenDB(t, consensus.ChainSettings{UseTestnetRules: true})
	if !db.ChainSettings().UseTestnetRules {
		t.Fatalf("expected testnet rules to be carried through Open")
	}
}
