package mempool

import (
	"context"
	"testing"

	"github.com/novaguard/novachain/consensus"
	"github.com/novaguard/novachain/crypto"
)

// stubChain is a minimal consensus.Chain with no confirmed state, enough to
// drive Admission.Admit through the validator without a real store.
type stubChain struct {
	lastHeight uint64
	validAddrs map[string]bool
}

func (c *stubChain) FetchTransaction(context.Context, consensus.Hash32) (*consensus.Tx, uint64, bool, error) {
	return nil, 0, false, nil
}
func (c *stubChain) FetchTransactionIndex(context.Context, consensus.Hash32) (uint64, bool, error) {
	return 0, false, nil
}
func (c *stubChain) FetchLastHeight(context.Context) (uint64, error) { return c.lastHeight, nil }
func (c *stubChain) FetchSpend(context.Context, consensus.OutPoint) (bool, error) {
	return false, nil
}
func (c *stubChain) IsAssetExist(context.Context, string) (bool, error)      { return false, nil }
func (c *stubChain) IsDIDExist(context.Context, string) (bool, error)        { return false, nil }
func (c *stubChain) IsAssetCertExist(context.Context, string, consensus.CertType) (bool, error) {
	return false, nil
}
func (c *stubChain) GetAsset(context.Context, string) (*consensus.Asset, bool, error) {
	return nil, false, nil
}
func (c *stubChain) GetAssetCert(context.Context, string, consensus.CertType) (*consensus.AssetCert, bool, error) {
	return nil, false, nil
}
func (c *stubChain) GetRegisteredMIT(context.Context, string) (*consensus.MIT, bool, error) {
	return nil, false, nil
}
func (c *stubChain) GetRegisteredDID(context.Context, string) (*consensus.DID, bool, error) {
	return nil, false, nil
}
func (c *stubChain) GetDIDFromAddress(context.Context, string) (string, bool, error) {
	return "", false, nil
}
func (c *stubChain) GetAssetVolume(context.Context, string) (uint64, error) { return 0, nil }
func (c *stubChain) IsValidAddress(address string) bool {
	if len(c.validAddrs) == 0 {
		return address != ""
	}
	return c.validAddrs[address]
}
func (c *stubChain) ChainSettings() consensus.ChainSettings { return consensus.ChainSettings{} }

type stubChecker struct{}

func (stubChecker) CheckConsensus(consensus.Script, *consensus.Tx, int, consensus.VerifyFlags) (bool, error) {
	return true, nil
}

func newTestAdmission(chain *stubChain) (*Pool, *Admission) {
	pool := New()
	validator := consensus.NewValidator(chain, pool, stubChecker{}, crypto.DevProvider{})
	return pool, NewAdmission(pool, validator)
}

func mustFundingTx() (*consensus.Tx, consensus.Hash32) {
	tx := &consensus.Tx{
		Version: 1,
		Inputs:  []consensus.TxInput{{PreviousOutput: consensus.OutPoint{Index: ^uint32(0)}, Script: consensus.Script("cb")}},
		Outputs: []consensus.TxOutput{{Value: 1_000_000, Script: consensus.Script("lock"), Attachment: consensus.NewETPAttachment()}},
	}
	return tx, consensus.TxHash(crypto.DevProvider{}, tx)
}

func TestAdmitAcceptsAndInsertsIntoPool(t *testing.T) {
	chain := &stubChain{lastHeight: 500}
	pool, admission := newTestAdmission(chain)

	fundTx, fundHash := mustFundingTx()
	pool.insert(fundHash, fundTx)

	tx := &consensus.Tx{
		Version: 1,
		Inputs:  []consensus.TxInput{{PreviousOutput: consensus.OutPoint{TxHash: fundHash, Index: 0}, Script: consensus.Script("sig")}},
		Outputs: []consensus.TxOutput{{Value: 1_000_000 - consensus.MinTxFee, Script: consensus.Script("lock"), Attachment: consensus.NewETPAttachment()}},
	}
	hash := consensus.TxHash(crypto.DevProvider{}, tx)

	verdict, err := admission.Admit(context.Background(), tx, hash)
	if err != nil {
		t.Fatalf("admit: %v", err)
	}
	if verdict.Code != consensus.Success {
		t.Fatalf("expected success, got %s", verdict.Code)
	}
	if !pool.IsInPool(hash) {
		t.Fatalf("expected accepted tx to be in pool")
	}
	if pool.Size() != 2 {
		t.Fatalf("expected pool size 2 (funding + accepted), got %d", pool.Size())
	}
}

func TestAdmitRejectsAndCachesNegativeLookup(t *testing.T) {
	chain := &stubChain{lastHeight: 500}
	_, admission := newTestAdmission(chain)

	tx := &consensus.Tx{Version: 1}
	hash := consensus.TxHash(crypto.DevProvider{}, tx)

	verdict, err := admission.Admit(context.Background(), tx, hash)
	if err != nil {
		t.Fatalf("admit: %v", err)
	}
	if verdict.Code != consensus.EmptyTransaction {
		t.Fatalf("expected empty_transaction, got %s", verdict.Code)
	}

	verdict2, err := admission.Admit(context.Background(), tx, hash)
	if err != nil {
		t.Fatalf("admit (cached): %v", err)
	}
	if verdict2.Code != consensus.Duplicate {
		t.Fatalf("expected duplicate from rejected cache, got %s", verdict2.Code)
	}
}

func TestPoolRemoveClearsSpentEntries(t *testing.T) {
	pool := New()
	fundTx, fundHash := mustFundingTx()
	pool.insert(fundHash, fundTx)

	op := fundTx.Inputs[0].PreviousOutput
	if !pool.IsSpentInPool(&consensus.Tx{Inputs: []consensus.TxInput{{PreviousOutput: op}}}) {
		t.Fatalf("expected input to be marked spent after insert")
	}

	pool.Remove(fundHash)
	if pool.IsInPool(fundHash) {
		t.Fatalf("expected tx to be gone after Remove")
	}
	if pool.IsSpentInPool(&consensus.Tx{Inputs: []consensus.TxInput{{PreviousOutput: op}}}) {
		t.Fatalf("expected spend entry to be cleared after Remove")
	}
}

func TestPoolIsSpentInPoolDetectsDoubleSpend(t *testing.T) {
	pool := New()
	fundTx, fundHash := mustFundingTx()
	pool.insert(fundHash, fundTx)

	op := fundTx.Inputs[0].PreviousOutput
	conflicting := &consensus.Tx{Inputs: []consensus.TxInput{{PreviousOutput: op}}}
	if !pool.IsSpentInPool(conflicting) {
		t.Fatalf("expected conflicting spend to be detected")
	}
}
