package consensus

import (
	"context"
	"testing"

	"github.com/novaguard/novachain/crypto"
)

func newTestValidator(chain *fakeChain, pool *fakePool) *Validator {
	return NewValidator(chain, pool, nullChecker{}, crypto.DevProvider{})
}

func simpleEtpTx(version uint32, in OutPoint, outValue uint64) *Tx {
	return &Tx{
		Version: version,
		Inputs: []TxInput{
			{PreviousOutput: in, Script: Script("sig"), Sequence: 0xffffffff},
		},
		Outputs: []TxOutput{
			{Value: outValue, Script: Script("lock"), Attachment: NewETPAttachment()},
		},
	}
}

func fundingOutpoint(chain *fakeChain, value uint64, height uint64) OutPoint {
	fundTx := &Tx{
		Version: TxVersionBase,
		Inputs:  []TxInput{{PreviousOutput: OutPoint{Index: ^uint32(0)}, Script: Script("coinbase")}},
		Outputs: []TxOutput{{Value: value, Script: Script("lock"), Attachment: NewETPAttachment()}},
	}
	hash := TxHash(crypto.DevProvider{}, fundTx)
	chain.putTx(hash, fundTx, height)
	return OutPoint{TxHash: hash, Index: 0}
}

func TestValidateAcceptsWellFormedSpend(t *testing.T) {
	chain := newFakeChain()
	chain.lastHeight = 500
	in := fundingOutpoint(chain, 1_000_000, 100)

	tx := simpleEtpTx(TxVersionBase, in, 1_000_000-MinTxFee)
	v := newTestValidator(chain, newFakePool())

	verdict, err := v.Validate(context.Background(), tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Code != Success {
		t.Fatalf("expected success, got %s", verdict.Code)
	}
}

func TestValidateRejectsDuplicateAlreadyConfirmed(t *testing.T) {
	chain := newFakeChain()
	in := fundingOutpoint(chain, 1_000_000, 100)
	tx := simpleEtpTx(TxVersionBase, in, 1_000_000-MinTxFee)

	hash := TxHash(crypto.DevProvider{}, tx)
	chain.putTx(hash, tx, 101)

	v := newTestValidator(chain, newFakePool())
	verdict, err := v.Validate(context.Background(), tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Code != Duplicate {
		t.Fatalf("expected duplicate, got %s", verdict.Code)
	}
}

func TestValidateRejectsDuplicateAlreadyInPool(t *testing.T) {
	chain := newFakeChain()
	in := fundingOutpoint(chain, 1_000_000, 100)
	tx := simpleEtpTx(TxVersionBase, in, 1_000_000-MinTxFee)

	pool := newFakePool()
	hash := TxHash(crypto.DevProvider{}, tx)
	pool.byHash[hash] = tx

	v := newTestValidator(chain, pool)
	verdict, err := v.Validate(context.Background(), tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Code != Duplicate {
		t.Fatalf("expected duplicate, got %s", verdict.Code)
	}
}

func TestValidateRejectsDoubleSpendOnChain(t *testing.T) {
	chain := newFakeChain()
	chain.lastHeight = 500
	in := fundingOutpoint(chain, 1_000_000, 100)
	chain.spends[in] = true

	tx := simpleEtpTx(TxVersionBase, in, 1_000_000-MinTxFee)
	v := newTestValidator(chain, newFakePool())

	verdict, err := v.Validate(context.Background(), tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Code != DoubleSpend {
		t.Fatalf("expected double_spend, got %s", verdict.Code)
	}
}

func TestValidateRejectsDoubleSpendInPool(t *testing.T) {
	chain := newFakeChain()
	in := fundingOutpoint(chain, 1_000_000, 100)

	pool := newFakePool()
	pool.spent[in] = true

	tx := simpleEtpTx(TxVersionBase, in, 1_000_000-MinTxFee)
	v := newTestValidator(chain, pool)

	verdict, err := v.Validate(context.Background(), tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Code != DoubleSpend {
		t.Fatalf("expected double_spend, got %s", verdict.Code)
	}
}

func TestValidateRejectsInputNotFound(t *testing.T) {
	chain := newFakeChain()
	missing := OutPoint{TxHash: Hash32{0xaa}, Index: 0}
	tx := simpleEtpTx(TxVersionBase, missing, 1)

	v := newTestValidator(chain, newFakePool())
	verdict, err := v.Validate(context.Background(), tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Code != InputNotFound {
		t.Fatalf("expected input_not_found, got %s", verdict.Code)
	}
	if len(verdict.InputIndexes) != 1 || verdict.InputIndexes[0] != 0 {
		t.Fatalf("expected input index [0], got %v", verdict.InputIndexes)
	}
}

func TestValidateRejectsFeeBelowMinimum(t *testing.T) {
	chain := newFakeChain()
	chain.lastHeight = 500
	in := fundingOutpoint(chain, 1_000_000, 100)

	tx := simpleEtpTx(TxVersionBase, in, 1_000_000-1)
	v := newTestValidator(chain, newFakePool())

	verdict, err := v.Validate(context.Background(), tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Code != FeesOutOfRange {
		t.Fatalf("expected fees_out_of_range, got %s", verdict.Code)
	}
}

func TestValidateRejectsOutputExceedingInput(t *testing.T) {
	chain := newFakeChain()
	chain.lastHeight = 500
	in := fundingOutpoint(chain, 1_000_000, 100)

	tx := simpleEtpTx(TxVersionBase, in, 2_000_000)
	v := newTestValidator(chain, newFakePool())

	verdict, err := v.Validate(context.Background(), tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Code != FeesOutOfRange {
		t.Fatalf("expected fees_out_of_range, got %s", verdict.Code)
	}
}

func TestValidateRejectsCoinbase(t *testing.T) {
	chain := newFakeChain()
	tx := &Tx{
		Version: TxVersionBase,
		Inputs:  []TxInput{{PreviousOutput: OutPoint{Index: ^uint32(0)}, Script: Script("ab")}},
		Outputs: []TxOutput{{Value: 100, Script: Script("lock"), Attachment: NewETPAttachment()}},
	}
	v := newTestValidator(chain, newFakePool())

	verdict, err := v.Validate(context.Background(), tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Code != CoinbaseTransaction {
		t.Fatalf("expected coinbase_transaction, got %s", verdict.Code)
	}
}

func TestValidateRejectsImmatureCoinbaseSpend(t *testing.T) {
	chain := newFakeChain()
	chain.lastHeight = 105

	fundTx := &Tx{
		Version: TxVersionBase,
		Inputs:  []TxInput{{PreviousOutput: OutPoint{Index: ^uint32(0)}, Script: Script("cb")}},
		Outputs: []TxOutput{{Value: 1_000_000, Script: Script("lock"), Attachment: NewETPAttachment()}},
	}
	hash := TxHash(crypto.DevProvider{}, fundTx)
	chain.putTx(hash, fundTx, 100)
	in := OutPoint{TxHash: hash, Index: 0}

	tx := simpleEtpTx(TxVersionBase, in, 1_000_000-MinTxFee)
	v := newTestValidator(chain, newFakePool())

	verdict, err := v.Validate(context.Background(), tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Code != ValidateInputsFailed {
		t.Fatalf("expected validate_inputs_failed, got %s", verdict.Code)
	}
}

func TestValidateAcceptsMatureCoinbaseSpend(t *testing.T) {
	chain := newFakeChain()
	chain.lastHeight = 100 + CoinbaseMaturity

	fundTx := &Tx{
		Version: TxVersionBase,
		Inputs:  []TxInput{{PreviousOutput: OutPoint{Index: ^uint32(0)}, Script: Script("cb")}},
		Outputs: []TxOutput{{Value: 1_000_000, Script: Script("lock"), Attachment: NewETPAttachment()}},
	}
	hash := TxHash(crypto.DevProvider{}, fundTx)
	chain.putTx(hash, fundTx, 100)
	in := OutPoint{TxHash: hash, Index: 0}

	tx := simpleEtpTx(TxVersionBase, in, 1_000_000-MinTxFee)
	v := newTestValidator(chain, newFakePool())

	verdict, err := v.Validate(context.Background(), tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Code != Success {
		t.Fatalf("expected success, got %s", verdict.Code)
	}
}

func TestValidateResolvesInputFromMempool(t *testing.T) {
	chain := newFakeChain()
	chain.lastHeight = 500

	fundTx := simpleEtpTx(TxVersionBase, OutPoint{TxHash: Hash32{0x01}, Index: 0}, 1_000_000)
	fundTx.Inputs[0] = TxInput{PreviousOutput: OutPoint{Index: ^uint32(0)}, Script: Script("cb")}
	fundHash := TxHash(crypto.DevProvider{}, fundTx)

	pool := newFakePool()
	pool.byHash[fundHash] = fundTx

	tx := simpleEtpTx(TxVersionBase, OutPoint{TxHash: fundHash, Index: 0}, 1_000_000-MinTxFee)
	v := newTestValidator(chain, pool)

	verdict, err := v.Validate(context.Background(), tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Code != Success {
		t.Fatalf("expected success, got %s", verdict.Code)
	}
	if len(verdict.UnconfirmedInputs) != 1 || verdict.UnconfirmedInputs[0] != 0 {
		t.Fatalf("expected unconfirmed input [0], got %v", verdict.UnconfirmedInputs)
	}
}

func TestValidateRejectsEmptyTransaction(t *testing.T) {
	chain := newFakeChain()
	tx := &Tx{Version: TxVersionBase}
	v := newTestValidator(chain, newFakePool())

	verdict, err := v.Validate(context.Background(), tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Code != EmptyTransaction {
		t.Fatalf("expected empty_transaction, got %s", verdict.Code)
	}
}

func TestValidateRejectsNilTransaction(t *testing.T) {
	chain := newFakeChain()
	v := newTestValidator(chain, newFakePool())

	if _, err := v.Validate(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil transaction")
	}
}
