package consensus

import (
	"context"

	"github.com/novaguard/novachain/crypto"
)

// Verdict is the outcome of validating one transaction. InputIndexes is non-empty only for errors attributable to a
// specific input (input_not_found, validate_inputs_failed); for a success
// verdict it is always empty and UnconfirmedInputs instead carries the
// indices whose previous transaction was resolved from the mempool.
type Verdict struct {
	Code              ErrorCode
	Tx                *Tx
	InputIndexes      []int
	UnconfirmedInputs []int
}

// Validator is a mempool admission validator bound to one chain/pool/script
// backend. It holds no per-transaction state: Validate may be called
// concurrently for distinct transactions.
type Validator struct {
	chain   Chain
	pool    Pool
	checker Checker
	hasher  crypto.Provider
}

// NewValidator builds a Validator over the given storage, script, and
// hashing backends. hasher is used only to compute the transaction hash
// for duplicate detection, never for signature verification (that is the
// checker's job).
func NewValidator(chain Chain, pool Pool, checker Checker, hasher crypto.Provider) *Validator {
	return &Validator{chain: chain, pool: pool, checker: checker, hasher: hasher}
}

// Validate runs the full admission pipeline against tx and
// returns the verdict. A non-nil error return (distinct from a non-Success
// Verdict.Code) indicates a programmer or storage-backend failure, not a
// consensus rejection.
func (v *Validator) Validate(ctx context.Context, tx *Tx) (*Verdict, error) {
	if tx == nil {
		return nil, verr(EmptyTransaction, "nil transaction")
	}

	hash := v.hashOf(tx)

	if err := v.checkTransaction(ctx, tx); err != nil {
		return verdictFromErr(tx, err), nil
	}

	if v.pool.IsInPool(hash) {
		return verdictFromErr(tx, verr(Duplicate, "already in mempool")), nil
	}

	if _, _, found, err := v.chain.FetchTransaction(ctx, hash); err != nil {
		return nil, err
	} else if found {
		return verdictFromErr(tx, verr(Duplicate, "already confirmed")), nil
	}

	if v.pool.IsSpentInPool(tx) {
		return verdictFromErr(tx, verr(DoubleSpend, "")), nil
	}

	height, err := v.chain.FetchLastHeight(ctx)
	if err != nil {
		return nil, err
	}

	agg := &aggState{lastBlockHeight: height}

	for i := range tx.Inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		in := &tx.Inputs[i]

		prevHeight, foundOnChain, err := v.chain.FetchTransactionIndex(ctx, in.PreviousOutput.TxHash)
		if err != nil {
			return nil, err
		}
		var prevTx *Tx
		fromPool := false
		if foundOnChain {
			prevTx, _, _, err = v.chain.FetchTransaction(ctx, in.PreviousOutput.TxHash)
			if err != nil {
				return nil, err
			}
		} else {
			prevTx, fromPool = v.pool.Find(in.PreviousOutput.TxHash)
			if !fromPool {
				return &Verdict{Code: InputNotFound, Tx: tx, InputIndexes: []int{i}}, nil
			}
		}

		if int(in.PreviousOutput.Index) >= len(prevTx.Outputs) {
			return &Verdict{Code: InputNotFound, Tx: tx, InputIndexes: []int{i}}, nil
		}
		prevOut := &prevTx.Outputs[in.PreviousOutput.Index]

		if err := v.connectInput(tx, i, agg, prevOut, IsCoinbase(prevTx), prevHeight); err != nil {
			return &Verdict{Code: ValidateInputsFailed, Tx: tx, InputIndexes: []int{i}}, nil
		}

		spent, err := v.chain.FetchSpend(ctx, in.PreviousOutput)
		if err != nil {
			return nil, err
		}
		if spent {
			return verdictFromErr(tx, verr(DoubleSpend, "")), nil
		}

		if fromPool {
			agg.unconfirmedInputs = append(agg.unconfirmedInputs, i)
		}
	}

	var valueOut uint64
	for _, out := range tx.Outputs {
		valueOut, err = addUint64(valueOut, out.Value)
		if err != nil {
			return verdictFromErr(tx, err), nil
		}
	}
	fee, err := subUint64(agg.valueIn, valueOut)
	if err != nil {
		return verdictFromErr(tx, verr(FeesOutOfRange, "value_out exceeds value_in")), nil
	}
	if fee < MinTxFee || agg.valueIn > MaxMoney {
		return verdictFromErr(tx, verr(FeesOutOfRange, "")), nil
	}

	if err := v.checkConservation(tx, agg); err != nil {
		return verdictFromErr(tx, err), nil
	}

	return &Verdict{Code: Success, Tx: tx, UnconfirmedInputs: agg.unconfirmedInputs}, nil
}

func verdictFromErr(tx *Tx, err error) *Verdict {
	return &Verdict{Code: CodeOf(err), Tx: tx}
}

func (v *Validator) checkTransaction(ctx context.Context, tx *Tx) error {
	if err := CheckTransactionBasic(ctx, tx, v.chain); err != nil {
		return err
	}
	if err := CheckAssetIssueTransaction(ctx, tx, v.chain); err != nil {
		return err
	}
	if err := CheckAssetCertIssueTransaction(ctx, tx, v.chain); err != nil {
		return err
	}
	if err := CheckSecondaryIssueTransaction(ctx, tx, v.chain, v.pool); err != nil {
		return err
	}
	if err := CheckAssetMITRegisterTransaction(ctx, tx, v.chain, v.pool); err != nil {
		return err
	}
	if err := CheckDIDTransaction(ctx, tx, v.chain, v.pool); err != nil {
		return err
	}
	if IsCoinbase(tx) {
		return verr(CoinbaseTransaction, "")
	}
	return nil
}

// connectInput implements connect_input rule: it folds one
// resolved previous output into agg and verifies its spending script.
func (v *Validator) connectInput(tx *Tx, inputIndex int, agg *aggState, prevOut *TxOutput, prevIsCoinbase bool, parentHeight uint64) error {
	if prevIsCoinbase {
		gap, err := subUint64(agg.lastBlockHeight, parentHeight)
		if err != nil || gap < CoinbaseMaturity {
			return verr(ValidateInputsFailed, "coinbase not yet mature")
		}
	}

	a := prevOut.Attachment
	switch {
	case a.IsAsset():
		symbol, _ := a.AssetSymbol()
		amount, err := addUint64(agg.assetAmountIn, assetAmountHeld(a))
		if err != nil {
			return err
		}
		agg.assetAmountIn = amount
		if err := agg.latchSymbol(symbol); err != nil {
			return err
		}
		if isForbiddenSymbol(symbol) {
			return verr(ValidateInputsFailed, "forbidden symbol")
		}
		if a.IsAssetIssue() || a.IsAssetSecondaryIssue() {
			agg.businessKindIn, agg.businessKindSet = BusinessAssetIssue, true
		} else {
			// Preserved verbatim: spending an asset-transfer output latches
			// did_transfer, not asset_transfer. Flagged, not "fixed" — see
			// the known source anomaly this mirrors.
			agg.businessKindIn, agg.businessKindSet = BusinessDIDTransfer, true
		}

	case a.IsAssetCert():
		p := a.AsAssetCert()
		agg.businessKindIn, agg.businessKindSet = BusinessAssetCert, true
		if hasCertType(agg.assetCertsIn, p.CertType) {
			return verr(ValidateInputsFailed, "duplicate cert_type among inputs")
		}
		if hasCertType(agg.assetCertsIn, CertDomain) {
			if p.Symbol != domainOf(agg.oldSymbolIn) {
				return verr(ValidateInputsFailed, "cert symbol not under authorized domain")
			}
		} else if err := agg.latchSymbol(p.Symbol); err != nil {
			return err
		}
		agg.assetCertsIn = append(agg.assetCertsIn, p.CertType)

	case a.IsAssetMIT():
		symbol, _ := a.AssetSymbol()
		agg.businessKindIn, agg.businessKindSet = BusinessAssetMIT, true
		if err := agg.latchSymbol(symbol); err != nil {
			return err
		}

	case a.IsDIDRegister():
		symbol, _ := a.AssetSymbol()
		agg.businessKindIn, agg.businessKindSet = BusinessDIDRegister, true
		if err := agg.latchSymbol(symbol); err != nil {
			return err
		}

	case a.IsDIDTransfer():
		symbol, _ := a.AssetSymbol()
		agg.businessKindIn, agg.businessKindSet = BusinessDIDTransfer, true
		if err := agg.latchSymbol(symbol); err != nil {
			return err
		}
	}

	ok, err := v.checker.CheckConsensus(prevOut.Script, tx, inputIndex, AllEnabled())
	if err != nil {
		return err
	}
	if !ok {
		return verr(ValidateInputsFailed, "script verification failed")
	}

	valueIn, err := addUint64(agg.valueIn, prevOut.Value)
	if err != nil {
		return err
	}
	if valueIn > MaxMoney {
		return verr(OutputValueOverflow, "value_in exceeds max_money")
	}
	agg.valueIn = valueIn

	return nil
}

// checkConservation runs the asset/cert/MIT/DID conservation checks
// conditional on agg.businessKindIn.
func (v *Validator) checkConservation(tx *Tx, agg *aggState) error {
	if !agg.businessKindSet {
		return nil
	}
	switch agg.businessKindIn {
	case BusinessAssetIssue, BusinessDIDTransfer:
		if err := checkAssetAmount(tx, agg); err != nil {
			return err
		}
		return checkAssetSymbol(tx, agg)
	case BusinessAssetCert:
		return checkAssetCerts(tx, agg)
	case BusinessAssetMIT:
		return checkAssetMIT(tx, agg)
	case BusinessDIDRegister:
		return checkDIDSymbolMatch(tx, agg)
	}
	return nil
}

func (v *Validator) hashOf(tx *Tx) Hash32 {
	return TxHash(v.hasher, tx)
}
