package consensus

import (
	"context"
)

// IsCoinbase reports whether tx has the coinbase shape: exactly one input
// whose previous output is the null sentinel.
func IsCoinbase(tx *Tx) bool {
	return len(tx.Inputs) == 1 && tx.Inputs[0].IsNull()
}

// attachmentValid performs the version-gated structural validity check the
// nova feature bundle requires of every attachment: asset/cert/mit/did attachments must carry a non-empty
// symbol and address, and amount-bearing payloads must carry a non-zero
// amount.
func attachmentValid(a Attachment) bool {
	switch a.Kind {
	case AttachmentETP, AttachmentMessage:
		return true
	case AttachmentAssetIssue:
		p := a.AsAssetIssue()
		return p.Symbol != "" && p.Address != "" && p.MaxSupply > 0 && p.SecondaryIssueThreshold.IsValid()
	case AttachmentAssetSecondaryIssue:
		p := a.AsAssetSecondaryIssue()
		return p.Symbol != "" && p.Address != "" && p.Amount > 0
	case AttachmentAssetTransfer:
		p := a.AsAssetTransfer()
		return p.Symbol != "" && p.Address != "" && p.Amount > 0
	case AttachmentAssetCert:
		p := a.AsAssetCert()
		return p.Symbol != "" && p.Address != "" && p.CertType != CertNone
	case AttachmentAssetCertIssue:
		p := a.AsAssetCertIssue()
		return p.Symbol != "" && p.Address != "" && p.CertType != CertNone
	case AttachmentAssetMITRegister:
		p := a.AsMITRegister()
		return p.Symbol != "" && p.Address != ""
	case AttachmentAssetMITTransfer:
		p := a.AsMITTransfer()
		return p.Symbol != "" && p.Address != ""
	case AttachmentDIDRegister:
		p := a.AsDIDRegister()
		return p.Symbol != "" && p.Address != ""
	case AttachmentDIDTransfer:
		p := a.AsDIDTransfer()
		return p.Symbol != "" && p.NewAddress != ""
	default:
		return false
	}
}

// symbolValidForOutput applies the version-aware symbol-validity rule
// appropriate to out's attachment kind.
func symbolValidForOutput(out *TxOutput, version uint32, chain Chain) error {
	switch out.Attachment.Kind {
	case AttachmentAssetIssue, AttachmentAssetSecondaryIssue, AttachmentAssetTransfer,
		AttachmentAssetCert, AttachmentAssetCertIssue:
		symbol, _ := out.Attachment.AssetSymbol()
		if !IsValidAssetSymbol(symbol, version) {
			return verr(AssetSymbolInvalid, symbol)
		}
	case AttachmentAssetMITRegister, AttachmentAssetMITTransfer:
		symbol, _ := out.Attachment.AssetSymbol()
		if !IsValidMITSymbol(symbol, version) {
			return verr(MITSymbolInvalid, symbol)
		}
	case AttachmentDIDRegister, AttachmentDIDTransfer:
		symbol, _ := out.Attachment.AssetSymbol()
		if !IsValidDIDSymbol(symbol, version, chain.IsValidAddress) {
			return verr(DIDSymbolInvalid, symbol)
		}
	}
	return nil
}

// CheckTransactionBasic runs the stateless-or-chain-read-only checks, in
// order, returning on the first violation.
func CheckTransactionBasic(ctx context.Context, tx *Tx, chain Chain) error {
	if tx.Version >= MaxVersion {
		return verr(TransactionVersionError, "version at or above max_version")
	}

	novaActive, height, err := novaActiveAt(ctx, chain)
	if err != nil {
		return err
	}
	if tx.Version == CheckNovaFeature && !novaActive {
		return verr(NovaFeatureNotActivated, "")
	}
	if tx.Version == CheckNovaTestnet && !chain.ChainSettings().UseTestnetRules {
		return verr(TransactionVersionError, "nova-testnet version on mainnet")
	}

	if tx.Version >= CheckOutputScript {
		for _, out := range tx.Outputs {
			if IsNonStandard(out.Script) {
				return verr(ScriptNotStandard, "")
			}
		}
	}

	if len(tx.Inputs) == 0 || len(tx.Outputs) == 0 {
		return verr(EmptyTransaction, "")
	}

	if SerializedSize(tx) > MaxTransactionSize {
		return verr(SizeLimits, "")
	}

	var totalOut uint64
	for _, out := range tx.Outputs {
		if out.Value > MaxMoney {
			return verr(OutputValueOverflow, "output value exceeds max_money")
		}
		totalOut, err = addUint64(totalOut, out.Value)
		if err != nil {
			return err
		}
		if totalOut > MaxMoney {
			return verr(OutputValueOverflow, "running output total exceeds max_money")
		}
	}

	for i := range tx.Outputs {
		out := &tx.Outputs[i]
		if err := symbolValidForOutput(out, tx.Version, chain); err != nil {
			return err
		}
		if out.Attachment.IsAssetCert() {
			p := out.Attachment.AsAssetCert()
			if _, found, err := chain.GetRegisteredDID(ctx, p.OwnerDID); err != nil {
				return err
			} else if !found {
				return verr(DIDAddressNeeded, p.OwnerDID)
			}
		}
		if out.Attachment.IsAssetCertIssue() {
			p := out.Attachment.AsAssetCertIssue()
			if _, found, err := chain.GetRegisteredDID(ctx, p.OwnerDID); err != nil {
				return err
			} else if !found {
				return verr(DIDAddressNeeded, p.OwnerDID)
			}
		}
		if tx.Version >= CheckNovaFeature && !attachmentValid(out.Attachment) {
			return verr(AttachmentInvalid, "")
		}
	}

	if IsCoinbase(tx) {
		scriptLen := len(tx.Inputs[0].Script)
		if scriptLen < CoinbaseScriptSizeMin || scriptLen > CoinbaseScriptSizeMax {
			return verr(InvalidCoinbaseScriptSize, "")
		}
	} else {
		for i := range tx.Inputs {
			in := &tx.Inputs[i]
			if in.IsNull() {
				return verr(PreviousOutputNull, "")
			}
			if lockHeight, ok := LockHeight(in.Script); ok {
				prevHeight, found, err := chain.FetchTransactionIndex(ctx, in.PreviousOutput.TxHash)
				if err != nil {
					return err
				}
				if !found {
					return verr(InputNotFound, "")
				}
				gap, err := subUint64(height, prevHeight)
				if err != nil {
					return verr(InvalidInputScriptLockHeight, "")
				}
				if uint64(lockHeight) > gap {
					return verr(InvalidInputScriptLockHeight, "")
				}
			}
		}
	}

	for _, out := range tx.Outputs {
		if lockHeight, ok := LockHeight(out.Script); ok {
			if !isAllowedOutputLockHeight(lockHeight) {
				return verr(InvalidOutputScriptLockHeight, "")
			}
		}
	}

	if tx.Version >= CheckNovaFeature {
		for _, in := range tx.Inputs {
			if maxSupply, ok := AttenuationParams(in.Script); ok {
				if maxSupply == 0 || maxSupply > MaxMoney {
					return verr(AttenuationModelParamError, "")
				}
			}
		}
		for _, out := range tx.Outputs {
			if maxSupply, ok := AttenuationParams(out.Script); ok {
				if maxSupply == 0 || maxSupply > MaxMoney {
					return verr(AttenuationModelParamError, "")
				}
			}
		}
	}

	return nil
}
