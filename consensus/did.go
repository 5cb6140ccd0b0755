package consensus

import "context"

// CheckDIDTransaction validates the DID rule set. Unlike
// the other per-feature checks it also inspects every output's address
// binding, even when no did-register/did-transfer output is present.
func CheckDIDTransaction(ctx context.Context, tx *Tx, chain Chain, pool Pool) error {
	if _, err := scanOutputs(tx, func(out *TxOutput, _ int) (bool, error) {
		addr := scriptOwnerAddress(out.Script)
		if !chain.IsValidAddress(addr) {
			return false, verr(DIDAddressNotMatch, addr)
		}
		if out.Attachment.ToDID != "" {
			boundSymbol, found, err := chain.GetDIDFromAddress(ctx, addr)
			if err != nil {
				return false, err
			}
			if !found || boundSymbol != out.Attachment.ToDID {
				return false, verr(DIDAddressNotMatch, out.Attachment.ToDID)
			}
		}
		if out.Attachment.FromDID != "" {
			matched := false
			for j := range tx.Inputs {
				prev, ok, err := resolvePreviousOutput(ctx, chain, pool, tx.Inputs[j].PreviousOutput)
				if err != nil {
					return false, err
				}
				if !ok {
					continue
				}
				prevAddr := scriptOwnerAddress(prev.Script)
				symbol, found, err := chain.GetDIDFromAddress(ctx, prevAddr)
				if err != nil {
					return false, err
				}
				if found && symbol == out.Attachment.FromDID {
					matched = true
					break
				}
			}
			if !matched {
				return false, verr(DIDInputError, out.Attachment.FromDID)
			}
		}
		return false, nil
	}); err != nil {
		return err
	}

	regOrTransfer, err := scanOutputs(tx, func(out *TxOutput, _ int) (bool, error) {
		return out.Attachment.IsDIDRegister() || out.Attachment.IsDIDTransfer(), nil
	})
	if err != nil {
		return err
	}
	if len(regOrTransfer) > 1 {
		return verr(DIDMultiTypeExist, "")
	}
	var registerIdx, transferIdx = -1, -1
	if len(regOrTransfer) == 1 {
		if tx.Outputs[regOrTransfer[0]].Attachment.IsDIDRegister() {
			registerIdx = regOrTransfer[0]
		} else {
			transferIdx = regOrTransfer[0]
		}
	}

	if registerIdx != -1 {
		p := tx.Outputs[registerIdx].Attachment.AsDIDRegister()
		if !IsValidDIDSymbol(p.Symbol, tx.Version, chain.IsValidAddress) {
			return verr(DIDSymbolInvalid, p.Symbol)
		}
		if exists, err := chain.IsDIDExist(ctx, p.Symbol); err != nil {
			return err
		} else if exists {
			return verr(DIDExist, p.Symbol)
		}
		if _, found, err := chain.GetDIDFromAddress(ctx, p.Address); err != nil {
			return err
		} else if found {
			return verr(AddressRegisteredDID, p.Address)
		}
		spendsETPAtAddress := false
		for i := range tx.Inputs {
			prev, ok, err := resolvePreviousOutput(ctx, chain, pool, tx.Inputs[i].PreviousOutput)
			if err != nil {
				return err
			}
			if ok && prev.Attachment.IsETP() && scriptOwnerAddress(prev.Script) == p.Address {
				spendsETPAtAddress = true
				break
			}
		}
		if !spendsETPAtAddress {
			return verr(DIDInputError, "did_register requires spending an etp output at the registering address")
		}
	}

	if transferIdx != -1 {
		p := tx.Outputs[transferIdx].Attachment.AsDIDTransfer()
		if exists, err := chain.IsDIDExist(ctx, p.Symbol); err != nil {
			return err
		} else if !exists {
			return verr(DIDNotExist, p.Symbol)
		}
		if _, found, err := chain.GetDIDFromAddress(ctx, p.NewAddress); err != nil {
			return err
		} else if found {
			return verr(AddressRegisteredDID, p.NewAddress)
		}
		if len(tx.Inputs) != 2 {
			return verr(DIDInputError, "did_transfer requires exactly two inputs")
		}
		spendsPriorDID, spendsETPAtNewAddress := false, false
		for i := range tx.Inputs {
			prev, ok, err := resolvePreviousOutput(ctx, chain, pool, tx.Inputs[i].PreviousOutput)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if prev.Attachment.IsDID() {
				symbol, _ := prev.Attachment.AssetSymbol()
				if symbol == p.Symbol {
					spendsPriorDID = true
				}
			}
			if prev.Attachment.IsETP() && scriptOwnerAddress(prev.Script) == p.NewAddress {
				spendsETPAtNewAddress = true
			}
		}
		if !spendsPriorDID || !spendsETPAtNewAddress {
			return verr(DIDInputError, "did_transfer input shape mismatch")
		}
	}

	for i := range tx.Outputs {
		a := tx.Outputs[i].Attachment
		if a.Version != AttachmentVersionDIDVerify {
			continue
		}
		switch {
		case a.IsAssetIssue():
			p := a.AsAssetIssue()
			if p.IssuerDID != a.ToDID {
				return verr(AssetDIDRegisterrNotMatch, p.Symbol)
			}
		case a.IsAssetSecondaryIssue():
			asset, found, err := chain.GetAsset(ctx, a.AsAssetSecondaryIssue().Symbol)
			if err != nil {
				return err
			}
			if !found || asset.IssuerDID != a.ToDID {
				return verr(AssetDIDRegisterrNotMatch, a.AsAssetSecondaryIssue().Symbol)
			}
		case a.IsAssetCert():
			p := a.AsAssetCert()
			if p.OwnerDID != a.ToDID {
				return verr(AssetDIDRegisterrNotMatch, p.Symbol)
			}
		case a.IsAssetCertIssue():
			p := a.AsAssetCertIssue()
			if p.OwnerDID != a.ToDID {
				return verr(AssetDIDRegisterrNotMatch, p.Symbol)
			}
		}
	}

	return nil
}
