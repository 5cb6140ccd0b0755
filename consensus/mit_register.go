package consensus

import "context"

// CheckAssetMITRegisterTransaction validates the MIT-register rule set.
// It is a no-op if tx carries no asset-mit-register output.
func CheckAssetMITRegisterTransaction(ctx context.Context, tx *Tx, chain Chain, pool Pool) error {
	var registeringAddress string
	haveAny := false

	registerIdxs, err := scanOutputs(tx, func(out *TxOutput, _ int) (bool, error) {
		if !out.Attachment.IsAssetMITRegister() {
			return false, nil
		}
		p := out.Attachment.AsMITRegister()
		if exists, err := chain.IsAssetExist(ctx, p.Symbol); err != nil {
			return false, err
		} else if exists {
			return false, verr(MITExist, p.Symbol)
		}
		if _, found, err := chain.GetRegisteredMIT(ctx, p.Symbol); err != nil {
			return false, err
		} else if found {
			return false, verr(MITExist, p.Symbol)
		}
		if !haveAny {
			registeringAddress = p.Address
			haveAny = true
		} else if p.Address != registeringAddress {
			return false, verr(MITRegisterError, "mit_register outputs disagree on address")
		}
		return true, nil
	})
	if err != nil {
		return err
	}
	if len(registerIdxs) == 0 || !haveAny {
		return nil
	}

	for i := range tx.Inputs {
		prev, ok, err := resolvePreviousOutput(ctx, chain, pool, tx.Inputs[i].PreviousOutput)
		if err != nil {
			return err
		}
		if !ok || !prev.Attachment.IsETP() {
			continue
		}
		if addr := scriptOwnerAddress(prev.Script); addr != registeringAddress {
			return verr(ValidateInputsFailed, "etp input address mismatch")
		}
	}

	return nil
}

// scriptOwnerAddress extracts the key-hash-derived address embedded in a
// locking script. The validator treats address derivation as the codec
// layer's responsibility; here the script's recognized key-hash pattern
// is echoed back verbatim as the address identifier; a real deployment
// wires this through the codec's hash160/address-encoding routine instead.
func scriptOwnerAddress(s Script) string {
	return string(s)
}
