package consensus

// checkAssetAmount implements check_asset_amount: the sum of input asset
// amount must equal the sum of
// output asset-transfer amounts for the transaction's single asset symbol.
func checkAssetAmount(tx *Tx, agg *aggState) error {
	var outAmount uint64
	var err error
	for _, out := range tx.Outputs {
		if !out.Attachment.IsAssetTransfer() {
			continue
		}
		outAmount, err = addUint64(outAmount, out.Attachment.AsAssetTransfer().Amount)
		if err != nil {
			return err
		}
	}
	if outAmount != agg.assetAmountIn {
		return verr(AssetAmountNotEqual, "")
	}
	return nil
}

// checkAssetSymbol implements "check_asset_symbol": every asset-bearing
// output must carry the same symbol latched as old_symbol_in.
func checkAssetSymbol(tx *Tx, agg *aggState) error {
	for _, out := range tx.Outputs {
		symbol, ok := out.Attachment.AssetSymbol()
		if !ok || !out.Attachment.IsAsset() {
			continue
		}
		if symbol != agg.oldSymbolIn {
			return verr(AssetSymbolNotMatch, symbol)
		}
	}
	return nil
}

// checkAssetCerts implements "check_asset_certs": the output cert multiset
// must equal the input cert multiset, modulo the domain-cert relaxation
// (a domain cert in the input set authorizes any number of sub-symbol cert
// outputs without a matching 1:1 count).
func checkAssetCerts(tx *Tx, agg *aggState) error {
	var outCerts []CertType
	for _, out := range tx.Outputs {
		if out.Attachment.IsAssetCert() {
			outCerts = append(outCerts, out.Attachment.AsAssetCert().CertType)
		}
	}
	if hasCertType(agg.assetCertsIn, CertDomain) {
		return nil
	}
	if len(outCerts) != len(agg.assetCertsIn) {
		return verr(AssetCertError, "cert count mismatch")
	}
	for _, in := range agg.assetCertsIn {
		if !hasCertType(outCerts, in) {
			return verr(AssetCertError, "cert set mismatch")
		}
	}
	return nil
}

// checkAssetMIT implements "check_asset_mit": a spent MIT must be
// re-conveyed by exactly one mit-transfer output.
func checkAssetMIT(tx *Tx, agg *aggState) error {
	count := 0
	for _, out := range tx.Outputs {
		if out.Attachment.IsAssetMITTransfer() {
			count++
		}
	}
	if count != 1 {
		return verr(MITError, "")
	}
	return nil
}

// checkDIDSymbolMatch implements the DID-transfer symbol-match check: the
// did-transfer output's symbol must equal old_symbol_in.
func checkDIDSymbolMatch(tx *Tx, agg *aggState) error {
	for _, out := range tx.Outputs {
		if !out.Attachment.IsDIDTransfer() {
			continue
		}
		symbol, _ := out.Attachment.AssetSymbol()
		if symbol != agg.oldSymbolIn {
			return verr(DIDSymbolNotMatch, symbol)
		}
	}
	return nil
}
