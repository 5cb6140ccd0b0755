package consensus

import (
	"context"
)

// CheckSecondaryIssueTransaction validates the secondary-issue rule set.
// It is a no-op if tx carries no asset-secondary-issue output.
func CheckSecondaryIssueTransaction(ctx context.Context, tx *Tx, chain Chain, pool Pool) error {
	var issueIdx = -1
	var issueCertIdx = -1
	var transferVolume uint64
	var err error

	for i := range tx.Outputs {
		a := tx.Outputs[i].Attachment
		switch {
		case a.IsAssetSecondaryIssue():
			if issueIdx != -1 {
				return verr(AssetSecondaryIssueError, "more than one secondary_issue output")
			}
			issueIdx = i
		case a.IsAssetCert():
			p := a.AsAssetCert()
			if p.CertType != CertIssue {
				return verr(AssetSecondaryIssueError, "only issue-type certs allowed")
			}
			if issueCertIdx != -1 {
				return verr(AssetSecondaryIssueError, "more than one issue cert")
			}
			issueCertIdx = i
		case a.IsAssetTransfer():
			p := a.AsAssetTransfer()
			transferVolume, err = addUint64(transferVolume, p.Amount)
			if err != nil {
				return err
			}
		}
	}
	if issueIdx == -1 {
		return nil
	}

	issue := tx.Outputs[issueIdx].Attachment.AsAssetSecondaryIssue()

	asset, found, err := chain.GetAsset(ctx, issue.Symbol)
	if err != nil {
		return err
	}
	if !found {
		return verr(AssetSecondaryIssueError, "asset does not exist")
	}
	if !asset.SecondaryIssueThreshold.IsValid() {
		return verr(AssetSecondaryIssueThresholdInvalid, issue.Symbol)
	}

	if _, err := scanOutputs(tx, func(out *TxOutput, _ int) (bool, error) {
		a := out.Attachment
		if !a.IsAssetSecondaryIssue() {
			return false, nil
		}
		p := a.AsAssetSecondaryIssue()
		if p.Symbol != issue.Symbol || p.Address != issue.Address {
			return false, verr(AssetSecondaryIssueError, "inconsistent secondary_issue outputs")
		}
		return true, nil
	}); err != nil {
		return err
	}

	if maxSupply, ok := AttenuationParams(tx.Outputs[issueIdx].Script); ok && maxSupply != asset.MaxSupply {
		return verr(AssetSecondaryIssueError, "attenuation model max_supply mismatch")
	}

	totalVolume, err := chain.GetAssetVolume(ctx, issue.Symbol)
	if err != nil {
		return err
	}
	if _, err := addUint64(totalVolume, issue.Amount); err != nil {
		return err
	}

	if !asset.SecondaryIssueThreshold.OwnsEnough(transferVolume, totalVolume) {
		return verr(AssetSecondaryIssueShareNotEnough, issue.Symbol)
	}

	if tx.Version >= CheckNovaFeature && issueCertIdx == -1 {
		return verr(AssetCertError, "secondary issue requires an issue cert")
	}

	for i := range tx.Inputs {
		prev, ok, err := resolvePreviousOutput(ctx, chain, pool, tx.Inputs[i].PreviousOutput)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		a := prev.Attachment
		if a.IsAsset() {
			if addr, ok := outputAddress(a); ok && addr != issue.Address {
				return verr(ValidateInputsFailed, "asset input address mismatch")
			}
		}
		if a.IsAssetCert() {
			p := a.AsAssetCert()
			if p.Symbol != issue.Symbol || p.CertType != CertIssue {
				return verr(ValidateInputsFailed, "cert input symbol/type mismatch")
			}
			if p.Address != issue.Address {
				return verr(ValidateInputsFailed, "cert input address mismatch")
			}
		}
	}

	if _, err := scanOutputs(tx, func(out *TxOutput, i int) (bool, error) {
		if i == issueIdx || i == issueCertIdx {
			return true, nil
		}
		a := out.Attachment
		if a.IsETP() || a.IsMessage() || a.IsAssetTransfer() {
			return false, nil
		}
		return false, verr(AssetSecondaryIssueError, "unexpected companion output")
	}); err != nil {
		return err
	}

	return nil
}

// outputAddress extracts the spendable address an asset-bearing attachment
// declares, for the secondary-issue input-binding check.
func outputAddress(a Attachment) (string, bool) {
	switch {
	case a.IsAssetIssue():
		return a.AsAssetIssue().Address, true
	case a.IsAssetSecondaryIssue():
		return a.AsAssetSecondaryIssue().Address, true
	case a.IsAssetTransfer():
		return a.AsAssetTransfer().Address, true
	default:
		return "", false
	}
}
