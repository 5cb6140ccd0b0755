package consensus

import (
	"context"
)

// CheckAssetIssueTransaction validates the asset-issue rule set. It is a no-op if tx carries no asset-issue output.
func CheckAssetIssueTransaction(ctx context.Context, tx *Tx, chain Chain) error {
	var issueIdx = -1
	var domainCertIdx, namingCertIdx, issueCertIdx = -1, -1, -1

	// Four mutually exclusive output kinds are classified in one pass here;
	// scanOutputs' single keep predicate doesn't fit this shape, so the
	// companion and consistency scans below are the ones wired through it.
	for i := range tx.Outputs {
		a := tx.Outputs[i].Attachment
		switch {
		case a.IsAssetIssue():
			if issueIdx != -1 {
				return verr(AssetIssueError, "more than one asset_issue output")
			}
			issueIdx = i
		case a.IsAssetCertIssue():
			p := a.AsAssetCertIssue()
			switch p.CertType {
			case CertIssue:
				if issueCertIdx != -1 {
					return verr(AssetIssueError, "more than one issue cert")
				}
				issueCertIdx = i
			case CertDomain:
				if domainCertIdx != -1 {
					return verr(AssetIssueError, "more than one domain cert")
				}
				domainCertIdx = i
			case CertNaming:
				if namingCertIdx != -1 {
					return verr(AssetIssueError, "more than one naming cert")
				}
				namingCertIdx = i
			}
		}
	}
	if issueIdx == -1 {
		return nil
	}

	issue := tx.Outputs[issueIdx].Attachment.AsAssetIssue()

	if _, err := scanOutputs(tx, func(out *TxOutput, _ int) (bool, error) {
		a := out.Attachment
		if !a.IsAssetIssue() {
			return false, nil
		}
		p := a.AsAssetIssue()
		if p.Symbol != issue.Symbol || p.Address != issue.Address ||
			p.SecondaryIssueThreshold != issue.SecondaryIssueThreshold {
			return false, verr(AssetIssueError, "inconsistent asset_issue outputs")
		}
		return true, nil
	}); err != nil {
		return err
	}

	if exists, err := chain.IsAssetExist(ctx, issue.Symbol); err != nil {
		return err
	} else if exists {
		return verr(AssetExist, issue.Symbol)
	}

	if maxSupply, ok := AttenuationParams(tx.Outputs[issueIdx].Script); ok && maxSupply != issue.MaxSupply {
		return verr(AssetIssueError, "attenuation model max_supply mismatch")
	}

	if issueCertIdx != -1 {
		p := tx.Outputs[issueCertIdx].Attachment.AsAssetCertIssue()
		if p.Symbol != issue.Symbol || p.Address != issue.Address {
			return verr(AssetIssueError, "issue cert does not match asset")
		}
	}

	if namingCertIdx != -1 {
		p := tx.Outputs[namingCertIdx].Attachment.AsAssetCertIssue()
		if p.Symbol != issue.Symbol {
			return verr(AssetIssueError, "naming cert symbol mismatch")
		}
	}
	if domainCertIdx != -1 {
		p := tx.Outputs[domainCertIdx].Attachment.AsAssetCertIssue()
		if p.Symbol != domainOf(issue.Symbol) {
			return verr(AssetIssueError, "domain cert symbol mismatch")
		}
	}
	if domainCertIdx != -1 && namingCertIdx != -1 {
		nc := tx.Outputs[namingCertIdx].Attachment.AsAssetCertIssue()
		dc := tx.Outputs[domainCertIdx].Attachment.AsAssetCertIssue()
		if nc.OwnerDID != dc.OwnerDID {
			return verr(AssetIssueError, "domain/naming cert owner mismatch")
		}
	}

	if _, err := scanOutputs(tx, func(out *TxOutput, i int) (bool, error) {
		if i == issueIdx || i == domainCertIdx || i == namingCertIdx || i == issueCertIdx {
			return true, nil
		}
		if out.Attachment.IsETP() || out.Attachment.IsMessage() {
			return false, nil
		}
		return false, verr(AssetIssueError, "unexpected companion output")
	}); err != nil {
		return err
	}

	if tx.Version >= CheckNovaFeature {
		present := CertMask(0)
		if issueCertIdx != -1 {
			present |= CertMaskIssue
		}
		if domainCertIdx != -1 {
			present |= CertMaskDomain
		}
		if namingCertIdx != -1 {
			present |= CertMaskNaming
		}
		if issue.CertMask&present != issue.CertMask {
			return verr(AssetIssueError, "cert_mask not satisfied")
		}
		if hasDomain(issue.Symbol) {
			if domainCertIdx == -1 && namingCertIdx == -1 {
				return verr(AssetCertNotProvided, issue.Symbol)
			}
			var owner string
			if domainCertIdx != -1 {
				owner = tx.Outputs[domainCertIdx].Attachment.AsAssetCertIssue().OwnerDID
			} else {
				owner = tx.Outputs[namingCertIdx].Attachment.AsAssetCertIssue().OwnerDID
			}
			if owner == "" {
				return verr(AssetCertError, "empty cert owner")
			}
		}
	}

	return nil
}
