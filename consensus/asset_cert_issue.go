package consensus

import "context"

// CheckAssetCertIssueTransaction validates the asset-cert-issue rule set.
// It is a no-op if tx carries no asset-cert-issue output.
func CheckAssetCertIssueTransaction(ctx context.Context, tx *Tx, chain Chain) error {
	var domainIdx = -1

	issueIdxs, err := scanOutputs(tx, func(out *TxOutput, _ int) (bool, error) {
		return out.Attachment.IsAssetCertIssue(), nil
	})
	if err != nil {
		return err
	}
	if len(issueIdxs) > 1 {
		return verr(AssetCertIssueError, "more than one asset_cert_issue output")
	}
	if len(issueIdxs) == 0 {
		return nil
	}
	issueIdx := issueIdxs[0]

	issue := tx.Outputs[issueIdx].Attachment.AsAssetCertIssue()

	if exists, err := chain.IsAssetCertExist(ctx, issue.Symbol, issue.CertType); err != nil {
		return err
	} else if exists {
		return verr(AssetCertExist, issue.Symbol)
	}

	if issue.CertType == CertNaming {
		domainIdxs, err := scanOutputs(tx, func(out *TxOutput, i int) (bool, error) {
			if i == issueIdx || !out.Attachment.IsAssetCertIssue() {
				return false, nil
			}
			return out.Attachment.AsAssetCertIssue().CertType == CertDomain, nil
		})
		if err != nil {
			return err
		}
		if len(domainIdxs) > 1 {
			return verr(AssetCertIssueError, "more than one domain cert")
		}
		if len(domainIdxs) == 1 {
			domainIdx = domainIdxs[0]
		}
		if domainIdx == -1 {
			return verr(AssetCertIssueError, "naming issue requires a domain cert")
		}
		dc := tx.Outputs[domainIdx].Attachment.AsAssetCertIssue()
		if dc.Symbol != domainOf(issue.Symbol) {
			return verr(AssetCertIssueError, "domain cert symbol mismatch")
		}
		did, found, err := chain.GetRegisteredDID(ctx, dc.OwnerDID)
		if err != nil {
			return err
		}
		if !found {
			return verr(AssetCertIssueError, "domain cert owner DID not registered")
		}
		if did.Address != dc.Address {
			return verr(AssetCertIssueError, "domain cert address does not match owner DID")
		}
		if exists, err := chain.IsAssetExist(ctx, issue.Symbol); err != nil {
			return err
		} else if exists {
			return verr(AssetExist, issue.Symbol)
		}
	}

	if _, err := scanOutputs(tx, func(out *TxOutput, i int) (bool, error) {
		if i == issueIdx || i == domainIdx {
			return true, nil
		}
		if out.Attachment.IsETP() || out.Attachment.IsMessage() {
			return false, nil
		}
		return false, verr(AssetCertIssueError, "unexpected companion output")
	}); err != nil {
		return err
	}

	return nil
}
