package consensus

// aggState holds the running aggregates scoped to one validation run.
// A single instance is owned exclusively by the validation that created it.
type aggState struct {
	valueIn           uint64
	assetAmountIn     uint64
	assetCertsIn      []CertType
	oldSymbolIn       string
	businessKindIn    BusinessKind
	businessKindSet   bool
	lastBlockHeight   uint64
	unconfirmedInputs []int
}

// assetAmountHeld returns the quantity of asset units a. conveys when spent
// as a previous output: the full max supply for the issuance that created
// the asset, or the carried amount for a secondary issue / transfer output.
func assetAmountHeld(a Attachment) uint64 {
	switch {
	case a.IsAssetIssue():
		return a.AsAssetIssue().MaxSupply
	case a.IsAssetSecondaryIssue():
		return a.AsAssetSecondaryIssue().Amount
	case a.IsAssetTransfer():
		return a.AsAssetTransfer().Amount
	default:
		return 0
	}
}

// hasCertType reports whether certs already contains ct.
func hasCertType(certs []CertType, ct CertType) bool {
	for _, c := range certs {
		if c == ct {
			return true
		}
	}
	return false
}

// latchSymbol implements the old_symbol_in latch-then-agree rule shared by
// asset/mit/did inputs: the first non-empty
// symbol seen is remembered; every subsequent symbol must equal it.
func (s *aggState) latchSymbol(symbol string) error {
	if s.oldSymbolIn == "" {
		s.oldSymbolIn = symbol
		return nil
	}
	if symbol != s.oldSymbolIn {
		return verr(ValidateInputsFailed, "symbol disagreement across inputs")
	}
	return nil
}
