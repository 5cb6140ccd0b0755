package consensus

import "strings"

// SecondaryIssueThreshold is the percentage (0..100) of the total issued
// volume that a secondary issuer must already hold in order to mint more,
// plus two sentinels.
type SecondaryIssueThreshold byte

const (
	// SecondaryIssueFreelyIssuable means any holder may secondary-issue
	// without owning a threshold share.
	SecondaryIssueFreelyIssuable SecondaryIssueThreshold = 0

	// SecondaryIssueForbidden means the asset may never be secondary-issued.
	SecondaryIssueForbidden SecondaryIssueThreshold = 255
)

// IsValid reports whether t is a legal threshold value: the sentinels, or a
// percentage in [1, 100] (is_secondaryissue_threshold_value_ok).
func (t SecondaryIssueThreshold) IsValid() bool {
	if t == SecondaryIssueFreelyIssuable || t == SecondaryIssueForbidden {
		return true
	}
	return t >= 1 && t <= 100
}

// OwnsEnough reports whether a secondary issuer holding transferredVolume
// out of totalVolume already-issued units satisfies t
// (is_secondaryissue_owns_enough). Freely-issuable thresholds always
// satisfy; forbidden thresholds never do.
func (t SecondaryIssueThreshold) OwnsEnough(transferredVolume, totalVolume uint64) bool {
	switch t {
	case SecondaryIssueFreelyIssuable:
		return true
	case SecondaryIssueForbidden:
		return false
	}
	if totalVolume == 0 {
		return false
	}
	// transferredVolume/totalVolume >= t/100, computed without floating point.
	return transferredVolume*100 >= totalVolume*uint64(t)
}

// CertMask is a bitset over CertType values, used to express which
// certificate types an asset requires to accompany its issuance.
type CertMask uint8

const (
	CertMaskIssue  CertMask = 1 << iota // bit for CertIssue
	CertMaskDomain                      // bit for CertDomain
	CertMaskNaming                      // bit for CertNaming
)

// Asset is the confirmed-chain record for an issued symbol.
type Asset struct {
	Symbol                  string
	MaxSupply               uint64
	IssuingAddress          string
	IssuerDID               string
	SecondaryIssueThreshold SecondaryIssueThreshold
	CertMask                CertMask
}

// NormalizeSymbol upper-cases an asset/cert/mit/did symbol, the
// case-normalization boundary "Symbol case" assumes has already run
// by the time the validator sees it. Exported so callers assembling test
// fixtures (or a codec adapter) can share the same rule.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(symbol)
}

// IsValidSymbolChars reports whether symbol's charset is acceptable for an
// asset/mit symbol: uppercase ASCII letters, digits, '.', and '_', non-empty.
func IsValidSymbolChars(symbol string) bool {
	if symbol == "" {
		return false
	}
	for _, r := range symbol {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '_':
		default:
			return false
		}
	}
	return true
}

// maxSymbolLengthForVersion returns the maximum symbol length admitted for
// the given transaction version: versions at or above CheckNovaFeature allow domain-qualified
// (longer) symbols.
func maxSymbolLengthForVersion(version uint32) int {
	if version >= CheckNovaFeature {
		return 64
	}
	return 32
}

// IsValidAssetSymbol validates an asset symbol against version-aware rules.
func IsValidAssetSymbol(symbol string, version uint32) bool {
	if !IsValidSymbolChars(symbol) {
		return false
	}
	if len(symbol) > maxSymbolLengthForVersion(version) {
		return false
	}
	return true
}

// IsValidMITSymbol validates a MIT symbol (same charset/length rules as an
// asset symbol, but MIT symbols never carry a domain separator).
func IsValidMITSymbol(symbol string, version uint32) bool {
	if hasDomain(symbol) {
		return false
	}
	return IsValidAssetSymbol(symbol, version)
}

// IsValidDIDSymbol validates a DID symbol: same charset/length rules, and
// additionally a DID symbol must not itself be syntactically an address.
func IsValidDIDSymbol(symbol string, version uint32, isAddress func(string) bool) bool {
	if isAddress != nil && isAddress(symbol) {
		return false
	}
	return IsValidAssetSymbol(symbol, version)
}

// AssetCert is the confirmed-chain record for a (symbol, cert_type) pair.
type AssetCert struct {
	Symbol   string
	CertType CertType
	OwnerDID string
	Address  string
}

// MIT is the confirmed-chain record for a registered MIT symbol.
type MIT struct {
	Symbol  string
	Address string
}

// DID is the confirmed-chain record for a registered DID symbol.
type DID struct {
	Symbol  string
	Address string
}
