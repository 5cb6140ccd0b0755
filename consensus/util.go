package consensus

import "strings"

// addUint64 returns a+b, or an error if the addition would overflow uint64.
func addUint64(a, b uint64) (uint64, error) {
	if b > (^uint64(0) - a) {
		return 0, verr(OutputValueOverflow, "uint64 addition overflow")
	}
	return a + b, nil
}

// subUint64 returns a-b, or an error if b > a.
func subUint64(a, b uint64) (uint64, error) {
	if b > a {
		return 0, verr(FeesOutOfRange, "uint64 subtraction underflow")
	}
	return a - b, nil
}

// domainOf returns the portion of symbol before its first '.', or "" if
// symbol carries no domain separator.
func domainOf(symbol string) string {
	if i := strings.IndexByte(symbol, '.'); i >= 0 {
		return symbol[:i]
	}
	return ""
}

// hasDomain reports whether symbol is a naming symbol (carries a '.').
func hasDomain(symbol string) bool {
	return strings.IndexByte(symbol, '.') >= 0
}
