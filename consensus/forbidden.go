package consensus

// isForbiddenSymbol reports whether symbol may never be used as an asset
// symbol: the empty symbol, and the reserved native-coin symbol "ETP".
func isForbiddenSymbol(symbol string) bool {
	return symbol == "" || symbol == "ETP"
}
