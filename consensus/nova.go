package consensus

import "context"

// NovaActive reports whether the nova feature bundle is active at the given
// confirmed-chain height: always on testnet, and on mainnet once height
// exceeds NovaActivationHeightMainnet.
func NovaActive(chain Chain, height uint64) bool {
	if chain.ChainSettings().UseTestnetRules {
		return true
	}
	return height > NovaActivationHeightMainnet
}

// novaActiveAt is a convenience wrapper used by CheckTransactionBasic,
// which already has a ctx and chain in hand and needs the current tip.
func novaActiveAt(ctx context.Context, chain Chain) (bool, uint64, error) {
	height, err := chain.FetchLastHeight(ctx)
	if err != nil {
		return false, 0, err
	}
	return NovaActive(chain, height), height, nil
}
