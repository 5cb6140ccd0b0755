package consensus

import "context"

// ChainSettings carries chain-wide flags the validator needs to evaluate
// version- and network-gated rules.
type ChainSettings struct {
	UseTestnetRules bool
}

// Chain is the read-only confirmed-chain lookup surface the validator
// depends on. It is declared here, next to the types it
// returns, rather than in a separate package: chainstore's bbolt-backed
// implementation depends on consensus, so consensus cannot depend back on
// it without a cycle. Every method may hit durable storage; callers should
// expect each call to be a suspension point and pass a context
// they are prepared to have observed at cancellation.
type Chain interface {
	// FetchTransaction looks up a transaction by hash. found is false if no
	// confirmed transaction with that hash exists.
	FetchTransaction(ctx context.Context, hash Hash32) (tx *Tx, height uint64, found bool, err error)

	// FetchTransactionIndex returns the confirmed height of the
	// transaction identified by hash. found is false if it is not
	// confirmed.
	FetchTransactionIndex(ctx context.Context, hash Hash32) (height uint64, found bool, err error)

	// FetchLastHeight returns the height of the current confirmed tip.
	FetchLastHeight(ctx context.Context) (uint64, error)

	// FetchSpend reports whether op is already spent by a confirmed
	// transaction.
	FetchSpend(ctx context.Context, op OutPoint) (spent bool, err error)

	IsAssetExist(ctx context.Context, symbol string) (bool, error)
	IsDIDExist(ctx context.Context, symbol string) (bool, error)
	IsAssetCertExist(ctx context.Context, symbol string, certType CertType) (bool, error)

	GetAsset(ctx context.Context, symbol string) (asset *Asset, found bool, err error)
	GetAssetCert(ctx context.Context, symbol string, certType CertType) (cert *AssetCert, found bool, err error)
	GetRegisteredMIT(ctx context.Context, symbol string) (mit *MIT, found bool, err error)
	GetRegisteredDID(ctx context.Context, symbol string) (did *DID, found bool, err error)

	// GetDIDFromAddress resolves an address to the DID symbol currently
	// bound to it, if any.
	GetDIDFromAddress(ctx context.Context, address string) (symbol string, found bool, err error)

	// GetAssetVolume returns the total amount of symbol issued so far on
	// the confirmed chain.
	GetAssetVolume(ctx context.Context, symbol string) (uint64, error)

	IsValidAddress(address string) bool

	ChainSettings() ChainSettings
}

// Pool is the read-only mempool membership surface. Unlike
// Chain it is synchronous: the mempool container lives in-process.
type Pool interface {
	// IsInPool reports whether a transaction with this hash is already
	// pending in the mempool.
	IsInPool(hash Hash32) bool

	// Find looks up a pending transaction by hash.
	Find(hash Hash32) (tx *Tx, found bool)

	// IsSpentInPool reports whether any pending transaction already
	// spends one of tx's inputs.
	IsSpentInPool(tx *Tx) bool
}
