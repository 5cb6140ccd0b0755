package consensus

import "context"

// fakeChain is an in-memory Chain used by consensus package tests. It holds
// no concurrency guards: tests run sequentially against one instance.
type fakeChain struct {
	txs       map[Hash32]struct {
		tx     *Tx
		height uint64
	}
	spends       map[OutPoint]bool
	lastHeight   uint64
	assets       map[string]*Asset
	certs        map[string]*AssetCert
	mits         map[string]*MIT
	dids         map[string]*DID
	addrToDID    map[string]string
	assetVolumes map[string]uint64
	validAddrs   map[string]bool
	testnet      bool
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		txs: make(map[Hash32]struct {
			tx     *Tx
			height uint64
		}),
		spends:       make(map[OutPoint]bool),
		assets:       make(map[string]*Asset),
		certs:        make(map[string]*AssetCert),
		mits:         make(map[string]*MIT),
		dids:         make(map[string]*DID),
		addrToDID:    make(map[string]string),
		assetVolumes: make(map[string]uint64),
		validAddrs:   make(map[string]bool),
	}
}

func (c *fakeChain) putTx(hash Hash32, tx *Tx, height uint64) {
	c.txs[hash] = struct {
		tx     *Tx
		height uint64
	}{tx, height}
	if height > c.lastHeight {
		c.lastHeight = height
	}
}

func certKey(symbol string, ct CertType) string {
	return symbol + "#" + string(rune('0'+ct))
}

func (c *fakeChain) FetchTransaction(_ context.Context, hash Hash32) (*Tx, uint64, bool, error) {
	e, ok := c.txs[hash]
	if !ok {
		return nil, 0, false, nil
	}
	return e.tx, e.height, true, nil
}

func (c *fakeChain) FetchTransactionIndex(_ context.Context, hash Hash32) (uint64, bool, error) {
	e, ok := c.txs[hash]
	if !ok {
		return 0, false, nil
	}
	return e.height, true, nil
}

func (c *fakeChain) FetchLastHeight(_ context.Context) (uint64, error) {
	return c.lastHeight, nil
}

func (c *fakeChain) FetchSpend(_ context.Context, op OutPoint) (bool, error) {
	return c.spends[op], nil
}

func (c *fakeChain) IsAssetExist(_ context.Context, symbol string) (bool, error) {
	_, ok := c.assets[symbol]
	return ok, nil
}

func (c *fakeChain) IsDIDExist(_ context.Context, symbol string) (bool, error) {
	_, ok := c.dids[symbol]
	return ok, nil
}

func (c *fakeChain) IsAssetCertExist(_ context.Context, symbol string, ct CertType) (bool, error) {
	_, ok := c.certs[certKey(symbol, ct)]
	return ok, nil
}

func (c *fakeChain) GetAsset(_ context.Context, symbol string) (*Asset, bool, error) {
	a, ok := c.assets[symbol]
	return a, ok, nil
}

func (c *fakeChain) GetAssetCert(_ context.Context, symbol string, ct CertType) (*AssetCert, bool, error) {
	a, ok := c.certs[certKey(symbol, ct)]
	return a, ok, nil
}

func (c *fakeChain) GetRegisteredMIT(_ context.Context, symbol string) (*MIT, bool, error) {
	m, ok := c.mits[symbol]
	return m, ok, nil
}

func (c *fakeChain) GetRegisteredDID(_ context.Context, symbol string) (*DID, bool, error) {
	d, ok := c.dids[symbol]
	return d, ok, nil
}

func (c *fakeChain) GetDIDFromAddress(_ context.Context, address string) (string, bool, error) {
	symbol, ok := c.addrToDID[address]
	return symbol, ok, nil
}

func (c *fakeChain) GetAssetVolume(_ context.Context, symbol string) (uint64, error) {
	return c.assetVolumes[symbol], nil
}

func (c *fakeChain) IsValidAddress(address string) bool {
	if len(c.validAddrs) == 0 {
		return address != ""
	}
	return c.validAddrs[address]
}

func (c *fakeChain) ChainSettings() ChainSettings {
	return ChainSettings{UseTestnetRules: c.testnet}
}

// fakePool is an in-memory Pool used by consensus package tests.
type fakePool struct {
	byHash map[Hash32]*Tx
	spent  map[OutPoint]bool
}

func newFakePool() *fakePool {
	return &fakePool{byHash: make(map[Hash32]*Tx), spent: make(map[OutPoint]bool)}
}

func (p *fakePool) IsInPool(hash Hash32) bool {
	_, ok := p.byHash[hash]
	return ok
}

func (p *fakePool) Find(hash Hash32) (*Tx, bool) {
	tx, ok := p.byHash[hash]
	return tx, ok
}

func (p *fakePool) IsSpentInPool(tx *Tx) bool {
	for _, in := range tx.Inputs {
		if p.spent[in.PreviousOutput] {
			return true
		}
	}
	return false
}

// nullChecker always reports a successful script check. It stands in for
// the real interpreter in tests exercising rules other than script
// semantics.
type nullChecker struct{}

func (nullChecker) CheckConsensus(Script, *Tx, int, VerifyFlags) (bool, error) {
	return true, nil
}
