// Package mempool is the in-process pending-transaction container: a
// concrete consensus.Pool plus the admission entry point that runs
// consensus.Validator against it before accepting a transaction.
package mempool

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"github.com/novaguard/novachain/consensus"
)

const rejectedCacheSize = 4096

// Pool is a concurrency-safe in-memory mempool. It implements
// consensus.Pool directly so a *Validator can be built over it without an
// adapter.
type Pool struct {
	mu   sync.RWMutex
	byHash map[consensus.Hash32]*consensus.Tx
	spentBy map[consensus.OutPoint]consensus.Hash32

	// rejected is a negative-lookup cache of recently rejected transaction
	// hashes, so a resubmission storm of the same bad transaction doesn't
	// re-run the full validator pipeline every time.
	rejected *lru.Cache
}

// New builds an empty Pool.
func New() *Pool {
	cache, err := lru.New(rejectedCacheSize)
	if err != nil {
		// lru.New only errors for size <= 0, never true for our constant.
		panic(fmt.Sprintf("mempool: lru.New: %v", err))
	}
	return &Pool{
		byHash:  make(map[consensus.Hash32]*consensus.Tx),
		spentBy: make(map[consensus.OutPoint]consensus.Hash32),
		rejected: cache,
	}
}

func (p *Pool) IsInPool(hash consensus.Hash32) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.byHash[hash]
	return ok
}

func (p *Pool) Find(hash consensus.Hash32) (*consensus.Tx, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	tx, ok := p.byHash[hash]
	return tx, ok
}

func (p *Pool) IsSpentInPool(tx *consensus.Tx) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, in := range tx.Inputs {
		if _, ok := p.spentBy[in.PreviousOutput]; ok {
			return true
		}
	}
	return false
}

// WasRecentlyRejected reports whether hash was rejected by a recent
// Admit call. Admission.Admit consults this before re-running the
// validator.
func (p *Pool) WasRecentlyRejected(hash consensus.Hash32) bool {
	return p.rejected.Contains(hash)
}

// insert adds tx under hash and marks its inputs spent. Callers must hold
// no lock; insert takes its own.
func (p *Pool) insert(hash consensus.Hash32, tx *consensus.Tx) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byHash[hash] = tx
	for _, in := range tx.Inputs {
		p.spentBy[in.PreviousOutput] = hash
	}
}

// Remove evicts a transaction, e.g. once it confirms in a block.
func (p *Pool) Remove(hash consensus.Hash32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	tx, ok := p.byHash[hash]
	if !ok {
		return
	}
	delete(p.byHash, hash)
	for _, in := range tx.Inputs {
		if p.spentBy[in.PreviousOutput] == hash {
			delete(p.spentBy, in.PreviousOutput)
		}
	}
}

// Size reports the current number of pending transactions.
func (p *Pool) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.byHash)
}

// Admission binds a Pool to a consensus.Validator and is the single public
// entry point callers use to submit a candidate transaction.
type Admission struct {
	pool      *Pool
	validator *consensus.Validator
}

// NewAdmission builds an Admission over pool using validator for rule
// evaluation.
func NewAdmission(pool *Pool, validator *consensus.Validator) *Admission {
	return &Admission{pool: pool, validator: validator}
}

// Admit runs the admission pipeline against tx. On a Success verdict, tx is
// inserted into the pool; on any rejection it is recorded in the
// negative-lookup cache and left out.
func (a *Admission) Admit(ctx context.Context, tx *consensus.Tx, hash consensus.Hash32) (*consensus.Verdict, error) {
	if a.pool.WasRecentlyRejected(hash) {
		return &consensus.Verdict{Code: consensus.Duplicate, Tx: tx}, nil
	}
	verdict, err := a.validator.Validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if verdict.Code != consensus.Success {
		a.pool.rejected.Add(hash, struct{}{})
		return verdict, nil
	}
	a.pool.insert(hash, tx)
	return verdict, nil
}

var _ consensus.Pool = (*Pool)(nil)
