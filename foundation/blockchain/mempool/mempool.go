// Package mempool maintains the pool of transactions accepted by the
// ledger but not yet sealed into a block. The pool preserves arrival order
// so blocks record transactions in the order they were submitted.
package mempool

import (
	"sync"

	"github.com/dishantyadav04/agribid/foundation/blockchain/database"
)

// Mempool represents an ordered pool of pending transactions keyed by
// transaction hash.
type Mempool struct {
	mu   sync.RWMutex
	pool []database.Tx
}

// New constructs a new mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Upsert adds or replaces a transaction in the mempool and reports the
// resulting pool size. A replaced transaction keeps its arrival position.
func (mp *Mempool) Upsert(tx database.Tx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	for i := range mp.pool {
		if mp.pool[i].Hash == tx.Hash {
			mp.pool[i] = tx
			return len(mp.pool)
		}
	}

	mp.pool = append(mp.pool, tx)

	return len(mp.pool)
}

// Delete removes the transaction with the specified hash from the mempool.
func (mp *Mempool) Delete(txHash string) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	for i := range mp.pool {
		if mp.pool[i].Hash == txHash {
			mp.pool = append(mp.pool[:i], mp.pool[i+1:]...)
			return
		}
	}
}

// FindByHash returns the pending transaction with the specified hash.
func (mp *Mempool) FindByHash(txHash string) (database.Tx, bool) {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	for _, tx := range mp.pool {
		if tx.Hash == txHash {
			return tx, true
		}
	}

	return database.Tx{}, false
}

// Copy returns an ordered snapshot of the pool. Sealing works from such a
// snapshot so transactions arriving mid-search belong to the next pool.
func (mp *Mempool) Copy() []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	pool := make([]database.Tx, len(mp.pool))
	copy(pool, mp.pool)

	return pool
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = nil
}
