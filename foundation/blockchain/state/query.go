package state

import (
	"github.com/dishantyadav04/agribid/foundation/blockchain/database"
)

// QueryLatest represents to query the latest block in the chain.
const QueryLatest = ^uint64(0) >> 1

// =============================================================================

// ChainStats is the summary view of the ledger the facade exposes.
type ChainStats struct {
	BlockCount   uint64         `json:"block_count"`
	PendingCount int            `json:"pending_count"`
	IsValid      bool           `json:"is_valid"`
	LatestBlock  database.Block `json:"latest_block"`
}

// QueryTransaction returns the transaction with the specified hash. The
// pending pool is searched first so in-flight transactions are visible
// immediately, then the sealed blocks oldest to newest.
func (s *State) QueryTransaction(hash string) (database.Tx, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if tx, found := s.mempool.FindByHash(hash); found {
		return tx, true
	}

	return s.db.FindTransaction(hash)
}

// QueryBalance computes the balance for the specified account by replaying
// every sealed transaction. Pending transactions are excluded since they
// are not final.
func (s *State) QueryBalance(account database.AccountID) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.db.Balance(account)
}

// QueryChainStats returns the current summary of the chain. Without an
// intervening mutation two calls return identical values.
func (s *State) QueryChainStats() ChainStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ChainStats{
		BlockCount:   s.db.BlockCount(),
		PendingCount: s.mempool.Count(),
		IsValid:      s.db.ValidateChain(s.evHandler) == nil,
		LatestBlock:  s.db.LatestBlock(),
	}
}

// QueryBlocksByNumber returns the set of blocks based on block numbers.
func (s *State) QueryBlocksByNumber(from uint64, to uint64) []database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latest := s.db.LatestBlock().Header.Number
	if from == QueryLatest {
		from = latest
	}
	if to == QueryLatest {
		to = latest
	}

	var out []database.Block
	for i := from; i <= to; i++ {
		block, err := s.db.GetBlock(i)
		if err != nil {
			s.evHandler("state: QueryBlocksByNumber: ERROR: %s", err)
			return nil
		}
		out = append(out, block)
	}

	return out
}

// ValidateChain verifies the hash linkage and content hashes of the whole
// chain. A corrupt chain is reported, never repaired; reads keep working.
func (s *State) ValidateChain() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.db.ValidateChain(s.evHandler)
}

// RetrieveMempool returns an ordered copy of the pending pool.
func (s *State) RetrieveMempool() []database.Tx {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.mempool.Copy()
}

// RetrieveLatestBlock returns the latest sealed block.
func (s *State) RetrieveLatestBlock() database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.db.LatestBlock()
}

// MempoolLength returns the current length of the pending pool.
func (s *State) MempoolLength() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.mempool.Count()
}
