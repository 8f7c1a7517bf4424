package state

import (
	"context"
	"errors"

	"github.com/dishantyadav04/agribid/foundation/blockchain/database"
)

// ErrNoTransactions is returned when a block is requested to be sealed
// and there are no transactions in the pool.
var ErrNoTransactions = errors.New("no transactions in mempool")

// =============================================================================

// MineNewBlock seals the current pending pool into the next block of the
// chain. The pool is snapshotted first: transactions submitted while the
// proof of work search runs are never merged into the block being sealed,
// they stay behind for the next pool.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {
	s.evHandler("state: MineNewBlock: MINING: check mempool count")

	if s.mempool.Count() == 0 {
		return database.Block{}, ErrNoTransactions
	}

	// Snapshot the pool and flip the copies to confirmed. The stored block
	// must carry final statuses since its hash covers the transaction
	// content. Identity hashes were assigned at creation and don't change.
	trans := s.mempool.Copy()
	for i := range trans {
		trans[i].Status = database.TxStatusConfirmed
	}

	// Add the synthetic reward transaction for sealing this block.
	trans = append(trans, database.NewRewardTx(s.beneficiaryID, s.genesis.MiningReward))

	s.evHandler("state: MineNewBlock: MINING: perform POW: txs[%d]", len(trans))

	// Attempt to seal a new block by solving the POW puzzle. This can be
	// cancelled.
	block, err := database.POW(ctx, s.beneficiaryID, s.genesis.Difficulty, s.db.LatestBlock(), trans, s.evHandler)
	if err != nil {
		return database.Block{}, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.Block{}, ctx.Err()
	}

	s.evHandler("state: MineNewBlock: MINING: commit block to chain")

	if err := s.commitBlock(block); err != nil {
		return database.Block{}, err
	}

	s.evHandler("viewer: state: MineNewBlock: block sealed: blk[%d] hash[%s] txs[%d]", block.Header.Number, block.Hash, len(block.Trans))

	return block, nil
}

// =============================================================================

// commitBlock appends the sealed block to the chain and drains exactly the
// sealed transactions from the pool, atomically with respect to readers
// and to new submissions.
func (s *State) commitBlock(block database.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Write(block); err != nil {
		return err
	}

	for _, tx := range block.Trans {
		s.mempool.Delete(tx.Hash)
	}

	return nil
}
