// Package database handles the lower level support for maintaining the
// chain of sealed blocks, in memory and on whatever store is configured.
package database

import (
	"fmt"
	"sync"

	"github.com/dishantyadav04/agribid/foundation/blockchain/genesis"
)

// Serializer interface represents the behavior required to be implemented by
// any package providing support for storing and reading sealed blocks.
type Serializer interface {
	Write(block Block) error
	GetBlock(num uint64) (Block, error)
	ForEach() Iterator
	Close() error
	Reset() error
}

// Iterator interface represents the behavior required to be implemented by
// any package providing support to iterate over the stored blocks.
type Iterator interface {
	Next() (Block, error)
	Done() bool
}

// =============================================================================

// Database manages the chain of sealed blocks. The genesis block is
// synthesized on construction; the serializer holds blocks one and up.
type Database struct {
	mu sync.RWMutex

	genesis    genesis.Genesis
	blocks     []Block
	serializer Serializer
}

// New constructs a new database, synthesizes the genesis block and replays
// any blocks found on the configured store, validating each against its
// parent before accepting it.
func New(gen genesis.Genesis, serializer Serializer, ev func(v string, args ...any)) (*Database, error) {
	db := Database{
		genesis:    gen,
		blocks:     []Block{GenesisBlock(gen)},
		serializer: serializer,
	}

	iter := serializer.ForEach()
	for block, err := iter.Next(); !iter.Done(); block, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		if err := block.ValidateBlock(db.blocks[len(db.blocks)-1], ev); err != nil {
			return nil, err
		}

		db.blocks = append(db.blocks, block)
	}

	return &db, nil
}

// Close closes the open block store.
func (db *Database) Close() {
	db.serializer.Close()
}

// Reset re-initializes the database back to the genesis state.
func (db *Database) Reset() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.serializer.Reset(); err != nil {
		return err
	}

	db.blocks = []Block{GenesisBlock(db.genesis)}

	return nil
}

// Write appends a new sealed block to the chain. The block must already be
// validated; the chain is append only and blocks are never rewritten.
func (db *Database) Write(block Block) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.serializer.Write(block); err != nil {
		return err
	}

	db.blocks = append(db.blocks, block)

	return nil
}

// LatestBlock returns the most recently appended block.
func (db *Database) LatestBlock() Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.blocks[len(db.blocks)-1]
}

// BlockCount returns the number of blocks in the chain, genesis included.
func (db *Database) BlockCount() uint64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return uint64(len(db.blocks))
}

// GetBlock returns the contents of the specified block by number.
func (db *Database) GetBlock(num uint64) (Block, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if num >= uint64(len(db.blocks)) {
		return Block{}, fmt.Errorf("block %d does not exist", num)
	}

	return db.blocks[num], nil
}

// CopyChain returns a copy of the current chain of sealed blocks in order.
func (db *Database) CopyChain() []Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	blocks := make([]Block, len(db.blocks))
	copy(blocks, db.blocks)

	return blocks
}

// FindTransaction scans the sealed blocks oldest to newest and returns the
// first transaction carrying the specified hash.
func (db *Database) FindTransaction(hash string) (Tx, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, block := range db.blocks {
		for _, tx := range block.Trans {
			if tx.Hash == hash {
				return tx, true
			}
		}
	}

	return Tx{}, false
}

// Balance computes the balance for an account by replaying every sealed
// transaction, starting from the opening balance the genesis file assigns.
// Pending transactions are not final and never counted.
func (db *Database) Balance(account AccountID) int64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var balance int64
	for genAccount, amount := range db.genesis.Balances {
		if SameAccount(AccountID(genAccount), account) {
			balance += int64(amount)
		}
	}

	for _, block := range db.blocks {
		for _, tx := range block.Trans {
			if SameAccount(tx.From, account) {
				balance -= int64(tx.Amount)
			}
			if SameAccount(tx.To, account) {
				balance += int64(tx.Amount)
			}
		}
	}

	return balance
}

// ValidateChain walks the chain and verifies every block after genesis
// links to its parent's hash and that the stored hash reproduces from the
// block content. Corruption is reported, never repaired.
func (db *Database) ValidateChain(ev func(v string, args ...any)) error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for i := 1; i < len(db.blocks); i++ {
		if err := db.blocks[i].ValidateBlock(db.blocks[i-1], ev); err != nil {
			return fmt.Errorf("chain corrupt at block %d: %w", i, err)
		}
	}

	return nil
}
