// Package badgerdb implements the ability to read and write blocks inside
// a badger key/value store. Useful when the chain outgrows one file per
// block but the node still runs on a single machine.
package badgerdb

import (
	"encoding/binary"
	"encoding/json"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/dishantyadav04/agribid/foundation/blockchain/database"
)

// BadgerDB represents the serialization implementation for reading and
// storing blocks inside a badger database. This implements the
// database.Serializer interface.
type BadgerDB struct {
	db *badger.DB
}

// New constructs a BadgerDB value for use.
func New(dbPath string) (*BadgerDB, error) {
	options := badger.DefaultOptions(dbPath)
	options.Logger = nil

	db, err := badger.Open(options)
	if err != nil {
		return nil, err
	}

	return &BadgerDB{db: db}, nil
}

// Close releases the underlying badger database.
func (b *BadgerDB) Close() error {
	return b.db.Close()
}

// Write takes the specified block and stores it under its block number.
func (b *BadgerDB) Write(block database.Block) error {
	data, err := json.Marshal(block)
	if err != nil {
		return err
	}

	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(blockKey(block.Header.Number), data)
	})
}

// GetBlock locates and returns the contents of the specified block by number.
func (b *BadgerDB) GetBlock(num uint64) (database.Block, error) {
	var block database.Block

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(blockKey(num))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &block)
		})
	})
	if err != nil {
		return database.Block{}, err
	}

	return block, nil
}

// ForEach returns an iterator to walk through all the blocks
// starting with block number 1.
func (b *BadgerDB) ForEach() database.Iterator {
	return &badgerIterator{storage: b, current: 1}
}

// Reset will drop every stored block from the database.
func (b *BadgerDB) Reset() error {
	return b.db.DropAll()
}

// blockKey forms the fixed width key for the specified block number so
// badger's lexicographic ordering matches chain order.
func blockKey(num uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, num)
	return key
}

// =============================================================================

// badgerIterator represents the iteration implementation for walking
// through the blocks held by badger. This implements the database.Iterator
// interface.
type badgerIterator struct {
	storage *BadgerDB // Access to the storage API.
	current uint64    // Current block number being iterated over.
	eoc     bool      // Represents the iterator is at the end of the chain.
}

// Next retrieves the next block from the store.
func (bi *badgerIterator) Next() (database.Block, error) {
	if bi.eoc {
		return database.Block{}, errors.New("end of chain")
	}

	block, err := bi.storage.GetBlock(bi.current)
	if err != nil {
		bi.eoc = true
	}

	bi.current++

	return block, err
}

// Done returns the end of chain value.
func (bi *badgerIterator) Done() bool {
	return bi.eoc
}
