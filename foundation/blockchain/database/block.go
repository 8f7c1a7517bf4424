package database

import (
	"context"
	"fmt"
	"time"

	"github.com/dishantyadav04/agribid/foundation/blockchain/digest"
	"github.com/dishantyadav04/agribid/foundation/blockchain/genesis"
)

// BlockHeader represents common information required for each block.
type BlockHeader struct {
	Number        uint64    `json:"number"`          // Block number in the chain.
	PrevBlockHash string    `json:"prev_block_hash"` // Hash of the previous block in the chain.
	TimeStamp     uint64    `json:"timestamp"`       // Time the block was sealed.
	BeneficiaryID AccountID `json:"beneficiary"`     // The account receiving the mining reward.
	Difficulty    uint16    `json:"difficulty"`      // Number of leading 0's needed to solve the hash solution.
	Nonce         uint64    `json:"nonce"`           // Value identified to solve the hash solution.
}

// Block represents a sealed batch of transactions. Once appended to the
// chain a block is never mutated; the stored hash must always reproduce
// from the remaining content.
type Block struct {
	Hash   string      `json:"hash"`
	Header BlockHeader `json:"header"`
	Trans  []Tx        `json:"trans"`
}

// GenesisBlock constructs the fixed first block of the chain. It carries no
// transactions and links to the all-zero sentinel.
func GenesisBlock(gen genesis.Genesis) Block {
	var timeStamp uint64
	if !gen.Date.IsZero() {
		timeStamp = uint64(gen.Date.UTC().Unix())
	}

	return Block{
		Hash: digest.ZeroHash,
		Header: BlockHeader{
			Number:        0,
			PrevBlockHash: digest.ZeroHash,
			TimeStamp:     timeStamp,
			Difficulty:    gen.Difficulty,
		},
	}
}

// POW constructs a new Block and performs the work to find a nonce that
// solves the cryptographic POW puzzle.
func POW(ctx context.Context, beneficiaryID AccountID, difficulty uint16, prevBlock Block, trans []Tx, ev func(v string, args ...any)) (Block, error) {
	nb := Block{
		Header: BlockHeader{
			Number:        prevBlock.Header.Number + 1,
			PrevBlockHash: prevBlock.Hash,
			TimeStamp:     uint64(time.Now().UTC().Unix()),
			BeneficiaryID: beneficiaryID,
			Difficulty:    difficulty,
			Nonce:         0, // Will be identified by the POW algorithm.
		},
		Trans: trans,
	}

	if err := nb.performPOW(ctx, ev); err != nil {
		return Block{}, err
	}

	return nb, nil
}

// performPOW does the work of mining to find a valid hash for a specified
// block. Pointer semantics are being used since a nonce is being discovered.
func (b *Block) performPOW(ctx context.Context, ev func(v string, args ...any)) error {
	ev("database: performPOW: MINING: started: blk[%d]", b.Header.Number)
	defer ev("database: performPOW: MINING: completed: blk[%d]", b.Header.Number)

	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: performPOW: MINING: attempts[%d]", attempts)
		}

		// Did we get cancelled while searching.
		if ctx.Err() != nil {
			ev("database: performPOW: MINING: CANCELLED")
			return ctx.Err()
		}

		// Hash the block and check if we have solved the puzzle.
		hash := b.ContentHash()
		if !digest.IsHashSolved(b.Header.Difficulty, hash) {
			b.Header.Nonce++
			continue
		}

		b.Hash = hash

		ev("database: performPOW: MINING: SOLVED: prevBlk[%s]: newBlk[%s]", b.Header.PrevBlockHash, hash)
		ev("database: performPOW: MINING: attempts[%d]", attempts)

		return nil
	}
}

// ContentHash recomputes the digest over the block with the hash field
// blanked. For a well-formed block this reproduces the stored hash.
func (b Block) ContentHash() string {
	b.Hash = ""
	return digest.Hash(b)
}

// ValidateBlock takes a block and validates it to be included into the
// blockchain after the specified previous block.
func (b Block) ValidateBlock(previousBlock Block, ev func(v string, args ...any)) error {
	ev("database: ValidateBlock: blk[%d]: check: block number is the next number", b.Header.Number)

	if b.Header.Number != previousBlock.Header.Number+1 {
		return fmt.Errorf("this block is not the next number, got %d, exp %d", b.Header.Number, previousBlock.Header.Number+1)
	}

	ev("database: ValidateBlock: blk[%d]: check: parent hash does match parent block", b.Header.Number)

	if b.Header.PrevBlockHash != previousBlock.Hash {
		return fmt.Errorf("parent block hash doesn't match our known parent, got %s, exp %s", b.Header.PrevBlockHash, previousBlock.Hash)
	}

	ev("database: ValidateBlock: blk[%d]: check: block hash has been solved", b.Header.Number)

	if !digest.IsHashSolved(b.Header.Difficulty, b.Hash) {
		return fmt.Errorf("%s invalid block hash", b.Hash)
	}

	ev("database: ValidateBlock: blk[%d]: check: block hash does match content", b.Header.Number)

	if hash := b.ContentHash(); hash != b.Hash {
		return fmt.Errorf("block hash does not match content, got %s, exp %s", hash, b.Hash)
	}

	return nil
}
