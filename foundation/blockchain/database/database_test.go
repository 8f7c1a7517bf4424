package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/dishantyadav04/agribid/foundation/blockchain/database"
	"github.com/dishantyadav04/agribid/foundation/blockchain/database/storage/memory"
	"github.com/dishantyadav04/agribid/foundation/blockchain/digest"
	"github.com/dishantyadav04/agribid/foundation/blockchain/genesis"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const (
	buyer       = "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32"
	seller      = "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4"
	beneficiary = "0xbEE6ACE826eC3DE1B6349888B9151B92522F7F76"
)

func newGenesis() genesis.Genesis {
	return genesis.Genesis{
		Date:          time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		ChainID:       1,
		TransPerBlock: 2,
		Difficulty:    1,
		MiningReward:  100,
		Balances: map[string]uint64{
			buyer:  1000,
			seller: 500,
		},
	}
}

func noopEv(v string, args ...any) {}

func TestGenesisBlock(t *testing.T) {
	t.Log("Given the need to synthesize the first block of the chain.")
	{
		t.Logf("\tTest 0:\tWhen constructing a database on an empty store.")
		{
			storage, err := memory.New()
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to open the store: %v", failed, err)
			}

			db, err := database.New(newGenesis(), storage, noopEv)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the database: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to construct the database.", success)

			latest := db.LatestBlock()
			if latest.Header.Number != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould have block number 0, got %d.", failed, latest.Header.Number)
			}
			t.Logf("\t%s\tTest 0:\tShould have block number 0.", success)

			if latest.Hash != digest.ZeroHash || latest.Header.PrevBlockHash != digest.ZeroHash {
				t.Fatalf("\t%s\tTest 0:\tShould carry the zero hash for both hashes.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould carry the zero hash for both hashes.", success)

			if len(latest.Trans) != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould carry no transactions, got %d.", failed, len(latest.Trans))
			}
			t.Logf("\t%s\tTest 0:\tShould carry no transactions.", success)
		}
	}
}

func TestPOWAndValidate(t *testing.T) {
	t.Log("Given the need to seal and validate blocks.")
	{
		t.Logf("\tTest 0:\tWhen sealing a block of transactions.")
		{
			storage, err := memory.New()
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to open the store: %v", failed, err)
			}

			gen := newGenesis()
			db, err := database.New(gen, storage, noopEv)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the database: %v", failed, err)
			}

			trans := []database.Tx{
				database.NewBidTx(buyer, seller, 100, "mango-01"),
				database.NewRewardTx(beneficiary, gen.MiningReward),
			}
			for i := range trans {
				trans[i].Status = database.TxStatusConfirmed
			}

			block, err := database.POW(context.Background(), beneficiary, gen.Difficulty, db.LatestBlock(), trans, noopEv)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to seal a block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to seal a block.", success)

			if !digest.IsHashSolved(gen.Difficulty, block.Hash) {
				t.Fatalf("\t%s\tTest 0:\tShould produce a solved hash: %s", failed, block.Hash)
			}
			t.Logf("\t%s\tTest 0:\tShould produce a solved hash.", success)

			if block.ContentHash() != block.Hash {
				t.Fatalf("\t%s\tTest 0:\tShould reproduce the hash from content.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould reproduce the hash from content.", success)

			if err := block.ValidateBlock(db.LatestBlock(), noopEv); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould validate against the genesis block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould validate against the genesis block.", success)

			if err := db.Write(block); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to append the block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to append the block.", success)

			if err := db.ValidateChain(noopEv); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould report a valid chain: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould report a valid chain.", success)

			if _, found := db.FindTransaction(trans[0].Hash); !found {
				t.Fatalf("\t%s\tTest 0:\tShould find the sealed transaction by hash.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould find the sealed transaction by hash.", success)
		}

		t.Logf("\tTest 1:\tWhen a stored block is tampered with.")
		{
			storage, err := memory.New()
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to open the store: %v", failed, err)
			}

			gen := newGenesis()
			db, err := database.New(gen, storage, noopEv)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to construct the database: %v", failed, err)
			}

			trans := []database.Tx{database.NewBidTx(buyer, seller, 100, "mango-01")}
			block, err := database.POW(context.Background(), beneficiary, gen.Difficulty, db.LatestBlock(), trans, noopEv)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to seal a block: %v", failed, err)
			}

			block.Trans[0].Amount = 100000

			if err := block.ValidateBlock(db.LatestBlock(), noopEv); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould detect the tampered content.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould detect the tampered content.", success)
		}
	}
}

func TestBalance(t *testing.T) {
	t.Log("Given the need to compute balances by replaying sealed blocks.")
	{
		t.Logf("\tTest 0:\tWhen an account has sealed activity.")
		{
			storage, err := memory.New()
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to open the store: %v", failed, err)
			}

			gen := newGenesis()
			db, err := database.New(gen, storage, noopEv)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the database: %v", failed, err)
			}

			if bal := db.Balance(buyer); bal != 1000 {
				t.Fatalf("\t%s\tTest 0:\tShould see the opening balance of 1000, got %d.", failed, bal)
			}
			t.Logf("\t%s\tTest 0:\tShould see the opening balance of 1000.", success)

			trans := []database.Tx{
				database.NewBidTx(buyer, seller, 100, "mango-01"),
				database.NewRewardTx(beneficiary, gen.MiningReward),
			}
			for i := range trans {
				trans[i].Status = database.TxStatusConfirmed
			}

			block, err := database.POW(context.Background(), beneficiary, gen.Difficulty, db.LatestBlock(), trans, noopEv)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to seal a block: %v", failed, err)
			}
			if err := db.Write(block); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to append the block: %v", failed, err)
			}

			if bal := db.Balance(buyer); bal != 900 {
				t.Fatalf("\t%s\tTest 0:\tShould debit the sender to 900, got %d.", failed, bal)
			}
			t.Logf("\t%s\tTest 0:\tShould debit the sender to 900.", success)

			if bal := db.Balance(seller); bal != 600 {
				t.Fatalf("\t%s\tTest 0:\tShould credit the receiver to 600, got %d.", failed, bal)
			}
			t.Logf("\t%s\tTest 0:\tShould credit the receiver to 600.", success)

			if bal := db.Balance(beneficiary); bal != int64(gen.MiningReward) {
				t.Fatalf("\t%s\tTest 0:\tShould credit the mining reward, got %d.", failed, bal)
			}
			t.Logf("\t%s\tTest 0:\tShould credit the mining reward.", success)
		}
	}
}
