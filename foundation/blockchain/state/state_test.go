package state_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dishantyadav04/agribid/foundation/blockchain/database"
	"github.com/dishantyadav04/agribid/foundation/blockchain/database/storage/memory"
	"github.com/dishantyadav04/agribid/foundation/blockchain/genesis"
	"github.com/dishantyadav04/agribid/foundation/blockchain/state"
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

func newState(t *testing.T) *state.State {
	t.Helper()

	storage, err := memory.New()
	if err != nil {
		t.Fatalf("\t%s\tShould be able to open the store: %v", failed, err)
	}

	gen := genesis.Genesis{
		Date:          time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		ChainID:       1,
		TransPerBlock: 2,
		Difficulty:    1,
		MiningReward:  100,
		Balances: map[string]uint64{
			buyer: 1000,
		},
	}

	st, err := state.New(state.Config{
		BeneficiaryID: beneficiary,
		Genesis:       gen,
		Storage:       storage,
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the state: %v", failed, err)
	}
	t.Cleanup(func() { st.Shutdown() })

	return st
}

func TestSubmitAndMine(t *testing.T) {
	t.Log("Given the need to accept transactions and seal them into blocks.")
	{
		t.Logf("\tTest 0:\tWhen submitting transactions up to the block threshold.")
		{
			st := newState(t)

			hash1 := st.SubmitBidTransaction(buyer, seller, 100, "mango-01")
			if hash1 == "" {
				t.Fatalf("\t%s\tTest 0:\tShould receive a transaction hash.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould receive a transaction hash.", success)

			tx, found := st.QueryTransaction(hash1)
			if !found || tx.Status != database.TxStatusPending {
				t.Fatalf("\t%s\tTest 0:\tShould find the transaction pending in the pool.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould find the transaction pending in the pool.", success)

			if bal := st.QueryBalance(buyer); bal != 1000 {
				t.Fatalf("\t%s\tTest 0:\tShould not move balances while pending, got %d.", failed, bal)
			}
			t.Logf("\t%s\tTest 0:\tShould not move balances while pending.", success)

			hash2 := st.SubmitPaymentTransaction(buyer, seller, 50, "mango-01")
			if st.MempoolLength() != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould have 2 transactions pending, got %d.", failed, st.MempoolLength())
			}
			t.Logf("\t%s\tTest 0:\tShould have 2 transactions pending.", success)

			block, err := st.MineNewBlock(context.Background())
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to seal a block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to seal a block.", success)

			if block.Header.Number != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould seal block number 1, got %d.", failed, block.Header.Number)
			}
			t.Logf("\t%s\tTest 0:\tShould seal block number 1.", success)

			if len(block.Trans) != 3 {
				t.Fatalf("\t%s\tTest 0:\tShould seal 2 transactions plus the reward, got %d.", failed, len(block.Trans))
			}
			t.Logf("\t%s\tTest 0:\tShould seal 2 transactions plus the reward.", success)

			if st.MempoolLength() != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould drain the pool, got %d.", failed, st.MempoolLength())
			}
			t.Logf("\t%s\tTest 0:\tShould drain the pool.", success)

			tx, found = st.QueryTransaction(hash2)
			if !found || tx.Status != database.TxStatusConfirmed {
				t.Fatalf("\t%s\tTest 0:\tShould find the transaction confirmed in the chain.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould find the transaction confirmed in the chain.", success)

			if bal := st.QueryBalance(buyer); bal != 850 {
				t.Fatalf("\t%s\tTest 0:\tShould debit the buyer to 850, got %d.", failed, bal)
			}
			t.Logf("\t%s\tTest 0:\tShould debit the buyer to 850.", success)

			if bal := st.QueryBalance(beneficiary); bal != 100 {
				t.Fatalf("\t%s\tTest 0:\tShould credit the mining reward, got %d.", failed, bal)
			}
			t.Logf("\t%s\tTest 0:\tShould credit the mining reward.", success)
		}

		t.Logf("\tTest 1:\tWhen sealing with an empty pool.")
		{
			st := newState(t)

			if _, err := st.MineNewBlock(context.Background()); !errors.Is(err, state.ErrNoTransactions) {
				t.Fatalf("\t%s\tTest 1:\tShould refuse to seal an empty block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould refuse to seal an empty block.", success)
		}
	}
}

func TestChainStats(t *testing.T) {
	t.Log("Given the need for a stable summary of the chain.")
	{
		t.Logf("\tTest 0:\tWhen querying stats without intervening mutations.")
		{
			st := newState(t)

			st.SubmitBidTransaction(buyer, seller, 100, "mango-01")

			stats1 := st.QueryChainStats()
			stats2 := st.QueryChainStats()

			if stats1.BlockCount != stats2.BlockCount || stats1.PendingCount != stats2.PendingCount ||
				stats1.IsValid != stats2.IsValid || stats1.LatestBlock.Hash != stats2.LatestBlock.Hash {
				t.Fatalf("\t%s\tTest 0:\tShould get identical stats from consecutive calls.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould get identical stats from consecutive calls.", success)

			if stats1.BlockCount != 1 || stats1.PendingCount != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould report 1 block and 1 pending, got %d and %d.", failed, stats1.BlockCount, stats1.PendingCount)
			}
			t.Logf("\t%s\tTest 0:\tShould report 1 block and 1 pending.", success)

			if !stats1.IsValid {
				t.Fatalf("\t%s\tTest 0:\tShould report a valid chain.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould report a valid chain.", success)
		}
	}
}
