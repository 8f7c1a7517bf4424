package worker_test

import (
	"testing"
	"time"

	"github.com/dishantyadav04/agribid/foundation/blockchain/database"
	"github.com/dishantyadav04/agribid/foundation/blockchain/database/storage/memory"
	"github.com/dishantyadav04/agribid/foundation/blockchain/genesis"
	"github.com/dishantyadav04/agribid/foundation/blockchain/state"
	"github.com/dishantyadav04/agribid/foundation/blockchain/worker"
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

// newState constructs a ledger without registering a worker. The tests own
// the shutdown call so the cancel handshake runs exactly once.
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

	return st
}

// waitForBlock polls until the chain reaches the specified block number.
func waitForBlock(t *testing.T, st *state.State, number uint64) database.Block {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if block := st.RetrieveLatestBlock(); block.Header.Number >= number {
			return block
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatalf("\t%s\tShould seal block %d before the deadline.", failed, number)
	return database.Block{}
}

func TestMiningWorkflow(t *testing.T) {
	t.Log("Given the need to seal blocks in the background as the pool fills.")
	{
		t.Logf("\tTest 0:\tWhen the pool is below the sealing threshold.")
		{
			st := newState(t)
			worker.Run(st, func(v string, args ...any) {})

			st.SubmitBidTransaction(buyer, seller, 100, "mango-01")

			// Extra signals must not seal a short block.
			st.Worker.SignalStartMining()
			st.Worker.SignalStartMining()

			time.Sleep(250 * time.Millisecond)

			if block := st.RetrieveLatestBlock(); block.Header.Number != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould not seal a block below the threshold, got block %d.", failed, block.Header.Number)
			}
			t.Logf("\t%s\tTest 0:\tShould not seal a block below the threshold.", success)

			if st.MempoolLength() != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould keep the transaction pending, got %d.", failed, st.MempoolLength())
			}
			t.Logf("\t%s\tTest 0:\tShould keep the transaction pending.", success)

			if err := st.Shutdown(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould shut down cleanly: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould shut down cleanly.", success)
		}

		t.Logf("\tTest 1:\tWhen the pool crosses the sealing threshold.")
		{
			st := newState(t)
			worker.Run(st, func(v string, args ...any) {})

			st.SubmitBidTransaction(buyer, seller, 100, "mango-01")
			hash := st.SubmitPaymentTransaction(buyer, seller, 50, "mango-01")

			block := waitForBlock(t, st, 1)
			t.Logf("\t%s\tTest 1:\tShould seal block 1 in the background.", success)

			if len(block.Trans) != 3 {
				t.Fatalf("\t%s\tTest 1:\tShould seal 2 transactions plus the reward, got %d.", failed, len(block.Trans))
			}
			t.Logf("\t%s\tTest 1:\tShould seal 2 transactions plus the reward.", success)

			deadline := time.Now().Add(5 * time.Second)
			for st.MempoolLength() != 0 && time.Now().Before(deadline) {
				time.Sleep(50 * time.Millisecond)
			}
			if st.MempoolLength() != 0 {
				t.Fatalf("\t%s\tTest 1:\tShould drain the pool, got %d.", failed, st.MempoolLength())
			}
			t.Logf("\t%s\tTest 1:\tShould drain the pool.", success)

			tx, found := st.QueryTransaction(hash)
			if !found || tx.Status != database.TxStatusConfirmed {
				t.Fatalf("\t%s\tTest 1:\tShould find the transaction confirmed in the chain.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould find the transaction confirmed in the chain.", success)

			if bal := st.QueryBalance(beneficiary); bal != 100 {
				t.Fatalf("\t%s\tTest 1:\tShould credit the mining reward, got %d.", failed, bal)
			}
			t.Logf("\t%s\tTest 1:\tShould credit the mining reward.", success)

			if err := st.Shutdown(); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould shut down cleanly: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould shut down cleanly.", success)
		}
	}
}
