package mempool_test

import (
	"testing"

	"github.com/dishantyadav04/agribid/foundation/blockchain/database"
	"github.com/dishantyadav04/agribid/foundation/blockchain/mempool"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const (
	buyer  = "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32"
	seller = "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4"
)

func TestCRUD(t *testing.T) {
	txs := []database.Tx{
		database.NewBidTx(buyer, seller, 100, "mango-01"),
		database.NewBidTx(buyer, seller, 110, "mango-01"),
		database.NewListingTx(seller, "rice-07"),
	}

	t.Log("Given the need to validate the pending pool api.")
	{
		t.Logf("\tTest 0:\tWhen handling a set of transactions.")
		{
			mp := mempool.New()

			for _, tx := range txs {
				if count := mp.Upsert(tx); count == 0 {
					t.Fatalf("\t%s\tTest 0:\tShould be able to add transaction: %s", failed, tx.Hash)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould be able to add all transactions.", success)

			if mp.Count() != len(txs) {
				t.Fatalf("\t%s\tTest 0:\tShould have %d transactions in the pool, got %d.", failed, len(txs), mp.Count())
			}
			t.Logf("\t%s\tTest 0:\tShould have %d transactions in the pool.", success, len(txs))

			for i, tx := range mp.Copy() {
				if tx.Hash != txs[i].Hash {
					t.Logf("\t%s\tTest 0:\tgot: %s", failed, tx.Hash)
					t.Logf("\t%s\tTest 0:\texp: %s", failed, txs[i].Hash)
					t.Fatalf("\t%s\tTest 0:\tShould preserve arrival order.", failed)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould preserve arrival order.", success)

			if _, found := mp.FindByHash(txs[1].Hash); !found {
				t.Fatalf("\t%s\tTest 0:\tShould be able to find a pending transaction by hash.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to find a pending transaction by hash.", success)

			mp.Delete(txs[1].Hash)
			if _, found := mp.FindByHash(txs[1].Hash); found {
				t.Fatalf("\t%s\tTest 0:\tShould not find a deleted transaction.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould not find a deleted transaction.", success)

			mp.Truncate()
			if mp.Count() != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould have an empty pool after truncate, got %d.", failed, mp.Count())
			}
			t.Logf("\t%s\tTest 0:\tShould have an empty pool after truncate.", success)
		}

		t.Logf("\tTest 1:\tWhen upserting the same transaction twice.")
		{
			mp := mempool.New()

			tx := database.NewBidTx(buyer, seller, 100, "mango-01")
			mp.Upsert(tx)
			if count := mp.Upsert(tx); count != 1 {
				t.Fatalf("\t%s\tTest 1:\tShould keep a single copy in the pool, got %d.", failed, count)
			}
			t.Logf("\t%s\tTest 1:\tShould keep a single copy in the pool.", success)
		}
	}
}
