package state

import (
	"github.com/dishantyadav04/agribid/foundation/blockchain/database"
)

// SubmitBidTransaction records a bid against a product on the ledger and
// returns the transaction hash for the caller to keep as a receipt.
func (s *State) SubmitBidTransaction(from database.AccountID, to database.AccountID, amount uint64, productID string) string {
	return s.submitTransaction(database.NewBidTx(from, to, amount, productID))
}

// SubmitPaymentTransaction records a payment between two wallets.
func (s *State) SubmitPaymentTransaction(from database.AccountID, to database.AccountID, amount uint64, productID string) string {
	return s.submitTransaction(database.NewPaymentTx(from, to, amount, productID))
}

// SubmitListingTransaction records that a seller listed a product. Listing
// transactions carry no amount.
func (s *State) SubmitListingTransaction(seller database.AccountID, productID string) string {
	return s.submitTransaction(database.NewListingTx(seller, productID))
}

// =============================================================================

// submitTransaction accepts a well-formed transaction into the pending pool
// and signals the mining worker once the pool crosses the sealing
// threshold. The caller is never blocked waiting for a block to be sealed.
func (s *State) submitTransaction(tx database.Tx) string {
	s.mu.Lock()
	count := s.mempool.Upsert(tx)
	s.mu.Unlock()

	s.evHandler("viewer: state: submitTransaction: tx[%s] pool[%d]", tx, count)

	if count >= int(s.genesis.TransPerBlock) && s.Worker != nil {
		s.Worker.SignalStartMining()
	}

	return tx.Hash
}
