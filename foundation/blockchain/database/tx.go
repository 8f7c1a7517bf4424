package database

import (
	"fmt"
	"time"

	"github.com/dishantyadav04/agribid/foundation/blockchain/digest"
	"github.com/google/uuid"
)

// Set of transaction statuses.
const (
	TxStatusPending   = "pending"
	TxStatusConfirmed = "confirmed"
	TxStatusFailed    = "failed"
)

// Set of transaction types. Each type is constructed through its own
// function below so a transaction can only carry the fields its kind needs.
const (
	TxTypeBid     = "bid"
	TxTypePayment = "payment"
	TxTypeListing = "listing"
	TxTypeReward  = "reward"
	TxTypeOther   = "other"
)

// Tx is the transactional information recorded on the ledger. The hash is
// assigned once at construction, over the content plus a unique salt, and
// identifies the transaction for its lifetime. Only the status changes
// after construction, when the transaction is sealed into a block.
type Tx struct {
	Hash      string    `json:"hash"`
	Salt      string    `json:"salt"`
	From      AccountID `json:"from"`
	To        AccountID `json:"to"`
	Amount    uint64    `json:"amount"`
	TimeStamp uint64    `json:"timestamp"`
	Status    string    `json:"status"`
	Type      string    `json:"type"`
	Detail    string    `json:"detail"`
}

// NewBidTx constructs a transaction recording a bid on a product.
func NewBidTx(from AccountID, to AccountID, amount uint64, productID string) Tx {
	return newTx(TxTypeBid, from, to, amount, fmt.Sprintf("Bid on product %s", productID))
}

// NewPaymentTx constructs a transaction recording a payment for a product.
func NewPaymentTx(from AccountID, to AccountID, amount uint64, productID string) Tx {
	return newTx(TxTypePayment, from, to, amount, fmt.Sprintf("Payment for product %s", productID))
}

// NewListingTx constructs a zero-amount transaction recording that a seller
// listed a product. The platform sentinel account is the receiver.
func NewListingTx(seller AccountID, productID string) Tx {
	return newTx(TxTypeListing, seller, ZeroAccount, 0, fmt.Sprintf("Listed product %s", productID))
}

// NewRewardTx constructs the synthetic transaction that pays the mining
// reward for a sealed block. It is born confirmed since it never waits in
// the pending pool.
func NewRewardTx(beneficiaryID AccountID, reward uint64) Tx {
	tx := newTx(TxTypeReward, ZeroAccount, beneficiaryID, reward, "Mining reward")
	tx.Status = TxStatusConfirmed
	return tx
}

// newTx constructs a pending transaction and assigns its identity hash.
func newTx(txType string, from AccountID, to AccountID, amount uint64, detail string) Tx {
	tx := Tx{
		Salt:      uuid.NewString(),
		From:      from,
		To:        to,
		Amount:    amount,
		TimeStamp: uint64(time.Now().UTC().Unix()),
		Status:    TxStatusPending,
		Type:      txType,
		Detail:    detail,
	}

	tx.Hash = digest.Hash(tx)

	return tx
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s:%s:%d", tx.Type, tx.Hash[:10], tx.Amount)
}
