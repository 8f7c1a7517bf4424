package auction

import (
	"sync"
	"time"

	"github.com/dishantyadav04/agribid/foundation/blockchain/database"
)

// Set of bid statuses. A bid is active until the auction closes, then it
// is either won or lost, never active again.
const (
	BidStatusActive = "active"
	BidStatusWon    = "won"
	BidStatusLost   = "lost"
)

// Config carries the bidding configuration a product is listed with. Zero
// values mean the corresponding constraint is not set.
type Config struct {
	ProductID       string
	ProductName     string
	SellerName      string
	SellerWallet    database.AccountID
	StartingPrice   uint64
	MinIncrementPct uint      // Percentage a new bid must exceed the highest bid by.
	MinBidAmount    uint64    // Floor for any bid regardless of increment math.
	MaxBidAmount    uint64    // Ceiling for any bid.
	EndTime         time.Time // The auction never closes when zero.
}

// Bidder identifies who is placing a bid and the wallet that pays for it.
type Bidder struct {
	UserID   string
	UserName string
	Wallet   database.AccountID
}

// Bid represents an accepted bid. Everything but the status is immutable
// after acceptance.
type Bid struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Amount    uint64    `json:"amount"`
	TimeStamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
	TxHash    string    `json:"transaction_hash"`
}

// Info is the read model for an auction.
type Info struct {
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	SellerName    string    `json:"seller_name"`
	StartingPrice uint64    `json:"starting_price"`
	CurrentPrice  uint64    `json:"current_price"`
	MinimumBid    uint64    `json:"minimum_bid"`
	Closed        bool      `json:"closed"`
	EndTime       time.Time `json:"end_time,omitzero"`
	ListingTxHash string    `json:"listing_transaction_hash"`
	Bids          []Bid     `json:"bids"`
}

// =============================================================================

// auction is the internal, mutable bidding state for one listed product.
// Bid acceptance serializes on mu so two concurrent bids can never both
// validate against the same highest bid.
type auction struct {
	mu            sync.Mutex
	cfg           Config
	currentPrice  uint64
	bids          []Bid
	listingTxHash string
	finalized     bool
}
