// Package auction implements the bid engine: validation and acceptance of
// bids per product, minimum bid computation and winner determination. Every
// accepted bid is recorded on the ledger before it is recorded here.
package auction

import (
	"math"
	"sync"
	"time"

	"github.com/dishantyadav04/agribid/foundation/blockchain/state"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Core manages the set of auctions for listed products.
type Core struct {
	log    *zap.SugaredLogger
	ledger *state.State

	mu       sync.RWMutex
	auctions map[string]*auction
}

// NewCore constructs a bid engine against the specified ledger.
func NewCore(log *zap.SugaredLogger, ledger *state.State) *Core {
	return &Core{
		log:      log,
		ledger:   ledger,
		auctions: make(map[string]*auction),
	}
}

// Create registers the auction for a newly listed product and records the
// listing transaction on the ledger. The product id is reserved under the
// lock before the ledger is touched so a rejected duplicate never leaves a
// listing transaction behind on the append-only ledger.
func (c *Core) Create(cfg Config) (Info, error) {
	if !cfg.SellerWallet.IsAccountID() {
		return Info{}, ErrNoWallet
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.auctions[cfg.ProductID]; exists {
		return Info{}, ErrExists
	}

	a := auction{
		cfg:          cfg,
		currentPrice: cfg.StartingPrice,
	}
	a.listingTxHash = c.ledger.SubmitListingTransaction(cfg.SellerWallet, cfg.ProductID)
	c.auctions[cfg.ProductID] = &a

	c.log.Infow("auction created", "product", cfg.ProductID, "starting", cfg.StartingPrice, "listingtx", a.listingTxHash)

	return a.info(time.Now().UTC()), nil
}

// MinimumBid computes the smallest amount the next bid must reach for the
// specified auction.
func (c *Core) MinimumBid(auctionID string) (uint64, error) {
	a, err := c.lookup(auctionID)
	if err != nil {
		return 0, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	return a.minimumBid(), nil
}

// PlaceBid validates a bid against the auction rules and, when accepted,
// records a bid transaction on the ledger and appends the bid. The auction
// lock is held across read, validate and record so two concurrent bids
// can't both pass validation against the same highest bid. On any failure
// no state is changed.
func (c *Core) PlaceBid(auctionID string, bidder Bidder, amount uint64) (Bid, error) {
	a, err := c.lookup(auctionID)
	if err != nil {
		return Bid{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	now := time.Now().UTC()

	// Closed auctions reject everything, regardless of amount.
	if a.closed(now) {
		return Bid{}, ErrClosed
	}

	if minimum := a.minimumBid(); amount < minimum {
		return Bid{}, BelowMinimumError{Minimum: minimum}
	}

	if a.cfg.MaxBidAmount > 0 && amount > a.cfg.MaxBidAmount {
		return Bid{}, AboveMaximumError{Maximum: a.cfg.MaxBidAmount}
	}

	if len(a.bids) > 0 && a.cfg.MinIncrementPct > 0 {
		required := float64(a.highestBid()) * (1 + float64(a.cfg.MinIncrementPct)/100)
		if float64(amount) < required {
			return Bid{}, BelowIncrementError{Pct: a.cfg.MinIncrementPct, Required: uint64(math.Ceil(required))}
		}
	}

	// The ledger records the bid first. A bidder without a wallet can't be
	// recorded, so the bid is rejected with no partial state.
	if !bidder.Wallet.IsAccountID() {
		return Bid{}, ErrNoWallet
	}
	txHash := c.ledger.SubmitBidTransaction(bidder.Wallet, a.cfg.SellerWallet, amount, a.cfg.ProductID)

	bid := Bid{
		ID:        uuid.NewString(),
		UserID:    bidder.UserID,
		UserName:  bidder.UserName,
		Amount:    amount,
		TimeStamp: now,
		Status:    BidStatusActive,
		TxHash:    txHash,
	}

	a.bids = append(a.bids, bid)
	if amount > a.currentPrice {
		a.currentPrice = amount
	}

	c.log.Infow("bid accepted", "product", a.cfg.ProductID, "user", bidder.UserID, "amount", amount, "tx", txHash)

	return bid, nil
}

// Query returns the read model for the specified auction, finalizing the
// bid statuses first if the auction has closed.
func (c *Core) Query(auctionID string) (Info, error) {
	a, err := c.lookup(auctionID)
	if err != nil {
		return Info{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	now := time.Now().UTC()
	a.finalize(now)

	return a.info(now), nil
}

// Winner returns the winning bid for a closed auction. The winner is the
// bid with the highest amount; on a tie the earliest timestamp wins, and
// if timestamps tie as well the bid accepted first wins. The decision is
// made once and never changes.
func (c *Core) Winner(auctionID string) (Bid, error) {
	a, err := c.lookup(auctionID)
	if err != nil {
		return Bid{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	now := time.Now().UTC()
	if !a.closed(now) {
		return Bid{}, ErrOpen
	}

	a.finalize(now)

	for _, bid := range a.bids {
		if bid.Status == BidStatusWon {
			return bid, nil
		}
	}

	return Bid{}, ErrNotFound
}

// =============================================================================

// lookup returns the internal auction state for the id.
func (c *Core) lookup(auctionID string) (*auction, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	a, exists := c.auctions[auctionID]
	if !exists {
		return nil, ErrNotFound
	}

	return a, nil
}

// =============================================================================

// closed reports whether the auction has ended. The transition happens by
// wall clock comparison alone and is irreversible.
func (a *auction) closed(now time.Time) bool {
	return !a.cfg.EndTime.IsZero() && now.After(a.cfg.EndTime)
}

// highestBid returns the highest accepted bid amount, or the starting
// price when there are no bids.
func (a *auction) highestBid() uint64 {
	highest := a.cfg.StartingPrice
	for _, bid := range a.bids {
		if bid.Amount > highest {
			highest = bid.Amount
		}
	}
	return highest
}

// minimumBid computes the smallest acceptable next bid. The increment
// applies once any bid exists; the configured floor is applied last.
func (a *auction) minimumBid() uint64 {
	highest := a.highestBid()

	base := float64(highest)
	if base < float64(a.cfg.StartingPrice) {
		base = float64(a.cfg.StartingPrice)
	}

	if a.cfg.MinIncrementPct > 0 && len(a.bids) > 0 {
		base = base * (1 + float64(a.cfg.MinIncrementPct)/100)
	}

	if a.cfg.MinBidAmount > 0 && base < float64(a.cfg.MinBidAmount) {
		base = float64(a.cfg.MinBidAmount)
	}

	return uint64(math.Ceil(base))
}

// finalize assigns won/lost statuses once the auction has closed. It runs
// at most once; repeat calls are no-ops.
func (a *auction) finalize(now time.Time) {
	if a.finalized || !a.closed(now) || len(a.bids) == 0 {
		return
	}

	winner := 0
	for i := 1; i < len(a.bids); i++ {
		switch {
		case a.bids[i].Amount > a.bids[winner].Amount:
			winner = i
		case a.bids[i].Amount == a.bids[winner].Amount && a.bids[i].TimeStamp.Before(a.bids[winner].TimeStamp):
			winner = i
		}
	}

	for i := range a.bids {
		if i == winner {
			a.bids[i].Status = BidStatusWon
			continue
		}
		a.bids[i].Status = BidStatusLost
	}

	a.finalized = true
}

// info builds the read model under the auction lock.
func (a *auction) info(now time.Time) Info {
	bids := make([]Bid, len(a.bids))
	copy(bids, a.bids)

	return Info{
		ProductID:     a.cfg.ProductID,
		ProductName:   a.cfg.ProductName,
		SellerName:    a.cfg.SellerName,
		StartingPrice: a.cfg.StartingPrice,
		CurrentPrice:  a.currentPrice,
		MinimumBid:    a.minimumBid(),
		Closed:        a.closed(now),
		EndTime:       a.cfg.EndTime,
		ListingTxHash: a.listingTxHash,
		Bids:          bids,
	}
}
