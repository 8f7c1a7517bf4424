package auctiongrp

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dishantyadav04/agribid/business/core/auction"
	"github.com/dishantyadav04/agribid/business/web/errs"
	"github.com/dishantyadav04/agribid/foundation/blockchain/database"
	"github.com/dishantyadav04/agribid/foundation/validate"
)

// newAuction is the payload for listing a product for auction. The zero
// value for any constraint leaves that constraint unset.
type newAuction struct {
	ProductID       string `json:"product_id" validate:"required"`
	ProductName     string `json:"product_name" validate:"required"`
	SellerName      string `json:"seller_name" validate:"required"`
	SellerWallet    string `json:"seller_wallet" validate:"required"`
	StartingPrice   uint64 `json:"starting_price" validate:"required,gt=0"`
	MinIncrementPct uint   `json:"min_increment_pct"`
	MinBidAmount    uint64 `json:"min_bid_amount"`
	MaxBidAmount    uint64 `json:"max_bid_amount"`
	EndTime         string `json:"end_time"`
}

// Validate checks the data in the model is considered clean.
func (app newAuction) Validate() error {
	return validate.Check(app)
}

func (app newAuction) toConfig() (auction.Config, error) {
	cfg := auction.Config{
		ProductID:       app.ProductID,
		ProductName:     app.ProductName,
		SellerName:      app.SellerName,
		SellerWallet:    database.AccountID(app.SellerWallet),
		StartingPrice:   app.StartingPrice,
		MinIncrementPct: app.MinIncrementPct,
		MinBidAmount:    app.MinBidAmount,
		MaxBidAmount:    app.MaxBidAmount,
	}

	if app.EndTime != "" {
		endTime, err := time.Parse(time.RFC3339, app.EndTime)
		if err != nil {
			return auction.Config{}, errs.NewTrusted(fmt.Errorf("end_time must be RFC3339: %w", err), http.StatusBadRequest)
		}
		cfg.EndTime = endTime.UTC()
	}

	return cfg, nil
}

// newBid is the payload for placing a bid on an auction.
type newBid struct {
	UserID   string `json:"user_id" validate:"required"`
	UserName string `json:"user_name" validate:"required"`
	Wallet   string `json:"wallet" validate:"required"`
	Amount   uint64 `json:"amount" validate:"required,gt=0"`
}

// Validate checks the data in the model is considered clean.
func (app newBid) Validate() error {
	return validate.Check(app)
}

// minimum is the response for the minimum bid query.
type minimum struct {
	AuctionID  string `json:"auction_id"`
	MinimumBid uint64 `json:"minimum_bid"`
}
