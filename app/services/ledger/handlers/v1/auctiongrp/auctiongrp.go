// Package auctiongrp maintains the group of handlers for listing products
// and placing bids against them.
package auctiongrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dishantyadav04/agribid/business/core/auction"
	"github.com/dishantyadav04/agribid/business/web/errs"
	"github.com/dishantyadav04/agribid/foundation/blockchain/database"
	"github.com/dishantyadav04/agribid/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of auction endpoints.
type Handlers struct {
	Log     *zap.SugaredLogger
	Auction *auction.Core
}

// Create lists a product for auction and records the listing on the
// ledger.
func (h Handlers) Create(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var app newAuction
	if err := web.Decode(r, &app); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	cfg, err := app.toConfig()
	if err != nil {
		return err
	}

	info, err := h.Auction.Create(cfg)
	if err != nil {
		return toWebErr(err)
	}

	return web.Respond(ctx, w, info, http.StatusCreated)
}

// Query returns the full read model for the specified auction.
func (h Handlers) Query(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	info, err := h.Auction.Query(web.Param(r, "id"))
	if err != nil {
		return toWebErr(err)
	}

	return web.Respond(ctx, w, info, http.StatusOK)
}

// Minimum returns the smallest amount the next bid must reach.
func (h Handlers) Minimum(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	auctionID := web.Param(r, "id")

	min, err := h.Auction.MinimumBid(auctionID)
	if err != nil {
		return toWebErr(err)
	}

	return web.Respond(ctx, w, minimum{AuctionID: auctionID, MinimumBid: min}, http.StatusOK)
}

// PlaceBid validates and records a bid. Rejected bids come back as 400s
// carrying the reason; the auction state is untouched on rejection.
func (h Handlers) PlaceBid(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var app newBid
	if err := web.Decode(r, &app); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	bidder := auction.Bidder{
		UserID:   app.UserID,
		UserName: app.UserName,
		Wallet:   database.AccountID(app.Wallet),
	}

	bid, err := h.Auction.PlaceBid(web.Param(r, "id"), bidder, app.Amount)
	if err != nil {
		return toWebErr(err)
	}

	return web.Respond(ctx, w, bid, http.StatusCreated)
}

// Winner returns the winning bid once the auction has closed.
func (h Handlers) Winner(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	bid, err := h.Auction.Winner(web.Param(r, "id"))
	if err != nil {
		return toWebErr(err)
	}

	return web.Respond(ctx, w, bid, http.StatusOK)
}

// =============================================================================

// toWebErr maps the bid engine's typed rejections onto trusted responses
// so validation outcomes never surface as 500s.
func toWebErr(err error) error {
	switch {
	case errors.Is(err, auction.ErrNotFound):
		return errs.NewTrusted(err, http.StatusNotFound)
	case errors.Is(err, auction.ErrExists):
		return errs.NewTrusted(err, http.StatusConflict)
	case auction.IsRejection(err):
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	return err
}
