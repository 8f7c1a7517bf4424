// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/dishantyadav04/agribid/app/services/ledger/handlers/v1/auctiongrp"
	"github.com/dishantyadav04/agribid/app/services/ledger/handlers/v1/ledgergrp"
	"github.com/dishantyadav04/agribid/business/core/auction"
	"github.com/dishantyadav04/agribid/business/web/mid"
	"github.com/dishantyadav04/agribid/foundation/blockchain/state"
	"github.com/dishantyadav04/agribid/foundation/events"
	"github.com/dishantyadav04/agribid/foundation/nameservice"
	"github.com/dishantyadav04/agribid/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log      *zap.SugaredLogger
	State    *state.State
	Auction  *auction.Core
	NS       *nameservice.NameService
	Evts     *events.Events
	BidRPS   float64
	BidBurst int
}

// Routes binds all the version 1 routes.
func Routes(app *web.App, cfg Config) {
	lgh := ledgergrp.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		NS:    cfg.NS,
		Evts:  cfg.Evts,
	}
	app.Handle(http.MethodPost, version, "/tx/bid", lgh.SubmitBid, mid.RateLimit(cfg.BidRPS, cfg.BidBurst))
	app.Handle(http.MethodPost, version, "/tx/listing", lgh.SubmitListing)
	app.Handle(http.MethodPost, version, "/tx/payment", lgh.SubmitPayment)
	app.Handle(http.MethodGet, version, "/tx/pending/list", lgh.Mempool)
	app.Handle(http.MethodGet, version, "/tx/:hash", lgh.Transaction)
	app.Handle(http.MethodGet, version, "/balances/:account", lgh.Balance)
	app.Handle(http.MethodGet, version, "/stats", lgh.Stats)
	app.Handle(http.MethodGet, version, "/blocks/list/:from/:to", lgh.BlocksByNumber)
	app.Handle(http.MethodGet, version, "/events", lgh.Events)

	agh := auctiongrp.Handlers{
		Log:     cfg.Log,
		Auction: cfg.Auction,
	}
	app.Handle(http.MethodPost, version, "/auctions", agh.Create)
	app.Handle(http.MethodGet, version, "/auctions/:id", agh.Query)
	app.Handle(http.MethodGet, version, "/auctions/:id/minimum", agh.Minimum)
	app.Handle(http.MethodPost, version, "/auctions/:id/bids", agh.PlaceBid, mid.RateLimit(cfg.BidRPS, cfg.BidBurst))
	app.Handle(http.MethodGet, version, "/auctions/:id/winner", agh.Winner)
}
