// Package ledgergrp maintains the group of handlers exposing the ledger
// facade: transaction submission, lookups, balances and chain stats.
package ledgergrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dishantyadav04/agribid/business/web/errs"
	"github.com/dishantyadav04/agribid/foundation/blockchain/database"
	"github.com/dishantyadav04/agribid/foundation/blockchain/state"
	"github.com/dishantyadav04/agribid/foundation/events"
	"github.com/dishantyadav04/agribid/foundation/nameservice"
	"github.com/dishantyadav04/agribid/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ErrTxNotFound is returned when the hash matches nothing in the pending
// pool or the sealed blocks. This is a normal outcome, not a failure.
var ErrTxNotFound = errors.New("transaction not found")

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	NS    *nameservice.NameService
	WS    websocket.Upgrader
	Evts  *events.Events
}

// SubmitBid adds a new bid transaction to the pending pool.
func (h Handlers) SubmitBid(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var app submitBid
	if err := web.Decode(r, &app); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	from, to, err := toAccountPair(app.From, app.To)
	if err != nil {
		return err
	}

	hash := h.State.SubmitBidTransaction(from, to, app.Amount, app.ProductID)

	return web.Respond(ctx, w, receipt{Status: "transaction added to pending pool", Hash: hash}, http.StatusOK)
}

// SubmitListing adds a new listing transaction to the pending pool.
func (h Handlers) SubmitListing(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var app submitListing
	if err := web.Decode(r, &app); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	seller := database.AccountID(app.Seller)
	if !seller.IsAccountID() {
		return errs.NewTrusted(fmt.Errorf("invalid seller account %q", app.Seller), http.StatusBadRequest)
	}

	hash := h.State.SubmitListingTransaction(seller, app.ProductID)

	return web.Respond(ctx, w, receipt{Status: "transaction added to pending pool", Hash: hash}, http.StatusOK)
}

// SubmitPayment adds a new payment transaction to the pending pool.
func (h Handlers) SubmitPayment(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var app submitPayment
	if err := web.Decode(r, &app); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	from, to, err := toAccountPair(app.From, app.To)
	if err != nil {
		return err
	}

	hash := h.State.SubmitPaymentTransaction(from, to, app.Amount, app.ProductID)

	return web.Respond(ctx, w, receipt{Status: "transaction added to pending pool", Hash: hash}, http.StatusOK)
}

// Transaction returns the transaction with the specified hash, searching
// the pending pool before the sealed blocks.
func (h Handlers) Transaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	hash := web.Param(r, "hash")

	dbTx, found := h.State.QueryTransaction(hash)
	if !found {
		return errs.NewTrusted(ErrTxNotFound, http.StatusNotFound)
	}

	return web.Respond(ctx, w, toTx(dbTx, h.NS), http.StatusOK)
}

// Mempool returns the ordered set of pending transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	pool := h.State.RetrieveMempool()

	txs := make([]tx, len(pool))
	for i, dbTx := range pool {
		txs[i] = toTx(dbTx, h.NS)
	}

	return web.Respond(ctx, w, txs, http.StatusOK)
}

// Balance returns the sealed balance for the specified account.
func (h Handlers) Balance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	account := database.AccountID(web.Param(r, "account"))
	if !account.IsAccountID() {
		return errs.NewTrusted(fmt.Errorf("invalid account %q", account), http.StatusBadRequest)
	}

	bal := balance{
		Account: account,
		Name:    h.NS.Lookup(account),
		Balance: h.State.QueryBalance(account),
	}

	return web.Respond(ctx, w, bal, http.StatusOK)
}

// Stats returns the summary view of the chain.
func (h Handlers) Stats(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.QueryChainStats(), http.StatusOK)
}

// BlocksByNumber returns the sealed blocks in the inclusive number range.
// Either bound accepts the keyword latest.
func (h Handlers) BlocksByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	from, err := blockNumber(web.Param(r, "from"))
	if err != nil {
		return err
	}
	to, err := blockNumber(web.Param(r, "to"))
	if err != nil {
		return err
	}

	blocks := h.State.QueryBlocksByNumber(from, to)

	return web.Respond(ctx, w, blocks, http.StatusOK)
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	// Need this to handle CORS on the websocket.
	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	h.Log.Infow("events", "traceid", v.TraceID, "message", "websocket open")
	defer h.Log.Infow("events", "traceid", v.TraceID, "message", "websocket closed")

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	// The ping keeps half-open connections from lingering forever.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}
			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// =============================================================================

func toAccountPair(fromStr string, toStr string) (database.AccountID, database.AccountID, error) {
	from := database.AccountID(fromStr)
	if !from.IsAccountID() {
		return "", "", errs.NewTrusted(fmt.Errorf("invalid from account %q", fromStr), http.StatusBadRequest)
	}

	to := database.AccountID(toStr)
	if !to.IsAccountID() {
		return "", "", errs.NewTrusted(fmt.Errorf("invalid to account %q", toStr), http.StatusBadRequest)
	}

	return from, to, nil
}

func blockNumber(param string) (uint64, error) {
	if param == "" || param == "latest" {
		return state.QueryLatest, nil
	}

	num, err := strconv.ParseUint(param, 10, 64)
	if err != nil {
		return 0, errs.NewTrusted(fmt.Errorf("invalid block number %q", param), http.StatusBadRequest)
	}

	return num, nil
}
