package ledgergrp

import (
	"github.com/dishantyadav04/agribid/foundation/blockchain/database"
	"github.com/dishantyadav04/agribid/foundation/nameservice"
	"github.com/dishantyadav04/agribid/foundation/validate"
)

// submitBid is the payload for recording a bid transaction on the ledger.
type submitBid struct {
	From      string `json:"from" validate:"required"`
	To        string `json:"to" validate:"required"`
	Amount    uint64 `json:"amount" validate:"required,gt=0"`
	ProductID string `json:"product_id" validate:"required"`
}

// Validate checks the data in the model is considered clean.
func (app submitBid) Validate() error {
	return validate.Check(app)
}

// submitListing is the payload for recording that a seller listed a
// product. Listings carry no amount.
type submitListing struct {
	Seller    string `json:"seller" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
}

// Validate checks the data in the model is considered clean.
func (app submitListing) Validate() error {
	return validate.Check(app)
}

// submitPayment is the payload for recording a payment between wallets.
type submitPayment struct {
	From      string `json:"from" validate:"required"`
	To        string `json:"to" validate:"required"`
	Amount    uint64 `json:"amount" validate:"required,gt=0"`
	ProductID string `json:"product_id" validate:"required"`
}

// Validate checks the data in the model is considered clean.
func (app submitPayment) Validate() error {
	return validate.Check(app)
}

// =============================================================================

// receipt is returned for every accepted submission. The hash is the
// caller's handle for looking the transaction up later.
type receipt struct {
	Status string `json:"status"`
	Hash   string `json:"hash"`
}

// tx is the client view of a ledger transaction, with wallet addresses
// resolved to display names when the node knows them.
type tx struct {
	Hash      string             `json:"hash"`
	From      database.AccountID `json:"from"`
	FromName  string             `json:"from_name"`
	To        database.AccountID `json:"to"`
	ToName    string             `json:"to_name"`
	Amount    uint64             `json:"amount"`
	TimeStamp uint64             `json:"timestamp"`
	Status    string             `json:"status"`
	Type      string             `json:"type"`
	Detail    string             `json:"detail"`
}

func toTx(dbTx database.Tx, ns *nameservice.NameService) tx {
	return tx{
		Hash:      dbTx.Hash,
		From:      dbTx.From,
		FromName:  ns.Lookup(dbTx.From),
		To:        dbTx.To,
		ToName:    ns.Lookup(dbTx.To),
		Amount:    dbTx.Amount,
		TimeStamp: dbTx.TimeStamp,
		Status:    dbTx.Status,
		Type:      dbTx.Type,
		Detail:    dbTx.Detail,
	}
}

// balance is the client view of an account balance. Replayed balances can
// go negative so the amount is signed.
type balance struct {
	Account database.AccountID `json:"account"`
	Name    string             `json:"name"`
	Balance int64              `json:"balance"`
}
