package domain

import (
	"context"
	"time"
)

// TransferClient moves fungible value between accounts. The core treats it as
// fire-and-forget: an error aborts the whole enclosing action.
type TransferClient interface {
	Transfer(ctx context.Context, from, to string, quantity Asset, memo string) error
}

// SettleDealRequest is handed to the settlement recorder when a deal closes
// in the reference stake asset.
type SettleDealRequest struct {
	DealID   uint64    `json:"deal_id"`
	Maker    string    `json:"maker"`
	Taker    string    `json:"taker"`
	Amount   Asset     `json:"amount"`
	Fee      Asset     `json:"fee"`
	Discount int64     `json:"discount"`
	OpenedAt time.Time `json:"opened_at"`
	ClosedAt time.Time `json:"closed_at"`
}

type SettleClient interface {
	SettleDeal(ctx context.Context, req SettleDealRequest) error
}

// AuthVerifier proves that the invoking identity controls the named account.
// Delivery calls it before any state-changing action reaches a usecase.
type AuthVerifier interface {
	Verify(ctx context.Context, account, proof string) error
}
