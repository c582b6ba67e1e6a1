package domain

import "time"

type DealStatus string

const (
	DealCreated       DealStatus = "CREATED"
	DealMakerAccepted DealStatus = "MAKER_ACCEPTED"
	DealTakerSent     DealStatus = "TAKER_SENT"
	DealMakerRecvSent DealStatus = "MAKER_RECV_AND_SENT"
	DealClosed        DealStatus = "CLOSED"
	DealCancelled     DealStatus = "CANCELLED"
)

// Terminal reports whether the deal can never transition again.
func (s DealStatus) Terminal() bool {
	return s == DealClosed || s == DealCancelled
}

type ArbitStatus string

const (
	ArbitNone           ArbitStatus = "UNARBITTED"
	ArbitInProgress     ArbitStatus = "ARBITING"
	ArbitClosedNoFine   ArbitStatus = "CLOSED_NO_FINE"
	ArbitClosedWithFine ArbitStatus = "CLOSED_WITH_FINE"
)

type DealAction string

const (
	ActionCreate        DealAction = "CREATE"
	ActionMakerAccept   DealAction = "MAKER_ACCEPT"
	ActionTakerSend     DealAction = "TAKER_SEND"
	ActionMakerRecvSent DealAction = "MAKER_RECV_AND_SENT"
	ActionClose         DealAction = "CLOSE"
	ActionCancel        DealAction = "CANCEL"
)

// Role tags who is invoking a deal action. Authorization rules are keyed on
// the role plus the deal's current status, never on ambient state.
type Role string

const (
	RoleMerchant Role = "MERCHANT"
	RoleUser     Role = "USER"
	RoleAdmin    Role = "ADMIN"
	RoleArbiter  Role = "ARBITER"
)

// Deal is one taker's claim against an order, progressing through the payment
// handshake independently of the parent order's other deals.
type Deal struct {
	ID           uint64
	OrderID      uint64
	Side         OrderSide
	Maker        string
	Taker        string
	MerchantName string
	Quantity     Asset
	Price        Asset
	Fee          Asset
	PayMethod    string
	Status       DealStatus
	ArbitStatus  ArbitStatus
	Arbiter      string
	OrderSN      string
	CloseMsg     string
	CreatedAt    time.Time
	AcceptedAt   time.Time
	PaidAt       time.Time
	ClosedAt     time.Time
	UpdatedAt    time.Time
}

type DealRepository interface {
	CreateDeal(deal *Deal) error
	GetDeal(dealID uint64) (*Deal, error)
	// GetDealByOrderSN resolves the idempotency token; ErrNotFound when the
	// token has never been used.
	GetDealByOrderSN(orderSN string) (*Deal, error)
	UpdateDeal(deal *Deal) error
	ListDealsByAccount(account string, page, limit int) ([]*Deal, int64, error)
}
