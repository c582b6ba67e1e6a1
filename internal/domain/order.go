package domain

import "time"

type OrderSide string

const (
	SideBuy  OrderSide = "BUY"
	SideSell OrderSide = "SELL"
)

func (s OrderSide) Valid() bool {
	return s == SideBuy || s == SideSell
}

type OrderStatus string

const (
	OrderRunning OrderStatus = "RUNNING"
	OrderPaused  OrderStatus = "PAUSED"
	OrderClosed  OrderStatus = "CLOSED"
)

// Order is one side of the book: a merchant's standing offer to buy or sell
// Quantity of a coin at Price. Buy and sell orders live in independent id
// spaces.
type Order struct {
	ID                uint64
	Side              OrderSide
	Owner             string
	MerchantName      string
	Quantity          Asset
	Price             Asset
	MinTakeQuantity   Asset
	MaxTakeQuantity   Asset
	FrozenQuantity    Asset
	FulfilledQuantity Asset
	StakeFrozen       Asset
	PayMethods        []string
	Memo              string
	Status            OrderStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
	ClosedAt          time.Time
}

// RemainingQuantity is the capacity still takeable by new deals.
func (o *Order) RemainingQuantity() int64 {
	return o.Quantity.Amount - o.FrozenQuantity.Amount - o.FulfilledQuantity.Amount
}

type OrderRepository interface {
	CreateOrder(order *Order) error
	GetOrder(side OrderSide, orderID uint64) (*Order, error)
	UpdateOrder(order *Order) error
	ListOrdersByOwner(side OrderSide, owner string, page, limit int) ([]*Order, int64, error)
}
