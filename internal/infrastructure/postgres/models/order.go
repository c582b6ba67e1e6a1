package models

import (
	"time"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
)

// OrderModel keys orders on (side, id): the two books number independently,
// so the same numeric id can exist once per side.
type OrderModel struct {
	Side              domain.OrderSide `gorm:"primaryKey;size:4"`
	ID                uint64           `gorm:"primaryKey;autoIncrement:false"`
	Owner             string           `gorm:"index"`
	MerchantName      string           `gorm:"size:32"`
	QuantityAmount    int64
	QuantitySymbol    string `gorm:"size:16"`
	PriceAmount       int64
	PriceSymbol       string `gorm:"size:16"`
	MinTakeAmount     int64
	MaxTakeAmount     int64
	FrozenAmount      int64
	FulfilledAmount   int64
	StakeFrozenAmount int64
	StakeSymbol       string             `gorm:"size:16"`
	PayMethods        []string           `gorm:"serializer:json;type:jsonb"`
	Memo              string             `gorm:"size:255"`
	Status            domain.OrderStatus `gorm:"index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	ClosedAt          time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}
