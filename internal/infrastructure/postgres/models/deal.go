package models

import (
	"time"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
)

type DealModel struct {
	ID             uint64           `gorm:"primaryKey;autoIncrement:false"`
	OrderID        uint64           `gorm:"index"`
	Side           domain.OrderSide `gorm:"size:4"`
	Maker          string           `gorm:"index"`
	Taker          string           `gorm:"index"`
	MerchantName   string           `gorm:"size:32"`
	QuantityAmount int64
	QuantitySymbol string `gorm:"size:16"`
	PriceAmount    int64
	PriceSymbol    string `gorm:"size:16"`
	FeeAmount      int64
	FeeSymbol      string             `gorm:"size:16"`
	PayMethod      string             `gorm:"size:32"`
	Status         domain.DealStatus  `gorm:"index"`
	ArbitStatus    domain.ArbitStatus `gorm:"index"`
	Arbiter        string
	OrderSN        string `gorm:"uniqueIndex;size:64"`
	CloseMsg       string `gorm:"size:255"`
	CreatedAt      time.Time
	AcceptedAt     time.Time
	PaidAt         time.Time
	ClosedAt       time.Time
	UpdatedAt      time.Time
}

func (DealModel) TableName() string {
	return "deals"
}
