package models

import (
	"time"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
)

type MerchantModel struct {
	Account   string                    `gorm:"primaryKey"`
	Name      string                    `gorm:"size:32"`
	Detail    string                    `gorm:"size:255"`
	Email     string                    `gorm:"size:64"`
	Memo      string                    `gorm:"size:255"`
	Status    domain.MerchantStatus     `gorm:"index"`
	Balances  map[string]domain.Balance `gorm:"serializer:json;type:jsonb"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (MerchantModel) TableName() string {
	return "merchants"
}
