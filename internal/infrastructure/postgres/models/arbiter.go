package models

import "time"

type ArbiterModel struct {
	Account       string `gorm:"primaryKey"`
	Email         string `gorm:"size:64"`
	Seq           uint64 `gorm:"uniqueIndex"`
	ClosedCaseNum uint64
	FailedCaseNum uint64
	TotalQuantity int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ArbiterModel) TableName() string {
	return "arbiters"
}
