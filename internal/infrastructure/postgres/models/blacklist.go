package models

import "time"

type BlacklistModel struct {
	Account   string    `gorm:"primaryKey"`
	ExpiredAt time.Time `gorm:"index"`
	CreatedAt time.Time
}

func (BlacklistModel) TableName() string {
	return "blacklist"
}
