package repository

import (
	"fmt"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultBlacklistRepository struct {
	DB *gorm.DB
}

func NewDefaultBlacklistRepository(db *gorm.DB) *DefaultBlacklistRepository {
	return &DefaultBlacklistRepository{DB: db}
}

func (r *DefaultBlacklistRepository) SetBlacklistEntry(entry *domain.BlacklistEntry) error {
	model := mappers.ToGORMBlacklistEntry(entry)
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account"}},
		DoUpdates: clause.AssignmentColumns([]string{"expired_at"}),
	}).Create(model).Error
}

func (r *DefaultBlacklistRepository) GetBlacklistEntry(account string) (*domain.BlacklistEntry, error) {
	var model models.BlacklistModel
	if err := r.DB.First(&model, "account = ?", account).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("blacklist entry %s", account))
	}
	return mappers.ToDomainBlacklistEntry(&model), nil
}

func (r *DefaultBlacklistRepository) DeleteBlacklistEntry(account string) error {
	return r.DB.Delete(&models.BlacklistModel{}, "account = ?", account).Error
}
