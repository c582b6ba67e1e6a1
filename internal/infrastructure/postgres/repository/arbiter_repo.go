package repository

import (
	"fmt"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultArbiterRepository struct {
	DB *gorm.DB
}

func NewDefaultArbiterRepository(db *gorm.DB) *DefaultArbiterRepository {
	return &DefaultArbiterRepository{DB: db}
}

func (r *DefaultArbiterRepository) CreateArbiter(arbiter *domain.Arbiter) error {
	model := mappers.ToGORMArbiter(arbiter)
	return translate(r.DB.Create(model).Error, fmt.Sprintf("arbiter %s", arbiter.Account))
}

func (r *DefaultArbiterRepository) GetArbiter(account string) (*domain.Arbiter, error) {
	var model models.ArbiterModel
	if err := r.DB.First(&model, "account = ?", account).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("arbiter %s", account))
	}
	return mappers.ToDomainArbiter(&model), nil
}

func (r *DefaultArbiterRepository) UpdateArbiter(arbiter *domain.Arbiter) error {
	model := mappers.ToGORMArbiter(arbiter)
	res := r.DB.Model(&models.ArbiterModel{}).Where("account = ?", arbiter.Account).
		Select("*").Omit("account", "created_at").Updates(model)
	if res.Error != nil {
		return translate(res.Error, fmt.Sprintf("arbiter %s", arbiter.Account))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: arbiter %s", domain.ErrNotFound, arbiter.Account)
	}
	return nil
}

func (r *DefaultArbiterRepository) DeleteArbiter(account string) error {
	res := r.DB.Delete(&models.ArbiterModel{}, "account = ?", account)
	if res.Error != nil {
		return translate(res.Error, fmt.Sprintf("arbiter %s", account))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: arbiter %s", domain.ErrNotFound, account)
	}
	return nil
}

func (r *DefaultArbiterRepository) ListArbiters() ([]*domain.Arbiter, error) {
	var rows []models.ArbiterModel
	if err := r.DB.Order("seq").Find(&rows).Error; err != nil {
		return nil, err
	}
	arbiters := make([]*domain.Arbiter, 0, len(rows))
	for i := range rows {
		arbiters = append(arbiters, mappers.ToDomainArbiter(&rows[i]))
	}
	return arbiters, nil
}
