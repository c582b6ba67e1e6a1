package repository

import (
	"fmt"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultDealRepository struct {
	DB *gorm.DB
}

func NewDefaultDealRepository(db *gorm.DB) *DefaultDealRepository {
	return &DefaultDealRepository{DB: db}
}

func (r *DefaultDealRepository) CreateDeal(deal *domain.Deal) error {
	model := mappers.ToGORMDeal(deal)
	return translate(r.DB.Create(model).Error, fmt.Sprintf("deal %d", deal.ID))
}

func (r *DefaultDealRepository) GetDeal(dealID uint64) (*domain.Deal, error) {
	var model models.DealModel
	if err := r.DB.First(&model, "id = ?", dealID).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("deal %d", dealID))
	}
	return mappers.ToDomainDeal(&model), nil
}

func (r *DefaultDealRepository) GetDealByOrderSN(orderSN string) (*domain.Deal, error) {
	var model models.DealModel
	if err := r.DB.First(&model, "order_sn = ?", orderSN).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("order_sn %q", orderSN))
	}
	return mappers.ToDomainDeal(&model), nil
}

func (r *DefaultDealRepository) UpdateDeal(deal *domain.Deal) error {
	model := mappers.ToGORMDeal(deal)
	res := r.DB.Model(&models.DealModel{}).Where("id = ?", deal.ID).
		Select("*").Omit("id", "created_at").Updates(model)
	if res.Error != nil {
		return translate(res.Error, fmt.Sprintf("deal %d", deal.ID))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: deal %d", domain.ErrNotFound, deal.ID)
	}
	return nil
}

func (r *DefaultDealRepository) ListDealsByAccount(account string, page, limit int) ([]*domain.Deal, int64, error) {
	var total int64
	q := r.DB.Model(&models.DealModel{}).Where("maker = ? OR taker = ?", account, account)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.DealModel
	if err := q.Order("id").Offset((page - 1) * limit).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	deals := make([]*domain.Deal, 0, len(rows))
	for i := range rows {
		deals = append(deals, mappers.ToDomainDeal(&rows[i]))
	}
	return deals, total, nil
}
