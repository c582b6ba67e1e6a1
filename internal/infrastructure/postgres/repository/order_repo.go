package repository

import (
	"fmt"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

func (r *DefaultOrderRepository) CreateOrder(order *domain.Order) error {
	model := mappers.ToGORMOrder(order)
	return translate(r.DB.Create(model).Error, fmt.Sprintf("%s order %d", order.Side, order.ID))
}

func (r *DefaultOrderRepository) GetOrder(side domain.OrderSide, orderID uint64) (*domain.Order, error) {
	var model models.OrderModel
	if err := r.DB.First(&model, "side = ? AND id = ?", side, orderID).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("%s order %d", side, orderID))
	}
	return mappers.ToDomainOrder(&model), nil
}

func (r *DefaultOrderRepository) UpdateOrder(order *domain.Order) error {
	model := mappers.ToGORMOrder(order)
	res := r.DB.Model(&models.OrderModel{}).Where("side = ? AND id = ?", order.Side, order.ID).
		Select("*").Omit("side", "id", "created_at").Updates(model)
	if res.Error != nil {
		return translate(res.Error, fmt.Sprintf("%s order %d", order.Side, order.ID))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s order %d", domain.ErrNotFound, order.Side, order.ID)
	}
	return nil
}

func (r *DefaultOrderRepository) ListOrdersByOwner(side domain.OrderSide, owner string, page, limit int) ([]*domain.Order, int64, error) {
	var total int64
	q := r.DB.Model(&models.OrderModel{}).Where("side = ? AND owner = ?", side, owner)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.OrderModel
	if err := q.Order("id").Offset((page - 1) * limit).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*domain.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, mappers.ToDomainOrder(&rows[i]))
	}
	return orders, total, nil
}
