package order

import (
	"context"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
)

func (uc *DefaultOrderUsecase) GetOrder(ctx context.Context, side domain.OrderSide, orderID uint64) (*domain.Order, error) {
	return uc.Store.Orders().GetOrder(side, orderID)
}

func (uc *DefaultOrderUsecase) ListOrdersByOwner(ctx context.Context, side domain.OrderSide, owner string, page, limit int) ([]*domain.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return uc.Store.Orders().ListOrdersByOwner(side, owner, page, limit)
}
