package order

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
)

func (uc *DefaultOrderUsecase) ResumeOrder(ctx context.Context, owner string, side domain.OrderSide, orderID uint64) (err error) {
	defer func() { uc.Metrics.ObserveActionError("resume_order", err) }()

	return uc.Store.Transaction(func(tx domain.Store) error {
		order, err := tx.Orders().GetOrder(side, orderID)
		if err != nil {
			return err
		}
		if order.Owner != owner {
			return fmt.Errorf("%w: account %s does not own %s order %d", domain.ErrUnauthorized, owner, side, orderID)
		}
		if order.Status != domain.OrderPaused {
			return fmt.Errorf("%w: order %d is %s, expected %s", domain.ErrInvalidState, orderID, order.Status, domain.OrderPaused)
		}
		order.Status = domain.OrderRunning
		order.UpdatedAt = uc.now()
		return tx.Orders().UpdateOrder(order)
	})
}
