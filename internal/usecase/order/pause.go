package order

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
)

// PauseOrder stops the order from accepting new deals. Deals already in
// flight keep progressing.
func (uc *DefaultOrderUsecase) PauseOrder(ctx context.Context, owner string, side domain.OrderSide, orderID uint64) (err error) {
	defer func() { uc.Metrics.ObserveActionError("pause_order", err) }()

	return uc.Store.Transaction(func(tx domain.Store) error {
		order, err := tx.Orders().GetOrder(side, orderID)
		if err != nil {
			return err
		}
		if order.Owner != owner {
			return fmt.Errorf("%w: account %s does not own %s order %d", domain.ErrUnauthorized, owner, side, orderID)
		}
		if order.Status != domain.OrderRunning {
			return fmt.Errorf("%w: order %d is %s, expected %s", domain.ErrInvalidState, orderID, order.Status, domain.OrderRunning)
		}
		order.Status = domain.OrderPaused
		order.UpdatedAt = uc.now()
		return tx.Orders().UpdateOrder(order)
	})
}
