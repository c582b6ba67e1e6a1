package order

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
)

// CloseOrder retires the order and releases whatever stake is still frozen
// against it. Orders with deals in flight cannot close: their frozen quantity
// must drain to zero first.
func (uc *DefaultOrderUsecase) CloseOrder(ctx context.Context, owner string, side domain.OrderSide, orderID uint64) (err error) {
	defer func() { uc.Metrics.ObserveActionError("close_order", err) }()

	var released domain.Asset
	err = uc.Store.Transaction(func(tx domain.Store) error {
		order, err := tx.Orders().GetOrder(side, orderID)
		if err != nil {
			return err
		}
		if order.Owner != owner {
			return fmt.Errorf("%w: account %s does not own %s order %d", domain.ErrUnauthorized, owner, side, orderID)
		}
		if order.Status == domain.OrderClosed {
			return fmt.Errorf("%w: order %d already closed", domain.ErrInvalidState, orderID)
		}
		if order.FrozenQuantity.Amount != 0 {
			return fmt.Errorf("%w: order %d has %d %s locked by open deals",
				domain.ErrInvalidState, orderID, order.FrozenQuantity.Amount, order.FrozenQuantity.Symbol)
		}

		now := uc.now()
		released = order.StakeFrozen
		if released.Amount > 0 {
			merchant, err := tx.Merchants().GetMerchant(order.Owner)
			if err != nil {
				return err
			}
			if err := merchant.Unfreeze(released); err != nil {
				return err
			}
			merchant.UpdatedAt = now
			if err := tx.Merchants().UpdateMerchant(merchant); err != nil {
				return err
			}
		}

		order.StakeFrozen.Amount = 0
		order.Status = domain.OrderClosed
		order.ClosedAt = now
		order.UpdatedAt = now
		if err := tx.Orders().UpdateOrder(order); err != nil {
			return err
		}

		uc.Metrics.OrdersClosedTotal.WithLabelValues(string(order.Side), order.Quantity.Symbol).Inc()
		return nil
	})
	if err != nil {
		return err
	}

	if released.Amount > 0 {
		uc.Publisher.PublishStake(domain.StakeEvent{
			Account: owner,
			Amount:  released.Amount,
			Symbol:  released.Symbol,
			Memo:    fmt.Sprintf("stake released on closing %s order %d", side, orderID),
		})
	}
	return nil
}
