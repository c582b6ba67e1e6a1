package arbitration

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
)

// ResolveArbitration closes a dispute. Favoring the taker unwinds the deal
// like a cancel: quantity capacity and the proportional stake go back, no
// fine, and the case counts against the arbiter as failed. Favoring the
// maker finishes the deal but forfeits the maker's proportional stake as a
// fine paid out to the taker.
func (uc *DefaultArbitrationUsecase) ResolveArbitration(ctx context.Context, arbiter string, dealID uint64, favorTaker bool) error {
	cfg, err := uc.Config.TradingConfig()
	if err != nil {
		return err
	}

	now := uc.now()
	var resolved *domain.Deal
	var fine domain.Asset
	err = uc.Store.Transaction(func(tx domain.Store) error {
		d, err := tx.Deals().GetDeal(dealID)
		if err != nil {
			return err
		}
		if d.Arbiter == "" || d.Arbiter != arbiter {
			return fmt.Errorf("%w: %s is not the arbiter of deal %d", domain.ErrUnauthorized, arbiter, d.ID)
		}
		if d.ArbitStatus != domain.ArbitInProgress {
			return fmt.Errorf("%w: deal %d is not arbitrating", domain.ErrInvalidState, d.ID)
		}

		order, err := tx.Orders().GetOrder(d.Side, d.OrderID)
		if err != nil {
			return err
		}
		if order.FrozenQuantity.Amount < d.Quantity.Amount {
			return fmt.Errorf("%w: order %d frozen quantity smaller than deal quantity", domain.ErrInvalidState, order.ID)
		}

		coin, err := cfg.CoinFor(d.Quantity.Symbol)
		if err != nil {
			return err
		}
		sa, err := cfg.StakeAssetFor(coin.StakeSymbol)
		if err != nil {
			return err
		}
		stake, err := domain.OrderStake(d.Quantity, d.Price, coin.Precision, cfg.FiatPrecision, sa.Precision, cfg.StakePct, sa.Symbol)
		if err != nil {
			return err
		}
		if order.StakeFrozen.Amount < stake.Amount {
			return fmt.Errorf("%w: order %d stake smaller than deal stake", domain.ErrInvalidState, order.ID)
		}

		merchant, err := tx.Merchants().GetMerchant(d.Maker)
		if err != nil {
			return err
		}

		caseArbiter, err := tx.Arbiters().GetArbiter(arbiter)
		if err != nil {
			return err
		}

		if favorTaker {
			order.StakeFrozen.Amount -= stake.Amount
			order.FrozenQuantity.Amount -= d.Quantity.Amount
			order.UpdatedAt = now
			if err := tx.Orders().UpdateOrder(order); err != nil {
				return err
			}

			if stake.Amount > 0 {
				if err := merchant.Unfreeze(stake); err != nil {
					return err
				}
				merchant.UpdatedAt = now
				if err := tx.Merchants().UpdateMerchant(merchant); err != nil {
					return err
				}
			}

			d.Status = domain.DealCancelled
			d.ArbitStatus = domain.ArbitClosedNoFine
			caseArbiter.FailedCaseNum++
		} else {
			order.StakeFrozen.Amount -= stake.Amount
			order.FrozenQuantity.Amount -= d.Quantity.Amount
			fulfilled, err := domain.AddChecked(order.FulfilledQuantity.Amount, d.Quantity.Amount)
			if err != nil {
				return err
			}
			order.FulfilledQuantity.Amount = fulfilled
			order.UpdatedAt = now
			if err := tx.Orders().UpdateOrder(order); err != nil {
				return err
			}

			if stake.Amount > 0 {
				if err := merchant.Unfreeze(stake); err != nil {
					return err
				}
				if err := merchant.Debit(stake); err != nil {
					return err
				}
				memo := fmt.Sprintf("arbit fine: %d", d.ID)
				if err := uc.Transfer.Transfer(ctx, sa.CustodyAccount, d.Taker, stake, memo); err != nil {
					return fmt.Errorf("fine transfer for deal %d: %w", d.ID, err)
				}
			}
			merchant.UpdatedAt = now
			if err := tx.Merchants().UpdateMerchant(merchant); err != nil {
				return err
			}

			d.Status = domain.DealClosed
			d.ArbitStatus = domain.ArbitClosedWithFine
			fine = stake
			caseArbiter.ClosedCaseNum++
		}

		total, err := domain.AddChecked(caseArbiter.TotalQuantity, d.Quantity.Amount)
		if err != nil {
			return err
		}
		caseArbiter.TotalQuantity = total
		caseArbiter.UpdatedAt = now
		if err := tx.Arbiters().UpdateArbiter(caseArbiter); err != nil {
			return err
		}

		d.ClosedAt = now
		d.UpdatedAt = now
		if err := tx.Deals().UpdateDeal(d); err != nil {
			return err
		}
		resolved = d
		return nil
	})
	if err != nil {
		return err
	}

	action := domain.ActionCancel
	outcome := "no_fine"
	if !favorTaker {
		action = domain.ActionClose
		outcome = "with_fine"
	}
	uc.Publisher.PublishDeal(resolved.Maker, dealEvent(resolved, action))
	uc.Publisher.PublishDeal(resolved.Taker, dealEvent(resolved, action))
	if fine.Amount > 0 {
		uc.Publisher.PublishStake(domain.StakeEvent{
			Account: resolved.Maker,
			Amount:  -fine.Amount,
			Symbol:  fine.Symbol,
			Memo:    fmt.Sprintf("arbit fine:%d", resolved.ID),
		})
	}
	uc.Metrics.ArbitrationsResolvedTotal.WithLabelValues(outcome).Inc()

	return nil
}

func dealEvent(d *domain.Deal, action domain.DealAction) domain.DealEvent {
	return domain.DealEvent{
		DealID:      d.ID,
		OrderID:     d.OrderID,
		Side:        d.Side,
		Maker:       d.Maker,
		Taker:       d.Taker,
		Status:      d.Status,
		ArbitStatus: d.ArbitStatus,
		Quantity:    d.Quantity.Amount,
		Symbol:      d.Quantity.Symbol,
		Action:      action,
	}
}
