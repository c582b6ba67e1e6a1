package deal

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
)

// CloseDeal finalizes a deal: fulfilled quantity replaces frozen quantity on
// the order, the deal's slice of the stake thaws back to the maker and the
// fee is extracted. The maker may only force a close after the payment
// timeout has run out; the taker, the admin and the assigned arbiter are not
// time-gated.
func (uc *DefaultDealUsecase) CloseDeal(ctx context.Context, actor string, role domain.Role, dealID uint64, closeMsg string) (err error) {
	defer func() { uc.Metrics.ObserveActionError("close_deal", err) }()

	cfg, err := uc.Config.TradingConfig()
	if err != nil {
		return err
	}

	now := uc.now()
	var closed *domain.Deal
	err = uc.Store.Transaction(func(tx domain.Store) error {
		d, err := tx.Deals().GetDeal(dealID)
		if err != nil {
			return err
		}
		if err := checkNotTerminal(d); err != nil {
			return err
		}
		if err := authorize(d, actor, role, cfg.AdminAccount); err != nil {
			return err
		}
		switch role {
		case domain.RoleMerchant:
			if d.Status != domain.DealTakerSent && d.Status != domain.DealMakerRecvSent {
				return fmt.Errorf("%w: maker can only close at %s or %s, deal %d is %s",
					domain.ErrInvalidState, domain.DealTakerSent, domain.DealMakerRecvSent, d.ID, d.Status)
			}
			if now.Before(d.PaidAt.Add(cfg.PayedTimeout)) {
				return fmt.Errorf("%w: payment window for deal %d still open", domain.ErrNotYetExpired, d.ID)
			}
		case domain.RoleArbiter:
			if d.ArbitStatus != domain.ArbitInProgress {
				return fmt.Errorf("%w: arbiter can only close while arbitrating", domain.ErrInvalidState)
			}
		}

		order, err := tx.Orders().GetOrder(d.Side, d.OrderID)
		if err != nil {
			return err
		}
		if order.Status == domain.OrderClosed {
			return fmt.Errorf("%w: order %d already closed", domain.ErrInvalidState, order.ID)
		}
		if order.FrozenQuantity.Amount < d.Quantity.Amount {
			return fmt.Errorf("%w: order %d frozen quantity smaller than deal quantity", domain.ErrInvalidState, order.ID)
		}

		stake, err := dealStake(cfg, d)
		if err != nil {
			return err
		}
		if order.StakeFrozen.Amount < stake.Amount {
			return fmt.Errorf("%w: order %d stake smaller than deal stake", domain.ErrInvalidState, order.ID)
		}

		order.StakeFrozen.Amount -= stake.Amount
		order.FrozenQuantity.Amount -= d.Quantity.Amount
		fulfilled, err := domain.AddChecked(order.FulfilledQuantity.Amount, d.Quantity.Amount)
		if err != nil {
			return err
		}
		order.FulfilledQuantity.Amount = fulfilled
		order.UpdatedAt = now
		if order.StakeFrozen.Amount == 0 && order.FrozenQuantity.Amount == 0 {
			order.Status = domain.OrderClosed
			order.ClosedAt = now
		}
		if err := tx.Orders().UpdateOrder(order); err != nil {
			return err
		}

		d.Status = domain.DealClosed
		d.ClosedAt = now
		d.UpdatedAt = now
		d.CloseMsg = closeMsg
		if err := tx.Deals().UpdateDeal(d); err != nil {
			return err
		}

		merchant, err := tx.Merchants().GetMerchant(d.Maker)
		if err != nil {
			return err
		}
		if stake.Amount > 0 {
			if err := merchant.Unfreeze(stake); err != nil {
				return err
			}
		}
		if d.Fee.Amount > 0 {
			if err := merchant.Debit(d.Fee); err != nil {
				return err
			}
		}
		merchant.UpdatedAt = now
		if err := tx.Merchants().UpdateMerchant(merchant); err != nil {
			return err
		}

		if d.Fee.Amount > 0 {
			sa, err := cfg.StakeAssetFor(d.Fee.Symbol)
			if err != nil {
				return err
			}
			memo := fmt.Sprintf("plan:%d:%d", cfg.FeeSplitPlanID, d.Fee.Amount)
			if err := uc.Transfer.Transfer(ctx, sa.CustodyAccount, cfg.FeeSplitAccount, d.Fee, memo); err != nil {
				return fmt.Errorf("fee transfer for deal %d: %w", d.ID, err)
			}
		}

		amount, err := dealAmount(cfg, d)
		if err != nil {
			return err
		}
		if amount.Symbol == cfg.ReferenceStakeSym && cfg.SettleAccount != "" {
			req := domain.SettleDealRequest{
				DealID:   d.ID,
				Maker:    d.Maker,
				Taker:    d.Taker,
				Amount:   amount,
				Fee:      d.Fee,
				Discount: 0,
				OpenedAt: d.CreatedAt,
				ClosedAt: d.ClosedAt,
			}
			if err := uc.Settle.SettleDeal(ctx, req); err != nil {
				return fmt.Errorf("settle deal %d: %w", d.ID, err)
			}
		}

		closed = d
		return nil
	})
	if err != nil {
		return err
	}

	uc.Publisher.PublishDeal(closed.Maker, dealEvent(closed, domain.ActionClose))
	uc.Publisher.PublishDeal(closed.Taker, dealEvent(closed, domain.ActionClose))
	if closed.Fee.Amount > 0 {
		uc.Publisher.PublishStake(domain.StakeEvent{
			Account: closed.Maker,
			Amount:  -closed.Fee.Amount,
			Symbol:  closed.Fee.Symbol,
			Memo:    fmt.Sprintf("fee:%d", closed.ID),
		})
		uc.Metrics.DealFeeTotal.WithLabelValues(closed.Fee.Symbol).Add(float64(closed.Fee.Amount))
	}
	uc.Metrics.DealsClosedTotal.WithLabelValues(string(closed.Side), closed.Quantity.Symbol).Inc()

	return nil
}
