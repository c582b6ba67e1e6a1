package deal

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
)

// CancelDeal unwinds a deal that never reached the payment handshake. The
// counterparties may cancel from CREATED freely and from MAKER_ACCEPTED only
// once the acceptance timeout ran out; admin and the assigned arbiter cancel
// unconditionally. The deal's slice of the stake thaws back to the maker, no
// fee is charged.
func (uc *DefaultDealUsecase) CancelDeal(ctx context.Context, actor string, role domain.Role, dealID uint64, blacklistTaker bool) (err error) {
	defer func() { uc.Metrics.ObserveActionError("cancel_deal", err) }()

	cfg, err := uc.Config.TradingConfig()
	if err != nil {
		return err
	}

	now := uc.now()
	var cancelled *domain.Deal
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
		case domain.RoleUser, domain.RoleMerchant:
			switch d.Status {
			case domain.DealCreated:
			case domain.DealMakerAccepted:
				if now.Before(d.AcceptedAt.Add(cfg.AcceptedTimeout)) {
					return fmt.Errorf("%w: acceptance window for deal %d still open", domain.ErrNotYetExpired, d.ID)
				}
			default:
				return fmt.Errorf("%w: deal %d must be %s or %s to cancel, got %s",
					domain.ErrInvalidState, d.ID, domain.DealCreated, domain.DealMakerAccepted, d.Status)
			}
			if role == domain.RoleMerchant && blacklistTaker && d.Status == domain.DealMakerAccepted {
				if err := tx.Blacklist().SetBlacklistEntry(&domain.BlacklistEntry{
					Account:   d.Taker,
					ExpiredAt: now.Add(domain.DefaultBlacklistDuration),
					CreatedAt: now,
				}); err != nil {
					return err
				}
			}
		case domain.RoleArbiter:
			if d.ArbitStatus != domain.ArbitInProgress {
				return fmt.Errorf("%w: arbiter can only cancel while arbitrating", domain.ErrInvalidState)
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

		if stake.Amount > 0 {
			merchant, err := tx.Merchants().GetMerchant(d.Maker)
			if err != nil {
				return err
			}
			if err := merchant.Unfreeze(stake); err != nil {
				return err
			}
			merchant.UpdatedAt = now
			if err := tx.Merchants().UpdateMerchant(merchant); err != nil {
				return err
			}
		}

		order.StakeFrozen.Amount -= stake.Amount
		order.FrozenQuantity.Amount -= d.Quantity.Amount
		order.UpdatedAt = now
		if err := tx.Orders().UpdateOrder(order); err != nil {
			return err
		}

		d.Status = domain.DealCancelled
		d.ArbitStatus = domain.ArbitNone
		d.ClosedAt = now
		d.UpdatedAt = now
		d.CloseMsg = "cancel deal"
		if err := tx.Deals().UpdateDeal(d); err != nil {
			return err
		}

		cancelled = d
		return nil
	})
	if err != nil {
		return err
	}

	uc.Publisher.PublishDeal(cancelled.Maker, dealEvent(cancelled, domain.ActionCancel))
	uc.Publisher.PublishDeal(cancelled.Taker, dealEvent(cancelled, domain.ActionCancel))
	uc.Metrics.DealsCancelledTotal.WithLabelValues(string(cancelled.Side), cancelled.Quantity.Symbol).Inc()

	return nil
}
