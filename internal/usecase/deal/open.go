package deal

import (
	"context"
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
)

// OpenDeal lets a taker claim a slice of a running order. OrderSN is the
// caller-supplied idempotency token: a retry with a token already bound to a
// deal is rejected instead of creating a duplicate.
func (uc *DefaultDealUsecase) OpenDeal(ctx context.Context, input *OpenDealInput) (created *domain.Deal, err error) {
	defer func() { uc.Metrics.ObserveActionError("open_deal", err) }()

	cfg, err := uc.Config.TradingConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Running() {
		return nil, fmt.Errorf("%w: service under maintenance", domain.ErrInvalidState)
	}
	if !input.Side.Valid() {
		return nil, fmt.Errorf("%w: side %q", domain.ErrInvalidParameter, input.Side)
	}
	if input.OrderSN == "" {
		return nil, fmt.Errorf("%w: order_sn required", domain.ErrInvalidParameter)
	}
	if input.Quantity.Amount <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidParameter)
	}

	now := uc.now()
	err = uc.Store.Transaction(func(tx domain.Store) error {
		order, err := tx.Orders().GetOrder(input.Side, input.OrderID)
		if err != nil {
			return err
		}
		if order.Owner == input.Taker {
			return fmt.Errorf("%w: taker cannot be equal to maker", domain.ErrInvalidParameter)
		}
		if !input.Quantity.SameSymbol(order.Quantity) {
			return fmt.Errorf("%w: token symbol mismatch", domain.ErrInvalidParameter)
		}
		if order.Status != domain.OrderRunning {
			return fmt.Errorf("%w: order %d not running", domain.ErrInvalidState, order.ID)
		}
		if order.RemainingQuantity() < input.Quantity.Amount {
			return fmt.Errorf("%w: order %d has %d %s remaining, deal wants %d",
				domain.ErrInvalidState, order.ID, order.RemainingQuantity(), order.Quantity.Symbol, input.Quantity.Amount)
		}
		if input.Quantity.Amount < order.MinTakeQuantity.Amount {
			return fmt.Errorf("%w: below order min take quantity", domain.ErrInvalidParameter)
		}
		if input.Quantity.Amount > order.MaxTakeQuantity.Amount {
			return fmt.Errorf("%w: above order max take quantity", domain.ErrInvalidParameter)
		}
		allowed := false
		for _, pm := range order.PayMethods {
			if pm == input.PayMethod {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("%w: pay method %q not offered by order %d", domain.ErrInvalidParameter, input.PayMethod, order.ID)
		}

		entry, err := tx.Blacklist().GetBlacklistEntry(input.Taker)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if entry.Active(now) {
			return fmt.Errorf("%w: taker %s is blacklisted until %s", domain.ErrUnauthorized, input.Taker, entry.ExpiredAt)
		}

		if _, err := tx.Deals().GetDealByOrderSN(input.OrderSN); err == nil {
			return fmt.Errorf("%w: order_sn %q already used", domain.ErrConflict, input.OrderSN)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		coin, err := cfg.CoinFor(order.Quantity.Symbol)
		if err != nil {
			return err
		}
		sa, err := cfg.StakeAssetFor(coin.StakeSymbol)
		if err != nil {
			return err
		}
		fee, err := domain.DealFee(input.Quantity, order.Price, coin.Precision, cfg.FiatPrecision, sa.Precision, cfg.FeePct, sa.Symbol)
		if err != nil {
			return err
		}

		id, err := tx.Sequences().NextSequence(domain.SeqDealID)
		if err != nil {
			return err
		}

		created = &domain.Deal{
			ID:           id,
			OrderID:      order.ID,
			Side:         order.Side,
			Maker:        order.Owner,
			Taker:        input.Taker,
			MerchantName: order.MerchantName,
			Quantity:     input.Quantity,
			Price:        order.Price,
			Fee:          fee,
			PayMethod:    input.PayMethod,
			Status:       domain.DealCreated,
			ArbitStatus:  domain.ArbitNone,
			OrderSN:      input.OrderSN,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Deals().CreateDeal(created); err != nil {
			return err
		}

		frozen, err := domain.AddChecked(order.FrozenQuantity.Amount, input.Quantity.Amount)
		if err != nil {
			return err
		}
		order.FrozenQuantity.Amount = frozen
		order.UpdatedAt = now
		return tx.Orders().UpdateOrder(order)
	})
	if err != nil {
		return nil, err
	}

	uc.Publisher.PublishDeal(created.Maker, dealEvent(created, domain.ActionCreate))
	uc.Metrics.DealsOpenedTotal.WithLabelValues(string(created.Side), created.Quantity.Symbol).Inc()

	return created, nil
}
