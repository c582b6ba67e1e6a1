package order

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
)

const maxMemoSize = 255

// OpenOrder places a maker order and freezes the proportional stake on the
// merchant balance. Order IDs come from a per-side sequence, so buy and sell
// books number independently.
func (uc *DefaultOrderUsecase) OpenOrder(ctx context.Context, input *OpenOrderInput) (created *domain.Order, err error) {
	defer func() { uc.Metrics.ObserveActionError("open_order", err) }()

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
	if !cfg.CoinAllowed(input.Side, input.Quantity.Symbol) {
		return nil, fmt.Errorf("%w: coin %s not allowed for %s orders", domain.ErrInvalidParameter, input.Quantity.Symbol, input.Side)
	}
	coin, err := cfg.CoinFor(input.Quantity.Symbol)
	if err != nil {
		return nil, err
	}
	if input.Price.Symbol != cfg.FiatSymbol {
		return nil, fmt.Errorf("%w: price must be quoted in %s", domain.ErrInvalidParameter, cfg.FiatSymbol)
	}
	if input.Quantity.Amount <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidParameter)
	}
	if input.Price.Amount <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", domain.ErrInvalidParameter)
	}
	if !input.MinTakeQuantity.SameSymbol(input.Quantity) || !input.MaxTakeQuantity.SameSymbol(input.Quantity) {
		return nil, fmt.Errorf("%w: take limits must share the order coin", domain.ErrInvalidParameter)
	}
	if input.MinTakeQuantity.Amount <= 0 || input.MaxTakeQuantity.Amount <= 0 {
		return nil, fmt.Errorf("%w: take limits must be positive", domain.ErrInvalidParameter)
	}
	if input.MinTakeQuantity.Amount > input.MaxTakeQuantity.Amount {
		return nil, fmt.Errorf("%w: min take quantity exceeds max", domain.ErrInvalidParameter)
	}
	if input.MaxTakeQuantity.Amount > input.Quantity.Amount {
		return nil, fmt.Errorf("%w: max take quantity exceeds order quantity", domain.ErrInvalidParameter)
	}
	if len(input.Memo) > maxMemoSize {
		return nil, fmt.Errorf("%w: memo too long", domain.ErrInvalidParameter)
	}
	if len(input.PayMethods) == 0 {
		return nil, fmt.Errorf("%w: at least one pay method required", domain.ErrInvalidParameter)
	}
	for _, pm := range input.PayMethods {
		if !cfg.PayMethodAllowed(pm) {
			return nil, fmt.Errorf("%w: pay method %q", domain.ErrInvalidParameter, pm)
		}
	}

	stakeAsset, err := cfg.StakeAssetFor(coin.StakeSymbol)
	if err != nil {
		return nil, err
	}
	stake, err := domain.OrderStake(
		input.Quantity, input.Price,
		coin.Precision, cfg.FiatPrecision, stakeAsset.Precision,
		cfg.StakePct, stakeAsset.Symbol,
	)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	err = uc.Store.Transaction(func(tx domain.Store) error {
		merchant, err := tx.Merchants().GetMerchant(input.Owner)
		if err != nil {
			return err
		}
		if !merchant.Status.Enabled() {
			return fmt.Errorf("%w: merchant %s is not enabled", domain.ErrUnauthorized, input.Owner)
		}
		if err := merchant.Freeze(stake); err != nil {
			return err
		}
		merchant.UpdatedAt = now
		if err := tx.Merchants().UpdateMerchant(merchant); err != nil {
			return err
		}

		id, err := tx.Sequences().NextSequence(domain.OrderSequence(input.Side))
		if err != nil {
			return err
		}

		created = &domain.Order{
			ID:                id,
			Side:              input.Side,
			Owner:             input.Owner,
			MerchantName:      merchant.Name,
			Quantity:          input.Quantity,
			Price:             input.Price,
			MinTakeQuantity:   input.MinTakeQuantity,
			MaxTakeQuantity:   input.MaxTakeQuantity,
			FrozenQuantity:    domain.Asset{Symbol: input.Quantity.Symbol},
			FulfilledQuantity: domain.Asset{Symbol: input.Quantity.Symbol},
			StakeFrozen:       stake,
			PayMethods:        input.PayMethods,
			Memo:              input.Memo,
			Status:            domain.OrderRunning,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		return tx.Orders().CreateOrder(created)
	})
	if err != nil {
		return nil, err
	}

	uc.Publisher.PublishStake(domain.StakeEvent{
		Account: input.Owner,
		Amount:  -stake.Amount,
		Symbol:  stake.Symbol,
		Memo:    fmt.Sprintf("stake frozen for %s order %d", created.Side, created.ID),
	})
	uc.Metrics.OrdersOpenedTotal.WithLabelValues(string(created.Side), input.Quantity.Symbol).Inc()
	uc.Metrics.OrdersStakeFrozen.WithLabelValues(stake.Symbol).Add(float64(stake.Amount))

	return created, nil
}
