package deal

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/metrics"
)

type OpenDealInput struct {
	Taker     string
	Side      domain.OrderSide
	OrderID   uint64
	Quantity  domain.Asset
	OrderSN   string
	PayMethod string
}

type DealUsecase interface {
	OpenDeal(ctx context.Context, input *OpenDealInput) (*domain.Deal, error)
	ProcessDeal(ctx context.Context, actor string, role domain.Role, dealID uint64, action domain.DealAction) (*domain.Deal, error)
	CloseDeal(ctx context.Context, actor string, role domain.Role, dealID uint64, closeMsg string) error
	CancelDeal(ctx context.Context, actor string, role domain.Role, dealID uint64, blacklistTaker bool) error
	ResetDeal(ctx context.Context, actor string, dealID uint64) error

	GetDeal(ctx context.Context, dealID uint64) (*domain.Deal, error)
	ListDealsByAccount(ctx context.Context, account string, page, limit int) ([]*domain.Deal, int64, error)
}

type DefaultDealUsecase struct {
	Store     domain.Store
	Config    domain.TradingConfigProvider
	Publisher domain.EventPublisher
	Transfer  domain.TransferClient
	Settle    domain.SettleClient
	Metrics   *metrics.OTCMetrics

	now func() time.Time
}

func NewDefaultDealUsecase(
	store domain.Store,
	config domain.TradingConfigProvider,
	publisher domain.EventPublisher,
	transfer domain.TransferClient,
	settle domain.SettleClient,
	otcMetrics *metrics.OTCMetrics) *DefaultDealUsecase {

	return &DefaultDealUsecase{
		Store:     store,
		Config:    config,
		Publisher: publisher,
		Transfer:  transfer,
		Settle:    settle,
		Metrics:   otcMetrics,
		now:       time.Now,
	}
}

// SetNowFunc overrides the clock. Tests only.
func (uc *DefaultDealUsecase) SetNowFunc(now func() time.Time) {
	uc.now = now
}

func (uc *DefaultDealUsecase) GetDeal(ctx context.Context, dealID uint64) (*domain.Deal, error) {
	return uc.Store.Deals().GetDeal(dealID)
}

func (uc *DefaultDealUsecase) ListDealsByAccount(ctx context.Context, account string, page, limit int) ([]*domain.Deal, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return uc.Store.Deals().ListDealsByAccount(account, page, limit)
}

// dealStake recomputes the slice of the order's collateral covered by one
// deal. Per-deal stakes are floored, so their sum never exceeds the stake
// frozen for the whole order.
func dealStake(cfg *domain.TradingConfig, d *domain.Deal) (domain.Asset, error) {
	coin, err := cfg.CoinFor(d.Quantity.Symbol)
	if err != nil {
		return domain.Asset{}, err
	}
	sa, err := cfg.StakeAssetFor(coin.StakeSymbol)
	if err != nil {
		return domain.Asset{}, err
	}
	return domain.OrderStake(d.Quantity, d.Price, coin.Precision, cfg.FiatPrecision, sa.Precision, cfg.StakePct, sa.Symbol)
}

// dealAmount converts the deal quantity into the stake asset's precision for
// fee and settlement bookkeeping.
func dealAmount(cfg *domain.TradingConfig, d *domain.Deal) (domain.Asset, error) {
	coin, err := cfg.CoinFor(d.Quantity.Symbol)
	if err != nil {
		return domain.Asset{}, err
	}
	sa, err := cfg.StakeAssetFor(coin.StakeSymbol)
	if err != nil {
		return domain.Asset{}, err
	}
	amount, err := domain.DealValue(d.Quantity, d.Price, coin.Precision, cfg.FiatPrecision, sa.Precision)
	if err != nil {
		return domain.Asset{}, err
	}
	return domain.Asset{Amount: amount, Symbol: sa.Symbol}, nil
}

func checkNotTerminal(d *domain.Deal) error {
	if d.Status == domain.DealClosed {
		return fmt.Errorf("%w: deal %d already closed", domain.ErrInvalidState, d.ID)
	}
	if d.Status == domain.DealCancelled {
		return fmt.Errorf("%w: deal %d already cancelled", domain.ErrInvalidState, d.ID)
	}
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
