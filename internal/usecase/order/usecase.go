package order

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/metrics"
)

type OpenOrderInput struct {
	Owner           string
	Side            domain.OrderSide
	Quantity        domain.Asset
	Price           domain.Asset
	MinTakeQuantity domain.Asset
	MaxTakeQuantity domain.Asset
	PayMethods      []string
	Memo            string
}

type OrderUsecase interface {
	OpenOrder(ctx context.Context, input *OpenOrderInput) (*domain.Order, error)
	PauseOrder(ctx context.Context, owner string, side domain.OrderSide, orderID uint64) error
	ResumeOrder(ctx context.Context, owner string, side domain.OrderSide, orderID uint64) error
	CloseOrder(ctx context.Context, owner string, side domain.OrderSide, orderID uint64) error

	GetOrder(ctx context.Context, side domain.OrderSide, orderID uint64) (*domain.Order, error)
	ListOrdersByOwner(ctx context.Context, side domain.OrderSide, owner string, page, limit int) ([]*domain.Order, int64, error)
}

type DefaultOrderUsecase struct {
	Store     domain.Store
	Config    domain.TradingConfigProvider
	Publisher domain.EventPublisher
	Metrics   *metrics.OTCMetrics

	now func() time.Time
}

func NewDefaultOrderUsecase(
	store domain.Store,
	config domain.TradingConfigProvider,
	publisher domain.EventPublisher,
	otcMetrics *metrics.OTCMetrics) *DefaultOrderUsecase {

	return &DefaultOrderUsecase{
		Store:     store,
		Config:    config,
		Publisher: publisher,
		Metrics:   otcMetrics,
		now:       time.Now,
	}
}

// SetNowFunc overrides the clock. Tests only.
func (uc *DefaultOrderUsecase) SetNowFunc(now func() time.Time) {
	uc.now = now
}
