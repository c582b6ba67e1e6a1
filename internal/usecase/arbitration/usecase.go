package arbitration

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/metrics"
)

type ArbitrationUsecase interface {
	StartArbitration(ctx context.Context, actor string, role domain.Role, dealID uint64) (*domain.Deal, error)
	ResolveArbitration(ctx context.Context, arbiter string, dealID uint64, favorTaker bool) error
	CancelArbitration(ctx context.Context, actor string, role domain.Role, dealID uint64) error

	AddArbiter(ctx context.Context, actor, account, email string) (*domain.Arbiter, error)
	RemoveArbiter(ctx context.Context, actor, account string) error
	SetDealArbiter(ctx context.Context, actor string, dealID uint64, arbiter string) error
	ListArbiters(ctx context.Context) ([]*domain.Arbiter, error)
}

type DefaultArbitrationUsecase struct {
	Store     domain.Store
	Config    domain.TradingConfigProvider
	Publisher domain.EventPublisher
	Transfer  domain.TransferClient
	Metrics   *metrics.OTCMetrics

	now func() time.Time
}

func NewDefaultArbitrationUsecase(
	store domain.Store,
	config domain.TradingConfigProvider,
	publisher domain.EventPublisher,
	transfer domain.TransferClient,
	otcMetrics *metrics.OTCMetrics) *DefaultArbitrationUsecase {

	return &DefaultArbitrationUsecase{
		Store:     store,
		Config:    config,
		Publisher: publisher,
		Transfer:  transfer,
		Metrics:   otcMetrics,
		now:       time.Now,
	}
}

// SetNowFunc overrides the clock. Tests only.
func (uc *DefaultArbitrationUsecase) SetNowFunc(now func() time.Time) {
	uc.now = now
}

func (uc *DefaultArbitrationUsecase) ListArbiters(ctx context.Context) ([]*domain.Arbiter, error) {
	return uc.Store.Arbiters().ListArbiters()
}
