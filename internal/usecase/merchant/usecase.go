package merchant

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/metrics"
)

// Withdrawal cool-downs by tier, counted from the last balance change.
// Higher tiers wait less.
const (
	GeneralWithdrawLimit    = 72 * time.Hour
	GoldWithdrawLimit       = 48 * time.Hour
	DiamondWithdrawLimit    = 24 * time.Hour
	BlueshieldWithdrawLimit = 12 * time.Hour
)

type MerchantInfo struct {
	Account      string
	Name         string
	Detail       string
	Email        string
	Memo         string
	Status       domain.MerchantStatus
	RejectReason string

	// InitialDeposit is only honored by RegisterMerchant. A zero amount
	// means the applicant funds the ledger later, once promoted.
	InitialDeposit domain.Asset
}

type MerchantUsecase interface {
	RegisterMerchant(ctx context.Context, info *MerchantInfo) (*domain.Merchant, error)
	SetMerchant(ctx context.Context, actor string, info *MerchantInfo) error
	RemoveMerchant(ctx context.Context, actor, account string) error

	Deposit(ctx context.Context, account string, quantity domain.Asset) error
	Withdraw(ctx context.Context, account string, quantity domain.Asset) error

	SetBlacklist(ctx context.Context, actor, account string, duration time.Duration) error

	GetMerchant(ctx context.Context, account string) (*domain.Merchant, error)
}

type DefaultMerchantUsecase struct {
	Store     domain.Store
	Config    domain.TradingConfigProvider
	Publisher domain.EventPublisher
	Transfer  domain.TransferClient
	Metrics   *metrics.OTCMetrics

	now func() time.Time
}

func NewDefaultMerchantUsecase(
	store domain.Store,
	config domain.TradingConfigProvider,
	publisher domain.EventPublisher,
	transfer domain.TransferClient,
	otcMetrics *metrics.OTCMetrics) *DefaultMerchantUsecase {

	return &DefaultMerchantUsecase{
		Store:     store,
		Config:    config,
		Publisher: publisher,
		Transfer:  transfer,
		Metrics:   otcMetrics,
		now:       time.Now,
	}
}

// SetNowFunc overrides the clock. Tests only.
func (uc *DefaultMerchantUsecase) SetNowFunc(now func() time.Time) {
	uc.now = now
}

func (uc *DefaultMerchantUsecase) GetMerchant(ctx context.Context, account string) (*domain.Merchant, error) {
	return uc.Store.Merchants().GetMerchant(account)
}
