package order

import (
	"context"
	"testing"
	"time"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/memory"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

// One registry-backed metrics set per test binary.
var testMetrics = metrics.NewOTCMetrics()

type staticConfig struct{ cfg *domain.TradingConfig }

func (p staticConfig) TradingConfig() (*domain.TradingConfig, error) { return p.cfg, nil }

type nopPublisher struct{}

func (nopPublisher) PublishDeal(string, domain.DealEvent) error { return nil }
func (nopPublisher) PublishStake(domain.StakeEvent) error       { return nil }
func (nopPublisher) PublishMerchant(domain.MerchantEvent) error { return nil }

func testTradingConfig() *domain.TradingConfig {
	return &domain.TradingConfig{
		Status:        domain.ServiceRunning,
		FiatSymbol:    "CNY",
		FiatPrecision: 4,
		Coins: map[string]domain.CoinConfig{
			"BTC": {Symbol: "BTC", Precision: 4, StakeSymbol: "USDT"},
		},
		StakeAssets: map[string]domain.StakeAssetConfig{
			"USDT": {Symbol: "USDT", Precision: 4, CustodyAccount: "otccustody"},
		},
		BuyCoins:        map[string]bool{"BTC": true},
		SellCoins:       map[string]bool{"BTC": true},
		PayMethods:      map[string]bool{"alipay": true, "wechat": true},
		StakePct:        200,
		FeePct:          50,
		AcceptedTimeout: 30 * time.Minute,
		PayedTimeout:    2 * time.Hour,
		AdminAccount:    "otcadmin",
	}
}

type fixture struct {
	store *memory.Store
	uc    *DefaultOrderUsecase
	cfg   *domain.TradingConfig
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: memory.NewStore(),
		cfg:   testTradingConfig(),
		now:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	f.uc = NewDefaultOrderUsecase(f.store, staticConfig{f.cfg}, nopPublisher{}, testMetrics)
	f.uc.SetNowFunc(func() time.Time { return f.now })
	return f
}

func (f *fixture) seedMerchant(t *testing.T, account string, available int64) {
	t.Helper()
	err := f.store.Merchants().CreateMerchant(&domain.Merchant{
		Account: account,
		Name:    account,
		Status:  domain.MerchantBasic,
		Balances: map[string]domain.Balance{
			"USDT": {Available: available},
		},
		CreatedAt: f.now,
		UpdatedAt: f.now,
	})
	require.NoError(t, err)
}

func validInput() *OpenOrderInput {
	return &OpenOrderInput{
		Owner:           "alice",
		Side:            domain.SideSell,
		Quantity:        domain.NewAsset(100000, "BTC"),    // 10.0000 BTC
		Price:           domain.NewAsset(700000000, "CNY"), // 70000.0000
		MinTakeQuantity: domain.NewAsset(1000, "BTC"),
		MaxTakeQuantity: domain.NewAsset(50000, "BTC"),
		PayMethods:      []string{"alipay"},
	}
}

func TestOpenOrderFreezesStake(t *testing.T) {
	f := newFixture(t)
	f.seedMerchant(t, "alice", 200000000)

	order, err := f.uc.OpenOrder(context.Background(), validInput())
	require.NoError(t, err)
	require.Equal(t, uint64(1), order.ID)
	require.Equal(t, domain.OrderRunning, order.Status)
	// 2% of the 7000000000 USDT deal value.
	require.Equal(t, domain.NewAsset(140000000, "USDT"), order.StakeFrozen)
	require.Equal(t, int64(0), order.FrozenQuantity.Amount)
	require.Equal(t, int64(0), order.FulfilledQuantity.Amount)

	m, err := f.store.Merchants().GetMerchant("alice")
	require.NoError(t, err)
	require.Equal(t, domain.Balance{Available: 60000000, Frozen: 140000000}, m.BalanceOf("USDT"))
}

func TestOpenOrderSidesNumberIndependently(t *testing.T) {
	f := newFixture(t)
	f.seedMerchant(t, "alice", 400000000)

	sell, err := f.uc.OpenOrder(context.Background(), validInput())
	require.NoError(t, err)

	buyInput := validInput()
	buyInput.Side = domain.SideBuy
	buy, err := f.uc.OpenOrder(context.Background(), buyInput)
	require.NoError(t, err)

	require.Equal(t, uint64(1), sell.ID)
	require.Equal(t, uint64(1), buy.ID)
}

func TestOpenOrderInsufficientStake(t *testing.T) {
	f := newFixture(t)
	f.seedMerchant(t, "alice", 1000)

	_, err := f.uc.OpenOrder(context.Background(), validInput())
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// Nothing leaked out of the failed transaction.
	m, err := f.store.Merchants().GetMerchant("alice")
	require.NoError(t, err)
	require.Equal(t, domain.Balance{Available: 1000}, m.BalanceOf("USDT"))
	_, _, err = f.uc.ListOrdersByOwner(context.Background(), domain.SideSell, "alice", 1, 10)
	require.NoError(t, err)
}

func TestOpenOrderRejectsDisabledMerchant(t *testing.T) {
	f := newFixture(t)
	err := f.store.Merchants().CreateMerchant(&domain.Merchant{
		Account: "alice",
		Status:  domain.MerchantRegistered,
		Balances: map[string]domain.Balance{
			"USDT": {Available: 200000000},
		},
	})
	require.NoError(t, err)

	_, err = f.uc.OpenOrder(context.Background(), validInput())
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestOpenOrderValidation(t *testing.T) {
	f := newFixture(t)
	f.seedMerchant(t, "alice", 200000000)

	tests := []struct {
		name   string
		mutate func(*OpenOrderInput)
	}{
		{"bad side", func(in *OpenOrderInput) { in.Side = "SHORT" }},
		{"unknown coin", func(in *OpenOrderInput) {
			in.Quantity.Symbol = "DOGE"
			in.MinTakeQuantity.Symbol = "DOGE"
			in.MaxTakeQuantity.Symbol = "DOGE"
		}},
		{"wrong price symbol", func(in *OpenOrderInput) { in.Price.Symbol = "USD" }},
		{"zero quantity", func(in *OpenOrderInput) { in.Quantity.Amount = 0 }},
		{"negative price", func(in *OpenOrderInput) { in.Price.Amount = -1 }},
		{"take limit symbol mismatch", func(in *OpenOrderInput) { in.MinTakeQuantity.Symbol = "ETH" }},
		{"zero min take", func(in *OpenOrderInput) { in.MinTakeQuantity.Amount = 0 }},
		{"zero max take", func(in *OpenOrderInput) {
			in.MinTakeQuantity.Amount = 0
			in.MaxTakeQuantity.Amount = 0
		}},
		{"min above max", func(in *OpenOrderInput) { in.MinTakeQuantity.Amount = 60000 }},
		{"max above quantity", func(in *OpenOrderInput) { in.MaxTakeQuantity.Amount = 100001 }},
		{"no pay methods", func(in *OpenOrderInput) { in.PayMethods = nil }},
		{"unknown pay method", func(in *OpenOrderInput) { in.PayMethods = []string{"paypal"} }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(in)
			_, err := f.uc.OpenOrder(context.Background(), in)
			require.ErrorIs(t, err, domain.ErrInvalidParameter)
		})
	}
}

func TestOpenOrderRejectionCountsError(t *testing.T) {
	f := newFixture(t)
	f.seedMerchant(t, "alice", 200000000)

	counter := testMetrics.ActionErrorsTotal.WithLabelValues("open_order", "invalid_parameter")
	before := testutil.ToFloat64(counter)

	in := validInput()
	in.Side = "SHORT"
	_, err := f.uc.OpenOrder(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInvalidParameter)
	require.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestOpenOrderUnderMaintenance(t *testing.T) {
	f := newFixture(t)
	f.seedMerchant(t, "alice", 200000000)
	f.cfg.Status = domain.ServiceMaintenance

	_, err := f.uc.OpenOrder(context.Background(), validInput())
	require.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestPauseAndResumeOrder(t *testing.T) {
	f := newFixture(t)
	f.seedMerchant(t, "alice", 200000000)
	order, err := f.uc.OpenOrder(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, f.uc.PauseOrder(context.Background(), "alice", order.Side, order.ID))
	got, err := f.uc.GetOrder(context.Background(), order.Side, order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderPaused, got.Status)

	// Only RUNNING orders pause.
	err = f.uc.PauseOrder(context.Background(), "alice", order.Side, order.ID)
	require.ErrorIs(t, err, domain.ErrInvalidState)

	require.NoError(t, f.uc.ResumeOrder(context.Background(), "alice", order.Side, order.ID))
	got, err = f.uc.GetOrder(context.Background(), order.Side, order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderRunning, got.Status)

	err = f.uc.ResumeOrder(context.Background(), "alice", order.Side, order.ID)
	require.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestPauseOrderOwnerOnly(t *testing.T) {
	f := newFixture(t)
	f.seedMerchant(t, "alice", 200000000)
	order, err := f.uc.OpenOrder(context.Background(), validInput())
	require.NoError(t, err)

	err = f.uc.PauseOrder(context.Background(), "mallory", order.Side, order.ID)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCloseOrderReleasesStake(t *testing.T) {
	f := newFixture(t)
	f.seedMerchant(t, "alice", 200000000)
	order, err := f.uc.OpenOrder(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, f.uc.CloseOrder(context.Background(), "alice", order.Side, order.ID))

	got, err := f.uc.GetOrder(context.Background(), order.Side, order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderClosed, got.Status)
	require.Equal(t, int64(0), got.StakeFrozen.Amount)
	require.Equal(t, f.now, got.ClosedAt)

	m, err := f.store.Merchants().GetMerchant("alice")
	require.NoError(t, err)
	require.Equal(t, domain.Balance{Available: 200000000}, m.BalanceOf("USDT"))

	err = f.uc.CloseOrder(context.Background(), "alice", order.Side, order.ID)
	require.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCloseOrderBlockedByOpenDeals(t *testing.T) {
	f := newFixture(t)
	f.seedMerchant(t, "alice", 200000000)
	order, err := f.uc.OpenOrder(context.Background(), validInput())
	require.NoError(t, err)

	order.FrozenQuantity.Amount = 10000
	require.NoError(t, f.store.Orders().UpdateOrder(order))

	err = f.uc.CloseOrder(context.Background(), "alice", order.Side, order.ID)
	require.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestListOrdersByOwnerPaginates(t *testing.T) {
	f := newFixture(t)
	f.seedMerchant(t, "alice", 2000000000)

	for i := 0; i < 3; i++ {
		_, err := f.uc.OpenOrder(context.Background(), validInput())
		require.NoError(t, err)
	}

	orders, total, err := f.uc.ListOrdersByOwner(context.Background(), domain.SideSell, "alice", 2, 2)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, orders, 1)
	require.Equal(t, uint64(3), orders[0].ID)
}
