package merchant

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/memory"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/metrics"
	"github.com/stretchr/testify/require"
)

var testMetrics = metrics.NewOTCMetrics()

type staticConfig struct{ cfg *domain.TradingConfig }

func (p staticConfig) TradingConfig() (*domain.TradingConfig, error) { return p.cfg, nil }

type recordingPublisher struct {
	merchantEvents []domain.MerchantEvent
	stakeEvents    []domain.StakeEvent
}

func (p *recordingPublisher) PublishDeal(string, domain.DealEvent) error { return nil }

func (p *recordingPublisher) PublishStake(e domain.StakeEvent) error {
	p.stakeEvents = append(p.stakeEvents, e)
	return nil
}

func (p *recordingPublisher) PublishMerchant(e domain.MerchantEvent) error {
	p.merchantEvents = append(p.merchantEvents, e)
	return nil
}

type transferCall struct {
	From     string
	To       string
	Quantity domain.Asset
	Memo     string
}

type recordingTransfer struct {
	calls []transferCall
	err   error
}

func (c *recordingTransfer) Transfer(_ context.Context, from, to string, quantity domain.Asset, memo string) error {
	if c.err != nil {
		return c.err
	}
	c.calls = append(c.calls, transferCall{from, to, quantity, memo})
	return nil
}

func testTradingConfig() *domain.TradingConfig {
	return &domain.TradingConfig{
		Status:        domain.ServiceRunning,
		FiatSymbol:    "CNY",
		FiatPrecision: 4,
		StakeAssets: map[string]domain.StakeAssetConfig{
			"USDT": {Symbol: "USDT", Precision: 4, CustodyAccount: "otccustody"},
		},
		AdminAccount: "otcadmin",
	}
}

type fixture struct {
	store *memory.Store
	uc    *DefaultMerchantUsecase
	cfg   *domain.TradingConfig
	pub   *recordingPublisher
	xfer  *recordingTransfer
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: memory.NewStore(),
		cfg:   testTradingConfig(),
		pub:   &recordingPublisher{},
		xfer:  &recordingTransfer{},
		now:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	f.uc = NewDefaultMerchantUsecase(f.store, staticConfig{f.cfg}, f.pub, f.xfer, testMetrics)
	f.uc.SetNowFunc(func() time.Time { return f.now })
	return f
}

func (f *fixture) register(t *testing.T, account string) *domain.Merchant {
	t.Helper()
	m, err := f.uc.RegisterMerchant(context.Background(), &MerchantInfo{
		Account: account,
		Name:    account,
		Email:   account + "@otc.example",
	})
	require.NoError(t, err)
	return m
}

func (f *fixture) promote(t *testing.T, account string, status domain.MerchantStatus) {
	t.Helper()
	err := f.uc.SetMerchant(context.Background(), "otcadmin", &MerchantInfo{
		Account: account,
		Status:  status,
	})
	require.NoError(t, err)
}

func TestRegisterMerchant(t *testing.T) {
	f := newFixture(t)

	m := f.register(t, "alice")
	require.Equal(t, domain.MerchantRegistered, m.Status)
	require.Empty(t, m.Balances)

	_, err := f.uc.RegisterMerchant(context.Background(), &MerchantInfo{Account: "alice"})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegisterMerchantWithInitialDeposit(t *testing.T) {
	f := newFixture(t)

	m, err := f.uc.RegisterMerchant(context.Background(), &MerchantInfo{
		Account:        "alice",
		Name:           "alice",
		InitialDeposit: domain.Asset{Amount: 5000000, Symbol: "USDT"},
	})
	require.NoError(t, err)
	require.Equal(t, domain.MerchantRegistered, m.Status)
	require.Equal(t, domain.Balance{Available: 5000000}, m.Balances["USDT"])

	stored, err := f.store.Merchants().GetMerchant("alice")
	require.NoError(t, err)
	require.Equal(t, domain.Balance{Available: 5000000}, stored.Balances["USDT"])

	require.Equal(t, []transferCall{
		{"alice", "otccustody", domain.Asset{Amount: 5000000, Symbol: "USDT"}, "merchant apply deposit"},
	}, f.xfer.calls)
	require.Len(t, f.pub.stakeEvents, 1)
	require.Equal(t, int64(5000000), f.pub.stakeEvents[0].Amount)
	require.Equal(t, "merchant apply deposit", f.pub.stakeEvents[0].Memo)
}

func TestRegisterMerchantDepositRejections(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.RegisterMerchant(context.Background(), &MerchantInfo{
		Account:        "alice",
		InitialDeposit: domain.Asset{Amount: -1, Symbol: "USDT"},
	})
	require.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = f.uc.RegisterMerchant(context.Background(), &MerchantInfo{
		Account:        "alice",
		InitialDeposit: domain.Asset{Amount: 5000000, Symbol: "DOGE"},
	})
	require.ErrorIs(t, err, domain.ErrInvalidParameter)

	// A failed banking transfer rolls the whole application back.
	f.xfer.err = context.DeadlineExceeded
	_, err = f.uc.RegisterMerchant(context.Background(), &MerchantInfo{
		Account:        "alice",
		InitialDeposit: domain.Asset{Amount: 5000000, Symbol: "USDT"},
	})
	require.Error(t, err)
	_, err = f.store.Merchants().GetMerchant("alice")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterMerchantValidatesSizes(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.RegisterMerchant(context.Background(), &MerchantInfo{Account: ""})
	require.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = f.uc.RegisterMerchant(context.Background(), &MerchantInfo{
		Account: "alice",
		Name:    strings.Repeat("a", 32),
	})
	require.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestRejectedMerchantMayReapply(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")

	err := f.uc.SetMerchant(context.Background(), "otcadmin", &MerchantInfo{
		Account:      "alice",
		Status:       domain.MerchantRejected,
		RejectReason: "incomplete papers",
	})
	require.NoError(t, err)
	require.Len(t, f.pub.merchantEvents, 1)
	require.Equal(t, "incomplete papers", f.pub.merchantEvents[0].Reason)

	m, err := f.uc.RegisterMerchant(context.Background(), &MerchantInfo{
		Account: "alice",
		Detail:  "papers attached",
	})
	require.NoError(t, err)
	require.Equal(t, domain.MerchantRegistered, m.Status)
	require.Equal(t, "papers attached", m.Detail)
	// Fields absent from the re-application survive.
	require.Equal(t, "alice", m.Name)
}

func TestSetMerchantAdminOnly(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")

	err := f.uc.SetMerchant(context.Background(), "alice", &MerchantInfo{
		Account: "alice",
		Status:  domain.MerchantBlueshield,
	})
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	err = f.uc.SetMerchant(context.Background(), "otcadmin", &MerchantInfo{
		Account: "alice",
		Status:  "PLATINUM",
	})
	require.ErrorIs(t, err, domain.ErrInvalidParameter)

	f.promote(t, "alice", domain.MerchantGold)
	m, err := f.uc.GetMerchant(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, domain.MerchantGold, m.Status)
}

func TestRemoveMerchant(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")
	ctx := context.Background()

	err := f.uc.RemoveMerchant(ctx, "alice", "alice")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, f.uc.RemoveMerchant(ctx, "otcadmin", "alice"))
	_, err = f.uc.GetMerchant(ctx, "alice")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeposit(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")
	f.promote(t, "alice", domain.MerchantBasic)
	ctx := context.Background()

	require.NoError(t, f.uc.Deposit(ctx, "alice", domain.NewAsset(5000000, "USDT")))

	m, err := f.uc.GetMerchant(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, domain.Balance{Available: 5000000}, m.BalanceOf("USDT"))

	require.Len(t, f.xfer.calls, 1)
	require.Equal(t, transferCall{
		From:     "alice",
		To:       "otccustody",
		Quantity: domain.NewAsset(5000000, "USDT"),
		Memo:     "merchant deposit",
	}, f.xfer.calls[0])

	require.Len(t, f.pub.stakeEvents, 1)
	require.Equal(t, int64(5000000), f.pub.stakeEvents[0].Amount)
}

func TestDepositRequiresEnabledTier(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")

	err := f.uc.Deposit(context.Background(), "alice", domain.NewAsset(5000000, "USDT"))
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestDepositRejectsUnknownStakeAsset(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")
	f.promote(t, "alice", domain.MerchantBasic)

	err := f.uc.Deposit(context.Background(), "alice", domain.NewAsset(5000000, "DOGE"))
	require.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestWithdrawCoolDownByTier(t *testing.T) {
	tests := []struct {
		status domain.MerchantStatus
		limit  time.Duration
	}{
		{domain.MerchantBasic, GeneralWithdrawLimit},
		{domain.MerchantGold, GoldWithdrawLimit},
		{domain.MerchantDiamond, DiamondWithdrawLimit},
		{domain.MerchantBlueshield, BlueshieldWithdrawLimit},
	}
	for _, tc := range tests {
		t.Run(string(tc.status), func(t *testing.T) {
			f := newFixture(t)
			f.register(t, "alice")
			f.promote(t, "alice", tc.status)
			ctx := context.Background()

			require.NoError(t, f.uc.Deposit(ctx, "alice", domain.NewAsset(5000000, "USDT")))

			f.now = f.now.Add(tc.limit)
			err := f.uc.Withdraw(ctx, "alice", domain.NewAsset(1000000, "USDT"))
			require.ErrorIs(t, err, domain.ErrNotYetExpired)

			f.now = f.now.Add(time.Second)
			require.NoError(t, f.uc.Withdraw(ctx, "alice", domain.NewAsset(1000000, "USDT")))

			m, err := f.uc.GetMerchant(ctx, "alice")
			require.NoError(t, err)
			require.Equal(t, domain.Balance{Available: 4000000}, m.BalanceOf("USDT"))
		})
	}
}

func TestWithdrawPaysOutOfCustody(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")
	f.promote(t, "alice", domain.MerchantBasic)
	ctx := context.Background()

	require.NoError(t, f.uc.Deposit(ctx, "alice", domain.NewAsset(5000000, "USDT")))
	f.now = f.now.Add(GeneralWithdrawLimit + time.Second)
	require.NoError(t, f.uc.Withdraw(ctx, "alice", domain.NewAsset(5000000, "USDT")))

	require.Len(t, f.xfer.calls, 2)
	require.Equal(t, transferCall{
		From:     "otccustody",
		To:       "alice",
		Quantity: domain.NewAsset(5000000, "USDT"),
		Memo:     "merchant withdraw",
	}, f.xfer.calls[1])
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")
	f.promote(t, "alice", domain.MerchantBasic)
	ctx := context.Background()

	f.now = f.now.Add(GeneralWithdrawLimit + time.Second)
	err := f.uc.Withdraw(ctx, "alice", domain.NewAsset(1, "USDT"))
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestDisabledMerchantMayStillWithdraw(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")
	f.promote(t, "alice", domain.MerchantBasic)
	ctx := context.Background()

	require.NoError(t, f.uc.Deposit(ctx, "alice", domain.NewAsset(5000000, "USDT")))
	f.promote(t, "alice", domain.MerchantDisabled)

	f.now = f.now.Add(GeneralWithdrawLimit + time.Second)
	require.NoError(t, f.uc.Withdraw(ctx, "alice", domain.NewAsset(5000000, "USDT")))
}

func TestRegisteredMerchantCannotWithdraw(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")

	f.now = f.now.Add(GeneralWithdrawLimit + time.Second)
	err := f.uc.Withdraw(context.Background(), "alice", domain.NewAsset(1, "USDT"))
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSetBlacklist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.uc.SetBlacklist(ctx, "mallory", "bob", time.Hour)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	err = f.uc.SetBlacklist(ctx, "otcadmin", "bob", domain.MaxBlacklistDuration+time.Second)
	require.ErrorIs(t, err, domain.ErrInvalidParameter)

	require.NoError(t, f.uc.SetBlacklist(ctx, "otcadmin", "bob", time.Hour))
	entry, err := f.store.Blacklist().GetBlacklistEntry("bob")
	require.NoError(t, err)
	require.Equal(t, f.now.Add(time.Hour), entry.ExpiredAt)
	require.True(t, entry.Active(f.now))

	// Zero duration lifts the ban.
	require.NoError(t, f.uc.SetBlacklist(ctx, "otcadmin", "bob", 0))
	_, err = f.store.Blacklist().GetBlacklistEntry("bob")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
