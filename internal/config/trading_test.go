package config

import (
	"testing"
	"time"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/stretchr/testify/require"
)

func validTrading() Trading {
	return Trading{
		Status:        "RUNNING",
		FiatSymbol:    "CNY",
		FiatPrecision: 4,
		Coins: []CoinYAML{
			{Symbol: "BTC", Precision: 4, StakeSymbol: "USDT"},
		},
		StakeAssets: []StakeYAML{
			{Symbol: "USDT", Precision: 4, CustodyAccount: "otccustody"},
		},
		BuyCoins:         []string{"BTC"},
		SellCoins:        []string{"BTC"},
		PayMethods:       []string{"alipay"},
		StakePct:         200,
		FeePct:           50,
		AcceptedTimeoutS: 1800,
		PayedTimeoutS:    7200,
		AdminAccount:     "otcadmin",
	}
}

func TestNewStaticTradingProvider(t *testing.T) {
	provider, err := NewStaticTradingProvider(validTrading())
	require.NoError(t, err)

	cfg, err := provider.TradingConfig()
	require.NoError(t, err)
	require.True(t, cfg.Running())
	require.Equal(t, 30*time.Minute, cfg.AcceptedTimeout)
	require.Equal(t, 2*time.Hour, cfg.PayedTimeout)
	require.True(t, cfg.CoinAllowed(domain.SideBuy, "BTC"))
	require.False(t, cfg.CoinAllowed(domain.SideBuy, "DOGE"))
	require.True(t, cfg.PayMethodAllowed("alipay"))

	coin, err := cfg.CoinFor("BTC")
	require.NoError(t, err)
	require.Equal(t, "USDT", coin.StakeSymbol)
}

func TestNewStaticTradingProviderValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Trading)
	}{
		{"missing fiat symbol", func(tr *Trading) { tr.FiatSymbol = "" }},
		{"fiat precision too large", func(tr *Trading) { tr.FiatPrecision = 19 }},
		{"stake pct out of range", func(tr *Trading) { tr.StakePct = domain.PercentBoost + 1 }},
		{"fee pct negative", func(tr *Trading) { tr.FeePct = -1 }},
		{"coin precision too large", func(tr *Trading) { tr.Coins[0].Precision = 19 }},
		{"dangling stake reference", func(tr *Trading) { tr.Coins[0].StakeSymbol = "DAI" }},
		{"unknown status", func(tr *Trading) { tr.Status = "PAUSED" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := validTrading()
			tc.mutate(&tr)
			_, err := NewStaticTradingProvider(tr)
			require.Error(t, err)
		})
	}
}
