package config

import (
	"fmt"
	"time"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
)

// StaticTradingProvider serves a TradingConfig assembled once from the YAML
// section. It satisfies domain.TradingConfigProvider for deployments where
// trading parameters change only with a restart.
type StaticTradingProvider struct {
	cfg *domain.TradingConfig
}

func NewStaticTradingProvider(t Trading) (*StaticTradingProvider, error) {
	if t.FiatSymbol == "" {
		return nil, fmt.Errorf("trading config: fiat_symbol required")
	}
	if err := domain.CheckPrecision(t.FiatPrecision); err != nil {
		return nil, err
	}
	if t.StakePct < 0 || t.StakePct > domain.PercentBoost {
		return nil, fmt.Errorf("trading config: stake_pct %d out of range", t.StakePct)
	}
	if t.FeePct < 0 || t.FeePct > domain.PercentBoost {
		return nil, fmt.Errorf("trading config: fee_pct %d out of range", t.FeePct)
	}

	coins := make(map[string]domain.CoinConfig, len(t.Coins))
	for _, c := range t.Coins {
		if err := domain.CheckPrecision(c.Precision); err != nil {
			return nil, fmt.Errorf("coin %s: %w", c.Symbol, err)
		}
		coins[c.Symbol] = domain.CoinConfig{
			Symbol:      c.Symbol,
			Precision:   c.Precision,
			StakeSymbol: c.StakeSymbol,
		}
	}
	stakes := make(map[string]domain.StakeAssetConfig, len(t.StakeAssets))
	for _, s := range t.StakeAssets {
		if err := domain.CheckPrecision(s.Precision); err != nil {
			return nil, fmt.Errorf("stake asset %s: %w", s.Symbol, err)
		}
		stakes[s.Symbol] = domain.StakeAssetConfig{
			Symbol:         s.Symbol,
			Precision:      s.Precision,
			CustodyAccount: s.CustodyAccount,
		}
	}
	for sym, c := range coins {
		if _, ok := stakes[c.StakeSymbol]; !ok {
			return nil, fmt.Errorf("coin %s references unknown stake asset %s", sym, c.StakeSymbol)
		}
	}

	status := domain.ServiceStatus(t.Status)
	if status != domain.ServiceRunning && status != domain.ServiceMaintenance {
		return nil, fmt.Errorf("trading config: status %q", t.Status)
	}

	return &StaticTradingProvider{cfg: &domain.TradingConfig{
		Status:            status,
		FiatSymbol:        t.FiatSymbol,
		FiatPrecision:     t.FiatPrecision,
		Coins:             coins,
		StakeAssets:       stakes,
		BuyCoins:          toSet(t.BuyCoins),
		SellCoins:         toSet(t.SellCoins),
		PayMethods:        toSet(t.PayMethods),
		StakePct:          t.StakePct,
		FeePct:            t.FeePct,
		AcceptedTimeout:   time.Duration(t.AcceptedTimeoutS) * time.Second,
		PayedTimeout:      time.Duration(t.PayedTimeoutS) * time.Second,
		AdminAccount:      t.AdminAccount,
		SettleAccount:     t.SettleAccount,
		FeeSplitAccount:   t.FeeSplitAccount,
		FeeSplitPlanID:    t.FeeSplitPlanID,
		ReferenceStakeSym: t.ReferenceStakeSym,
	}}, nil
}

func (p *StaticTradingProvider) TradingConfig() (*domain.TradingConfig, error) {
	return p.cfg, nil
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
