package domain

import (
	"fmt"
	"time"
)

type ServiceStatus string

const (
	ServiceRunning     ServiceStatus = "RUNNING"
	ServiceMaintenance ServiceStatus = "MAINTENANCE"
)

// CoinConfig describes one tradable coin: its fixed-point precision and the
// stake asset collateral for it is denominated in.
type CoinConfig struct {
	Symbol      string `yaml:"symbol"`
	Precision   uint8  `yaml:"precision"`
	StakeSymbol string `yaml:"stake_symbol"`
}

// StakeAssetConfig describes a stake asset and the custody account holding
// merchant deposits for it.
type StakeAssetConfig struct {
	Symbol         string `yaml:"symbol"`
	Precision      uint8  `yaml:"precision"`
	CustodyAccount string `yaml:"custody_account"`
}

// TradingConfig is the externally managed parameter set the core consults on
// every action. It is read-only here and refreshed on demand by the provider.
type TradingConfig struct {
	Status            ServiceStatus
	FiatSymbol        string
	FiatPrecision     uint8
	Coins             map[string]CoinConfig
	StakeAssets       map[string]StakeAssetConfig
	BuyCoins          map[string]bool
	SellCoins         map[string]bool
	PayMethods        map[string]bool
	StakePct          int64
	FeePct            int64
	AcceptedTimeout   time.Duration
	PayedTimeout      time.Duration
	AdminAccount      string
	SettleAccount     string
	FeeSplitAccount   string
	FeeSplitPlanID    uint64
	ReferenceStakeSym string
}

func (c *TradingConfig) Running() bool {
	return c != nil && c.Status == ServiceRunning
}

func (c *TradingConfig) CoinFor(symbol string) (CoinConfig, error) {
	coin, ok := c.Coins[symbol]
	if !ok {
		return CoinConfig{}, fmt.Errorf("%w: coin %s has no configured stake asset", ErrInvalidParameter, symbol)
	}
	return coin, nil
}

func (c *TradingConfig) StakeAssetFor(symbol string) (StakeAssetConfig, error) {
	sa, ok := c.StakeAssets[symbol]
	if !ok {
		return StakeAssetConfig{}, fmt.Errorf("%w: stake asset %s not configured", ErrInvalidParameter, symbol)
	}
	return sa, nil
}

func (c *TradingConfig) CoinAllowed(side OrderSide, symbol string) bool {
	if side == SideBuy {
		return c.BuyCoins[symbol]
	}
	return c.SellCoins[symbol]
}

func (c *TradingConfig) PayMethodAllowed(method string) bool {
	return c.PayMethods[method]
}

// TradingConfigProvider hands out the current trading parameters. Callers
// must not cache the result across actions.
type TradingConfigProvider interface {
	TradingConfig() (*TradingConfig, error)
}
