package domain

import "fmt"

// Asset is a fixed-point amount of some symbol. The scale of Amount is the
// symbol's configured decimal precision (see TradingConfig), never a float.
type Asset struct {
	Amount int64  `json:"amount"`
	Symbol string `json:"symbol"`
}

func NewAsset(amount int64, symbol string) Asset {
	return Asset{Amount: amount, Symbol: symbol}
}

func (a Asset) IsZero() bool {
	return a.Amount == 0
}

func (a Asset) String() string {
	return fmt.Sprintf("%d %s", a.Amount, a.Symbol)
}

// SameSymbol reports whether two assets are denominated alike. Arithmetic on
// mismatched symbols is always a caller bug.
func (a Asset) SameSymbol(b Asset) bool {
	return a.Symbol == b.Symbol
}
