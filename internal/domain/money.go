package domain

import (
	"fmt"
	"math"
	"math/big"
)

// PercentBoost is the fixed-point scale for stake and fee percentages:
// 10000 == 100%, so a value of 200 means 2%.
const PercentBoost = 10000

func pow10(digits uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
}

// CheckPrecision validates a configured decimal precision.
func CheckPrecision(digits uint8) error {
	if digits > 18 {
		return fmt.Errorf("%w: precision digit %d should be in range[0,18]", ErrInvalidParameter, digits)
	}
	return nil
}

// mulDiv computes amount*num/den with a big.Int intermediate and rejects
// results outside the int64 range.
func mulDiv(amount int64, num, den *big.Int) (int64, error) {
	if den.Sign() == 0 {
		return 0, fmt.Errorf("%w: zero divisor in fixed-point math", ErrInvalidParameter)
	}
	v := new(big.Int).Mul(big.NewInt(amount), num)
	v.Quo(v, den)
	if !v.IsInt64() {
		return 0, fmt.Errorf("%w: fixed-point overflow: %s", ErrInvalidParameter, v.String())
	}
	return v.Int64(), nil
}

// DealValue converts quantity*price into the stake asset's precision.
// quantity carries quantityPrec digits, price carries pricePrec digits and the
// result carries stakePrec digits.
func DealValue(quantity, price Asset, quantityPrec, pricePrec, stakePrec uint8) (int64, error) {
	for _, p := range []uint8{quantityPrec, pricePrec, stakePrec} {
		if err := CheckPrecision(p); err != nil {
			return 0, err
		}
	}
	num := pow10(stakePrec)
	den := new(big.Int).Mul(pow10(quantityPrec), pow10(pricePrec))
	v := new(big.Int).Mul(big.NewInt(quantity.Amount), big.NewInt(price.Amount))
	v.Mul(v, num)
	v.Quo(v, den)
	if !v.IsInt64() {
		return 0, fmt.Errorf("%w: deal value overflow for %s at %s", ErrInvalidParameter, quantity, price)
	}
	return v.Int64(), nil
}

// OrderStake derives the collateral for a quantity at a price: the deal value
// scaled by stakePct over PercentBoost, denominated in the stake symbol.
func OrderStake(quantity, price Asset, quantityPrec, pricePrec, stakePrec uint8, stakePct int64, stakeSymbol string) (Asset, error) {
	if stakePct < 0 || stakePct > PercentBoost {
		return Asset{}, fmt.Errorf("%w: stake pct %d out of range", ErrInvalidParameter, stakePct)
	}
	value, err := DealValue(quantity, price, quantityPrec, pricePrec, stakePrec)
	if err != nil {
		return Asset{}, err
	}
	amount, err := mulDiv(value, big.NewInt(stakePct), big.NewInt(PercentBoost))
	if err != nil {
		return Asset{}, err
	}
	return Asset{Amount: amount, Symbol: stakeSymbol}, nil
}

// DealFee derives the platform fee for a quantity at a price. A zero feePct
// short-circuits to a zero fee. The second precision rescale after the
// percentage multiply is intentional: settled amounts depend on this exact
// rounding order.
func DealFee(quantity, price Asset, quantityPrec, pricePrec, stakePrec uint8, feePct int64, stakeSymbol string) (Asset, error) {
	if feePct < 0 || feePct > PercentBoost {
		return Asset{}, fmt.Errorf("%w: fee pct %d out of range", ErrInvalidParameter, feePct)
	}
	if feePct == 0 {
		return Asset{Amount: 0, Symbol: stakeSymbol}, nil
	}
	value, err := DealValue(quantity, price, quantityPrec, pricePrec, stakePrec)
	if err != nil {
		return Asset{}, err
	}
	amount, err := mulDiv(value, big.NewInt(feePct), big.NewInt(PercentBoost))
	if err != nil {
		return Asset{}, err
	}
	amount, err = mulDiv(amount, pow10(stakePrec), pow10(quantityPrec))
	if err != nil {
		return Asset{}, err
	}
	return Asset{Amount: amount, Symbol: stakeSymbol}, nil
}

// AddChecked guards additive bookkeeping against int64 wraparound.
func AddChecked(a, b int64) (int64, error) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, fmt.Errorf("%w: int64 overflow adding %d and %d", ErrInvalidParameter, a, b)
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, fmt.Errorf("%w: int64 underflow adding %d and %d", ErrInvalidParameter, a, b)
	}
	return a + b, nil
}
