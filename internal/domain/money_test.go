package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testTime() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func TestDealValueConvertsPrecisions(t *testing.T) {
	// 1.0000 BTC at 70000.0000 CNY, value in 4-digit stake units.
	value, err := DealValue(
		NewAsset(10000, "BTC"), NewAsset(700000000, "CNY"),
		4, 4, 4,
	)
	require.NoError(t, err)
	require.Equal(t, int64(700000000), value)

	// An 8-digit coin against a 4-digit stake asset scales down.
	value, err = DealValue(
		NewAsset(100000000, "BTC"), NewAsset(700000000, "CNY"),
		8, 4, 4,
	)
	require.NoError(t, err)
	require.Equal(t, int64(700000000), value)
}

func TestDealValueRejectsBadPrecision(t *testing.T) {
	_, err := DealValue(NewAsset(1, "BTC"), NewAsset(1, "CNY"), 19, 4, 4)
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestOrderStake(t *testing.T) {
	// 2% of a 70000.0000 USDT deal value.
	stake, err := OrderStake(
		NewAsset(10000, "BTC"), NewAsset(700000000, "CNY"),
		4, 4, 4, 200, "USDT",
	)
	require.NoError(t, err)
	require.Equal(t, NewAsset(14000000, "USDT"), stake)
}

func TestOrderStakePctOutOfRange(t *testing.T) {
	_, err := OrderStake(NewAsset(1, "BTC"), NewAsset(1, "CNY"), 4, 4, 4, PercentBoost+1, "USDT")
	require.ErrorIs(t, err, ErrInvalidParameter)

	_, err = OrderStake(NewAsset(1, "BTC"), NewAsset(1, "CNY"), 4, 4, 4, -1, "USDT")
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestDealFee(t *testing.T) {
	// 0.5% of a 70000.0000 USDT deal value; equal precisions keep the
	// trailing rescale a no-op.
	fee, err := DealFee(
		NewAsset(10000, "BTC"), NewAsset(700000000, "CNY"),
		4, 4, 4, 50, "USDT",
	)
	require.NoError(t, err)
	require.Equal(t, NewAsset(3500000, "USDT"), fee)
}

func TestDealFeeZeroPct(t *testing.T) {
	fee, err := DealFee(NewAsset(10000, "BTC"), NewAsset(700000000, "CNY"), 4, 4, 4, 0, "USDT")
	require.NoError(t, err)
	require.True(t, fee.IsZero())
	require.Equal(t, "USDT", fee.Symbol)
}

func TestDealFeeRescaleFloors(t *testing.T) {
	// With an 8-digit coin the rescale divides by 10^4 after the percentage
	// cut, flooring tiny fees to zero.
	fee, err := DealFee(
		NewAsset(100000000, "BTC"), NewAsset(20000, "CNY"),
		8, 4, 4, 100, "USDT",
	)
	require.NoError(t, err)
	require.Equal(t, int64(0), fee.Amount)
}

func TestOrderStakeOverflow(t *testing.T) {
	_, err := OrderStake(
		NewAsset(math.MaxInt64, "BTC"), NewAsset(math.MaxInt64, "CNY"),
		0, 0, 18, 200, "USDT",
	)
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestAddChecked(t *testing.T) {
	sum, err := AddChecked(40, 2)
	require.NoError(t, err)
	require.Equal(t, int64(42), sum)

	_, err = AddChecked(math.MaxInt64, 1)
	require.ErrorIs(t, err, ErrInvalidParameter)

	_, err = AddChecked(math.MinInt64, -1)
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestMerchantLedger(t *testing.T) {
	m := &Merchant{Account: "alice", Status: MerchantBasic}

	require.NoError(t, m.Credit(NewAsset(1000, "USDT")))
	require.NoError(t, m.Freeze(NewAsset(400, "USDT")))
	require.Equal(t, Balance{Available: 600, Frozen: 400}, m.BalanceOf("USDT"))

	err := m.Freeze(NewAsset(700, "USDT"))
	require.ErrorIs(t, err, ErrInsufficientFunds)

	require.NoError(t, m.Unfreeze(NewAsset(400, "USDT")))
	require.NoError(t, m.Debit(NewAsset(1000, "USDT")))
	require.Equal(t, Balance{}, m.BalanceOf("USDT"))

	err = m.Debit(NewAsset(1, "USDT"))
	require.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestBlacklistEntryActive(t *testing.T) {
	var e *BlacklistEntry
	require.False(t, e.Active(testTime()))

	e = &BlacklistEntry{Account: "bob", ExpiredAt: testTime().Add(1)}
	require.True(t, e.Active(testTime()))
	require.False(t, e.Active(e.ExpiredAt))
}
