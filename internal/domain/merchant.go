package domain

import (
	"fmt"
	"time"
)

type MerchantStatus string

const (
	MerchantRegistered MerchantStatus = "REGISTERED"
	MerchantBasic      MerchantStatus = "BASIC"
	MerchantGold       MerchantStatus = "GOLD"
	MerchantDiamond    MerchantStatus = "DIAMOND"
	MerchantBlueshield MerchantStatus = "BLUESHIELD"
	MerchantDisabled   MerchantStatus = "DISABLED"
	MerchantRejected   MerchantStatus = "REJECTED"
)

var merchantRank = map[MerchantStatus]int{
	MerchantRegistered: 1,
	MerchantBasic:      2,
	MerchantGold:       3,
	MerchantDiamond:    4,
	MerchantBlueshield: 5,
}

// Enabled reports whether the merchant tier may open orders and move funds.
func (s MerchantStatus) Enabled() bool {
	return merchantRank[s] >= merchantRank[MerchantBasic]
}

func (s MerchantStatus) Valid() bool {
	switch s {
	case MerchantRegistered, MerchantBasic, MerchantGold, MerchantDiamond,
		MerchantBlueshield, MerchantDisabled, MerchantRejected:
		return true
	}
	return false
}

// Balance is one per-symbol ledger cell. Available and Frozen never go
// negative; freeze/unfreeze move value between the two without changing the
// total.
type Balance struct {
	Available int64 `json:"available"`
	Frozen    int64 `json:"frozen"`
}

type Merchant struct {
	Account   string
	Name      string
	Detail    string
	Email     string
	Memo      string
	Status    MerchantStatus
	Balances  map[string]Balance
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m *Merchant) BalanceOf(symbol string) Balance {
	if m.Balances == nil {
		return Balance{}
	}
	return m.Balances[symbol]
}

func (m *Merchant) setBalance(symbol string, b Balance) {
	if m.Balances == nil {
		m.Balances = make(map[string]Balance)
	}
	m.Balances[symbol] = b
}

// Credit increases the available balance.
func (m *Merchant) Credit(quantity Asset) error {
	if quantity.Amount <= 0 {
		return fmt.Errorf("%w: credit amount must be positive, got %s", ErrInvalidParameter, quantity)
	}
	b := m.BalanceOf(quantity.Symbol)
	available, err := AddChecked(b.Available, quantity.Amount)
	if err != nil {
		return err
	}
	b.Available = available
	m.setBalance(quantity.Symbol, b)
	return nil
}

// Debit decreases the available balance and fails without mutation when it
// would go negative.
func (m *Merchant) Debit(quantity Asset) error {
	if quantity.Amount <= 0 {
		return fmt.Errorf("%w: debit amount must be positive, got %s", ErrInvalidParameter, quantity)
	}
	b := m.BalanceOf(quantity.Symbol)
	if b.Available < quantity.Amount {
		return fmt.Errorf("%w: merchant %s has %d %s available, needs %d",
			ErrInsufficientFunds, m.Account, b.Available, quantity.Symbol, quantity.Amount)
	}
	b.Available -= quantity.Amount
	m.setBalance(quantity.Symbol, b)
	return nil
}

// Freeze moves value from available to frozen.
func (m *Merchant) Freeze(quantity Asset) error {
	if quantity.Amount <= 0 {
		return fmt.Errorf("%w: freeze amount must be positive, got %s", ErrInvalidParameter, quantity)
	}
	b := m.BalanceOf(quantity.Symbol)
	if b.Available < quantity.Amount {
		return fmt.Errorf("%w: merchant %s has %d %s available, needs %d to freeze",
			ErrInsufficientFunds, m.Account, b.Available, quantity.Symbol, quantity.Amount)
	}
	frozen, err := AddChecked(b.Frozen, quantity.Amount)
	if err != nil {
		return err
	}
	b.Available -= quantity.Amount
	b.Frozen = frozen
	m.setBalance(quantity.Symbol, b)
	return nil
}

// Unfreeze moves value from frozen back to available.
func (m *Merchant) Unfreeze(quantity Asset) error {
	if quantity.Amount <= 0 {
		return fmt.Errorf("%w: unfreeze amount must be positive, got %s", ErrInvalidParameter, quantity)
	}
	b := m.BalanceOf(quantity.Symbol)
	if b.Frozen < quantity.Amount {
		return fmt.Errorf("%w: merchant %s has %d %s frozen, needs %d to unfreeze",
			ErrInsufficientFunds, m.Account, b.Frozen, quantity.Symbol, quantity.Amount)
	}
	available, err := AddChecked(b.Available, quantity.Amount)
	if err != nil {
		return err
	}
	b.Frozen -= quantity.Amount
	b.Available = available
	m.setBalance(quantity.Symbol, b)
	return nil
}

type MerchantRepository interface {
	CreateMerchant(merchant *Merchant) error
	GetMerchant(account string) (*Merchant, error)
	UpdateMerchant(merchant *Merchant) error
	DeleteMerchant(account string) error
}
