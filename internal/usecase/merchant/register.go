package merchant

import (
	"context"
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
)

const (
	maxNameSize   = 32
	maxEmailSize  = 64
	maxDetailSize = 255
	maxMemoSize   = 255
)

func validateInfo(info *MerchantInfo) error {
	if info.Account == "" {
		return fmt.Errorf("%w: merchant account required", domain.ErrInvalidParameter)
	}
	if len(info.Name) >= maxNameSize {
		return fmt.Errorf("%w: merchant name size too large: %d", domain.ErrInvalidParameter, len(info.Name))
	}
	if len(info.Email) >= maxEmailSize {
		return fmt.Errorf("%w: email size too large: %d", domain.ErrInvalidParameter, len(info.Email))
	}
	if len(info.Detail) >= maxDetailSize {
		return fmt.Errorf("%w: merchant detail size too large: %d", domain.ErrInvalidParameter, len(info.Detail))
	}
	if len(info.Memo) >= maxMemoSize {
		return fmt.Errorf("%w: memo size too large: %d", domain.ErrInvalidParameter, len(info.Memo))
	}
	if len(info.RejectReason) >= maxDetailSize {
		return fmt.Errorf("%w: reject reason size too large: %d", domain.ErrInvalidParameter, len(info.RejectReason))
	}
	return nil
}

// RegisterMerchant files an application: a fresh record lands in REGISTERED
// and waits for an admin decision. The applicant may stake an initial
// deposit with the application; it moves into custody and is credited in
// the same transaction. A previously rejected merchant may re-apply, which
// resets the record back to REGISTERED.
func (uc *DefaultMerchantUsecase) RegisterMerchant(ctx context.Context, info *MerchantInfo) (*domain.Merchant, error) {
	if err := validateInfo(info); err != nil {
		return nil, err
	}
	deposit := info.InitialDeposit
	if deposit.Amount < 0 {
		return nil, fmt.Errorf("%w: initial deposit must not be negative", domain.ErrInvalidParameter)
	}
	var custody string
	if deposit.Amount > 0 {
		cfg, err := uc.Config.TradingConfig()
		if err != nil {
			return nil, err
		}
		sa, err := cfg.StakeAssetFor(deposit.Symbol)
		if err != nil {
			return nil, err
		}
		custody = sa.CustodyAccount
	}

	now := uc.now()
	var registered *domain.Merchant
	err := uc.Store.Transaction(func(tx domain.Store) error {
		existing, err := tx.Merchants().GetMerchant(info.Account)
		switch {
		case err == nil:
			if existing.Status != domain.MerchantRejected {
				return fmt.Errorf("%w: merchant %s already registered", domain.ErrConflict, info.Account)
			}
			existing.Status = domain.MerchantRegistered
			applyInfo(existing, info)
			existing.UpdatedAt = now
			registered = existing
		case errors.Is(err, domain.ErrNotFound):
			registered = &domain.Merchant{
				Account:   info.Account,
				Name:      info.Name,
				Detail:    info.Detail,
				Email:     info.Email,
				Memo:      info.Memo,
				Status:    domain.MerchantRegistered,
				Balances:  make(map[string]domain.Balance),
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.Merchants().CreateMerchant(registered); err != nil {
				return err
			}
		default:
			return err
		}
		if deposit.Amount > 0 {
			if err := uc.Transfer.Transfer(ctx, info.Account, custody, deposit, "merchant apply deposit"); err != nil {
				return fmt.Errorf("apply deposit transfer for %s: %w", info.Account, err)
			}
			if err := registered.Credit(deposit); err != nil {
				return err
			}
		}
		return tx.Merchants().UpdateMerchant(registered)
	})
	if err != nil {
		return nil, err
	}

	if deposit.Amount > 0 {
		uc.Publisher.PublishStake(domain.StakeEvent{
			Account: info.Account,
			Amount:  deposit.Amount,
			Symbol:  deposit.Symbol,
			Memo:    "merchant apply deposit",
		})
	}
	return registered, nil
}

func applyInfo(m *domain.Merchant, info *MerchantInfo) {
	if info.Name != "" {
		m.Name = info.Name
	}
	if info.Detail != "" {
		m.Detail = info.Detail
	}
	if info.Email != "" {
		m.Email = info.Email
	}
	if info.Memo != "" {
		m.Memo = info.Memo
	}
}

// SetMerchant is the admin decision path: tier changes, enable/disable,
// rejection. A rejection with a reason notifies the merchant.
func (uc *DefaultMerchantUsecase) SetMerchant(ctx context.Context, actor string, info *MerchantInfo) error {
	cfg, err := uc.Config.TradingConfig()
	if err != nil {
		return err
	}
	if cfg.AdminAccount == "" || cfg.AdminAccount != actor {
		return fmt.Errorf("%w: %s is not the admin account", domain.ErrUnauthorized, actor)
	}
	if err := validateInfo(info); err != nil {
		return err
	}
	if !info.Status.Valid() {
		return fmt.Errorf("%w: merchant status %q", domain.ErrInvalidParameter, info.Status)
	}

	now := uc.now()
	err = uc.Store.Transaction(func(tx domain.Store) error {
		m, err := tx.Merchants().GetMerchant(info.Account)
		if err != nil {
			return err
		}
		m.Status = info.Status
		applyInfo(m, info)
		m.UpdatedAt = now
		return tx.Merchants().UpdateMerchant(m)
	})
	if err != nil {
		return err
	}

	if info.Status == domain.MerchantRejected && info.RejectReason != "" {
		uc.Publisher.PublishMerchant(domain.MerchantEvent{
			Account: info.Account,
			Status:  domain.MerchantRejected,
			Reason:  info.RejectReason,
		})
	}
	return nil
}

// RemoveMerchant hard-deletes the record. Admin only.
func (uc *DefaultMerchantUsecase) RemoveMerchant(ctx context.Context, actor, account string) error {
	cfg, err := uc.Config.TradingConfig()
	if err != nil {
		return err
	}
	if cfg.AdminAccount == "" || cfg.AdminAccount != actor {
		return fmt.Errorf("%w: %s is not the admin account", domain.ErrUnauthorized, actor)
	}
	return uc.Store.Transaction(func(tx domain.Store) error {
		if _, err := tx.Merchants().GetMerchant(account); err != nil {
			return err
		}
		return tx.Merchants().DeleteMerchant(account)
	})
}
