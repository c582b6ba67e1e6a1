package merchant

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
)

// Deposit moves stake-asset value from the merchant's external account into
// custody and credits the ledger.
func (uc *DefaultMerchantUsecase) Deposit(ctx context.Context, account string, quantity domain.Asset) error {
	cfg, err := uc.Config.TradingConfig()
	if err != nil {
		return err
	}
	if !cfg.Running() {
		return fmt.Errorf("%w: service under maintenance", domain.ErrInvalidState)
	}
	if quantity.Amount <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidParameter)
	}
	sa, err := cfg.StakeAssetFor(quantity.Symbol)
	if err != nil {
		return err
	}

	now := uc.now()
	err = uc.Store.Transaction(func(tx domain.Store) error {
		m, err := tx.Merchants().GetMerchant(account)
		if err != nil {
			return err
		}
		if !m.Status.Enabled() {
			return fmt.Errorf("%w: merchant %s is not enabled", domain.ErrUnauthorized, account)
		}
		if err := uc.Transfer.Transfer(ctx, account, sa.CustodyAccount, quantity, "merchant deposit"); err != nil {
			return fmt.Errorf("deposit transfer for %s: %w", account, err)
		}
		if err := m.Credit(quantity); err != nil {
			return err
		}
		m.UpdatedAt = now
		return tx.Merchants().UpdateMerchant(m)
	})
	if err != nil {
		return err
	}

	uc.Publisher.PublishStake(domain.StakeEvent{
		Account: account,
		Amount:  quantity.Amount,
		Symbol:  quantity.Symbol,
		Memo:    "merchant deposit",
	})
	return nil
}

func withdrawLimit(status domain.MerchantStatus) time.Duration {
	switch status {
	case domain.MerchantGold:
		return GoldWithdrawLimit
	case domain.MerchantDiamond:
		return DiamondWithdrawLimit
	case domain.MerchantBlueshield:
		return BlueshieldWithdrawLimit
	default:
		return GeneralWithdrawLimit
	}
}

// Withdraw pays available balance back out of custody. A tier-dependent
// cool-down counted from the last balance change must have elapsed, so a
// merchant cannot stake, trade and drain within the same window.
func (uc *DefaultMerchantUsecase) Withdraw(ctx context.Context, account string, quantity domain.Asset) error {
	cfg, err := uc.Config.TradingConfig()
	if err != nil {
		return err
	}
	if !cfg.Running() {
		return fmt.Errorf("%w: service under maintenance", domain.ErrInvalidState)
	}
	if quantity.Amount <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidParameter)
	}
	sa, err := cfg.StakeAssetFor(quantity.Symbol)
	if err != nil {
		return err
	}

	now := uc.now()
	err = uc.Store.Transaction(func(tx domain.Store) error {
		m, err := tx.Merchants().GetMerchant(account)
		if err != nil {
			return err
		}
		// Disabled merchants may still pull their funds out.
		if !m.Status.Enabled() && m.Status != domain.MerchantDisabled {
			return fmt.Errorf("%w: merchant %s is not enabled", domain.ErrUnauthorized, account)
		}
		limit := withdrawLimit(m.Status)
		if now.Sub(m.UpdatedAt) <= limit {
			return fmt.Errorf("%w: can only withdraw %s after last fund change", domain.ErrNotYetExpired, limit)
		}
		if err := m.Debit(quantity); err != nil {
			return err
		}
		if err := uc.Transfer.Transfer(ctx, sa.CustodyAccount, account, quantity, "merchant withdraw"); err != nil {
			return fmt.Errorf("withdraw transfer for %s: %w", account, err)
		}
		m.UpdatedAt = now
		return tx.Merchants().UpdateMerchant(m)
	})
	if err != nil {
		return err
	}

	uc.Publisher.PublishStake(domain.StakeEvent{
		Account: account,
		Amount:  -quantity.Amount,
		Symbol:  quantity.Symbol,
		Memo:    "merchant withdraw",
	})
	return nil
}
