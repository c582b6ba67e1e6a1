package merchant

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
)

// SetBlacklist bans an account from taking deals for the given duration.
// Zero duration lifts an existing ban. Admin only.
func (uc *DefaultMerchantUsecase) SetBlacklist(ctx context.Context, actor, account string, duration time.Duration) error {
	cfg, err := uc.Config.TradingConfig()
	if err != nil {
		return err
	}
	if cfg.AdminAccount == "" || cfg.AdminAccount != actor {
		return fmt.Errorf("%w: %s is not the admin account", domain.ErrUnauthorized, actor)
	}
	if account == "" {
		return fmt.Errorf("%w: account required", domain.ErrInvalidParameter)
	}
	if duration < 0 || duration > domain.MaxBlacklistDuration {
		return fmt.Errorf("%w: duration out of range [0, %s]", domain.ErrInvalidParameter, domain.MaxBlacklistDuration)
	}

	now := uc.now()
	return uc.Store.Transaction(func(tx domain.Store) error {
		if duration == 0 {
			return tx.Blacklist().DeleteBlacklistEntry(account)
		}
		return tx.Blacklist().SetBlacklistEntry(&domain.BlacklistEntry{
			Account:   account,
			ExpiredAt: now.Add(duration),
			CreatedAt: now,
		})
	})
}
