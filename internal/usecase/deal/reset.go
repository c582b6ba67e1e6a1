package deal

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
)

// ResetDeal is the operational escape hatch: admin rewinds a stuck deal back
// to CREATED so the handshake can be replayed. Closed deals stay closed, and
// a deal still at CREATED has nothing to rewind.
func (uc *DefaultDealUsecase) ResetDeal(ctx context.Context, actor string, dealID uint64) (err error) {
	defer func() { uc.Metrics.ObserveActionError("reset_deal", err) }()

	cfg, err := uc.Config.TradingConfig()
	if err != nil {
		return err
	}
	if cfg.AdminAccount == "" || cfg.AdminAccount != actor {
		return fmt.Errorf("%w: %s is not the admin account", domain.ErrUnauthorized, actor)
	}

	return uc.Store.Transaction(func(tx domain.Store) error {
		d, err := tx.Deals().GetDeal(dealID)
		if err != nil {
			return err
		}
		if d.Status == domain.DealClosed {
			return fmt.Errorf("%w: deal %d already closed", domain.ErrInvalidState, d.ID)
		}
		if d.Status == domain.DealCreated {
			return fmt.Errorf("%w: deal %d has nothing to rewind", domain.ErrInvalidState, d.ID)
		}
		d.Status = domain.DealCreated
		d.UpdatedAt = uc.now()
		return tx.Deals().UpdateDeal(d)
	})
}
