package arbitration

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
)

// StartArbitration opens a dispute on a mid-handshake deal. The arbiter is
// picked deterministically: deal id modulo pool size over the pool ordered by
// registration sequence, so the same deal always lands on the same arbiter
// for a fixed pool.
func (uc *DefaultArbitrationUsecase) StartArbitration(ctx context.Context, actor string, role domain.Role, dealID uint64) (*domain.Deal, error) {
	if role != domain.RoleMerchant && role != domain.RoleUser {
		return nil, fmt.Errorf("%w: only maker or taker may start arbitration", domain.ErrUnauthorized)
	}

	var updated *domain.Deal
	err := uc.Store.Transaction(func(tx domain.Store) error {
		d, err := tx.Deals().GetDeal(dealID)
		if err != nil {
			return err
		}
		switch role {
		case domain.RoleMerchant:
			if d.Maker != actor {
				return fmt.Errorf("%w: %s is not the maker of deal %d", domain.ErrUnauthorized, actor, d.ID)
			}
		case domain.RoleUser:
			if d.Taker != actor {
				return fmt.Errorf("%w: %s is not the taker of deal %d", domain.ErrUnauthorized, actor, d.ID)
			}
		}
		if d.ArbitStatus != domain.ArbitNone {
			return fmt.Errorf("%w: arbitration already started for deal %d", domain.ErrInvalidState, d.ID)
		}
		switch d.Status {
		case domain.DealMakerAccepted, domain.DealTakerSent, domain.DealMakerRecvSent:
		default:
			return fmt.Errorf("%w: deal %d at status %s cannot be arbitrated", domain.ErrInvalidState, d.ID, d.Status)
		}

		pool, err := tx.Arbiters().ListArbiters()
		if err != nil {
			return err
		}
		if len(pool) == 0 {
			return fmt.Errorf("%w: no arbiters registered", domain.ErrInvalidState)
		}
		arbiter := pool[d.ID%uint64(len(pool))]

		d.ArbitStatus = domain.ArbitInProgress
		d.Arbiter = arbiter.Account
		d.UpdatedAt = uc.now()
		if err := tx.Deals().UpdateDeal(d); err != nil {
			return err
		}
		updated = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.Metrics.ArbitrationsStartedTotal.WithLabelValues(string(role)).Inc()
	return updated, nil
}
