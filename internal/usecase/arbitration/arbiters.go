package arbitration

import (
	"context"
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
)

const maxEmailSize = 64

func (uc *DefaultArbitrationUsecase) requireAdmin(actor string) error {
	cfg, err := uc.Config.TradingConfig()
	if err != nil {
		return err
	}
	if cfg.AdminAccount == "" || cfg.AdminAccount != actor {
		return fmt.Errorf("%w: %s is not the admin account", domain.ErrUnauthorized, actor)
	}
	return nil
}

// AddArbiter registers a dispute resolver. The registration sequence fixes
// the arbiter's ordinal in the assignment pool.
func (uc *DefaultArbitrationUsecase) AddArbiter(ctx context.Context, actor, account, email string) (*domain.Arbiter, error) {
	if err := uc.requireAdmin(actor); err != nil {
		return nil, err
	}
	if account == "" {
		return nil, fmt.Errorf("%w: arbiter account required", domain.ErrInvalidParameter)
	}
	if len(email) >= maxEmailSize {
		return nil, fmt.Errorf("%w: email too long", domain.ErrInvalidParameter)
	}

	now := uc.now()
	var created *domain.Arbiter
	err := uc.Store.Transaction(func(tx domain.Store) error {
		if _, err := tx.Arbiters().GetArbiter(account); err == nil {
			return fmt.Errorf("%w: arbiter %s already registered", domain.ErrConflict, account)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		seq, err := tx.Sequences().NextSequence(domain.SeqArbiterSeq)
		if err != nil {
			return err
		}
		created = &domain.Arbiter{
			Account:   account,
			Email:     email,
			Seq:       seq,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.Arbiters().CreateArbiter(created)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// RemoveArbiter drops an arbiter from the pool. Deals already assigned to it
// keep their arbiter; only future assignments are affected.
func (uc *DefaultArbitrationUsecase) RemoveArbiter(ctx context.Context, actor, account string) error {
	if err := uc.requireAdmin(actor); err != nil {
		return err
	}
	return uc.Store.Transaction(func(tx domain.Store) error {
		if _, err := tx.Arbiters().GetArbiter(account); err != nil {
			return err
		}
		return tx.Arbiters().DeleteArbiter(account)
	})
}

// SetDealArbiter reassigns a dispute to a specific registered arbiter,
// bypassing the modulo pick.
func (uc *DefaultArbitrationUsecase) SetDealArbiter(ctx context.Context, actor string, dealID uint64, arbiter string) error {
	if err := uc.requireAdmin(actor); err != nil {
		return err
	}
	return uc.Store.Transaction(func(tx domain.Store) error {
		d, err := tx.Deals().GetDeal(dealID)
		if err != nil {
			return err
		}
		if d.ArbitStatus != domain.ArbitInProgress {
			return fmt.Errorf("%w: deal %d is not arbitrating", domain.ErrInvalidState, d.ID)
		}
		if _, err := tx.Arbiters().GetArbiter(arbiter); err != nil {
			return err
		}
		d.Arbiter = arbiter
		d.UpdatedAt = uc.now()
		return tx.Deals().UpdateDeal(d)
	})
}
