package deal

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
)

// transitionRule gates one handshake step: it matches on the caller role,
// the deal's arbitration status and its current status, all exactly.
type transitionRule struct {
	Role  domain.Role
	Arbit domain.ArbitStatus
	From  domain.DealStatus
	Next  domain.DealStatus
}

var transitions = map[domain.DealAction]transitionRule{
	domain.ActionMakerAccept:   {domain.RoleMerchant, domain.ArbitNone, domain.DealCreated, domain.DealMakerAccepted},
	domain.ActionTakerSend:     {domain.RoleUser, domain.ArbitNone, domain.DealMakerAccepted, domain.DealTakerSent},
	domain.ActionMakerRecvSent: {domain.RoleMerchant, domain.ArbitNone, domain.DealTakerSent, domain.DealMakerRecvSent},
}

// authorize checks that the actor actually holds the claimed role on this
// deal.
func authorize(d *domain.Deal, actor string, role domain.Role, admin string) error {
	switch role {
	case domain.RoleMerchant:
		if d.Maker != actor {
			return fmt.Errorf("%w: %s is not the maker of deal %d", domain.ErrUnauthorized, actor, d.ID)
		}
	case domain.RoleUser:
		if d.Taker != actor {
			return fmt.Errorf("%w: %s is not the taker of deal %d", domain.ErrUnauthorized, actor, d.ID)
		}
	case domain.RoleArbiter:
		if d.Arbiter == "" || d.Arbiter != actor {
			return fmt.Errorf("%w: %s is not the arbiter of deal %d", domain.ErrUnauthorized, actor, d.ID)
		}
	case domain.RoleAdmin:
		if admin == "" || admin != actor {
			return fmt.Errorf("%w: %s is not the admin account", domain.ErrUnauthorized, actor)
		}
	default:
		return fmt.Errorf("%w: role %q not supported", domain.ErrInvalidParameter, role)
	}
	return nil
}

// ProcessDeal advances the payment handshake one step. Every transition is
// an exact match on (action, role, arbitration status, current status); no
// match, no transition.
func (uc *DefaultDealUsecase) ProcessDeal(ctx context.Context, actor string, role domain.Role, dealID uint64, action domain.DealAction) (updated *domain.Deal, err error) {
	defer func() { uc.Metrics.ObserveActionError("process_deal", err) }()

	start := uc.now()

	rule, ok := transitions[action]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported deal action %q", domain.ErrInvalidParameter, action)
	}

	err = uc.Store.Transaction(func(tx domain.Store) error {
		d, err := tx.Deals().GetDeal(dealID)
		if err != nil {
			return err
		}
		if err := checkNotTerminal(d); err != nil {
			return err
		}
		if err := authorize(d, actor, role, ""); err != nil {
			return err
		}
		if role != rule.Role {
			return fmt.Errorf("%w: action %s requires role %s, got %s", domain.ErrUnauthorized, action, rule.Role, role)
		}
		if d.ArbitStatus != rule.Arbit {
			return fmt.Errorf("%w: cannot %s while arbitration status is %s", domain.ErrInvalidState, action, d.ArbitStatus)
		}
		if d.Status != rule.From {
			return fmt.Errorf("%w: cannot %s at status %s", domain.ErrInvalidState, action, d.Status)
		}

		now := uc.now()
		d.Status = rule.Next
		d.UpdatedAt = now
		switch action {
		case domain.ActionMakerAccept:
			d.AcceptedAt = now
		case domain.ActionMakerRecvSent:
			d.PaidAt = now
		}
		if err := tx.Deals().UpdateDeal(d); err != nil {
			return err
		}
		updated = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The counterparty gets notified, never the actor.
	recipient := updated.Maker
	if role == domain.RoleMerchant {
		recipient = updated.Taker
	}
	uc.Publisher.PublishDeal(recipient, dealEvent(updated, action))
	uc.Metrics.DealActionDuration.WithLabelValues(string(action)).Observe(uc.now().Sub(start).Seconds())

	return updated, nil
}
