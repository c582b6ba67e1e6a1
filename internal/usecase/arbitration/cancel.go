package arbitration

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
)

// CancelArbitration lets the maker withdraw a dispute before any payment
// happened: only while arbitrating and only at MAKER_ACCEPTED. The deal
// status itself is untouched, the handshake just resumes.
func (uc *DefaultArbitrationUsecase) CancelArbitration(ctx context.Context, actor string, role domain.Role, dealID uint64) error {
	if role != domain.RoleMerchant {
		return fmt.Errorf("%w: only the maker may cancel arbitration", domain.ErrUnauthorized)
	}

	return uc.Store.Transaction(func(tx domain.Store) error {
		d, err := tx.Deals().GetDeal(dealID)
		if err != nil {
			return err
		}
		if d.Maker != actor {
			return fmt.Errorf("%w: %s is not the maker of deal %d", domain.ErrUnauthorized, actor, d.ID)
		}
		if d.ArbitStatus != domain.ArbitInProgress {
			return fmt.Errorf("%w: deal %d is not arbitrating", domain.ErrInvalidState, d.ID)
		}
		if d.Status != domain.DealMakerAccepted {
			return fmt.Errorf("%w: arbitration can only be cancelled at %s, deal %d is %s",
				domain.ErrInvalidState, domain.DealMakerAccepted, d.ID, d.Status)
		}

		d.ArbitStatus = domain.ArbitNone
		d.UpdatedAt = uc.now()
		return tx.Deals().UpdateDeal(d)
	})
}
