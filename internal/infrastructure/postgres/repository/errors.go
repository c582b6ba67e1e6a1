package repository

import (
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"gorm.io/gorm"
)

// translate maps gorm errors onto the domain sentinels the usecases branch
// on.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s", domain.ErrConflict, what)
	default:
		return err
	}
}
