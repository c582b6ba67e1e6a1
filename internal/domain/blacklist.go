package domain

import "time"

const (
	// DefaultBlacklistDuration is applied when a maker blacklists a taker
	// while cancelling a stalled deal.
	DefaultBlacklistDuration = 72 * time.Hour
	// MaxBlacklistDuration caps admin-issued bans.
	MaxBlacklistDuration = 365 * 24 * time.Hour
)

type BlacklistEntry struct {
	Account   string
	ExpiredAt time.Time
	CreatedAt time.Time
}

func (e *BlacklistEntry) Active(now time.Time) bool {
	return e != nil && e.ExpiredAt.After(now)
}

type BlacklistRepository interface {
	SetBlacklistEntry(entry *BlacklistEntry) error
	// GetBlacklistEntry returns ErrNotFound for accounts never banned.
	GetBlacklistEntry(account string) (*BlacklistEntry, error)
	DeleteBlacklistEntry(account string) error
}
