package repository

import (
	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"gorm.io/gorm"
)

// SQLStore aggregates the gorm-backed repositories behind domain.Store.
// Transaction rebinds every repository to one database transaction, so a
// failing composite action rolls back all of its writes.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Merchants() domain.MerchantRepository {
	return NewDefaultMerchantRepository(s.db)
}

func (s *SQLStore) Orders() domain.OrderRepository {
	return NewDefaultOrderRepository(s.db)
}

func (s *SQLStore) Deals() domain.DealRepository {
	return NewDefaultDealRepository(s.db)
}

func (s *SQLStore) Arbiters() domain.ArbiterRepository {
	return NewDefaultArbiterRepository(s.db)
}

func (s *SQLStore) Blacklist() domain.BlacklistRepository {
	return NewDefaultBlacklistRepository(s.db)
}

func (s *SQLStore) Sequences() domain.SequenceRepository {
	return NewDefaultSequenceRepository(s.db)
}

func (s *SQLStore) Transaction(fn func(domain.Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&SQLStore{db: tx})
	})
}
