package domain

import "time"

// Arbiter is a registered dispute resolver. Seq is a monotonic registration
// ordinal: assignment walks the pool ordered by Seq, so the mapping from deal
// id to arbiter is deterministic for a fixed pool.
type Arbiter struct {
	Account       string
	Email         string
	Seq           uint64
	ClosedCaseNum uint64
	FailedCaseNum uint64
	TotalQuantity int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ArbiterRepository interface {
	CreateArbiter(arbiter *Arbiter) error
	GetArbiter(account string) (*Arbiter, error)
	UpdateArbiter(arbiter *Arbiter) error
	DeleteArbiter(account string) error
	// ListArbiters returns the full pool ordered by registration Seq.
	ListArbiters() ([]*Arbiter, error)
}
