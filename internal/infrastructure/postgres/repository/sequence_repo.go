package repository

import (
	"gorm.io/gorm"
)

type DefaultSequenceRepository struct {
	DB *gorm.DB
}

func NewDefaultSequenceRepository(db *gorm.DB) *DefaultSequenceRepository {
	return &DefaultSequenceRepository{DB: db}
}

// NextSequence bumps the named counter atomically. The upsert inserts the
// row on first use and the RETURNING clause hands back the post-increment
// value, so concurrent transactions never observe the same id.
func (r *DefaultSequenceRepository) NextSequence(name string) (uint64, error) {
	var value uint64
	err := r.DB.Raw(`
		INSERT INTO sequences (name, value) VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
		RETURNING value`, name).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}
