package models

// SequenceModel backs the monotonic id counters. Rows are created lazily on
// first increment.
type SequenceModel struct {
	Name  string `gorm:"primaryKey;size:32"`
	Value uint64
}

func (SequenceModel) TableName() string {
	return "sequences"
}
