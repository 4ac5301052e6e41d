package run

import "time"

// Status is the outcome of a demo run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Record is the persisted summary of one demo run.
type Record struct {
	ID             int64
	RunID          string
	Status         Status
	UserDetails    string
	ItemCount      int
	FactorialInput int64
	Factorial      string // decimal; may exceed any fixed-width integer
	Error          string
	StartedAt      time.Time
	FinishedAt     time.Time
}

// Duration is the wall time the run took.
func (r *Record) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
