// Package state persists check-run history in SQLite so `satchel
// history` can show past results.
package state

import "time"

// Run statuses.
const (
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// CheckRun records one check invocation: which script ran, the verdicts
// printed, and how it ended.
type CheckRun struct {
	ID        string
	Script    string
	Verdicts  string // space-joined sat/unsat/unknown lines, in order
	Variables int
	Status    string
	Error     string
	StartedAt time.Time
	Duration  time.Duration
}

// Store is the persistence interface for run history.
type Store interface {
	Open(path string) error
	Close() error
	InitSchema() error
	RecordRun(run *CheckRun) error
	ListRuns(limit int) ([]*CheckRun, error)
}
