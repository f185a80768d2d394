// Package results persists completed and aborted runs.
package results

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/rdk/schedule"
)

// ErrNotFound is returned when a stored run does not exist
var ErrNotFound = errors.New("run not found")

// Run is one participant session and the records it produced, in trial order
type Run struct {
	ID         uuid.UUID
	StartedAt  time.Time
	FinishedAt time.Time
	Aborted    bool
	Seed       uint64

	// Config is the TOML rendering of the configuration the run used
	Config string

	Records []schedule.Record
}

// NewRun starts a run with a fresh identifier
func NewRun(seed uint64, started time.Time) *Run {
	return &Run{
		ID:        uuid.New(),
		StartedAt: started,
		Seed:      seed,
	}
}

// Summary aggregates the run's records
func (r *Run) Summary() schedule.Summary {
	return schedule.Summarize(r.Records)
}

// Sink stores a run. Save is called once, after the run ends either way.
type Sink interface {
	Save(ctx context.Context, run *Run) error
}

// Multi saves to every sink and joins their errors; one failing sink does not stop the others
type Multi []Sink

func (m Multi) Save(ctx context.Context, run *Run) error {
	var errs []error
	for _, s := range m {
		if err := s.Save(ctx, run); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
