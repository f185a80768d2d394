package schedule

import "math/rand/v2"

// Scheduler hands out trials one at a time
type Scheduler struct {
	trials []Trial
	next   int
}

// NewScheduler builds the run's schedule up front
func NewScheduler(levels []float64, reps int, rng *rand.Rand) (*Scheduler, error) {
	trials, err := BuildSchedule(levels, reps, rng)
	if err != nil {
		return nil, err
	}
	return &Scheduler{trials: trials}, nil
}

// Next returns the next trial, false once the schedule is exhausted
func (s *Scheduler) Next() (Trial, bool) {
	if s.next >= len(s.trials) {
		return Trial{}, false
	}
	t := s.trials[s.next]
	s.next++
	return t, true
}

// Len returns the total number of scheduled trials
func (s *Scheduler) Len() int { return len(s.trials) }

// Remaining returns how many trials Next has not yet returned
func (s *Scheduler) Remaining() int { return len(s.trials) - s.next }

// Trials returns a copy of the full schedule
func (s *Scheduler) Trials() []Trial {
	return append([]Trial(nil), s.trials...)
}
