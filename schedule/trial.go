// Package schedule enumerates the trials of a run and scores responses against them.
package schedule

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/rdk/vmath"
)

var (
	// ErrAborted signals participant-requested termination; not an incorrect answer
	ErrAborted = errors.New("run aborted")
	// ErrInvalidSchedule is returned for empty level sets, bad levels or non-positive repetitions
	ErrInvalidSchedule = errors.New("invalid schedule")
	// ErrInvalidResponse is returned when scoring a response that is neither a direction nor abort
	ErrInvalidResponse = errors.New("invalid response")
)

// Direction of coherent motion
type Direction int8

const (
	Left  Direction = -1
	Right Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("direction(%d)", d)
}

// Vector returns the unit motion vector in field coordinates
func (d Direction) Vector() vmath.Vec2F {
	return vmath.Vec2F{X: float64(d)}
}

// Trial is one immutable (coherence, direction) condition
type Trial struct {
	Index     int
	Coherence float64
	Direction Direction
}

// Response is a classified participant key press
type Response uint8

const (
	ResponseNone Response = iota
	ResponseLeft
	ResponseRight
	ResponseAbort
)

func (r Response) String() string {
	switch r {
	case ResponseNone:
		return "none"
	case ResponseLeft:
		return "left"
	case ResponseRight:
		return "right"
	case ResponseAbort:
		return "abort"
	}
	return fmt.Sprintf("response(%d)", r)
}

// BuildSchedule lists levels in the given order, each repeated reps times consecutively.
// Direction is drawn uniformly and independently for every trial.
func BuildSchedule(levels []float64, reps int, rng *rand.Rand) ([]Trial, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("%w: no coherence levels", ErrInvalidSchedule)
	}
	if reps <= 0 {
		return nil, fmt.Errorf("%w: repetitions must be positive, got %d", ErrInvalidSchedule, reps)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidSchedule)
	}
	for _, c := range levels {
		if math.IsNaN(c) || c < 0 || c > 100 {
			return nil, fmt.Errorf("%w: coherence %v outside [0, 100]", ErrInvalidSchedule, c)
		}
	}

	trials := make([]Trial, 0, len(levels)*reps)
	for _, c := range levels {
		for r := 0; r < reps; r++ {
			dir := Left
			if rng.IntN(2) == 1 {
				dir = Right
			}
			trials = append(trials, Trial{
				Index:     len(trials),
				Coherence: c,
				Direction: dir,
			})
		}
	}
	return trials, nil
}

// Score compares a response with the trial's true direction.
// ResponseAbort yields ErrAborted and must not produce a record.
func Score(t Trial, r Response) (correct bool, err error) {
	switch r {
	case ResponseAbort:
		return false, ErrAborted
	case ResponseLeft:
		return t.Direction == Left, nil
	case ResponseRight:
		return t.Direction == Right, nil
	}
	return false, fmt.Errorf("%w: %s", ErrInvalidResponse, r)
}
