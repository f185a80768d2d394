package experiment

import (
	"context"
	"time"

	"github.com/lixenwraith/rdk/input"
	"github.com/lixenwraith/rdk/vmath"
)

// Presenter shows stimulus frames and text screens
type Presenter interface {
	Frame(dots []vmath.Vec2F)
	Message(lines ...string)
	Clear()
}

// Responder delivers classified key presses
type Responder interface {
	// Poll drains pending input without blocking and reports whether abort was requested
	Poll() input.Action
	// Await blocks until one of wanted or abort is pressed
	Await(ctx context.Context, wanted ...input.Action) (input.Action, error)
}

// FrameClock paces stimulus frames
type FrameClock interface {
	// Start aligns the clock with the first frame of a stimulus
	Start()
	Tick(ctx context.Context) error
}

// Feedback signals the outcome of a scored trial
type Feedback interface {
	Correct()
	Incorrect()
}

// TickerClock paces frames with a time.Ticker
type TickerClock struct {
	ticker   *time.Ticker
	interval time.Duration
}

// NewTickerClock ticks every interval until Stop
func NewTickerClock(interval time.Duration) *TickerClock {
	return &TickerClock{ticker: time.NewTicker(interval), interval: interval}
}

// Start restarts the ticker phase and drops a tick buffered while the clock sat idle,
// so the first Tick after Start waits a full interval
func (c *TickerClock) Start() {
	c.ticker.Reset(c.interval)
	select {
	case <-c.ticker.C:
	default:
	}
}

// Tick waits for the next frame boundary
func (c *TickerClock) Tick(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ticker.C:
		return nil
	}
}

// Stop releases the ticker
func (c *TickerClock) Stop() {
	c.ticker.Stop()
}

type silentFeedback struct{}

func (silentFeedback) Correct()   {}
func (silentFeedback) Incorrect() {}
