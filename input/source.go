package input

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
)

// ErrClosed is returned once the event stream ends, typically after the screen is finalized
var ErrClosed = errors.New("input closed")

// EventPoller is the part of tcell.Screen the pump needs
type EventPoller interface {
	PollEvent() tcell.Event
}

// Pump forwards screen events into a buffered channel until PollEvent returns nil
// PollEvent blocks, so it runs on its own goroutine; the channel is closed on exit
func Pump(p EventPoller, buffer int) <-chan tcell.Event {
	events := make(chan tcell.Event, buffer)
	go func() {
		defer close(events)
		for {
			ev := p.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()
	return events
}

// Source turns raw events into task actions
type Source struct {
	events   <-chan tcell.Event
	keys     *KeyMap
	onResize func()
}

// NewSource reads from events; onResize may be nil
func NewSource(events <-chan tcell.Event, keys *KeyMap, onResize func()) *Source {
	return &Source{events: events, keys: keys, onResize: onResize}
}

// classify handles non-key events and returns the action of key events
func (s *Source) classify(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return s.keys.Classify(ev)
	case *tcell.EventResize:
		if s.onResize != nil {
			s.onResize()
		}
	}
	return ActionNone
}

// Poll drains pending events without blocking and reports ActionAbort if any of them aborts
// Other keys pressed while the stimulus is showing are discarded
func (s *Source) Poll() Action {
	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				return ActionAbort
			}
			if s.classify(ev) == ActionAbort {
				return ActionAbort
			}
		default:
			return ActionNone
		}
	}
}

// Await blocks until a key mapped to one of wanted is pressed.
// Abort always ends the wait and is returned as ActionAbort with a nil error.
func (s *Source) Await(ctx context.Context, wanted ...Action) (Action, error) {
	for {
		select {
		case <-ctx.Done():
			return ActionNone, ctx.Err()
		case ev, ok := <-s.events:
			if !ok {
				return ActionNone, ErrClosed
			}
			a := s.classify(ev)
			if a == ActionAbort {
				return ActionAbort, nil
			}
			for _, w := range wanted {
				if a == w {
					return a, nil
				}
			}
		}
	}
}
