package input

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/rdk/schedule"
)

func keyEvent(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeEvent(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func defaultKeyMap(t *testing.T) *KeyMap {
	t.Helper()
	km, err := NewKeyMap(DefaultBindings())
	if err != nil {
		t.Fatalf("NewKeyMap failed: %v", err)
	}
	return km
}

func TestKeyMap_ClassifyDefaults(t *testing.T) {
	km := defaultKeyMap(t)

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Action
	}{
		{"left arrow", keyEvent(tcell.KeyLeft), ActionLeft},
		{"right arrow", keyEvent(tcell.KeyRight), ActionRight},
		{"escape", keyEvent(tcell.KeyEscape), ActionAbort},
		{"ctrl-c", keyEvent(tcell.KeyCtrlC), ActionAbort},
		{"space", runeEvent(' '), ActionStart},
		{"unbound rune", runeEvent('x'), ActionNone},
		{"unbound key", keyEvent(tcell.KeyUp), ActionNone},
		{"nil", nil, ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.Classify(tt.ev); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestKeyMap_CustomBindings(t *testing.T) {
	km, err := NewKeyMap(Bindings{
		Left:  []string{"a", "Left"},
		Right: []string{"d", "right"},
		Abort: []string{"q", "esc"},
		Start: []string{"enter"},
	})
	if err != nil {
		t.Fatalf("NewKeyMap failed: %v", err)
	}

	if got := km.Classify(runeEvent('a')); got != ActionLeft {
		t.Errorf("Expected 'a' -> left, got %s", got)
	}
	if got := km.Classify(keyEvent(tcell.KeyLeft)); got != ActionLeft {
		t.Errorf("Expected Left -> left, got %s", got)
	}
	if got := km.Classify(runeEvent('q')); got != ActionAbort {
		t.Errorf("Expected 'q' -> abort, got %s", got)
	}
	if got := km.Classify(keyEvent(tcell.KeyEscape)); got != ActionAbort {
		t.Errorf("Expected esc alias -> abort, got %s", got)
	}
	if got := km.Classify(keyEvent(tcell.KeyEnter)); got != ActionStart {
		t.Errorf("Expected enter -> start, got %s", got)
	}
	if got := km.Classify(runeEvent(' ')); got != ActionNone {
		t.Errorf("Expected space unbound, got %s", got)
	}
}

func TestNewKeyMap_Errors(t *testing.T) {
	tests := []struct {
		name string
		b    Bindings
	}{
		{"empty left", Bindings{Right: []string{"right"}, Abort: []string{"escape"}, Start: []string{"space"}}},
		{"unknown name", Bindings{Left: []string{"leftish"}, Right: []string{"right"}, Abort: []string{"escape"}, Start: []string{"space"}}},
		{"duplicate special", Bindings{Left: []string{"left"}, Right: []string{"left"}, Abort: []string{"escape"}, Start: []string{"space"}}},
		{"duplicate rune", Bindings{Left: []string{"x"}, Right: []string{"right"}, Abort: []string{"x"}, Start: []string{"space"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewKeyMap(tt.b); !errors.Is(err, ErrInvalidKey) {
				t.Errorf("Expected ErrInvalidKey, got %v", err)
			}
		})
	}
}

func TestActionResponse(t *testing.T) {
	if ActionLeft.Response() != schedule.ResponseLeft {
		t.Error("Expected left action to map to left response")
	}
	if ActionRight.Response() != schedule.ResponseRight {
		t.Error("Expected right action to map to right response")
	}
	if ActionAbort.Response() != schedule.ResponseAbort {
		t.Error("Expected abort action to map to abort response")
	}
	if ActionStart.Response() != schedule.ResponseNone {
		t.Error("Expected start action to map to no response")
	}
}

func TestSource_PollAbortTakesPrecedence(t *testing.T) {
	events := make(chan tcell.Event, 8)
	events <- keyEvent(tcell.KeyLeft)
	events <- runeEvent('z')
	events <- keyEvent(tcell.KeyEscape)
	events <- keyEvent(tcell.KeyRight)

	src := NewSource(events, defaultKeyMap(t), nil)
	if got := src.Poll(); got != ActionAbort {
		t.Fatalf("Expected abort, got %s", got)
	}
	// Keys after the abort stay queued
	if len(events) != 1 {
		t.Errorf("Expected 1 queued event, got %d", len(events))
	}
}

func TestSource_PollDiscardsResponses(t *testing.T) {
	events := make(chan tcell.Event, 4)
	events <- keyEvent(tcell.KeyLeft)
	events <- keyEvent(tcell.KeyRight)

	src := NewSource(events, defaultKeyMap(t), nil)
	if got := src.Poll(); got != ActionNone {
		t.Errorf("Expected none, got %s", got)
	}
	if len(events) != 0 {
		t.Errorf("Expected queue drained, got %d events", len(events))
	}
}

func TestSource_PollClosedStreamAborts(t *testing.T) {
	events := make(chan tcell.Event)
	close(events)
	src := NewSource(events, defaultKeyMap(t), nil)
	if got := src.Poll(); got != ActionAbort {
		t.Errorf("Expected abort on closed stream, got %s", got)
	}
}

func TestSource_AwaitSkipsUnwanted(t *testing.T) {
	events := make(chan tcell.Event, 4)
	events <- runeEvent(' ')
	events <- runeEvent('k')
	events <- keyEvent(tcell.KeyRight)

	src := NewSource(events, defaultKeyMap(t), nil)
	got, err := src.Await(context.Background(), ActionLeft, ActionRight)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != ActionRight {
		t.Errorf("Expected right, got %s", got)
	}
}

func TestSource_AwaitAbort(t *testing.T) {
	events := make(chan tcell.Event, 2)
	events <- keyEvent(tcell.KeyEscape)

	src := NewSource(events, defaultKeyMap(t), nil)
	got, err := src.Await(context.Background(), ActionStart)
	if err != nil || got != ActionAbort {
		t.Errorf("Expected abort with nil error, got %s (%v)", got, err)
	}
}

func TestSource_AwaitContextAndClose(t *testing.T) {
	events := make(chan tcell.Event)
	src := NewSource(events, defaultKeyMap(t), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := src.Await(ctx, ActionLeft); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}

	close(events)
	if _, err := src.Await(context.Background(), ActionLeft); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
}

func TestSource_ResizeCallback(t *testing.T) {
	events := make(chan tcell.Event, 2)
	events <- tcell.NewEventResize(100, 40)

	resized := 0
	src := NewSource(events, defaultKeyMap(t), func() { resized++ })
	src.Poll()
	if resized != 1 {
		t.Errorf("Expected resize callback once, got %d", resized)
	}
}

type fakePoller struct {
	events []tcell.Event
}

func (f *fakePoller) PollEvent() tcell.Event {
	if len(f.events) == 0 {
		return nil
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev
}

func TestPump_ForwardsUntilNil(t *testing.T) {
	p := &fakePoller{events: []tcell.Event{keyEvent(tcell.KeyLeft), runeEvent('a')}}
	ch := Pump(p, 4)

	var got []tcell.Event
	for ev := range ch {
		got = append(got, ev)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 events, got %d", len(got))
	}
}
