package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/rdk/schedule"
)

// ErrInvalidKey is returned for unknown key names, empty bindings and keys bound twice
var ErrInvalidKey = errors.New("invalid key binding")

// Action is what a key press means to the task
type Action uint8

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionAbort
	ActionStart
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionAbort:
		return "abort"
	case ActionStart:
		return "start"
	}
	return fmt.Sprintf("action(%d)", a)
}

// Response converts a key action to the scheduler's response vocabulary
func (a Action) Response() schedule.Response {
	switch a {
	case ActionLeft:
		return schedule.ResponseLeft
	case ActionRight:
		return schedule.ResponseRight
	case ActionAbort:
		return schedule.ResponseAbort
	}
	return schedule.ResponseNone
}

// Bindings lists key names per action, as written in configuration
type Bindings struct {
	Left  []string `toml:"left"`
	Right []string `toml:"right"`
	Abort []string `toml:"abort"`
	Start []string `toml:"start"`
}

// DefaultBindings mirrors the classic layout: arrow keys respond, escape aborts, space starts
func DefaultBindings() Bindings {
	return Bindings{
		Left:  []string{"left"},
		Right: []string{"right"},
		Abort: []string{"escape"},
		Start: []string{"space"},
	}
}

// KeyMap classifies tcell key events into actions
type KeyMap struct {
	special map[tcell.Key]Action
	runes   map[rune]Action
}

// NewKeyMap resolves all names; every action needs at least one key and no key may serve two actions
func NewKeyMap(b Bindings) (*KeyMap, error) {
	km := &KeyMap{
		special: make(map[tcell.Key]Action),
		runes:   make(map[rune]Action),
	}

	sections := []struct {
		name   string
		action Action
		keys   []string
	}{
		{"abort", ActionAbort, b.Abort},
		{"left", ActionLeft, b.Left},
		{"right", ActionRight, b.Right},
		{"start", ActionStart, b.Start},
	}

	for _, sec := range sections {
		if len(sec.keys) == 0 {
			return nil, fmt.Errorf("%w: [%s] has no keys", ErrInvalidKey, sec.name)
		}
		for _, name := range sec.keys {
			if err := km.bind(name, sec.action); err != nil {
				return nil, fmt.Errorf("[%s] key %q: %w", sec.name, name, err)
			}
		}
	}

	return km, nil
}

func (km *KeyMap) bind(name string, a Action) error {
	norm := strings.ToLower(strings.TrimSpace(name))

	if k, ok := KeyByName(norm); ok {
		if prev, dup := km.special[k]; dup {
			return fmt.Errorf("%w: already bound to %s", ErrInvalidKey, prev)
		}
		km.special[k] = a
		return nil
	}

	r, err := resolveRune(name)
	if err != nil {
		return err
	}
	if prev, dup := km.runes[r]; dup {
		return fmt.Errorf("%w: already bound to %s", ErrInvalidKey, prev)
	}
	km.runes[r] = a
	return nil
}

// resolveRune accepts a single character (case preserved) or a named alias
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return r, nil
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}
	return 0, fmt.Errorf("%w: unknown key name %q", ErrInvalidKey, s)
}

// Classify maps a key event to an action.
// Abort is decided first; Ctrl+C always aborts regardless of bindings.
func (km *KeyMap) Classify(ev *tcell.EventKey) Action {
	if ev == nil {
		return ActionNone
	}

	var a Action
	if ev.Key() == tcell.KeyRune {
		a = km.runes[ev.Rune()]
	} else {
		a = km.special[ev.Key()]
	}

	if a == ActionAbort || ev.Key() == tcell.KeyCtrlC {
		return ActionAbort
	}
	return a
}
