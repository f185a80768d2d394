package input

import "github.com/gdamore/tcell/v2"

// nameToKey maps canonical config names to tcell special keys
var nameToKey = map[string]tcell.Key{
	"escape":    tcell.KeyEscape,
	"enter":     tcell.KeyEnter,
	"tab":       tcell.KeyTab,
	"backtab":   tcell.KeyBacktab,
	"backspace": tcell.KeyBackspace2,
	"delete":    tcell.KeyDelete,

	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"page_up":   tcell.KeyPgUp,
	"page_down": tcell.KeyPgDn,
	"insert":    tcell.KeyInsert,

	"f1":  tcell.KeyF1,
	"f2":  tcell.KeyF2,
	"f3":  tcell.KeyF3,
	"f4":  tcell.KeyF4,
	"f5":  tcell.KeyF5,
	"f6":  tcell.KeyF6,
	"f7":  tcell.KeyF7,
	"f8":  tcell.KeyF8,
	"f9":  tcell.KeyF9,
	"f10": tcell.KeyF10,
	"f11": tcell.KeyF11,
	"f12": tcell.KeyF12,

	"ctrl_c": tcell.KeyCtrlC,
	"ctrl_d": tcell.KeyCtrlD,
	"ctrl_q": tcell.KeyCtrlQ,
	"ctrl_x": tcell.KeyCtrlX,
}

// keyAliases accepts common alternative spellings
var keyAliases = map[string]string{
	"esc":       "escape",
	"return":    "enter",
	"shift_tab": "backtab",
	"pgup":      "page_up",
	"pgdn":      "page_down",
}

// runeAliases covers printable keys that are awkward to write as a single character
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// KeyByName resolves a canonical or aliased name to a tcell special key
func KeyByName(name string) (tcell.Key, bool) {
	if canonical, ok := keyAliases[name]; ok {
		name = canonical
	}
	k, ok := nameToKey[name]
	return k, ok
}
