// Command rdk-keys shows how each key press is classified under a configuration,
// so response keys can be checked on the lab keyboard before a session.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/rdk/config"
	"github.com/lixenwraith/rdk/input"
	"github.com/lixenwraith/rdk/render"
)

const maxLog = 10

var configFlag = flag.String("config", "", "TOML configuration file (defaults when empty)")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	keys, err := input.NewKeyMap(cfg.Keys)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	style, err := render.NewStyle(cfg.Display.DotGlyph, cfg.Display.DotColor, cfg.Display.FixationColor,
		cfg.Display.TextColor, cfg.Display.Background, cfg.Display.CellAspect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.HideCursor()

	presenter := render.NewPresenter(screen, cfg.Field.Extent, style)
	var eventLog []string

	for {
		presenter.Message(screenLines(eventLog)...)

		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlQ {
				return
			}
			eventLog = appendLog(eventLog, formatKeyEvent(ev, keys))
		case *tcell.EventResize:
			presenter.Resize()
			w, h := ev.Size()
			eventLog = appendLog(eventLog, fmt.Sprintf("RESIZE: %dx%d", w, h))
		}
	}
}

func screenLines(eventLog []string) []string {
	lines := []string{"Key check - press response keys - Ctrl+Q to quit", ""}
	return append(lines, eventLog...)
}

// appendLog keeps the newest maxLog entries
func appendLog(eventLog []string, s string) []string {
	if len(eventLog) >= maxLog {
		copy(eventLog, eventLog[1:])
		eventLog = eventLog[:maxLog-1]
	}
	return append(eventLog, s)
}

func formatKeyEvent(ev *tcell.EventKey, keys *input.KeyMap) string {
	return fmt.Sprintf("KEY: %-16s -> %s", ev.Name(), keys.Classify(ev))
}
