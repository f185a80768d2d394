package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime/debug"
	"sync"
	"syscall"

	"github.com/c2h5oh/datasize"
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/lixenwraith/rdk/audio"
	"github.com/lixenwraith/rdk/config"
	"github.com/lixenwraith/rdk/constant"
	"github.com/lixenwraith/rdk/experiment"
	"github.com/lixenwraith/rdk/input"
	"github.com/lixenwraith/rdk/render"
	"github.com/lixenwraith/rdk/results"
	"github.com/lixenwraith/rdk/schedule"
)

var (
	configFlag    = flag.String("config", "", "TOML configuration file (defaults when empty)")
	outFlag       = flag.String("out", constant.DefaultResultsPath, "Plain-text results file")
	dbFlag        = flag.String("db", "", "SQLite database keeping every run (disabled when empty)")
	seedFlag      = flag.Uint64("seed", 0, "Random seed; 0 picks one")
	debugFlag     = flag.Bool("debug", false, "Write a debug log to logs/rdk.log")
	noAudioFlag   = flag.Bool("no-audio", false, "Disable feedback tones")
	colorModeFlag = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
	listFlag      = flag.Bool("list", false, "List runs stored in -db and exit")
	showFlag      = flag.String("show", "", "Print the run with this ID from -db and exit")
)

var logMax datasize.ByteSize

func init() {
	flag.TextVar(&logMax, "log-max", constant.MaxLogSize, "Rotate the debug log above this size, e.g. 512KB or 10MB; 0 never rotates")
}

func main() {
	flag.Parse()

	setLogLimit(logMax)
	logFile := setupLogging(*debugFlag)
	code := run()
	if logFile != nil {
		logFile.Close()
	}
	os.Exit(code)
}

func run() (code int) {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 2
	}

	if *listFlag {
		return listRuns(*dbFlag)
	}
	if *showFlag != "" {
		return showRun(os.Stdout, *dbFlag, *showFlag)
	}

	style, err := render.NewStyle(cfg.Display.DotGlyph, cfg.Display.DotColor, cfg.Display.FixationColor,
		cfg.Display.TextColor, cfg.Display.Background, cfg.Display.CellAspect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 2
	}
	keys, err := input.NewKeyMap(cfg.Keys)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 2
	}

	sinks := results.Multi{results.TextFile{Path: *outFlag}}
	if *dbFlag != "" {
		store, err := results.OpenStore(*dbFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open run database: %v\n", err)
			return 1
		}
		defer store.Close()
		sinks = append(sinks, store)
	}

	seed := *seedFlag
	if seed == 0 {
		seed = rand.Uint64()
	}

	switch *colorModeFlag {
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case "truecolor", "true", "24bit":
		os.Setenv("COLORTERM", "truecolor")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}
	finalize := sync.OnceFunc(screen.Fini)
	defer finalize()

	// Panic Recovery: restore the terminal before printing anything
	defer func() {
		if r := recover(); r != nil {
			finalize()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mRDK CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			code = 1
		}
	}()

	screen.HideCursor()
	presenter := render.NewPresenter(screen, cfg.Field.Extent, style)
	source := input.NewSource(input.Pump(screen, constant.EventBufferSize), keys, presenter.Resize)

	audioCfg := audio.LoadConfig()
	if *noAudioFlag {
		audioCfg.Enabled = false
	}
	feedback := audio.NewFeedback(audioCfg)
	if err := feedback.Initialize(); err != nil {
		log.Printf("Audio initialization failed: %v (continuing without audio)", err)
	}
	defer feedback.Cleanup()

	clock := experiment.NewTickerClock(cfg.FrameInterval())
	defer clock.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exp, err := experiment.New(cfg, seed, experiment.Deps{
		Presenter: presenter,
		Responder: source,
		Clock:     clock,
		Feedback:  feedback,
		Sink:      sinks,
	})
	if err != nil {
		finalize()
		fmt.Fprintf(os.Stderr, "Failed to prepare run: %v\n", err)
		return 1
	}

	summary, err := exp.Execute(ctx)
	finalize()

	session := exp.Session()
	if summary.NoData {
		fmt.Printf("Run %s: no trials completed\n", session.ID)
	} else {
		fmt.Printf("Run %s: %d/%d correct (%d%%)\n", session.ID, summary.Correct, summary.Total, summary.RoundedAccuracy())
	}

	switch {
	case err == nil:
		fmt.Printf("Results saved to %s\n", *outFlag)
		return 0
	case errors.Is(err, experiment.ErrSave):
		fmt.Fprintf(os.Stderr, "Failed to save results: %v\n", err)
		return 1
	case errors.Is(err, schedule.ErrAborted), errors.Is(err, context.Canceled):
		fmt.Printf("Run aborted; partial results saved to %s\n", *outFlag)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Run failed: %v\n", err)
		return 1
	}
}

func listRuns(path string) int {
	if path == "" {
		fmt.Fprintln(os.Stderr, "-list needs -db")
		return 2
	}
	store, err := results.OpenStore(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open run database: %v\n", err)
		return 1
	}
	defer store.Close()

	runs, err := store.List(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list runs: %v\n", err)
		return 1
	}
	for _, r := range runs {
		status := "complete"
		if r.Aborted {
			status = "aborted"
		}
		fmt.Printf("%s  %s  %d/%d  %s\n", r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Correct, r.Total, status)
	}
	return 0
}

// showRun prints one stored run followed by its records in the results file format
func showRun(w io.Writer, path, id string) int {
	if path == "" {
		fmt.Fprintln(os.Stderr, "-show needs -db")
		return 2
	}
	runID, err := uuid.Parse(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid run ID %q: %v\n", id, err)
		return 2
	}
	store, err := results.OpenStore(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open run database: %v\n", err)
		return 1
	}
	defer store.Close()

	run, err := store.Load(context.Background(), runID)
	if errors.Is(err, results.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "No run %s in %s\n", runID, path)
		return 1
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load run: %v\n", err)
		return 1
	}

	status := "complete"
	if run.Aborted {
		status = "aborted"
	}
	sum := run.Summary()
	fmt.Fprintf(w, "Run:      %s\n", run.ID)
	fmt.Fprintf(w, "Started:  %s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Finished: %s\n", run.FinishedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Seed:     %d\n", run.Seed)
	fmt.Fprintf(w, "Status:   %s\n", status)
	if sum.NoData {
		fmt.Fprintln(w, "Correct:  no trials")
	} else {
		fmt.Fprintf(w, "Correct:  %d/%d (%d%%)\n", sum.Correct, sum.Total, sum.RoundedAccuracy())
	}
	if err := results.Encode(w, run.Records); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to print records: %v\n", err)
		return 1
	}
	fmt.Fprintln(w)
	return 0
}
