// Package experiment runs the random-dot motion task: instructions, the trial loop and the closing screen.
// All run state lives on an Experiment value; nothing is global.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/lixenwraith/rdk/config"
	"github.com/lixenwraith/rdk/input"
	"github.com/lixenwraith/rdk/motion"
	"github.com/lixenwraith/rdk/results"
	"github.com/lixenwraith/rdk/schedule"
)

// ErrSave wraps a sink failure; the run itself may still have completed
var ErrSave = errors.New("save results")

// Deps are the collaborators an Experiment drives. Feedback and Sink may be nil.
type Deps struct {
	Presenter Presenter
	Responder Responder
	Clock     FrameClock
	Feedback  Feedback
	Sink      results.Sink

	// Now defaults to time.Now
	Now func() time.Time
}

// Experiment is one participant session
type Experiment struct {
	cfg    config.Config
	deps   Deps
	gen    *motion.Generator
	sched  *schedule.Scheduler
	frames int
	run    *results.Run
}

// New validates cfg and prepares a session seeded with seed. The whole trial schedule,
// including every direction, is drawn here.
func New(cfg config.Config, seed uint64, deps Deps) (*Experiment, error) {
	if deps.Presenter == nil || deps.Responder == nil || deps.Clock == nil {
		return nil, errors.New("experiment: presenter, responder and clock are required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Feedback == nil {
		deps.Feedback = silentFeedback{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	sched, err := schedule.NewScheduler(cfg.Coherences, cfg.Repetitions, rng)
	if err != nil {
		return nil, fmt.Errorf("build schedule: %w", err)
	}
	f, _, err := cfg.FieldSpec()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.MotionOptions()
	if err != nil {
		return nil, err
	}
	gen, err := motion.NewGenerator(f, opts, rng)
	if err != nil {
		return nil, fmt.Errorf("create generator: %w", err)
	}

	run := results.NewRun(seed, deps.Now())
	if run.Config, err = cfg.TOML(); err != nil {
		return nil, err
	}

	return &Experiment{
		cfg:    cfg,
		deps:   deps,
		gen:    gen,
		sched:  sched,
		frames: cfg.Frames(),
		run:    run,
	}, nil
}

// Session is the run being recorded
func (e *Experiment) Session() *results.Run { return e.run }

// Trials returns the full schedule
func (e *Experiment) Trials() []schedule.Trial { return e.sched.Trials() }

// Execute runs the session to completion or abort. Records collected so far are saved
// on every exit path. An abort returns schedule.ErrAborted; a cancelled ctx returns its error.
func (e *Experiment) Execute(ctx context.Context) (summary schedule.Summary, err error) {
	defer func() {
		e.run.FinishedAt = e.deps.Now()
		e.run.Aborted = err != nil
		summary = e.run.Summary()
		if e.deps.Sink == nil {
			return
		}
		// Saving must survive the cancellation that may have ended the run
		if serr := e.deps.Sink.Save(context.WithoutCancel(ctx), e.run); serr != nil {
			log.Printf("Saving run %s failed: %v", e.run.ID, serr)
			err = errors.Join(err, fmt.Errorf("%w: %w", ErrSave, serr))
		}
	}()

	log.Printf("Run %s: %d trials, %d frames per stimulus", e.run.ID, e.sched.Len(), e.frames)

	if err := e.instructions(ctx); err != nil {
		return summary, err
	}

	for {
		t, ok := e.sched.Next()
		if !ok {
			break
		}
		rec, err := e.trial(ctx, t)
		if err != nil {
			log.Printf("Run %s stopped at trial %d: %v", e.run.ID, t.Index, err)
			return summary, err
		}
		e.run.Records = append(e.run.Records, rec)
	}

	e.closing(ctx)
	return summary, nil
}

func (e *Experiment) instructions(ctx context.Context) error {
	e.deps.Presenter.Message(
		"You will see white dots moving on a dark background.",
		"Some of them drift together to the left or to the right.",
		"",
		fmt.Sprintf("If the dots move right, press %s.", keyList(e.cfg.Keys.Right)),
		fmt.Sprintf("If the dots move left, press %s.", keyList(e.cfg.Keys.Left)),
		"Answer as accurately and as quickly as you can.",
		"",
		fmt.Sprintf("There are %d trials in total.", e.sched.Len()),
		"",
		fmt.Sprintf("Press %s to begin, %s to quit.", keyList(e.cfg.Keys.Start), keyList(e.cfg.Keys.Abort)),
	)
	a, err := e.deps.Responder.Await(ctx, input.ActionStart)
	if err != nil {
		return err
	}
	if a == input.ActionAbort {
		return schedule.ErrAborted
	}
	return nil
}

func keyList(names []string) string {
	return strings.ToUpper(strings.Join(names, " or "))
}

// trial shows the stimulus for the configured number of frames, then waits for a direction
func (e *Experiment) trial(ctx context.Context, t schedule.Trial) (schedule.Record, error) {
	dir := t.Direction.Vector()
	e.deps.Clock.Start()
	for f := 0; f < e.frames; f++ {
		if e.deps.Responder.Poll() == input.ActionAbort {
			return schedule.Record{}, schedule.ErrAborted
		}
		e.deps.Presenter.Frame(e.gen.Advance(dir, t.Coherence))
		if err := e.deps.Clock.Tick(ctx); err != nil {
			return schedule.Record{}, err
		}
	}
	// Keys pressed while the last frame was up are not responses
	if e.deps.Responder.Poll() == input.ActionAbort {
		return schedule.Record{}, schedule.ErrAborted
	}

	a, err := e.deps.Responder.Await(ctx, input.ActionLeft, input.ActionRight)
	if err != nil {
		return schedule.Record{}, err
	}
	correct, err := schedule.Score(t, a.Response())
	if err != nil {
		return schedule.Record{}, err
	}

	if correct {
		e.deps.Feedback.Correct()
	} else {
		e.deps.Feedback.Incorrect()
	}
	log.Printf("Trial %d: coherence %v, direction %s, response %s, correct %t",
		t.Index, t.Coherence, t.Direction, a, correct)
	return schedule.Record{Coherence: t.Coherence, Correct: correct}, nil
}

// closing shows the final accuracy until the hold time passes or a key dismisses it
func (e *Experiment) closing(ctx context.Context) {
	sum := e.run.Summary()
	e.deps.Presenter.Message(
		fmt.Sprintf("The experiment is over. Correct responses: %d%%.", sum.RoundedAccuracy()),
		"Thank you for taking part!",
	)
	if e.cfg.EndHold.Duration <= 0 {
		return
	}
	hold, cancel := context.WithTimeout(ctx, e.cfg.EndHold.Duration)
	defer cancel()
	_, _ = e.deps.Responder.Await(hold, input.ActionStart, input.ActionLeft, input.ActionRight)
	e.deps.Presenter.Clear()
}
