// Package term runs the game in a terminal with tcell. Keys steer the hull,
// the mouse aims and fires, and beep plays the effects.
package term

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"tankwar/game"
	"tankwar/input"
)

// turretStep is the keyboard turret rotation per key event in radians
const turretStep = math.Pi / 16

// Options configures the terminal frontend
type Options struct {
	Mute      bool
	Logger    *log.Logger
	Observers []game.TickObserver
	Autopilot bool
}

// tickScheduler queues the loop's frame callback until the next ticker fire
type tickScheduler struct {
	start  time.Time
	nextID game.FrameID
	id     game.FrameID
	fn     func(now float64)
}

func (s *tickScheduler) RequestFrame(fn func(now float64)) game.FrameID {
	s.nextID++
	s.id, s.fn = s.nextID, fn
	return s.id
}

func (s *tickScheduler) CancelFrame(id game.FrameID) {
	if id == s.id {
		s.id, s.fn = 0, nil
	}
}

func (s *tickScheduler) pump(now time.Time) {
	fn := s.fn
	if fn == nil {
		return
	}
	s.id, s.fn = 0, nil
	fn(float64(now.Sub(s.start).Microseconds()) / 1000)
}

// Runner owns the terminal session
type Runner struct {
	cfg    game.Config
	logger *log.Logger
	screen tcell.Screen
	view   viewport

	loop      *game.Loop
	scheduler *tickScheduler
	sound     *soundBoard

	holds       *input.HoldTracker
	autopilot   *input.Autopilot
	mouseAim    bool
	mouseX      float64
	mouseY      float64
	mouseFiring bool
	turret      float64
	notice      string
}

// NewRunner initializes the terminal. Call Close when done.
func NewRunner(cfg game.Config, opts Options) (*Runner, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	r := &Runner{
		cfg:       cfg,
		logger:    logger,
		screen:    screen,
		scheduler: &tickScheduler{start: time.Now()},
		holds:     input.NewHoldTracker(0),
	}
	cols, rows := screen.Size()
	r.view = newViewport(cols, rows, cfg)

	events := game.NewDispatcher()
	events.SubscribeAll(game.NewEventLogger(logger))
	if !opts.Mute {
		sb, err := newSoundBoard()
		if err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			r.sound = sb
			events.SubscribeAll(sb)
		}
	}

	r.loop = game.NewLoop(cfg, r.scheduler, game.IntentFunc(r.intent), events)
	if opts.Autopilot {
		r.autopilot = input.NewAutopilot(r.loop.State)
	}
	for _, o := range opts.Observers {
		r.loop.Observe(o)
	}
	return r, nil
}

// Close restores the terminal
func (r *Runner) Close() {
	if r.sound != nil {
		r.sound.Close()
	}
	r.screen.Fini()
}

// Summary describes the current round in one line
func (r *Runner) Summary() string {
	s := r.loop.State()
	if s == nil {
		return "tankwar: no round played"
	}
	return fmt.Sprintf("tankwar: score %d, level %d, seed %d, %d frames", s.Score, s.Level, s.Seed(), s.Stats.Frames)
}

// Run plays until ctx is cancelled or the user quits
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	r.loop.Start()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-eventChan:
			if !r.handleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			r.scheduler.pump(now)
			r.render()
		}
	}
}

// handleEvent applies one terminal event. It returns false to quit.
func (r *Runner) handleEvent(ev tcell.Event) bool {
	now := time.Now()
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		r.view = newViewport(cols, rows, r.cfg)
		r.screen.Sync()

	case *tcell.EventMouse:
		col, row := ev.Position()
		r.mouseX, r.mouseY = r.view.toField(col, row)
		r.mouseAim = true
		r.mouseFiring = ev.Buttons()&tcell.Button1 != 0

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			r.holds.Press(input.ControlForward, now)
		case tcell.KeyDown:
			r.holds.Press(input.ControlBack, now)
		case tcell.KeyLeft:
			r.holds.Press(input.ControlLeft, now)
		case tcell.KeyRight:
			r.holds.Press(input.ControlRight, now)
		case tcell.KeyRune:
			return r.handleRune(ev.Rune(), now)
		}
	}
	return true
}

func (r *Runner) handleRune(ch rune, now time.Time) bool {
	switch ch {
	case 'q':
		return false
	case 'w':
		r.holds.Press(input.ControlForward, now)
	case 's':
		r.holds.Press(input.ControlBack, now)
	case 'a':
		r.holds.Press(input.ControlLeft, now)
	case 'd':
		r.holds.Press(input.ControlRight, now)
	case ' ':
		r.holds.Press(input.ControlFire, now)
	case 'j':
		r.mouseAim = false
		r.turret -= turretStep
	case 'l':
		r.mouseAim = false
		r.turret += turretStep
	case 'r':
		if r.loop.State().RestartVisible() {
			r.notice = ""
			r.turret = 0
			r.loop.Restart()
		}
	case 'c':
		if r.loop.State().RestartVisible() {
			r.copySummary()
		}
	}
	return true
}

// intent builds the tick intent from held keys and the mouse
func (r *Runner) intent() game.Intent {
	if r.autopilot != nil {
		return r.autopilot.Intent()
	}
	now := time.Now()
	keys := r.holds.Keys(now)
	firing := r.mouseFiring || r.holds.Held(input.ControlFire, now)

	if r.mouseAim {
		return input.Desktop(keys, r.mouseX, r.mouseY, firing)
	}
	turn, throttle := keys.Axes()
	return game.Intent{
		Turn:     turn,
		Throttle: throttle,
		Aim:      game.Aim{Kind: game.AimAngle, Angle: r.turret - math.Pi/2},
		Firing:   firing,
	}
}

func (r *Runner) copySummary() {
	if clipboard.Unsupported {
		r.notice = "clipboard not available"
		return
	}
	if err := clipboard.WriteAll(r.Summary()); err != nil {
		r.logger.Warn("clipboard copy failed", "err", err)
		r.notice = "copy failed"
		return
	}
	r.notice = "copied to clipboard"
}

func (r *Runner) render() {
	s := r.loop.State()
	if s == nil {
		return
	}
	hint := r.notice
	if hint == "" {
		hint = "r restart  c copy score  q quit"
	}
	draw(r.screen, r.view, s.Snapshot(), hint)
	r.screen.Show()
}
