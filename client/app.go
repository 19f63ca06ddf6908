// Package client runs the game in an ebiten window: it drives the loop from
// ebiten's Update, draws snapshots and plays sound effects.
package client

import (
	"fmt"
	"image/color"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"tankwar/game"
)

// Options configures the window frontend
type Options struct {
	Touch      bool
	Mute       bool
	ProfileDir string
	Logger     *log.Logger

	// Observers see every round and tick, e.g. a replay recorder
	Observers []game.TickObserver
}

// App implements ebiten.Game
type App struct {
	cfg    game.Config
	logger *log.Logger

	loop      *game.Loop
	scheduler *frameScheduler
	input     *deviceInput
	renderer  *Renderer
	profiler  *Profiler
	debug     debugOverlay

	restart    button
	notice     string
	lastUpdate time.Time
}

// New creates the app and starts the first round
func New(cfg game.Config, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	a := &App{
		cfg:        cfg,
		logger:     logger,
		scheduler:  newFrameScheduler(),
		input:      newDeviceInput(cfg, opts.Touch),
		renderer:   NewRenderer(newSpriteCache(logger)),
		lastUpdate: time.Now(),
		restart: button{
			X:     cfg.ScreenWidth/2 - 80,
			Y:     cfg.ScreenHeight/2 + 10,
			W:     160,
			H:     44,
			Label: "Restart",
		},
	}

	events := game.NewDispatcher()
	events.SubscribeAll(game.NewEventLogger(logger))
	if !opts.Mute {
		events.SubscribeAll(newSoundBoard())
	}

	if opts.ProfileDir != "" {
		p, err := NewProfiler(opts.ProfileDir, logger)
		if err != nil {
			logger.Warn("profiling disabled", "err", err)
		} else {
			a.profiler = p
		}
	}

	a.loop = game.NewLoop(cfg, a.scheduler, a.input, events)
	for _, o := range opts.Observers {
		a.loop.Observe(o)
	}
	a.loop.Start()
	return a
}

// Update polls input, handles the restart affordance and runs one tick
func (a *App) Update() error {
	now := time.Now()
	dt := float64(now.Sub(a.lastUpdate).Microseconds()) / 1000
	a.lastUpdate = now

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		a.debug.Toggle()
	}

	a.input.Poll()

	s := a.loop.State()
	if s.RestartVisible() {
		if a.input.restartRequested(a.restart) {
			a.restartRound()
		} else if inpututil.IsKeyJustPressed(ebiten.KeyC) {
			a.copySummary(s)
		}
	}

	a.scheduler.Pump()

	if a.profiler != nil {
		a.profiler.Observe(dt, func() string {
			st := a.loop.State()
			return fmt.Sprintf("enemies%d-bullets%d-particles%d", len(st.Enemies), len(st.Bullets), len(st.Particles))
		})
	}
	return nil
}

// restartRound starts a new round with released controls. The click or tap
// that pressed Restart was already sampled by Poll and must not fire.
func (a *App) restartRound() {
	a.input.reset()
	a.notice = ""
	a.loop.Restart()
}

// Draw renders the current round
func (a *App) Draw(screen *ebiten.Image) {
	s := a.loop.State()
	snap := s.Snapshot()

	a.renderer.Draw(screen, snap)
	if a.input.touch && !snap.GameOver {
		a.drawTouchControls(screen)
	}
	if snap.RestartVisible {
		hint := a.notice
		if hint == "" {
			hint = "R to restart  -  C to copy score"
		}
		a.renderer.drawGameOver(screen, snap, a.restart, hint)
	}
	a.debug.Draw(screen, a.renderer, s)
}

// Layout keeps the logical playfield size regardless of the window
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(a.cfg.ScreenWidth), int(a.cfg.ScreenHeight)
}

// Summary describes the current round in one line
func (a *App) Summary() string {
	s := a.loop.State()
	return fmt.Sprintf("tankwar: score %d, level %d, seed %d, %d frames", s.Score, s.Level, s.Seed(), s.Stats.Frames)
}

func (a *App) copySummary(s *game.State) {
	if clipboard.Unsupported {
		a.notice = "clipboard not available"
		return
	}
	if err := clipboard.WriteAll(a.Summary()); err != nil {
		a.logger.Warn("clipboard copy failed", "err", err)
		a.notice = "copy failed"
		return
	}
	a.logger.Info("summary copied", "score", s.Score, "level", s.Level)
	a.notice = "copied to clipboard"
}

func (a *App) drawTouchControls(screen *ebiten.Image) {
	st := a.input.stick
	kx, ky := st.Knob()
	vector.DrawFilledCircle(screen, float32(st.CenterX), float32(st.CenterY), float32(st.Radius), color.NRGBA{0xff, 0xff, 0xff, 0x30}, true)
	knobAlpha := uint8(0x80)
	if st.Active() {
		knobAlpha = 0xc0
	}
	vector.DrawFilledCircle(screen, float32(st.CenterX+kx), float32(st.CenterY+ky), float32(st.Radius/2.5), color.NRGBA{0xff, 0xff, 0xff, knobAlpha}, true)

	fireAlpha := uint8(0x60)
	if a.input.fire.Active() {
		fireAlpha = 0xb0
	}
	vector.DrawFilledCircle(screen, float32(a.input.fireX), float32(a.input.fireY), float32(a.input.fireR), color.NRGBA{0xd9, 0x53, 0x4f, fireAlpha}, true)
}
