package client

import (
	"fmt"
	"image/color"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"tankwar/game"
)

func TestFrameSchedulerSinglePending(t *testing.T) {
	s := newFrameScheduler()
	var calls []string

	first := s.RequestFrame(func(float64) { calls = append(calls, "first") })
	s.CancelFrame(first)
	s.RequestFrame(func(float64) { calls = append(calls, "second") })

	// a stale id must not cancel the newer request
	s.CancelFrame(first)

	s.Pump()
	s.Pump()
	if len(calls) != 1 || calls[0] != "second" {
		t.Fatalf("calls = %v, want [second]", calls)
	}
}

func TestFrameSchedulerDrivesLoop(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.Seed = 3
	s := newFrameScheduler()
	loop := game.NewLoop(cfg, s, nil, nil)
	loop.Start()

	for i := 0; i < 5; i++ {
		s.Pump()
	}
	if got := loop.State().Stats.Frames; got != 5 {
		t.Fatalf("frames = %d, want 5", got)
	}
}

func TestButtonContains(t *testing.T) {
	b := button{X: 10, Y: 20, W: 100, H: 40}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},
		{110, 60, true},
		{60, 40, true},
		{9, 40, false},
		{60, 61, false},
	}
	for _, tt := range tests {
		if got := b.contains(tt.x, tt.y); got != tt.want {
			t.Errorf("contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestHexColor(t *testing.T) {
	if got := hexColor(color.NRGBA{0x5c, 0xb8, 0x5c, 0xff}); got != "#5cb85c" {
		t.Errorf("hexColor = %s", got)
	}
}

func TestHullRasterizes(t *testing.T) {
	body := color.NRGBA{0x5c, 0xb8, 0x5c, 0xff}
	w, h := int(hullSpriteWidth*2), int(hullSpriteHeight*2)
	img, err := svgToImage(fmt.Sprintf(hullSVG, hexColor(body)), w, h)
	if err != nil {
		t.Fatalf("svgToImage: %v", err)
	}
	if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
		t.Fatalf("bounds = %v, want %dx%d", b, w, h)
	}

	r, g, b, _ := img.At(w/2, h/2).RGBA()
	near := func(got uint32, want uint8) bool {
		d := int(got>>8) - int(want)
		return d >= -2 && d <= 2
	}
	if !near(r, body.R) || !near(g, body.G) || !near(b, body.B) {
		t.Errorf("centre pixel = %02x%02x%02x, want body colour", r>>8, g>>8, b>>8)
	}
}

// The click that presses Restart is also sampled as a fire press; the new
// round must not open with a shot.
func TestRestartRoundDropsHeldFire(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.Seed = 3
	a := &App{
		cfg:       cfg,
		scheduler: newFrameScheduler(),
		input:     newDeviceInput(cfg, false),
	}
	a.loop = game.NewLoop(cfg, a.scheduler, a.input, nil)
	a.loop.Start()
	a.loop.State().GameOver()
	a.notice = "copied to clipboard"

	a.input.intent = game.Intent{Firing: true}
	a.input.stick.Press(a.input.stick.CenterX, a.input.stick.CenterY-10)
	a.restartRound()
	a.scheduler.Pump()

	s := a.loop.State()
	if s.IsGameOver {
		t.Fatal("restart should start a live round")
	}
	if s.Stats.PlayerShots != 0 || len(s.Bullets) != 0 {
		t.Fatalf("first tick fired %d shots", s.Stats.PlayerShots)
	}
	if a.input.stick.Active() {
		t.Error("stick should be released on restart")
	}
	if a.notice != "" {
		t.Errorf("notice = %q, want cleared", a.notice)
	}
}

func testProfiler(t *testing.T) *Profiler {
	t.Helper()
	p, err := NewProfiler(t.TempDir(), log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewProfiler: %v", err)
	}
	p.started = time.Now().Add(-time.Minute)
	p.captureDuration = time.Millisecond
	return p
}

// slowFrames feeds one watchdog window at 10 FPS
func slowFrames(p *Profiler) {
	for i := 0; i < 5; i++ {
		p.Observe(100, func() string { return "test" })
	}
}

func TestProfilerSkipsWhileCapturing(t *testing.T) {
	p := testProfiler(t)
	p.isProfiling = true

	slowFrames(p)
	if !p.lastCaptureTime.IsZero() {
		t.Fatal("watchdog started a capture while one was running")
	}
}

func TestProfilerCapturesOnFPSDrop(t *testing.T) {
	p := testProfiler(t)

	slowFrames(p)
	if p.lastCaptureTime.IsZero() {
		t.Fatal("watchdog did not capture on a slow window")
	}

	deadline := time.Now().Add(5 * time.Second)
	for p.IsProfiling() {
		if time.Now().After(deadline) {
			t.Fatal("capture did not finish")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
