package term

import (
	"math"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"tankwar/game"
)

func TestViewportMapping(t *testing.T) {
	v := newViewport(100, 31, game.DefaultConfig())

	col, row, ok := v.toCell(400, 300)
	if !ok || col != 50 || row != 16 {
		t.Fatalf("toCell(400, 300) = (%d, %d, %v), want (50, 16, true)", col, row, ok)
	}

	x, y := v.toField(col, row)
	if c, r, _ := v.toCell(x, y); c != col || r != row {
		t.Errorf("toField/toCell round trip moved (%d, %d) to (%d, %d)", col, row, c, r)
	}

	for _, p := range [][2]float64{{-1, 10}, {800, 10}, {10, -1}, {10, 600}} {
		if _, _, ok := v.toCell(p[0], p[1]); ok {
			t.Errorf("toCell(%v, %v) should be off screen", p[0], p[1])
		}
	}
}

func TestArrowFor(t *testing.T) {
	tests := []struct {
		heading float64
		want    rune
	}{
		{0, '↑'},
		{math.Pi / 2, '→'},
		{math.Pi, '↓'},
		{-math.Pi / 2, '←'},
		{2 * math.Pi, '↑'},
		{math.Pi / 4, '↗'},
	}
	for _, tt := range tests {
		if got := arrowFor(tt.heading); got != tt.want {
			t.Errorf("arrowFor(%v) = %q, want %q", tt.heading, got, tt.want)
		}
	}
}

func screenRow(screen tcell.SimulationScreen, row int) string {
	cells, w, _ := screen.GetContents()
	var sb strings.Builder
	for col := 0; col < w; col++ {
		c := cells[row*w+col]
		if len(c.Runes) == 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(c.Runes[0])
	}
	return sb.String()
}

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(100, 31)
	return screen
}

func TestDrawRound(t *testing.T) {
	screen := newSimScreen(t)
	cfg := game.DefaultConfig()
	cfg.Seed = 11
	s := game.NewState(cfg, nil)
	v := newViewport(100, 31, cfg)

	draw(screen, v, s.Snapshot(), "")
	screen.Show()

	if hud := screenRow(screen, 0); !strings.Contains(hud, "Score: 0") || !strings.Contains(hud, "Level: 1") {
		t.Errorf("HUD row = %q", hud)
	}
	col, row, _ := v.toCell(s.Player.X, s.Player.Y)
	if got := []rune(screenRow(screen, row))[col]; got != '↑' {
		t.Errorf("player centre = %q, want hull arrow", got)
	}
}

func TestDrawGameOver(t *testing.T) {
	screen := newSimScreen(t)
	cfg := game.DefaultConfig()
	cfg.Seed = 11
	s := game.NewState(cfg, nil)
	s.GameOver()
	v := newViewport(100, 31, cfg)

	draw(screen, v, s.Snapshot(), "r restart")
	screen.Show()

	var all strings.Builder
	for row := 0; row < 31; row++ {
		all.WriteString(screenRow(screen, row))
	}
	if !strings.Contains(all.String(), "GAME OVER") || !strings.Contains(all.String(), "r restart") {
		t.Error("game over banner missing")
	}
}

func TestTickSchedulerCancel(t *testing.T) {
	var s tickScheduler
	calls := 0
	id := s.RequestFrame(func(float64) { calls++ })
	s.CancelFrame(id)
	s.pump(s.start)
	if calls != 0 {
		t.Fatalf("cancelled frame ran")
	}

	s.RequestFrame(func(float64) { calls++ })
	s.pump(s.start)
	s.pump(s.start)
	if calls != 1 {
		t.Fatalf("frame ran %d times, want 1", calls)
	}
}
