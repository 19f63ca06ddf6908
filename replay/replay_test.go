package replay

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"tankwar/game"
)

// recordRound plays a scripted round through a recorder
func recordRound(t *testing.T, seed int64, ticks int) (*Recording, *game.State) {
	t.Helper()

	cfg := game.DefaultConfig()
	cfg.Seed = seed
	s := game.NewState(cfg, nil)

	rec := NewRecorder()
	rec.RoundStarted(s)
	for i := 0; i < ticks; i++ {
		in := game.Intent{
			Turn:     math.Cos(float64(i) / 30),
			Throttle: 1,
			Aim:      game.Aim{Kind: game.AimAngle, Angle: float64(i) / 20},
			Firing:   i%3 != 0,
		}
		dt := game.FrameMillis + float64(i%5)
		s.Tick(dt, in)
		rec.Ticked(dt, in)
	}
	return rec.Recording(), s
}

func TestPlayReproducesRound(t *testing.T) {
	rec, live := recordRound(t, 1234, 900)

	replayed, err := Play(rec)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}

	if replayed.Score != live.Score || replayed.Level != live.Level || replayed.IsGameOver != live.IsGameOver {
		t.Fatalf("replay diverged: score %d/%d level %d/%d", replayed.Score, live.Score, replayed.Level, live.Level)
	}
	if len(replayed.Enemies) != len(live.Enemies) {
		t.Fatalf("enemy count %d, want %d", len(replayed.Enemies), len(live.Enemies))
	}
	for i, e := range live.Enemies {
		if replayed.Enemies[i].X != e.X || replayed.Enemies[i].Y != e.Y {
			t.Errorf("enemy %d at (%v, %v), want (%v, %v)", i, replayed.Enemies[i].X, replayed.Enemies[i].Y, e.X, e.Y)
		}
	}
	if err := Verify(rec); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	rec, _ := recordRound(t, 77, 300)
	path := filepath.Join(t.TempDir(), "round.tkr")

	if err := Save(path, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.Seed() != 77 || len(loaded.Frames) != 300 {
		t.Fatalf("loaded seed=%d frames=%d", loaded.Seed(), len(loaded.Frames))
	}
	if loaded.Config.PlayerColor != rec.Config.PlayerColor {
		t.Errorf("player colour lost: %v", loaded.Config.PlayerColor)
	}
	if err := Verify(loaded); err != nil {
		t.Errorf("Verify after load: %v", err)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	rec, _ := recordRound(t, 5, 200)
	rec.Result.Score += 10

	if err := Verify(rec); !errors.Is(err, ErrMismatch) {
		t.Fatalf("Verify() = %v, want ErrMismatch", err)
	}
}

func TestPlayRejectsBadRecordings(t *testing.T) {
	rec, _ := recordRound(t, 5, 10)

	rec.Version = 99
	if _, err := Play(rec); err == nil {
		t.Error("expected version error")
	}

	rec.Version = FormatVersion
	rec.Config.ScreenWidth = 0
	if _, err := Play(rec); !errors.Is(err, game.ErrInvalidConfig) {
		t.Errorf("Play() = %v, want ErrInvalidConfig", err)
	}
}

func TestRecorderIdle(t *testing.T) {
	r := NewRecorder()
	r.Ticked(16, game.Intent{})
	if r.Recording() != nil {
		t.Error("recorder without a round should have no recording")
	}
}

func TestRecorderRestartsWithRound(t *testing.T) {
	r := NewRecorder()
	cfg := game.DefaultConfig()
	cfg.Seed = 1

	r.RoundStarted(game.NewState(cfg, nil))
	r.Ticked(16, game.Intent{})

	cfg.Seed = 2
	r.RoundStarted(game.NewState(cfg, nil))
	rec := r.Recording()
	if rec.Seed() != 2 || len(rec.Frames) != 0 {
		t.Errorf("new round should reset the recording, seed=%d frames=%d", rec.Seed(), len(rec.Frames))
	}
}
