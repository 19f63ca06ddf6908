package game

import (
	"math"
	"testing"
)

// armedEnemy places a single enemy of the given level near the player with
// its shoot timer already due.
func armedEnemy(s *State, level int) *Tank {
	e := NewEnemyTank(s.Player.X-200, s.Player.Y-100, level, s.cfg, s.rng)
	e.SinceShot = e.ShootInterval + 1
	s.Enemies = []*Tank{e}
	s.Bullets = nil
	return e
}

func TestEnemyAimInaccuracyBounds(t *testing.T) {
	tests := []struct {
		level int
		want  float64
	}{
		{5, 0.2},
		{20, 0.05},
	}

	for _, tt := range tests {
		s := NewState(testConfig(), nil)
		perfect := HeadingTo(s.Player.X-200, s.Player.Y-100, s.Player.X, s.Player.Y)

		for i := 0; i < 200; i++ {
			e := armedEnemy(s, tt.level)
			if !almostEqual(e.AimInaccuracy, tt.want, 1e-9) {
				t.Fatalf("level %d: inaccuracy = %v, want %v", tt.level, e.AimInaccuracy, tt.want)
			}

			s.updateEnemy(e, 0)

			if len(s.Bullets) != 1 {
				t.Fatalf("level %d: enemy should fire once, got %d bullets", tt.level, len(s.Bullets))
			}
			offset := s.Bullets[0].Angle - perfect
			if math.Abs(offset) > tt.want/2 {
				t.Fatalf("level %d: aim offset %v exceeds ±%v", tt.level, offset, tt.want/2)
			}
			if e.SinceShot != 0 {
				t.Fatalf("shoot timer not reset")
			}
		}
	}
}

func TestEnemyHoldsFireOutOfRange(t *testing.T) {
	s := NewState(testConfig(), nil)
	e := armedEnemy(s, 1)
	e.X, e.Y = s.Player.X+e.DetectionRange+1, s.Player.Y

	s.updateEnemy(e, 0)

	if len(s.Bullets) != 0 {
		t.Fatalf("enemy out of range fired")
	}
	if e.SinceShot <= e.ShootInterval {
		t.Errorf("timer should keep accumulating while the target is out of range")
	}
}

func TestEnemyHoldsFireWithoutPlayer(t *testing.T) {
	s := NewState(testConfig(), nil)
	e := armedEnemy(s, 1)
	s.Player = nil

	s.updateEnemy(e, 0)

	if len(s.Bullets) != 0 {
		t.Fatalf("enemy fired at an absent player")
	}
}

func TestEnemyWander(t *testing.T) {
	s := NewState(testConfig(), nil)
	e := s.Enemies[0]
	e.X, e.Y = 400, 300
	e.Angle = 0
	interval := e.MoveChangeInterval

	s.updateEnemy(e, FrameMillis)
	if !almostEqual(e.Y, 300-e.Speed, 1e-9) || e.Angle != 0 {
		t.Fatalf("enemy should keep its heading before the interval, y=%v angle=%v", e.Y, e.Angle)
	}

	e.SinceMoveChange = interval + 1
	s.updateEnemy(e, 0)
	if e.SinceMoveChange != 0 {
		t.Errorf("move timer not reset")
	}
	if e.MoveChangeInterval < 1500 || e.MoveChangeInterval >= 2500 {
		t.Errorf("new interval %v outside [1500, 2500)", e.MoveChangeInterval)
	}
	if e.Angle < 0 || e.Angle >= 2*math.Pi {
		t.Errorf("new heading %v outside [0, 2π)", e.Angle)
	}
}
