package game

import "testing"

func TestDifficultyFor(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		level         int
		speed         float64
		shootInterval float64
		inaccuracy    float64
	}{
		{1, 1.1, 2900, 0.28},
		{5, 1.5, 2500, 0.2},
		{20, 3, 1000, 0.05},
		{40, 5, 800, 0.05},
	}

	for _, tt := range tests {
		d := DifficultyFor(tt.level, cfg)
		if !almostEqual(d.Speed, tt.speed, 1e-9) {
			t.Errorf("level %d: speed = %v, want %v", tt.level, d.Speed, tt.speed)
		}
		if !almostEqual(d.ShootInterval, tt.shootInterval, 1e-9) {
			t.Errorf("level %d: shoot interval = %v, want %v", tt.level, d.ShootInterval, tt.shootInterval)
		}
		if !almostEqual(d.AimInaccuracy, tt.inaccuracy, 1e-9) {
			t.Errorf("level %d: inaccuracy = %v, want %v", tt.level, d.AimInaccuracy, tt.inaccuracy)
		}
	}
}

func TestWaveSize(t *testing.T) {
	for level, want := range map[int]int{1: 4, 2: 6, 3: 8, 10: 22} {
		if got := WaveSize(level); got != want {
			t.Errorf("WaveSize(%d) = %d, want %d", level, got, want)
		}
	}
}
