package game

import "math"

// Difficulty holds the per-level enemy parameters
type Difficulty struct {
	Speed         float64
	ShootInterval float64
	AimInaccuracy float64
}

// DifficultyFor derives enemy parameters for a level. Shoot interval and
// inaccuracy are clamped to their floors so high levels never go negative.
func DifficultyFor(level int, cfg Config) Difficulty {
	l := float64(level)
	return Difficulty{
		Speed:         cfg.EnemyBaseSpeed + cfg.EnemySpeedPerLevel*l,
		ShootInterval: math.Max(cfg.EnemyMinShootInterval, cfg.EnemyBaseShootInterval-cfg.EnemyShootIntervalStep*l),
		AimInaccuracy: math.Max(cfg.EnemyMinInaccuracy, cfg.EnemyAimInaccuracy-cfg.EnemyInaccuracyStep*l),
	}
}

// WaveSize is the number of enemies spawned for a level
func WaveSize(level int) int {
	return 2 + 2*level
}
