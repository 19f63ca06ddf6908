package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
)

// FrameMillis is the duration of one frame-equivalent. Speeds and turn
// rates are expressed per frame-equivalent and scaled by dt/FrameMillis.
const FrameMillis = 1000.0 / 60.0

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds game configuration constants
type Config struct {
	// ScreenWidth is the playfield width in units
	ScreenWidth float64 `json:"screen_width"`

	// ScreenHeight is the playfield height in units
	ScreenHeight float64 `json:"screen_height"`

	// Seed for the round RNG. Zero picks a time-based seed.
	Seed int64 `json:"seed"`

	PlayerColor color.NRGBA `json:"-"`
	EnemyColor  color.NRGBA `json:"-"`

	// PlayerSpeed is in units per frame-equivalent
	PlayerSpeed float64 `json:"player_speed"`

	// PlayerTurnRate is the hull turn in radians per frame-equivalent
	PlayerTurnRate float64 `json:"player_turn_rate"`

	// PlayerShootCooldown is the minimum time between player shots (ms)
	PlayerShootCooldown float64 `json:"player_shoot_cooldown"`

	// BulletSpeed is in units per frame-equivalent
	BulletSpeed float64 `json:"bullet_speed"`

	// MuzzleOffset is the distance from the tank centre where bullets spawn
	MuzzleOffset float64 `json:"muzzle_offset"`

	// ParticleCount is the number of particles per explosion
	ParticleCount int `json:"particle_count"`

	// FixedParticleLifespan switches particles to a constant lifespan of
	// ParticleLifespan frame-equivalents instead of a random 500-1000 ms one.
	FixedParticleLifespan bool    `json:"fixed_particle_lifespan"`
	ParticleLifespan      float64 `json:"particle_lifespan"`

	EnemyBaseSpeed         float64 `json:"enemy_base_speed"`
	EnemySpeedPerLevel     float64 `json:"enemy_speed_per_level"`
	EnemyBaseShootInterval float64 `json:"enemy_base_shoot_interval"`
	EnemyShootIntervalStep float64 `json:"enemy_shoot_interval_step"`
	EnemyMinShootInterval  float64 `json:"enemy_min_shoot_interval"`
	EnemyAimInaccuracy     float64 `json:"enemy_aim_inaccuracy"`
	EnemyInaccuracyStep    float64 `json:"enemy_inaccuracy_step"`
	EnemyMinInaccuracy     float64 `json:"enemy_min_inaccuracy"`
	EnemyDetectionRange    float64 `json:"enemy_detection_range"`

	// EnemySpawnMargin is how far outside the left/right edge enemies appear
	EnemySpawnMargin float64 `json:"enemy_spawn_margin"`

	// KillScore is awarded per destroyed enemy
	KillScore int `json:"kill_score"`

	ShakeDuration    float64 `json:"shake_duration"`
	ShakeMagnitude   float64 `json:"shake_magnitude"`
	FireworkInterval float64 `json:"firework_interval"`

	// MaxFrameDelta caps the delta the loop hands to a tick (ms)
	MaxFrameDelta float64 `json:"max_frame_delta"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:            800,
		ScreenHeight:           600,
		PlayerColor:            color.NRGBA{R: 0x5c, G: 0xb8, B: 0x5c, A: 0xff},
		EnemyColor:             color.NRGBA{R: 0xd9, G: 0x53, B: 0x4f, A: 0xff},
		PlayerSpeed:            2.5,
		PlayerTurnRate:         0.04,
		PlayerShootCooldown:    250,
		BulletSpeed:            7,
		MuzzleOffset:           30,
		ParticleCount:          20,
		ParticleLifespan:       50,
		EnemyBaseSpeed:         1,
		EnemySpeedPerLevel:     0.1,
		EnemyBaseShootInterval: 3000,
		EnemyShootIntervalStep: 100,
		EnemyMinShootInterval:  800,
		EnemyAimInaccuracy:     0.3,
		EnemyInaccuracyStep:    0.02,
		EnemyMinInaccuracy:     0.05,
		EnemyDetectionRange:    400,
		EnemySpawnMargin:       30,
		KillScore:              10,
		ShakeDuration:          500,
		ShakeMagnitude:         10,
		FireworkInterval:       300,
		MaxFrameDelta:          100,
	}
}

// Validate reports settings the simulation cannot run with.
func (c Config) Validate() error {
	switch {
	case c.ScreenWidth <= 0 || c.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen size %.0fx%.0f", ErrInvalidConfig, c.ScreenWidth, c.ScreenHeight)
	case c.PlayerSpeed <= 0 || c.BulletSpeed <= 0 || c.EnemyBaseSpeed < 0:
		return fmt.Errorf("%w: speeds must be positive", ErrInvalidConfig)
	case c.PlayerShootCooldown < 0:
		return fmt.Errorf("%w: negative shoot cooldown", ErrInvalidConfig)
	case c.ParticleCount < 0:
		return fmt.Errorf("%w: negative particle count", ErrInvalidConfig)
	case c.FixedParticleLifespan && c.ParticleLifespan <= 0:
		return fmt.Errorf("%w: fixed particle lifespan must be positive", ErrInvalidConfig)
	case c.EnemyMinShootInterval <= 0 || c.EnemyMinInaccuracy <= 0:
		return fmt.Errorf("%w: difficulty floors must be positive", ErrInvalidConfig)
	case c.FireworkInterval <= 0:
		return fmt.Errorf("%w: firework interval must be positive", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads a JSON file and overlays it on DefaultConfig. Fields
// missing from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

