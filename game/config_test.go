package game

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.ScreenWidth = 0 }},
		{"negative height", func(c *Config) { c.ScreenHeight = -1 }},
		{"zero bullet speed", func(c *Config) { c.BulletSpeed = 0 }},
		{"negative particles", func(c *Config) { c.ParticleCount = -1 }},
		{"fixed lifespan zero", func(c *Config) { c.FixedParticleLifespan = true; c.ParticleLifespan = 0 }},
		{"zero firework interval", func(c *Config) { c.FireworkInterval = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tankwar.json")
	data := []byte(`{"screen_width": 1024, "seed": 42, "particle_count": 8}`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ScreenWidth != 1024 || cfg.Seed != 42 || cfg.ParticleCount != 8 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.ScreenHeight != 600 || cfg.BulletSpeed != 7 {
		t.Errorf("defaults lost: height=%v bullet=%v", cfg.ScreenHeight, cfg.BulletSpeed)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: got %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"screen_width": 0}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("invalid file: got %v", err)
	}
}
