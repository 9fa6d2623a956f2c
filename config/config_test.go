package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("defaults should load: %v", err)
	}

	if cfg.Wanderer.SubSteps != 6 {
		t.Errorf("expected 6 wanderer sub-steps, got %d", cfg.Wanderer.SubSteps)
	}
	if cfg.Spawn.SeekerChance != 0.8 || cfg.Spawn.WandererChance != 0.6 || cfg.Spawn.BlackHoleChance != 0.2 {
		t.Errorf("unexpected spawn chances: %+v", cfg.Spawn)
	}
	if cfg.Derived.HalfWidth != cfg.Field.Width/2 {
		t.Errorf("derived half width not computed")
	}
	if cfg.Derived.MinDistanceSq != cfg.Spawn.MinDistance*cfg.Spawn.MinDistance {
		t.Errorf("derived min distance squared not computed")
	}
	if len(cfg.Assets.Sounds.Explosion) == 0 {
		t.Error("expected explosion clips in defaults")
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := []byte("fire:\n  interval: 0.25\nfield:\n  width: 1000\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("overlay should load: %v", err)
	}
	if cfg.Fire.Interval != 0.25 {
		t.Errorf("expected overridden interval 0.25, got %v", cfg.Fire.Interval)
	}
	if cfg.Field.Width != 1000 || cfg.Derived.HalfWidth != 500 {
		t.Errorf("expected width 1000 / half 500, got %v / %v", cfg.Field.Width, cfg.Derived.HalfWidth)
	}
	// Untouched sections keep defaults
	if cfg.Fire.SplitOffset != 0.1 {
		t.Errorf("expected default split offset, got %v", cfg.Fire.SplitOffset)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Physics.DT = 0 }},
		{"negative field", func(c *Config) { c.Field.Height = -1 }},
		{"chance above one", func(c *Config) { c.Spawn.SeekerChance = 1.5 }},
		{"no sub-steps", func(c *Config) { c.Wanderer.SubSteps = 0 }},
		{"no attempts", func(c *Config) { c.Spawn.MaxAttempts = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Spawn.Interval = 2.5

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Spawn.Interval != 2.5 {
		t.Errorf("expected 2.5 after roundtrip, got %v", loaded.Spawn.Interval)
	}
}
