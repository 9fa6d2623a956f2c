// Package config provides configuration loading for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Bullet    BulletConfig    `yaml:"bullet"`
	Seeker    SeekerConfig    `yaml:"seeker"`
	Wanderer  WandererConfig  `yaml:"wanderer"`
	BlackHole BlackHoleConfig `yaml:"black_hole"`
	Fire      FireConfig      `yaml:"fire"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Particles ParticlesConfig `yaml:"particles"`
	GameOver  GameOverConfig  `yaml:"game_over"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Assets    AssetsConfig    `yaml:"assets"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// FieldConfig holds play-field dimensions. The field is centred on the origin.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig holds timestep parameters.
type PhysicsConfig struct {
	DT               float64 `yaml:"dt"`
	MaxStepsPerFrame int     `yaml:"max_steps_per_frame"` // Cap on catch-up ticks per rendered frame
}

// PlayerConfig holds player movement parameters.
type PlayerConfig struct {
	MoveSpeed float64 `yaml:"move_speed"` // Units per second at full input
	LerpRate  float64 `yaml:"lerp_rate"`  // Velocity smoothing, multiplied by dt
}

// BulletConfig holds projectile parameters.
type BulletConfig struct {
	MoveSpeed     float64 `yaml:"move_speed"`
	Capacity      int     `yaml:"capacity"`       // Pool slot cap (0 = unbounded)
	ExitParticles int     `yaml:"exit_particles"` // Burst size when leaving the field
}

// SeekerConfig holds direct-homer parameters.
type SeekerConfig struct {
	MoveSpeed float64 `yaml:"move_speed"`
	TurnRate  float64 `yaml:"turn_rate"` // Blend toward player, multiplied by dt
	Capacity  int     `yaml:"capacity"`
}

// WandererConfig holds jittered-homer parameters.
type WandererConfig struct {
	MoveSpeed float64 `yaml:"move_speed"`
	SubSteps  int     `yaml:"sub_steps"`
	Jitter    float64 `yaml:"jitter"` // Max heading change per sub-step, in units of pi
	Capacity  int     `yaml:"capacity"`
}

// BlackHoleConfig holds gravity-well parameters.
type BlackHoleConfig struct {
	Capacity               int     `yaml:"capacity"`
	InfluenceScale         float64 `yaml:"influence_scale"`          // Influence radius = r_o + scale * r_h
	InfluenceWidthFraction float64 `yaml:"influence_width_fraction"` // Influence radius cap as fraction of field width
	MaxBlend               float64 `yaml:"max_blend"`                // Velocity blend toward the hole at the kill edge
	RotationSpeed          float64 `yaml:"rotation_speed"`           // Cosmetic spin, radians per second
}

// FireConfig holds weapon parameters.
type FireConfig struct {
	Interval     float64 `yaml:"interval"`      // Seconds between volleys
	Spread       float64 `yaml:"spread"`        // Random angular spread, in units of pi (+-)
	SplitOffset  float64 `yaml:"split_offset"`  // Angular offset of each barrel, in units of pi
	MuzzleOffset float64 `yaml:"muzzle_offset"` // Spawn distance from player centre, in player radii
}

// SpawnConfig holds enemy spawner parameters.
type SpawnConfig struct {
	Interval        float64 `yaml:"interval"`
	SeekerChance    float64 `yaml:"seeker_chance"`
	WandererChance  float64 `yaml:"wanderer_chance"`
	BlackHoleChance float64 `yaml:"black_hole_chance"`
	Margin          float64 `yaml:"margin"`       // Fraction of the half-extent used for spawn positions
	MinDistance     float64 `yaml:"min_distance"` // Minimum spawn distance from the player
	MaxAttempts     int     `yaml:"max_attempts"` // Rejection sampling cap
}

// ParticlesConfig holds visual-effect particle parameters.
type ParticlesConfig struct {
	Capacity        int     `yaml:"capacity"`
	Damping         float64 `yaml:"damping"`           // Velocity loss per second
	PullGain        float64 `yaml:"pull_gain"`         // Multiplier on field_width / distance
	SwirlGain       float64 `yaml:"swirl_gain"`        // Multiplier on r_h / (120 + 1.2 d)
	SwirlRangeScale float64 `yaml:"swirl_range_scale"` // Swirl applies within scale * r_h
	ExplosionCount  int     `yaml:"explosion_count"`
	ExplosionSpeed  float64 `yaml:"explosion_speed"`
	ExplosionLife   float64 `yaml:"explosion_life"`
	ExplosionScale  float64 `yaml:"explosion_scale"`
}

// GameOverConfig holds death transition parameters.
type GameOverConfig struct {
	Duration      float64 `yaml:"duration"`
	BurstCount    int     `yaml:"burst_count"`
	BurstLife     float64 `yaml:"burst_life"`
	BurstSpeedMax float64 `yaml:"burst_speed_max"` // Fraction of the field's largest dimension per second
}

// ScoringConfig holds kill points per kind.
type ScoringConfig struct {
	Seeker    int `yaml:"seeker"`
	Wanderer  int `yaml:"wanderer"`
	BlackHole int `yaml:"black_hole"`
}

// SpriteConfig names a texture and its nominal size for headless runs.
type SpriteConfig struct {
	Path   string `yaml:"path"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// SpritesConfig lists every sprite the simulation references.
type SpritesConfig struct {
	Player    SpriteConfig `yaml:"player"`
	Bullet    SpriteConfig `yaml:"bullet"`
	Seeker    SpriteConfig `yaml:"seeker"`
	Wanderer  SpriteConfig `yaml:"wanderer"`
	BlackHole SpriteConfig `yaml:"black_hole"`
	Particle  SpriteConfig `yaml:"particle"`
}

// SoundsConfig lists clip paths per audio event.
type SoundsConfig struct {
	Shoot     []string `yaml:"shoot"`
	Explosion []string `yaml:"explosion"`
	Spawn     []string `yaml:"spawn"`
	Volume    float64  `yaml:"volume"`
}

// AssetsConfig holds resource locations.
type AssetsConfig struct {
	Root    string        `yaml:"root"`
	Sprites SpritesConfig `yaml:"sprites"`
	Sounds  SoundsConfig  `yaml:"sounds"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	HalfWidth     float64
	HalfHeight    float64
	MaxDimension  float64 // max(field width, field height)
	MinDistanceSq float64
	ScreenW32     float32
	ScreenH32     float32
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// Default returns the embedded defaults. Panics if they are invalid.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: invalid embedded defaults: %v", err))
	}
	return cfg
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks values the simulation cannot run without.
func (c *Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"physics.dt", c.Physics.DT},
		{"field.width", c.Field.Width},
		{"field.height", c.Field.Height},
		{"fire.interval", c.Fire.Interval},
		{"spawn.interval", c.Spawn.Interval},
		{"game_over.duration", c.GameOver.Duration},
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, p.name, p.v)
		}
	}

	chances := []struct {
		name string
		v    float64
	}{
		{"spawn.seeker_chance", c.Spawn.SeekerChance},
		{"spawn.wanderer_chance", c.Spawn.WandererChance},
		{"spawn.black_hole_chance", c.Spawn.BlackHoleChance},
	}
	for _, p := range chances {
		if p.v < 0 || p.v > 1 || math.IsNaN(p.v) {
			return fmt.Errorf("%w: %s must be in [0,1], got %v", ErrInvalid, p.name, p.v)
		}
	}

	if c.Wanderer.SubSteps < 1 {
		return fmt.Errorf("%w: wanderer.sub_steps must be >= 1, got %d", ErrInvalid, c.Wanderer.SubSteps)
	}
	if c.Spawn.MaxAttempts < 1 {
		return fmt.Errorf("%w: spawn.max_attempts must be >= 1, got %d", ErrInvalid, c.Spawn.MaxAttempts)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.HalfWidth = c.Field.Width / 2
	c.Derived.HalfHeight = c.Field.Height / 2
	c.Derived.MaxDimension = math.Max(c.Field.Width, c.Field.Height)
	c.Derived.MinDistanceSq = c.Spawn.MinDistance * c.Spawn.MinDistance
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	if c.Physics.MaxStepsPerFrame < 1 {
		c.Physics.MaxStepsPerFrame = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
