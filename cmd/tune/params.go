package main

import (
	"github.com/pthm-cable/gravwell/config"
)

// ParamSpec defines a single tunable difficulty parameter.
type ParamSpec struct {
	Name  string                        // Column name in the log
	Path  string                        // Config path for display
	Min   float64                       // Lower bound
	Max   float64                       // Upper bound
	Field func(*config.Config) *float64 // Location in a config
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of difficulty parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Spawner
			{Name: "spawn_interval", Path: "spawn.interval", Min: 0.3, Max: 3.0,
				Field: func(c *config.Config) *float64 { return &c.Spawn.Interval }},
			{Name: "seeker_chance", Path: "spawn.seeker_chance", Min: 0.1, Max: 1.0,
				Field: func(c *config.Config) *float64 { return &c.Spawn.SeekerChance }},
			{Name: "wanderer_chance", Path: "spawn.wanderer_chance", Min: 0.1, Max: 1.0,
				Field: func(c *config.Config) *float64 { return &c.Spawn.WandererChance }},
			{Name: "black_hole_chance", Path: "spawn.black_hole_chance", Min: 0.02, Max: 0.5,
				Field: func(c *config.Config) *float64 { return &c.Spawn.BlackHoleChance }},
			// Enemies
			{Name: "seeker_speed", Path: "seeker.move_speed", Min: 120, Max: 420,
				Field: func(c *config.Config) *float64 { return &c.Seeker.MoveSpeed }},
			{Name: "seeker_turn_rate", Path: "seeker.turn_rate", Min: 2, Max: 20,
				Field: func(c *config.Config) *float64 { return &c.Seeker.TurnRate }},
			{Name: "wanderer_speed", Path: "wanderer.move_speed", Min: 80, Max: 320,
				Field: func(c *config.Config) *float64 { return &c.Wanderer.MoveSpeed }},
			// Gravity
			{Name: "black_hole_influence", Path: "black_hole.influence_scale", Min: 4, Max: 16,
				Field: func(c *config.Config) *float64 { return &c.BlackHole.InfluenceScale }},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Extract reads the current parameter values from cfg.
func (pv *ParamVector) Extract(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = *spec.Field(cfg)
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// Apply writes clamped parameter values into cfg.
func (pv *ParamVector) Apply(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		*pv.Specs[i].Field(cfg) = v
	}
}
