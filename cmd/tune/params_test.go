package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/gravwell/config"
)

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	raw := pv.Clamp(pv.Extract(cfg))
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(raw[i]-back[i]) > 1e-9 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestParamVectorApplyClamps(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	values := make([]float64, pv.Dim())
	for i := range values {
		values[i] = 1e6
	}
	pv.Apply(cfg, values)

	got := pv.Extract(cfg)
	for i, spec := range pv.Specs {
		if got[i] != spec.Max {
			t.Errorf("%s = %v, want clamped to %v", spec.Path, got[i], spec.Max)
		}
	}
}

func TestComputeFitness(t *testing.T) {
	tests := []struct {
		name     string
		survival float64
		kills    float64
		want     float64
	}{
		{"on target", 60, 40, -engagementWeight},
		{"twice too long", 120, 40, math.Ln2*math.Ln2 - engagementWeight},
		{"half too short", 30, 40, math.Ln2*math.Ln2 - engagementWeight},
		{"no kills", 60, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeFitness(tt.survival, 60, tt.kills, 40)
			if math.Abs(got-tt.want) > 1e-3 {
				t.Errorf("computeFitness = %v, want %v", got, tt.want)
			}
		})
	}

	if !math.IsInf(computeFitness(math.NaN(), 60, 0, 40), 1) {
		t.Error("no runs should score +Inf")
	}
}
