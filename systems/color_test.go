package systems

import (
	"math"
	"testing"
)

func TestHSV(t *testing.T) {
	tests := []struct {
		name    string
		hue     float64
		r, g, b float64
	}{
		{"red", 0, 1, 0, 0},
		{"green", 120, 0, 1, 0},
		{"blue", 240, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := HSV(tt.hue, 1, 1)
			if math.Abs(c.R-tt.r) > 1e-9 || math.Abs(c.G-tt.g) > 1e-9 || math.Abs(c.B-tt.b) > 1e-9 {
				t.Errorf("HSV(%v) = %+v", tt.hue, c)
			}
			if c.A != 1 {
				t.Errorf("alpha = %v, want 1", c.A)
			}
		})
	}
}

func TestHuePairEndpoints(t *testing.T) {
	// hue1 = 0.5*360 = 180, hue2 = 180 + 0.5*120 = 240
	rng := &seqRand{vals: []float64{0.5, 0.5}}
	tint := HuePair(rng, 1, 1)

	start, end := tint(0), tint(1)
	want0, want1 := HSV(180, 1, 1), HSV(240, 1, 1)
	if math.Abs(start.G-want0.G) > 1e-9 || math.Abs(start.B-want0.B) > 1e-9 {
		t.Errorf("tint(0) = %+v, want %+v", start, want0)
	}
	if math.Abs(end.B-want1.B) > 1e-9 || math.Abs(end.G-want1.G) > 1e-9 {
		t.Errorf("tint(1) = %+v, want %+v", end, want1)
	}

	mid := tint(0.5)
	for _, v := range []float64{mid.R, mid.G, mid.B} {
		if v < 0 || v > 1 {
			t.Errorf("blended channel out of range: %+v", mid)
		}
	}
}
