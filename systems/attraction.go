package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwell/components"
)

// AttractionField models a black hole's effect on other moving objects.
//
// Two thresholds apply, checked in order:
//   - kill radius r_o + r_h: the object is consumed
//   - influence radius r_o + InfluenceScale*r_h (capped at MaxInfluence):
//     velocity is blended toward the hole, strongest at the kill edge and
//     falling linearly to zero at the influence edge, then renormalized.
type AttractionField struct {
	InfluenceScale float64
	MaxBlend       float64
	MaxInfluence   float64 // 0 = uncapped
}

// NewAttractionField builds a field whose influence cap is a fraction of the field width.
func NewAttractionField(scale, maxBlend, widthFraction, fieldWidth float64) AttractionField {
	return AttractionField{
		InfluenceScale: scale,
		MaxBlend:       maxBlend,
		MaxInfluence:   widthFraction * fieldWidth,
	}
}

// Radii returns the kill and influence distances for object o around hole.
func (f AttractionField) Radii(o, hole *components.Entity) (kill, influence float64) {
	kill = o.Radius + hole.Radius
	influence = o.Radius + f.InfluenceScale*hole.Radius
	if f.MaxInfluence > 0 && influence > f.MaxInfluence {
		influence = f.MaxInfluence
	}
	if influence < kill {
		influence = kill
	}
	return kill, influence
}

// Falloff returns the velocity blend factor at distance d.
// It is MaxBlend at the kill edge, decreases linearly, and is 0 from the
// influence edge outward.
func (f AttractionField) Falloff(d, kill, influence float64) float64 {
	if d >= influence || influence <= kill {
		return 0
	}
	if d <= kill {
		return f.MaxBlend
	}
	t := (d - kill) / (influence - kill)
	return f.MaxBlend * (1 - t)
}

// UpdateBlackhole applies hole's field to o. It returns true when o is inside
// the kill radius; the caller destroys o (or ends the game for the player).
// Otherwise o's velocity may be bent toward the hole and renormalized.
func (f AttractionField) UpdateBlackhole(hole components.Entity, o *components.Entity) bool {
	delta := r2.Sub(hole.Position, o.Position)
	d := r2.Norm(delta)
	kill, influence := f.Radii(o, &hole)

	if d <= kill {
		return true
	}

	blend := f.Falloff(d, kill, influence)
	if blend <= 0 {
		return false
	}

	toward := SafeNormalize(delta)
	o.Velocity = SafeNormalize(LerpVec(o.Velocity, toward, blend))
	return false
}
