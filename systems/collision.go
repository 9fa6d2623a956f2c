package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwell/components"
	"github.com/pthm-cable/gravwell/pool"
)

// EntityPool is the pool type shared by every pooled kind.
type EntityPool = pool.Pool[components.Entity]

// Collides reports whether two circles touch or overlap.
// Entities still fading in never collide.
func Collides(a, b *components.Entity) bool {
	if a.FadingIn() || b.FadingIn() {
		return false
	}
	r := a.Radius + b.Radius
	return r2.Norm2(r2.Sub(a.Position, b.Position)) <= r*r
}

// Target is one collision partner class for bullets, tested in slice order.
type Target struct {
	Kind components.Kind
	Pool *EntityPool
}

// BulletHit is called for the first target a bullet touches.
// The callback is expected to destroy both; the resolver moves on to the next bullet.
type BulletHit func(bullet int, kind components.Kind, target int)

// ResolveBullets tests every bullet against targets in order (seekers, then
// wanderers, then black holes for the world). The first match per bullet wins.
// Returns the number of hits.
func ResolveBullets(bullets *EntityPool, targets []Target, onHit BulletHit) int {
	hits := 0
	bullets.ForEachActive(func(bi int, b *components.Entity) {
		if b.FadingIn() {
			return
		}
		for _, tgt := range targets {
			matched := -1
			tgt.Pool.Range(func(ti int, e *components.Entity) bool {
				if Collides(b, e) {
					matched = ti
					return false
				}
				return true
			})
			if matched >= 0 {
				hits++
				onHit(bi, tgt.Kind, matched)
				return
			}
		}
	})
	return hits
}

// FindPlayerHit returns the first target entity touching the player.
func FindPlayerHit(player *components.Entity, targets []Target) (components.Kind, int, bool) {
	for _, tgt := range targets {
		hit := -1
		tgt.Pool.Range(func(i int, e *components.Entity) bool {
			if Collides(player, e) {
				hit = i
				return false
			}
			return true
		})
		if hit >= 0 {
			return tgt.Kind, hit, true
		}
	}
	return 0, -1, false
}
