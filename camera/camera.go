// Package camera provides a 2D camera that follows the player across the play-field.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Camera controls the viewport into the play-field.
// The field is centred on the origin; the camera never shows space beyond it.
type Camera struct {
	// Center is the camera centre in world coordinates
	Center r2.Vec

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Field dimensions
	FieldW, FieldH float64

	// Zoom constraints
	MinZoom, MaxZoom float64

	// FollowRate is how quickly Follow closes the gap to its target, per second
	FollowRate float64
}

// New creates a camera centred on the field with 1:1 zoom.
func New(viewportW, viewportH, fieldW, fieldH float64) *Camera {
	c := &Camera{
		Zoom:       1.0,
		ViewportW:  viewportW,
		ViewportH:  viewportH,
		FieldW:     fieldW,
		FieldH:     fieldH,
		MaxZoom:    4.0,
		FollowRate: 6.0,
	}
	c.MinZoom = c.fitZoom()
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
	return c
}

// fitZoom is the smallest zoom at which the view still fits inside the field.
func (c *Camera) fitZoom() float64 {
	return math.Max(c.ViewportW/c.FieldW, c.ViewportH/c.FieldH)
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(p r2.Vec) (sx, sy float32) {
	d := r2.Sub(p, c.Center)
	return float32(c.ViewportW/2 + d.X*c.Zoom), float32(c.ViewportH/2 + d.Y*c.Zoom)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) r2.Vec {
	return r2.Vec{
		X: c.Center.X + (float64(sx)-c.ViewportW/2)/c.Zoom,
		Y: c.Center.Y + (float64(sy)-c.ViewportH/2)/c.Zoom,
	}
}

// IsVisible returns true if a circle at p with the given radius could be
// on screen (conservative check for culling).
func (c *Camera) IsVisible(p r2.Vec, radius float64) bool {
	d := r2.Sub(p, c.Center)
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return math.Abs(d.X) <= halfW && math.Abs(d.Y) <= halfH
}

// Follow eases the camera toward target and keeps the view inside the field.
func (c *Camera) Follow(target r2.Vec, dt float64) {
	t := math.Min(1, c.FollowRate*dt)
	c.Center = r2.Add(c.Center, r2.Scale(t, r2.Sub(target, c.Center)))
	c.clampToField()
}

// clampToField limits the centre so the visible area stays within the field.
// An axis where the view is larger than the field is centred.
func (c *Camera) clampToField() {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	c.Center.X = clampAxis(c.Center.X, c.FieldW/2-halfW)
	c.Center.Y = clampAxis(c.Center.Y, c.FieldH/2-halfH)
}

func clampAxis(v, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return math.Max(-limit, math.Min(limit, v))
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float64) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = c.fitZoom()
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
	c.clampToField()
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	c.Center.X += dx / c.Zoom
	c.Center.Y += dy / c.Zoom
	c.clampToField()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, zoom))
	c.clampToField()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the field centre at 1:1 zoom.
func (c *Camera) Reset() {
	c.Center = r2.Vec{}
	c.Zoom = math.Max(1.0, c.MinZoom)
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (min, max r2.Vec) {
	half := r2.Vec{X: c.ViewportW / (2 * c.Zoom), Y: c.ViewportH / (2 * c.Zoom)}
	return r2.Sub(c.Center, half), r2.Add(c.Center, half)
}
