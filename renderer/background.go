package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwell/camera"
)

// BackgroundRenderer draws the play-field grid and its border.
type BackgroundRenderer struct {
	fieldW, fieldH float64
	spacing        float64
	gridColor      rl.Color
	borderColor    rl.Color
}

// NewBackgroundRenderer creates a grid with lines every spacing world units.
func NewBackgroundRenderer(fieldW, fieldH, spacing float64) *BackgroundRenderer {
	if spacing <= 0 {
		spacing = 80
	}
	return &BackgroundRenderer{
		fieldW:      fieldW,
		fieldH:      fieldH,
		spacing:     spacing,
		gridColor:   rl.Color{R: 30, G: 30, B: 60, A: 255},
		borderColor: rl.Color{R: 90, G: 90, B: 160, A: 255},
	}
}

// Draw renders the visible part of the grid.
func (b *BackgroundRenderer) Draw(cam *camera.Camera) {
	hw, hh := b.fieldW/2, b.fieldH/2
	lo, hi := cam.VisibleWorldBounds()

	for x := -hw; x <= hw; x += b.spacing {
		if x < lo.X || x > hi.X {
			continue
		}
		b.line(cam, r2.Vec{X: x, Y: -hh}, r2.Vec{X: x, Y: hh}, b.gridColor)
	}
	for y := -hh; y <= hh; y += b.spacing {
		if y < lo.Y || y > hi.Y {
			continue
		}
		b.line(cam, r2.Vec{X: -hw, Y: y}, r2.Vec{X: hw, Y: y}, b.gridColor)
	}

	x0, y0 := cam.WorldToScreen(r2.Vec{X: -hw, Y: -hh})
	x1, y1 := cam.WorldToScreen(r2.Vec{X: hw, Y: hh})
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, 2, b.borderColor)
}

func (b *BackgroundRenderer) line(cam *camera.Camera, from, to r2.Vec, col rl.Color) {
	x0, y0 := cam.WorldToScreen(from)
	x1, y1 := cam.WorldToScreen(to)
	rl.DrawLineV(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, col)
}
