// Package renderer draws simulation output with raylib.
package renderer

import (
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gravwell/assets"
	"github.com/pthm-cable/gravwell/camera"
	"github.com/pthm-cable/gravwell/components"
)

// SpriteRenderer uploads sprites to the GPU and draws command lists through
// the camera. Textures are keyed by asset ID.
type SpriteRenderer struct {
	root     string
	fallback map[string]assets.Size
	textures map[uint64]rl.Texture2D
	cam      *camera.Camera

	drawn int
}

// NewSpriteRenderer creates a renderer reading images under root. Missing
// files with an entry in fallback become white placeholders of that size.
func NewSpriteRenderer(root string, fallback map[string]assets.Size, cam *camera.Camera) *SpriteRenderer {
	return &SpriteRenderer{
		root:     root,
		fallback: fallback,
		textures: make(map[uint64]rl.Texture2D),
		cam:      cam,
	}
}

// Loader returns an assets.Loader that uploads each image as it is first
// requested. Requires an open raylib window.
func (s *SpriteRenderer) Loader() assets.Loader {
	return func(path string, id uint64) (assets.Texture, error) {
		full := filepath.Join(s.root, path)

		var tex rl.Texture2D
		switch {
		case rl.FileExists(full):
			tex = rl.LoadTexture(full)
		case s.hasFallback(path):
			sz := s.fallback[path]
			img := rl.GenImageColor(sz.Width, sz.Height, rl.White)
			tex = rl.LoadTextureFromImage(img)
			rl.UnloadImage(img)
			slog.Warn("sprite missing, using placeholder", "path", full, "width", sz.Width, "height", sz.Height)
		default:
			return assets.Texture{}, fmt.Errorf("sprite %s: %w", full, fs.ErrNotExist)
		}
		if tex.ID == 0 {
			return assets.Texture{}, fmt.Errorf("sprite %s: upload failed", full)
		}

		s.textures[id] = tex
		return assets.Texture{Width: int(tex.Width), Height: int(tex.Height)}, nil
	}
}

func (s *SpriteRenderer) hasFallback(path string) bool {
	_, ok := s.fallback[path]
	return ok
}

// Present draws cmds in order, switching blend mode as needed.
// Commands outside the view are culled.
func (s *SpriteRenderer) Present(cmds []components.DrawCommand) {
	s.drawn = 0
	blend := components.BlendAlpha
	for i := range cmds {
		c := &cmds[i]
		tex, ok := s.textures[c.Texture.ID]
		if !ok {
			continue
		}

		w := float64(tex.Width) * c.Scale.X
		h := float64(tex.Height) * c.Scale.Y
		if !s.cam.IsVisible(c.Position, math.Max(w, h)/2) {
			continue
		}

		if c.Blend != blend {
			if blend == components.BlendAdditive {
				rl.EndBlendMode()
			}
			if c.Blend == components.BlendAdditive {
				rl.BeginBlendMode(rl.BlendAdditive)
			}
			blend = c.Blend
		}

		sx, sy := s.cam.WorldToScreen(c.Position)
		zoom := float32(s.cam.Zoom)
		dw, dh := float32(w)*zoom, float32(h)*zoom
		r, g, b, a := c.Color.RGBA8()

		rl.DrawTexturePro(tex,
			rl.Rectangle{Width: float32(tex.Width), Height: float32(tex.Height)},
			rl.Rectangle{X: sx, Y: sy, Width: dw, Height: dh},
			rl.Vector2{X: dw / 2, Y: dh / 2},
			float32(c.Rotation*180/math.Pi),
			rl.NewColor(r, g, b, a),
		)
		s.drawn++
	}
	if blend == components.BlendAdditive {
		rl.EndBlendMode()
	}
}

// Drawn returns the number of commands drawn by the last Present.
func (s *SpriteRenderer) Drawn() int { return s.drawn }

// Unload frees every GPU texture.
func (s *SpriteRenderer) Unload() {
	for id, tex := range s.textures {
		rl.UnloadTexture(tex)
		delete(s.textures, id)
	}
}
