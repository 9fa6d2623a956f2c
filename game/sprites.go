package game

import (
	"fmt"

	"github.com/pthm-cable/gravwell/assets"
	"github.com/pthm-cable/gravwell/config"
)

// Sprites holds the texture handle of every sprite the simulation draws.
type Sprites struct {
	Player    assets.Texture
	Bullet    assets.Texture
	Seeker    assets.Texture
	Wanderer  assets.Texture
	BlackHole assets.Texture
	Particle  assets.Texture
}

// LoadSprites resolves every configured sprite through the cache.
func LoadSprites(cache *assets.Cache, cfg config.SpritesConfig) (Sprites, error) {
	var s Sprites
	entries := []struct {
		name string
		sc   config.SpriteConfig
		dst  *assets.Texture
	}{
		{"player", cfg.Player, &s.Player},
		{"bullet", cfg.Bullet, &s.Bullet},
		{"seeker", cfg.Seeker, &s.Seeker},
		{"wanderer", cfg.Wanderer, &s.Wanderer},
		{"black_hole", cfg.BlackHole, &s.BlackHole},
		{"particle", cfg.Particle, &s.Particle},
	}
	for _, e := range entries {
		tex, err := cache.LoadTexture(e.sc.Path)
		if err != nil {
			return Sprites{}, fmt.Errorf("sprite %s: %w", e.name, err)
		}
		*e.dst = tex
	}
	return s, nil
}

// FallbackSizes maps each sprite path to its configured size, for loaders
// that run without image files.
func FallbackSizes(cfg config.SpritesConfig) map[string]assets.Size {
	out := make(map[string]assets.Size)
	for _, sc := range []config.SpriteConfig{cfg.Player, cfg.Bullet, cfg.Seeker, cfg.Wanderer, cfg.BlackHole, cfg.Particle} {
		out[sc.Path] = assets.Size{Width: sc.Width, Height: sc.Height}
	}
	return out
}

// sizedSprites builds handles straight from configured sizes, without a cache.
func sizedSprites(cfg config.SpritesConfig) Sprites {
	tex := func(sc config.SpriteConfig) assets.Texture {
		return assets.Texture{ID: assets.HashPath(sc.Path), Path: sc.Path, Width: sc.Width, Height: sc.Height}
	}
	return Sprites{
		Player:    tex(cfg.Player),
		Bullet:    tex(cfg.Bullet),
		Seeker:    tex(cfg.Seeker),
		Wanderer:  tex(cfg.Wanderer),
		BlackHole: tex(cfg.BlackHole),
		Particle:  tex(cfg.Particle),
	}
}
