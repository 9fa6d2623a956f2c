package assets

import (
	"errors"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTextureMemoized(t *testing.T) {
	calls := 0
	c := NewCache(func(path string, id uint64) (Texture, error) {
		calls++
		return Texture{Width: 32, Height: 16}, nil
	})

	a, err := c.LoadTexture("art/Seeker.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := c.LoadTexture("art/Seeker.png")

	if calls != 1 {
		t.Errorf("expected a single decode, got %d", calls)
	}
	if a != b {
		t.Errorf("repeated loads should return the same handle: %+v vs %+v", a, b)
	}
	if a.ID != HashPath("art/Seeker.png") {
		t.Errorf("handle ID should be the path hash")
	}
	if !a.Valid() {
		t.Error("loaded texture should be valid")
	}

	c.LoadTexture("art/Wanderer.png")
	if c.Len() != 2 || c.Decodes() != 2 {
		t.Errorf("expected 2 cached textures and 2 decodes, got %d/%d", c.Len(), c.Decodes())
	}
}

func TestLoadTextureErrorNotCached(t *testing.T) {
	c := NewCache(StaticLoader(map[string]Size{}))

	_, err := c.LoadTexture("missing.png")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected wrapped ErrNotExist, got %v", err)
	}
	if c.Len() != 0 {
		t.Error("failed loads must not be cached")
	}
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	f, err := os.Create(filepath.Join(dir, "Player.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	load := FileLoader(dir, map[string]Size{"Bullet.png": {Width: 8, Height: 8}})

	tex, err := load("Player.png", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tex.Width != 40 || tex.Height != 20 {
		t.Errorf("expected 40x20, got %dx%d", tex.Width, tex.Height)
	}

	tex, err = load("Bullet.png", 2)
	if err != nil {
		t.Fatalf("fallback should apply: %v", err)
	}
	if tex.Width != 8 {
		t.Errorf("expected fallback width 8, got %d", tex.Width)
	}

	if _, err := load("Nope.png", 3); err == nil {
		t.Error("missing file without fallback should fail")
	}
}
