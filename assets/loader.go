package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Size is a sprite's nominal pixel size.
type Size struct {
	Width, Height int
}

// FileLoader returns a Loader that reads only the image header under root.
// Used when no GPU is available: the simulation needs sprite sizes, not pixels.
// Missing files fall back to the size registered in fallback, if any.
func FileLoader(root string, fallback map[string]Size) Loader {
	return func(path string, _ uint64) (Texture, error) {
		f, err := os.Open(filepath.Join(root, path))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				if sz, ok := fallback[path]; ok {
					return Texture{Width: sz.Width, Height: sz.Height}, nil
				}
			}
			return Texture{}, err
		}
		defer f.Close()

		cfg, _, err := image.DecodeConfig(f)
		if err != nil {
			return Texture{}, fmt.Errorf("decoding header: %w", err)
		}
		return Texture{Width: cfg.Width, Height: cfg.Height}, nil
	}
}

// StaticLoader serves sizes from a fixed table.
func StaticLoader(sizes map[string]Size) Loader {
	return func(path string, _ uint64) (Texture, error) {
		sz, ok := sizes[path]
		if !ok {
			return Texture{}, fs.ErrNotExist
		}
		return Texture{Width: sz.Width, Height: sz.Height}, nil
	}
}
