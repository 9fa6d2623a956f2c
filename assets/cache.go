// Package assets resolves logical resource paths to shared handles.
package assets

import (
	"fmt"
	"hash/fnv"
)

// Texture is an opaque handle to an externally owned image.
// The simulation only reads its pixel size; the renderer maps ID to GPU data.
type Texture struct {
	ID     uint64
	Path   string
	Width  int
	Height int
}

// Valid reports whether the handle refers to a loaded texture.
func (t Texture) Valid() bool {
	return t.ID != 0
}

// Loader decodes the resource at path. It is called at most once per path.
type Loader func(path string, id uint64) (Texture, error)

// Cache memoizes textures by a hash of their path.
type Cache struct {
	load    Loader
	byHash  map[uint64]Texture
	decodes int
}

// NewCache creates a cache backed by the given loader.
func NewCache(load Loader) *Cache {
	return &Cache{
		load:   load,
		byHash: make(map[uint64]Texture),
	}
}

// HashPath returns the FNV-1a hash used as the cache key and texture ID.
func HashPath(path string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(path))
	sum := h.Sum64()
	if sum == 0 {
		// 0 is reserved for "no texture"
		sum = 1
	}
	return sum
}

// LoadTexture returns the handle for path, decoding it on first use only.
func (c *Cache) LoadTexture(path string) (Texture, error) {
	key := HashPath(path)
	if tex, ok := c.byHash[key]; ok {
		return tex, nil
	}

	tex, err := c.load(path, key)
	if err != nil {
		return Texture{}, fmt.Errorf("loading texture %q: %w", path, err)
	}
	tex.ID = key
	tex.Path = path
	c.byHash[key] = tex
	c.decodes++
	return tex, nil
}

// Each calls fn for every cached texture.
func (c *Cache) Each(fn func(Texture)) {
	for _, tex := range c.byHash {
		fn(tex)
	}
}

// Decodes returns how many times the loader has been invoked.
func (c *Cache) Decodes() int {
	return c.decodes
}

// Len returns the number of cached textures.
func (c *Cache) Len() int {
	return len(c.byHash)
}
