// Package texture loads texture images from disk and caches them by path.
package texture

import (
	"image"
	"os"
	"sync"

	"donut-viewer/internal/loaderr"
)

// Resolver resolves a texture name to a decoded image.
type Resolver interface {
	Resolve(texName string) (*image.NRGBA, error)
}

// Cache is a concurrency-safe texture cache. Failed loads are cached too.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	img *image.NRGBA
	err error
}

// NewCache creates a texture cache. index may be nil, in which case names
// are treated as paths.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Resolve loads and caches a texture. An existing file path is used as-is;
// otherwise the name is looked up in the index.
func (c *Cache) Resolve(texName string) (*image.NRGBA, error) {
	path, err := c.resolvePath(texName)
	if err != nil {
		return nil, err
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img, entry.err
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, err := LoadTexture(path)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.img, entry.err
	}
	c.items[path] = &cacheEntry{img: img, err: err}
	return img, err
}

func (c *Cache) resolvePath(texName string) (string, error) {
	if info, err := os.Stat(texName); err == nil && !info.IsDir() {
		return texName, nil
	}
	if c.index != nil {
		if path, ok := c.index.ResolvePath(texName); ok {
			return path, nil
		}
	}
	return "", loaderr.IO("texture", "resolve", texName, os.ErrNotExist)
}
