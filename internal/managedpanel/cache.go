package managedpanel

import "sync"

// Cache is a shared, path-keyed store of previously loaded panels. Panel
// reads it on NewPanelInstant/NewPanelDelayed (for an immediate placeholder)
// and writes it on UpdatePanel, Apply (every arriving completion) and
// MutateCurrent; loaders themselves never touch it. Access is serialized by
// an internal mutex, so the cache is safe to share across goroutines.
type Cache[P any] struct {
	mu sync.Mutex
	m  map[string]P
}

// NewCache returns an empty cache.
func NewCache[P any]() *Cache[P] {
	return &Cache[P]{m: make(map[string]P)}
}

// Get returns the cached panel for path, if any.
func (c *Cache[P]) Get(path string) (P, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[path]
	return v, ok
}

// Put stores the panel for path, overwriting any previous entry.
func (c *Cache[P]) Put(path string, v P) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[path] = v
}

// Invalidate removes the cached entry for path, if any.
func (c *Cache[P]) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, path)
}
