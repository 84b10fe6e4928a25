package cache

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/jonwraymond/mealscout/recipe"
)

// MemoryCache is the in-process DetailCache. It grows monotonically for
// the life of its owner.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*recipe.Detail

	hits   atomic.Int64
	misses atomic.Int64
}

// Stats is a point-in-time view of cache usage.
type Stats struct {
	Entries  int   `json:"entries"`
	Negative int   `json:"negative"`
	Hits     int64 `json:"hits"`
	Misses   int64 `json:"misses"`
}

// NewMemoryCache creates an empty in-memory detail cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*recipe.Detail),
	}
}

// Lookup returns the cached detail for name. (nil, true) is a negative entry.
func (c *MemoryCache) Lookup(_ context.Context, name string) (*recipe.Detail, bool) {
	c.mu.RLock()
	detail, ok := c.entries[name]
	c.mu.RUnlock()

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return detail, ok
}

// Store records detail for name unless name is invalid or already cached.
func (c *MemoryCache) Store(_ context.Context, name string, detail *recipe.Detail) bool {
	if ValidateKey(name) != nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[name]; exists {
		return false
	}
	c.entries[name] = detail
	return true
}

// Len returns the number of cached names.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns current cache statistics.
func (c *MemoryCache) Stats() Stats {
	c.mu.RLock()
	negative := 0
	for _, d := range c.entries {
		if d == nil {
			negative++
		}
	}
	entries := len(c.entries)
	c.mu.RUnlock()

	return Stats{
		Entries:  entries,
		Negative: negative,
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
	}
}

// Ensure MemoryCache implements DetailCache
var _ DetailCache = (*MemoryCache)(nil)
