// Package pagecache holds augmented pages for a limited time.
package pagecache

import (
	"context"
	"sync"
	"time"

	"github.com/dgallion1/deeptoc/internal/augment"
)

// Entry is one cached page. Generation is the settings generation the
// page was built with.
type Entry struct {
	Result     *augment.Result
	Generation uint64
	StoredAt   time.Time
}

// Cache is a thread-safe in-memory page registry with TTL eviction.
type Cache struct {
	mu    sync.Mutex
	pages map[string]*Entry
	ttl   time.Duration
	now   func() time.Time
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		pages: make(map[string]*Entry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Put stores res for path.
func (c *Cache) Put(path string, generation uint64, res *augment.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[path] = &Entry{Result: res, Generation: generation, StoredAt: c.now()}
}

// Get returns the page for path if it is fresh and was built with the
// given settings generation.
func (c *Cache) Get(path string, generation uint64) (*augment.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.pages[path]
	if !ok {
		return nil, false
	}
	if e.Generation != generation || c.now().Sub(e.StoredAt) > c.ttl {
		delete(c.pages, path)
		return nil, false
	}
	return e.Result, true
}

// Len reports the number of stored pages.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pages)
}

// Cleanup removes expired pages.
func (c *Cache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for path, e := range c.pages {
		if now.Sub(e.StoredAt) > c.ttl {
			delete(c.pages, path)
		}
	}
}

// Run calls Cleanup every interval until ctx is done.
func (c *Cache) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.Cleanup()
		}
	}
}
