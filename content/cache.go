package content

import (
	"context"
	"sync"
	"time"
)

// Cache keeps a loaded Store for ttl and starts a fresh Loader once it
// expires. Failed loads are not cached.
type Cache struct {
	mu        sync.RWMutex
	store     *Store
	fetched   time.Time
	ttl       time.Duration
	newLoader func() *Loader
}

// NewCache creates a Cache that builds a Loader with newLoader for every refresh.
func NewCache(newLoader func() *Loader, ttl time.Duration) *Cache {
	return &Cache{newLoader: newLoader, ttl: ttl}
}

func (c *Cache) valid() bool {
	return c.store != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.store = nil
	c.mu.Unlock()
}

// Store returns the cached Store, loading it when the cache is cold or stale.
// It tries a read lock first and only takes the write lock to reload.
func (c *Cache) Store(ctx context.Context) (*Store, error) {
	c.mu.RLock()
	if c.valid() {
		s := c.store
		c.mu.RUnlock()
		return s, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.store, nil
	}
	s, err := c.newLoader().Load(ctx)
	if err != nil {
		return s, err
	}
	c.store = s
	c.fetched = time.Now()
	return s, nil
}
