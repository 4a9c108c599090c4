package store

import "sync"

// memCache keeps recently used manifests in memory. Eviction is
// arbitrary once the cap is hit; manifests are small and re-reads from
// disk are cheap, so a proper LRU would buy nothing here.
type memCache struct {
	maxSize int
	items   map[string][]byte
	mu      sync.RWMutex
}

func newMemCache(maxSize int) *memCache {
	return &memCache{
		maxSize: maxSize,
		items:   make(map[string][]byte),
	}
}

func (c *memCache) get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.items[key]
	return val, ok
}

func (c *memCache) add(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) >= c.maxSize {
		for k := range c.items {
			delete(c.items, k)
			break
		}
	}
	c.items[key] = value
}

func (c *memCache) remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *memCache) has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.items[key]
	return ok
}
