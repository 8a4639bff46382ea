package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// memorySweep is how often expired entries are reaped from the memory layer.
const memorySweep = 10 * time.Minute

// MemoryCache is the fast layer: volumes already fetched during this run.
type MemoryCache struct {
	entries *gocache.Cache
}

// NewMemoryCache builds a memory cache whose entries default to ttl.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{entries: gocache.New(ttl, memorySweep)}
}

func (c *MemoryCache) Get(key string) ([]byte, bool) {
	v, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}

// Set stores value for ttl; zero means the cache default.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.entries.Set(key, value, ttl)
	return nil
}

func (c *MemoryCache) Delete(key string) error {
	c.entries.Delete(key)
	return nil
}

func (c *MemoryCache) Clear() error {
	c.entries.Flush()
	return nil
}
