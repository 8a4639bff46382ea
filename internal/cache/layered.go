package cache

import "time"

// LayeredCache reads memory first and falls back to disk, promoting disk
// hits back into memory. Writes go to both layers.
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache wires the standard two-layer arrangement used by the
// extraction pipeline.
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, ok := c.memory.Get(key); ok {
		return val, true
	}
	if val, ok := c.disk.Get(key); ok {
		// Promote with the memory layer's default TTL.
		_ = c.memory.Set(key, val, 0)
		return val, true
	}
	return nil, false
}

func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}

func (c *LayeredCache) Delete(key string) error {
	memErr := c.memory.Delete(key)
	if err := c.disk.Delete(key); err != nil {
		return err
	}
	return memErr
}

func (c *LayeredCache) Clear() error {
	memErr := c.memory.Clear()
	if err := c.disk.Clear(); err != nil {
		return err
	}
	return memErr
}
