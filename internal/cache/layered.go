package cache

import "time"

// Layered checks memory before disk and promotes disk hits.
type Layered struct {
	memory Cache
	disk   Cache
}

// NewLayered creates a memory-over-disk cache.
func NewLayered(memoryTTL, cleanupInterval time.Duration, diskDir string) *Layered {
	return &Layered{
		memory: NewMemory(memoryTTL, cleanupInterval),
		disk:   NewDisk(diskDir),
	}
}

func (c *Layered) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}
	if val, found := c.disk.Get(key); found {
		_ = c.memory.Set(key, val, 0)
		return val, true
	}
	return nil, false
}

func (c *Layered) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}
