package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/dmarkov/verascope/internal/model"
)

// Cache stores fetched page bodies between requests.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
}

// Key derives a stable cache key from a URL.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "verascope:v1:" + hex.EncodeToString(hash[:])
}

// FromConfig builds the configured cache, or nil when caching is disabled.
// With a directory configured the cache is layered memory-over-disk.
func FromConfig(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Dir != "" {
		return NewLayered(cfg.TTL, cfg.CleanupInterval, cfg.Dir)
	}
	return NewMemory(cfg.TTL, cfg.CleanupInterval)
}
