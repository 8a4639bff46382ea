// Package cache is the layered fetch cache for source volumes: a small
// in-memory layer over a disk layer, so repeated extraction runs do not
// re-download multi-megabyte texts from Project Gutenberg.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the fetch-cache contract the pipeline fetcher works against.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for a volume URL. Hashing keeps the key a safe
// filename whatever characters the URL carries.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "herodotus:v1:" + hex.EncodeToString(sum[:])
}
