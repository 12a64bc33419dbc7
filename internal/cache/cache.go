package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching serialized analysis results
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from the proof text. Identical input
// always produces identical analysis, so content addressing is safe.
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "proofmap:v1:" + hex.EncodeToString(hash[:])
}
