// Package cache stores rendered view artifacts between runs.
//
// A [Cache] is a byte store keyed by strings. Keys come from a [Keyer] so
// that every input affecting the pixels of a view (the scene content, the
// view name and the canvas geometry) changes the key.
//
// Backends:
//   - [FileCache]: one JSON entry per key under a local directory (CLI)
//   - [RedisCache]: a shared Redis instance (workers on several hosts)
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// TTLArtifact is the default lifetime of a cached view.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a key/value store for rendered artifacts. Implementations must
// be safe for concurrent use.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data for ttl. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
