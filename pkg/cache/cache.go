// Package cache stores finished layouts and rendered artifacts.
//
// Drawing a description is deterministic for a given strategy, so the
// pipeline keys layouts by a hash of the description plus the options that
// affect geometry, and artifacts by the layout hash plus render options.
//
// # Backends
//
//   - [FileCache]: JSON entries under a directory, used by the CLI.
//   - [RedisCache]: a shared Redis instance, used by the HTTP server.
//   - [MongoCache]: a MongoDB collection with a TTL index.
//   - [NullCache]: stores nothing.
//
// [Open] picks a backend by name.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
//
// Get reports a miss with ok == false and a nil error. A zero ttl in Set
// means the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
