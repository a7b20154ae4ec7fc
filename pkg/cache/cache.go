// Package cache stores encoded frames so repeated renders of the same
// timeline skip rasterization.
//
// # Backends
//
//   - [NullCache]: stores nothing, for --no-cache
//   - [MemoryCache]: in-process map with TTL, used by the session server
//   - [FileCache]: JSON entry files under a directory, used by the CLI
//
// Any backend can be wrapped with [Instrument] to report hits, misses and
// writes to the registered observability hooks.
//
// # Keys
//
// A [Keyer] derives keys from everything that affects the encoded bytes.
// [ScopedKeyer] prefixes keys so sessions do not share entries.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}
