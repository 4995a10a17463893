// Package cache stores rendered diagram documents.
//
// Rendering is a pure function of a diagram's (laid-out) content and the
// registered templates, so its output can be cached under a content hash.
// The compositor consults a [Cache] before composing and stores what it
// produced afterwards.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [MemoryCache]: process-local map with expiry, for the server default and tests
//   - [FileCache]: one JSON file per entry, for CLI usage
//   - [RedisCache]: shared cache for multi-instance deployments
//
// # Keys
//
// Keys are produced by a [Keyer]. [DefaultKeyer] hashes the content hash
// together with every option that changes the output; [NewScopedKeyer]
// prefixes keys for namespace isolation.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value cache with per-entry expiry.
type Cache interface {
	// Get returns the cached value and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DefaultTTL is the expiry used for rendered documents.
const DefaultTTL = 24 * time.Hour
