// Package cache stores built scaffold documents so that repeated runs over
// unchanged inputs skip the grouping work.
//
// Backends implement [Cache]: [FileCache] for local CLI use, [RedisCache]
// when several machines share results, and [NullCache] to disable caching.
// Keys come from a [Keyer], which hashes everything that influences the
// output: table contents, resource ids and grouping options.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. Expired
	// entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Default entry lifetimes.
const (
	TTLScaffold = 7 * 24 * time.Hour
	TTLScaled   = 24 * time.Hour
)
