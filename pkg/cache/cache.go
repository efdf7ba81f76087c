// Package cache stores computed layout data behind a small key/value
// interface.
//
// Three backends implement [Cache]:
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: JSON files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the API server
//
// Keys are built by a [Keyer] so that every component agrees on the layout.
// [ScopedKeyer] prefixes keys per organization.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default entry lifetimes.
const (
	// TTLDepths is how long derived column depths stay cached. Depths are a
	// pure function of the layout hash, so they only expire to bound growth.
	TTLDepths = 7 * 24 * time.Hour

	// TTLDashboard is how long a dashboard read stays cached.
	TTLDashboard = 5 * time.Minute
)
