// Package cache stores enumeration results between runs.
//
// Enumerating the colorings of an 18-vertex solid takes a few seconds per
// zero count; the results only depend on the solid's generators and
// distances, so they are cached under a key derived from the solid's
// fingerprint. Three backends implement [Cache]:
//
//   - [FileCache]: JSON entries under ~/.cache/isomer, the CLI default
//   - [RedisCache]: a shared Redis instance, for the API server
//   - [NullCache]: stores nothing, used with --no-cache
//
// A [Keyer] derives the keys.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored bytes and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// OrbitsKey identifies the orbit representatives of one solid at one
	// zero count.
	OrbitsKey(fingerprint string, zeros int, closure string) string
}

// keyVersion is bumped whenever the layout of cached values changes.
const keyVersion = 1

// DefaultKeyer hashes its inputs into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// OrbitsKey returns "orbits:<sha256>".
func (DefaultKeyer) OrbitsKey(fingerprint string, zeros int, closure string) string {
	return hashKey("orbits", keyVersion, fingerprint, zeros, closure)
}

// DefaultTTL is how long enumeration results stay cached.
const DefaultTTL = 30 * 24 * time.Hour
