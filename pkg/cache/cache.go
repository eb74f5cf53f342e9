// Package cache stores rectangle-free grids that previous runs found,
// keyed by shape and palette size. A search for a shape that already
// converged once can be answered from the cache instead of rerunning
// the stochastic loop.
//
// The [Cache] interface is deliberately generic (bytes in, bytes out)
// so backends stay interchangeable; [Keyer] builds the domain keys.
package cache

import (
	"context"
	"time"
)

// Cache is a generic byte store with optional expiry.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys for domain objects.
type Keyer interface {
	// SolutionKey returns the key for a rectangle-free grid of the
	// given shape and palette size.
	SolutionKey(rows, cols, colors int) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SolutionKey returns "solution:" plus a hash of (rows, cols, colors).
func (DefaultKeyer) SolutionKey(rows, cols, colors int) string {
	return hashKey("solution", rows, cols, colors)
}
