package cache

import (
	"context"
	"errors"
)

// Sentinel errors for cache construction.
var (
	ErrNegativeTTL = errors.New("cache: ttl must not be negative")
)

// Cache is a time-bounded mapping from comparable keys to values.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use. A Put
//     is visible to every Get on the same key issued after Put returns.
//   - Expiry: entries older than the TTL read as absent and are not
//     counted by Size, whether or not they were physically removed.
//   - Errors: Get never errors; it returns (zero, false) on miss.
type Cache[K comparable, V any] interface {
	// Get retrieves a value. Returns (zero, false) on miss or expiry.
	Get(ctx context.Context, key K) (V, bool)

	// Put stores value under key, replacing any previous entry.
	Put(ctx context.Context, key K, value V)

	// Delete removes a value. Idempotent - no effect on miss.
	Delete(ctx context.Context, key K)

	// Size returns the number of live entries.
	Size() int
}
