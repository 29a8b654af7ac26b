package cache

import (
	"context"
	"time"
)

// Cache defines the interface for caching operations
type Cache interface {
	// Get retrieves a value from the cache
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set adds a value to the cache with the specified expiration.
	// If expiration is 0, the item never expires (but may be evicted)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)

	// Delete removes a key from the cache
	Delete(ctx context.Context, key string)

	// Flush removes all items from the cache
	Flush(ctx context.Context)
}

// Key prefixes for cached entries. Usage counters are advisory client
// state held server-side; the analytics table stays the source of truth
// for registered users.
const (
	PrefixGuestUsage     = "usage:guest:v1:"
	PrefixPaymentHistory = "payments:v1:"
)
