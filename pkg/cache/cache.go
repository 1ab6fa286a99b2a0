package cache

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Store is a key/value cache with TTL expiry and prefix-based invalidation.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get unmarshals the cached value for key into dest.
	// Returns ErrCacheMiss when the key is absent or expired.
	Get(ctx context.Context, key string, dest any) error

	// Set stores value under key with the given TTL. A zero TTL applies the
	// implementation's default.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Invalidate removes every key matching prefix followed by any suffix.
	// Implementations iterate the keyspace with a cursor rather than
	// materializing it at once. Returns the number of keys removed.
	Invalidate(ctx context.Context, prefix string) (int, error)
}

// ListKey builds a deterministic cache key for a paginated, filtered list
// query. Filter keys are sorted so that logically equal queries always map to
// the same cache entry.
//
// The key shape is "<resource>:list:p<page>:l<limit>" with sorted
// "k=v" filter pairs appended, e.g. "articles:list:p1:l20:status=published".
// Invalidating "<resource>:list" therefore clears every cached page and
// filter combination for the resource.
func ListKey(resource string, page, limit int, filters map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:list:p%d:l%d", resource, page, limit)

	if len(filters) > 0 {
		keys := make([]string, 0, len(filters))
		for k := range filters {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for i, k := range keys {
			if i == 0 {
				b.WriteByte(':')
			} else {
				b.WriteByte(',')
			}
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(filters[k])
		}
	}

	return b.String()
}

// ListPrefix returns the invalidation prefix covering every cached list query
// for a resource.
func ListPrefix(resource string) string {
	return resource + ":list"
}
