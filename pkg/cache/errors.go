package cache

import "errors"

var (
	// ErrCacheMiss is returned by Get when the key is absent or expired.
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when the backing store cannot be reached.
	ErrCacheUnavailable = errors.New("cache unavailable")

	// ErrInvalidCacheEntry is returned when a value cannot be encoded or decoded.
	ErrInvalidCacheEntry = errors.New("invalid cache entry")
)
