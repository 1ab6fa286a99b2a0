// Package cache provides read-through caching for paginated list queries and
// prefix-based invalidation for write traffic.
//
// Keys for list queries are built with ListKey, a deterministic serialization
// of resource, page, limit and filters. Any mutation to a cached resource
// invalidates the resource's whole list namespace via Invalidate rather than
// targeting single keys - correctness is preferred over cache-hit efficiency.
//
//	store := cache.NewRedisStore(client, cache.WithKeyPrefix("platform-server:"))
//
//	key := cache.ListKey("articles", page, limit, filters)
//	var result ArticleList
//	switch err := store.Get(ctx, key, &result); {
//	case err == nil:
//	    return result, nil
//	case errors.Is(err, cache.ErrCacheMiss):
//	    // query the database, then:
//	    _ = store.Set(ctx, key, result, time.Minute)
//	}
//
//	// on article create/update/delete:
//	_, _ = store.Invalidate(ctx, cache.ListPrefix("articles"))
//
// The Redis implementation walks the keyspace with a SCAN cursor, never
// materializing it at once. MemoryStore provides the same semantics for tests.
package cache
