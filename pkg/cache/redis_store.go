package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL is applied when Set is called with a zero TTL.
const DefaultTTL = 5 * time.Minute

// RedisStore implements Store on top of a Redis client. All keys are
// namespaced with a prefix so that Invalidate can never touch keys owned by
// other applications sharing the same Redis instance.
type RedisStore struct {
	client     redis.UniversalClient
	prefix     string
	defaultTTL time.Duration
	log        *slog.Logger
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets the namespace prefix prepended to every key.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithDefaultTTL sets the TTL applied when Set is called with zero.
func WithDefaultTTL(ttl time.Duration) RedisStoreOption {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.defaultTTL = ttl
		}
	}
}

// WithLogger sets the logger for the RedisStore.
func WithLogger(log *slog.Logger) RedisStoreOption {
	return func(s *RedisStore) {
		if log != nil {
			s.log = log
		}
	}
}

// NewRedisStore creates a Redis-backed cache store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client:     client,
		prefix:     "platform-server:",
		defaultTTL: DefaultTTL,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) buildKey(key string) string {
	return s.prefix + key
}

func (s *RedisStore) Get(ctx context.Context, key string, dest any) error {
	data, err := s.client.Get(ctx, s.buildKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return errors.Join(ErrCacheUnavailable, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return errors.Join(ErrInvalidCacheEntry, err)
	}
	return nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Join(ErrInvalidCacheEntry, err)
	}

	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	if err := s.client.Set(ctx, s.buildKey(key), data, ttl).Err(); err != nil {
		return errors.Join(ErrCacheUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.buildKey(k)
	}

	if err := s.client.Del(ctx, prefixed...).Err(); err != nil {
		return errors.Join(ErrCacheUnavailable, err)
	}
	return nil
}

// Invalidate removes every key matching prefix*. The keyspace is walked with
// SCAN so large keyspaces never get materialized in one reply, and deletions
// happen per batch as the cursor advances.
func (s *RedisStore) Invalidate(ctx context.Context, prefix string) (int, error) {
	pattern := s.buildKey(prefix) + "*"

	var (
		cursor  uint64
		removed int
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return removed, errors.Join(ErrCacheUnavailable, err)
		}

		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return removed, errors.Join(ErrCacheUnavailable, err)
			}
			removed += len(keys)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	if removed > 0 {
		s.log.DebugContext(ctx, "cache invalidated",
			slog.String("prefix", prefix),
			slog.Int("removed", removed),
		)
	}
	return removed, nil
}
