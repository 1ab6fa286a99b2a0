package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-memory implementation of the Store interface.
// Suitable for development and testing.
type MemoryStore struct {
	entries    map[string]memoryEntry
	defaultTTL time.Duration
	mu         sync.RWMutex
	now        func() time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithMemoryDefaultTTL sets the TTL applied when Set is called with zero.
func WithMemoryDefaultTTL(ttl time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) {
		if ttl > 0 {
			s.defaultTTL = ttl
		}
	}
}

// WithClock overrides the time source. Intended for TTL tests.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates a new in-memory cache store.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		entries:    make(map[string]memoryEntry),
		defaultTTL: DefaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Get(ctx context.Context, key string, dest any) error {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || s.now().After(entry.expiresAt) {
		return ErrCacheMiss
	}

	if err := json.Unmarshal(entry.data, dest); err != nil {
		return ErrInvalidCacheEntry
	}
	return nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return ErrInvalidCacheEntry
	}

	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	s.mu.Lock()
	s.entries[key] = memoryEntry{data: data, expiresAt: s.now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	for _, k := range keys {
		delete(s.entries, k)
	}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Invalidate(ctx context.Context, prefix string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k := range s.entries {
		if strings.HasPrefix(k, prefix) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of stored entries, including expired ones that have
// not been touched since expiry.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
