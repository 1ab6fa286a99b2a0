package notifier

import (
	"context"
	"sort"
	"sync"
	"time"
)

var _ Storage = (*MemoryStorage)(nil)

// MemoryStorage is an in-memory Storage implementation for development and
// testing. All operations are safe for concurrent use.
type MemoryStorage struct {
	mu            sync.RWMutex
	notifications map[string]Notification
	order         []string
	failWith      error
}

// NewMemoryStorage creates an empty in-memory notification store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		notifications: make(map[string]Notification),
	}
}

// FailWith makes every subsequent write operation return err. Pass nil to
// restore normal behavior. Intended for tests.
func (s *MemoryStorage) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

// Create stores all notifications or none of them.
func (s *MemoryStorage) Create(ctx context.Context, notifications ...Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(notifications) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}

	for _, n := range notifications {
		s.notifications[n.ID] = n
		s.order = append(s.order, n.ID)
	}
	return nil
}

// Get returns one notification scoped to its owner.
func (s *MemoryStorage) Get(ctx context.Context, userID, notificationID string) (*Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notifications[notificationID]
	if !ok || n.UserID != userID {
		return nil, ErrNotificationNotFound
	}
	copied := n
	return &copied, nil
}

// List returns a page of the user's notifications, newest first, and the
// total count matching the options.
func (s *MemoryStorage) List(ctx context.Context, userID string, opts ListOptions) ([]Notification, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Notification
	for _, n := range s.notifications {
		if n.UserID != userID {
			continue
		}
		if opts.OnlyUnread && n.Read {
			continue
		}
		matched = append(matched, n)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if opts.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}
	return matched, total, nil
}

// MarkRead flips one unread notification to read. It reports whether the
// notification was modified.
func (s *MemoryStorage) MarkRead(ctx context.Context, userID, notificationID string, at time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return false, s.failWith
	}

	n, ok := s.notifications[notificationID]
	if !ok || n.UserID != userID {
		return false, ErrNotificationNotFound
	}
	if n.Read {
		return false, nil
	}
	n.MarkAsRead(at)
	s.notifications[notificationID] = n
	return true, nil
}

// MarkAllRead flips every unread notification of the user to read.
func (s *MemoryStorage) MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return 0, s.failWith
	}

	var modified int64
	for id, n := range s.notifications {
		if n.UserID != userID || n.Read {
			continue
		}
		n.MarkAsRead(at)
		s.notifications[id] = n
		modified++
	}
	return modified, nil
}

// CountUnread returns the user's unread notification count.
func (s *MemoryStorage) CountUnread(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

// Len returns the number of stored notifications. Intended for tests.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notifications)
}
