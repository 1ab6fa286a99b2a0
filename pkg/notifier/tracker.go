package notifier

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/notifykit/pkg/events"
	"github.com/dmitrymomot/notifykit/pkg/logger"
)

// Tracker manages per-user read state on top of Storage and emits read-state
// events. Event publishing is best-effort: the state change always wins.
type Tracker struct {
	storage   Storage
	publisher *events.Publisher
	log       *slog.Logger
	now       func() time.Time
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithTrackerLogger sets the logger for the Tracker.
func WithTrackerLogger(log *slog.Logger) TrackerOption {
	return func(t *Tracker) {
		if log != nil {
			t.log = log
		}
	}
}

// WithTrackerClock overrides the time source. Intended for tests.
func WithTrackerClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// NewTracker creates a read-state tracker. The publisher may be nil when the
// ephemeral channel is not wired.
func NewTracker(storage Storage, publisher *events.Publisher, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		storage:   storage,
		publisher: publisher,
		log:       slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// List returns a page of the user's notifications, newest first, together
// with the total count matching the options. The page size defaults to 20
// and is capped at 100; a negative offset is treated as zero.
func (t *Tracker) List(ctx context.Context, userID string, opts ListOptions) ([]Notification, int64, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultPageSize
	}
	if opts.Limit > maxPageSize {
		opts.Limit = maxPageSize
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return t.storage.List(ctx, userID, opts)
}

// Get returns one notification scoped to its owner.
func (t *Tracker) Get(ctx context.Context, userID, notificationID string) (*Notification, error) {
	return t.storage.Get(ctx, userID, notificationID)
}

// CountUnread returns the user's unread notification count.
func (t *Tracker) CountUnread(ctx context.Context, userID string) (int, error) {
	return t.storage.CountUnread(ctx, userID)
}

// MarkRead marks one notification read. The operation is idempotent: marking
// an already-read notification succeeds without changing its read timestamp
// and without emitting an event. A notification owned by another user is
// reported as ErrNotificationNotFound, never revealing its existence.
func (t *Tracker) MarkRead(ctx context.Context, userID, notificationID string) (*Notification, error) {
	notification, err := t.storage.Get(ctx, userID, notificationID)
	if err != nil {
		return nil, err
	}
	if notification.Read {
		return notification, nil
	}

	at := t.now().UTC()
	modified, err := t.storage.MarkRead(ctx, userID, notificationID, at)
	if err != nil {
		return nil, err
	}
	notification.MarkAsRead(at)

	// A concurrent MarkRead may have won the conditional update. The state
	// is read either way; only the winner emits the event.
	if modified {
		t.publishRead(ctx, userID, notificationID)
	}
	return notification, nil
}

// MarkAllRead marks every unread notification of the user read and returns
// how many were modified. All unread rows share the same read timestamp.
func (t *Tracker) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	modified, err := t.storage.MarkAllRead(ctx, userID, t.now().UTC())
	if err != nil {
		return 0, err
	}

	if t.publisher != nil {
		result := t.publisher.Publish(ctx, events.CategoryNotification, events.RouteNotificationReadAll, events.NotificationReadEvent{
			UserID:      userID,
			UnreadCount: 0,
		})
		t.logSuppressed(ctx, userID, result)
	}
	return modified, nil
}

func (t *Tracker) publishRead(ctx context.Context, userID, notificationID string) {
	if t.publisher == nil {
		return
	}

	unread, err := t.storage.CountUnread(ctx, userID)
	if err != nil {
		t.log.ErrorContext(ctx, "unread count after mark-read failed",
			logger.UserID(userID),
			logger.NotificationID(notificationID),
			logger.Error(err),
		)
		return
	}

	result := t.publisher.Publish(ctx, events.CategoryNotification, events.RouteNotificationRead, events.NotificationReadEvent{
		UserID:         userID,
		NotificationID: notificationID,
		UnreadCount:    unread,
	})
	t.logSuppressed(ctx, userID, result)
}

func (t *Tracker) logSuppressed(ctx context.Context, userID string, result events.PublishResult) {
	for _, err := range result.Suppressed() {
		t.log.ErrorContext(ctx, "read-state event publish failed",
			logger.UserID(userID),
			logger.RoutingKey(result.Event.RoutingKey),
			logger.Error(err),
		)
	}
}
