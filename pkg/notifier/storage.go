package notifier

import (
	"context"
	"time"
)

// Storage handles notification persistence and retrieval.
type Storage interface {
	// Create stores the given notifications in a single bulk insert.
	// The insert is all-or-nothing: on error no notification is persisted.
	Create(ctx context.Context, notifs ...Notification) error

	// Get retrieves a single notification owned by userID.
	// Returns ErrNotificationNotFound for a missing or foreign notification.
	Get(ctx context.Context, userID, notifID string) (*Notification, error)

	// List returns notifications for a user, newest first, along with the
	// total count matching the filter (for pagination).
	List(ctx context.Context, userID string, opts ListOptions) ([]Notification, int64, error)

	// MarkRead marks a single notification as read at the given time.
	// Reports whether the notification transitioned; an already-read
	// notification reports false with no error and an unchanged ReadAt.
	// Returns ErrNotificationNotFound for a missing or foreign notification.
	MarkRead(ctx context.Context, userID, notifID string, at time.Time) (bool, error)

	// MarkAllRead marks every unread notification of the user as read and
	// returns the number of transitions.
	MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error)

	// CountUnread returns the unread count for a user.
	CountUnread(ctx context.Context, userID string) (int, error)
}

// ListOptions provides filtering and pagination for listing notifications.
type ListOptions struct {
	Limit      int  // Maximum number of notifications to return (0 = no limit)
	Offset     int  // Number of notifications to skip for pagination
	OnlyUnread bool // When true, only return unread notifications
}
