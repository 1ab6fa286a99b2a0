package notifier

import "errors"

var (
	// ErrNotificationNotFound is returned for a missing notification or one
	// owned by another user.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrUserNotFound is returned by directory lookups for an unknown user.
	ErrUserNotFound = errors.New("user not found")

	// ErrPersistenceFailed classifies a failed notification write during
	// fan-out. It is suppressed at the fan-out boundary.
	ErrPersistenceFailed = errors.New("notification persistence failed")

	// ErrEmptyToken is returned when registering an empty device token.
	ErrEmptyToken = errors.New("empty device token")

	// ErrDirectoryUnavailable classifies a failed recipient lookup during
	// fan-out. It is suppressed at the fan-out boundary.
	ErrDirectoryUnavailable = errors.New("recipient directory unavailable")
)
