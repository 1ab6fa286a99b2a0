package notifier

import "context"

// Recipient is the projection of a user document the fan-out engine needs:
// identity for the notification row and the device token for push delivery.
// PushToken is empty when the user has no registered device.
type Recipient struct {
	ID        string
	Username  string
	PushToken string
}

// Directory is the read side of the users collection plus push subscription
// management. Recipient sets are computed against current user state at
// fan-out time, not at trigger time: a user deactivated between trigger and
// fan-out is skipped, one activated in the gap is included.
type Directory interface {
	// BroadcastRecipients returns the recipients of an article-published
	// broadcast: every user with the admin role (regardless of active or
	// verified state) plus every active and verified user, excluding
	// excludeUserID.
	BroadcastRecipients(ctx context.Context, excludeUserID string) ([]Recipient, error)

	// PushToken returns the user's registered device token, or "" when none.
	// Returns ErrUserNotFound for an unknown user.
	PushToken(ctx context.Context, userID string) (string, error)

	// RegisterToken associates a device token with the user. A token belongs
	// to at most one user: registering a token currently owned by another
	// user evicts it from that user first (last-writer-wins).
	RegisterToken(ctx context.Context, userID, token string) error

	// UnregisterToken removes the user's device token.
	UnregisterToken(ctx context.Context, userID string) error
}
