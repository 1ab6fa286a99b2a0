package notifier

import (
	"context"
	"sort"
	"sync"
)

// MemoryUser is a directory record for the in-memory Directory.
type MemoryUser struct {
	ID        string
	Username  string
	Role      string
	Active    bool
	Verified  bool
	PushToken string
}

// RoleAdmin marks users that receive broadcasts regardless of account state.
const RoleAdmin = "admin"

var _ Directory = (*MemoryDirectory)(nil)

// MemoryDirectory is an in-memory Directory implementation for development
// and testing. All operations are safe for concurrent use.
type MemoryDirectory struct {
	mu       sync.RWMutex
	users    map[string]MemoryUser
	failWith error
}

// NewMemoryDirectory creates a directory seeded with the given users.
func NewMemoryDirectory(users ...MemoryUser) *MemoryDirectory {
	d := &MemoryDirectory{users: make(map[string]MemoryUser, len(users))}
	for _, u := range users {
		d.users[u.ID] = u
	}
	return d
}

// FailWith makes every subsequent lookup return err. Pass nil to restore
// normal behavior. Intended for tests.
func (d *MemoryDirectory) FailWith(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failWith = err
}

// AddUser inserts or replaces a user record.
func (d *MemoryDirectory) AddUser(u MemoryUser) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[u.ID] = u
}

// BroadcastRecipients returns admins regardless of account state plus every
// active and verified user, excluding excludeUserID.
func (d *MemoryDirectory) BroadcastRecipients(ctx context.Context, excludeUserID string) ([]Recipient, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.failWith != nil {
		return nil, d.failWith
	}

	var recipients []Recipient
	for _, u := range d.users {
		if u.ID == excludeUserID {
			continue
		}
		if u.Role != RoleAdmin && !(u.Active && u.Verified) {
			continue
		}
		recipients = append(recipients, Recipient{
			ID:        u.ID,
			Username:  u.Username,
			PushToken: u.PushToken,
		})
	}
	sort.Slice(recipients, func(i, j int) bool { return recipients[i].ID < recipients[j].ID })
	return recipients, nil
}

// PushToken returns the user's registered device token, which may be empty.
func (d *MemoryDirectory) PushToken(ctx context.Context, userID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.failWith != nil {
		return "", d.failWith
	}

	u, ok := d.users[userID]
	if !ok {
		return "", ErrUserNotFound
	}
	return u.PushToken, nil
}

// RegisterToken binds a device token to the user, evicting it from any other
// user that currently holds it.
func (d *MemoryDirectory) RegisterToken(ctx context.Context, userID, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if token == "" {
		return ErrEmptyToken
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failWith != nil {
		return d.failWith
	}

	u, ok := d.users[userID]
	if !ok {
		return ErrUserNotFound
	}

	for id, other := range d.users {
		if id != userID && other.PushToken == token {
			other.PushToken = ""
			d.users[id] = other
		}
	}
	u.PushToken = token
	d.users[userID] = u
	return nil
}

// UnregisterToken clears the user's device token.
func (d *MemoryDirectory) UnregisterToken(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failWith != nil {
		return d.failWith
	}

	u, ok := d.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.PushToken = ""
	d.users[userID] = u
	return nil
}
