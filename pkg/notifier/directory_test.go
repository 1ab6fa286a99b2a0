package notifier_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/notifier"
)

func TestMemoryDirectoryBroadcastRecipients(t *testing.T) {
	t.Parallel()

	directory := notifier.NewMemoryDirectory(
		notifier.MemoryUser{ID: "admin-1", Username: "root", Role: notifier.RoleAdmin},
		notifier.MemoryUser{ID: "user-1", Username: "alice", Active: true, Verified: true},
		notifier.MemoryUser{ID: "user-2", Username: "bob", Active: true, Verified: false},
		notifier.MemoryUser{ID: "user-3", Username: "carol", Active: false, Verified: true},
	)

	t.Run("admins bypass account state", func(t *testing.T) {
		t.Parallel()

		recipients, err := directory.BroadcastRecipients(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, recipients, 2)
		assert.Equal(t, "admin-1", recipients[0].ID)
		assert.Equal(t, "user-1", recipients[1].ID)
	})

	t.Run("exclusion removes the actor", func(t *testing.T) {
		t.Parallel()

		recipients, err := directory.BroadcastRecipients(context.Background(), "user-1")
		require.NoError(t, err)
		require.Len(t, recipients, 1)
		assert.Equal(t, "admin-1", recipients[0].ID)
	})
}

func TestMemoryDirectoryTokens(t *testing.T) {
	t.Parallel()

	t.Run("register and lookup", func(t *testing.T) {
		t.Parallel()

		directory := notifier.NewMemoryDirectory(
			notifier.MemoryUser{ID: "user-1", Username: "alice", Active: true, Verified: true},
		)

		require.NoError(t, directory.RegisterToken(context.Background(), "user-1", "tok-1"))

		token, err := directory.PushToken(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, "tok-1", token)
	})

	t.Run("token moves to the latest registrant", func(t *testing.T) {
		t.Parallel()

		directory := notifier.NewMemoryDirectory(
			notifier.MemoryUser{ID: "user-1", Username: "alice", Active: true, Verified: true, PushToken: "tok-shared"},
			notifier.MemoryUser{ID: "user-2", Username: "bob", Active: true, Verified: true},
		)

		require.NoError(t, directory.RegisterToken(context.Background(), "user-2", "tok-shared"))

		evicted, err := directory.PushToken(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Empty(t, evicted)

		owner, err := directory.PushToken(context.Background(), "user-2")
		require.NoError(t, err)
		assert.Equal(t, "tok-shared", owner)
	})

	t.Run("empty token rejected", func(t *testing.T) {
		t.Parallel()

		directory := notifier.NewMemoryDirectory(
			notifier.MemoryUser{ID: "user-1", Username: "alice"},
		)
		assert.ErrorIs(t, directory.RegisterToken(context.Background(), "user-1", ""), notifier.ErrEmptyToken)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()

		directory := notifier.NewMemoryDirectory()
		assert.ErrorIs(t, directory.RegisterToken(context.Background(), "ghost", "tok-1"), notifier.ErrUserNotFound)
		_, err := directory.PushToken(context.Background(), "ghost")
		assert.ErrorIs(t, err, notifier.ErrUserNotFound)
		assert.ErrorIs(t, directory.UnregisterToken(context.Background(), "ghost"), notifier.ErrUserNotFound)
	})

	t.Run("unregister clears the token", func(t *testing.T) {
		t.Parallel()

		directory := notifier.NewMemoryDirectory(
			notifier.MemoryUser{ID: "user-1", Username: "alice", PushToken: "tok-1"},
		)

		require.NoError(t, directory.UnregisterToken(context.Background(), "user-1"))
		token, err := directory.PushToken(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Empty(t, token)
	})
}
