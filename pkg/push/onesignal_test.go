package push_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/push"
)

func TestNewOneSignal_RequiresCredentials(t *testing.T) {
	t.Parallel()

	_, err := push.NewOneSignal(push.Config{})
	assert.ErrorIs(t, err, push.ErrMissingCredentials)

	_, err = push.NewOneSignal(push.Config{AppID: "app"})
	assert.ErrorIs(t, err, push.ErrMissingCredentials)
}

func TestOneSignal_Send(t *testing.T) {
	t.Parallel()

	var captured struct {
		auth        string
		contentType string
		body        map[string]any
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.auth = r.Header.Get("Authorization")
		captured.contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.body))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	provider, err := push.NewOneSignal(
		push.Config{AppID: "app-123", RESTAPIKey: "key-456"},
		push.WithEndpoint(server.URL),
	)
	require.NoError(t, err)

	err = provider.Send(context.Background(), push.Message{
		Tokens: []string{"tok-1", "tok-2"},
		Title:  "New Article Published",
		Body:   "alice published a new article",
		Data:   map[string]any{"type": "new_article", "article_id": "a1"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Basic key-456", captured.auth)
	assert.Equal(t, "application/json", captured.contentType)
	assert.Equal(t, "app-123", captured.body["app_id"])
	assert.Equal(t, []any{"tok-1", "tok-2"}, captured.body["include_player_ids"])
	assert.Equal(t, map[string]any{"en": "New Article Published"}, captured.body["headings"])
	assert.Equal(t, map[string]any{"en": "alice published a new article"}, captured.body["contents"])
}

func TestOneSignal_Send_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":["invalid player ids"]}`))
	}))
	defer server.Close()

	provider, err := push.NewOneSignal(
		push.Config{AppID: "app", RESTAPIKey: "key"},
		push.WithEndpoint(server.URL),
	)
	require.NoError(t, err)

	err = provider.Send(context.Background(), push.Message{Tokens: []string{"tok"}, Title: "t", Body: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestOneSignal_Send_ContextCancelled(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	provider, err := push.NewOneSignal(
		push.Config{AppID: "app", RESTAPIKey: "key"},
		push.WithEndpoint(server.URL),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = provider.Send(ctx, push.Message{Tokens: []string{"tok"}, Title: "t", Body: "b"})
	assert.Error(t, err)
}
