package push_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/push"
)

// recordingProvider captures sent messages and optionally fails.
type recordingProvider struct {
	mu       sync.Mutex
	messages []push.Message
	failWith error
}

func (p *recordingProvider) Send(ctx context.Context, msg push.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failWith != nil {
		return p.failWith
	}
	p.messages = append(p.messages, msg)
	return nil
}

func (p *recordingProvider) sent() []push.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]push.Message(nil), p.messages...)
}

func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGateway_Dispatch(t *testing.T) {
	t.Parallel()

	provider := &recordingProvider{}
	gateway := push.NewGateway(provider, push.WithLogger(silentLogger()))

	result := gateway.Dispatch(context.Background(), []string{"tok-1", "tok-2"}, "Title", "Body", map[string]any{"article_id": "a1"})

	assert.True(t, result.Sent)
	assert.NoError(t, result.Err)
	assert.Equal(t, 2, result.Tokens)

	msgs := provider.sent()
	require.Len(t, msgs, 1, "exactly one batched call per dispatch")
	assert.Equal(t, []string{"tok-1", "tok-2"}, msgs[0].Tokens)
	assert.Equal(t, "Title", msgs[0].Title)
	assert.Equal(t, "Body", msgs[0].Body)
}

func TestGateway_FiltersEmptyTokens(t *testing.T) {
	t.Parallel()

	provider := &recordingProvider{}
	gateway := push.NewGateway(provider, push.WithLogger(silentLogger()))

	result := gateway.Dispatch(context.Background(), []string{"", "tok-1", ""}, "Title", "Body", nil)

	assert.Equal(t, 1, result.Tokens)
	msgs := provider.sent()
	require.Len(t, msgs, 1)
	assert.Equal(t, []string{"tok-1"}, msgs[0].Tokens)
}

func TestGateway_EmptyAfterFilterIsSuccessWithoutCall(t *testing.T) {
	t.Parallel()

	provider := &recordingProvider{}
	gateway := push.NewGateway(provider, push.WithLogger(silentLogger()))

	result := gateway.Dispatch(context.Background(), []string{"", ""}, "Title", "Body", nil)

	assert.False(t, result.Sent)
	assert.NoError(t, result.Err)
	assert.Zero(t, result.Tokens)
	assert.Empty(t, provider.sent(), "no outbound provider call for an empty token set")
}

func TestGateway_ProviderErrorIsSuppressed(t *testing.T) {
	t.Parallel()

	provider := &recordingProvider{failWith: errors.New("rate limited")}
	gateway := push.NewGateway(provider, push.WithLogger(silentLogger()))

	result := gateway.Dispatch(context.Background(), []string{"tok-1"}, "Title", "Body", nil)

	assert.False(t, result.Sent)
	assert.ErrorIs(t, result.Err, push.ErrProviderFailed)
}

func TestGateway_NilProviderIsNoOp(t *testing.T) {
	t.Parallel()

	gateway := push.NewGateway(nil, push.WithLogger(silentLogger()))
	result := gateway.Dispatch(context.Background(), []string{"tok-1"}, "Title", "Body", nil)

	assert.True(t, result.Sent)
	assert.NoError(t, result.Err)
}
