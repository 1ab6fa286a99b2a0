package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/async"
)

func TestAsync_Await(t *testing.T) {
	t.Parallel()

	future := async.Async(context.Background(), 21, func(_ context.Context, v int) (int, error) {
		return v * 2, nil
	})

	result, err := future.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, result)
}

func TestAsync_PropagatesError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("boom")
	future := async.Async(context.Background(), "x", func(_ context.Context, _ string) (string, error) {
		return "", wantErr
	})

	_, err := future.Await()
	assert.ErrorIs(t, err, wantErr)
}

func TestAsync_PreCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	future := async.Async(ctx, 0, func(_ context.Context, _ int) (int, error) {
		ran = true
		return 1, nil
	})

	_, err := future.Await()
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran)
}

func TestAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	t.Run("completes before timeout", func(t *testing.T) {
		t.Parallel()

		future := async.Async(context.Background(), 0, func(_ context.Context, _ int) (string, error) {
			return "done", nil
		})

		result, err := future.AwaitWithTimeout(time.Second)
		require.NoError(t, err)
		assert.Equal(t, "done", result)
	})

	t.Run("times out", func(t *testing.T) {
		t.Parallel()

		block := make(chan struct{})
		defer close(block)

		future := async.Async(context.Background(), 0, func(_ context.Context, _ int) (string, error) {
			<-block
			return "late", nil
		})

		_, err := future.AwaitWithTimeout(10 * time.Millisecond)
		assert.ErrorIs(t, err, async.ErrTimeout)
	})
}

func TestIsComplete(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	future := async.Async(context.Background(), 0, func(_ context.Context, _ int) (int, error) {
		<-block
		return 0, nil
	})

	assert.False(t, future.IsComplete())
	close(block)

	_, err := future.Await()
	require.NoError(t, err)
	assert.True(t, future.IsComplete())
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("second failed")

	first := async.Async(context.Background(), 1, func(_ context.Context, v int) (int, error) {
		return v, nil
	})
	second := async.Async(context.Background(), 2, func(_ context.Context, _ int) (int, error) {
		return 0, wantErr
	})
	third := async.Async(context.Background(), 3, func(_ context.Context, v int) (int, error) {
		return v, nil
	})

	results, err := async.WaitAll(first, second, third)
	assert.ErrorIs(t, err, wantErr)
	require.Len(t, results, 3)
	assert.Equal(t, 1, results[0])
	assert.Equal(t, 3, results[2])
}
