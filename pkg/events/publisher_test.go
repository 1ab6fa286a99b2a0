package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/events"
)

func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublisher_DeliversToBothChannels(t *testing.T) {
	t.Parallel()

	broker := events.NewMemoryBroker()
	pubsub := events.NewMemoryPubSub()
	publisher := events.NewPublisher(broker, pubsub, events.WithLogger(silentLogger()))

	result := publisher.Publish(context.Background(), events.CategoryComment, events.RouteCommentLiked, events.CommentLikeEvent{
		CommentID: "c1",
		ArticleID: "a1",
		UserID:    "u1",
		Likes:     4,
		IsLiked:   true,
	})

	require.True(t, result.Delivered())
	assert.Empty(t, result.Suppressed())

	brokerMsgs := broker.Messages()
	require.Len(t, brokerMsgs, 1)
	assert.Equal(t, events.RouteCommentLiked, brokerMsgs[0].Key)

	pubsubMsgs := pubsub.Messages()
	require.Len(t, pubsubMsgs, 1)
	assert.Equal(t, "comment-events", pubsubMsgs[0].Key)

	// Both channels carry the same encoded event.
	assert.Equal(t, brokerMsgs[0].Body, pubsubMsgs[0].Body)

	var decoded events.Event
	require.NoError(t, json.Unmarshal(brokerMsgs[0].Body, &decoded))
	assert.Equal(t, events.CategoryComment, decoded.Category)
	assert.Equal(t, events.RouteCommentLiked, decoded.RoutingKey)
	assert.False(t, decoded.Timestamp.IsZero())
}

func TestPublisher_BrokerFailureDoesNotBlockPubSub(t *testing.T) {
	t.Parallel()

	broker := events.NewMemoryBroker()
	broker.FailWith(errors.New("connection refused"))
	pubsub := events.NewMemoryPubSub()
	publisher := events.NewPublisher(broker, pubsub, events.WithLogger(silentLogger()))

	result := publisher.Publish(context.Background(), events.CategoryArticle, events.RouteArticleCreated, events.ArticleEvent{ArticleID: "a1"})

	assert.True(t, result.Delivered())
	assert.ErrorIs(t, result.BrokerErr, events.ErrBrokerUnavailable)
	assert.NoError(t, result.PubSubErr)
	assert.Len(t, pubsub.Messages(), 1)
}

func TestPublisher_PubSubFailureDoesNotBlockBroker(t *testing.T) {
	t.Parallel()

	broker := events.NewMemoryBroker()
	pubsub := events.NewMemoryPubSub()
	pubsub.FailWith(errors.New("connection reset"))
	publisher := events.NewPublisher(broker, pubsub, events.WithLogger(silentLogger()))

	result := publisher.Publish(context.Background(), events.CategoryNotification, events.RouteNotificationNew, events.NotificationEvent{UserID: "u1"})

	assert.True(t, result.Delivered())
	assert.ErrorIs(t, result.PubSubErr, events.ErrPubSubUnavailable)
	assert.NoError(t, result.BrokerErr)
	assert.Len(t, broker.Messages(), 1)
}

func TestPublisher_BothChannelsFail(t *testing.T) {
	t.Parallel()

	broker := events.NewMemoryBroker()
	broker.FailWith(errors.New("down"))
	pubsub := events.NewMemoryPubSub()
	pubsub.FailWith(errors.New("down"))
	publisher := events.NewPublisher(broker, pubsub, events.WithLogger(silentLogger()))

	result := publisher.Publish(context.Background(), events.CategoryArticle, events.RouteArticleUpdated, nil)

	assert.False(t, result.Delivered())
	assert.Len(t, result.Suppressed(), 2)
}

func TestPublisher_NilChannelsAreSkipped(t *testing.T) {
	t.Parallel()

	publisher := events.NewPublisher(nil, nil, events.WithLogger(silentLogger()))
	result := publisher.Publish(context.Background(), events.CategoryArticle, events.RouteArticleCreated, nil)

	assert.True(t, result.Delivered())
	assert.Empty(t, result.Suppressed())
}

func TestPublisher_UnserializablePayload(t *testing.T) {
	t.Parallel()

	broker := events.NewMemoryBroker()
	pubsub := events.NewMemoryPubSub()
	publisher := events.NewPublisher(broker, pubsub, events.WithLogger(silentLogger()))

	result := publisher.Publish(context.Background(), events.CategoryArticle, events.RouteArticleCreated, make(chan int))

	assert.False(t, result.Delivered())
	assert.ErrorIs(t, result.BrokerErr, events.ErrBrokerUnavailable)
	assert.ErrorIs(t, result.PubSubErr, events.ErrPubSubUnavailable)
	assert.Empty(t, broker.Messages())
	assert.Empty(t, pubsub.Messages())
}

func TestCategory_Channel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "article-events", events.CategoryArticle.Channel())
	assert.Equal(t, "comment-events", events.CategoryComment.Channel())
	assert.Equal(t, "notification-events", events.CategoryNotification.Channel())
}

func TestCategory_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, events.CategoryArticle.Valid())
	assert.False(t, events.Category("user").Valid())
}
