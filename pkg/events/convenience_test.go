package events_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/events"
)

func TestTypedPublishers(t *testing.T) {
	t.Parallel()

	broker := events.NewMemoryBroker()
	pubsub := events.NewMemoryPubSub()
	publisher := events.NewPublisher(broker, pubsub)
	ctx := context.Background()

	cases := []struct {
		name    string
		publish func() events.PublishResult
		route   string
		channel string
	}{
		{
			name: "article created",
			publish: func() events.PublishResult {
				return publisher.PublishArticleCreated(ctx, events.ArticleEvent{ArticleID: "art-1", AuthorID: "u-1", Title: "T"})
			},
			route:   events.RouteArticleCreated,
			channel: "article-events",
		},
		{
			name: "article liked",
			publish: func() events.PublishResult {
				return publisher.PublishArticleLiked(ctx, events.ArticleLikeEvent{ArticleID: "art-1", UserID: "u-2", Likes: 3, IsLiked: true})
			},
			route:   events.RouteArticleLiked,
			channel: "article-events",
		},
		{
			name: "comment created",
			publish: func() events.PublishResult {
				return publisher.PublishCommentCreated(ctx, events.CommentEvent{CommentID: "com-1", ArticleID: "art-1"})
			},
			route:   events.RouteCommentCreated,
			channel: "comment-events",
		},
		{
			name: "comment deleted",
			publish: func() events.PublishResult {
				return publisher.PublishCommentDeleted(ctx, events.CommentEvent{CommentID: "com-1", ArticleID: "art-1"})
			},
			route:   events.RouteCommentDeleted,
			channel: "comment-events",
		},
	}

	for _, tc := range cases {
		result := tc.publish()
		require.True(t, result.Delivered(), tc.name)
		assert.Equal(t, tc.route, result.Event.RoutingKey, tc.name)
	}

	brokerMsgs := broker.Messages()
	pubsubMsgs := pubsub.Messages()
	require.Len(t, brokerMsgs, len(cases))
	require.Len(t, pubsubMsgs, len(cases))
	for i, tc := range cases {
		assert.Equal(t, tc.route, brokerMsgs[i].Key, tc.name)
		assert.Equal(t, tc.channel, pubsubMsgs[i].Key, tc.name)
	}
}
