// Package events broadcasts domain events over two independent channels with
// different durability guarantees: a durable topic broker (RabbitMQ) and an
// ephemeral pub/sub channel (Redis).
//
// Both sends are always attempted and may fail independently. Failures are
// logged and captured in the returned PublishResult; they are never propagated
// to the caller, because the content mutation that triggered the event has
// already committed and must not be reported as failed over a delivery
// problem. A dropped event is acceptable loss - the underlying state change
// remains durably queryable.
//
//	publisher := events.NewPublisher(
//	    events.NewAMQPBroker(ch, cfg.Exchange),
//	    events.NewRedisPubSub(redisClient),
//	)
//
//	result := publisher.Publish(ctx, events.CategoryComment, events.RouteCommentLiked, events.CommentLikeEvent{
//	    CommentID: comment.ID,
//	    UserID:    actor.ID,
//	    Likes:     likes,
//	    IsLiked:   true,
//	})
//	if !result.Delivered() {
//	    // both channels failed; already logged, nothing to do here
//	}
//
// No ordering is guaranteed between the two channels. Within the broker,
// ordering holds per routing key only as far as the broker preserves it. The
// package performs no retries; durable-broker reconnect policy belongs to the
// amqp091 client.
package events
