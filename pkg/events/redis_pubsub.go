package events

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisPubSub publishes events to Redis pub/sub channels. Delivery is
// fire-and-forget: only currently-subscribed clients receive the message.
type RedisPubSub struct {
	client redis.UniversalClient
}

// NewRedisPubSub creates an ephemeral pub/sub channel on the given client.
func NewRedisPubSub(client redis.UniversalClient) *RedisPubSub {
	return &RedisPubSub{client: client}
}

func (p *RedisPubSub) Publish(ctx context.Context, channel string, body []byte) error {
	return p.client.Publish(ctx, channel, body).Err()
}
