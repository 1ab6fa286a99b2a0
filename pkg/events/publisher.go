package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/notifykit/pkg/logger"
)

// Broker publishes events to the durable topic exchange. Messages are
// persistent and survive consumer disconnection; ordering is only guaranteed
// per routing key if the broker preserves it.
type Broker interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// PubSub publishes events to an ephemeral channel. There is no persistence or
// replay; only currently-connected listeners receive the message.
type PubSub interface {
	Publish(ctx context.Context, channel string, body []byte) error
}

// PublishResult records the per-channel outcome of a publish. Both channels
// are always attempted; a failed channel is captured here instead of being
// returned as an error, because the triggering mutation has already committed.
type PublishResult struct {
	Event     Event
	BrokerErr error
	PubSubErr error
}

// Delivered reports whether at least one channel accepted the event.
func (r PublishResult) Delivered() bool {
	return r.BrokerErr == nil || r.PubSubErr == nil
}

// Suppressed returns the classified errors swallowed during the publish.
func (r PublishResult) Suppressed() []error {
	var errs []error
	if r.BrokerErr != nil {
		errs = append(errs, r.BrokerErr)
	}
	if r.PubSubErr != nil {
		errs = append(errs, r.PubSubErr)
	}
	return errs
}

// Publisher broadcasts domain events over the durable broker and the
// ephemeral pub/sub channel.
type Publisher struct {
	broker  Broker
	pubsub  PubSub
	log     *slog.Logger
	timeout time.Duration
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithLogger sets the logger for the Publisher.
func WithLogger(log *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		if log != nil {
			p.log = log
		}
	}
}

// WithTimeout bounds each channel send. Defaults to 10s.
func WithTimeout(d time.Duration) PublisherOption {
	return func(p *Publisher) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// NewPublisher creates an event publisher. Either channel may be nil, in
// which case it is skipped rather than reported as failed.
func NewPublisher(broker Broker, pubsub PubSub, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		broker:  broker,
		pubsub:  pubsub,
		log:     slog.Default(),
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish sends the event to both channels. Each send is attempted
// independently under the configured timeout; failures are logged, classified
// (ErrBrokerUnavailable / ErrPubSubUnavailable) and recorded in the result,
// never surfaced to the caller as a failure. No ordering is guaranteed
// between the two channels.
func (p *Publisher) Publish(ctx context.Context, category Category, routingKey string, payload any) PublishResult {
	event := Event{
		Category:   category,
		RoutingKey: routingKey,
		Payload:    payload,
		Timestamp:  time.Now().UTC(),
	}
	result := PublishResult{Event: event}

	body, err := json.Marshal(event)
	if err != nil {
		// An unencodable payload fails both channels at once.
		result.BrokerErr = errors.Join(ErrBrokerUnavailable, err)
		result.PubSubErr = errors.Join(ErrPubSubUnavailable, err)
		p.log.ErrorContext(ctx, "event payload not serializable",
			logger.RoutingKey(routingKey),
			logger.Error(err),
		)
		return result
	}

	if p.broker != nil {
		sendCtx, cancel := context.WithTimeout(ctx, p.timeout)
		if err := p.broker.Publish(sendCtx, routingKey, body); err != nil {
			result.BrokerErr = errors.Join(ErrBrokerUnavailable, err)
			p.log.ErrorContext(ctx, "durable event publish failed",
				logger.RoutingKey(routingKey),
				logger.Error(err),
			)
		}
		cancel()
	}

	if p.pubsub != nil {
		sendCtx, cancel := context.WithTimeout(ctx, p.timeout)
		if err := p.pubsub.Publish(sendCtx, category.Channel(), body); err != nil {
			result.PubSubErr = errors.Join(ErrPubSubUnavailable, err)
			p.log.ErrorContext(ctx, "ephemeral event publish failed",
				logger.Channel(category.Channel()),
				logger.Error(err),
			)
		}
		cancel()
	}

	return result
}
