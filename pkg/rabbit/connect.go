package rabbit

import (
	"context"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Connect establishes a connection to a RabbitMQ broker using the provided
// configuration. It attempts to connect up to cfg.RetryAttempts times with
// cfg.RetryInterval between attempts, all bounded by cfg.ConnectTimeout.
//
// Returns ErrBrokerNotReady when all attempts fail. Reconnection after a
// dropped connection is the amqp091 client's concern, not this factory's.
func Connect(ctx context.Context, cfg Config) (*amqp.Connection, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	for range cfg.RetryAttempts {
		conn, err := amqp.Dial(cfg.ConnectionURL)
		if err == nil {
			return conn, nil
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrBrokerNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrBrokerNotReady
}

// NewPublisherChannel opens a channel on the connection and declares the
// durable topic exchange from the configuration. The declaration is
// idempotent, so calling it on every startup is safe.
func NewPublisherChannel(conn *amqp.Connection, cfg Config) (*amqp.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, errors.Join(ErrChannelFailed, err)
	}

	if err := ch.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		return nil, errors.Join(ErrExchangeDeclareFailed, err)
	}

	return ch, nil
}
