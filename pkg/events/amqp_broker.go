package events

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPChannel is the subset of *amqp091.Channel used by the broker.
// Extracted as an interface so tests can substitute a recording fake.
type AMQPChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPBroker publishes events to a durable RabbitMQ topic exchange with
// persistent delivery mode, partitioned by routing key.
type AMQPBroker struct {
	ch       AMQPChannel
	exchange string
}

// NewAMQPBroker creates a broker bound to the given channel and exchange.
// The exchange is expected to have been declared via rabbit.NewPublisherChannel.
func NewAMQPBroker(ch AMQPChannel, exchange string) *AMQPBroker {
	return &AMQPBroker{ch: ch, exchange: exchange}
}

func (b *AMQPBroker) Publish(ctx context.Context, routingKey string, body []byte) error {
	return b.ch.PublishWithContext(ctx, b.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}
