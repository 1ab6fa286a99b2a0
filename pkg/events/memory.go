package events

import (
	"context"
	"sync"
)

// PublishedMessage is a message captured by one of the memory transports.
type PublishedMessage struct {
	Key  string // routing key for the broker, channel name for pub/sub
	Body []byte
}

// MemoryBroker is an in-memory Broker implementation that records published
// messages. Suitable for development and testing.
type MemoryBroker struct {
	messages []PublishedMessage
	failWith error
	mu       sync.Mutex
}

// NewMemoryBroker creates a recording in-memory broker.
func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{}
}

// FailWith makes every subsequent Publish return err. Pass nil to recover.
func (b *MemoryBroker) FailWith(err error) {
	b.mu.Lock()
	b.failWith = err
	b.mu.Unlock()
}

func (b *MemoryBroker) Publish(ctx context.Context, routingKey string, body []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failWith != nil {
		return b.failWith
	}

	cp := make([]byte, len(body))
	copy(cp, body)
	b.messages = append(b.messages, PublishedMessage{Key: routingKey, Body: cp})
	return nil
}

// Messages returns a copy of the recorded messages.
func (b *MemoryBroker) Messages() []PublishedMessage {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]PublishedMessage, len(b.messages))
	copy(out, b.messages)
	return out
}

// MemoryPubSub is an in-memory PubSub implementation that records published
// messages per channel.
type MemoryPubSub struct {
	messages []PublishedMessage
	failWith error
	mu       sync.Mutex
}

// NewMemoryPubSub creates a recording in-memory pub/sub channel.
func NewMemoryPubSub() *MemoryPubSub {
	return &MemoryPubSub{}
}

// FailWith makes every subsequent Publish return err. Pass nil to recover.
func (p *MemoryPubSub) FailWith(err error) {
	p.mu.Lock()
	p.failWith = err
	p.mu.Unlock()
}

func (p *MemoryPubSub) Publish(ctx context.Context, channel string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.failWith != nil {
		return p.failWith
	}

	cp := make([]byte, len(body))
	copy(cp, body)
	p.messages = append(p.messages, PublishedMessage{Key: channel, Body: cp})
	return nil
}

// Messages returns a copy of the recorded messages.
func (p *MemoryPubSub) Messages() []PublishedMessage {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]PublishedMessage, len(p.messages))
	copy(out, p.messages)
	return out
}
