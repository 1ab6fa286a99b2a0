package events

import "errors"

var (
	// ErrBrokerUnavailable classifies a failed durable publish.
	ErrBrokerUnavailable = errors.New("durable broker unavailable")

	// ErrPubSubUnavailable classifies a failed ephemeral publish.
	ErrPubSubUnavailable = errors.New("ephemeral pub/sub unavailable")
)
