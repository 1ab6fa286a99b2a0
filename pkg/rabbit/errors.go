package rabbit

import "errors"

var (
	ErrEmptyConnectionURL    = errors.New("empty rabbitmq connection URL")
	ErrBrokerNotReady        = errors.New("rabbitmq did not become ready within the given time period")
	ErrChannelFailed         = errors.New("failed to open rabbitmq channel")
	ErrExchangeDeclareFailed = errors.New("failed to declare rabbitmq exchange")
)
