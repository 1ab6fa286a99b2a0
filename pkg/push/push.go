package push

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/notifykit/pkg/logger"
)

// Message is one batched push delivery to the external provider.
type Message struct {
	Tokens  []string       `json:"tokens"`
	Title   string         `json:"title"`
	Body    string         `json:"body"`
	Data    map[string]any `json:"data,omitempty"`
}

// Provider sends a batched push message to the external push service.
type Provider interface {
	Send(ctx context.Context, msg Message) error
}

// DispatchResult records the outcome of a dispatch. Provider failures are
// captured here instead of being returned: push is strictly a secondary
// delivery path and must never affect persisted notification state.
type DispatchResult struct {
	// Tokens is the number of device tokens included after filtering.
	Tokens int
	// Sent reports whether an outbound provider call was made and accepted.
	Sent bool
	// Err is the suppressed provider error, if any.
	Err error
}

// Gateway batches device tokens and issues at most one outbound call per
// dispatch to the configured push provider.
type Gateway struct {
	provider Provider
	log      *slog.Logger
	timeout  time.Duration
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithLogger sets the logger for the Gateway.
func WithLogger(log *slog.Logger) GatewayOption {
	return func(g *Gateway) {
		if log != nil {
			g.log = log
		}
	}
}

// WithTimeout bounds the outbound provider call. Defaults to 10s.
func WithTimeout(d time.Duration) GatewayOption {
	return func(g *Gateway) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// NewGateway creates a push delivery gateway. A nil provider downgrades to
// NoOpProvider so dispatch stays safe when push credentials are absent.
func NewGateway(provider Provider, opts ...GatewayOption) *Gateway {
	if provider == nil {
		provider = NoOpProvider{}
	}

	g := &Gateway{
		provider: provider,
		log:      slog.Default(),
		timeout:  10 * time.Second,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Dispatch filters out empty device tokens and, if any remain, issues exactly
// one batched call to the provider. An empty filtered set is success with no
// outbound call. Provider errors are logged, classified as ErrProviderFailed
// and recorded in the result, never returned.
func (g *Gateway) Dispatch(ctx context.Context, tokens []string, title, body string, data map[string]any) DispatchResult {
	valid := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t != "" {
			valid = append(valid, t)
		}
	}

	result := DispatchResult{Tokens: len(valid)}
	if len(valid) == 0 {
		return result
	}

	sendCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if err := g.provider.Send(sendCtx, Message{
		Tokens: valid,
		Title:  title,
		Body:   body,
		Data:   data,
	}); err != nil {
		result.Err = errors.Join(ErrProviderFailed, err)
		g.log.ErrorContext(ctx, "push dispatch failed",
			logger.TokenCount(len(valid)),
			logger.Error(err),
		)
		return result
	}

	result.Sent = true
	return result
}
