package push

import "context"

// NoOpProvider is a provider that does nothing. Used when push credentials
// are not configured, so dispatch remains a silent success.
type NoOpProvider struct{}

// Send does nothing and returns nil.
func (NoOpProvider) Send(ctx context.Context, msg Message) error {
	return nil
}
