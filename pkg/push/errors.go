package push

import "errors"

var (
	// ErrProviderFailed classifies a failed or malformed push provider call.
	ErrProviderFailed = errors.New("push provider call failed")

	// ErrMissingCredentials is returned when the provider is constructed
	// without an app ID or API key.
	ErrMissingCredentials = errors.New("push provider credentials missing")
)
