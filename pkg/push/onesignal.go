package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultOneSignalEndpoint = "https://onesignal.com/api/v1/notifications"

// Config describes the OneSignal application used as the push provider.
type Config struct {
	AppID      string `env:"ONESIGNAL_APP_ID"`       // AppID identifies the OneSignal application.
	RESTAPIKey string `env:"ONESIGNAL_REST_API_KEY"` // RESTAPIKey authorizes notification creation.
}

// Enabled reports whether push credentials are present. With missing
// credentials the application falls back to NoOpProvider.
func (c Config) Enabled() bool {
	return c.AppID != "" && c.RESTAPIKey != ""
}

// OneSignal is a Provider backed by the OneSignal REST API. One dispatch maps
// to one create-notification call carrying the whole token batch.
type OneSignal struct {
	cfg      Config
	endpoint string
	client   *http.Client
}

// OneSignalOption configures a OneSignal provider.
type OneSignalOption func(*OneSignal)

// WithHTTPClient sets a custom HTTP client, e.g. for tests or proxies.
func WithHTTPClient(client *http.Client) OneSignalOption {
	return func(p *OneSignal) {
		if client != nil {
			p.client = client
		}
	}
}

// WithEndpoint overrides the API endpoint. Intended for tests.
func WithEndpoint(endpoint string) OneSignalOption {
	return func(p *OneSignal) {
		if endpoint != "" {
			p.endpoint = endpoint
		}
	}
}

// NewOneSignal creates a OneSignal provider.
// The HTTP client is reused across requests for connection pooling.
func NewOneSignal(cfg Config, opts ...OneSignalOption) (*OneSignal, error) {
	if !cfg.Enabled() {
		return nil, ErrMissingCredentials
	}

	p := &OneSignal{
		cfg:      cfg,
		endpoint: defaultOneSignalEndpoint,
		client: &http.Client{
			Timeout: 30 * time.Second, // ceiling; per-call timeout comes from the gateway context
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// oneSignalRequest mirrors the create-notification API body.
type oneSignalRequest struct {
	AppID            string            `json:"app_id"`
	IncludePlayerIDs []string          `json:"include_player_ids"`
	Headings         map[string]string `json:"headings"`
	Contents         map[string]string `json:"contents"`
	Data             map[string]any    `json:"data,omitempty"`
}

func (p *OneSignal) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(oneSignalRequest{
		AppID:            p.cfg.AppID,
		IncludePlayerIDs: msg.Tokens,
		Headings:         map[string]string{"en": msg.Title},
		Contents:         map[string]string{"en": msg.Body},
		Data:             msg.Data,
	})
	if err != nil {
		return fmt.Errorf("encode onesignal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build onesignal request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+p.cfg.RESTAPIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("call onesignal: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Read a bounded slice of the body for diagnostics only.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("onesignal responded %d: %s", resp.StatusCode, body)
	}

	return nil
}
