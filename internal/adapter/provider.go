// Package adapter provides implementations for external AI provider integrations.
// It uses the Adapter pattern to abstract provider-specific APIs behind a common interface.
package adapter

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/hpn/hpn-chat/internal/domain"
)

// DefaultTimeout is the default HTTP client timeout for all adapters.
const DefaultTimeout = 30 * time.Second

// AIProvider defines the interface for AI backend adapters.
// All provider implementations must satisfy this interface.
type AIProvider interface {
	// GetCompletion sends the conversation history to the backend and returns
	// the assistant's reply text. The history must be non-empty and end with
	// a user message. Each call is a single synchronous round-trip: no
	// retries, no backoff, no rate-limit handling.
	GetCompletion(ctx context.Context, history []domain.Message) (string, error)

	// Name returns the provider's identifier string.
	Name() string

	// HistoryMode declares how much of the history this backend consumes,
	// so the caller can trim what it sends accordingly.
	HistoryMode() domain.HistoryMode
}

// Option is a functional option shared by all adapter constructors.
type Option func(*clientConfig)

// clientConfig holds the HTTP-level knobs common to every adapter.
type clientConfig struct {
	baseURL    string
	httpClient *http.Client
}

// WithBaseURL sets a custom base URL for the backend API.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.httpClient.Timeout = timeout
	}
}

// newClientConfig applies options on top of the adapter's default base URL.
func newClientConfig(defaultBaseURL string, opts ...Option) clientConfig {
	c := clientConfig{
		baseURL: strings.TrimSuffix(defaultBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}
