// Package configuration holds the LLM client settings shared by every
// pipeline stage: provider credentials and endpoints, HTTP tuning, request
// pacing, and log redaction.
package configuration

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Configuration errors.
var (
	// ErrNoProviders indicates the client was built without any provider.
	ErrNoProviders = errors.New("no providers configured")
)

// Config holds the complete configuration for the LLM client.
type Config struct {
	// HTTPTimeout bounds every call unless the request overrides it.
	// Contestant completions run long; the default is generous.
	HTTPTimeout time.Duration `json:"http_timeout"`

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client `json:"-"`

	// Providers maps provider name to its endpoint and credentials.
	// Only providers present here are routable.
	Providers map[string]ProviderConfig `json:"providers"`

	// RateLimit paces outbound requests per provider/model route.
	RateLimit LocalRateLimitConfig `json:"rate_limit"`

	// Observability controls request logging detail.
	Observability ObservabilityConfig `json:"observability"`
}

// ProviderConfig holds provider-specific configuration and authentication.
type ProviderConfig struct {
	// Endpoint overrides the provider's default API base URL. Required for
	// OpenAI-compatible providers that are not OpenAI.
	Endpoint string `json:"endpoint,omitempty"`

	// APIKey authenticates requests. Sensitive, never serialized.
	APIKey string `json:"-"`

	// Headers adds custom headers to every request to this provider.
	Headers map[string]string `json:"headers,omitempty"`
}

// LocalRateLimitConfig configures the in-memory token bucket pacer.
type LocalRateLimitConfig struct {
	TokensPerSecond float64 `json:"tokens_per_second"`
	BurstSize       int     `json:"burst_size"`
	Enabled         bool    `json:"enabled"`
}

// ObservabilityConfig controls request logging detail.
type ObservabilityConfig struct {
	// RedactPrompts logs prompt lengths instead of prompt text.
	RedactPrompts bool `json:"redact_prompts"`
}

// HTTP and pacing defaults.
const (
	DefaultHTTPTimeoutSeconds = 120
	DefaultMaxIdleConns       = 100
	DefaultIdleTimeoutSeconds = 90
	DefaultTLSTimeoutSeconds  = 10
	DefaultTokensPerSecond    = 2.0
	DefaultBurstSize          = 4
)

// DefaultConfig returns a configuration with sensible defaults for a
// sequential batch workload. Providers must be added by the caller.
func DefaultConfig() *Config {
	return &Config{
		HTTPTimeout: DefaultHTTPTimeoutSeconds * time.Second,
		Providers:   make(map[string]ProviderConfig),
		RateLimit: LocalRateLimitConfig{
			TokensPerSecond: DefaultTokensPerSecond,
			BurstSize:       DefaultBurstSize,
			Enabled:         true,
		},
		Observability: ObservabilityConfig{RedactPrompts: true},
	}
}

// NewHTTPClient builds the HTTP client used when Config.HTTPClient is unset.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeoutSeconds * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        DefaultMaxIdleConns,
			IdleConnTimeout:     DefaultIdleTimeoutSeconds * time.Second,
			TLSHandshakeTimeout: DefaultTLSTimeoutSeconds * time.Second,
		},
	}
}

// Validate checks the configuration is usable for building a client.
func (c *Config) Validate() error {
	if len(c.Providers) == 0 {
		return ErrNoProviders
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.TokensPerSecond <= 0 {
			return fmt.Errorf("rate limit tokens per second must be positive, got %v", c.RateLimit.TokensPerSecond)
		}
		if c.RateLimit.BurstSize <= 0 {
			return fmt.Errorf("rate limit burst size must be positive, got %d", c.RateLimit.BurstSize)
		}
	}
	return nil
}
