// Package providers implements the HTTP adapters for each supported LLM
// service and the router that picks between them.
package providers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spawner-ai/skillbench/internal/llm/configuration"
	llmerrors "github.com/spawner-ai/skillbench/internal/llm/errors"
	"github.com/spawner-ai/skillbench/internal/llm/transport"
)

// Router selects the appropriate provider adapter for request routing.
type Router interface {
	// Pick selects the adapter for the specified provider and model
	// combination. Returns an error if the provider is not configured.
	Pick(provider, model string) (ProviderAdapter, error)
}

// ProviderAdapter abstracts provider-specific HTTP communication patterns.
// Each provider implements this interface to handle its unique API format,
// authentication scheme, and response structure.
type ProviderAdapter interface {
	// Build constructs a provider-specific HTTP request from the normalized
	// request, setting authentication headers and endpoints.
	Build(ctx context.Context, req *transport.Request) (*http.Request, error)

	// Parse extracts normalized data from the provider's HTTP response.
	Parse(httpResp *http.Response) (*transport.Response, error)

	// Name returns the canonical provider identifier for routing and logs.
	Name() string
}

// Supported LLM provider identifiers.
// These constants must match the provider names used in configuration and
// in the jury section of config.yaml.
const (
	ProviderAnthropic = "anthropic" // Anthropic Claude models
	ProviderOpenAI    = "openai"    // OpenAI GPT models
	ProviderGoogle    = "google"    // Google Gemini models
	ProviderTogether  = "together"  // Together-hosted open models, OpenAI-compatible API
)

// NewRouter creates a router with one adapter per configured provider.
func NewRouter(configs map[string]configuration.ProviderConfig) (Router, error) {
	adapters := make(map[string]ProviderAdapter)

	for name, cfg := range configs {
		var adapter ProviderAdapter
		switch name {
		case ProviderAnthropic:
			adapter = NewAnthropicAdapter(cfg)
		case ProviderOpenAI:
			adapter = NewOpenAIAdapter(cfg)
		case ProviderGoogle:
			adapter = NewGoogleAdapter(cfg)
		case ProviderTogether:
			adapter = NewTogetherAdapter(cfg)
		default:
			return nil, fmt.Errorf("%w: %s", llmerrors.ErrUnknownProvider, name)
		}
		adapters[name] = adapter
	}

	return &router{adapters: adapters}, nil
}

// router implements Router with a provider adapter registry.
type router struct {
	adapters map[string]ProviderAdapter
}

// Pick selects the adapter for the given provider name.
func (r *router) Pick(provider, _ string) (ProviderAdapter, error) {
	adapter, ok := r.adapters[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", llmerrors.ErrUnknownProvider, provider)
	}
	return adapter, nil
}
