// Package llm provides a unified client for LLM completions across multiple
// providers. It assembles the transport pipeline from the configured
// middlewares: logging on the outside so pacing delays show up in request
// latency, local rate limiting inside, and the HTTP core at the center.
package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spawner-ai/skillbench/internal/llm/configuration"
	"github.com/spawner-ai/skillbench/internal/llm/providers"
	"github.com/spawner-ai/skillbench/internal/llm/ratelimit"
	"github.com/spawner-ai/skillbench/internal/llm/transport"
)

// DefaultMaxTokens is applied when a request does not set a token budget.
const DefaultMaxTokens = 4096

// Client sends completion requests to LLM providers through the configured
// transport pipeline. Implementations are safe for sequential reuse across
// many requests.
type Client interface {
	// Complete sends a single prompt to the provider named in the request
	// and returns the normalized response.
	Complete(ctx context.Context, req *transport.Request) (*transport.Response, error)
}

// client is the production Client implementation.
type client struct {
	config  *configuration.Config
	handler transport.Handler
}

// Option configures optional client collaborators.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	metrics Metrics
}

// WithLogger sets the logger used by the logging middleware.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics sets the metrics collector used by the logging middleware.
func WithMetrics(metrics Metrics) Option {
	return func(o *options) { o.metrics = metrics }
}

// NewClient creates a client from the given configuration. A nil
// configuration uses defaults, which will fail validation until at least one
// provider is configured.
func NewClient(cfg *configuration.Config, opts ...Option) (Client, error) {
	if cfg == nil {
		cfg = configuration.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client configuration: %w", err)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	router, err := providers.NewRouter(cfg.Providers)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize provider router: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = configuration.NewHTTPClient(cfg.HTTPTimeout)
	}

	core := transport.NewHTTPHandler(httpClient, &routerAdapter{router: router})

	middlewares := []transport.Middleware{
		NewLoggingMiddleware(o.logger, o.metrics, cfg.Observability).Middleware(),
	}
	if cfg.RateLimit.Enabled {
		middlewares = append(middlewares, ratelimit.NewMiddleware(cfg.RateLimit))
	}

	return &client{
		config:  cfg,
		handler: transport.Chain(core, middlewares...),
	}, nil
}

// Complete implements Client.
func (c *client) Complete(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	if req == nil {
		return nil, fmt.Errorf("request must not be nil")
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = DefaultMaxTokens
	}

	return c.handler.Handle(ctx, req)
}

// routerAdapter bridges the providers router to the transport router
// interface. The adapter interfaces are structurally identical, so the
// conversion needs no wrapping of the picked adapter.
type routerAdapter struct {
	router providers.Router
}

func (r *routerAdapter) Pick(provider, model string) (transport.ProviderAdapter, error) {
	adapter, err := r.router.Pick(provider, model)
	if err != nil {
		return nil, err
	}
	return adapter, nil
}
