// Package ratelimit paces outbound LLM requests with per-route token buckets.
//
// The harness runs stages as sequential batches and never retries, so the
// limiter blocks until a token is available instead of failing fast; a failed
// wait would otherwise turn into a spurious error record. Only a context
// that cannot wait long enough surfaces an error.
package ratelimit

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"github.com/spawner-ai/skillbench/internal/llm/configuration"
	llmerrors "github.com/spawner-ai/skillbench/internal/llm/errors"
	"github.com/spawner-ai/skillbench/internal/llm/transport"
)

// middleware holds one token bucket per provider:model route.
type middleware struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	cfg      configuration.LocalRateLimitConfig
}

// NewMiddleware creates a pacing middleware from the local limiter config.
// A disabled config yields a pass-through middleware so callers don't need
// conditional wiring.
func NewMiddleware(cfg configuration.LocalRateLimitConfig) transport.Middleware {
	m := &middleware{
		limiters: make(map[string]*rate.Limiter),
		cfg:      cfg,
	}

	return func(next transport.Handler) transport.Handler {
		return transport.HandlerFunc(func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
			if !m.cfg.Enabled {
				return next.Handle(ctx, req)
			}
			if err := m.wait(ctx, req); err != nil {
				return nil, err
			}
			return next.Handle(ctx, req)
		})
	}
}

// routeKey buckets limits per provider and model. Separate models on the
// same provider have independent quotas upstream, so they pace
// independently here too.
func routeKey(req *transport.Request) string {
	return fmt.Sprintf("%s:%s", req.Provider, req.Model)
}

// limiter returns the bucket for the route, creating it on first use.
func (m *middleware) limiter(key string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.limiters[key]
	if !ok {
		l = rate.NewLimiter(rate.Limit(m.cfg.TokensPerSecond), m.cfg.BurstSize)
		m.limiters[key] = l
	}
	return l
}

// wait blocks until the route's bucket grants a token. Context cancellation
// propagates as-is; a deadline the wait cannot meet becomes a RateLimitError
// so the failure is classified as pacing rather than provider trouble.
func (m *middleware) wait(ctx context.Context, req *transport.Request) error {
	if err := m.limiter(routeKey(req)).Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &llmerrors.RateLimitError{
			Provider: req.Provider,
			Model:    req.Model,
			Limit:    m.cfg.TokensPerSecond,
			Burst:    m.cfg.BurstSize,
		}
	}
	return nil
}
