package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spawner-ai/skillbench/internal/llm/configuration"
	llmerrors "github.com/spawner-ai/skillbench/internal/llm/errors"
	"github.com/spawner-ai/skillbench/internal/llm/transport"
)

// Metrics collects counters and histograms emitted by the client
// middlewares. Implementations must be safe for concurrent use.
type Metrics interface {
	// IncrementCounter increments a counter metric by the given value.
	IncrementCounter(name string, tags map[string]string, value float64)

	// RecordHistogram records a value in a histogram metric.
	RecordHistogram(name string, tags map[string]string, value float64)
}

// NoOpMetrics discards all metrics. It is the default collector when no
// real backend is configured.
type NoOpMetrics struct{}

// NewNoOpMetrics creates a metrics collector that discards everything.
func NewNoOpMetrics() *NoOpMetrics { return &NoOpMetrics{} }

// IncrementCounter implements Metrics.
func (n *NoOpMetrics) IncrementCounter(string, map[string]string, float64) {}

// RecordHistogram implements Metrics.
func (n *NoOpMetrics) RecordHistogram(string, map[string]string, float64) {}

// LoggingMiddleware provides structured request/response logging and metric
// emission for every provider call. Prompt text is redacted unless the
// observability configuration says otherwise.
type LoggingMiddleware struct {
	logger        *slog.Logger
	metrics       Metrics
	redactPrompts bool
}

// NewLoggingMiddleware creates logging middleware with the given logger and
// metrics collector. A nil logger falls back to slog.Default and a nil
// metrics collector falls back to NoOpMetrics.
func NewLoggingMiddleware(logger *slog.Logger, metrics Metrics, obs configuration.ObservabilityConfig) *LoggingMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NewNoOpMetrics()
	}

	return &LoggingMiddleware{
		logger:        logger.With("component", "llm_client"),
		metrics:       metrics,
		redactPrompts: obs.RedactPrompts,
	}
}

// Middleware returns the transport middleware function.
func (m *LoggingMiddleware) Middleware() transport.Middleware {
	return func(next transport.Handler) transport.Handler {
		return transport.HandlerFunc(func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
			start := time.Now()

			requestID := req.TraceID
			if requestID == "" {
				requestID = uuid.New().String()
			}

			logger := m.logger.With(
				"request_id", requestID,
				"provider", req.Provider,
				"model", req.Model,
				"operation", string(req.Operation),
			)

			m.logRequest(ctx, logger, req)

			baseTags := map[string]string{
				"provider":  req.Provider,
				"model":     req.Model,
				"operation": string(req.Operation),
			}
			m.metrics.IncrementCounter("llm_requests_total", baseTags, 1)

			resp, err := next.Handle(ctx, req)
			duration := time.Since(start)

			if err != nil {
				m.handleError(ctx, logger, baseTags, err, duration)
				return nil, err
			}

			m.handleSuccess(ctx, logger, baseTags, resp, duration)
			return resp, nil
		})
	}
}

func (m *LoggingMiddleware) logRequest(ctx context.Context, logger *slog.Logger, req *transport.Request) {
	attrs := []any{
		"max_tokens", req.MaxTokens,
		"temperature", req.Temperature,
	}

	if m.redactPrompts {
		attrs = append(attrs,
			"prompt_length", len(req.Prompt),
			"system_prompt_length", len(req.SystemPrompt),
		)
	} else {
		attrs = append(attrs,
			"prompt", req.Prompt,
			"system_prompt", req.SystemPrompt,
		)
	}

	logger.InfoContext(ctx, "llm request started", attrs...)
}

func (m *LoggingMiddleware) handleError(ctx context.Context, logger *slog.Logger, baseTags map[string]string, err error, duration time.Duration) {
	errorType := llmerrors.Classify(err)

	errorTags := copyTags(baseTags)
	errorTags["error_type"] = string(errorType)

	m.metrics.IncrementCounter("llm_requests_errors_total", errorTags, 1)
	m.metrics.RecordHistogram("llm_request_duration_ms", errorTags, float64(duration.Milliseconds()))

	logger.ErrorContext(ctx, "llm request failed",
		"error", err,
		"error_type", string(errorType),
		"duration_ms", duration.Milliseconds(),
	)
}

func (m *LoggingMiddleware) handleSuccess(ctx context.Context, logger *slog.Logger, baseTags map[string]string, resp *transport.Response, duration time.Duration) {
	successTags := copyTags(baseTags)
	successTags["finish_reason"] = string(resp.FinishReason)

	m.metrics.IncrementCounter("llm_requests_success_total", successTags, 1)
	m.metrics.RecordHistogram("llm_request_duration_ms", successTags, float64(duration.Milliseconds()))
	m.metrics.RecordHistogram("llm_tokens_prompt", baseTags, float64(resp.Usage.PromptTokens))
	m.metrics.RecordHistogram("llm_tokens_completion", baseTags, float64(resp.Usage.CompletionTokens))

	logger.InfoContext(ctx, "llm request completed",
		"duration_ms", duration.Milliseconds(),
		"finish_reason", string(resp.FinishReason),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"total_tokens", resp.Usage.TotalTokens,
		"content_length", len(resp.Content),
	)
}

func copyTags(tags map[string]string) map[string]string {
	out := make(map[string]string, len(tags)+1)
	for k, v := range tags {
		out[k] = v
	}
	return out
}
