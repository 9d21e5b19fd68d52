package llm_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spawner-ai/skillbench/internal/llm"
	"github.com/spawner-ai/skillbench/internal/llm/configuration"
	"github.com/spawner-ai/skillbench/internal/llm/transport"
)

func loggedRequest() *transport.Request {
	return &transport.Request{
		Operation:   transport.OpJudgment,
		Provider:    "anthropic",
		Model:       "claude-test",
		Prompt:      "secret prompt text",
		MaxTokens:   100,
		Temperature: 0,
		TraceID:     "trace-1",
	}
}

func okHandler() transport.Handler {
	return transport.HandlerFunc(func(_ context.Context, _ *transport.Request) (*transport.Response, error) {
		return &transport.Response{Content: "fine", FinishReason: transport.FinishStop}, nil
	})
}

func TestLoggingMiddleware_RedactsPrompts(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	mw := llm.NewLoggingMiddleware(logger, nil, configuration.ObservabilityConfig{RedactPrompts: true})
	handler := mw.Middleware()(okHandler())

	_, err := handler.Handle(context.Background(), loggedRequest())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "prompt_length=18")
	assert.NotContains(t, out, "secret prompt text")
	assert.Contains(t, out, "request_id=trace-1")
}

func TestLoggingMiddleware_LogsPromptsWhenNotRedacted(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	mw := llm.NewLoggingMiddleware(logger, nil, configuration.ObservabilityConfig{RedactPrompts: false})
	handler := mw.Middleware()(okHandler())

	_, err := handler.Handle(context.Background(), loggedRequest())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "secret prompt text")
}

func TestLoggingMiddleware_ClassifiesErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	failing := transport.HandlerFunc(func(_ context.Context, _ *transport.Request) (*transport.Response, error) {
		return nil, errors.New("connection refused")
	})

	mw := llm.NewLoggingMiddleware(logger, nil, configuration.ObservabilityConfig{RedactPrompts: true})
	handler := mw.Middleware()(failing)

	_, err := handler.Handle(context.Background(), loggedRequest())
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "llm request failed")
	assert.Contains(t, out, "error_type=network")
}

func TestLoggingMiddleware_GeneratesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	mw := llm.NewLoggingMiddleware(logger, nil, configuration.ObservabilityConfig{RedactPrompts: true})
	handler := mw.Middleware()(okHandler())

	req := loggedRequest()
	req.TraceID = ""
	_, err := handler.Handle(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "request_id=")
}
