// Package transport defines the normalized request/response types and the
// composable middleware pipeline every LLM call flows through.
package transport

import (
	"net/http"
	"time"
)

// Operation differentiates contestant completions from jury verdict calls.
// Affects rate limiting keys and log labeling; both operations share the
// same HTTP path through the pipeline.
type Operation string

const (
	// OpContestant is a stage 1 call producing a contestant response.
	OpContestant Operation = "contestant"

	// OpJudgment is a stage 2 call asking a judge to compare two responses.
	OpJudgment Operation = "judgment"
)

// Request is a normalized completion request across all LLM providers.
// Adapters translate it into provider-specific HTTP requests.
type Request struct {
	// Operation labels the pipeline stage issuing the call.
	Operation Operation `json:"operation"`

	// Provider identifies the LLM service: "anthropic", "openai", "google",
	// or "together".
	Provider string `json:"provider"`

	// Model is the exact model identifier the provider expects.
	Model string `json:"model"`

	// Prompt is the user message.
	Prompt string `json:"prompt"`

	// SystemPrompt primes the model, empty for vanilla contestant calls.
	SystemPrompt string `json:"system_prompt,omitempty"`

	// MaxTokens and Temperature control generation.
	MaxTokens   int64   `json:"max_tokens"`
	Temperature float64 `json:"temperature"`

	// Timeout bounds this single call; zero means the client default.
	Timeout time.Duration `json:"timeout,omitempty"`

	// TraceID correlates log lines for one (skill, test, judge) evaluation.
	TraceID string `json:"trace_id,omitempty"`
}

// FinishReason normalizes why generation stopped across providers.
type FinishReason string

const (
	// FinishStop is a natural completion.
	FinishStop FinishReason = "stop"

	// FinishLength means the response was truncated at max tokens.
	FinishLength FinishReason = "length"

	// FinishContentFilter means a safety filter ended generation.
	FinishContentFilter FinishReason = "content_filter"

	// FinishToolUse means the model tried to call a tool.
	FinishToolUse FinishReason = "tool_use"
)

// Response is normalized output from any LLM provider.
type Response struct {
	// Content is the generated text.
	Content string `json:"content"`

	// FinishReason indicates why generation stopped. A FinishLength
	// contestant response is still benchmarked; judges see the truncation.
	FinishReason FinishReason `json:"finish_reason"`

	// ProviderRequestIDs enables correlation with provider-side logs.
	ProviderRequestIDs []string `json:"provider_request_ids,omitempty"`

	// Usage tracks token consumption and latency.
	Usage NormalizedUsage `json:"usage"`

	// Headers preserves raw response headers for debugging.
	Headers http.Header `json:"-"`

	// RawBody preserves the original response body for audit.
	RawBody []byte `json:"raw_body,omitempty"`
}

// NormalizedUsage provides consistent usage metrics across all providers.
type NormalizedUsage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
	LatencyMs        int64 `json:"latency_ms"`
}
