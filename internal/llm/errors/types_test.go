package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderError_Error(t *testing.T) {
	err := &ProviderError{
		Provider:   "anthropic",
		StatusCode: http.StatusTooManyRequests,
		Message:    "overloaded",
		Type:       ErrorTypeRateLimit,
	}
	assert.Equal(t, "anthropic error (status 429): overloaded", err.Error())
}

func TestRateLimitError_UnwrapsToSentinel(t *testing.T) {
	err := &RateLimitError{Provider: "openai", Model: "gpt-4o", Limit: 2, Burst: 1}

	assert.True(t, errors.Is(err, ErrRateLimitExceeded))
	assert.Contains(t, err.Error(), "openai/gpt-4o")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{
			name: "nil_error",
			err:  nil,
			want: "",
		},
		{
			name: "provider_error_carries_type",
			err:  &ProviderError{Provider: "google", StatusCode: 401, Type: ErrorTypeAuth},
			want: ErrorTypeAuth,
		},
		{
			name: "wrapped_provider_error",
			err:  fmt.Errorf("call failed: %w", &ProviderError{Provider: "openai", StatusCode: 503, Type: ErrorTypeProvider}),
			want: ErrorTypeProvider,
		},
		{
			name: "rate_limit_error_type",
			err:  &RateLimitError{Provider: "anthropic", Model: "claude"},
			want: ErrorTypeRateLimit,
		},
		{
			name: "missing_key_sentinel",
			err:  fmt.Errorf("judge skipped: %w", ErrMissingAPIKey),
			want: ErrorTypeAuth,
		},
		{
			name: "timeout_message_pattern",
			err:  errors.New("context deadline exceeded"),
			want: ErrorTypeTimeout,
		},
		{
			name: "connection_message_pattern",
			err:  errors.New("dial tcp: connection refused"),
			want: ErrorTypeNetwork,
		},
		{
			name: "unclassifiable",
			err:  errors.New("something odd"),
			want: ErrorTypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}
