// Package errors defines typed errors for LLM provider communication.
// The harness never retries a failed call; classification exists so error
// records and log lines name the failure category instead of burying it in
// a raw provider body.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType categorizes LLM operation failures.
type ErrorType string

const (
	// ErrorTypeTimeout indicates request timeout or deadline exceeded.
	ErrorTypeTimeout ErrorType = "timeout"

	// ErrorTypeRateLimit indicates the provider or the local pacer rejected
	// the request for exceeding a rate limit.
	ErrorTypeRateLimit ErrorType = "rate_limit"

	// ErrorTypeNetwork indicates network connectivity issues.
	ErrorTypeNetwork ErrorType = "network"

	// ErrorTypeProvider indicates the provider service is unavailable.
	ErrorTypeProvider ErrorType = "provider_unavailable"

	// ErrorTypeValidation indicates the provider rejected the request body.
	ErrorTypeValidation ErrorType = "validation_failed"

	// ErrorTypeContent indicates content blocked by safety filters.
	ErrorTypeContent ErrorType = "content_filtered"

	// ErrorTypeAuth indicates authentication failed.
	ErrorTypeAuth ErrorType = "authentication"

	// ErrorTypePermission indicates insufficient permissions.
	ErrorTypePermission ErrorType = "permission_denied"

	// ErrorTypeQuota indicates the account quota is exhausted.
	ErrorTypeQuota ErrorType = "quota_exceeded"

	// ErrorTypeUnknown indicates an unclassified error.
	ErrorTypeUnknown ErrorType = "unknown"
)

// Common LLM operation errors for consistent error handling.
var (
	// ErrProviderUnavailable indicates the provider service is down or unreachable.
	ErrProviderUnavailable = errors.New("provider service unavailable")

	// ErrRateLimitExceeded indicates a rate limit has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrUnknownProvider indicates an unknown or unconfigured provider.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrMissingAPIKey indicates the provider has no API key configured.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidResponse indicates the provider returned an unusable response.
	ErrInvalidResponse = errors.New("invalid provider response")
)

// ProviderError captures structured error responses from LLM providers.
// Includes the HTTP status and provider-specific error code so a failed
// judgment can be diagnosed from its record alone.
type ProviderError struct {
	Provider   string    `json:"provider"`
	StatusCode int       `json:"status_code"`
	Message    string    `json:"message"`
	Code       string    `json:"code,omitempty"`
	Type       ErrorType `json:"type"`
}

// Error returns the provider error with status code context.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

// RateLimitError reports a request rejected by the local pacer before it
// reached the provider.
type RateLimitError struct {
	Provider string  `json:"provider"`
	Model    string  `json:"model"`
	Limit    float64 `json:"limit"`
	Burst    int     `json:"burst"`
}

// Error returns the rate limit error with the offending route.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("local rate limit exceeded for %s/%s", e.Provider, e.Model)
}

// Unwrap allows errors.Is checks against ErrRateLimitExceeded.
func (e *RateLimitError) Unwrap() error { return ErrRateLimitExceeded }
