package errors

import (
	"errors"
	"strings"
)

// Classify determines the ErrorType for any error surfaced by an LLM call.
// Typed errors carry their own classification; untyped errors fall back to
// message pattern matching so log lines and error records still get a
// category rather than "unknown" for the common failure shapes.
func Classify(err error) ErrorType {
	if err == nil {
		return ""
	}

	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Type
	}

	var rateErr *RateLimitError
	if errors.As(err, &rateErr) {
		return ErrorTypeRateLimit
	}

	switch {
	case errors.Is(err, ErrRateLimitExceeded):
		return ErrorTypeRateLimit
	case errors.Is(err, ErrProviderUnavailable):
		return ErrorTypeProvider
	case errors.Is(err, ErrMissingAPIKey):
		return ErrorTypeAuth
	}

	return classifyMessage(err.Error())
}

// classifyMessage pattern-matches untyped error text.
func classifyMessage(msg string) ErrorType {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "rate limit"):
		return ErrorTypeRateLimit
	case strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline"):
		return ErrorTypeTimeout
	case strings.Contains(lower, "unauthorized") || strings.Contains(lower, "authentication"):
		return ErrorTypeAuth
	case strings.Contains(lower, "forbidden") || strings.Contains(lower, "permission"):
		return ErrorTypePermission
	case strings.Contains(lower, "quota"):
		return ErrorTypeQuota
	case strings.Contains(lower, "network") || strings.Contains(lower, "connection"):
		return ErrorTypeNetwork
	default:
		return ErrorTypeUnknown
	}
}
