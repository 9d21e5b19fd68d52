package configuration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultHTTPTimeoutSeconds*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, DefaultTokensPerSecond, cfg.RateLimit.TokensPerSecond)
	assert.True(t, cfg.Observability.RedactPrompts)
	assert.Empty(t, cfg.Providers)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "no_providers",
			mutate:  func(*Config) {},
			wantErr: "no providers configured",
		},
		{
			name: "valid_with_provider",
			mutate: func(c *Config) {
				c.Providers["anthropic"] = ProviderConfig{APIKey: "sk-test"}
			},
		},
		{
			name: "zero_rate_with_limiter_enabled",
			mutate: func(c *Config) {
				c.Providers["openai"] = ProviderConfig{APIKey: "sk-test"}
				c.RateLimit.TokensPerSecond = 0
			},
			wantErr: "tokens per second",
		},
		{
			name: "zero_burst_with_limiter_enabled",
			mutate: func(c *Config) {
				c.Providers["openai"] = ProviderConfig{APIKey: "sk-test"}
				c.RateLimit.BurstSize = 0
			},
			wantErr: "burst size",
		},
		{
			name: "disabled_limiter_skips_pacing_checks",
			mutate: func(c *Config) {
				c.Providers["openai"] = ProviderConfig{APIKey: "sk-test"}
				c.RateLimit = LocalRateLimitConfig{Enabled: false}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewHTTPClient_DefaultsNonPositiveTimeout(t *testing.T) {
	client := NewHTTPClient(0)
	assert.Equal(t, DefaultHTTPTimeoutSeconds*time.Second, client.Timeout)

	client = NewHTTPClient(10 * time.Second)
	assert.Equal(t, 10*time.Second, client.Timeout)
}
