package providers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spawner-ai/skillbench/internal/llm/configuration"
	llmerrors "github.com/spawner-ai/skillbench/internal/llm/errors"
)

func TestNewRouter(t *testing.T) {
	configs := map[string]configuration.ProviderConfig{
		ProviderAnthropic: {APIKey: "a"},
		ProviderOpenAI:    {APIKey: "b"},
		ProviderGoogle:    {APIKey: "c"},
		ProviderTogether:  {APIKey: "d"},
	}

	r, err := NewRouter(configs)
	require.NoError(t, err)

	for name := range configs {
		adapter, pickErr := r.Pick(name, "any-model")
		require.NoError(t, pickErr)
		assert.Equal(t, name, adapter.Name())
	}
}

func TestNewRouter_UnknownProvider(t *testing.T) {
	_, err := NewRouter(map[string]configuration.ProviderConfig{
		"mistral": {APIKey: "x"},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, llmerrors.ErrUnknownProvider))
}

func TestRouter_Pick_Unconfigured(t *testing.T) {
	r, err := NewRouter(map[string]configuration.ProviderConfig{
		ProviderAnthropic: {APIKey: "a"},
	})
	require.NoError(t, err)

	_, err = r.Pick(ProviderOpenAI, "gpt-4o")
	assert.True(t, errors.Is(err, llmerrors.ErrUnknownProvider))
}
