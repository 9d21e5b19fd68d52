// Package config loads the benchmark harness configuration from YAML and the
// environment. A config.local.yaml next to the main file replaces it
// wholesale, which keeps personal model choices out of version control. API
// keys come only from the environment, never from the file.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"

	"github.com/spawner-ai/skillbench/internal/llm/configuration"
	"github.com/spawner-ai/skillbench/internal/llm/providers"
)

// DefaultPath is where Load looks when no config file is given.
const DefaultPath = "config.yaml"

// localName replaces the main config file when present in the same directory.
const localName = "config.local.yaml"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the full harness configuration.
type Config struct {
	// Contestants names the models competing in stage one.
	Contestants Contestants `yaml:"contestants" validate:"required"`

	// Jury lists the judge models for stage two.
	Jury []Juror `yaml:"jury" validate:"min=1,dive"`

	// SkillsToTest is the default skill list used when the CLI asks for
	// "all" skills.
	SkillsToTest []string `yaml:"skills_to_test"`

	// Settings tunes sampling and pacing.
	Settings Settings `yaml:"settings"`

	// Paths locates the run outputs, test case suites, and skill registry.
	Paths Paths `yaml:"paths"`

	// Keys carries the provider API keys from the environment. Never
	// serialized.
	Keys APIKeys `yaml:"-"`
}

// Contestants configures the two competing assistant modes. Both run on the
// same underlying model; the skilled side differs only by injected expertise.
type Contestants struct {
	Vanilla Model `yaml:"vanilla" validate:"required"`
	Skilled Model `yaml:"skilled" validate:"required"`
}

// Model names a provider model.
type Model struct {
	Model string `yaml:"model" validate:"required"`
}

// Juror configures one judge: a display name plus the provider route used to
// reach it.
type Juror struct {
	Name     string `yaml:"name" validate:"required"`
	Provider string `yaml:"provider" validate:"required,oneof=anthropic openai google together"`
	Model    string `yaml:"model" validate:"required"`
}

// Settings tunes request sampling and pacing.
type Settings struct {
	ContestantTemperature float64 `yaml:"contestant_temperature" validate:"gte=0,lte=2"`
	JuryTemperature       float64 `yaml:"jury_temperature" validate:"gte=0,lte=2"`
	ContestantMaxTokens   int64   `yaml:"contestant_max_tokens" validate:"gte=0"`
	JuryMaxTokens         int64   `yaml:"jury_max_tokens" validate:"gte=0"`
	RequestsPerSecond     float64 `yaml:"requests_per_second" validate:"gte=0"`
	Burst                 int     `yaml:"burst" validate:"gte=0"`
}

// Paths locates the harness inputs and outputs. Relative paths resolve
// against the working directory.
type Paths struct {
	// Outputs is the root for per-run artifacts.
	Outputs string `yaml:"outputs"`

	// TestCases holds one <skill-id>.yaml suite per skill.
	TestCases string `yaml:"test_cases"`

	// Skills is the root of the skill registry.
	Skills string `yaml:"skills"`
}

// APIKeys holds provider credentials sourced from the environment.
type APIKeys struct {
	Anthropic string `env:"ANTHROPIC_API_KEY"`
	OpenAI    string `env:"OPENAI_API_KEY"`
	Google    string `env:"GOOGLE_API_KEY"`
	Together  string `env:"TOGETHER_API_KEY"`
}

// ForProvider returns the key for a provider name, empty when the provider
// is unknown or the key is unset.
func (k APIKeys) ForProvider(provider string) string {
	switch provider {
	case providers.ProviderAnthropic:
		return k.Anthropic
	case providers.ProviderOpenAI:
		return k.OpenAI
	case providers.ProviderGoogle:
		return k.Google
	case providers.ProviderTogether:
		return k.Together
	default:
		return ""
	}
}

// defaults returns a config pre-filled with the values the YAML file may
// omit. Unmarshaling over this struct keeps defaults for absent keys.
func defaults() *Config {
	return &Config{
		Settings: Settings{
			ContestantTemperature: 0.3,
			JuryTemperature:       0.1,
			ContestantMaxTokens:   4096,
			JuryMaxTokens:         1024,
			RequestsPerSecond:     configuration.DefaultTokensPerSecond,
			Burst:                 configuration.DefaultBurstSize,
		},
		Paths: Paths{
			Outputs:   "outputs",
			TestCases: "test-cases",
			Skills:    filepath.Join("..", "spawner-v2", "skills"),
		},
	}
}

// Load reads the configuration file, applies the local override, pulls API
// keys from the environment, and validates the result. An empty path means
// DefaultPath.
func Load(ctx context.Context, path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	// A config.local.yaml in the same directory wins over the main file.
	localPath := filepath.Join(filepath.Dir(path), localName)
	if _, err := os.Stat(localPath); err == nil {
		path = localPath
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := envconfig.Process(ctx, &cfg.Keys); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// LLMClientConfig builds the LLM client configuration from the harness
// settings. Only providers with an API key present become routable.
func (c *Config) LLMClientConfig() *configuration.Config {
	llmCfg := configuration.DefaultConfig()

	if c.Settings.RequestsPerSecond > 0 {
		llmCfg.RateLimit.TokensPerSecond = c.Settings.RequestsPerSecond
	}
	if c.Settings.Burst > 0 {
		llmCfg.RateLimit.BurstSize = c.Settings.Burst
	}

	for _, provider := range []string{
		providers.ProviderAnthropic,
		providers.ProviderOpenAI,
		providers.ProviderGoogle,
		providers.ProviderTogether,
	} {
		if key := c.Keys.ForProvider(provider); key != "" {
			llmCfg.Providers[provider] = configuration.ProviderConfig{APIKey: key}
		}
	}

	return llmCfg
}
