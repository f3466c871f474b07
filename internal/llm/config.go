package llm

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config selects and configures one vendor. It is read from HOMEWORKPAL_*
// variables; see ConfigFromEnv.
type Config struct {
	// Provider is one of anthropic, openai, gemini, openrouter or mock.
	Provider string `envconfig:"LLM_PROVIDER" default:"anthropic"`

	Anthropic  AnthropicConfig  `envconfig:"ANTHROPIC"`
	OpenAI     OpenAIConfig     `envconfig:"OPENAI"`
	Gemini     GeminiConfig     `envconfig:"GEMINI"`
	OpenRouter OpenRouterConfig `envconfig:"OPENROUTER"`
	Retry      RetryConfig      `envconfig:"LLM"`

	// Timeout bounds one logical request, retries included.
	Timeout time.Duration `envconfig:"LLM_TIMEOUT" default:"30s"`
}

type AnthropicConfig struct {
	APIKey string `envconfig:"API_KEY"`
	Model  string `envconfig:"MODEL" default:"claude-haiku"`
}

type OpenAIConfig struct {
	APIKey  string `envconfig:"API_KEY"`
	Model   string `envconfig:"MODEL" default:"gpt-4o-mini"`
	BaseURL string `envconfig:"BASE_URL"`
}

type GeminiConfig struct {
	APIKey string `envconfig:"API_KEY"`
	Model  string `envconfig:"MODEL" default:"gemini-flash"`
}

type OpenRouterConfig struct {
	APIKey  string `envconfig:"API_KEY"`
	Model   string `envconfig:"MODEL" default:"google/gemini-2.0-flash-exp"`
	BaseURL string `envconfig:"BASE_URL"`
}

type RetryConfig struct {
	MaxAttempts int           `envconfig:"MAX_ATTEMPTS" default:"3"`
	InitialWait time.Duration `envconfig:"INITIAL_WAIT" default:"1s"`
	MaxWait     time.Duration `envconfig:"MAX_WAIT" default:"10s"`
	Multiplier  float64       `envconfig:"BACKOFF" default:"2"`
}

// DefaultConfig is the configuration with no HOMEWORKPAL_* variables set.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv reads HOMEWORKPAL_LLM_PROVIDER, HOMEWORKPAL_<VENDOR>_API_KEY,
// HOMEWORKPAL_<VENDOR>_MODEL, HOMEWORKPAL_LLM_TIMEOUT and the
// HOMEWORKPAL_LLM_* retry knobs.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("homeworkpal", &cfg); err != nil {
		return Config{}, fmt.Errorf("load llm config: %w", err)
	}
	if cfg.Retry.MaxAttempts < 1 {
		cfg.Retry.MaxAttempts = 1
	}
	return cfg, nil
}

// vendorKeys lists the vendors' own API key variables in discovery order.
var vendorKeys = []struct {
	env, provider string
	set           func(*Config, string)
}{
	{"GEMINI_API_KEY", "gemini", func(c *Config, k string) { c.Gemini.APIKey = k }},
	{"OPENAI_API_KEY", "openai", func(c *Config, k string) { c.OpenAI.APIKey = k }},
	{"ANTHROPIC_API_KEY", "anthropic", func(c *Config, k string) { c.Anthropic.APIKey = k }},
	{"OPENROUTER_API_KEY", "openrouter", func(c *Config, k string) { c.OpenRouter.APIKey = k }},
}

// DiscoverConfig layers the first vendor key found in the environment over
// base. It reports false when none is set.
func DiscoverConfig(base Config) (Config, bool) {
	for _, v := range vendorKeys {
		if k := os.Getenv(v.env); k != "" {
			base.Provider = v.provider
			v.set(&base, k)
			return base, true
		}
	}
	return base, false
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case "anthropic":
		key = c.Anthropic.APIKey
	case "openai":
		key = c.OpenAI.APIKey
	case "gemini":
		key = c.Gemini.APIKey
	case "openrouter":
		key = c.OpenRouter.APIKey
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("HOMEWORKPAL_%s_API_KEY is required for the %s provider", strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}
