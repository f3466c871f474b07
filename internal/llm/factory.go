package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/homeworkpal/internal/store"
	"go.uber.org/zap"
)

// NewProvider builds the vendor named by cfg.Provider and stacks the
// middleware on it. Calls flow timeout, retry, logging, vendor, so every
// attempt is logged and the deadline covers all of them.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	if cfg.Provider == "mock" {
		return NewMockProvider(), nil
	}
	base, err := newVendor(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	p := WithLogging(base, eventRepo, logger)
	p = WithRetry(p, cfg.Retry)
	return WithTimeout(p, cfg.Timeout), nil
}

func newVendor(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		return NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		return NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		return NewOpenRouterProvider(cfg.OpenRouter)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}

// NewProviderFromEnv builds a provider from HOMEWORKPAL_* variables. When
// the configured vendor has no key it falls back to the first vendor whose
// standard API key variable (GEMINI_API_KEY, OPENAI_API_KEY, ...) is set.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	if cfg.Validate() != nil {
		if discovered, ok := DiscoverConfig(cfg); ok {
			cfg = discovered
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, eventRepo, logger)
}
