package llm

import (
	"context"
	"fmt"

	"github.com/weihanlin/gsatbot/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with retry and
// event-logging middleware. eventRepo may be nil to skip logging.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	var wrapped Provider = base
	if eventRepo != nil {
		wrapped = WithLogging(wrapped, eventRepo)
	}
	wrapped = WithRetry(wrapped, cfg.Retry)

	return wrapped, nil
}

// NewProviderFromEnv builds a Provider from GSATBOT_* env configuration,
// falling back to probing the standard provider key variables.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, eventRepo)
}
