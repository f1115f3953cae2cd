package bootstrap

import (
	"context"
	"fmt"

	"github.com/vslstudio/vsl-backend/config"
	"github.com/vslstudio/vsl-backend/internal/llm"
)

// NewGenerator builds the language model client for the configured provider.
func NewGenerator(ctx context.Context, cfg config.LLMConfig) (llm.Generator, error) {
	switch cfg.Provider {
	case config.ProviderGenAI:
		gen, err := llm.NewGenAIGenerator(ctx, cfg.GenAIAPIKey, cfg.CompletionModel)
		if err != nil {
			return nil, err
		}
		return gen, nil
	case config.ProviderOpenAI:
		return llm.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.CompletionModel), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
