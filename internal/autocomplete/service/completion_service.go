package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vslstudio/vsl-backend/internal/autocomplete/domain"
	"github.com/vslstudio/vsl-backend/internal/llm"
	"github.com/vslstudio/vsl-backend/internal/logging"
	"github.com/vslstudio/vsl-backend/internal/metrics"
)

const (
	// DefaultMaxTokens keeps continuations to a few words.
	DefaultMaxTokens = 15
	// DefaultMaxPromptChars is well above the largest field lookback.
	DefaultMaxPromptChars = 500
)

// Cache stores suggestions per prompt. A nil Cache disables caching.
type Cache interface {
	Get(ctx context.Context, prompt string) (string, bool, error)
	Set(ctx context.Context, prompt, suggestion string) error
}

// Config for CompletionService.
type Config struct {
	Model          string
	MaxTokens      int
	MaxPromptChars int
}

// CompletionService answers the autocomplete endpoint.
type CompletionService struct {
	generator llm.Generator
	cache     Cache
	limiter   *ClientLimiter
	cfg       Config
}

// NewCompletionService creates a new CompletionService. cache and limiter
// may be nil.
func NewCompletionService(generator llm.Generator, cache Cache, limiter *ClientLimiter, cfg Config) *CompletionService {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.MaxPromptChars <= 0 {
		cfg.MaxPromptChars = DefaultMaxPromptChars
	}
	return &CompletionService{
		generator: generator,
		cache:     cache,
		limiter:   limiter,
		cfg:       cfg,
	}
}

// Suggest returns a short continuation for fragment on behalf of clientKey.
func (s *CompletionService) Suggest(ctx context.Context, clientKey, fragment string) (string, error) {
	logger := logging.NewLogger(ctx)

	if strings.TrimSpace(fragment) == "" {
		return "", domain.ErrEmptyPrompt
	}
	if utf8.RuneCountInString(fragment) > s.cfg.MaxPromptChars {
		return "", domain.ErrPromptTooLong
	}
	if s.limiter != nil && !s.limiter.Allow(clientKey) {
		metrics.RecordRateLimited()
		return "", domain.ErrRateLimited
	}

	metrics.RecordCompletion()

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, fragment)
		if err != nil {
			logger.LogWarnf("suggest", "cache lookup failed: %v", err)
		} else if ok {
			metrics.RecordCacheHit()
			return cached, nil
		}
	}

	text, err := s.generator.Generate(ctx, BuildCompletionPrompt(fragment), llm.GenerateOptions{
		Model:     s.cfg.Model,
		MaxTokens: s.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCompletionFailed, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, fragment, text); err != nil {
			logger.LogWarnf("suggest", "cache store failed: %v", err)
		}
	}

	logger.LogDebugf("suggest", "generated %d chars for %d char fragment",
		utf8.RuneCountInString(text), utf8.RuneCountInString(fragment))
	return text, nil
}
