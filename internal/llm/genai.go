package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/vslstudio/vsl-backend/internal/logging"
	"github.com/vslstudio/vsl-backend/internal/metrics"
	"google.golang.org/genai"
)

// GenAIGenerator generates text with Google's Gemini API.
type GenAIGenerator struct {
	client *genai.Client
	model  string
}

// NewGenAIGenerator creates a Gemini-backed generator.
func NewGenAIGenerator(ctx context.Context, apiKey, model string) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required: %w", ErrNotConfigured)
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIGenerator{client: client, model: model}, nil
}

func (g *GenAIGenerator) Name() string {
	return "genai:" + g.model
}

func (g *GenAIGenerator) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	logger := logging.NewLogger(ctx)
	model := opts.Model
	if model == "" {
		model = g.model
	}

	cfg := &genai.GenerateContentConfig{}
	if opts.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(opts.MaxTokens)
	}
	if opts.Temperature != nil {
		cfg.Temperature = opts.Temperature
	}
	if opts.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(opts.System, genai.RoleUser)
	}

	start := time.Now()
	result, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if err != nil {
		err = fmt.Errorf("GenAI generate failed: %w", err)
		metrics.RecordUpstreamCall(time.Since(start), err)
		logger.LogError("genai_generate", err)
		return "", err
	}

	text := result.Text()
	if text == "" {
		metrics.RecordUpstreamCall(time.Since(start), ErrEmptyResponse)
		return "", ErrEmptyResponse
	}
	metrics.RecordUpstreamCall(time.Since(start), nil)
	return text, nil
}
