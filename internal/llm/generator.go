// Package llm wraps the hosted text-generation providers behind a single
// Generator interface.
package llm

import (
	"context"
	"errors"
	"time"
)

const (
	// DefaultTimeout bounds short generations such as autocomplete.
	DefaultTimeout = 30 * time.Second
	// LongTimeout is for full script generation.
	LongTimeout = 3 * time.Minute
)

var (
	ErrEmptyResponse = errors.New("model returned an empty response")
	ErrNotConfigured = errors.New("language model provider is not configured")
)

// GenerateOptions tune a single generation.
type GenerateOptions struct {
	Model       string
	MaxTokens   int
	Temperature *float32
	System      string
}

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	Name() string
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	return f(ctx, prompt, opts)
}

func (f GeneratorFunc) Name() string { return "func" }

// Float32 is a helper for GenerateOptions.Temperature.
func Float32(v float32) *float32 { return &v }
