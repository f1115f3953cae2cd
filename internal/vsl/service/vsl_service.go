package service

import (
	"context"
	"fmt"

	"github.com/vslstudio/vsl-backend/internal/llm"
	"github.com/vslstudio/vsl-backend/internal/logging"
	"github.com/vslstudio/vsl-backend/internal/metrics"
	"github.com/vslstudio/vsl-backend/internal/vsl/domain"
)

// VSLService generates sales-video scripts
type VSLService struct {
	generator llm.Generator
	model     string
}

// NewVSLService creates a new VSLService. An empty model uses the
// generator's default.
func NewVSLService(generator llm.Generator, model string) *VSLService {
	return &VSLService{generator: generator, model: model}
}

// Validate checks the required form fields.
func Validate(req domain.Request) error {
	if req.Tipo == "" || req.Duracao == "" || req.Abordagem == "" || req.CTA == "" {
		return domain.ErrMissingFields
	}
	return nil
}

// Generate writes the script and derives the outline around it.
func (s *VSLService) Generate(ctx context.Context, req domain.Request) (*domain.Result, error) {
	logger := logging.NewLogger(ctx)

	if err := Validate(req); err != nil {
		return nil, err
	}

	logger.LogInfof("generate_vsl", "project_id=%s has_project_data=%t tipo=%s duracao=%s abordagem=%s cta=%s elementos=%v",
		req.ProjectID, req.ProjectData != nil, req.Tipo, req.Duracao, req.Abordagem, req.CTA, req.Elementos)

	script, err := s.generator.Generate(ctx, BuildPrompt(req), llm.GenerateOptions{Model: s.model})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	metrics.RecordVSLGeneration()

	return &domain.Result{
		Script:        script,
		Slides:        Slides(req),
		TempoEstimado: EstimateTiming(req.Duracao),
		CTAsPositions: CTAPositions(req),
		Teleprompter:  Teleprompter(script),
	}, nil
}
