package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vslstudio/vsl-backend/config"
	"github.com/vslstudio/vsl-backend/internal/bootstrap"
	"github.com/vslstudio/vsl-backend/internal/vsl/domain"
	"github.com/vslstudio/vsl-backend/internal/vsl/service"
	"go.uber.org/zap"
)

// RunVSL generates a VSL from a JSON form on disk and writes the result to
// out.
func RunVSL(ctx context.Context, logger *zap.Logger, args []string, out io.Writer) error {
	if len(args) < 1 {
		return errors.New("usage: worker vsl <request.json>")
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	var req domain.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	gen, err := bootstrap.NewGenerator(ctx, cfg.LLM)
	if err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	logger.Info("generating vsl", zap.String("llm", gen.Name()), zap.String("tipo", req.Tipo))

	res, err := service.NewVSLService(gen, cfg.LLM.ScriptModel).Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
