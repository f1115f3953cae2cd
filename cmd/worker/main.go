package main

import (
	"context"
	"fmt"
	"os"

	"github.com/vslstudio/vsl-backend/internal/logging"
	"go.uber.org/zap"
)

const usage = "usage: worker suggest <baseURL> <text> | worker vsl <request.json>"

func main() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	logger, err := logging.New(level, os.Getenv("APP_ENV"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if len(os.Args) < 2 {
		logger.Fatal(usage)
	}

	ctx := context.Background()
	switch os.Args[1] {
	case "suggest":
		err = RunSuggest(ctx, logger, os.Args[2:], os.Stdout)
	case "vsl":
		err = RunVSL(ctx, logger, os.Args[2:], os.Stdout)
	default:
		logger.Fatal("unknown command", zap.String("command", os.Args[1]))
	}
	if err != nil {
		logger.Fatal(os.Args[1]+" failed", zap.Error(err))
	}
}
