package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vslstudio/vsl-backend/config"
	httpapi "github.com/vslstudio/vsl-backend/internal/api/http"
	"github.com/vslstudio/vsl-backend/internal/autocomplete/repository"
	acservice "github.com/vslstudio/vsl-backend/internal/autocomplete/service"
	"github.com/vslstudio/vsl-backend/internal/bootstrap"
	"github.com/vslstudio/vsl-backend/internal/cronjob"
	"github.com/vslstudio/vsl-backend/internal/logging"
	vslservice "github.com/vslstudio/vsl-backend/internal/vsl/service"
	"go.uber.org/zap"
)

const (
	serviceName  = "vsl-backend"
	limiterIdle  = 10 * time.Minute
	readTimeout  = 15 * time.Second
	writeTimeout = 4 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.App.LogLevel, cfg.App.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Warn("suggestion cache unavailable, continuing without it", zap.Error(err))
	}
	var (
		cache       acservice.Cache
		cachePinger httpapi.Pinger
	)
	if rdb != nil {
		defer func(c *redis.Client) { _ = c.Close() }(rdb)
		sc := repository.NewSuggestionCache(rdb, cfg.Autocomplete.CacheTTL)
		cache, cachePinger = sc, sc
	}

	gen, err := bootstrap.NewGenerator(ctx, cfg.LLM)
	if err != nil {
		logger.Fatal("llm", zap.Error(err))
	}

	limiter := acservice.NewClientLimiter(cfg.Autocomplete.RateLimitPerSecond, cfg.Autocomplete.RateLimitBurst)
	completions := acservice.NewCompletionService(gen, cache, limiter, acservice.Config{
		Model:          cfg.LLM.CompletionModel,
		MaxPromptChars: cfg.Autocomplete.MaxPromptChars,
	})
	vsl := vslservice.NewVSLService(gen, cfg.LLM.ScriptModel)

	scheduler := cronjob.NewScheduler(logger)
	if err := scheduler.Add("metrics_report", cronjob.MetricsReportSpec, cronjob.MetricsReport(logger)); err != nil {
		logger.Fatal("cron", zap.Error(err))
	}
	if err := scheduler.Add("limiter_prune", cronjob.LimiterPruneSpec, cronjob.PruneLimiter(logger, limiter, limiterIdle)); err != nil {
		logger.Fatal("cron", zap.Error(err))
	}
	scheduler.Start()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:  serviceName,
		Version:      cfg.App.Version,
		LLMName:      gen.Name(),
		CORSOrigins:  cfg.Server.CORSOrigins,
		Logger:       logger,
		Cache:        cachePinger,
		Autocomplete: completions,
		VSL:          vsl,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("llm", gen.Name()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	<-scheduler.Stop().Done()
}
