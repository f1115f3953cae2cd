package cronjob

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/vslstudio/vsl-backend/internal/metrics"
	"go.uber.org/zap"
)

const (
	// MetricsReportSpec logs a metrics snapshot every five minutes.
	MetricsReportSpec = "0 */5 * * * *"
	// LimiterPruneSpec drops idle rate-limit buckets every minute.
	LimiterPruneSpec = "0 * * * * *"
)

// Pruner forgets clients idle for longer than the given duration and returns
// how many it removed.
type Pruner interface {
	Prune(idle time.Duration) int
}

type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

func NewScheduler(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		logger: logger,
	}
}

// Add registers fn under a six-field (seconds first) cron spec.
func (s *Scheduler) Add(name, spec string, fn func()) error {
	if _, err := s.cron.AddFunc(spec, fn); err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	s.logger.Info("cron job registered", zap.String("job", name), zap.String("spec", spec))
	return nil
}

// Start initializes cron tasks
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("cron scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop halts the scheduler. The returned context is done once running jobs
// have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// MetricsReport logs the current counters.
func MetricsReport(logger *zap.Logger) func() {
	return func() {
		m := metrics.Snapshot()
		logger.Info("metrics",
			zap.Int64("upstream_calls", m.UpstreamCalls()),
			zap.Int64("upstream_errors", m.UpstreamErrors()),
			zap.Float64("upstream_error_rate", m.UpstreamErrorRate()),
			zap.Float64("upstream_avg_latency_ms", m.AverageUpstreamLatency()),
			zap.Int64("completion_calls", m.CompletionCalls()),
			zap.Int64("cache_hits", m.CacheHits()),
			zap.Float64("cache_hit_rate", m.CacheHitRate()),
			zap.Int64("rate_limited", m.RateLimited()),
			zap.Int64("vsl_generations", m.VSLGenerations()),
		)
	}
}

// PruneLimiter drops buckets that have been idle for longer than idle.
func PruneLimiter(logger *zap.Logger, p Pruner, idle time.Duration) func() {
	return func() {
		if n := p.Prune(idle); n > 0 {
			logger.Debug("pruned idle rate limiters", zap.Int("removed", n))
		}
	}
}
