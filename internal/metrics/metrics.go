package metrics

import (
	"sync/atomic"
	"time"
)

// Metrics tracks service call metrics
type Metrics struct {
	upstreamCalls   int64
	upstreamErrors  int64
	upstreamLatency int64 // Total latency in nanoseconds
	completionCalls int64
	cacheHits       int64
	rateLimited     int64
	vslGenerations  int64
	clientCalls     int64
	clientErrors    int64
}

var globalMetrics = &Metrics{}

// Snapshot returns the current metrics snapshot
func Snapshot() Metrics {
	return Metrics{
		upstreamCalls:   atomic.LoadInt64(&globalMetrics.upstreamCalls),
		upstreamErrors:  atomic.LoadInt64(&globalMetrics.upstreamErrors),
		upstreamLatency: atomic.LoadInt64(&globalMetrics.upstreamLatency),
		completionCalls: atomic.LoadInt64(&globalMetrics.completionCalls),
		cacheHits:       atomic.LoadInt64(&globalMetrics.cacheHits),
		rateLimited:     atomic.LoadInt64(&globalMetrics.rateLimited),
		vslGenerations:  atomic.LoadInt64(&globalMetrics.vslGenerations),
		clientCalls:     atomic.LoadInt64(&globalMetrics.clientCalls),
		clientErrors:    atomic.LoadInt64(&globalMetrics.clientErrors),
	}
}

// Reset resets all metrics (useful for testing)
func Reset() {
	atomic.StoreInt64(&globalMetrics.upstreamCalls, 0)
	atomic.StoreInt64(&globalMetrics.upstreamErrors, 0)
	atomic.StoreInt64(&globalMetrics.upstreamLatency, 0)
	atomic.StoreInt64(&globalMetrics.completionCalls, 0)
	atomic.StoreInt64(&globalMetrics.cacheHits, 0)
	atomic.StoreInt64(&globalMetrics.rateLimited, 0)
	atomic.StoreInt64(&globalMetrics.vslGenerations, 0)
	atomic.StoreInt64(&globalMetrics.clientCalls, 0)
	atomic.StoreInt64(&globalMetrics.clientErrors, 0)
}

// RecordUpstreamCall records a call to the language model provider
func RecordUpstreamCall(duration time.Duration, err error) {
	atomic.AddInt64(&globalMetrics.upstreamCalls, 1)
	atomic.AddInt64(&globalMetrics.upstreamLatency, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&globalMetrics.upstreamErrors, 1)
	}
}

func RecordCompletion() {
	atomic.AddInt64(&globalMetrics.completionCalls, 1)
}

func RecordCacheHit() {
	atomic.AddInt64(&globalMetrics.cacheHits, 1)
}

func RecordRateLimited() {
	atomic.AddInt64(&globalMetrics.rateLimited, 1)
}

func RecordVSLGeneration() {
	atomic.AddInt64(&globalMetrics.vslGenerations, 1)
}

// RecordClientCall records a call made by the suggestion client
func RecordClientCall(err error) {
	atomic.AddInt64(&globalMetrics.clientCalls, 1)
	if err != nil {
		atomic.AddInt64(&globalMetrics.clientErrors, 1)
	}
}

func (m Metrics) UpstreamCalls() int64   { return m.upstreamCalls }
func (m Metrics) UpstreamErrors() int64  { return m.upstreamErrors }
func (m Metrics) CompletionCalls() int64 { return m.completionCalls }
func (m Metrics) CacheHits() int64       { return m.cacheHits }
func (m Metrics) RateLimited() int64     { return m.rateLimited }
func (m Metrics) VSLGenerations() int64  { return m.vslGenerations }
func (m Metrics) ClientCalls() int64     { return m.clientCalls }
func (m Metrics) ClientErrors() int64    { return m.clientErrors }

// AverageUpstreamLatency returns the average latency in milliseconds
func (m Metrics) AverageUpstreamLatency() float64 {
	if m.upstreamCalls == 0 {
		return 0
	}
	avgNs := float64(m.upstreamLatency) / float64(m.upstreamCalls)
	return avgNs / 1e6
}

// UpstreamErrorRate returns the error rate as a percentage
func (m Metrics) UpstreamErrorRate() float64 {
	if m.upstreamCalls == 0 {
		return 0
	}
	return float64(m.upstreamErrors) / float64(m.upstreamCalls) * 100
}

// CacheHitRate returns cache hits as a percentage of completion calls
func (m Metrics) CacheHitRate() float64 {
	if m.completionCalls == 0 {
		return 0
	}
	return float64(m.cacheHits) / float64(m.completionCalls) * 100
}
