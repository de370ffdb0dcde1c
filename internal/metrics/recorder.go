// Package metrics collects run statistics: Prometheus counters for the
// update pass and runtime memory snapshots for verbose output.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Recorder counts fingerprint outcomes per kind. A nil *Recorder is valid
// and records nothing.
type Recorder struct {
	registry  *prometheus.Registry
	computed  *prometheus.CounterVec
	cacheHits *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewRecorder creates a recorder with its own registry, including the Go
// runtime collector.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		computed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fingerprints_computed_total",
			Help: "Fingerprints computed because the cache was stale.",
		}, []string{"kind"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fingerprints_cache_hits_total",
			Help: "Fingerprints skipped because the cached hash matched.",
		}, []string{"kind"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fingerprints_failures_total",
			Help: "Fingerprints that could not be computed.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fingerprints_duration_seconds",
			Help:    "Time spent computing one fingerprint.",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
		}, []string{"kind"}),
	}
	r.registry.MustRegister(
		r.computed, r.cacheHits, r.failures, r.duration,
		collectors.NewGoCollector(),
	)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// CacheHit records a fingerprint that was up to date.
func (r *Recorder) CacheHit(kind string) {
	if r == nil {
		return
	}
	r.cacheHits.WithLabelValues(kind).Inc()
}

// Computed records a successful computation and its duration.
func (r *Recorder) Computed(kind string, d time.Duration) {
	if r == nil {
		return
	}
	r.computed.WithLabelValues(kind).Inc()
	r.duration.WithLabelValues(kind).Observe(d.Seconds())
}

// Failed records a failed computation.
func (r *Recorder) Failed(kind string) {
	if r == nil {
		return
	}
	r.failures.WithLabelValues(kind).Inc()
}

// WriteTextfile writes all metrics in the Prometheus text format, suitable
// for the node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
