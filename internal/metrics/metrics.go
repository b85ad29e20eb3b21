// Package metrics exposes Prometheus collectors for the request pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache lookup results.
const (
	CacheHit     = "hit"
	CacheMiss    = "miss"
	CacheCorrupt = "corrupt"
)

// OutcomeSuccess labels requests that passed classification.
const OutcomeSuccess = "success"

// Recorder groups the pipeline collectors. A nil *Recorder records nothing.
type Recorder struct {
	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	cacheLookupsTotal  *prometheus.CounterVec
	envelopeMismatches *prometheus.CounterVec
}

// New creates the collectors and registers them on reg. With a nil reg
// the collectors work but are not exported.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "giantswarm_requests_total",
			Help: "Total API requests by method and outcome.",
		}, []string{"method", "outcome"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "giantswarm_request_duration_seconds",
			Help:    "API request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),

		cacheLookupsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "giantswarm_cache_lookups_total",
			Help: "Total response cache lookups by result.",
		}, []string{"result"}),

		envelopeMismatches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "giantswarm_envelope_mismatches_total",
			Help: "Total responses whose status_code differed from the expected one.",
		}, []string{"operation"}),
	}
}

// ObserveRequest records one live send.
func (r *Recorder) ObserveRequest(method, outcome string, duration time.Duration) {
	if r == nil {
		return
	}

	r.requestsTotal.WithLabelValues(method, outcome).Inc()
	r.requestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// CacheLookup records a cache lookup result.
func (r *Recorder) CacheLookup(result string) {
	if r == nil {
		return
	}

	r.cacheLookupsTotal.WithLabelValues(result).Inc()
}

// EnvelopeMismatch records a ResponseStatusMismatch for operation.
func (r *Recorder) EnvelopeMismatch(operation string) {
	if r == nil {
		return
	}

	r.envelopeMismatches.WithLabelValues(operation).Inc()
}
