package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	upstreamRequests *prometheus.CounterVec
	upstreamPages    *prometheus.HistogramVec
	fallbacks        *prometheus.CounterVec
	analyses         *prometheus.CounterVec
	latency          *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		upstreamRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ticklens_upstream_requests_total",
				Help: "Total number of requests issued to the market data provider",
			},
			[]string{"endpoint", "status"},
		),
		upstreamPages: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ticklens_upstream_pages",
				Help:    "Pages fetched per upstream retrieval",
				Buckets: []float64{1, 2, 3, 5, 10, 20, 50},
			},
			[]string{"endpoint"},
		),
		fallbacks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ticklens_bar_fallbacks_total",
				Help: "Total number of tick-to-bar granularity fallbacks",
			},
			[]string{"reason"},
		),
		analyses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ticklens_analyses_total",
				Help: "Total number of analysis requests by outcome",
			},
			[]string{"outcome"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ticklens_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordUpstreamRequest records one provider request and its outcome.
func (r *Recorder) RecordUpstreamRequest(endpoint, status string) {
	r.upstreamRequests.WithLabelValues(endpoint, status).Inc()
}

// RecordPages records how many pages a retrieval consumed.
func (r *Recorder) RecordPages(endpoint string, pages int) {
	r.upstreamPages.WithLabelValues(endpoint).Observe(float64(pages))
}

// RecordFallback records a tick-to-bar fallback.
func (r *Recorder) RecordFallback(reason string) {
	r.fallbacks.WithLabelValues(reason).Inc()
}

// RecordAnalysis records a finished analysis by outcome.
func (r *Recorder) RecordAnalysis(outcome string) {
	r.analyses.WithLabelValues(outcome).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
