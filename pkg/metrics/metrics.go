package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes Prometheus metrics for the screener.
type Recorder struct {
	analysesTotal   *prometheus.CounterVec
	verdictsTotal   *prometheus.CounterVec
	screenFailures  *prometheus.CounterVec
	providerLatency *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		analysesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screener_analyses_total",
				Help: "Total number of analyses performed",
			},
			[]string{"strategy"},
		),
		verdictsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screener_verdicts_total",
				Help: "Compliance verdicts by status",
			},
			[]string{"status"},
		),
		screenFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screener_screen_failures_total",
				Help: "Compliance check failures by reason code",
			},
			[]string{"screen"},
		),
		providerLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "screener_provider_duration_seconds",
				Help:    "Duration of data provider calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "operation"},
		),
	}
}

// RecordAnalysis records a completed analysis for a strategy.
func (r *Recorder) RecordAnalysis(strategy string) {
	r.analysesTotal.WithLabelValues(strategy).Inc()
}

// RecordVerdict records a compliance verdict status ("HALAL" or "HARAM").
func (r *Recorder) RecordVerdict(status string) {
	r.verdictsTotal.WithLabelValues(status).Inc()
}

// RecordScreenFailure records one failed compliance check by reason code.
func (r *Recorder) RecordScreenFailure(screen string) {
	r.screenFailures.WithLabelValues(screen).Inc()
}

// RecordProviderLatency records external provider call latency in seconds.
func (r *Recorder) RecordProviderLatency(provider, operation string, seconds float64) {
	r.providerLatency.WithLabelValues(provider, operation).Observe(seconds)
}
