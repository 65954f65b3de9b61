// Package metrics provides centralized Prometheus metrics registry for paddock-picks.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "paddock_picks"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	AnalysesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Total number of analysis runs",
	})
	AnalysisCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analysis_cache_hits_total",
		Help:      "Total number of analyses served from the report cache",
	})
	EmptyInputsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "empty_inputs_total",
		Help:      "Total number of analyses that parsed no race blocks",
	})
)

// Gauge metrics
var (
	WorklistSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "correction_worklist_size",
		Help:      "Number of picks in the current session still waiting for measured place odds",
	})
)

// Histogram metrics
var (
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Duration of parse and scoring in seconds",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(AnalysesTotal)
		registry.MustRegister(AnalysisCacheHitsTotal)
		registry.MustRegister(EmptyInputsTotal)
		registry.MustRegister(WorklistSize)
		registry.MustRegister(AnalysisDuration)

		// Register parse metrics
		registry.MustRegister(ParsedLinesTotal)
		registry.MustRegister(ParsedBlocksTotal)

		// Register pick metrics
		registry.MustRegister(PicksTotal)
		registry.MustRegister(CorrectionsTotal)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordAnalysis records an analysis run and its duration.
func RecordAnalysis(durationSeconds float64) {
	AnalysesTotal.Inc()
	AnalysisDuration.Observe(durationSeconds)
}

// RecordCacheHit records an analysis served from cache.
func RecordCacheHit() {
	AnalysisCacheHitsTotal.Inc()
}

// RecordEmptyInput records an analysis that found no races.
func RecordEmptyInput() {
	EmptyInputsTotal.Inc()
}

// UpdateWorklistSize updates the correction worklist gauge.
func UpdateWorklistSize(count float64) {
	WorklistSize.Set(count)
}
