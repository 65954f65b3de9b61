// Package metrics defines pick-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pick counter vectors
var (
	PicksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "picks_total",
		Help:      "Total number of pick cards by strategy, rank and place odds provenance",
	}, []string{"strategy_name", "rank", "provenance"})

	CorrectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "corrections_total",
		Help:      "Total number of pick corrections by outcome",
	}, []string{"outcome"})
)

// RecordPick records one scored race.
func RecordPick(strategyName, rank, provenance string) {
	PicksTotal.WithLabelValues(strategyName, rank, provenance).Inc()
}

// RecordCorrection records a correction attempt; outcome is "applied" or the failure kind.
func RecordCorrection(outcome string) {
	CorrectionsTotal.WithLabelValues(outcome).Inc()
}
