// Package metrics defines parser-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Parser counter vectors
var (
	ParsedLinesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "parsed_lines_total",
		Help:      "Total number of pasted lines by outcome",
	}, []string{"outcome"})

	ParsedBlocksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "parsed_blocks_total",
		Help:      "Total number of race blocks recovered from pasted text",
	})
)

// RecordParse records the line and block counts of one parse.
func RecordParse(runnerLines, ignoredLines, blocks int) {
	ParsedLinesTotal.WithLabelValues("runner").Add(float64(runnerLines))
	ParsedLinesTotal.WithLabelValues("ignored").Add(float64(ignoredLines))
	ParsedBlocksTotal.Add(float64(blocks))
}
