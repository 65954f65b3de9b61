// Package logger provides scoring-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// ScoringLogger provides dedicated logging for race scoring.
type ScoringLogger struct {
	*logrus.Entry
}

// NewScoringLogger creates a new scoring logger.
func NewScoringLogger(baseLogger *logrus.Logger) *ScoringLogger {
	return &ScoringLogger{
		Entry: baseLogger.WithField("component", "scoring"),
	}
}

// LogVerdict logs the pick for one race.
func (sl *ScoringLogger) LogVerdict(runID, strategyName, track string, raceNo int, rank, horse, placeLow, provenance, reason string) {
	fields := logrus.Fields{
		"run_id":        runID,
		"strategy_name": strategyName,
		"track":         track,
		"race_no":       raceNo,
		"rank":          rank,
		"provenance":    provenance,
	}
	if horse != "" {
		fields["horse"] = horse
		fields["place_low"] = placeLow
	}
	if reason != "" {
		fields["reason"] = reason
	}
	sl.WithFields(fields).Debug("Race scored")
}

// LogScoringSummary logs the rank distribution of one analysis.
func (sl *ScoringLogger) LogScoringSummary(runID, strategyName string, races, recommended int, parameters map[string]interface{}) {
	sl.WithFields(logrus.Fields{
		"run_id":        runID,
		"strategy_name": strategyName,
		"races":         races,
		"recommended":   recommended,
		"parameters":    parameters,
	}).Info("Scoring completed")
}
