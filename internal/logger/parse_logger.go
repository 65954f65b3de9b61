// Package logger provides parser-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// ParseLogger provides dedicated logging for paste parsing.
type ParseLogger struct {
	*logrus.Entry
}

// NewParseLogger creates a new parse logger.
func NewParseLogger(baseLogger *logrus.Logger) *ParseLogger {
	return &ParseLogger{
		Entry: baseLogger.WithField("component", "parser"),
	}
}

// LogParseSummary logs the counts of one parse.
func (pl *ParseLogger) LogParseSummary(runID string, headers, runnerLines, ignoredLines, tracks, races int) {
	pl.WithFields(logrus.Fields{
		"run_id":        runID,
		"headers":       headers,
		"runner_lines":  runnerLines,
		"ignored_lines": ignoredLines,
		"tracks":        tracks,
		"races":         races,
	}).Info("Paste parsed")
}

// LogEmptyInput logs a paste that yielded no races.
func (pl *ParseLogger) LogEmptyInput(runID string, ignoredLines int) {
	pl.WithFields(logrus.Fields{
		"run_id":        runID,
		"ignored_lines": ignoredLines,
	}).Warn("No race blocks found in pasted text")
}
