// Package logger provides audit logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogPickCorrection logs a pick whose place odds were replaced by pasted values.
func (al *AuditLogger) LogPickCorrection(pickKey, oldRank, newRank, oldPlaceLow, newPlaceLow, oldProvenance string) {
	al.WithFields(logrus.Fields{
		"pick_key":       pickKey,
		"old_rank":       oldRank,
		"new_rank":       newRank,
		"old_place_low":  oldPlaceLow,
		"new_place_low":  newPlaceLow,
		"old_provenance": oldProvenance,
	}).Info("Pick corrected")
}

// LogCorrectionRejected logs a correction that left the pick unchanged.
func (al *AuditLogger) LogCorrectionRejected(pickKey string, err error) {
	al.WithFields(logrus.Fields{
		"pick_key": pickKey,
	}).WithError(err).Warn("Pick correction rejected")
}
