// Package service wires parsing, scoring and correction into analysis runs.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/paddock-picks/internal/logger"
	"github.com/yourusername/paddock-picks/internal/metrics"
	"github.com/yourusername/paddock-picks/internal/models"
	"github.com/yourusername/paddock-picks/internal/parser"
	"github.com/yourusername/paddock-picks/internal/strategy"
)

// Report is the outcome of analyzing one paste.
type Report struct {
	RunID       uuid.UUID          `json:"run_id"`
	Strategy    string             `json:"strategy"`
	AnalyzedAt  time.Time          `json:"analyzed_at"`
	Blocks      []models.RaceBlock `json:"blocks"`
	Stats       parser.Stats       `json:"stats"`
	Picks       []models.PickCard  `json:"picks"`
	Recommended []models.PickCard  `json:"recommended"`
}

// AnalysisService parses pasted entry tables and scores every race.
type AnalysisService struct {
	parser     *parser.Parser
	evaluator  strategy.Evaluator
	cache      *ReportCache
	logger     *logrus.Logger
	parseLog   *logger.ParseLogger
	scoringLog *logger.ScoringLogger
	auditLog   *logger.AuditLogger
}

// NewAnalysisService creates a new analysis service. reportCache may be nil to
// disable memoization.
func NewAnalysisService(evaluator strategy.Evaluator, reportCache *ReportCache, log *logrus.Logger) *AnalysisService {
	if log == nil {
		log = logger.Discard()
	}
	return &AnalysisService{
		parser:     parser.New(parser.WithLogger(log.WithField("component", "parser"))),
		evaluator:  evaluator,
		cache:      reportCache,
		logger:     log,
		parseLog:   logger.NewParseLogger(log),
		scoringLog: logger.NewScoringLogger(log),
		auditLog:   logger.NewAuditLogger(log),
	}
}

// Analyze parses text and scores each race block. Identical pastes are served from
// the report cache with their original run ID. A paste with no race blocks yields an
// empty report together with a wrapped models.ErrEmptyInput.
func (s *AnalysisService) Analyze(ctx context.Context, text string) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analyze paste: %w", err)
	}

	key := NewCacheKey(text, s.evaluator.Name())
	if s.cache != nil {
		if report := s.cache.Get(key); report != nil {
			metrics.RecordCacheHit()
			s.logger.WithField("run_id", report.RunID).Debug("Serving cached report")
			return report, nil
		}
	}

	start := time.Now()
	runID := uuid.New()
	result := s.parser.ParseAll(text)
	metrics.RecordParse(result.Stats.DetectedRunnerLines, result.Stats.IgnoredLines, len(result.Blocks))

	blocks := result.Blocks
	if blocks == nil {
		blocks = []models.RaceBlock{}
	}
	report := &Report{
		RunID:       runID,
		Strategy:    s.evaluator.Name(),
		AnalyzedAt:  start.UTC(),
		Blocks:      blocks,
		Stats:       result.Stats,
		Picks:       []models.PickCard{},
		Recommended: []models.PickCard{},
	}

	if len(result.Blocks) == 0 {
		metrics.RecordEmptyInput()
		s.parseLog.LogEmptyInput(runID.String(), result.Stats.IgnoredLines)
		return report, fmt.Errorf("analyze paste: %w", models.ErrEmptyInput)
	}

	s.parseLog.LogParseSummary(
		runID.String(),
		result.Stats.DetectedHeaders,
		result.Stats.DetectedRunnerLines,
		result.Stats.IgnoredLines,
		result.Stats.DetectedTracks,
		result.Stats.DetectedRaces,
	)

	report.Picks = s.evaluator.EvaluateAll(result.Blocks)
	report.Recommended = RecommendedSorted(report.Picks)
	for _, card := range report.Picks {
		s.recordVerdict(runID, card)
	}

	metrics.RecordAnalysis(time.Since(start).Seconds())
	s.scoringLog.LogScoringSummary(
		runID.String(),
		s.evaluator.Name(),
		len(report.Picks),
		len(report.Recommended),
		s.evaluator.GetParameters(),
	)

	if s.cache != nil {
		s.cache.Set(key, report)
	}
	return report, nil
}

func (s *AnalysisService) recordVerdict(runID uuid.UUID, card models.PickCard) {
	provenance := string(card.PlaceLow.Source)
	if card.PlaceLow.IsMissing() {
		provenance = string(models.ProvenanceMissing)
	}
	metrics.RecordPick(s.evaluator.Name(), string(card.Rank), provenance)
	s.scoringLog.LogVerdict(
		runID.String(),
		s.evaluator.Name(),
		card.TrackName,
		card.RaceNo,
		string(card.Rank),
		card.HorseName,
		formatPlaceLow(card.PlaceLow),
		provenance,
		card.Reason,
	)
}

// NewSession starts a correction session over a report's picks.
func (s *AnalysisService) NewSession(report *Report) *Session {
	return NewSession(report.RunID, report.Picks, s.evaluator, s.auditLog)
}
