package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/yourusername/paddock-picks/internal/logger"
	"github.com/yourusername/paddock-picks/internal/metrics"
	"github.com/yourusername/paddock-picks/internal/models"
	"github.com/yourusername/paddock-picks/internal/parser"
	"github.com/yourusername/paddock-picks/internal/strategy"
)

// Session holds the picks of one analysis and the ones still waiting for measured
// place odds. Picks and Worklist share card pointers, so a correction is visible
// through both.
type Session struct {
	mu        sync.Mutex
	runID     uuid.UUID
	picks     []*models.PickCard
	worklist  []*models.PickCard
	evaluator strategy.Evaluator
	audit     *logger.AuditLogger
}

// NewSession copies cards into a session. Ranked cards whose place low was not
// pasted go on the worklist.
func NewSession(runID uuid.UUID, cards []models.PickCard, evaluator strategy.Evaluator, audit *logger.AuditLogger) *Session {
	s := &Session{
		runID:     runID,
		picks:     make([]*models.PickCard, 0, len(cards)),
		evaluator: evaluator,
		audit:     audit,
	}
	for i := range cards {
		card := cards[i]
		card.Tags = append([]string{}, cards[i].Tags...)
		s.picks = append(s.picks, &card)
		if needsCorrection(&card) {
			s.worklist = append(s.worklist, &card)
		}
	}
	metrics.UpdateWorklistSize(float64(len(s.worklist)))
	return s
}

func needsCorrection(card *models.PickCard) bool {
	return card.HasSelection() && !card.PlaceLow.IsMeasured()
}

// RunID returns the analysis run the session was built from.
func (s *Session) RunID() uuid.UUID {
	return s.runID
}

// Picks returns a copy of every card in paste order.
func (s *Session) Picks() []models.PickCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCards(s.picks)
}

// Worklist returns a copy of the cards still needing a correction.
func (s *Session) Worklist() []models.PickCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCards(s.worklist)
}

// Recommended returns the current shortlist.
func (s *Session) Recommended() []models.PickCard {
	return RecommendedSorted(s.Picks())
}

// Correct re-extracts the keyed runner's odds from text and applies them to its card.
// The card is unchanged when an error is returned.
func (s *Session) Correct(key models.PickKey, text string) (*models.PickCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key = models.NewPickKey(key.Track, key.RaceNo, key.HorseName)
	card := s.find(key)
	if card == nil {
		metrics.RecordCorrection("pick_not_found")
		s.audit.LogCorrectionRejected(key.String(), models.ErrPickNotFound)
		return nil, fmt.Errorf("correct %s: %w", key, models.ErrPickNotFound)
	}

	before := *card
	odds := parser.ExtractHorseOdds(text, card.HorseName)
	if err := s.evaluator.ApplyCorrection(card, odds); err != nil {
		metrics.RecordCorrection(correctionOutcome(err))
		s.audit.LogCorrectionRejected(key.String(), err)
		return nil, fmt.Errorf("correct %s: %w", key, err)
	}

	if card.PlaceLow.IsMeasured() {
		s.dropFromWorklist(card)
	}
	metrics.RecordCorrection("applied")
	s.audit.LogPickCorrection(
		key.String(),
		string(before.Rank),
		string(card.Rank),
		formatPlaceLow(before.PlaceLow),
		formatPlaceLow(card.PlaceLow),
		string(before.PlaceLow.Source),
	)

	updated := *card
	updated.Tags = append([]string{}, card.Tags...)
	return &updated, nil
}

func (s *Session) find(key models.PickKey) *models.PickCard {
	for _, card := range s.picks {
		if card.HasSelection() && card.Key() == key {
			return card
		}
	}
	return nil
}

func (s *Session) dropFromWorklist(card *models.PickCard) {
	kept := s.worklist[:0]
	for _, c := range s.worklist {
		if c != card {
			kept = append(kept, c)
		}
	}
	s.worklist = kept
	metrics.UpdateWorklistSize(float64(len(s.worklist)))
}

func correctionOutcome(err error) string {
	switch {
	case errors.Is(err, models.ErrRangeNotFound):
		return "range_not_found"
	case errors.Is(err, models.ErrNoSelection):
		return "no_selection"
	default:
		return "error"
	}
}

func formatPlaceLow(lo models.PlaceLow) string {
	if lo.IsMissing() {
		return "-"
	}
	return lo.Value.StringFixed(1)
}

func copyCards(cards []*models.PickCard) []models.PickCard {
	out := make([]models.PickCard, 0, len(cards))
	for _, c := range cards {
		card := *c
		card.Tags = append([]string{}, c.Tags...)
		out = append(out, card)
	}
	return out
}
