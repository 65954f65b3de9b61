package strategy

import (
	"sort"

	"github.com/yourusername/paddock-picks/internal/models"
	"github.com/yourusername/paddock-picks/internal/parser"
)

// weakFieldMaxStrong is the largest strong-favourite count that still earns the weak-field tag.
const weakFieldMaxStrong = 1

// MidTierStrategy picks the mid-popularity runner with the best place odds.
// It skips races with two or more strong favourites.
type MidTierStrategy struct {
	BaseStrategy
	NameValue string
}

// NewMidTierStrategy creates a mid-tier strategy with the given thresholds.
func NewMidTierStrategy(th Thresholds) *MidTierStrategy {
	return &MidTierStrategy{
		BaseStrategy: BaseStrategy{Thresholds: th},
		NameValue:    "mid_tier_place",
	}
}

// Name returns strategy name
func (s *MidTierStrategy) Name() string {
	return s.NameValue
}

type candidate struct {
	runner models.RunnerParsed
	lo     models.PlaceLow
}

// Evaluate scores one race block.
func (s *MidTierStrategy) Evaluate(block models.RaceBlock) models.PickCard {
	card := models.PickCard{
		TrackName: block.TrackName,
		RaceNo:    block.RaceNo,
		PlaceLow:  models.PlaceLow{Source: models.ProvenanceMissing},
		Tags:      []string{},
	}

	strong := s.StrongCount(block.Runners)
	if strong >= s.VetoCount {
		card.Rank = models.RankC
		card.Reason = ReasonStrongField
		return card
	}

	candidates := s.candidates(block.Runners)
	if len(candidates) == 0 {
		card.Rank = models.RankC
		card.Reason = ReasonNoCandidate
		return card
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		li, lj := candidates[i].lo.SortValue(), candidates[j].lo.SortValue()
		if !li.Equal(lj) {
			return li.GreaterThan(lj)
		}
		return candidates[i].runner.GetPopularity() < candidates[j].runner.GetPopularity()
	})
	best := candidates[0]

	card.HorseName = best.runner.HorseName
	card.JockeyName = best.runner.JockeyName
	card.WinPopularity = best.runner.WinPopularity
	card.WinOdds = best.runner.WinOdds
	card.PlaceLow = best.lo
	card.PlaceHigh = best.runner.PlaceHigh
	card.PlaceRangeRaw = best.runner.PlaceRangeRaw
	card.PlaceRangeText = DisplayRange(best.runner.PlaceRangeRaw, best.lo)
	card.Rank = s.AssignRank(best.lo)
	card.Tags = s.buildTags(best.runner.GetPopularity(), best.lo, strong)
	return card
}

// EvaluateAll scores every block, preserving order.
func (s *MidTierStrategy) EvaluateAll(blocks []models.RaceBlock) []models.PickCard {
	cards := make([]models.PickCard, 0, len(blocks))
	for _, b := range blocks {
		cards = append(cards, s.Evaluate(b))
	}
	return cards
}

// StrongCount counts strong favourites under the configured veto policy.
func (s *MidTierStrategy) StrongCount(runners []models.RunnerParsed) int {
	count := 0
	for _, r := range runners {
		switch s.VetoPolicy {
		case VetoByWinOdds:
			if r.WinOdds != nil && r.WinOdds.LessThanOrEqual(s.StrongOddsThreshold) {
				count++
			}
		default:
			if r.GetPopularity() <= s.StrongPopularityMax {
				count++
			}
		}
	}
	return count
}

func (s *MidTierStrategy) candidates(runners []models.RunnerParsed) []candidate {
	var out []candidate
	for _, r := range runners {
		if !s.IsMidTier(r.GetPopularity()) {
			continue
		}
		out = append(out, candidate{runner: r, lo: s.OperativePlaceLow(r)})
	}
	return out
}

func (s *MidTierStrategy) buildTags(popularity int, lo models.PlaceLow, strong int) []string {
	tags := []string{s.MidTierTag(popularity)}
	if s.HasValue(lo) {
		tags = append(tags, TagValue)
	}
	if strong <= weakFieldMaxStrong {
		tags = append(tags, TagWeakField)
	}
	if lo.IsEstimated() && len(tags) < maxTags {
		tags = append(tags, TagNeedsRefresh)
	}
	return capTags(tags)
}

// ApplyCorrection updates a card in place from freshly extracted odds. The card is
// left untouched when no range was found or the card names no runner.
func (s *MidTierStrategy) ApplyCorrection(card *models.PickCard, odds parser.HorseOdds) error {
	if card == nil || !card.HasSelection() {
		return models.ErrNoSelection
	}
	if !odds.Found || odds.PlaceLow == nil {
		return models.ErrRangeNotFound
	}

	lo := models.MeasuredPlaceLow(*odds.PlaceLow)
	card.PlaceLow = lo
	card.PlaceHigh = odds.PlaceHigh
	card.PlaceRangeRaw = odds.PlaceRangeRaw
	card.PlaceRangeText = DisplayRange(odds.PlaceRangeRaw, lo)
	if odds.WinOdds != nil {
		card.WinOdds = odds.WinOdds
	}
	card.Rank = s.AssignRank(lo)
	card.Tags = s.rebuildTags(card.Tags, card.WinPopularity, lo)
	card.Reason = ""
	return nil
}

// rebuildTags refreshes the mid-tier tag, toggles the value tag and keeps an
// existing weak-field tag. The refresh tag is dropped since lo is now measured.
func (s *MidTierStrategy) rebuildTags(old []string, popularity int, lo models.PlaceLow) []string {
	tags := []string{s.MidTierTag(popularity)}
	if s.HasValue(lo) {
		tags = append(tags, TagValue)
	}
	for _, t := range old {
		if t == TagWeakField {
			tags = append(tags, TagWeakField)
			break
		}
	}
	return capTags(tags)
}

// GetParameters returns the thresholds for logging.
func (s *MidTierStrategy) GetParameters() map[string]interface{} {
	return map[string]interface{}{
		"veto_policy":           string(s.VetoPolicy),
		"strong_popularity_max": s.StrongPopularityMax,
		"strong_odds_threshold": s.StrongOddsThreshold.String(),
		"veto_count":            s.VetoCount,
		"mid_tier_min":          s.MidTierMin,
		"mid_tier_max":          s.MidTierMax,
		"rank_s":                s.RankS.String(),
		"rank_a":                s.RankA.String(),
	}
}
