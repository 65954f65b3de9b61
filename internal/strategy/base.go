package strategy

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yourusername/paddock-picks/internal/models"
)

// Thresholds are the fixed heuristics of the scorer.
type Thresholds struct {
	VetoPolicy          VetoPolicy
	StrongPopularityMax int
	StrongOddsThreshold decimal.Decimal
	VetoCount           int
	MidTierMin          int
	MidTierMax          int
	RankS               decimal.Decimal
	RankA               decimal.Decimal
	EstimateBase        decimal.Decimal
	EstimateSlope       decimal.Decimal
	EstimateMin         decimal.Decimal
	EstimateMax         decimal.Decimal
}

// DefaultThresholds returns the production heuristics.
func DefaultThresholds() Thresholds {
	return Thresholds{
		VetoPolicy:          VetoByPopularity,
		StrongPopularityMax: 2,
		StrongOddsThreshold: decimal.RequireFromString("3.5"),
		VetoCount:           2,
		MidTierMin:          4,
		MidTierMax:          8,
		RankS:               decimal.RequireFromString("3.0"),
		RankA:               decimal.RequireFromString("2.2"),
		EstimateBase:        decimal.RequireFromString("1.2"),
		EstimateSlope:       decimal.RequireFromString("0.25"),
		EstimateMin:         decimal.RequireFromString("1.2"),
		EstimateMax:         decimal.RequireFromString("6.0"),
	}
}

// EstimatePlaceLowFromWinOdds applies the default estimate: clamp(1.2, 6.0, 1.2 + 0.25*win),
// rounded to one decimal.
func EstimatePlaceLowFromWinOdds(winOdds decimal.Decimal) decimal.Decimal {
	b := BaseStrategy{Thresholds: DefaultThresholds()}
	return b.EstimatePlaceLow(winOdds)
}

// BaseStrategy provides the rank, estimate and display rules shared by strategies.
type BaseStrategy struct {
	Thresholds
}

// EstimatePlaceLow derives a place-odds lower bound from win odds.
func (b *BaseStrategy) EstimatePlaceLow(winOdds decimal.Decimal) decimal.Decimal {
	est := b.EstimateBase.Add(b.EstimateSlope.Mul(winOdds))
	if est.LessThan(b.EstimateMin) {
		est = b.EstimateMin
	}
	if est.GreaterThan(b.EstimateMax) {
		est = b.EstimateMax
	}
	return est.Round(1)
}

// OperativePlaceLow returns the measured place low, an estimate from win odds, or Missing.
func (b *BaseStrategy) OperativePlaceLow(r models.RunnerParsed) models.PlaceLow {
	if r.HasPlaceRange() {
		return models.MeasuredPlaceLow(*r.PlaceLow)
	}
	if r.WinOdds != nil {
		return models.EstimatedPlaceLow(b.EstimatePlaceLow(*r.WinOdds))
	}
	return models.PlaceLow{Source: models.ProvenanceMissing}
}

// AssignRank grades a place low: S at RankS or above, A at RankA or above, else B.
func (b *BaseStrategy) AssignRank(lo models.PlaceLow) models.Rank {
	v := lo.SortValue()
	switch {
	case v.GreaterThanOrEqual(b.RankS):
		return models.RankS
	case v.GreaterThanOrEqual(b.RankA):
		return models.RankA
	default:
		return models.RankB
	}
}

// HasValue reports whether lo clears the A threshold.
func (b *BaseStrategy) HasValue(lo models.PlaceLow) bool {
	return lo.SortValue().GreaterThanOrEqual(b.RankA)
}

// IsMidTier reports whether a popularity rank is a candidate. Unknown ranks are not.
func (b *BaseStrategy) IsMidTier(popularity int) bool {
	return popularity >= b.MidTierMin && popularity <= b.MidTierMax
}

// MidTierTag embeds the popularity, or the candidate range when it is unknown.
func (b *BaseStrategy) MidTierTag(popularity int) string {
	if popularity <= 0 || popularity == models.UnknownPopularity {
		return fmt.Sprintf("%d–%d%s", b.MidTierMin, b.MidTierMax, midTierTagSuffix)
	}
	return fmt.Sprintf("%d%s", popularity, midTierTagSuffix)
}

// DisplayRange renders the pasted range with en-dashes, or an estimate label.
func DisplayRange(raw string, lo models.PlaceLow) string {
	switch {
	case lo.IsMeasured() && raw != "":
		return strings.ReplaceAll(raw, "-", "–")
	case lo.IsMeasured():
		return lo.Value.StringFixed(1)
	case lo.IsEstimated():
		return fmt.Sprintf("推定 %s+", lo.Value.StringFixed(1))
	default:
		return "-"
	}
}

func capTags(tags []string) []string {
	if len(tags) > maxTags {
		return tags[:maxTags]
	}
	return tags
}
