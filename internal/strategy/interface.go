package strategy

import (
	"github.com/yourusername/paddock-picks/internal/models"
	"github.com/yourusername/paddock-picks/internal/parser"
)

// Evaluator turns parsed race blocks into pick cards. Implementations never fail:
// a race without a confident pick yields a C-rank card with a reason.
type Evaluator interface {
	Name() string
	Evaluate(block models.RaceBlock) models.PickCard
	EvaluateAll(blocks []models.RaceBlock) []models.PickCard
	ApplyCorrection(card *models.PickCard, odds parser.HorseOdds) error
	GetParameters() map[string]interface{}
}

// VetoPolicy selects how strong favourites are counted.
type VetoPolicy string

const (
	// VetoByPopularity counts runners at popularity 1 or 2.
	VetoByPopularity VetoPolicy = "popularity"
	// VetoByWinOdds counts runners whose win odds are at or below StrongOddsThreshold.
	VetoByWinOdds VetoPolicy = "win_odds"
)

// Reasons attached to C-rank cards.
const (
	ReasonStrongField = "上位人気が堅く見送り"
	ReasonNoCandidate = "中位人気に候補なし"
)

// Tags attached to ranked cards.
const (
	TagValue        = "妙味"
	TagWeakField    = "混戦"
	TagNeedsRefresh = "発走前に要更新"

	midTierTagSuffix = "番人気"
	maxTags          = 3
)
