package models

import (
	"github.com/shopspring/decimal"
)

// UnknownPopularity is the rank assumed for a runner whose popularity was not pasted.
const UnknownPopularity = 99

// RunnerParsed holds the facts recovered from one entry in a pasted race table.
// Every field is optional; extraction is best-effort.
type RunnerParsed struct {
	HorseName     string           `json:"horse_name,omitempty"`
	JockeyName    string           `json:"jockey_name,omitempty"`
	WinPopularity int              `json:"win_popularity,omitempty"`
	WinOdds       *decimal.Decimal `json:"win_odds,omitempty"`
	PlaceLow      *decimal.Decimal `json:"place_low,omitempty"`
	PlaceHigh     *decimal.Decimal `json:"place_high,omitempty"`
	PlaceRangeRaw string           `json:"place_range_raw,omitempty"`
}

// GetPopularity returns the popularity rank or UnknownPopularity if absent
func (r *RunnerParsed) GetPopularity() int {
	if r.WinPopularity <= 0 {
		return UnknownPopularity
	}
	return r.WinPopularity
}

// HasPlaceRange reports whether a measured place range was extracted.
func (r *RunnerParsed) HasPlaceRange() bool {
	return r.PlaceLow != nil
}
