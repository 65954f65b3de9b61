package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Rank grades a race's pick. S is the most desirable.
type Rank string

const (
	RankS Rank = "S"
	RankA Rank = "A"
	RankB Rank = "B"
	RankC Rank = "C"
)

// Order returns a sort weight where lower is better.
func (r Rank) Order() int {
	switch r {
	case RankS:
		return 0
	case RankA:
		return 1
	case RankB:
		return 2
	default:
		return 3
	}
}

// IsRecommended reports whether the rank makes the cross-race shortlist.
func (r Rank) IsRecommended() bool {
	return r == RankS || r == RankA
}

// PickCard is the verdict for one race.
type PickCard struct {
	Rank           Rank             `json:"rank"`
	TrackName      string           `json:"track_name,omitempty"`
	RaceNo         int              `json:"race_no"`
	HorseName      string           `json:"horse_name,omitempty"`
	JockeyName     string           `json:"jockey_name,omitempty"`
	WinPopularity  int              `json:"win_popularity,omitempty"`
	WinOdds        *decimal.Decimal `json:"win_odds,omitempty"`
	PlaceRangeText string           `json:"place_range_text,omitempty"`
	PlaceLow       PlaceLow         `json:"place_low"`
	PlaceHigh      *decimal.Decimal `json:"place_high,omitempty"`
	PlaceRangeRaw  string           `json:"place_range_raw,omitempty"`
	Tags           []string         `json:"tags"`
	Reason         string           `json:"reason,omitempty"`
}

// HasSelection reports whether the card names a runner.
func (c *PickCard) HasSelection() bool {
	return c.Rank != RankC
}

// Key returns the card's identity across re-scoring.
func (c *PickCard) Key() PickKey {
	return PickKey{Track: trackOrUnknown(c.TrackName), RaceNo: c.RaceNo, HorseName: c.HorseName}
}

// RaceLabel returns "{track-or-unknown}{raceNo}", the cross-race ordering key.
func (c *PickCard) RaceLabel() string {
	return fmt.Sprintf("%s%d", trackOrUnknown(c.TrackName), c.RaceNo)
}

// PickKey identifies a pick by (track-or-unknown, race number, horse name).
type PickKey struct {
	Track     string `json:"track"`
	RaceNo    int    `json:"race_no"`
	HorseName string `json:"horse_name"`
}

// NewPickKey builds a key, substituting UnknownTrack for an empty track.
func NewPickKey(track string, raceNo int, horse string) PickKey {
	return PickKey{Track: trackOrUnknown(track), RaceNo: raceNo, HorseName: horse}
}

// String returns "中山/7/ホース".
func (k PickKey) String() string {
	return fmt.Sprintf("%s/%d/%s", k.Track, k.RaceNo, k.HorseName)
}
