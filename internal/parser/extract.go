package parser

import (
	"strings"

	"github.com/shopspring/decimal"
)

// HorseOdds is the result of re-extracting one runner's odds from freshly pasted text.
// All fields are absent when Found is false.
type HorseOdds struct {
	PlaceLow      *decimal.Decimal `json:"place_low,omitempty"`
	PlaceHigh     *decimal.Decimal `json:"place_high,omitempty"`
	PlaceRangeRaw string           `json:"place_range_raw,omitempty"`
	WinOdds       *decimal.Decimal `json:"win_odds,omitempty"`
	Found         bool             `json:"found"`
}

// ExtractHorseOdds finds the line naming horseName and reads an "a-b" place
// range and an optional 単-labelled win odds from it. When no line mentions the
// horse, the whole text is searched instead.
func ExtractHorseOdds(text, horseName string) HorseOdds {
	normalized := Normalize(text)
	target := selectLine(normalized, stripMarks(strings.TrimSpace(Normalize(horseName))))

	rng, ok := findPlaceRange(target)
	if !ok {
		rng, ok = matchRange(reAnyRange, target)
	}
	if !ok {
		return HorseOdds{}
	}
	return HorseOdds{
		PlaceLow:      rng.low,
		PlaceHigh:     rng.high,
		PlaceRangeRaw: rng.raw,
		WinOdds:       findWinOdds(target),
		Found:         true,
	}
}

// selectLine prefers a line where horseName is a whole token, so "ホース" does not
// pick the line of "ホースII". A substring match is the fallback.
func selectLine(text, horseName string) string {
	if horseName == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		for _, tok := range strings.Fields(line) {
			if stripMarks(tok) == horseName {
				return line
			}
		}
	}
	for _, line := range lines {
		if strings.Contains(line, horseName) {
			return line
		}
	}
	return text
}
