package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/yourusername/paddock-picks/internal/models"
)

const raceSuffix = `(?:R(?:ACE)?|レース|競走)(?:[^A-Za-z]|$)`

var (
	reTrackHeader = regexp.MustCompile(`(?i)(` + trackAlternation() + `)\s*(?:第\s*)?(\d{1,2})\s*` + raceSuffix)
	reBareHeader  = regexp.MustCompile(`(?i)(?:^|[^\d.])(?:第\s*)?(\d{1,2})\s*` + raceSuffix)
	reTrackName   = regexp.MustCompile(`(?i)` + trackAlternation())

	reSeparator  = regexp.MustCompile(`^[-=_*・\s]+$`)
	rePedigree   = regexp.MustCompile(`^(?:母の父|母父|父|母|血統)(?:\s|:|$)`)
	reStable     = regexp.MustCompile(`^\(?(?:美浦|栗東|地方|外国)\)?(?:\s|・|$)`)
	rePostColumn = regexp.MustCompile(`^\d{1,2}\s+\d{1,2}$`)

	reOddsPopularity = regexp.MustCompile(`^(.+?)\s+(\d+\.\d+)\s*\((\d{1,2})番人気\)`)
	rePopularity     = regexp.MustCompile(`(\d{1,2})番?人気`)
	reLabelledRange  = regexp.MustCompile(`複(?:勝)?\s*:?\s*(\d+(?:\.\d+)?)\s*-\s*(\d+(?:\.\d+)?)`)
	reBareRange      = regexp.MustCompile(`(\d+\.\d+)\s*-\s*(\d+\.\d+)`)
	reAnyRange       = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*-\s*(\d+(?:\.\d+)?)`)
	reWinOdds        = regexp.MustCompile(`単(?:勝)?\s*:?\s*(\d+(?:\.\d+)?)`)

	reFrameMarker     = regexp.MustCompile(`^(?:枠番?\s*([1-8])|([1-8])\s*枠)$`)
	reDecimalOnly     = regexp.MustCompile(`^(\d+\.\d+)$`)
	rePopularityOnly  = regexp.MustCompile(`^\(?(\d{1,2})番人気\)?$`)
	reLegacyOddsTrail = regexp.MustCompile(`(\d+\.\d+)[ \t]+(\d{1,2})\s*$`)
)

// predictionMarks are the newspaper-style marks pasted in front of horse names.
const predictionMarks = "◎○◯▲△☆★注×✓✔"

const (
	minNameRunes      = 2
	maxNameRunes      = 30
	minJockeyRunes    = 2
	maxJockeyRunes    = 4
	maxLegacyJockey   = 6
	minJockeyWeightKg = 45
	maxJockeyWeightKg = 65
)

// parseHeader reports the track (possibly empty) and race number of a header line.
// A venue directly before the number wins; otherwise the number may sit anywhere
// and the first venue named elsewhere on the line is used, as in "2回東京6日 11R".
func parseHeader(line string) (track string, raceNo int, ok bool) {
	if m := reTrackHeader.FindStringSubmatch(line); m != nil {
		if n, valid := raceNumber(m[2]); valid {
			return canonicalTrack(m[1]), n, true
		}
	}
	if m := reBareHeader.FindStringSubmatch(line); m != nil {
		if n, valid := raceNumber(m[1]); valid {
			return canonicalTrack(reTrackName.FindString(line)), n, true
		}
	}
	return "", 0, false
}

func raceNumber(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < models.MinRaceNo || n > models.MaxRaceNo {
		return 0, false
	}
	return n, true
}

// isNoise reports lines that never carry runner data.
func isNoise(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	return reSeparator.MatchString(trimmed) ||
		rePedigree.MatchString(trimmed) ||
		reStable.MatchString(trimmed) ||
		rePostColumn.MatchString(trimmed)
}

// looksLikeName reports a bare line that could be a horse name.
func looksLikeName(line string) bool {
	trimmed := stripMarks(strings.TrimSpace(line))
	n := utf8.RuneCountInString(trimmed)
	if n < minNameRunes || n > maxNameRunes {
		return false
	}
	if hasDigit(trimmed) || isNoise(trimmed) {
		return false
	}
	return !strings.ContainsAny(trimmed, "牡牝騸:()") && !strings.Contains(trimmed, "人気")
}

// isJockeyToken reports a short digit-free token usable as a jockey name.
func isJockeyToken(tok string, maxRunes int) bool {
	n := utf8.RuneCountInString(tok)
	return n >= minJockeyRunes && n <= maxRunes && !hasDigit(tok)
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func stripMarks(s string) string {
	return strings.TrimSpace(strings.TrimLeft(s, predictionMarks))
}

// parsePositiveDecimal parses a pasted odds value, rejecting zero and negatives.
func parsePositiveDecimal(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.GreaterThan(decimal.Zero) {
		return nil
	}
	return &d
}

func parsePopularity(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// placeRange holds an extracted "low-high" pair.
type placeRange struct {
	low  *decimal.Decimal
	high *decimal.Decimal
	raw  string
}

// findPlaceRange prefers a 複勝-labelled range, falling back to a bare decimal range.
func findPlaceRange(line string) (placeRange, bool) {
	for _, re := range []*regexp.Regexp{reLabelledRange, reBareRange} {
		if r, ok := matchRange(re, line); ok {
			return r, true
		}
	}
	return placeRange{}, false
}

func matchRange(re *regexp.Regexp, line string) (placeRange, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return placeRange{}, false
	}
	low := parsePositiveDecimal(m[1])
	high := parsePositiveDecimal(m[2])
	if low == nil || high == nil {
		return placeRange{}, false
	}
	return placeRange{low: low, high: high, raw: m[1] + "-" + m[2]}, true
}

func findWinOdds(line string) *decimal.Decimal {
	m := reWinOdds.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	return parsePositiveDecimal(m[1])
}

// recoverNames reads horse and jockey from the tokens left of a popularity marker.
func recoverNames(prefix string) (horse, jockey string) {
	tokens := strings.Fields(prefix)
	for i := range tokens {
		tokens[i] = stripMarks(tokens[i])
	}
	tokens = dropEmpty(tokens)
	switch len(tokens) {
	case 0:
		return "", ""
	case 1:
		if hasDigit(tokens[0]) {
			return "", ""
		}
		return tokens[0], ""
	}

	last, prev := tokens[len(tokens)-1], tokens[len(tokens)-2]
	if isJockeyToken(last, maxJockeyRunes) && !hasDigit(prev) {
		return prev, last
	}
	if !hasDigit(last) {
		return last, ""
	}
	return "", ""
}

func dropEmpty(tokens []string) []string {
	out := tokens[:0]
	for _, t := range tokens {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// weightJockey finds the token after the first 45-65 kg weight in fields.
func weightJockey(fields []string) string {
	for i := 0; i < len(fields)-1; i++ {
		w, err := strconv.ParseFloat(fields[i], 64)
		if err != nil || w < minJockeyWeightKg || w > maxJockeyWeightKg {
			continue
		}
		if next := stripMarks(fields[i+1]); isJockeyToken(next, maxLegacyJockey) {
			return next
		}
		return ""
	}
	return ""
}
