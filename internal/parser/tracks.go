package parser

import (
	"regexp"
	"sort"
	"strings"
)

// KnownTracks lists the ten JRA venues recognized in race headers.
var KnownTracks = []string{"札幌", "函館", "福島", "新潟", "東京", "中山", "中京", "京都", "阪神", "小倉"}

// trackNameMap maps every accepted spelling (upper-cased) to its canonical name.
var trackNameMap = buildTrackNameMap()

// IsKnownTrack reports whether name is one of the canonical venue names.
func IsKnownTrack(name string) bool {
	for _, t := range KnownTracks {
		if t == name {
			return true
		}
	}
	return false
}

// canonicalTrack returns the canonical venue for a matched spelling, or "".
func canonicalTrack(name string) string {
	return trackNameMap[strings.ToUpper(name)]
}

// trackAlternation renders the map keys as a regexp alternation, longest first.
func trackAlternation() string {
	keys := make([]string, 0, len(trackNameMap))
	for k := range trackNameMap {
		keys = append(keys, regexp.QuoteMeta(k))
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return strings.Join(keys, "|")
}

func buildTrackNameMap() map[string]string {
	return map[string]string{
		"札幌":        "札幌",
		"SAPPORO":   "札幌",
		"函館":        "函館",
		"HAKODATE":  "函館",
		"福島":        "福島",
		"FUKUSHIMA": "福島",
		"新潟":        "新潟",
		"NIIGATA":   "新潟",
		"東京":        "東京",
		"TOKYO":     "東京",
		"中山":        "中山",
		"NAKAYAMA":  "中山",
		"中京":        "中京",
		"CHUKYO":    "中京",
		"京都":        "京都",
		"KYOTO":     "京都",
		"阪神":        "阪神",
		"HANSHIN":   "阪神",
		"小倉":        "小倉",
		"KOKURA":    "小倉",
	}
}
