package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	doudeuce = "ドウデュース"
	liberty  = "リバティアイランド"
)

func TestParseAllSingleRace(t *testing.T) {
	res := ParseAll("中山 7R\n◎ホース 2人気 複勝2.2-3.4\n対抗 6人気 複勝2.0-2.8\n")

	require.Len(t, res.Blocks, 1)
	block := res.Blocks[0]
	assert.Equal(t, "中山", block.TrackName)
	assert.Equal(t, 7, block.RaceNo)
	require.Len(t, block.Runners, 2)

	first := block.Runners[0]
	assert.Equal(t, "ホース", first.HorseName)
	assert.Equal(t, 2, first.WinPopularity)
	require.NotNil(t, first.PlaceLow)
	assert.Equal(t, "2.2", first.PlaceLow.StringFixed(1))
	assert.Equal(t, "3.4", first.PlaceHigh.StringFixed(1))
	assert.Equal(t, "2.2-3.4", first.PlaceRangeRaw)
	assert.Nil(t, first.WinOdds)

	second := block.Runners[1]
	assert.Equal(t, "対抗", second.HorseName)
	assert.Equal(t, 6, second.WinPopularity)
	assert.Equal(t, "2.0", second.PlaceLow.StringFixed(1))

	assert.Equal(t, 1, res.Stats.DetectedHeaders)
	assert.Equal(t, 2, res.Stats.DetectedRunnerLines)
	assert.Equal(t, 1, res.Stats.DetectedTracks)
	assert.Equal(t, 1, res.Stats.DetectedRaces)
}

func TestParseAllHeaders(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantTrack string
		wantRace  int
	}{
		{name: "track and R", header: "東京 11R", wantTrack: "東京", wantRace: 11},
		{name: "no space", header: "阪神3R", wantTrack: "阪神", wantRace: 3},
		{name: "full-width", header: "中山　７Ｒ　３歳未勝利", wantTrack: "中山", wantRace: 7},
		{name: "race word", header: "京都 第5レース", wantTrack: "京都", wantRace: 5},
		{name: "competition word", header: "小倉12競走", wantTrack: "小倉", wantRace: 12},
		{name: "romanized venue", header: "Tokyo 9R", wantTrack: "東京", wantRace: 9},
		{name: "date prefix", header: "2025年1月5日 中京 1R", wantTrack: "中京", wantRace: 1},
		{name: "bare number", header: "第3競走", wantTrack: "", wantRace: 3},
		{name: "bare R", header: "8R 4歳以上1勝クラス", wantTrack: "", wantRace: 8},
		{name: "meeting and day before venue", header: "2回東京6日 11R", wantTrack: "東京", wantRace: 11},
		{name: "race number after title", header: "3歳未勝利 5R", wantTrack: "", wantRace: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseAll(tt.header + "\nホース 5人気 複勝2.0-3.0")
			require.Len(t, res.Blocks, 1)
			assert.Equal(t, tt.wantTrack, res.Blocks[0].TrackName)
			assert.Equal(t, tt.wantRace, res.Blocks[0].RaceNo)
			assert.Equal(t, 1, res.Stats.DetectedHeaders)
		})
	}
}

func TestParseAllRejectsOutOfRangeRaceNumber(t *testing.T) {
	res := ParseAll("中山 13R\nホース 5人気 複勝2.0-3.0")

	require.Len(t, res.Blocks, 1)
	assert.Equal(t, 0, res.Stats.DetectedHeaders)
	assert.Equal(t, 1, res.Blocks[0].RaceNo)
	assert.Equal(t, "", res.Blocks[0].TrackName)
	assert.Equal(t, 1, res.Stats.IgnoredLines)
}

func TestParseAllHeaderlessIsRaceOne(t *testing.T) {
	res := ParseAll("ホース 5人気 複勝2.0-3.0")

	require.Len(t, res.Blocks, 1)
	assert.Equal(t, "", res.Blocks[0].TrackName)
	assert.Equal(t, 1, res.Blocks[0].RaceNo)
	assert.Equal(t, 0, res.Stats.DetectedTracks)
	assert.Equal(t, 1, res.Stats.DetectedRaces)
}

func TestParseAllDropsEmptyBlocks(t *testing.T) {
	text := strings.Join([]string{
		"東京 1R",
		"東京 2R",
		"ホース 5人気 複勝2.0-3.0",
		"中山 8R",
		"中山 9R",
		"ホース2 4人気 複勝1.8-2.4",
		"中山 10R",
	}, "\n")

	res := ParseAll(text)

	require.Len(t, res.Blocks, 2)
	assert.Equal(t, "東京", res.Blocks[0].TrackName)
	assert.Equal(t, 2, res.Blocks[0].RaceNo)
	assert.Equal(t, 9, res.Blocks[1].RaceNo)
	assert.Equal(t, 5, res.Stats.DetectedHeaders)
	assert.Equal(t, 2, res.Stats.DetectedTracks)
	assert.Equal(t, 2, res.Stats.DetectedRaces)
}

func TestParseAllSelfContainedOddsLine(t *testing.T) {
	res := ParseAll("東京 11R\n" + doudeuce + " 12.3 (5番人気)\n" + liberty + " 1.8 (1番人気)")

	require.Len(t, res.Blocks, 1)
	runners := res.Blocks[0].Runners
	require.Len(t, runners, 2)
	assert.Equal(t, doudeuce, runners[0].HorseName)
	assert.Equal(t, "12.3", runners[0].WinOdds.String())
	assert.Equal(t, 5, runners[0].WinPopularity)
	assert.Nil(t, runners[0].PlaceLow)
	assert.Equal(t, liberty, runners[1].HorseName)
	assert.Equal(t, 1, runners[1].WinPopularity)
}

func TestParseAllSelfContainedOddsLineWithPlaceRange(t *testing.T) {
	res := ParseAll("中山 7R\nホース 12.5 (5番人気) 複勝2.0-3.0\n")

	require.Len(t, res.Blocks, 1)
	require.Len(t, res.Blocks[0].Runners, 1)
	r := res.Blocks[0].Runners[0]
	assert.Equal(t, "ホース", r.HorseName)
	assert.Equal(t, "12.5", r.WinOdds.String())
	assert.Equal(t, 5, r.WinPopularity)
	require.NotNil(t, r.PlaceLow)
	assert.Equal(t, "2.0", r.PlaceLow.StringFixed(1))
	require.NotNil(t, r.PlaceHigh)
	assert.Equal(t, "3.0", r.PlaceHigh.StringFixed(1))
	assert.Equal(t, "2.0-3.0", r.PlaceRangeRaw)
}

func TestParseAllRangePopularityLine(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantHorse  string
		wantJockey string
		wantPop    int
		wantWin    string
		wantLow    string
		wantRaw    string
	}{
		{
			name:       "horse jockey win and place",
			line:       "1 " + doudeuce + " 武豊 5人気 単12.3 複2.5-3.8",
			wantHorse:  doudeuce,
			wantJockey: "武豊",
			wantPop:    5,
			wantWin:    "12.3",
			wantLow:    "2.5",
			wantRaw:    "2.5-3.8",
		},
		{
			name:      "long rightmost token is the horse",
			line:      "3 " + liberty + " 4番人気 複勝:1.9-2.6",
			wantHorse: liberty,
			wantPop:   4,
			wantLow:   "1.9",
			wantRaw:   "1.9-2.6",
		},
		{
			name:      "bare range fallback",
			line:      "ホース 7人気 3.1-4.5",
			wantHorse: "ホース",
			wantPop:   7,
			wantLow:   "3.1",
			wantRaw:   "3.1-4.5",
		},
		{
			name:    "no name recovered",
			line:    "5人気 複勝2.0-2.8",
			wantPop: 5,
			wantLow: "2.0",
			wantRaw: "2.0-2.8",
		},
		{
			name:      "labelled range wins over bare range",
			line:      "ホース 6人気 1.1-1.2 複勝2.4-3.0",
			wantHorse: "ホース",
			wantPop:   6,
			wantLow:   "2.4",
			wantRaw:   "2.4-3.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseAll(tt.line)
			require.Len(t, res.Blocks, 1)
			require.Len(t, res.Blocks[0].Runners, 1)
			r := res.Blocks[0].Runners[0]
			assert.Equal(t, tt.wantHorse, r.HorseName)
			assert.Equal(t, tt.wantJockey, r.JockeyName)
			assert.Equal(t, tt.wantPop, r.WinPopularity)
			if tt.wantWin == "" {
				assert.Nil(t, r.WinOdds)
			} else {
				require.NotNil(t, r.WinOdds)
				assert.Equal(t, tt.wantWin, r.WinOdds.String())
			}
			require.NotNil(t, r.PlaceLow)
			assert.Equal(t, tt.wantLow, r.PlaceLow.StringFixed(1))
			assert.Equal(t, tt.wantRaw, r.PlaceRangeRaw)
		})
	}
}

func TestParseAllPopularityWithoutRangeIsIgnored(t *testing.T) {
	res := ParseAll("ホース 5人気 単12.3")

	assert.Empty(t, res.Blocks)
	assert.Equal(t, 1, res.Stats.IgnoredLines)
}

func TestParseAllFrameBlocks(t *testing.T) {
	text := strings.Join([]string{
		"東京 11R",
		"1枠",
		doudeuce,
		"牡5",
		"12.3",
		"(5番人気)",
		"前走",
		"3番人気",
		"枠2",
		liberty,
		"2.1",
		"1番人気",
	}, "\n")

	res := ParseAll(text)

	require.Len(t, res.Blocks, 1)
	runners := res.Blocks[0].Runners
	require.Len(t, runners, 2)
	assert.Equal(t, doudeuce, runners[0].HorseName)
	assert.Equal(t, "12.3", runners[0].WinOdds.String())
	assert.Equal(t, 5, runners[0].WinPopularity)
	assert.Equal(t, liberty, runners[1].HorseName)
	assert.Equal(t, 1, runners[1].WinPopularity)
	assert.Equal(t, 2, res.Stats.DetectedRunnerLines)
}

func TestParseAllHeaderInterruptsFrameCapture(t *testing.T) {
	text := strings.Join([]string{
		"1枠",
		doudeuce,
		"東京 11R",
		"12.3",
		"(5番人気)",
	}, "\n")

	res := ParseAll(text)

	assert.Empty(t, res.Blocks)
	assert.Equal(t, 1, res.Stats.DetectedHeaders)
	assert.Equal(t, 2, res.Stats.IgnoredLines)
}

func TestParseAllLegacyTwoLineLayout(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantJockey string
		wantOdds   string
		wantPop    int
	}{
		{
			name:       "space separated",
			text:       doudeuce + "\n牡5 58.0 武豊 3.4 2",
			wantJockey: "武豊",
			wantOdds:   "3.4",
			wantPop:    2,
		},
		{
			name:       "tab separated",
			text:       doudeuce + "\n牡5\t58.0\t武豊\t3.4\t2",
			wantJockey: "武豊",
			wantOdds:   "3.4",
			wantPop:    2,
		},
		{
			name:     "no weight means no jockey",
			text:     doudeuce + "\n武豊 15.8 7",
			wantOdds: "15.8",
			wantPop:  7,
		},
		{
			name:       "noise between name and odds",
			text:       doudeuce + "\n(栗東)\n父 ハーツクライ\n牡5 58 武豊 3.4 2",
			wantJockey: "武豊",
			wantOdds:   "3.4",
			wantPop:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseAll(tt.text)
			require.Len(t, res.Blocks, 1)
			require.Len(t, res.Blocks[0].Runners, 1)
			r := res.Blocks[0].Runners[0]
			assert.Equal(t, doudeuce, r.HorseName)
			assert.Equal(t, tt.wantJockey, r.JockeyName)
			assert.Equal(t, tt.wantOdds, r.WinOdds.String())
			assert.Equal(t, tt.wantPop, r.WinPopularity)
		})
	}
}

func TestParseAllLegacyPendingNameClearedByOtherLine(t *testing.T) {
	res := ParseAll(doudeuce + "\n牡5 58.0\n3.4 2")

	assert.Empty(t, res.Blocks)
}

func TestParseAllNoiseLines(t *testing.T) {
	text := strings.Join([]string{
		"",
		"-----",
		"父 キタサンブラック",
		"母父 サンデーサイレンス",
		"(美浦)",
		"栗東・友道",
		"1 1",
		"ホース 5人気 複勝2.0-3.0",
	}, "\n")

	res := ParseAll(text)

	require.Len(t, res.Blocks, 1)
	assert.Equal(t, 7, res.Stats.IgnoredLines)
	assert.Equal(t, 1, res.Stats.DetectedRunnerLines)
}

func TestParseAllBlocksAlwaysHaveRunners(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		"中山 1R\n中山 2R",
		"1枠\n2枠\n3枠",
		"ランダムな文章です\nさらに文章",
		"12.3\n(5番人気)\n3.4 2",
		"東京 11R\nホース 5人気 複勝2.0-3.0\n東京 12R\n-----",
	}

	for _, in := range inputs {
		res := ParseAll(in)
		for _, b := range res.Blocks {
			assert.NotEmpty(t, b.Runners, "input %q", in)
			assert.GreaterOrEqual(t, b.RaceNo, 1)
			assert.LessOrEqual(t, b.RaceNo, 12)
		}
	}
}

func TestParserWithLoggerTracesLines(t *testing.T) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)

	p := New(WithLogger(log.WithField("component", "parser")))
	res := p.ParseAll("中山 7R\nホース 5人気 複勝2.0-3.0")

	require.Len(t, res.Blocks, 1)
	assert.Contains(t, buf.String(), `"kind":"header"`)
	assert.Contains(t, buf.String(), `"kind":"runner"`)
}

func TestParseAllEveryKnownTrackHeader(t *testing.T) {
	for _, track := range KnownTracks {
		t.Run(track, func(t *testing.T) {
			res := ParseAll(track + " 3R\n" + doudeuce + " 5人気 複勝2.5-3.0\n")
			require.Len(t, res.Blocks, 1)
			assert.Equal(t, track, res.Blocks[0].TrackName)
			assert.True(t, IsKnownTrack(res.Blocks[0].TrackName))
		})
	}
}

func TestParseAllRomanizedTrackHeader(t *testing.T) {
	res := ParseAll("Tokyo 11R\n" + liberty + " 4人気 複勝2.2-2.9\n")

	require.Len(t, res.Blocks, 1)
	assert.Equal(t, "東京", res.Blocks[0].TrackName)
	assert.Equal(t, 11, res.Blocks[0].RaceNo)
	assert.False(t, IsKnownTrack("TOKYO"))
}

func TestParseAllMeetingHeaderKeepsTrack(t *testing.T) {
	res := ParseAll("2回東京6日 11R\nホース 5人気 複勝2.0-3.0\n")

	require.Len(t, res.Blocks, 1)
	assert.Equal(t, "東京", res.Blocks[0].TrackName)
	assert.Equal(t, 11, res.Blocks[0].RaceNo)
	assert.Equal(t, 1, res.Stats.DetectedHeaders)
	assert.Equal(t, 1, res.Stats.DetectedTracks)
}

func TestParseAllRaceNumberInsideLongerNumberIsNotHeader(t *testing.T) {
	res := ParseAll("2013R\nホース 5人気 複勝2.0-3.0")

	assert.Equal(t, 0, res.Stats.DetectedHeaders)
	require.Len(t, res.Blocks, 1)
	assert.Equal(t, 1, res.Blocks[0].RaceNo)
}

func TestParseAllUnfinishedFrameFallsBackToLegacy(t *testing.T) {
	text := strings.Join([]string{
		"中山 1R",
		"1枠",
		"アルファ",
		"---",
		"ベータ",
		"牡3 55.0 ルメール 3.5 1",
	}, "\n")

	res := ParseAll(text)

	require.Len(t, res.Blocks, 1)
	assert.Equal(t, "中山", res.Blocks[0].TrackName)
	require.Len(t, res.Blocks[0].Runners, 1)
	r := res.Blocks[0].Runners[0]
	assert.Equal(t, "ベータ", r.HorseName)
	assert.Equal(t, "ルメール", r.JockeyName)
	assert.Equal(t, "3.5", r.WinOdds.String())
	assert.Equal(t, 1, r.WinPopularity)
	assert.Equal(t, 1, res.Stats.IgnoredLines)
}

func TestParseAllAbandonsStalledFrame(t *testing.T) {
	text := strings.Join([]string{
		"1枠",
		"アルファ",
		"牡3",
		"栗毛 3",
		"2走前 5着",
		"馬体重 480",
		"12.3",
		"(5番人気)",
	}, "\n")

	res := ParseAll(text)

	assert.Empty(t, res.Blocks)
	assert.Equal(t, 0, res.Stats.DetectedRunnerLines)
}

func TestParseAllFrameThenLegacyRunners(t *testing.T) {
	text := strings.Join([]string{
		"東京 11R",
		"1枠",
		doudeuce,
		"12.3",
		"(5番人気)",
		liberty,
		"牝4 56.0 川田将雅 1.8 1",
	}, "\n")

	res := ParseAll(text)

	require.Len(t, res.Blocks, 1)
	runners := res.Blocks[0].Runners
	require.Len(t, runners, 2)
	assert.Equal(t, doudeuce, runners[0].HorseName)
	assert.Equal(t, 5, runners[0].WinPopularity)
	assert.Equal(t, liberty, runners[1].HorseName)
	assert.Equal(t, "川田将雅", runners[1].JockeyName)
	assert.Equal(t, 1, runners[1].WinPopularity)
}
