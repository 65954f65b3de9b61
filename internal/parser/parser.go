package parser

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/paddock-picks/internal/logger"
	"github.com/yourusername/paddock-picks/internal/models"
)

// Stats summarizes a parse for operator feedback. It never drives control flow.
type Stats struct {
	DetectedTracks      int `json:"detected_tracks"`
	DetectedRaces       int `json:"detected_races"`
	DetectedHeaders     int `json:"detected_headers"`
	DetectedRunnerLines int `json:"detected_runner_lines"`
	IgnoredLines        int `json:"ignored_lines"`
}

// Result is the output of ParseAll.
type Result struct {
	Blocks []models.RaceBlock `json:"blocks"`
	Stats  Stats              `json:"stats"`
}

// lineKind is the closed set of classifications a line can receive.
type lineKind string

const (
	kindHeader     lineKind = "header"
	kindNoise      lineKind = "noise"
	kindRunner     lineKind = "runner"
	kindFrame      lineKind = "frame"
	kindLegacyName lineKind = "legacy_name"
	kindLegacyOdds lineKind = "legacy_odds"
	kindIgnored    lineKind = "ignored"
)

// recognizer inspects one normalized, trimmed line. It returns false to pass the
// line on to the next recognizer in the chain.
type recognizer func(r *run, line string) (lineKind, bool)

// recognizers is the priority order applied to every line.
var recognizers = []recognizer{
	recognizeHeader,
	recognizeNoise,
	recognizeOddsPopularityLine,
	recognizeRangePopularityLine,
	recognizeFrame,
	recognizeLegacy,
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the entry used for per-line debug traces.
func WithLogger(entry *logrus.Entry) Option {
	return func(p *Parser) {
		if entry != nil {
			p.log = entry
		}
	}
}

// Parser extracts race blocks from pasted entry tables. A Parser holds no state
// between calls and may be shared.
type Parser struct {
	log *logrus.Entry
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{log: logrus.NewEntry(logger.Discard())}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseAll normalizes text and returns every race block that ended with at least
// one runner. It always completes; unrecognized lines are counted as ignored.
func (p *Parser) ParseAll(text string) Result {
	r := &run{current: newBlock("", models.MinRaceNo)}
	for i, raw := range strings.Split(Normalize(text), "\n") {
		line := strings.TrimSpace(raw)
		kind := kindIgnored
		for _, recognize := range recognizers {
			if k, ok := recognize(r, line); ok {
				kind = k
				break
			}
		}
		if kind == kindIgnored || kind == kindNoise {
			r.stats.IgnoredLines++
		}
		if kind != kindNoise {
			p.log.WithFields(logrus.Fields{
				"line_no": i + 1,
				"kind":    string(kind),
				"frame":   r.frame.state.String(),
			}).Debug("Line classified")
		}
	}
	r.flush()
	r.finalizeStats()
	return Result{Blocks: r.blocks, Stats: r.stats}
}

// ParseAll parses text with a default Parser.
func ParseAll(text string) Result {
	return New().ParseAll(text)
}

// run carries the state of one ParseAll call.
type run struct {
	blocks      []models.RaceBlock
	current     *models.RaceBlock
	frame       frameCapture
	pendingName string
	stats       Stats
}

func newBlock(track string, raceNo int) *models.RaceBlock {
	return &models.RaceBlock{TrackName: track, RaceNo: raceNo, Runners: []models.RunnerParsed{}}
}

// flush keeps the current block only if it collected runners.
func (r *run) flush() {
	if r.current != nil && len(r.current.Runners) > 0 {
		r.blocks = append(r.blocks, *r.current)
	}
	r.current = nil
}

// emit appends a runner to the current block. A runner from any layout ends a
// partial frame capture.
func (r *run) emit(runner models.RunnerParsed) {
	if r.current == nil {
		r.current = newBlock("", models.MinRaceNo)
	}
	r.frame.reset()
	r.current.Runners = append(r.current.Runners, runner)
	r.stats.DetectedRunnerLines++
}

func (r *run) finalizeStats() {
	tracks := map[string]struct{}{}
	races := map[string]struct{}{}
	for i := range r.blocks {
		b := &r.blocks[i]
		if b.TrackName != "" {
			tracks[b.TrackName] = struct{}{}
		}
		races[b.Label()] = struct{}{}
	}
	r.stats.DetectedTracks = len(tracks)
	r.stats.DetectedRaces = len(races)
}

func recognizeHeader(r *run, line string) (lineKind, bool) {
	track, raceNo, ok := parseHeader(line)
	if !ok {
		return "", false
	}
	r.flush()
	r.current = newBlock(track, raceNo)
	r.frame.reset()
	r.pendingName = ""
	r.stats.DetectedHeaders++
	return kindHeader, true
}

func recognizeNoise(_ *run, line string) (lineKind, bool) {
	if !isNoise(line) {
		return "", false
	}
	return kindNoise, true
}

// recognizeOddsPopularityLine accepts "ホース 12.3 (5番人気)", optionally followed by
// a place range such as "複勝2.0-3.0".
func recognizeOddsPopularityLine(r *run, line string) (lineKind, bool) {
	m := reOddsPopularity.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	horse, jockey := recoverNames(m[1])
	runner := models.RunnerParsed{
		HorseName:     horse,
		JockeyName:    jockey,
		WinOdds:       parsePositiveDecimal(m[2]),
		WinPopularity: parsePopularity(m[3]),
	}
	if rng, ok := findPlaceRange(line[len(m[0]):]); ok {
		runner.PlaceLow = rng.low
		runner.PlaceHigh = rng.high
		runner.PlaceRangeRaw = rng.raw
	}
	r.emit(runner)
	r.pendingName = ""
	return kindRunner, true
}

// recognizeRangePopularityLine accepts any line carrying both "N人気" and an "a-b" range.
func recognizeRangePopularityLine(r *run, line string) (lineKind, bool) {
	loc := rePopularity.FindStringSubmatchIndex(line)
	if loc == nil {
		return "", false
	}
	rng, ok := findPlaceRange(line)
	if !ok {
		return "", false
	}
	horse, jockey := recoverNames(line[:loc[0]])
	r.emit(models.RunnerParsed{
		HorseName:     horse,
		JockeyName:    jockey,
		WinPopularity: parsePopularity(line[loc[2]:loc[3]]),
		WinOdds:       findWinOdds(line),
		PlaceLow:      rng.low,
		PlaceHigh:     rng.high,
		PlaceRangeRaw: rng.raw,
	})
	r.pendingName = ""
	return kindRunner, true
}

// recognizeFrame lets lines that fill no frame slot fall through, so a frame that
// never completes does not hide the legacy layout that follows it.
func recognizeFrame(r *run, line string) (lineKind, bool) {
	res := r.frame.feed(line)
	if !res.handled {
		return "", false
	}
	r.pendingName = ""
	if res.runner != nil {
		r.emit(*res.runner)
		return kindRunner, true
	}
	return kindFrame, true
}

// recognizeLegacy pairs a bare name line with the following "... odds popularity" line.
func recognizeLegacy(r *run, line string) (lineKind, bool) {
	if r.pendingName != "" {
		if m := reLegacyOddsTrail.FindStringSubmatchIndex(line); m != nil {
			fields := strings.Fields(line[:m[0]])
			r.emit(models.RunnerParsed{
				HorseName:     r.pendingName,
				JockeyName:    weightJockey(fields),
				WinOdds:       parsePositiveDecimal(line[m[2]:m[3]]),
				WinPopularity: parsePopularity(line[m[4]:m[5]]),
			})
			r.pendingName = ""
			return kindLegacyOdds, true
		}
	}
	if looksLikeName(line) {
		r.pendingName = stripMarks(line)
		return kindLegacyName, true
	}
	r.pendingName = ""
	return "", false
}
