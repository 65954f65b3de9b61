package parser

import (
	"github.com/shopspring/decimal"
	"github.com/yourusername/paddock-picks/internal/models"
)

// frameState is the position inside a multi-line frame block:
// marker, horse name, win odds, popularity.
type frameState int

const (
	frameIdle frameState = iota
	frameAwaitingName
	frameAwaitingOdds
	frameAwaitingPopularity
	frameComplete
)

func (s frameState) String() string {
	switch s {
	case frameAwaitingName:
		return "awaiting_name"
	case frameAwaitingOdds:
		return "awaiting_odds"
	case frameAwaitingPopularity:
		return "awaiting_popularity"
	case frameComplete:
		return "complete"
	default:
		return "idle"
	}
}

type frameEvent int

const (
	frameEventMarker frameEvent = iota
	frameEventName
	frameEventOdds
	frameEventPopularity
)

// frameTransitions is the accepting sequence. A marker restarts capture from any state.
var frameTransitions = map[frameState]map[frameEvent]frameState{
	frameIdle: {
		frameEventMarker: frameAwaitingName,
	},
	frameAwaitingName: {
		frameEventMarker: frameAwaitingName,
		frameEventName:   frameAwaitingOdds,
	},
	frameAwaitingOdds: {
		frameEventMarker: frameAwaitingName,
		frameEventOdds:   frameAwaitingPopularity,
	},
	frameAwaitingPopularity: {
		frameEventMarker:     frameAwaitingName,
		frameEventPopularity: frameComplete,
	},
}

// maxFrameMisses is how many consecutive lines may fill no slot before a partial
// frame is abandoned.
const maxFrameMisses = 4

// frameCapture buffers one runner spread over several lines.
type frameCapture struct {
	state      frameState
	horseName  string
	winOdds    *decimal.Decimal
	popularity int
	misses     int
}

// active reports whether lines are being consumed positionally.
func (f *frameCapture) active() bool {
	return f.state != frameIdle
}

func (f *frameCapture) reset() {
	*f = frameCapture{}
}

func (f *frameCapture) transition(ev frameEvent) bool {
	next, ok := frameTransitions[f.state][ev]
	if !ok {
		return false
	}
	f.state = next
	return true
}

// frameResult reports what the capture did with a line.
type frameResult struct {
	// handled is true when the line was a marker or filled the awaited slot.
	handled bool
	// runner is set once name, odds and popularity are all filled.
	runner *models.RunnerParsed
}

// feed offers a line to the capture. Lines that fill no slot are left for other
// layouts. After a runner is emitted the capture returns to idle, so later
// popularity lines from past-performance data are not consumed.
func (f *frameCapture) feed(line string) frameResult {
	if reFrameMarker.MatchString(line) {
		f.reset()
		f.transition(frameEventMarker)
		return frameResult{handled: true}
	}
	if !f.active() {
		return frameResult{}
	}

	ev, ok := f.classify(line)
	if !ok || !f.transition(ev) {
		f.misses++
		if f.misses >= maxFrameMisses {
			f.reset()
		}
		return frameResult{}
	}
	f.misses = 0
	if f.state != frameComplete {
		return frameResult{handled: true}
	}

	r := &models.RunnerParsed{
		HorseName:     f.horseName,
		WinOdds:       f.winOdds,
		WinPopularity: f.popularity,
	}
	f.reset()
	return frameResult{handled: true, runner: r}
}

// classify tests only the slot the current state awaits and buffers its value.
func (f *frameCapture) classify(line string) (frameEvent, bool) {
	switch f.state {
	case frameAwaitingName:
		if looksLikeName(line) {
			f.horseName = stripMarks(line)
			return frameEventName, true
		}
	case frameAwaitingOdds:
		if m := reDecimalOnly.FindStringSubmatch(line); m != nil {
			if odds := parsePositiveDecimal(m[1]); odds != nil {
				f.winOdds = odds
				return frameEventOdds, true
			}
		}
	case frameAwaitingPopularity:
		if m := rePopularityOnly.FindStringSubmatch(line); m != nil {
			if pop := parsePopularity(m[1]); pop > 0 {
				f.popularity = pop
				return frameEventPopularity, true
			}
		}
	}
	return 0, false
}
