package models

import "fmt"

// UnknownTrack stands in for a missing track name in identity keys.
const UnknownTrack = "unknown"

// Race number bounds accepted from pasted headers.
const (
	MinRaceNo = 1
	MaxRaceNo = 12
)

// RaceBlock is one race's runner list as recovered from pasted text.
type RaceBlock struct {
	TrackName string         `json:"track_name,omitempty"`
	RaceNo    int            `json:"race_no"`
	Runners   []RunnerParsed `json:"runners"`
}

// TrackOrUnknown returns the track name, or UnknownTrack when none was pasted.
func (b *RaceBlock) TrackOrUnknown() string {
	return trackOrUnknown(b.TrackName)
}

// Label renders the race as "中山7R".
func (b *RaceBlock) Label() string {
	return fmt.Sprintf("%s%dR", b.TrackOrUnknown(), b.RaceNo)
}

func trackOrUnknown(track string) string {
	if track == "" {
		return UnknownTrack
	}
	return track
}
