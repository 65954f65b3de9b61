package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Provenance records where a place-odds lower bound came from.
type Provenance string

const (
	ProvenanceMissing   Provenance = "missing"
	ProvenanceMeasured  Provenance = "measured"
	ProvenanceEstimated Provenance = "estimated"
)

// PlaceLow is the operative place-odds lower bound together with its provenance.
// The zero value is Missing.
type PlaceLow struct {
	Value  decimal.Decimal
	Source Provenance
}

// MeasuredPlaceLow wraps a value taken from pasted text.
func MeasuredPlaceLow(v decimal.Decimal) PlaceLow {
	return PlaceLow{Value: v, Source: ProvenanceMeasured}
}

// EstimatedPlaceLow wraps a value derived from win odds.
func EstimatedPlaceLow(v decimal.Decimal) PlaceLow {
	return PlaceLow{Value: v, Source: ProvenanceEstimated}
}

// IsMeasured reports whether the value was pasted.
func (p PlaceLow) IsMeasured() bool {
	return p.Source == ProvenanceMeasured
}

// IsEstimated reports whether the value was derived from win odds.
func (p PlaceLow) IsEstimated() bool {
	return p.Source == ProvenanceEstimated
}

// IsMissing reports whether no value is available.
func (p PlaceLow) IsMissing() bool {
	return p.Source == "" || p.Source == ProvenanceMissing
}

// SortValue returns the value used for ordering; Missing sorts as -1.
func (p PlaceLow) SortValue() decimal.Decimal {
	if p.IsMissing() {
		return decimal.NewFromInt(-1)
	}
	return p.Value
}

type placeLowJSON struct {
	Value  *decimal.Decimal `json:"value,omitempty"`
	Source Provenance       `json:"source"`
}

// MarshalJSON emits {"value": "2.2", "source": "measured"}, omitting value when missing.
func (p PlaceLow) MarshalJSON() ([]byte, error) {
	out := placeLowJSON{Source: ProvenanceMissing}
	if !p.IsMissing() {
		v := p.Value
		out.Value = &v
		out.Source = p.Source
	}
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (p *PlaceLow) UnmarshalJSON(data []byte) error {
	var in placeLowJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Value == nil || in.Source == ProvenanceMissing {
		*p = PlaceLow{Source: ProvenanceMissing}
		return nil
	}
	*p = PlaceLow{Value: *in.Value, Source: in.Source}
	return nil
}
