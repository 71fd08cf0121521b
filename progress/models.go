// Package progress records earthwork and lining reported over kilometer
// ranges, and reconciles overlapping reports into consistent totals.
package progress

import (
	"time"

	"github.com/xraph/chainage/id"
	"github.com/xraph/chainage/interval"
	"github.com/xraph/chainage/types"
)

// Kind tells what a stored entry reported.
type Kind string

const (
	// KindNewWork reports fresh earthwork, optionally with lining, over a
	// range that had no prior work.
	KindNewWork Kind = "new_work"
	// KindAdditionalLining reports lining only, over a range that exactly
	// matches an earlier earthwork report.
	KindAdditionalLining Kind = "additional_lining"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindNewWork || k == KindAdditionalLining
}

// Entry is one accepted progress report. The earthwork and lining totals
// describe the whole of [Start, End).
type Entry struct {
	types.Entity
	ID           id.EntryID     `json:"id"`
	PackageID    string         `json:"package_id"`
	Start        types.Distance `json:"start_km"`
	End          types.Distance `json:"end_km"`
	Earthwork    types.Distance `json:"earthwork_done_km"`
	Lining       types.Distance `json:"lining_done_km"`
	ReportedDate time.Time      `json:"reported_date"`
	Kind         Kind           `json:"kind"`
	Remarks      string         `json:"remarks,omitempty"`
}

// Span returns the entry's range.
func (e *Entry) Span() interval.Span {
	return interval.Span{Start: e.Start, End: e.End}
}

// HasWork reports whether the entry carries any earthwork or lining.
func (e *Entry) HasWork() bool {
	return e.Earthwork > 0 || e.Lining > 0
}

// Clone returns a copy of e.
func (e *Entry) Clone() *Entry {
	c := *e
	return &c
}

// Input is a progress report as submitted by a caller, in kilometers.
type Input struct {
	StartKm         float64   `json:"start_km"`
	EndKm           float64   `json:"end_km"`
	EarthworkDoneKm float64   `json:"earthwork_done_km"`
	LiningDoneKm    float64   `json:"lining_done_km"`
	ReportedDate    time.Time `json:"reported_date"`
	Remarks         string    `json:"remarks,omitempty"`
}

// Candidate converts the input to fixed-point distances. self is the id of
// the entry being edited, or id.Nil for a new report. Fields that have no
// Distance are zero in the result and are reported by Validate.
func (in Input) Candidate(self id.EntryID) Candidate {
	c := Candidate{ID: self}
	fields := []struct {
		name string
		km   float64
		dst  *types.Distance
	}{
		{"start_km", in.StartKm, &c.Span.Start},
		{"end_km", in.EndKm, &c.Span.End},
		{"earthwork_done_km", in.EarthworkDoneKm, &c.Earthwork},
		{"lining_done_km", in.LiningDoneKm, &c.Lining},
	}
	for _, f := range fields {
		d, err := types.ParseKm(f.km)
		if err != nil {
			c.invalid.add(CodeInvalidNumber, f.name, "%v is not a valid distance in km", f.km)
			continue
		}
		*f.dst = d
	}
	return c
}

// Candidate is a report under validation.
type Candidate struct {
	// ID is the entry being replaced, or id.Nil when the report is new.
	ID        id.EntryID
	Span      interval.Span
	Earthwork types.Distance
	Lining    types.Distance

	invalid Violations
}

// HasWork reports whether the candidate carries any earthwork or lining.
func (c Candidate) HasWork() bool {
	return c.Earthwork != 0 || c.Lining != 0
}

// Work is earthwork and lining attributed to some range.
type Work struct {
	Earthwork types.Distance `json:"earthwork_km"`
	Lining    types.Distance `json:"lining_km"`
}

// RemainingLiningCapacity is the lining that can still be recorded where
// this work was measured: max(0, Earthwork - Lining).
func (w Work) RemainingLiningCapacity() types.Distance {
	return (w.Earthwork - w.Lining).NonNegative()
}

// RangeSummary answers "how much work already exists in this range".
type RangeSummary struct {
	Span                    interval.Span  `json:"span"`
	Work                    Work           `json:"work"`
	RemainingLiningCapacity types.Distance `json:"remaining_lining_capacity_km"`
}

// Totals are plain sums over every entry of a package.
type Totals struct {
	TotalEarthwork  types.Distance `json:"total_earthwork_km"`
	TotalLining     types.Distance `json:"total_lining_km"`
	ProgressPercent float64        `json:"overall_progress_percent"`
}

// Bin is one point of the bucketed series.
type Bin struct {
	Position  types.Distance `json:"position_km"`
	Earthwork types.Distance `json:"earthwork_km"`
	Lining    types.Distance `json:"lining_km"`
}
