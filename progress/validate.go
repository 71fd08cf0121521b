package progress

import (
	"strings"

	"github.com/xraph/chainage/id"
	"github.com/xraph/chainage/interval"
	"github.com/xraph/chainage/types"
)

// Validate checks a candidate report against the package's existing entries
// and target length. It returns every violation found, not just the first,
// together with the kind of report the candidate turned out to be.
//
// When a submitted number has no Distance, or the range itself is invalid,
// only those violations are returned and the kind is empty. Validate does not modify its inputs, so repeated calls
// with the same arguments return the same result.
func Validate(c Candidate, existing []*Entry, length types.Distance) (Kind, Violations) {
	if len(c.invalid) > 0 {
		return "", append(Violations(nil), c.invalid...)
	}

	var vs Violations

	// Bounds.
	if c.Span.Start < 0 {
		vs.add(CodeRangeBounds, "start_km", "start %s must not be negative", c.Span.Start)
	}
	if c.Span.End <= c.Span.Start {
		vs.add(CodeRangeBounds, "end_km", "end %s must be greater than start %s", c.Span.End, c.Span.Start)
	}
	if c.Span.End > length {
		vs.add(CodeRangeBounds, "end_km", "end %s exceeds target length %s", c.Span.End, length)
	}
	if len(vs) > 0 {
		return "", vs
	}

	// Work reported must fit inside the submitted range.
	segment := c.Span.Length()
	if c.Earthwork < 0 {
		vs.add(CodeNegativeWork, "earthwork_done_km", "earthwork %s must not be negative", c.Earthwork)
	}
	if c.Lining < 0 {
		vs.add(CodeNegativeWork, "lining_done_km", "lining %s must not be negative", c.Lining)
	}
	if c.Earthwork > segment {
		vs.add(CodeExceedsSegmentLength, "earthwork_done_km", "earthwork %s exceeds segment length %s", c.Earthwork, segment)
	}
	if c.Lining > segment {
		vs.add(CodeExceedsSegmentLength, "lining_done_km", "lining %s exceeds segment length %s", c.Lining, segment)
	}

	var kind Kind
	if match := exactEarthwork(c, existing); match != nil {
		kind = KindAdditionalLining
		validateAdditionalLining(c, match.Earthwork, existing, &vs)
	} else {
		kind = KindNewWork
		validateNewWork(c, existing, length, &vs)
	}

	// Cumulative totals across the package.
	var earthwork, lining types.Distance
	for _, e := range existing {
		if isExcluded(e, c.ID) {
			continue
		}
		earthwork += e.Earthwork
		lining += e.Lining
	}
	if after := earthwork + c.Earthwork; after > length {
		vs.add(CodeTargetExceeded, "earthwork_done_km", "total earthwork %s would exceed target length %s", after, length)
	}
	if after := lining + c.Lining; after > length {
		vs.add(CodeTargetExceeded, "lining_done_km", "total lining %s would exceed target length %s", after, length)
	}

	return kind, vs
}

// exactEarthwork returns the first entry, other than the candidate itself,
// covering exactly the candidate's range with recorded earthwork.
func exactEarthwork(c Candidate, existing []*Entry) *Entry {
	for _, e := range existing {
		if isExcluded(e, c.ID) {
			continue
		}
		if e.Earthwork > 0 && interval.Equal(e.Span(), c.Span, 0) {
			return e
		}
	}
	return nil
}

func validateAdditionalLining(c Candidate, existingEarthwork types.Distance, existing []*Entry, vs *Violations) {
	if c.Earthwork > 0 {
		vs.add(CodeExistingEarthworkConflict, "earthwork_done_km",
			"earthwork already exists in this range (%s); set earthwork to 0", existingEarthwork)
	}

	lined := RangeWork(c.Span, existing, c.ID).Lining
	available := existingEarthwork - lined
	if c.Lining > available {
		vs.add(CodeLiningCapacityExceeded, "lining_done_km",
			"lining %s exceeds available capacity %s (earthwork %s, already lined %s)",
			c.Lining, available.NonNegative(), existingEarthwork, lined)
	}
}

func validateNewWork(c Candidate, existing []*Entry, length types.Distance, vs *Violations) {
	if c.Lining > c.Earthwork {
		vs.add(CodeLiningCapacityExceeded, "lining_done_km",
			"lining %s cannot exceed earthwork %s reported in the same submission", c.Lining, c.Earthwork)
	}
	if !c.HasWork() {
		return
	}

	var conflicts []string
	for _, e := range existing {
		if isExcluded(e, c.ID) || !e.HasWork() {
			continue
		}
		if interval.Overlaps(c.Span, e.Span()) {
			conflicts = append(conflicts, e.Span().String())
		}
	}
	if len(conflicts) == 0 {
		return
	}

	v := Violation{
		Code:      CodeOverlapConflict,
		Field:     "start_km",
		Message:   "range overlaps existing work at " + strings.Join(conflicts, ", "),
		Suggested: NextAvailable(existing, length, c.ID),
	}
	if v.Suggested != nil {
		v.Message += "; next available range is " + v.Suggested.String()
	}
	*vs = append(*vs, v)
}

// NextAvailable returns [maxEnd, length), where maxEnd is the furthest end
// of any entry with recorded work. It returns nil when nothing remains.
func NextAvailable(entries []*Entry, length types.Distance, exclude id.EntryID) *interval.Span {
	var maxEnd types.Distance
	for _, e := range entries {
		if isExcluded(e, exclude) || !e.HasWork() {
			continue
		}
		maxEnd = max(maxEnd, e.End)
	}
	if maxEnd >= length {
		return nil
	}
	return &interval.Span{Start: maxEnd, End: length}
}
