// Package interval holds the geometry of kilometer ranges along an asset.
// Every function is pure; spans are half-open [Start, End).
package interval

import (
	"fmt"

	"github.com/xraph/chainage/types"
)

// Span is a half-open range [Start, End) along the asset.
type Span struct {
	Start types.Distance `json:"start_km"`
	End   types.Distance `json:"end_km"`
}

// Of builds a span from two distances.
func Of(start, end types.Distance) Span { return Span{Start: start, End: end} }

// Km builds a span from kilometer endpoints.
func Km(startKm, endKm float64) Span { return Span{Start: types.Km(startKm), End: types.Km(endKm)} }

// Length returns End - Start. It is negative for inverted spans.
func (s Span) Length() types.Distance { return s.End - s.Start }

// IsEmpty reports whether the span covers no distance.
func (s Span) IsEmpty() bool { return s.End <= s.Start }

func (s Span) String() string {
	return fmt.Sprintf("[%s, %s)", s.Start, s.End)
}

// OverlapLength returns max(0, min(aEnd, bEnd) - max(aStart, bStart)).
func OverlapLength(a, b Span) types.Distance {
	return (min(a.End, b.End) - max(a.Start, b.Start)).NonNegative()
}

// Overlaps reports whether a and b share interior points.
// Spans that only touch at an endpoint do not overlap.
func Overlaps(a, b Span) bool {
	return a.Start < b.End && a.End > b.Start
}

// Equal reports whether both endpoints of a and b are within tolerance.
func Equal(a, b Span, tolerance types.Distance) bool {
	return absDiff(a.Start, b.Start) <= tolerance && absDiff(a.End, b.End) <= tolerance
}

// Contains reports whether p lies in [s.Start, s.End).
func Contains(s Span, p types.Distance) bool {
	return s.Start <= p && p < s.End
}

// Within reports whether inner lies entirely inside outer.
func Within(inner, outer Span) bool {
	return inner.Start >= outer.Start && inner.End <= outer.End
}

// Share attributes work reported over the whole of span `of` to the part of
// it that falls inside `within`, in proportion to the overlapping length.
// The result is rounded to the nearest meter.
func Share(work types.Distance, of, within Span) types.Distance {
	length := of.Length()
	if length <= 0 || work == 0 {
		return 0
	}
	overlap := OverlapLength(of, within)
	if overlap == 0 {
		return 0
	}
	if overlap >= length {
		return work
	}
	num := int64(work) * int64(overlap)
	den := int64(length)
	if num < 0 {
		return -types.Distance((-num*2 + den) / (den * 2))
	}
	return types.Distance((num*2 + den) / (den * 2))
}

func absDiff(a, b types.Distance) types.Distance {
	if a > b {
		return a - b
	}
	return b - a
}
