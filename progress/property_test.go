//go:build property
// +build property

package progress_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/xraph/chainage/id"
	"github.com/xraph/chainage/interval"
	"github.com/xraph/chainage/progress"
)

// apply feeds reports through Validate in order and keeps the accepted ones.
func apply(starts, lengths, earthwork, lining []int) []*progress.Entry {
	var accepted []*progress.Entry
	n := min(len(starts), len(lengths), len(earthwork), len(lining))
	for i := 0; i < n; i++ {
		c := candidate(
			float64(starts[i]),
			float64(starts[i]+lengths[i]),
			float64(earthwork[i]),
			float64(lining[i]),
		)
		kind, vs := progress.Validate(c, accepted, tenKm)
		if len(vs) > 0 {
			continue
		}
		accepted = append(accepted, &progress.Entry{
			ID:        id.NewEntryID(),
			Start:     c.Span.Start,
			End:       c.Span.End,
			Earthwork: c.Earthwork,
			Lining:    c.Lining,
			Kind:      kind,
		})
	}
	return accepted
}

func TestAcceptedReportsStayConsistent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	starts := gen.SliceOfN(25, gen.IntRange(0, 9))
	lengths := gen.SliceOfN(25, gen.IntRange(1, 3))
	amounts := gen.SliceOfN(25, gen.IntRange(0, 3))

	properties.Property("totals never exceed the target", prop.ForAll(
		func(s, l, ew, ln []int) bool {
			totals := progress.ComputeTotals(apply(s, l, ew, ln), tenKm)
			return totals.TotalEarthwork <= tenKm && totals.TotalLining <= tenKm
		},
		starts, lengths, amounts, amounts,
	))

	properties.Property("lining never exceeds earthwork beneath it", prop.ForAll(
		func(s, l, ew, ln []int) bool {
			entries := apply(s, l, ew, ln)
			for _, e := range entries {
				if e.Earthwork == 0 {
					continue
				}
				if progress.RangeWork(e.Span(), entries, id.Nil).Lining > e.Earthwork {
					return false
				}
			}
			return true
		},
		starts, lengths, amounts, amounts,
	))

	properties.Property("new work ranges never overlap", prop.ForAll(
		func(s, l, ew, ln []int) bool {
			var worked []interval.Span
			for _, e := range apply(s, l, ew, ln) {
				if e.Kind == progress.KindNewWork && e.HasWork() {
					worked = append(worked, e.Span())
				}
			}
			for i := range worked {
				for j := i + 1; j < len(worked); j++ {
					if interval.Overlaps(worked[i], worked[j]) {
						return false
					}
				}
			}
			return true
		},
		starts, lengths, amounts, amounts,
	))

	properties.Property("validation is repeatable", prop.ForAll(
		func(s, l, ew, ln []int, start, length, e, lin int) bool {
			entries := apply(s, l, ew, ln)
			c := candidate(float64(start), float64(start+length), float64(e), float64(lin))
			k1, v1 := progress.Validate(c, entries, tenKm)
			k2, v2 := progress.Validate(c, entries, tenKm)
			if k1 != k2 || len(v1) != len(v2) {
				return false
			}
			for i := range v1 {
				if v1[i].Code != v2[i].Code || v1[i].Message != v2[i].Message {
					return false
				}
			}
			return true
		},
		starts, lengths, amounts, amounts,
		gen.IntRange(0, 9), gen.IntRange(1, 3), gen.IntRange(0, 3), gen.IntRange(0, 3),
	))

	properties.TestingRun(t)
}

