package progress

import (
	"fmt"

	"github.com/xraph/chainage/interval"
	"github.com/xraph/chainage/types"
)

// BinnedSeries steps p = 0, width, 2*width, … up to and including length,
// and for each p sums the earthwork and lining of every entry whose range
// contains p.
//
// An entry contributes its full totals to every bin it spans, so the series
// is a display aid: summing it does not give the package totals.
func BinnedSeries(length types.Distance, entries []*Entry, width types.Distance) ([]Bin, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: width %s must be positive", ErrInvalidBinWidth, width)
	}
	if length < 0 {
		length = 0
	}

	bins := make([]Bin, 0, int(length/width)+1)
	for p := types.Distance(0); p <= length; p += width {
		b := Bin{Position: p}
		for _, e := range entries {
			if interval.Contains(e.Span(), p) {
				b.Earthwork += e.Earthwork
				b.Lining += e.Lining
			}
		}
		bins = append(bins, b)
	}
	return bins, nil
}

// ComputeTotals sums every entry without overlap deduplication.
// ProgressPercent is lining over length, capped at 100.
func ComputeTotals(entries []*Entry, length types.Distance) Totals {
	var t Totals
	for _, e := range entries {
		t.TotalEarthwork += e.Earthwork
		t.TotalLining += e.Lining
	}
	t.ProgressPercent = min(100, types.Percent(t.TotalLining, length))
	return t
}
