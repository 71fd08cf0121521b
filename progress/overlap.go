package progress

import (
	"github.com/xraph/chainage/id"
	"github.com/xraph/chainage/interval"
)

// RangeWork computes the work already recorded inside query.
//
// A stored entry's totals describe its entire range, so each overlapping
// entry contributes only the share proportional to the overlapping length.
// The entry whose id equals exclude is skipped; pass id.Nil to keep all.
func RangeWork(query interval.Span, entries []*Entry, exclude id.EntryID) Work {
	var w Work
	for _, e := range entries {
		if isExcluded(e, exclude) {
			continue
		}
		span := e.Span()
		if !interval.Overlaps(span, query) {
			continue
		}
		w.Earthwork += interval.Share(e.Earthwork, span, query)
		w.Lining += interval.Share(e.Lining, span, query)
	}
	return w
}

// Summarize wraps RangeWork with the derived remaining lining capacity.
func Summarize(query interval.Span, entries []*Entry, exclude id.EntryID) RangeSummary {
	w := RangeWork(query, entries, exclude)
	return RangeSummary{
		Span:                    query,
		Work:                    w,
		RemainingLiningCapacity: w.RemainingLiningCapacity(),
	}
}

func isExcluded(e *Entry, exclude id.EntryID) bool {
	return !exclude.IsNil() && e.ID.String() == exclude.String()
}
