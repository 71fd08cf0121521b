package progress_test

import (
	"errors"
	"testing"

	"github.com/xraph/chainage/progress"
	"github.com/xraph/chainage/types"
)

func TestBinnedSeries(t *testing.T) {
	entries := []*progress.Entry{
		entry(0, 4, 4, 2),
		entry(4, 10, 6, 6),
	}

	bins, err := progress.BinnedSeries(tenKm, entries, types.Km(2))
	if err != nil {
		t.Fatal(err)
	}

	want := []progress.Bin{
		{Position: types.Km(0), Earthwork: types.Km(4), Lining: types.Km(2)},
		{Position: types.Km(2), Earthwork: types.Km(4), Lining: types.Km(2)},
		{Position: types.Km(4), Earthwork: types.Km(6), Lining: types.Km(6)},
		{Position: types.Km(6), Earthwork: types.Km(6), Lining: types.Km(6)},
		{Position: types.Km(8), Earthwork: types.Km(6), Lining: types.Km(6)},
		{Position: types.Km(10)},
	}
	if len(bins) != len(want) {
		t.Fatalf("got %d bins, want %d", len(bins), len(want))
	}
	for i := range want {
		if bins[i] != want[i] {
			t.Errorf("bin %d = %+v, want %+v", i, bins[i], want[i])
		}
	}
}

func TestBinnedSeriesFullTotalsPerBin(t *testing.T) {
	// Each bin an entry covers gets the entry's full totals, so the series
	// sums to more than the package total.
	entries := []*progress.Entry{entry(0, 4, 4, 4)}
	bins, err := progress.BinnedSeries(types.Km(4), entries, types.Km(1))
	if err != nil {
		t.Fatal(err)
	}
	var sum types.Distance
	for _, b := range bins {
		sum += b.Earthwork
	}
	if sum != types.Km(16) {
		t.Errorf("sum of bins = %s, want 16 km", sum)
	}
}

func TestBinnedSeriesStacked(t *testing.T) {
	entries := []*progress.Entry{entry(0, 4, 4, 2), entry(0, 4, 0, 2)}
	bins, err := progress.BinnedSeries(types.Km(4), entries, types.Km(4))
	if err != nil {
		t.Fatal(err)
	}
	if len(bins) != 2 {
		t.Fatalf("got %d bins, want 2", len(bins))
	}
	if bins[0].Lining != types.Km(4) {
		t.Errorf("lining at 0 = %s, want 4 km", bins[0].Lining)
	}
}

func TestBinnedSeriesInvalidWidth(t *testing.T) {
	for _, w := range []types.Distance{0, -1} {
		if _, err := progress.BinnedSeries(tenKm, nil, w); !errors.Is(err, progress.ErrInvalidBinWidth) {
			t.Errorf("width %d: expected ErrInvalidBinWidth, got %v", w, err)
		}
	}
}

func TestBinnedSeriesUnevenWidth(t *testing.T) {
	bins, err := progress.BinnedSeries(tenKm, nil, types.Km(3))
	if err != nil {
		t.Fatal(err)
	}
	// 0, 3, 6, 9; 12 is past the end.
	if len(bins) != 4 {
		t.Fatalf("got %d bins, want 4", len(bins))
	}
	if last := bins[len(bins)-1].Position; last != types.Km(9) {
		t.Errorf("last position = %s, want 9 km", last)
	}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name    string
		entries []*progress.Entry
		length  types.Distance
		ew, ln  types.Distance
		percent float64
	}{
		{"empty", nil, tenKm, 0, 0, 0},
		{"scenario B", []*progress.Entry{entry(0, 4, 4, 2), entry(4, 10, 6, 6)}, tenKm, types.Km(10), types.Km(8), 80},
		{"capped at 100", []*progress.Entry{entry(0, 4, 4, 4), entry(0, 4, 0, 4)}, types.Km(4), types.Km(4), types.Km(8), 100},
		{"zero length", []*progress.Entry{entry(0, 1, 1, 1)}, 0, types.Km(1), types.Km(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := progress.ComputeTotals(tt.entries, tt.length)
			if got.TotalEarthwork != tt.ew || got.TotalLining != tt.ln {
				t.Errorf("totals = {%s, %s}, want {%s, %s}", got.TotalEarthwork, got.TotalLining, tt.ew, tt.ln)
			}
			if got.ProgressPercent != tt.percent {
				t.Errorf("percent = %v, want %v", got.ProgressPercent, tt.percent)
			}
		})
	}
}
