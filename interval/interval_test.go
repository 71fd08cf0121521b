package interval_test

import (
	"testing"

	"github.com/xraph/chainage/interval"
	"github.com/xraph/chainage/types"
)

func TestOverlapLength(t *testing.T) {
	tests := []struct {
		name string
		a, b interval.Span
		want types.Distance
	}{
		{"partial", interval.Km(0, 5), interval.Km(3, 8), types.Km(2)},
		{"touching", interval.Km(0, 5), interval.Km(5, 8), 0},
		{"disjoint", interval.Km(0, 2), interval.Km(4, 8), 0},
		{"contained", interval.Km(0, 10), interval.Km(2, 4), types.Km(2)},
		{"identical", interval.Km(1, 3), interval.Km(1, 3), types.Km(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := interval.OverlapLength(tt.a, tt.b); got != tt.want {
				t.Errorf("OverlapLength(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
			}
			if got := interval.OverlapLength(tt.b, tt.a); got != tt.want {
				t.Errorf("OverlapLength is not symmetric: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b interval.Span
		want bool
	}{
		{"partial", interval.Km(0, 5), interval.Km(3, 8), true},
		{"touching end", interval.Km(0, 5), interval.Km(5, 8), false},
		{"touching start", interval.Km(5, 8), interval.Km(0, 5), false},
		{"disjoint", interval.Km(0, 2), interval.Km(4, 8), false},
		{"contained", interval.Km(0, 10), interval.Km(2, 4), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := interval.Overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlaps(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	a := interval.Km(0, 4)
	if !interval.Equal(a, interval.Km(0, 4), 0) {
		t.Error("identical spans should be equal at zero tolerance")
	}
	if interval.Equal(a, interval.Of(0, types.Km(4)+1), 0) {
		t.Error("spans one meter apart should differ at zero tolerance")
	}
	if !interval.Equal(a, interval.Of(0, types.Km(4)+1), types.Meter) {
		t.Error("spans one meter apart should be equal at one meter tolerance")
	}
}

func TestContains(t *testing.T) {
	s := interval.Km(2, 4)
	tests := []struct {
		p    types.Distance
		want bool
	}{
		{types.Km(1.999), false},
		{types.Km(2), true},
		{types.Km(3), true},
		{types.Km(4) - 1, true},
		{types.Km(4), false},
	}

	for _, tt := range tests {
		if got := interval.Contains(s, tt.p); got != tt.want {
			t.Errorf("Contains(%s, %s) = %v, want %v", s, tt.p, got, tt.want)
		}
	}
}

func TestWithin(t *testing.T) {
	outer := interval.Km(0, 10)
	if !interval.Within(interval.Km(2, 4), outer) {
		t.Error("[2,4) should be within [0,10)")
	}
	if !interval.Within(outer, outer) {
		t.Error("a span should be within itself")
	}
	if interval.Within(interval.Km(8, 12), outer) {
		t.Error("[8,12) should not be within [0,10)")
	}
}

func TestShare(t *testing.T) {
	tests := []struct {
		name   string
		work   types.Distance
		of     interval.Span
		within interval.Span
		want   types.Distance
	}{
		{"proportional", types.Km(10), interval.Km(0, 10), interval.Km(2, 4), types.Km(2)},
		{"full cover", types.Km(5), interval.Km(0, 10), interval.Km(0, 10), types.Km(5)},
		{"query larger than span", types.Km(5), interval.Km(2, 4), interval.Km(0, 10), types.Km(5)},
		{"no overlap", types.Km(5), interval.Km(0, 4), interval.Km(4, 8), 0},
		{"rounds down", 1, interval.Of(0, 3), interval.Of(0, 1), 0},
		{"rounds half up", 1, interval.Of(0, 2), interval.Of(0, 1), 1},
		{"negative work", -1, interval.Of(0, 2), interval.Of(0, 1), -1},
		{"zero work", 0, interval.Km(0, 4), interval.Km(0, 2), 0},
		{"empty span", types.Km(1), interval.Km(4, 4), interval.Km(0, 10), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := interval.Share(tt.work, tt.of, tt.within); got != tt.want {
				t.Errorf("Share(%s, %s, %s) = %d m, want %d m", tt.work, tt.of, tt.within, got, tt.want)
			}
		})
	}
}

func TestSpanBasics(t *testing.T) {
	s := interval.Km(1.5, 4)
	if s.Length() != types.Km(2.5) {
		t.Errorf("Length() = %s, want 2.500 km", s.Length())
	}
	if s.IsEmpty() {
		t.Error("non-empty span reported empty")
	}
	if !interval.Km(4, 4).IsEmpty() || !interval.Km(5, 4).IsEmpty() {
		t.Error("degenerate spans should be empty")
	}
	if got, want := s.String(), "[1.500 km, 4.000 km)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
