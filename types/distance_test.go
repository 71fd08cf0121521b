package types

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestKmConversion(t *testing.T) {
	tests := []struct {
		name string
		km   float64
		want Distance
	}{
		{"Whole", 4, Meters(4000)},
		{"Fraction", 2.5, Meters(2500)},
		{"Meter precision", 0.001, Meters(1)},
		{"Rounds down", 1.0004, Meters(1000)},
		{"Rounds up", 1.0006, Meters(1001)},
		{"Zero", 0, 0},
		{"Negative", -0.25, Meters(-250)},
		{"NaN", math.NaN(), 0},
		{"Inf", math.Inf(1), 0},
		{"Too large", 1e16, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Km(tt.km); got != tt.want {
				t.Errorf("Km(%v): got %d, want %d", tt.km, got, tt.want)
			}
		})
	}
}

func TestParseKm(t *testing.T) {
	tests := []struct {
		name    string
		km      float64
		want    Distance
		wantErr bool
	}{
		{"Valid", 2.5, Meters(2500), false},
		{"Negative is representable", -1, Meters(-1000), false},
		{"At limit", MaxKm, Distance(MaxKm * 1000), false},
		{"NaN", math.NaN(), 0, true},
		{"Plus Inf", math.Inf(1), 0, true},
		{"Minus Inf", math.Inf(-1), 0, true},
		{"Beyond limit", 1e16, 0, true},
		{"Beyond negative limit", -1e16, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKm(tt.km)
			if tt.wantErr {
				if !errors.Is(err, ErrNotRepresentable) {
					t.Fatalf("ParseKm(%v): error = %v, want ErrNotRepresentable", tt.km, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKm(%v): unexpected error %v", tt.km, err)
			}
			if got != tt.want {
				t.Errorf("ParseKm(%v): got %d, want %d", tt.km, got, tt.want)
			}
		})
	}
}

func TestDistanceString(t *testing.T) {
	tests := []struct {
		d    Distance
		want string
	}{
		{Meters(4250), "4.250 km"},
		{Meters(1), "0.001 km"},
		{0, "0.000 km"},
		{Meters(-1500), "-1.500 km"},
		{10 * Kilometer, "10.000 km"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.d.String(); got != tt.want {
				t.Errorf("String: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDistancePredicates(t *testing.T) {
	tests := []struct {
		name       string
		d          Distance
		isZero     bool
		isPositive bool
		isNegative bool
	}{
		{"Zero", 0, true, false, false},
		{"Positive", Meters(10), false, true, false},
		{"Negative", Meters(-10), false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.IsZero(); got != tt.isZero {
				t.Errorf("IsZero: got %v, want %v", got, tt.isZero)
			}
			if got := tt.d.IsPositive(); got != tt.isPositive {
				t.Errorf("IsPositive: got %v, want %v", got, tt.isPositive)
			}
			if got := tt.d.IsNegative(); got != tt.isNegative {
				t.Errorf("IsNegative: got %v, want %v", got, tt.isNegative)
			}
		})
	}
}

func TestClampAndNonNegative(t *testing.T) {
	if got := Meters(15).Clamp(0, Meters(10)); got != Meters(10) {
		t.Errorf("Clamp high: got %d", got)
	}
	if got := Meters(-5).Clamp(0, Meters(10)); got != 0 {
		t.Errorf("Clamp low: got %d", got)
	}
	if got := Meters(-5).NonNegative(); got != 0 {
		t.Errorf("NonNegative: got %d", got)
	}
}

func TestSumAndPercent(t *testing.T) {
	if got := Sum(Meters(1), Meters(2), Meters(3)); got != Meters(6) {
		t.Errorf("Sum: got %d, want 6", got)
	}
	if got := Sum(); got != 0 {
		t.Errorf("empty Sum: got %d", got)
	}
	if got := Percent(Meters(8000), Meters(10000)); got != 80 {
		t.Errorf("Percent: got %v, want 80", got)
	}
	if got := Percent(Meters(1), 0); got != 0 {
		t.Errorf("Percent of zero whole: got %v", got)
	}
}

func TestDistanceJSON(t *testing.T) {
	b, err := json.Marshal(Meters(2500))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "2.5" {
		t.Errorf("marshal: got %s, want 2.5", b)
	}

	var d Distance
	if err := json.Unmarshal([]byte("4.25"), &d); err != nil {
		t.Fatal(err)
	}
	if d != Meters(4250) {
		t.Errorf("unmarshal: got %d, want 4250", d)
	}

	if err := json.Unmarshal([]byte(`"x"`), &d); err == nil {
		t.Error("expected error for non-numeric distance")
	}
}
