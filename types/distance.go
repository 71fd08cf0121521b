// Package types provides common types used across chainage.
package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// Distance is a length along the asset in whole meters.
// All arithmetic is integer-only; kilometers exist only at the boundary.
//
// Examples:
//   - Meters(4000) = 4.000 km
//   - Km(2.5)      = 2500 m
type Distance int64

// Common units.
const (
	Meter     Distance = 1
	Kilometer Distance = 1000
)

// Meters creates a Distance from a whole number of meters.
func Meters(m int64) Distance { return Distance(m) }

// MaxKm is the largest kilometer magnitude ParseKm accepts.
const MaxKm = 1e12

// ErrNotRepresentable is returned for kilometer values that have no Distance.
var ErrNotRepresentable = errors.New("types: kilometer value is not a representable distance")

// ParseKm converts a kilometer value to a Distance, rounding to the nearest
// meter. NaN, infinities and magnitudes above MaxKm return ErrNotRepresentable.
func ParseKm(km float64) (Distance, error) {
	if math.IsNaN(km) || math.IsInf(km, 0) || math.Abs(km) > MaxKm {
		return 0, fmt.Errorf("%w: %v", ErrNotRepresentable, km)
	}
	return Distance(math.Round(km * float64(Kilometer))), nil
}

// Km is ParseKm for values known to be valid, such as constants and test
// fixtures. Values ParseKm rejects convert to zero.
func Km(km float64) Distance {
	d, err := ParseKm(km)
	if err != nil {
		return 0
	}
	return d
}

// Arithmetic operations

// Add returns d + other.
func (d Distance) Add(other Distance) Distance { return d + other }

// Sub returns d - other.
func (d Distance) Sub(other Distance) Distance { return d - other }

// Clamp returns d limited to [lo, hi].
func (d Distance) Clamp(lo, hi Distance) Distance {
	return min(max(d, lo), hi)
}

// NonNegative returns d, or zero when d is negative.
func (d Distance) NonNegative() Distance { return max(d, 0) }

// Comparison methods

// IsZero returns true if the distance is zero.
func (d Distance) IsZero() bool { return d == 0 }

// IsPositive returns true if the distance is greater than zero.
func (d Distance) IsPositive() bool { return d > 0 }

// IsNegative returns true if the distance is less than zero.
func (d Distance) IsNegative() bool { return d < 0 }

// Conversion and formatting

// Km returns the distance in kilometers.
func (d Distance) Km() float64 { return float64(d) / float64(Kilometer) }

// Meters returns the distance in whole meters.
func (d Distance) Meters() int64 { return int64(d) }

// String returns the distance in kilometers with meter precision, e.g. "4.250 km".
func (d Distance) String() string {
	sign := ""
	v := int64(d)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%03d km", sign, v/int64(Kilometer), v%int64(Kilometer))
}

// MarshalJSON implements json.Marshaler. Distances travel as kilometers.
func (d Distance) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Km())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Distance) UnmarshalJSON(data []byte) error {
	var km float64
	if err := json.Unmarshal(data, &km); err != nil {
		return fmt.Errorf("distance: %w", err)
	}
	v, err := ParseKm(km)
	if err != nil {
		return fmt.Errorf("distance: %w", err)
	}
	*d = v
	return nil
}

// Sum adds up distances.
func Sum(values ...Distance) Distance {
	var total Distance
	for _, v := range values {
		total += v
	}
	return total
}

// Percent returns part/whole*100, or zero when whole is not positive.
func Percent(part, whole Distance) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
