package plates

import (
	"math"

	"ironforge/fitness-api/internal/domain"
)

// KgPerLb is the fixed conversion factor between pounds and kilograms.
const KgPerLb = 0.453592

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ConvertWeight converts v from one unit to another, rounded to two decimal
// places. An empty or identical unit returns v unchanged.
func ConvertWeight(v float64, from, to domain.WeightUnit) float64 {
	if from == to || from == "" || to == "" {
		return v
	}
	switch {
	case from == domain.UnitLb && to == domain.UnitKg:
		return Round2(v * KgPerLb)
	case from == domain.UnitKg && to == domain.UnitLb:
		return Round2(v / KgPerLb)
	}
	return v
}

// Increment is the conventional stepper granularity for u: 5 lb or 2.5 kg.
// The resolver does not enforce it.
func Increment(u domain.WeightUnit) float64 {
	if u == domain.UnitKg {
		return 2.5
	}
	return 5
}
