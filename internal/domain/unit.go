package domain

// WeightUnit is the unit a weight value is expressed in.
type WeightUnit string

const (
	UnitLb WeightUnit = "lb"
	UnitKg WeightUnit = "kg"
)

// Valid reports whether u is one of the supported units.
func (u WeightUnit) Valid() bool {
	return u == UnitLb || u == UnitKg
}
