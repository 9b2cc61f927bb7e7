package plates

import (
	"math"
	"sort"

	"ironforge/fitness-api/internal/domain"
)

// exactTolerance is the largest |delta| still reported as an exact load.
const exactTolerance = 0.01

// PlateLoad is one plate denomination loaded on each side of the bar.
type PlateLoad struct {
	PlateWeight     float64 `json:"plateWeight"`
	ColorTag        string  `json:"colorTag,omitempty"`
	CountPerSide    int     `json:"countPerSide"`
	SubtotalPerSide float64 `json:"subtotalPerSide"`
}

// LoadPlan is the derived loading instruction for a target weight. It is
// recomputed on every input change and never persisted.
type LoadPlan struct {
	Unit                domain.WeightUnit `json:"unit"`
	BarbellWeight       float64           `json:"barbellWeight"`
	TargetWeight        float64           `json:"targetWeight"`
	PerSideWeight       float64           `json:"perSideWeight"`
	PlatesPerSide       []PlateLoad       `json:"platesPerSide"`
	AchievedTotalWeight float64           `json:"achievedTotalWeight"`
	DeltaFromTarget     float64           `json:"deltaFromTarget"` // negative: under target, positive: over
	IsExact             bool              `json:"isExact"`
}

// Resolve computes which plates to load on each side of barbell to reach
// target, expressed in unit. Only inventory entries in unit are eligible.
//
// Plates are taken largest first, never more than floor(AvailableCount/2) per
// side. A target below the bar weight yields an empty plate list and the bar
// alone. Neither barbell nor inventory is modified.
func Resolve(target float64, unit domain.WeightUnit, barbell domain.Barbell, inventory []domain.PlateType) LoadPlan {
	barWeight := ConvertWeight(barbell.Weight, barbell.Unit, unit)
	perSide := math.Max(0, target-barWeight) / 2

	plan := LoadPlan{
		Unit:          unit,
		BarbellWeight: barWeight,
		TargetWeight:  target,
		PerSideWeight: perSide,
		PlatesPerSide: []PlateLoad{},
	}

	remaining := perSide
	var loadedPerSide float64
	for _, p := range eligible(unit, inventory) {
		if remaining <= 0 {
			break
		}
		byRemaining := int(math.Floor(remaining / p.Weight))
		byInventory := p.AvailableCount / 2
		used := min(byRemaining, byInventory)
		if used <= 0 {
			continue
		}
		subtotal := Round2(float64(used) * p.Weight)
		plan.PlatesPerSide = append(plan.PlatesPerSide, PlateLoad{
			PlateWeight:     p.Weight,
			ColorTag:        p.ColorTag,
			CountPerSide:    used,
			SubtotalPerSide: subtotal,
		})
		loadedPerSide += subtotal
		remaining = Round2(remaining - subtotal)
	}

	plan.AchievedTotalWeight = Round2(barWeight + 2*loadedPerSide)
	delta := plan.AchievedTotalWeight - target
	plan.DeltaFromTarget = Round2(delta)
	plan.IsExact = math.Abs(delta) < exactTolerance
	return plan
}

// eligible filters inventory to usable plates in unit and orders them by
// weight descending. Equal weights keep their input order.
func eligible(unit domain.WeightUnit, inventory []domain.PlateType) []domain.PlateType {
	out := make([]domain.PlateType, 0, len(inventory))
	for _, p := range inventory {
		if p.Unit != unit || p.Weight <= 0 || p.AvailableCount <= 0 {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Weight > out[j].Weight
	})
	return out
}
