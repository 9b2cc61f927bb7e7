package plates

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ironforge/fitness-api/internal/domain"
)

func lbBar() domain.Barbell {
	return domain.Barbell{Label: "Olympic Bar", Weight: 45, Unit: domain.UnitLb, IsActive: true}
}

func lbPlates(counts map[float64]int) []domain.PlateType {
	order := []float64{45, 35, 25, 10, 5, 2.5}
	var out []domain.PlateType
	for _, w := range order {
		if c, ok := counts[w]; ok {
			out = append(out, domain.PlateType{Weight: w, Unit: domain.UnitLb, AvailableCount: c})
		}
	}
	return out
}

func standardLb() []domain.PlateType {
	return lbPlates(map[float64]int{45: 4, 25: 4, 10: 4, 5: 4, 2.5: 4})
}

func TestResolveScenarios(t *testing.T) {
	tests := []struct {
		name      string
		target    float64
		inventory []domain.PlateType
		perSide   float64
		plates    []PlateLoad
		achieved  float64
		delta     float64
		exact     bool
	}{
		{
			name:      "exact with standard set",
			target:    185,
			inventory: standardLb(),
			perSide:   70,
			plates: []PlateLoad{
				{PlateWeight: 45, CountPerSide: 1, SubtotalPerSide: 45},
				{PlateWeight: 25, CountPerSide: 1, SubtotalPerSide: 25},
			},
			achieved: 185,
			delta:    0,
			exact:    true,
		},
		{
			name:      "unreachable falls short",
			target:    140,
			inventory: lbPlates(map[float64]int{45: 4, 10: 4}),
			perSide:   47.5,
			plates:    []PlateLoad{{PlateWeight: 45, CountPerSide: 1, SubtotalPerSide: 45}},
			achieved:  135,
			delta:     -5,
			exact:     false,
		},
		{
			name:      "bar only",
			target:    45,
			inventory: standardLb(),
			perSide:   0,
			plates:    []PlateLoad{},
			achieved:  45,
			delta:     0,
			exact:     true,
		},
		{
			name:      "target below bar",
			target:    0,
			inventory: standardLb(),
			perSide:   0,
			plates:    []PlateLoad{},
			achieved:  45,
			delta:     45,
			exact:     false,
		},
		{
			name:      "odd count is unusable",
			target:    95,
			inventory: lbPlates(map[float64]int{25: 1}),
			perSide:   25,
			plates:    []PlateLoad{},
			achieved:  45,
			delta:     -50,
			exact:     false,
		},
		{
			name:      "zero inventory",
			target:    135,
			inventory: nil,
			perSide:   45,
			plates:    []PlateLoad{},
			achieved:  45,
			delta:     -90,
			exact:     false,
		},
		{
			name:      "inventory caps per side",
			target:    405,
			inventory: lbPlates(map[float64]int{45: 4, 25: 2}),
			perSide:   180,
			plates: []PlateLoad{
				{PlateWeight: 45, CountPerSide: 2, SubtotalPerSide: 90},
				{PlateWeight: 25, CountPerSide: 1, SubtotalPerSide: 25},
			},
			achieved: 275,
			delta:    -130,
			exact:    false,
		},
		{
			name:      "fractional plates",
			target:    150,
			inventory: standardLb(),
			perSide:   52.5,
			plates: []PlateLoad{
				{PlateWeight: 45, CountPerSide: 1, SubtotalPerSide: 45},
				{PlateWeight: 5, CountPerSide: 1, SubtotalPerSide: 5},
				{PlateWeight: 2.5, CountPerSide: 1, SubtotalPerSide: 2.5},
			},
			achieved: 150,
			delta:    0,
			exact:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Resolve(tt.target, domain.UnitLb, lbBar(), tt.inventory)
			assert.Equal(t, 45.0, plan.BarbellWeight)
			assert.Equal(t, tt.target, plan.TargetWeight)
			assert.Equal(t, tt.perSide, plan.PerSideWeight)
			assert.Equal(t, tt.plates, plan.PlatesPerSide)
			assert.Equal(t, tt.achieved, plan.AchievedTotalWeight)
			assert.Equal(t, tt.delta, plan.DeltaFromTarget)
			assert.Equal(t, tt.exact, plan.IsExact)
		})
	}
}

func TestResolveKeepsGreedyChoice(t *testing.T) {
	// Two 25s per side would hit 145 exactly; largest-first takes the 45 and stops short.
	inv := lbPlates(map[float64]int{45: 2, 25: 4})
	plan := Resolve(145, domain.UnitLb, lbBar(), inv)

	require.Len(t, plan.PlatesPerSide, 1)
	assert.Equal(t, 45.0, plan.PlatesPerSide[0].PlateWeight)
	assert.Equal(t, 135.0, plan.AchievedTotalWeight)
	assert.Equal(t, -10.0, plan.DeltaFromTarget)
	assert.False(t, plan.IsExact)
}

func TestResolveTiesKeepDeclarationOrder(t *testing.T) {
	inv := []domain.PlateType{
		{Weight: 10, Unit: domain.UnitLb, AvailableCount: 4, ColorTag: "white"},
		{Weight: 25, Unit: domain.UnitLb, AvailableCount: 2, ColorTag: "green"},
		{Weight: 25, Unit: domain.UnitLb, AvailableCount: 4, ColorTag: "red"},
	}
	plan := Resolve(195, domain.UnitLb, lbBar(), inv)

	require.Len(t, plan.PlatesPerSide, 2)
	assert.Equal(t, PlateLoad{PlateWeight: 25, ColorTag: "green", CountPerSide: 1, SubtotalPerSide: 25}, plan.PlatesPerSide[0])
	assert.Equal(t, PlateLoad{PlateWeight: 25, ColorTag: "red", CountPerSide: 2, SubtotalPerSide: 50}, plan.PlatesPerSide[1])
	assert.True(t, plan.IsExact)
}

func TestResolveIgnoresOtherUnitsAndBadEntries(t *testing.T) {
	inv := []domain.PlateType{
		{Weight: 20, Unit: domain.UnitKg, AvailableCount: 10},
		{Weight: 45, Unit: domain.UnitLb, AvailableCount: -4},
		{Weight: 0, Unit: domain.UnitLb, AvailableCount: 10},
		{Weight: -5, Unit: domain.UnitLb, AvailableCount: 10},
		{Weight: 25, Unit: domain.UnitLb, AvailableCount: 2},
	}
	plan := Resolve(135, domain.UnitLb, lbBar(), inv)

	require.Len(t, plan.PlatesPerSide, 1)
	assert.Equal(t, 25.0, plan.PlatesPerSide[0].PlateWeight)
	assert.Equal(t, 95.0, plan.AchievedTotalWeight)
}

func TestResolveNeverRoundsUpIntoAPlate(t *testing.T) {
	// Just under 10 lb above the bar: a 5 per side would overshoot.
	plan := Resolve(54.999999995, domain.UnitLb, lbBar(), lbPlates(map[float64]int{5: 2}))

	assert.Empty(t, plan.PlatesPerSide)
	assert.Equal(t, 45.0, plan.AchievedTotalWeight)
	assert.LessOrEqual(t, plan.AchievedTotalWeight, plan.TargetWeight)
	assert.False(t, plan.IsExact)
}

func TestResolveConvertsBarbell(t *testing.T) {
	kgBar := domain.Barbell{Label: "Olympic Bar (kg)", Weight: 20, Unit: domain.UnitKg}
	plan := Resolve(135, domain.UnitLb, kgBar, standardLb())

	assert.Equal(t, 44.09, plan.BarbellWeight)
	assert.InDelta(t, 45.455, plan.PerSideWeight, 1e-9)
	// 45 per side leaves 0.455 which no plate covers.
	assert.Equal(t, 134.09, plan.AchievedTotalWeight)
	assert.Equal(t, -0.91, plan.DeltaFromTarget)
	assert.False(t, plan.IsExact)
}

func TestResolveDoesNotMutateInputs(t *testing.T) {
	inv := []domain.PlateType{
		{Weight: 5, Unit: domain.UnitLb, AvailableCount: 4},
		{Weight: 45, Unit: domain.UnitLb, AvailableCount: 4},
		{Weight: 25, Unit: domain.UnitLb, AvailableCount: 3},
	}
	snapshot := append([]domain.PlateType(nil), inv...)
	bar := lbBar()

	Resolve(225, domain.UnitLb, bar, inv)

	assert.Equal(t, snapshot, inv)
	assert.Equal(t, lbBar(), bar)
}

func TestResolveProperties(t *testing.T) {
	inv := standardLb()
	for target := 0.0; target <= 500; target += 2.5 {
		plan := Resolve(target, domain.UnitLb, lbBar(), inv)

		// no inventory overuse
		byWeight := map[float64]int{}
		for _, p := range inv {
			byWeight[p.Weight] = p.AvailableCount
		}
		var sum float64
		for _, pl := range plan.PlatesPerSide {
			assert.LessOrEqual(t, pl.CountPerSide, byWeight[pl.PlateWeight]/2)
			sum += float64(pl.CountPerSide) * pl.PlateWeight
		}

		// weight conservation
		assert.InDelta(t, plan.BarbellWeight+2*sum, plan.AchievedTotalWeight, 0.01)

		// descending order, bounded length
		assert.LessOrEqual(t, len(plan.PlatesPerSide), len(inv))
		for i := 1; i < len(plan.PlatesPerSide); i++ {
			assert.Greater(t, plan.PlatesPerSide[i-1].PlateWeight, plan.PlatesPerSide[i].PlateWeight)
		}

		// never over target once plates are involved
		if target >= plan.BarbellWeight {
			assert.LessOrEqual(t, plan.AchievedTotalWeight, target+0.01)
		}

		// idempotence
		assert.Equal(t, plan, Resolve(target, domain.UnitLb, lbBar(), inv))
	}
}

func TestResolveExactTargetsAreExact(t *testing.T) {
	// Every multiple of 5 from the bar up to the full standard set is reachable largest-first.
	inv := standardLb()
	for target := 45.0; target <= 45+2*(90+50+20+10+5); target += 5 {
		plan := Resolve(target, domain.UnitLb, lbBar(), inv)
		assert.True(t, plan.IsExact, "target %v", target)
		assert.InDelta(t, 0, plan.DeltaFromTarget, 0.01)
	}
}

func TestResolveUnitConsistency(t *testing.T) {
	kgBar := domain.Barbell{Label: "Olympic Bar (kg)", Weight: 20, Unit: domain.UnitKg}
	kgInv := []domain.PlateType{
		{Weight: 20, Unit: domain.UnitKg, AvailableCount: 2},
		{Weight: 10, Unit: domain.UnitKg, AvailableCount: 2},
		{Weight: 5, Unit: domain.UnitKg, AvailableCount: 2},
	}
	lbInv := make([]domain.PlateType, len(kgInv))
	for i, p := range kgInv {
		lbInv[i] = domain.PlateType{Weight: p.Weight / KgPerLb, Unit: domain.UnitLb, AvailableCount: p.AvailableCount}
	}

	// One denomination per side; chained plates accumulate per-step rounding
	// and can tip a borderline floor the other way.
	for _, target := range []float64{20, 30, 40, 60} {
		inKg := Resolve(target, domain.UnitKg, kgBar, kgInv)
		inLb := Resolve(target/KgPerLb, domain.UnitLb, kgBar, lbInv)

		require.Len(t, inLb.PlatesPerSide, len(inKg.PlatesPerSide), "target %v", target)
		assert.InDelta(t, inKg.AchievedTotalWeight, ConvertWeight(inLb.AchievedTotalWeight, domain.UnitLb, domain.UnitKg), 0.01, "target %v", target)
	}
}

func TestResolveConcurrentCallers(t *testing.T) {
	inv := standardLb()
	want := Resolve(275, domain.UnitLb, lbBar(), inv)

	var wg sync.WaitGroup
	results := make([]LoadPlan, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Resolve(275, domain.UnitLb, lbBar(), inv)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
