package service

import (
	"context"
	"testing"

	"ironforge/fitness-api/internal/domain"
	"ironforge/fitness-api/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGetEquipmentSeedsOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := primitive.NewObjectID()

	first, err := f.equipment.GetEquipment(ctx, user)
	require.NoError(t, err)
	bar, ok := first.ActiveBarbell()
	require.True(t, ok)
	assert.Equal(t, "Olympic Bar", bar.Label)

	second, err := f.equipment.GetEquipment(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Barbells, second.Barbells)
}

func TestKgDefaultUnit(t *testing.T) {
	svc := NewEquipmentService(memory.NewEquipmentRepository(), domain.UnitKg)
	plan, err := svc.CalculateLoad(context.Background(), primitive.NewObjectID(), 100, "")
	require.NoError(t, err)

	assert.Equal(t, domain.UnitKg, plan.Unit)
	assert.Equal(t, 20.0, plan.BarbellWeight)
	assert.True(t, plan.IsExact)
	assert.Equal(t, "25/15 100kg", plan.Notation())
}

func TestCalculateLoadUsesStoredEquipment(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := primitive.NewObjectID()

	plan, err := f.equipment.CalculateLoad(ctx, user, 225, domain.UnitLb)
	require.NoError(t, err)
	assert.Equal(t, "45/45 225lb", plan.Notation())

	// take the 45s away; the next plan has to build from 35s
	eq, err := f.equipment.GetEquipment(ctx, user)
	require.NoError(t, err)
	forty5 := eq.PlatesFor(domain.UnitLb)[0]
	require.Equal(t, 45.0, forty5.Weight)
	_, err = f.equipment.AdjustPlateCount(ctx, user, forty5.ID, -10)
	require.NoError(t, err)

	plan, err = f.equipment.CalculateLoad(ctx, user, 225, domain.UnitLb)
	require.NoError(t, err)
	assert.Equal(t, "35/35/10/10 225lb", plan.Notation())

	plan, err = f.equipment.CalculateLoad(ctx, user, -50, domain.UnitLb)
	require.NoError(t, err)
	assert.Equal(t, 0.0, plan.TargetWeight)
	assert.Equal(t, 45.0, plan.AchievedTotalWeight)
}

func TestEquipmentEdits(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := primitive.NewObjectID()

	eq, err := f.equipment.AddBarbell(ctx, user, "Trap Bar", 60, domain.UnitLb)
	require.NoError(t, err)
	trap := eq.Barbells[len(eq.Barbells)-1]
	assert.False(t, trap.IsActive)

	eq, err = f.equipment.SetActiveBarbell(ctx, user, trap.ID)
	require.NoError(t, err)
	active, _ := eq.ActiveBarbell()
	assert.Equal(t, trap.ID, active.ID)

	plan, err := f.equipment.CalculateLoad(ctx, user, 150, domain.UnitLb)
	require.NoError(t, err)
	assert.Equal(t, 60.0, plan.BarbellWeight)

	eq, err = f.equipment.AddPlate(ctx, user, 100, domain.UnitLb, 2, "bumper")
	require.NoError(t, err)
	big := eq.Plates[len(eq.Plates)-1]

	_, err = f.equipment.RemovePlate(ctx, user, big.ID)
	require.NoError(t, err)
	_, err = f.equipment.RemovePlate(ctx, user, big.ID)
	assert.ErrorIs(t, err, domain.ErrPlateNotFound)

	_, err = f.equipment.AddBarbell(ctx, user, "Broken", 0, domain.UnitLb)
	assert.ErrorIs(t, err, domain.ErrInvalidWeight)
	_, err = f.equipment.SetActiveBarbell(ctx, user, primitive.NewObjectID())
	assert.ErrorIs(t, err, domain.ErrBarbellNotFound)
}

func TestCalculateLoadWithoutBarbell(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := primitive.NewObjectID()

	eq, err := f.equipment.GetEquipment(ctx, user)
	require.NoError(t, err)
	for _, b := range eq.Barbells {
		_, err = f.equipment.RemoveBarbell(ctx, user, b.ID)
		require.NoError(t, err)
	}

	_, err = f.equipment.CalculateLoad(ctx, user, 135, domain.UnitLb)
	assert.ErrorIs(t, err, ErrNoActiveBarbell)
}

func TestCalculateLoadWith(t *testing.T) {
	f := newFixture()
	bar := domain.Barbell{Label: "Olympic Bar", Weight: 45, Unit: domain.UnitLb}
	inv := []domain.PlateType{{Weight: 45, Unit: domain.UnitLb, AvailableCount: 2}}

	plan, err := f.equipment.CalculateLoadWith(135, domain.UnitLb, bar, inv)
	require.NoError(t, err)
	assert.True(t, plan.IsExact)

	_, err = f.equipment.CalculateLoadWith(135, "stone", bar, inv)
	assert.ErrorIs(t, err, domain.ErrInvalidUnit)
	_, err = f.equipment.CalculateLoadWith(135, domain.UnitLb, domain.Barbell{Unit: domain.UnitLb}, inv)
	assert.ErrorIs(t, err, domain.ErrInvalidWeight)
}
