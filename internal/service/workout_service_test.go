package service

import (
	"context"
	"testing"
	"time"

	"ironforge/fitness-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sets(unit domain.WeightUnit, pairs ...float64) []domain.SetLog {
	var out []domain.SetLog
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.SetLog{Weight: pairs[i], Reps: int(pairs[i+1]), Unit: unit})
	}
	return out
}

func TestLogWorkoutDefaults(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := primitive.NewObjectID()
	squat := f.exercise(t, user, "Squat")

	w, err := f.workouts.LogWorkout(ctx, user, WorkoutInput{
		Entries: []domain.WorkoutEntry{{ExerciseID: squat.ID, Sets: sets(domain.UnitLb, 225, 5)}},
	})
	require.NoError(t, err)
	assert.False(t, w.PerformedAt.IsZero())
	assert.Contains(t, w.Name, "Workout ")

	got, err := f.workouts.GetWorkout(ctx, user, w.ID)
	require.NoError(t, err)
	assert.Equal(t, w.Entries, got.Entries)

	_, err = f.workouts.GetWorkout(ctx, primitive.NewObjectID(), w.ID)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestLogWorkoutValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := primitive.NewObjectID()
	squat := f.exercise(t, user, "Squat")
	theirs := f.exercise(t, primitive.NewObjectID(), "Squat")
	missingProgram := primitive.NewObjectID()

	entry := func(s ...domain.SetLog) []domain.WorkoutEntry {
		return []domain.WorkoutEntry{{ExerciseID: squat.ID, Sets: s}}
	}
	tests := []struct {
		name string
		in   WorkoutInput
	}{
		{"no entries", WorkoutInput{}},
		{"no sets", WorkoutInput{Entries: entry()}},
		{"zero reps", WorkoutInput{Entries: entry(domain.SetLog{Weight: 100, Unit: domain.UnitLb})}},
		{"negative weight", WorkoutInput{Entries: entry(domain.SetLog{Reps: 5, Weight: -1, Unit: domain.UnitLb})}},
		{"bad unit", WorkoutInput{Entries: entry(domain.SetLog{Reps: 5, Weight: 100, Unit: "stone"})}},
		{"negative duration", WorkoutInput{DurationMinutes: -1, Entries: entry(domain.SetLog{Reps: 5, Unit: domain.UnitLb})}},
		{"foreign exercise", WorkoutInput{Entries: []domain.WorkoutEntry{{ExerciseID: theirs.ID, Sets: sets(domain.UnitLb, 100, 5)}}}},
		{"missing program", WorkoutInput{ProgramID: &missingProgram, Entries: entry(domain.SetLog{Reps: 5, Unit: domain.UnitLb})}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.workouts.LogWorkout(ctx, user, tt.in)
			assert.ErrorIs(t, err, ErrWorkoutValidation)
		})
	}
}

func TestListWorkoutsRange(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := primitive.NewObjectID()
	squat := f.exercise(t, user, "Squat")
	base := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

	for day := 0; day < 3; day++ {
		_, err := f.workouts.LogWorkout(ctx, user, WorkoutInput{
			PerformedAt: base.AddDate(0, 0, day),
			Entries:     []domain.WorkoutEntry{{ExerciseID: squat.ID, Sets: sets(domain.UnitLb, 200, 5)}},
		})
		require.NoError(t, err)
	}

	all, err := f.workouts.ListWorkouts(ctx, user, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].PerformedAt.After(all[1].PerformedAt))

	firstTwo, err := f.workouts.ListWorkouts(ctx, user, base, base.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, firstTwo, 2)

	_, err = f.workouts.ListWorkouts(ctx, user, base.AddDate(0, 0, 1), base)
	assert.ErrorIs(t, err, ErrWorkoutValidation)
}

func TestExerciseProgress(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := primitive.NewObjectID()
	squat := f.exercise(t, user, "Squat")
	bench := f.exercise(t, user, "Bench")
	base := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

	_, err := f.workouts.LogWorkout(ctx, user, WorkoutInput{
		PerformedAt: base,
		Entries: []domain.WorkoutEntry{{ExerciseID: squat.ID, Sets: []domain.SetLog{
			{Weight: 135, Reps: 5, Unit: domain.UnitLb, IsWarmup: true},
			{Weight: 225, Reps: 5, Unit: domain.UnitLb},
			{Weight: 225, Reps: 3, Unit: domain.UnitLb},
		}}},
	})
	require.NoError(t, err)
	_, err = f.workouts.LogWorkout(ctx, user, WorkoutInput{
		PerformedAt: base.AddDate(0, 0, 2),
		Entries: []domain.WorkoutEntry{
			{ExerciseID: bench.ID, Sets: sets(domain.UnitLb, 185, 5)},
			{ExerciseID: squat.ID, Sets: sets(domain.UnitKg, 110, 1)},
		},
	})
	require.NoError(t, err)
	// warmups only: no point
	_, err = f.workouts.LogWorkout(ctx, user, WorkoutInput{
		PerformedAt: base.AddDate(0, 0, 4),
		Entries:     []domain.WorkoutEntry{{ExerciseID: squat.ID, Sets: []domain.SetLog{{Weight: 95, Reps: 10, Unit: domain.UnitLb, IsWarmup: true}}}},
	})
	require.NoError(t, err)

	points, err := f.workouts.ExerciseProgress(ctx, user, squat.ID, domain.UnitLb)
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, 225.0, points[0].TopSetWeight)
	assert.Equal(t, 5, points[0].TopSetReps)
	assert.Equal(t, 262.5, points[0].EstimatedOneRepMax)
	assert.Equal(t, 1800.0, points[0].Volume)

	assert.Equal(t, 242.51, points[1].TopSetWeight)
	assert.Equal(t, 242.51, points[1].EstimatedOneRepMax)

	_, err = f.workouts.ExerciseProgress(ctx, user, squat.ID, "stone")
	assert.ErrorIs(t, err, domain.ErrInvalidUnit)
	_, err = f.workouts.ExerciseProgress(ctx, primitive.NewObjectID(), squat.ID, domain.UnitLb)
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestDeleteWorkout(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := primitive.NewObjectID()
	squat := f.exercise(t, user, "Squat")
	w, err := f.workouts.LogWorkout(ctx, user, WorkoutInput{
		Entries: []domain.WorkoutEntry{{ExerciseID: squat.ID, Sets: sets(domain.UnitLb, 100, 5)}},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, f.workouts.DeleteWorkout(ctx, primitive.NewObjectID(), w.ID), ErrWorkoutNotFound)
	require.NoError(t, f.workouts.DeleteWorkout(ctx, user, w.ID))
	_, err = f.workouts.GetWorkout(ctx, user, w.ID)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}
