package service

import (
	"context"
	"testing"

	"ironforge/fitness-api/internal/domain"
	"ironforge/fitness-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func benchGoal(title string) GoalInput {
	return GoalInput{Title: title, Category: domain.GoalStrength, StartValue: 80, TargetValue: 100, Unit: "kg"}
}

func TestCreateGoalDefaults(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := primitive.NewObjectID()

	first, err := f.goals.CreateGoal(ctx, user, benchGoal("Bench 100"))
	require.NoError(t, err)
	second, err := f.goals.CreateGoal(ctx, user, GoalInput{Title: "Meditate", Category: domain.GoalHabit})
	require.NoError(t, err)

	assert.Equal(t, domain.GoalActive, first.Status)
	assert.Equal(t, 80.0, first.CurrentValue)
	assert.Equal(t, 0, first.Position)
	assert.Equal(t, 1, second.Position)
	assert.Equal(t, domain.GoalActive, second.Status)
	assert.Nil(t, second.CompletedAt)
	assert.Equal(t, 0.0, second.ProgressPercent())

	noCategory, err := f.goals.CreateGoal(ctx, user, GoalInput{Title: "Something", StartValue: 0, TargetValue: 10})
	require.NoError(t, err)
	assert.Equal(t, domain.GoalCustom, noCategory.Category)
}

func TestCreateGoalValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := primitive.NewObjectID()
	foreign := f.exercise(t, primitive.NewObjectID(), "Squat")

	tests := []struct {
		name string
		in   GoalInput
	}{
		{"missing title", GoalInput{Category: domain.GoalStrength, TargetValue: 10}},
		{"bad category", GoalInput{Title: "x", Category: "vibes", TargetValue: 10}},
		{"target equals start", GoalInput{Title: "x", Category: domain.GoalStrength, StartValue: 5, TargetValue: 5}},
		{"foreign exercise", GoalInput{Title: "x", Category: domain.GoalStrength, TargetValue: 10, ExerciseID: &foreign.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.goals.CreateGoal(ctx, user, tt.in)
			assert.ErrorIs(t, err, ErrGoalValidation)
		})
	}
}

func TestUpdateProgressTransitions(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := primitive.NewObjectID()
	goal, err := f.goals.CreateGoal(ctx, user, benchGoal("Bench 100"))
	require.NoError(t, err)

	g, err := f.goals.UpdateProgress(ctx, user, goal.ID, 90)
	require.NoError(t, err)
	assert.Equal(t, domain.GoalActive, g.Status)
	assert.Equal(t, 50.0, g.ProgressPercent())

	g, err = f.goals.UpdateProgress(ctx, user, goal.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, domain.GoalCompleted, g.Status)
	assert.NotNil(t, g.CompletedAt)

	g, err = f.goals.UpdateProgress(ctx, user, goal.ID, 97.5)
	require.NoError(t, err)
	assert.Equal(t, domain.GoalActive, g.Status)
	assert.Nil(t, g.CompletedAt)

	stored, err := f.goals.GetGoal(ctx, user, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 97.5, stored.CurrentValue)
}

func TestDecreasingGoalCompletes(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := primitive.NewObjectID()
	goal, err := f.goals.CreateGoal(ctx, user, GoalInput{Title: "Cut", Category: domain.GoalBodyweight, StartValue: 90, TargetValue: 80})
	require.NoError(t, err)

	g, err := f.goals.UpdateProgress(ctx, user, goal.ID, 79.5)
	require.NoError(t, err)
	assert.Equal(t, domain.GoalCompleted, g.Status)
}

func TestArchiveAndUnarchive(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := primitive.NewObjectID()
	goal, err := f.goals.CreateGoal(ctx, user, benchGoal("Bench 100"))
	require.NoError(t, err)
	_, err = f.goals.UpdateProgress(ctx, user, goal.ID, 100)
	require.NoError(t, err)

	g, err := f.goals.ArchiveGoal(ctx, user, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GoalArchived, g.Status)
	assert.NotNil(t, g.ArchivedAt)

	_, err = f.goals.UpdateProgress(ctx, user, goal.ID, 50)
	assert.ErrorIs(t, err, ErrGoalArchived)

	archived, err := f.goals.ListGoals(ctx, user, repository.GoalFilter{Status: domain.GoalArchived})
	require.NoError(t, err)
	assert.Len(t, archived, 1)

	g, err = f.goals.UnarchiveGoal(ctx, user, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GoalCompleted, g.Status)
	assert.Nil(t, g.ArchivedAt)
}

func TestReorderGoals(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := primitive.NewObjectID()

	var ids []primitive.ObjectID
	for _, title := range []string{"A", "B", "C"} {
		g, err := f.goals.CreateGoal(ctx, user, benchGoal(title))
		require.NoError(t, err)
		ids = append(ids, g.ID)
	}

	require.NoError(t, f.goals.ReorderGoals(ctx, user, []primitive.ObjectID{ids[2], ids[0], ids[1]}))

	goals, err := f.goals.ListGoals(ctx, user, repository.GoalFilter{})
	require.NoError(t, err)
	require.Len(t, goals, 3)
	assert.Equal(t, []string{"C", "A", "B"}, []string{goals[0].Title, goals[1].Title, goals[2].Title})

	err = f.goals.ReorderGoals(ctx, user, []primitive.ObjectID{ids[0], ids[0]})
	assert.ErrorIs(t, err, ErrInvalidReorder)

	other, err := f.goals.CreateGoal(ctx, primitive.NewObjectID(), benchGoal("Theirs"))
	require.NoError(t, err)
	err = f.goals.ReorderGoals(ctx, user, []primitive.ObjectID{other.ID})
	assert.ErrorIs(t, err, ErrInvalidReorder)
}

func TestHabitGoalCompletesOnlyThroughProgress(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := primitive.NewObjectID()

	habit, err := f.goals.CreateGoal(ctx, user, GoalInput{Title: "Stretch daily", Category: domain.GoalHabit})
	require.NoError(t, err)
	require.Equal(t, domain.GoalActive, habit.Status)

	edited, err := f.goals.UpdateGoal(ctx, user, habit.ID, GoalInput{Title: "Stretch every day"})
	require.NoError(t, err)
	assert.Equal(t, domain.GoalActive, edited.Status)

	done, err := f.goals.UpdateProgress(ctx, user, habit.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.GoalCompleted, done.Status)
	assert.NotNil(t, done.CompletedAt)
	assert.Equal(t, 100.0, done.ProgressPercent())
}

func TestReorderGoalsSubsetKeepsPositionsUnique(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := primitive.NewObjectID()

	var ids []primitive.ObjectID
	for _, title := range []string{"A", "B", "C", "D"} {
		g, err := f.goals.CreateGoal(ctx, user, benchGoal(title))
		require.NoError(t, err)
		ids = append(ids, g.ID)
	}

	require.NoError(t, f.goals.ReorderGoals(ctx, user, []primitive.ObjectID{ids[2]}))

	goals, err := f.goals.ListGoals(ctx, user, repository.GoalFilter{})
	require.NoError(t, err)
	require.Len(t, goals, 4)
	var titles []string
	for i, g := range goals {
		titles = append(titles, g.Title)
		assert.Equal(t, i, g.Position, g.Title)
	}
	assert.Equal(t, []string{"C", "A", "B", "D"}, titles)
}

func TestGoalsAreOwnerScoped(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner, stranger := primitive.NewObjectID(), primitive.NewObjectID()
	goal, err := f.goals.CreateGoal(ctx, owner, benchGoal("Bench 100"))
	require.NoError(t, err)

	_, err = f.goals.GetGoal(ctx, stranger, goal.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)
	_, err = f.goals.UpdateGoal(ctx, stranger, goal.ID, benchGoal("Mine now"))
	assert.ErrorIs(t, err, ErrGoalNotFound)
	assert.ErrorIs(t, f.goals.DeleteGoal(ctx, stranger, goal.ID), ErrGoalNotFound)

	require.NoError(t, f.goals.DeleteGoal(ctx, owner, goal.ID))
	_, err = f.goals.GetGoal(ctx, owner, goal.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestUpdateGoalKeepsProgress(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := primitive.NewObjectID()
	goal, err := f.goals.CreateGoal(ctx, user, benchGoal("Bench 100"))
	require.NoError(t, err)
	_, err = f.goals.UpdateProgress(ctx, user, goal.ID, 95)
	require.NoError(t, err)

	in := benchGoal("Bench 95")
	in.TargetValue = 95
	g, err := f.goals.UpdateGoal(ctx, user, goal.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Bench 95", g.Title)
	assert.Equal(t, 95.0, g.CurrentValue)
	assert.Equal(t, domain.GoalCompleted, g.Status)
}
