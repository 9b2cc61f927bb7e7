package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"ironforge/fitness-api/internal/domain"
	"ironforge/fitness-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type workoutRepository struct {
	mu       sync.RWMutex
	workouts map[primitive.ObjectID]domain.Workout
}

// NewWorkoutRepository returns an empty in-memory repository.WorkoutRepository.
func NewWorkoutRepository() repository.WorkoutRepository {
	return &workoutRepository{workouts: make(map[primitive.ObjectID]domain.Workout)}
}

func (r *workoutRepository) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if workout.UserID == primitive.NilObjectID || len(workout.Entries) == 0 {
		return primitive.NilObjectID, errors.New("workout requires userId and at least one entry")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	workout.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now
	if workout.PerformedAt.IsZero() {
		workout.PerformedAt = now
	}
	r.workouts[workout.ID] = cloneWorkout(*workout)
	return workout.ID, nil
}

func (r *workoutRepository) GetByID(_ context.Context, id, userID primitive.ObjectID) (*domain.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.workouts[id]
	if !ok || w.UserID != userID {
		return nil, repository.ErrNotFound
	}
	out := cloneWorkout(w)
	return &out, nil
}

func (r *workoutRepository) ListByUser(_ context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.Workout, error) {
	out := r.collect(func(w domain.Workout) bool {
		if w.UserID != userID {
			return false
		}
		if !from.IsZero() && w.PerformedAt.Before(from) {
			return false
		}
		if !to.IsZero() && w.PerformedAt.After(to) {
			return false
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].PerformedAt.After(out[j].PerformedAt) })
	return out, nil
}

func (r *workoutRepository) ListByExercise(_ context.Context, userID, exerciseID primitive.ObjectID) ([]domain.Workout, error) {
	out := r.collect(func(w domain.Workout) bool {
		if w.UserID != userID {
			return false
		}
		return slices.ContainsFunc(w.Entries, func(e domain.WorkoutEntry) bool { return e.ExerciseID == exerciseID })
	})
	sort.Slice(out, func(i, j int) bool { return out[i].PerformedAt.Before(out[j].PerformedAt) })
	return out, nil
}

func (r *workoutRepository) collect(keep func(domain.Workout) bool) []domain.Workout {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Workout{}
	for _, w := range r.workouts {
		if keep(w) {
			out = append(out, cloneWorkout(w))
		}
	}
	return out
}

func (r *workoutRepository) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workouts[id]
	if !ok || w.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.workouts, id)
	return nil
}

func cloneWorkout(w domain.Workout) domain.Workout {
	w.Entries = slices.Clone(w.Entries)
	for i := range w.Entries {
		w.Entries[i].Sets = slices.Clone(w.Entries[i].Sets)
	}
	return w
}
