package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"ironforge/fitness-api/internal/domain"
	"ironforge/fitness-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type exerciseRepository struct {
	mu        sync.RWMutex
	exercises map[primitive.ObjectID]domain.Exercise
}

// NewExerciseRepository returns an empty in-memory repository.ExerciseRepository.
func NewExerciseRepository() repository.ExerciseRepository {
	return &exerciseRepository{exercises: make(map[primitive.ObjectID]domain.Exercise)}
}

func (r *exerciseRepository) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if exercise.Name == "" || exercise.OwnerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("exercise name and owner ID are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now
	r.exercises[exercise.ID] = *exercise
	return exercise.ID, nil
}

func (r *exerciseRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ex, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &ex, nil
}

func (r *exerciseRepository) List(_ context.Context, ownerID primitive.ObjectID, filter repository.ExerciseFilter) ([]domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	exercises := []domain.Exercise{}
	for _, ex := range r.exercises {
		switch {
		case ex.OwnerID != ownerID:
		case ex.IsArchived && !filter.IncludeArchived:
		case filter.MuscleGroup != "" && ex.MuscleGroup != filter.MuscleGroup:
		case filter.Equipment != "" && ex.Equipment != filter.Equipment:
		case search != "" && !strings.Contains(strings.ToLower(ex.Name), search):
		default:
			exercises = append(exercises, ex)
		}
	}
	sort.Slice(exercises, func(i, j int) bool {
		if exercises[i].Position != exercises[j].Position {
			return exercises[i].Position < exercises[j].Position
		}
		return exercises[i].Name < exercises[j].Name
	})
	return exercises, nil
}

func (r *exerciseRepository) Update(_ context.Context, exercise *domain.Exercise) error {
	if exercise.Name == "" {
		return errors.New("exercise name cannot be empty")
	}
	return r.modify(exercise.ID, exercise.OwnerID, func(ex *domain.Exercise) {
		ex.Name = exercise.Name
		ex.Description = exercise.Description
		ex.MuscleGroup = exercise.MuscleGroup
		ex.Equipment = exercise.Equipment
		ex.Category = exercise.Category
		ex.ExecutionTechnic = exercise.ExecutionTechnic
		ex.Difficulty = exercise.Difficulty
		ex.VideoURL = exercise.VideoURL
	})
}

func (r *exerciseRepository) SetArchived(_ context.Context, id, ownerID primitive.ObjectID, archived bool) error {
	return r.modify(id, ownerID, func(ex *domain.Exercise) { ex.IsArchived = archived })
}

func (r *exerciseRepository) SetMediaKey(_ context.Context, id, ownerID primitive.ObjectID, key string) error {
	return r.modify(id, ownerID, func(ex *domain.Exercise) { ex.MediaKey = key })
}

func (r *exerciseRepository) UpdatePosition(_ context.Context, id, ownerID primitive.ObjectID, position int) error {
	return r.modify(id, ownerID, func(ex *domain.Exercise) { ex.Position = position })
}

func (r *exerciseRepository) modify(id, ownerID primitive.ObjectID, fn func(*domain.Exercise)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ex, ok := r.exercises[id]
	if !ok || ex.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	fn(&ex)
	ex.UpdatedAt = time.Now().UTC()
	r.exercises[id] = ex
	return nil
}

func (r *exerciseRepository) NextPosition(_ context.Context, ownerID primitive.ObjectID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	next := 0
	for _, ex := range r.exercises {
		if ex.OwnerID == ownerID && ex.Position >= next {
			next = ex.Position + 1
		}
	}
	return next, nil
}

func (r *exerciseRepository) Delete(_ context.Context, id, ownerID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ex, ok := r.exercises[id]
	if !ok || ex.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}
