package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"ironforge/fitness-api/internal/domain"
	"ironforge/fitness-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type goalRepository struct {
	mu    sync.RWMutex
	goals map[primitive.ObjectID]domain.Goal
}

// NewGoalRepository returns an empty in-memory repository.GoalRepository.
func NewGoalRepository() repository.GoalRepository {
	return &goalRepository{goals: make(map[primitive.ObjectID]domain.Goal)}
}

func (r *goalRepository) Create(_ context.Context, goal *domain.Goal) (primitive.ObjectID, error) {
	if goal.Title == "" || goal.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("goal title and user ID are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	goal.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	goal.CreatedAt = now
	goal.UpdatedAt = now
	if goal.Status == "" {
		goal.Status = domain.GoalActive
	}
	r.goals[goal.ID] = *goal
	return goal.ID, nil
}

func (r *goalRepository) GetByID(_ context.Context, id, userID primitive.ObjectID) (*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.goals[id]
	if !ok || g.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &g, nil
}

func (r *goalRepository) List(_ context.Context, userID primitive.ObjectID, filter repository.GoalFilter) ([]domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	goals := []domain.Goal{}
	for _, g := range r.goals {
		if g.UserID != userID {
			continue
		}
		if filter.Status != "" && g.Status != filter.Status {
			continue
		}
		if filter.Category != "" && g.Category != filter.Category {
			continue
		}
		goals = append(goals, g)
	}
	sort.Slice(goals, func(i, j int) bool {
		if goals[i].Position != goals[j].Position {
			return goals[i].Position < goals[j].Position
		}
		return goals[i].CreatedAt.Before(goals[j].CreatedAt)
	})
	return goals, nil
}

func (r *goalRepository) Update(_ context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.goals[goal.ID]
	if !ok || existing.UserID != goal.UserID {
		return repository.ErrNotFound
	}
	goal.UpdatedAt = time.Now().UTC()
	updated := *goal
	updated.Position = existing.Position
	updated.CreatedAt = existing.CreatedAt
	r.goals[goal.ID] = updated
	return nil
}

func (r *goalRepository) UpdatePosition(_ context.Context, id, userID primitive.ObjectID, position int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.goals[id]
	if !ok || g.UserID != userID {
		return repository.ErrNotFound
	}
	g.Position = position
	g.UpdatedAt = time.Now().UTC()
	r.goals[id] = g
	return nil
}

func (r *goalRepository) NextPosition(_ context.Context, userID primitive.ObjectID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	next := 0
	for _, g := range r.goals {
		if g.UserID == userID && g.Position >= next {
			next = g.Position + 1
		}
	}
	return next, nil
}

func (r *goalRepository) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.goals[id]
	if !ok || g.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.goals, id)
	return nil
}
