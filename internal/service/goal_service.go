package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ironforge/fitness-api/internal/domain"
	"ironforge/fitness-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrGoalNotFound   = errors.New("goal not found")
	ErrGoalValidation = errors.New("goal validation failed")
	ErrGoalArchived   = errors.New("goal is archived")
)

// GoalInput carries the user-editable fields of a goal.
type GoalInput struct {
	Title        string
	Description  string
	Category     domain.GoalCategory
	ExerciseID   *primitive.ObjectID
	StartValue   float64
	CurrentValue *float64 // nil on create means StartValue
	TargetValue  float64
	Unit         string
	Deadline     *time.Time
}

type GoalService interface {
	CreateGoal(ctx context.Context, userID primitive.ObjectID, in GoalInput) (*domain.Goal, error)
	GetGoal(ctx context.Context, userID, goalID primitive.ObjectID) (*domain.Goal, error)
	ListGoals(ctx context.Context, userID primitive.ObjectID, filter repository.GoalFilter) ([]domain.Goal, error)
	UpdateGoal(ctx context.Context, userID, goalID primitive.ObjectID, in GoalInput) (*domain.Goal, error)
	UpdateProgress(ctx context.Context, userID, goalID primitive.ObjectID, value float64) (*domain.Goal, error)
	ReorderGoals(ctx context.Context, userID primitive.ObjectID, goalIDs []primitive.ObjectID) error
	ArchiveGoal(ctx context.Context, userID, goalID primitive.ObjectID) (*domain.Goal, error)
	UnarchiveGoal(ctx context.Context, userID, goalID primitive.ObjectID) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, userID, goalID primitive.ObjectID) error
}

type goalService struct {
	goalRepo     repository.GoalRepository
	exerciseRepo repository.ExerciseRepository
	now          func() time.Time
}

func NewGoalService(goalRepo repository.GoalRepository, exerciseRepo repository.ExerciseRepository) GoalService {
	return &goalService{
		goalRepo:     goalRepo,
		exerciseRepo: exerciseRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *goalService) CreateGoal(ctx context.Context, userID primitive.ObjectID, in GoalInput) (*domain.Goal, error) {
	if in.Category == "" {
		in.Category = domain.GoalCustom
	}
	if err := s.validate(ctx, userID, in); err != nil {
		return nil, err
	}

	position, err := s.goalRepo.NextPosition(ctx, userID)
	if err != nil {
		return nil, err
	}

	goal := &domain.Goal{UserID: userID, Status: domain.GoalActive, Position: position}
	applyGoalInput(goal, in)
	if in.CurrentValue == nil {
		goal.CurrentValue = in.StartValue
	}
	s.settleStatus(goal)

	if _, err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *goalService) GetGoal(ctx context.Context, userID, goalID primitive.ObjectID) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, goalID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

func (s *goalService) ListGoals(ctx context.Context, userID primitive.ObjectID, filter repository.GoalFilter) ([]domain.Goal, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrGoalValidation, filter.Category)
	}
	return s.goalRepo.List(ctx, userID, filter)
}

// UpdateGoal replaces the editable fields. Status follows the new values unless
// the goal is archived.
func (s *goalService) UpdateGoal(ctx context.Context, userID, goalID primitive.ObjectID, in GoalInput) (*domain.Goal, error) {
	goal, err := s.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if in.Category == "" {
		in.Category = goal.Category
	}
	if err := s.validate(ctx, userID, in); err != nil {
		return nil, err
	}

	current := goal.CurrentValue
	applyGoalInput(goal, in)
	if in.CurrentValue == nil {
		goal.CurrentValue = current
	}
	s.settleStatus(goal)

	return goal, s.save(ctx, goal)
}

// UpdateProgress records a new current value. Reaching the target completes the
// goal; dropping back below it on a completed goal reopens it.
func (s *goalService) UpdateProgress(ctx context.Context, userID, goalID primitive.ObjectID, value float64) (*domain.Goal, error) {
	goal, err := s.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if goal.Status == domain.GoalArchived {
		return nil, ErrGoalArchived
	}

	goal.CurrentValue = value
	s.syncStatus(goal)
	return goal, s.save(ctx, goal)
}

func (s *goalService) ReorderGoals(ctx context.Context, userID primitive.ObjectID, goalIDs []primitive.ObjectID) error {
	goals, err := s.goalRepo.List(ctx, userID, repository.GoalFilter{})
	if err != nil {
		return err
	}
	current := make([]primitive.ObjectID, len(goals))
	for i, g := range goals {
		current[i] = g.ID
	}
	return applyOrder(ctx, goalIDs, current, func(ctx context.Context, id primitive.ObjectID, position int) error {
		return s.goalRepo.UpdatePosition(ctx, id, userID, position)
	})
}

func (s *goalService) ArchiveGoal(ctx context.Context, userID, goalID primitive.ObjectID) (*domain.Goal, error) {
	goal, err := s.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if goal.Status == domain.GoalArchived {
		return goal, nil
	}
	now := s.now()
	goal.Status = domain.GoalArchived
	goal.ArchivedAt = &now
	return goal, s.save(ctx, goal)
}

// UnarchiveGoal restores a goal to active or completed depending on its progress.
func (s *goalService) UnarchiveGoal(ctx context.Context, userID, goalID primitive.ObjectID) (*domain.Goal, error) {
	goal, err := s.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if goal.Status != domain.GoalArchived {
		return goal, nil
	}
	goal.ArchivedAt = nil
	goal.Status = domain.GoalActive
	if goal.CompletedAt != nil && goal.IsReached() {
		goal.Status = domain.GoalCompleted
	} else {
		goal.CompletedAt = nil
		s.settleStatus(goal)
	}
	return goal, s.save(ctx, goal)
}

func (s *goalService) DeleteGoal(ctx context.Context, userID, goalID primitive.ObjectID) error {
	if err := s.goalRepo.Delete(ctx, goalID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrGoalNotFound
		}
		return err
	}
	return nil
}

func (s *goalService) validate(ctx context.Context, userID primitive.ObjectID, in GoalInput) error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrGoalValidation)
	}
	if !in.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrGoalValidation, in.Category)
	}
	if in.TargetValue == in.StartValue && in.Category != domain.GoalHabit {
		return fmt.Errorf("%w: target must differ from start", ErrGoalValidation)
	}
	if in.ExerciseID != nil {
		ex, err := s.exerciseRepo.GetByID(ctx, *in.ExerciseID)
		if errors.Is(err, repository.ErrNotFound) || (err == nil && ex.OwnerID != userID) {
			return fmt.Errorf("%w: exercise %s not found", ErrGoalValidation, in.ExerciseID.Hex())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// settleStatus applies syncStatus after a create or edit. A habit is never
// completed by creating or editing it; only a progress update completes it.
func (s *goalService) settleStatus(goal *domain.Goal) {
	if goal.Category == domain.GoalHabit && goal.Status == domain.GoalActive {
		return
	}
	s.syncStatus(goal)
}

// syncStatus moves an active goal to completed when reached and a completed goal
// back to active when no longer reached. Archived goals are left alone.
func (s *goalService) syncStatus(goal *domain.Goal) {
	switch {
	case goal.Status == domain.GoalActive && goal.IsReached():
		now := s.now()
		goal.Status = domain.GoalCompleted
		goal.CompletedAt = &now
	case goal.Status == domain.GoalCompleted && !goal.IsReached():
		goal.Status = domain.GoalActive
		goal.CompletedAt = nil
	}
}

func (s *goalService) save(ctx context.Context, goal *domain.Goal) error {
	if err := s.goalRepo.Update(ctx, goal); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrGoalNotFound
		}
		return err
	}
	return nil
}

func applyGoalInput(goal *domain.Goal, in GoalInput) {
	goal.Title = in.Title
	goal.Description = in.Description
	goal.Category = in.Category
	goal.ExerciseID = in.ExerciseID
	goal.StartValue = in.StartValue
	goal.TargetValue = in.TargetValue
	goal.Unit = in.Unit
	goal.Deadline = in.Deadline
	if in.CurrentValue != nil {
		goal.CurrentValue = *in.CurrentValue
	}
}
