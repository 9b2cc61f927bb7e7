package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ironforge/fitness-api/internal/domain"
	"ironforge/fitness-api/internal/plates"
	"ironforge/fitness-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrWorkoutNotFound   = errors.New("workout not found")
	ErrWorkoutValidation = errors.New("workout validation failed")
)

// WorkoutInput is a session as reported by the client.
type WorkoutInput struct {
	ProgramID       *primitive.ObjectID
	Name            string
	PerformedAt     time.Time // zero means now
	DurationMinutes int
	Notes           string
	Entries         []domain.WorkoutEntry
}

// ProgressPoint summarizes one workout's working sets of a single exercise.
type ProgressPoint struct {
	WorkoutID          primitive.ObjectID `json:"workoutId"`
	PerformedAt        time.Time          `json:"performedAt"`
	Unit               domain.WeightUnit  `json:"unit"`
	TopSetWeight       float64            `json:"topSetWeight"`
	TopSetReps         int                `json:"topSetReps"`
	EstimatedOneRepMax float64            `json:"estimatedOneRepMax"`
	Volume             float64            `json:"volume"` // sum of reps x weight
}

type WorkoutService interface {
	LogWorkout(ctx context.Context, userID primitive.ObjectID, in WorkoutInput) (*domain.Workout, error)
	GetWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error)
	ListWorkouts(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.Workout, error)
	DeleteWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) error
	ExerciseProgress(ctx context.Context, userID, exerciseID primitive.ObjectID, unit domain.WeightUnit) ([]ProgressPoint, error)
}

type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
	programRepo  repository.ProgramRepository
}

func NewWorkoutService(workoutRepo repository.WorkoutRepository, exerciseRepo repository.ExerciseRepository, programRepo repository.ProgramRepository) WorkoutService {
	return &workoutService{workoutRepo: workoutRepo, exerciseRepo: exerciseRepo, programRepo: programRepo}
}

func (s *workoutService) LogWorkout(ctx context.Context, userID primitive.ObjectID, in WorkoutInput) (*domain.Workout, error) {
	if err := s.validate(ctx, userID, in); err != nil {
		return nil, err
	}

	workout := &domain.Workout{
		UserID:          userID,
		ProgramID:       in.ProgramID,
		Name:            strings.TrimSpace(in.Name),
		PerformedAt:     in.PerformedAt.UTC(),
		DurationMinutes: in.DurationMinutes,
		Notes:           in.Notes,
		Entries:         in.Entries,
	}
	if in.PerformedAt.IsZero() {
		workout.PerformedAt = time.Now().UTC()
	}
	if workout.Name == "" {
		workout.Name = "Workout " + workout.PerformedAt.Format("2006-01-02")
	}

	if _, err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) GetWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// ListWorkouts returns workouts performed within [from, to], newest first.
// A zero bound is open.
func (s *workoutService) ListWorkouts(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.Workout, error) {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", ErrWorkoutValidation)
	}
	return s.workoutRepo.ListByUser(ctx, userID, from, to)
}

func (s *workoutService) DeleteWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) error {
	if err := s.workoutRepo.Delete(ctx, workoutID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return nil
}

// ExerciseProgress returns one point per workout containing working sets of
// exerciseID, oldest first, with every weight converted into unit.
func (s *workoutService) ExerciseProgress(ctx context.Context, userID, exerciseID primitive.ObjectID, unit domain.WeightUnit) ([]ProgressPoint, error) {
	if !unit.Valid() {
		return nil, domain.ErrInvalidUnit
	}
	ex, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if ex.OwnerID != userID {
		return nil, ErrExerciseNotFound
	}

	workouts, err := s.workoutRepo.ListByExercise(ctx, userID, exerciseID)
	if err != nil {
		return nil, err
	}

	points := []ProgressPoint{}
	for _, w := range workouts {
		if p, ok := summarize(w, exerciseID, unit); ok {
			points = append(points, p)
		}
	}
	return points, nil
}

func summarize(w domain.Workout, exerciseID primitive.ObjectID, unit domain.WeightUnit) (ProgressPoint, bool) {
	p := ProgressPoint{WorkoutID: w.ID, PerformedAt: w.PerformedAt, Unit: unit}
	found := false
	for _, entry := range w.Entries {
		if entry.ExerciseID != exerciseID {
			continue
		}
		for _, set := range entry.Sets {
			if set.IsWarmup {
				continue
			}
			found = true
			weight := plates.ConvertWeight(set.Weight, set.Unit, unit)
			if weight > p.TopSetWeight || (weight == p.TopSetWeight && set.Reps > p.TopSetReps) {
				p.TopSetWeight = weight
				p.TopSetReps = set.Reps
			}
			p.EstimatedOneRepMax = max(p.EstimatedOneRepMax, epley(weight, set.Reps))
			p.Volume += weight * float64(set.Reps)
		}
	}
	p.Volume = plates.Round2(p.Volume)
	return p, found
}

// epley estimates a one-rep max; a single is taken at face value.
func epley(weight float64, reps int) float64 {
	if reps <= 1 {
		return weight
	}
	return plates.Round2(weight * (1 + float64(reps)/30))
}

func (s *workoutService) validate(ctx context.Context, userID primitive.ObjectID, in WorkoutInput) error {
	if len(in.Entries) == 0 {
		return fmt.Errorf("%w: at least one exercise entry is required", ErrWorkoutValidation)
	}
	if in.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration cannot be negative", ErrWorkoutValidation)
	}

	for i, entry := range in.Entries {
		if len(entry.Sets) == 0 {
			return fmt.Errorf("%w: entry %d has no sets", ErrWorkoutValidation, i+1)
		}
		for j, set := range entry.Sets {
			switch {
			case set.Reps < 1:
				return fmt.Errorf("%w: entry %d set %d needs at least one rep", ErrWorkoutValidation, i+1, j+1)
			case set.Weight < 0:
				return fmt.Errorf("%w: entry %d set %d has a negative weight", ErrWorkoutValidation, i+1, j+1)
			case !set.Unit.Valid():
				return fmt.Errorf("%w: entry %d set %d: %v", ErrWorkoutValidation, i+1, j+1, domain.ErrInvalidUnit)
			}
		}
		ex, err := s.exerciseRepo.GetByID(ctx, entry.ExerciseID)
		if errors.Is(err, repository.ErrNotFound) || (err == nil && ex.OwnerID != userID) {
			return fmt.Errorf("%w: exercise %s not found", ErrWorkoutValidation, entry.ExerciseID.Hex())
		}
		if err != nil {
			return err
		}
	}

	if in.ProgramID != nil {
		if _, err := s.programRepo.GetByID(ctx, *in.ProgramID, userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: program %s not found", ErrWorkoutValidation, in.ProgramID.Hex())
			}
			return err
		}
	}
	return nil
}
