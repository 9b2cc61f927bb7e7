package repository

import (
	"context"
	"time"

	"ironforge/fitness-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
	ErrDuplicate    = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// GoalFilter narrows a goal listing. Zero values match everything.
type GoalFilter struct {
	Status   domain.GoalStatus
	Category domain.GoalCategory
}

// ExerciseFilter narrows an exercise listing. Zero values match everything
// except archived exercises, which need IncludeArchived.
type ExerciseFilter struct {
	MuscleGroup     string
	Equipment       string
	Search          string
	IncludeArchived bool
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// GoalRepository defines the interface for interacting with goal data.
// Every method is scoped to the owning user.
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Goal, error)
	List(ctx context.Context, userID primitive.ObjectID, filter GoalFilter) ([]domain.Goal, error) // ordered by position
	Update(ctx context.Context, goal *domain.Goal) error
	UpdatePosition(ctx context.Context, id, userID primitive.ObjectID, position int) error
	NextPosition(ctx context.Context, userID primitive.ObjectID) (int, error)
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}

// ExerciseRepository defines the interface for interacting with exercise data.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	List(ctx context.Context, ownerID primitive.ObjectID, filter ExerciseFilter) ([]domain.Exercise, error) // ordered by position
	Update(ctx context.Context, exercise *domain.Exercise) error
	SetArchived(ctx context.Context, id, ownerID primitive.ObjectID, archived bool) error
	SetMediaKey(ctx context.Context, id, ownerID primitive.ObjectID, key string) error
	UpdatePosition(ctx context.Context, id, ownerID primitive.ObjectID, position int) error
	NextPosition(ctx context.Context, ownerID primitive.ObjectID) (int, error)
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error // Ensure user owns the exercise
}

// UploadRepository defines the interface for interacting with upload metadata.
type UploadRepository interface {
	Create(ctx context.Context, upload *domain.Upload) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Upload, error)
	GetLatestByExerciseID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Upload, error)
}

// EquipmentRepository stores one equipment document per user.
type EquipmentRepository interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Equipment, error)
	Save(ctx context.Context, equipment *domain.Equipment) error // insert or replace by userId
}

// ProgramRepository defines the interface for interacting with program data.
type ProgramRepository interface {
	Create(ctx context.Context, program *domain.Program) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Program, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Program, error)
	Update(ctx context.Context, program *domain.Program) error
	SetActive(ctx context.Context, id, userID primitive.ObjectID) error // deactivates the user's other programs
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}

// WorkoutRepository defines the interface for interacting with workout logs.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Workout, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.Workout, error) // newest first; zero bounds are open
	ListByExercise(ctx context.Context, userID, exerciseID primitive.ObjectID) ([]domain.Workout, error)    // oldest first
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}
