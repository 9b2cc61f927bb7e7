package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"ironforge/fitness-api/internal/domain"
	"ironforge/fitness-api/internal/repository/memory"
	"ironforge/fitness-api/internal/storage"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStorage records presign requests and serves sizes for "uploaded" keys.
type fakeStorage struct {
	mu      sync.Mutex
	objects map[string]int64
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string]int64{}}
}

func (f *fakeStorage) put(key string, size int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = size
}

func (f *fakeStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	return "https://storage.test/put/" + objectKey, nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/get/" + objectKey, nil
}

func (f *fakeStorage) ObjectSize(_ context.Context, objectKey string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	size, ok := f.objects[objectKey]
	if !ok {
		return 0, storage.ErrObjectNotFound
	}
	return size, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, objectKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, objectKey)
	f.deleted = append(f.deleted, objectKey)
	return nil
}

type fixture struct {
	storage   *fakeStorage
	exercises ExerciseService
	goals     GoalService
	programs  ProgramService
	workouts  WorkoutService
	equipment EquipmentService
}

func newFixture() *fixture {
	exerciseRepo := memory.NewExerciseRepository()
	programRepo := memory.NewProgramRepository()
	fs := newFakeStorage()
	return &fixture{
		storage:   fs,
		exercises: NewExerciseService(exerciseRepo, memory.NewUploadRepository(), fs),
		goals:     NewGoalService(memory.NewGoalRepository(), exerciseRepo),
		programs:  NewProgramService(programRepo, exerciseRepo),
		workouts:  NewWorkoutService(memory.NewWorkoutRepository(), exerciseRepo, programRepo),
		equipment: NewEquipmentService(memory.NewEquipmentRepository(), domain.UnitLb),
	}
}

func (f *fixture) exercise(t *testing.T, owner primitive.ObjectID, name string) *domain.Exercise {
	t.Helper()
	ex, err := f.exercises.CreateExercise(context.Background(), owner, ExerciseInput{Name: name, MuscleGroup: "Legs", Equipment: "Barbell"})
	require.NoError(t, err)
	return ex
}
