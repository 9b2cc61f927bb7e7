package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"ironforge/fitness-api/internal/domain"
	"ironforge/fitness-api/internal/repository"
	"ironforge/fitness-api/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrValidationFailed     = errors.New("exercise validation failed")
	ErrUnsupportedMediaType = errors.New("only image and video uploads are supported")
	ErrMediaKeyMismatch     = errors.New("object key does not belong to this exercise")
	ErrMediaNotUploaded     = errors.New("media file has not been uploaded")
	ErrNoMedia              = errors.New("exercise has no media")
)

// ExerciseInput carries the user-editable fields of an exercise.
type ExerciseInput struct {
	Name             string
	Description      string
	MuscleGroup      string
	Equipment        string
	Category         string
	ExecutionTechnic string
	Difficulty       string
	VideoURL         string
}

// MediaUpload is a presigned PUT target handed to the client.
type MediaUpload struct {
	UploadURL string
	ObjectKey string
	ExpiresAt time.Time
}

type ExerciseService interface {
	CreateExercise(ctx context.Context, ownerID primitive.ObjectID, in ExerciseInput) (*domain.Exercise, error)
	GetExercise(ctx context.Context, ownerID, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	ListExercises(ctx context.Context, ownerID primitive.ObjectID, filter repository.ExerciseFilter) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, ownerID, exerciseID primitive.ObjectID, in ExerciseInput) (*domain.Exercise, error)
	SetArchived(ctx context.Context, ownerID, exerciseID primitive.ObjectID, archived bool) (*domain.Exercise, error)
	ReorderExercises(ctx context.Context, ownerID primitive.ObjectID, exerciseIDs []primitive.ObjectID) error
	DeleteExercise(ctx context.Context, ownerID, exerciseID primitive.ObjectID) error

	RequestMediaUpload(ctx context.Context, ownerID, exerciseID primitive.ObjectID, fileName, contentType string) (*MediaUpload, error)
	ConfirmMediaUpload(ctx context.Context, ownerID, exerciseID primitive.ObjectID, objectKey, fileName, contentType string) (*domain.Upload, error)
	GetMediaURL(ctx context.Context, ownerID, exerciseID primitive.ObjectID) (string, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	uploadRepo   repository.UploadRepository
	fileStorage  storage.FileStorage
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, uploadRepo repository.UploadRepository, fileStorage storage.FileStorage) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		uploadRepo:   uploadRepo,
		fileStorage:  fileStorage,
	}
}

// CreateExercise appends a new exercise to the end of the owner's catalog.
func (s *exerciseService) CreateExercise(ctx context.Context, ownerID primitive.ObjectID, in ExerciseInput) (*domain.Exercise, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidationFailed)
	}

	position, err := s.exerciseRepo.NextPosition(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	exercise := &domain.Exercise{OwnerID: ownerID, Position: position}
	applyExerciseInput(exercise, in)

	if _, err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

// GetExercise retrieves a single exercise. Another user's exercise reads as not found.
func (s *exerciseService) GetExercise(ctx context.Context, ownerID, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if exercise.OwnerID != ownerID {
		return nil, ErrExerciseNotFound
	}
	return exercise, nil
}

func (s *exerciseService) ListExercises(ctx context.Context, ownerID primitive.ObjectID, filter repository.ExerciseFilter) ([]domain.Exercise, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.exerciseRepo.List(ctx, ownerID, filter)
}

func (s *exerciseService) UpdateExercise(ctx context.Context, ownerID, exerciseID primitive.ObjectID, in ExerciseInput) (*domain.Exercise, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidationFailed)
	}

	exercise, err := s.GetExercise(ctx, ownerID, exerciseID)
	if err != nil {
		return nil, err
	}
	applyExerciseInput(exercise, in)

	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// SetArchived hides or restores an exercise. Archived exercises keep their
// history and stay referenced by programs and workouts.
func (s *exerciseService) SetArchived(ctx context.Context, ownerID, exerciseID primitive.ObjectID, archived bool) (*domain.Exercise, error) {
	if err := s.exerciseRepo.SetArchived(ctx, exerciseID, ownerID, archived); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return s.GetExercise(ctx, ownerID, exerciseID)
}

func (s *exerciseService) ReorderExercises(ctx context.Context, ownerID primitive.ObjectID, exerciseIDs []primitive.ObjectID) error {
	exercises, err := s.exerciseRepo.List(ctx, ownerID, repository.ExerciseFilter{IncludeArchived: true})
	if err != nil {
		return err
	}
	current := make([]primitive.ObjectID, len(exercises))
	for i, ex := range exercises {
		current[i] = ex.ID
	}
	return applyOrder(ctx, exerciseIDs, current, func(ctx context.Context, id primitive.ObjectID, position int) error {
		return s.exerciseRepo.UpdatePosition(ctx, id, ownerID, position)
	})
}

// DeleteExercise removes the exercise and, best effort, its media object.
func (s *exerciseService) DeleteExercise(ctx context.Context, ownerID, exerciseID primitive.ObjectID) error {
	exercise, err := s.GetExercise(ctx, ownerID, exerciseID)
	if err != nil {
		return err
	}

	if err := s.exerciseRepo.Delete(ctx, exerciseID, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}

	if exercise.MediaKey != "" {
		if err := s.fileStorage.DeleteObject(ctx, exercise.MediaKey); err != nil {
			log.Printf("WARN: exercise %s deleted but media '%s' was not: %v", exerciseID.Hex(), exercise.MediaKey, err)
		}
	}
	return nil
}

// RequestMediaUpload issues a presigned PUT for a new demo file.
func (s *exerciseService) RequestMediaUpload(ctx context.Context, ownerID, exerciseID primitive.ObjectID, fileName, contentType string) (*MediaUpload, error) {
	if !isMediaType(contentType) {
		return nil, ErrUnsupportedMediaType
	}
	if _, err := s.GetExercise(ctx, ownerID, exerciseID); err != nil {
		return nil, err
	}

	key := mediaKeyPrefix(ownerID, exerciseID) + uuid.NewString() + mediaExtension(fileName, contentType)
	url, err := s.fileStorage.GeneratePresignedUploadURL(ctx, key, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}

	return &MediaUpload{
		UploadURL: url,
		ObjectKey: key,
		ExpiresAt: time.Now().UTC().Add(storage.DefaultPresignedURLExpiry),
	}, nil
}

// ConfirmMediaUpload records a finished upload and makes it the exercise's media.
// The replaced object, if any, is deleted.
func (s *exerciseService) ConfirmMediaUpload(ctx context.Context, ownerID, exerciseID primitive.ObjectID, objectKey, fileName, contentType string) (*domain.Upload, error) {
	if !strings.HasPrefix(objectKey, mediaKeyPrefix(ownerID, exerciseID)) {
		return nil, ErrMediaKeyMismatch
	}
	if !isMediaType(contentType) {
		return nil, ErrUnsupportedMediaType
	}
	exercise, err := s.GetExercise(ctx, ownerID, exerciseID)
	if err != nil {
		return nil, err
	}

	size, err := s.fileStorage.ObjectSize(ctx, objectKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrMediaNotUploaded
		}
		return nil, err
	}

	upload := &domain.Upload{
		ExerciseID:  exerciseID,
		OwnerID:     ownerID,
		ObjectKey:   objectKey,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
	}
	if _, err := s.uploadRepo.Create(ctx, upload); err != nil {
		return nil, err
	}
	if err := s.exerciseRepo.SetMediaKey(ctx, exerciseID, ownerID, objectKey); err != nil {
		return nil, err
	}

	if old := exercise.MediaKey; old != "" && old != objectKey {
		if err := s.fileStorage.DeleteObject(ctx, old); err != nil {
			log.Printf("WARN: failed to delete replaced media '%s': %v", old, err)
		}
	}
	return upload, nil
}

// GetMediaURL returns a presigned GET for the exercise's current media.
func (s *exerciseService) GetMediaURL(ctx context.Context, ownerID, exerciseID primitive.ObjectID) (string, error) {
	exercise, err := s.GetExercise(ctx, ownerID, exerciseID)
	if err != nil {
		return "", err
	}
	if exercise.MediaKey == "" {
		return "", ErrNoMedia
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, exercise.MediaKey, storage.DefaultPresignedURLExpiry)
}

func applyExerciseInput(ex *domain.Exercise, in ExerciseInput) {
	ex.Name = strings.TrimSpace(in.Name)
	ex.Description = in.Description
	ex.MuscleGroup = in.MuscleGroup
	ex.Equipment = in.Equipment
	ex.Category = in.Category
	ex.ExecutionTechnic = in.ExecutionTechnic
	ex.Difficulty = in.Difficulty
	ex.VideoURL = in.VideoURL
}

func mediaKeyPrefix(ownerID, exerciseID primitive.ObjectID) string {
	return "exercises/" + ownerID.Hex() + "/" + exerciseID.Hex() + "/"
}

func isMediaType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") || strings.HasPrefix(contentType, "video/")
}

// mediaExtension prefers the client's file extension, falling back to the MIME subtype.
func mediaExtension(fileName, contentType string) string {
	if ext := strings.ToLower(path.Ext(fileName)); ext != "" {
		return ext
	}
	_, sub, ok := strings.Cut(contentType, "/")
	if !ok || sub == "" {
		return ""
	}
	sub, _, _ = strings.Cut(sub, ";")
	return "." + sub
}
