package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"ironforge/fitness-api/internal/domain"
	"ironforge/fitness-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type uploadRepository struct {
	mu      sync.RWMutex
	uploads []domain.Upload // insertion order
}

// NewUploadRepository returns an empty in-memory repository.UploadRepository.
func NewUploadRepository() repository.UploadRepository {
	return &uploadRepository{}
}

func (r *uploadRepository) Create(_ context.Context, upload *domain.Upload) (primitive.ObjectID, error) {
	if upload.ExerciseID == primitive.NilObjectID || upload.OwnerID == primitive.NilObjectID || upload.ObjectKey == "" {
		return primitive.NilObjectID, errors.New("upload requires exerciseId, ownerId, and objectKey")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.uploads {
		if u.ObjectKey == upload.ObjectKey {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	upload.ID = primitive.NewObjectID()
	upload.UploadedAt = time.Now().UTC()
	r.uploads = append(r.uploads, *upload)
	return upload.ID, nil
}

func (r *uploadRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Upload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.uploads {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *uploadRepository) GetLatestByExerciseID(_ context.Context, exerciseID primitive.ObjectID) (*domain.Upload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := len(r.uploads) - 1; i >= 0; i-- {
		if r.uploads[i].ExerciseID == exerciseID {
			u := r.uploads[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}
