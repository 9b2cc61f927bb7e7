package memory

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"ironforge/fitness-api/internal/domain"
	"ironforge/fitness-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type equipmentRepository struct {
	mu     sync.RWMutex
	byUser map[primitive.ObjectID]domain.Equipment
}

// NewEquipmentRepository returns an empty in-memory repository.EquipmentRepository.
func NewEquipmentRepository() repository.EquipmentRepository {
	return &equipmentRepository{byUser: make(map[primitive.ObjectID]domain.Equipment)}
}

func (r *equipmentRepository) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.Equipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byUser[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneEquipment(e)
	return &out, nil
}

func (r *equipmentRepository) Save(_ context.Context, equipment *domain.Equipment) error {
	if equipment.UserID == primitive.NilObjectID {
		return errors.New("equipment requires a user ID")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if equipment.ID == primitive.NilObjectID {
		equipment.ID = primitive.NewObjectID()
	}
	if equipment.CreatedAt.IsZero() {
		equipment.CreatedAt = now
	}
	equipment.UpdatedAt = now
	r.byUser[equipment.UserID] = cloneEquipment(*equipment)
	return nil
}

func cloneEquipment(e domain.Equipment) domain.Equipment {
	e.Barbells = slices.Clone(e.Barbells)
	e.Plates = slices.Clone(e.Plates)
	return e
}
