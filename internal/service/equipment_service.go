package service

import (
	"context"
	"errors"
	"sync"

	"ironforge/fitness-api/internal/domain"
	"ironforge/fitness-api/internal/plates"
	"ironforge/fitness-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNoActiveBarbell = errors.New("no active barbell selected")

type EquipmentService interface {
	GetEquipment(ctx context.Context, userID primitive.ObjectID) (*domain.Equipment, error)
	AddBarbell(ctx context.Context, userID primitive.ObjectID, label string, weight float64, unit domain.WeightUnit) (*domain.Equipment, error)
	SetActiveBarbell(ctx context.Context, userID, barbellID primitive.ObjectID) (*domain.Equipment, error)
	RemoveBarbell(ctx context.Context, userID, barbellID primitive.ObjectID) (*domain.Equipment, error)
	AddPlate(ctx context.Context, userID primitive.ObjectID, weight float64, unit domain.WeightUnit, count int, colorTag string) (*domain.Equipment, error)
	AdjustPlateCount(ctx context.Context, userID, plateID primitive.ObjectID, delta int) (*domain.Equipment, error)
	RemovePlate(ctx context.Context, userID, plateID primitive.ObjectID) (*domain.Equipment, error)

	// CalculateLoad resolves target against the user's active barbell and stored plates.
	// An empty unit means the active barbell's unit.
	CalculateLoad(ctx context.Context, userID primitive.ObjectID, target float64, unit domain.WeightUnit) (plates.LoadPlan, error)
	// CalculateLoadWith resolves against caller-supplied equipment and touches no storage.
	CalculateLoadWith(target float64, unit domain.WeightUnit, barbell domain.Barbell, inventory []domain.PlateType) (plates.LoadPlan, error)
}

type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
	defaultUnit   domain.WeightUnit

	// Edits are read-modify-write on one document per user.
	mu sync.Mutex
}

func NewEquipmentService(equipmentRepo repository.EquipmentRepository, defaultUnit domain.WeightUnit) EquipmentService {
	if !defaultUnit.Valid() {
		defaultUnit = domain.UnitLb
	}
	return &equipmentService{equipmentRepo: equipmentRepo, defaultUnit: defaultUnit}
}

// GetEquipment returns the user's equipment, seeding the default gym on first access.
func (s *equipmentService) GetEquipment(ctx context.Context, userID primitive.ObjectID) (*domain.Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, userID)
}

func (s *equipmentService) AddBarbell(ctx context.Context, userID primitive.ObjectID, label string, weight float64, unit domain.WeightUnit) (*domain.Equipment, error) {
	return s.modify(ctx, userID, func(e *domain.Equipment) error {
		_, err := e.AddBarbell(label, weight, unit)
		return err
	})
}

func (s *equipmentService) SetActiveBarbell(ctx context.Context, userID, barbellID primitive.ObjectID) (*domain.Equipment, error) {
	return s.modify(ctx, userID, func(e *domain.Equipment) error {
		return e.SetActiveBarbell(barbellID)
	})
}

func (s *equipmentService) RemoveBarbell(ctx context.Context, userID, barbellID primitive.ObjectID) (*domain.Equipment, error) {
	return s.modify(ctx, userID, func(e *domain.Equipment) error {
		return e.RemoveBarbell(barbellID)
	})
}

func (s *equipmentService) AddPlate(ctx context.Context, userID primitive.ObjectID, weight float64, unit domain.WeightUnit, count int, colorTag string) (*domain.Equipment, error) {
	return s.modify(ctx, userID, func(e *domain.Equipment) error {
		_, err := e.AddPlate(weight, unit, count, colorTag)
		return err
	})
}

func (s *equipmentService) AdjustPlateCount(ctx context.Context, userID, plateID primitive.ObjectID, delta int) (*domain.Equipment, error) {
	return s.modify(ctx, userID, func(e *domain.Equipment) error {
		_, err := e.AdjustPlateCount(plateID, delta)
		return err
	})
}

func (s *equipmentService) RemovePlate(ctx context.Context, userID, plateID primitive.ObjectID) (*domain.Equipment, error) {
	return s.modify(ctx, userID, func(e *domain.Equipment) error {
		return e.RemovePlate(plateID)
	})
}

func (s *equipmentService) CalculateLoad(ctx context.Context, userID primitive.ObjectID, target float64, unit domain.WeightUnit) (plates.LoadPlan, error) {
	equipment, err := s.GetEquipment(ctx, userID)
	if err != nil {
		return plates.LoadPlan{}, err
	}
	bar, ok := equipment.ActiveBarbell()
	if !ok {
		return plates.LoadPlan{}, ErrNoActiveBarbell
	}
	if unit == "" {
		unit = bar.Unit
	}
	return s.CalculateLoadWith(target, unit, bar, equipment.Plates)
}

func (s *equipmentService) CalculateLoadWith(target float64, unit domain.WeightUnit, barbell domain.Barbell, inventory []domain.PlateType) (plates.LoadPlan, error) {
	if !unit.Valid() || !barbell.Unit.Valid() {
		return plates.LoadPlan{}, domain.ErrInvalidUnit
	}
	if barbell.Weight <= 0 {
		return plates.LoadPlan{}, domain.ErrInvalidWeight
	}
	return plates.Resolve(max(0, target), unit, barbell, inventory), nil
}

func (s *equipmentService) modify(ctx context.Context, userID primitive.ObjectID, fn func(*domain.Equipment) error) (*domain.Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	equipment, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(equipment); err != nil {
		return nil, err
	}
	if err := s.equipmentRepo.Save(ctx, equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

// load must be called with s.mu held.
func (s *equipmentService) load(ctx context.Context, userID primitive.ObjectID) (*domain.Equipment, error) {
	equipment, err := s.equipmentRepo.GetByUserID(ctx, userID)
	if err == nil {
		return equipment, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	equipment = domain.DefaultEquipment(userID, s.defaultUnit)
	if err := s.equipmentRepo.Save(ctx, equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}
