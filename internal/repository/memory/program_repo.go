package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"ironforge/fitness-api/internal/domain"
	"ironforge/fitness-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type programRepository struct {
	mu       sync.RWMutex
	programs map[primitive.ObjectID]domain.Program
}

// NewProgramRepository returns an empty in-memory repository.ProgramRepository.
func NewProgramRepository() repository.ProgramRepository {
	return &programRepository{programs: make(map[primitive.ObjectID]domain.Program)}
}

func (r *programRepository) Create(_ context.Context, program *domain.Program) (primitive.ObjectID, error) {
	if program.UserID == primitive.NilObjectID || program.Name == "" {
		return primitive.NilObjectID, errors.New("program requires userId and name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	program.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	program.CreatedAt = now
	program.UpdatedAt = now
	r.programs[program.ID] = cloneProgram(*program)
	return program.ID, nil
}

func (r *programRepository) GetByID(_ context.Context, id, userID primitive.ObjectID) (*domain.Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.programs[id]
	if !ok || p.UserID != userID {
		return nil, repository.ErrNotFound
	}
	out := cloneProgram(p)
	return &out, nil
}

func (r *programRepository) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	programs := []domain.Program{}
	for _, p := range r.programs {
		if p.UserID == userID {
			programs = append(programs, cloneProgram(p))
		}
	}
	sort.Slice(programs, func(i, j int) bool {
		if programs[i].IsActive != programs[j].IsActive {
			return programs[i].IsActive
		}
		return programs[i].CreatedAt.After(programs[j].CreatedAt)
	})
	return programs, nil
}

func (r *programRepository) Update(_ context.Context, program *domain.Program) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.programs[program.ID]
	if !ok || p.UserID != program.UserID {
		return repository.ErrNotFound
	}
	program.UpdatedAt = time.Now().UTC()
	p.Name = program.Name
	p.Description = program.Description
	p.Days = program.Days
	p.UpdatedAt = program.UpdatedAt
	r.programs[p.ID] = cloneProgram(p)
	return nil
}

func (r *programRepository) SetActive(_ context.Context, id, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	target, ok := r.programs[id]
	if !ok || target.UserID != userID {
		return repository.ErrNotFound
	}
	now := time.Now().UTC()
	for pid, p := range r.programs {
		if p.UserID != userID {
			continue
		}
		p.IsActive = pid == id
		p.UpdatedAt = now
		r.programs[pid] = p
	}
	return nil
}

func (r *programRepository) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.programs[id]
	if !ok || p.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.programs, id)
	return nil
}

func cloneProgram(p domain.Program) domain.Program {
	p.Days = slices.Clone(p.Days)
	for i := range p.Days {
		p.Days[i].Exercises = slices.Clone(p.Days[i].Exercises)
	}
	return p
}
