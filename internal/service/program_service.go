package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ironforge/fitness-api/internal/domain"
	"ironforge/fitness-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrProgramNotFound   = errors.New("program not found")
	ErrProgramValidation = errors.New("program validation failed")
)

// ProgramInput carries the user-editable fields of a program.
type ProgramInput struct {
	Name        string
	Description string
	Days        []domain.ProgramDay
}

type ProgramService interface {
	CreateProgram(ctx context.Context, userID primitive.ObjectID, in ProgramInput) (*domain.Program, error)
	GetProgram(ctx context.Context, userID, programID primitive.ObjectID) (*domain.Program, error)
	ListPrograms(ctx context.Context, userID primitive.ObjectID) ([]domain.Program, error)
	UpdateProgram(ctx context.Context, userID, programID primitive.ObjectID, in ProgramInput) (*domain.Program, error)
	ActivateProgram(ctx context.Context, userID, programID primitive.ObjectID) (*domain.Program, error)
	DeleteProgram(ctx context.Context, userID, programID primitive.ObjectID) error
}

type programService struct {
	programRepo  repository.ProgramRepository
	exerciseRepo repository.ExerciseRepository
}

func NewProgramService(programRepo repository.ProgramRepository, exerciseRepo repository.ExerciseRepository) ProgramService {
	return &programService{programRepo: programRepo, exerciseRepo: exerciseRepo}
}

func (s *programService) CreateProgram(ctx context.Context, userID primitive.ObjectID, in ProgramInput) (*domain.Program, error) {
	program := &domain.Program{UserID: userID}
	if err := s.apply(ctx, program, in); err != nil {
		return nil, err
	}
	if _, err := s.programRepo.Create(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

func (s *programService) GetProgram(ctx context.Context, userID, programID primitive.ObjectID) (*domain.Program, error) {
	program, err := s.programRepo.GetByID(ctx, programID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	return program, nil
}

// ListPrograms returns the active program first, then newest first.
func (s *programService) ListPrograms(ctx context.Context, userID primitive.ObjectID) ([]domain.Program, error) {
	return s.programRepo.ListByUser(ctx, userID)
}

func (s *programService) UpdateProgram(ctx context.Context, userID, programID primitive.ObjectID, in ProgramInput) (*domain.Program, error) {
	program, err := s.GetProgram(ctx, userID, programID)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, program, in); err != nil {
		return nil, err
	}
	if err := s.programRepo.Update(ctx, program); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	return program, nil
}

// ActivateProgram makes programID the user's only active program.
func (s *programService) ActivateProgram(ctx context.Context, userID, programID primitive.ObjectID) (*domain.Program, error) {
	if err := s.programRepo.SetActive(ctx, programID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	return s.GetProgram(ctx, userID, programID)
}

func (s *programService) DeleteProgram(ctx context.Context, userID, programID primitive.ObjectID) error {
	if err := s.programRepo.Delete(ctx, programID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProgramNotFound
		}
		return err
	}
	return nil
}

// apply validates in and copies it onto program. Unnamed days become "Day N".
func (s *programService) apply(ctx context.Context, program *domain.Program, in ProgramInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrProgramValidation)
	}

	days := make([]domain.ProgramDay, len(in.Days))
	for i, d := range in.Days {
		days[i] = domain.ProgramDay{Name: strings.TrimSpace(d.Name), Exercises: append([]domain.ProgramExercise{}, d.Exercises...)}
		if days[i].Name == "" {
			days[i].Name = fmt.Sprintf("Day %d", i+1)
		}
		for j, ex := range d.Exercises {
			if ex.Sets < 1 {
				return fmt.Errorf("%w: %s exercise %d needs at least one set", ErrProgramValidation, days[i].Name, j+1)
			}
			if ex.TargetWeight < 0 {
				return fmt.Errorf("%w: %s exercise %d has a negative target weight", ErrProgramValidation, days[i].Name, j+1)
			}
			if ex.Unit != "" && !ex.Unit.Valid() {
				return fmt.Errorf("%w: %s exercise %d: %v", ErrProgramValidation, days[i].Name, j+1, domain.ErrInvalidUnit)
			}
		}
	}

	candidate := domain.Program{Days: days}
	for _, id := range candidate.ExerciseIDs() {
		ex, err := s.exerciseRepo.GetByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) || (err == nil && ex.OwnerID != program.UserID) {
			return fmt.Errorf("%w: exercise %s not found", ErrProgramValidation, id.Hex())
		}
		if err != nil {
			return err
		}
	}

	program.Name = name
	program.Description = in.Description
	program.Days = days
	return nil
}
