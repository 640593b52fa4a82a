package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/Dosada05/tournament-admin/repositories"
	"github.com/google/uuid"
)

type StateService interface {
	CreateState(ctx context.Context, input StateInput) (*models.State, error)
	GetStateByID(ctx context.Context, id uuid.UUID) (*models.State, error)
	GetStateByName(ctx context.Context, name string) (*models.State, error)
	GetAllStates(ctx context.Context) ([]models.State, error)
	UpdateState(ctx context.Context, id uuid.UUID, input UpdateStateInput) (*models.State, error)
	DeleteState(ctx context.Context, id uuid.UUID) error
}

type StateInput struct {
	Name  string  `json:"name" validate:"required,max=50"`
	Color *string `json:"color" validate:"omitempty,max=20"`
}

type UpdateStateInput struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=50"`
	Color *string `json:"color" validate:"omitempty,max=20"`
}

type stateService struct {
	repo repositories.StateRepository
}

func NewStateService(repo repositories.StateRepository) StateService {
	return &stateService{repo: repo}
}

func (s *stateService) CreateState(ctx context.Context, input StateInput) (*models.State, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	state := &models.State{Name: strings.TrimSpace(input.Name), Color: trimmedPtr(input.Color)}
	if err := s.repo.Create(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to create state %q: %w", state.Name, err)
	}
	return state, nil
}

func (s *stateService) GetStateByID(ctx context.Context, id uuid.UUID) (*models.State, error) {
	state, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrStateNotFound) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to get state by id %s: %w", id, err)
	}
	return state, nil
}

func (s *stateService) GetStateByName(ctx context.Context, name string) (*models.State, error) {
	state, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repositories.ErrStateNotFound) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to get state by name %q: %w", name, err)
	}
	return state, nil
}

func (s *stateService) GetAllStates(ctx context.Context) ([]models.State, error) {
	states, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all states: %w", err)
	}
	return states, nil
}

func (s *stateService) UpdateState(ctx context.Context, id uuid.UUID, input UpdateStateInput) (*models.State, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	state, err := s.GetStateByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		state.Name = strings.TrimSpace(*input.Name)
	}
	if input.Color != nil {
		state.Color = trimmedPtr(input.Color)
	}
	if err := s.repo.Update(ctx, state); err != nil {
		if errors.Is(err, repositories.ErrStateNotFound) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to update state %s: %w", id, err)
	}
	return state, nil
}

// DeleteState не даст удалить состояние, на которое ссылаются расписания (ErrReference).
func (s *stateService) DeleteState(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrStateNotFound) {
			return ErrStateNotFound
		}
		return fmt.Errorf("failed to delete state %s: %w", id, err)
	}
	return nil
}
