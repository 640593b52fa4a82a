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

type SanctionTypeService interface {
	CreateSanctionType(ctx context.Context, input SanctionTypeInput) (*models.SanctionType, error)
	CreateSanctionTypes(ctx context.Context, inputs []SanctionTypeInput) ([]*models.SanctionType, error)
	GetSanctionTypeByID(ctx context.Context, id uuid.UUID) (*models.SanctionType, error)
	GetAllSanctionTypes(ctx context.Context) ([]models.SanctionType, error)
	UpdateSanctionType(ctx context.Context, id uuid.UUID, input UpdateSanctionTypeInput) (*models.SanctionType, error)
	DeleteSanctionType(ctx context.Context, id uuid.UUID) error
}

type SanctionTypeInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description"`
	SortOrder   int     `json:"sort_order" validate:"gte=0"`
	Active      *bool   `json:"active"`
}

type UpdateSanctionTypeInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order" validate:"omitempty,gte=0"`
	Active      *bool   `json:"active"`
}

type sanctionTypeService struct {
	repo repositories.SanctionTypeRepository
}

func NewSanctionTypeService(repo repositories.SanctionTypeRepository) SanctionTypeService {
	return &sanctionTypeService{repo: repo}
}

func newSanctionType(input SanctionTypeInput) (*models.SanctionType, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	return &models.SanctionType{
		Name:        strings.TrimSpace(input.Name),
		Description: trimmedPtr(input.Description),
		SortOrder:   input.SortOrder,
		Active:      input.Active == nil || *input.Active,
	}, nil
}

func (s *sanctionTypeService) CreateSanctionType(ctx context.Context, input SanctionTypeInput) (*models.SanctionType, error) {
	st, err := newSanctionType(input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, fmt.Errorf("failed to create sanction type %q: %w", st.Name, err)
	}
	return st, nil
}

func (s *sanctionTypeService) CreateSanctionTypes(ctx context.Context, inputs []SanctionTypeInput) ([]*models.SanctionType, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyBatch
	}
	types := make([]*models.SanctionType, 0, len(inputs))
	for i, in := range inputs {
		st, err := newSanctionType(in)
		if err != nil {
			return nil, atIndex(i, err)
		}
		types = append(types, st)
	}
	if err := s.repo.CreateMany(ctx, types); err != nil {
		return nil, fmt.Errorf("failed to create sanction types: %w", err)
	}
	return types, nil
}

func (s *sanctionTypeService) GetSanctionTypeByID(ctx context.Context, id uuid.UUID) (*models.SanctionType, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSanctionTypeNotFound) {
			return nil, ErrSanctionTypeNotFound
		}
		return nil, fmt.Errorf("failed to get sanction type by id %s: %w", id, err)
	}
	return st, nil
}

func (s *sanctionTypeService) GetAllSanctionTypes(ctx context.Context) ([]models.SanctionType, error) {
	list, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all sanction types: %w", err)
	}
	return list, nil
}

func (s *sanctionTypeService) UpdateSanctionType(ctx context.Context, id uuid.UUID, input UpdateSanctionTypeInput) (*models.SanctionType, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	st, err := s.GetSanctionTypeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		st.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		st.Description = trimmedPtr(input.Description)
	}
	if input.SortOrder != nil {
		st.SortOrder = *input.SortOrder
	}
	if input.Active != nil {
		st.Active = *input.Active
	}
	if err := s.repo.Update(ctx, st); err != nil {
		if errors.Is(err, repositories.ErrSanctionTypeNotFound) {
			return nil, ErrSanctionTypeNotFound
		}
		return nil, fmt.Errorf("failed to update sanction type %s: %w", id, err)
	}
	return st, nil
}

func (s *sanctionTypeService) DeleteSanctionType(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrSanctionTypeNotFound) {
			return ErrSanctionTypeNotFound
		}
		return fmt.Errorf("failed to delete sanction type %s: %w", id, err)
	}
	return nil
}
