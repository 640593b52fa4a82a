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

type FieldService interface {
	CreateField(ctx context.Context, input FieldInput) (*models.Field, error)
	CreateFields(ctx context.Context, inputs []FieldInput) ([]*models.Field, error)
	GetFieldByID(ctx context.Context, id uuid.UUID) (*models.Field, error)
	GetFieldByName(ctx context.Context, name string) (*models.Field, error)
	GetAllFields(ctx context.Context) ([]models.Field, error)
	UpdateField(ctx context.Context, id uuid.UUID, input UpdateFieldInput) (*models.Field, error)
	DeleteField(ctx context.Context, id uuid.UUID) error
}

type FieldInput struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Location *string `json:"location" validate:"omitempty,max=255"`
}

type UpdateFieldInput struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Location *string `json:"location" validate:"omitempty,max=255"`
}

type fieldService struct {
	repo repositories.FieldRepository
}

func NewFieldService(repo repositories.FieldRepository) FieldService {
	return &fieldService{repo: repo}
}

func newField(input FieldInput) (*models.Field, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	return &models.Field{Name: strings.TrimSpace(input.Name), Location: trimmedPtr(input.Location)}, nil
}

func (s *fieldService) CreateField(ctx context.Context, input FieldInput) (*models.Field, error) {
	field, err := newField(input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, field); err != nil {
		return nil, fmt.Errorf("failed to create field %q: %w", field.Name, err)
	}
	return field, nil
}

func (s *fieldService) CreateFields(ctx context.Context, inputs []FieldInput) ([]*models.Field, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyBatch
	}
	fields := make([]*models.Field, 0, len(inputs))
	for i, in := range inputs {
		field, err := newField(in)
		if err != nil {
			return nil, atIndex(i, err)
		}
		fields = append(fields, field)
	}
	if err := s.repo.CreateMany(ctx, fields); err != nil {
		return nil, fmt.Errorf("failed to create fields: %w", err)
	}
	return fields, nil
}

func (s *fieldService) GetFieldByID(ctx context.Context, id uuid.UUID) (*models.Field, error) {
	field, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrFieldNotFound) {
			return nil, ErrFieldNotFound
		}
		return nil, fmt.Errorf("failed to get field by id %s: %w", id, err)
	}
	return field, nil
}

func (s *fieldService) GetFieldByName(ctx context.Context, name string) (*models.Field, error) {
	field, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repositories.ErrFieldNotFound) {
			return nil, ErrFieldNotFound
		}
		return nil, fmt.Errorf("failed to get field by name %q: %w", name, err)
	}
	return field, nil
}

func (s *fieldService) GetAllFields(ctx context.Context) ([]models.Field, error) {
	fields, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all fields: %w", err)
	}
	return fields, nil
}

func (s *fieldService) UpdateField(ctx context.Context, id uuid.UUID, input UpdateFieldInput) (*models.Field, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	field, err := s.GetFieldByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		field.Name = strings.TrimSpace(*input.Name)
	}
	if input.Location != nil {
		field.Location = trimmedPtr(input.Location)
	}
	if err := s.repo.Update(ctx, field); err != nil {
		if errors.Is(err, repositories.ErrFieldNotFound) {
			return nil, ErrFieldNotFound
		}
		return nil, fmt.Errorf("failed to update field %s: %w", id, err)
	}
	return field, nil
}

func (s *fieldService) DeleteField(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrFieldNotFound) {
			return ErrFieldNotFound
		}
		return fmt.Errorf("failed to delete field %s: %w", id, err)
	}
	return nil
}
