package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/Dosada05/tournament-admin/repositories"
	"github.com/google/uuid"
)

type SanctionService interface {
	CreateSanction(ctx context.Context, input SanctionInput) (*models.Sanction, error)
	GetSanctionByID(ctx context.Context, id uuid.UUID) (*models.Sanction, error)
	GetAllSanctions(ctx context.Context) ([]models.Sanction, error)
	UpdateSanction(ctx context.Context, id uuid.UUID, input UpdateSanctionInput) (*models.Sanction, error)
	DeleteSanction(ctx context.Context, id uuid.UUID) error
}

type SanctionInput struct {
	PlayerID       string `json:"player_id" validate:"required,uuid"`
	SanctionTypeID string `json:"sanction_type_id" validate:"required,uuid"`
	MatchID        string `json:"match_id" validate:"required,uuid"`
	Active         *bool  `json:"active"`
}

type UpdateSanctionInput struct {
	PlayerID       *string `json:"player_id" validate:"omitempty,uuid"`
	SanctionTypeID *string `json:"sanction_type_id" validate:"omitempty,uuid"`
	MatchID        *string `json:"match_id" validate:"omitempty,uuid"`
	Active         *bool   `json:"active"`
}

type sanctionService struct {
	repo repositories.SanctionRepository
}

func NewSanctionService(repo repositories.SanctionRepository) SanctionService {
	return &sanctionService{repo: repo}
}

func sanctionWriteError(s *models.Sanction, err error) error {
	if errors.Is(err, repositories.ErrReference) {
		return fmt.Errorf("%w: player %s, sanction type %s or match %s", ErrReferenceNotFound,
			s.PlayerID, s.SanctionTypeID, s.MatchID)
	}
	return err
}

func (s *sanctionService) CreateSanction(ctx context.Context, input SanctionInput) (*models.Sanction, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	sanction := &models.Sanction{
		PlayerID:       uuid.MustParse(input.PlayerID),
		SanctionTypeID: uuid.MustParse(input.SanctionTypeID),
		MatchID:        uuid.MustParse(input.MatchID),
		Active:         input.Active == nil || *input.Active,
	}
	if err := s.repo.Create(ctx, sanction); err != nil {
		return nil, fmt.Errorf("failed to create sanction: %w", sanctionWriteError(sanction, err))
	}
	return sanction, nil
}

func (s *sanctionService) GetSanctionByID(ctx context.Context, id uuid.UUID) (*models.Sanction, error) {
	sanction, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSanctionNotFound) {
			return nil, ErrSanctionNotFound
		}
		return nil, fmt.Errorf("failed to get sanction by id %s: %w", id, err)
	}
	return sanction, nil
}

func (s *sanctionService) GetAllSanctions(ctx context.Context) ([]models.Sanction, error) {
	list, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all sanctions: %w", err)
	}
	return list, nil
}

func (s *sanctionService) UpdateSanction(ctx context.Context, id uuid.UUID, input UpdateSanctionInput) (*models.Sanction, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	sanction, err := s.GetSanctionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.PlayerID != nil {
		sanction.PlayerID = uuid.MustParse(*input.PlayerID)
	}
	if input.SanctionTypeID != nil {
		sanction.SanctionTypeID = uuid.MustParse(*input.SanctionTypeID)
	}
	if input.MatchID != nil {
		sanction.MatchID = uuid.MustParse(*input.MatchID)
	}
	if input.Active != nil {
		sanction.Active = *input.Active
	}
	if err := s.repo.Update(ctx, sanction); err != nil {
		if errors.Is(err, repositories.ErrSanctionNotFound) {
			return nil, ErrSanctionNotFound
		}
		return nil, fmt.Errorf("failed to update sanction %s: %w", id, sanctionWriteError(sanction, err))
	}
	return sanction, nil
}

func (s *sanctionService) DeleteSanction(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrSanctionNotFound) {
			return ErrSanctionNotFound
		}
		return fmt.Errorf("failed to delete sanction %s: %w", id, err)
	}
	return nil
}
