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

type RoundService interface {
	CreateRound(ctx context.Context, input RoundInput) (*models.Round, error)
	CreateRounds(ctx context.Context, inputs []RoundInput) ([]*models.Round, error)
	GetRoundByID(ctx context.Context, id uuid.UUID) (*models.Round, error)
	GetRoundByCode(ctx context.Context, code string) (*models.Round, error)
	GetAllRounds(ctx context.Context) ([]models.Round, error)
	UpdateRound(ctx context.Context, id uuid.UUID, input UpdateRoundInput) (*models.Round, error)
	DeleteRound(ctx context.Context, id uuid.UUID) error
}

type RoundInput struct {
	Name string `json:"name" validate:"required,max=100"`
	Code string `json:"code" validate:"required,max=20"`
}

type UpdateRoundInput struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
	Code *string `json:"code" validate:"omitempty,min=1,max=20"`
}

type roundService struct {
	repo repositories.RoundRepository
}

func NewRoundService(repo repositories.RoundRepository) RoundService {
	return &roundService{repo: repo}
}

func newRound(input RoundInput) (*models.Round, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	return &models.Round{Name: strings.TrimSpace(input.Name), Code: strings.TrimSpace(input.Code)}, nil
}

func (s *roundService) CreateRound(ctx context.Context, input RoundInput) (*models.Round, error) {
	round, err := newRound(input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, round); err != nil {
		return nil, fmt.Errorf("failed to create round %q: %w", round.Code, err)
	}
	return round, nil
}

func (s *roundService) CreateRounds(ctx context.Context, inputs []RoundInput) ([]*models.Round, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyBatch
	}
	rounds := make([]*models.Round, 0, len(inputs))
	for i, in := range inputs {
		round, err := newRound(in)
		if err != nil {
			return nil, atIndex(i, err)
		}
		rounds = append(rounds, round)
	}
	if err := s.repo.CreateMany(ctx, rounds); err != nil {
		return nil, fmt.Errorf("failed to create rounds: %w", err)
	}
	return rounds, nil
}

func (s *roundService) get(round *models.Round, err error, what string) (*models.Round, error) {
	if err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to get round by %s: %w", what, err)
	}
	return round, nil
}

func (s *roundService) GetRoundByID(ctx context.Context, id uuid.UUID) (*models.Round, error) {
	round, err := s.repo.GetByID(ctx, id)
	return s.get(round, err, "id "+id.String())
}

func (s *roundService) GetRoundByCode(ctx context.Context, code string) (*models.Round, error) {
	round, err := s.repo.GetByCode(ctx, code)
	return s.get(round, err, "code "+code)
}

func (s *roundService) GetAllRounds(ctx context.Context) ([]models.Round, error) {
	rounds, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all rounds: %w", err)
	}
	return rounds, nil
}

func (s *roundService) UpdateRound(ctx context.Context, id uuid.UUID, input UpdateRoundInput) (*models.Round, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	round, err := s.GetRoundByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		round.Name = strings.TrimSpace(*input.Name)
	}
	if input.Code != nil {
		round.Code = strings.TrimSpace(*input.Code)
	}
	if err := s.repo.Update(ctx, round); err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to update round %s: %w", id, err)
	}
	return round, nil
}

// DeleteRound удаляет раунд; у его матчей round_id становится NULL.
func (s *roundService) DeleteRound(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return ErrRoundNotFound
		}
		return fmt.Errorf("failed to delete round %s: %w", id, err)
	}
	return nil
}
