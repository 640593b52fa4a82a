package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/Dosada05/tournament-admin/repositories"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type CompetitionService interface {
	CreateCompetition(ctx context.Context, input CreateCompetitionInput) (*models.Competition, error)
	GetCompetitionByID(ctx context.Context, id uuid.UUID) (*models.Competition, error)
	GetAllCompetitions(ctx context.Context) ([]models.Competition, error)
	UpdateCompetition(ctx context.Context, id uuid.UUID, input UpdateCompetitionInput) (*models.Competition, error)
	DeleteCompetition(ctx context.Context, id uuid.UUID) error
}

type CreateCompetitionInput struct {
	Name        string  `json:"name" validate:"required,max=150"`
	Description *string `json:"description"`
	Organizer   *string `json:"organizer" validate:"omitempty,max=150"`
	StartDate   string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Logo        *string `json:"logo"`
	SecondLogo  *string `json:"second_logo"`
	Active      *bool   `json:"active"`
}

type UpdateCompetitionInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=150"`
	Description *string `json:"description"`
	Organizer   *string `json:"organizer" validate:"omitempty,max=150"`
	StartDate   *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Logo        *string `json:"logo"`
	SecondLogo  *string `json:"second_logo"`
	Active      *bool   `json:"active"`
}

type competitionService struct {
	repo repositories.CompetitionRepository
	log  zerolog.Logger
}

func NewCompetitionService(repo repositories.CompetitionRepository, logger zerolog.Logger) CompetitionService {
	return &competitionService{repo: repo, log: logger.With().Str("component", "competition_service").Logger()}
}

func validateCompetitionDates(c *models.Competition) error {
	if !c.EndDate.After(c.StartDate.Time) {
		return fmt.Errorf("%w: start %s, end %s", ErrInvalidDateRange,
			c.StartDate.Format(models.DateLayout), c.EndDate.Format(models.DateLayout))
	}
	return nil
}

func (s *competitionService) CreateCompetition(ctx context.Context, input CreateCompetitionInput) (*models.Competition, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	start, _ := parseDate(input.StartDate)
	end, _ := parseDate(input.EndDate)

	c := &models.Competition{
		Name:        strings.TrimSpace(input.Name),
		Description: trimmedPtr(input.Description),
		Organizer:   trimmedPtr(input.Organizer),
		StartDate:   models.Date{Time: start},
		EndDate:     models.Date{Time: end},
		Logo:        trimmedPtr(input.Logo),
		SecondLogo:  trimmedPtr(input.SecondLogo),
		Active:      input.Active == nil || *input.Active,
	}
	if c.Name == "" {
		return nil, newValidationError(FieldError{Field: "name", Message: "is required"})
	}
	if err := validateCompetitionDates(c); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create competition %q: %w", c.Name, err)
	}
	s.log.Info().Str("competition_id", c.ID.String()).Msg("competition created")
	return c, nil
}

func (s *competitionService) GetCompetitionByID(ctx context.Context, id uuid.UUID) (*models.Competition, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to get competition by id %s: %w", id, err)
	}
	return c, nil
}

func (s *competitionService) GetAllCompetitions(ctx context.Context) ([]models.Competition, error) {
	list, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all competitions: %w", err)
	}
	return list, nil
}

func (s *competitionService) UpdateCompetition(ctx context.Context, id uuid.UUID, input UpdateCompetitionInput) (*models.Competition, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	c, err := s.GetCompetitionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		c.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		c.Description = trimmedPtr(input.Description)
	}
	if input.Organizer != nil {
		c.Organizer = trimmedPtr(input.Organizer)
	}
	if input.StartDate != nil {
		d, _ := parseDate(*input.StartDate)
		c.StartDate = models.Date{Time: d}
	}
	if input.EndDate != nil {
		d, _ := parseDate(*input.EndDate)
		c.EndDate = models.Date{Time: d}
	}
	if input.Logo != nil {
		c.Logo = trimmedPtr(input.Logo)
	}
	if input.SecondLogo != nil {
		c.SecondLogo = trimmedPtr(input.SecondLogo)
	}
	if input.Active != nil {
		c.Active = *input.Active
	}
	if err := validateCompetitionDates(c); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to update competition %s: %w", id, err)
	}
	return c, nil
}

func (s *competitionService) DeleteCompetition(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return ErrCompetitionNotFound
		}
		return fmt.Errorf("failed to delete competition %s: %w", id, err)
	}
	return nil
}
