package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/Dosada05/tournament-admin/repositories"
	"github.com/Dosada05/tournament-admin/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	CreateTeams(ctx context.Context, inputs []CreateTeamInput) ([]*models.Team, error)
	GetTeamByID(ctx context.Context, id uuid.UUID) (*models.Team, error)
	GetAllTeams(ctx context.Context) ([]models.Team, error)
	GetTeamWithPlayers(ctx context.Context, id uuid.UUID) (*models.Team, error)
	UpdateTeam(ctx context.Context, id uuid.UUID, input UpdateTeamInput) (*models.Team, error)
	DeleteTeam(ctx context.Context, id uuid.UUID) error
}

type CreateTeamInput struct {
	Name   string  `json:"name" validate:"required,max=100"`
	Coach  *string `json:"coach" validate:"omitempty,max=100"`
	Logo   *string `json:"logo"`
	Active *bool   `json:"active"`
}

type UpdateTeamInput struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=100"`
	Coach  *string `json:"coach" validate:"omitempty,max=100"`
	Logo   *string `json:"logo"`
	Active *bool   `json:"active"`
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	defaults   *storage.DefaultImages
	log        zerolog.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	defaults *storage.DefaultImages,
	logger zerolog.Logger,
) TeamService {
	if defaults == nil {
		defaults = &storage.DefaultImages{}
	}
	return &teamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		defaults:   defaults,
		log:        logger.With().Str("component", "team_service").Logger(),
	}
}

func (s *teamService) newTeam(input CreateTeamInput) (*models.Team, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, newValidationError(FieldError{Field: "name", Message: "is required"})
	}
	team := &models.Team{
		Name:   name,
		Coach:  trimmedPtr(input.Coach),
		Logo:   trimmedPtr(input.Logo),
		Active: input.Active == nil || *input.Active,
	}
	if team.Logo == nil {
		team.Logo = s.defaultLogo()
	}
	return team, nil
}

// defaultLogo выбирает случайный логотип из загруженных при старте.
func (s *teamService) defaultLogo() *string {
	if len(s.defaults.TeamLogos) == 0 {
		return nil
	}
	logo := s.defaults.TeamLogos[rand.IntN(len(s.defaults.TeamLogos))]
	return &logo
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	team, err := s.newTeam(input)
	if err != nil {
		return nil, err
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team %q: %w", team.Name, err)
	}
	s.log.Info().Str("team_id", team.ID.String()).Msg("team created")
	return team, nil
}

// CreateTeams вставляет пакет одним INSERT: либо все команды, либо ни одной.
func (s *teamService) CreateTeams(ctx context.Context, inputs []CreateTeamInput) ([]*models.Team, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyBatch
	}
	teams := make([]*models.Team, 0, len(inputs))
	for i, in := range inputs {
		team, err := s.newTeam(in)
		if err != nil {
			return nil, atIndex(i, err)
		}
		teams = append(teams, team)
	}
	if err := s.teamRepo.CreateMany(ctx, teams); err != nil {
		return nil, fmt.Errorf("failed to create teams: %w", err)
	}
	s.log.Info().Int("count", len(teams)).Msg("teams created")
	return teams, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team by id %s: %w", id, err)
	}
	return team, nil
}

func (s *teamService) GetAllTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all teams: %w", err)
	}
	return teams, nil
}

// GetTeamWithPlayers возвращает команду с игроками, отсортированными по номеру как по числу.
func (s *teamService) GetTeamWithPlayers(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	team, err := s.GetTeamByID(ctx, id)
	if err != nil {
		return nil, err
	}
	players, err := s.playerRepo.ListByTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list players of team %s: %w", id, err)
	}
	sortPlayersByNumber(players)
	team.Players = players
	return team, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id uuid.UUID, input UpdateTeamInput) (*models.Team, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	team, err := s.GetTeamByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, newValidationError(FieldError{Field: "name", Message: "must not be empty"})
		}
		team.Name = name
	}
	if input.Coach != nil {
		team.Coach = trimmedPtr(input.Coach)
	}
	if input.Logo != nil {
		team.Logo = trimmedPtr(input.Logo)
	}
	if input.Active != nil {
		team.Active = *input.Active
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update team %s: %w", id, err)
	}
	return team, nil
}

// DeleteTeam удаляет команду; её игроки и матчи уходят каскадом.
func (s *teamService) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete team %s: %w", id, err)
	}
	s.log.Info().Str("team_id", id.String()).Msg("team deleted")
	return nil
}

func sortPlayersByNumber(players []models.Player) {
	sort.SliceStable(players, func(i, j int) bool {
		return squadNumberLess(players[i].Number, players[j].Number)
	})
}
