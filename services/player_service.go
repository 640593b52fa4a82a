package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/Dosada05/tournament-admin/repositories"
	"github.com/Dosada05/tournament-admin/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	CreatePlayers(ctx context.Context, inputs []BulkPlayerInput) ([]*models.Player, error)
	GetPlayerByID(ctx context.Context, id uuid.UUID) (*models.Player, error)
	GetAllPlayers(ctx context.Context) ([]models.Player, error)
	GetPlayersByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Player, error)
	UpdatePlayer(ctx context.Context, id uuid.UUID, input UpdatePlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, id uuid.UUID) error
}

type playerFields struct {
	Name      string  `json:"name" validate:"required,max=150"`
	Document  *string `json:"document" validate:"omitempty,max=50"`
	Birthdate *string `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	Number    *string `json:"number" validate:"omitempty,max=10"`
	Photo     *string `json:"photo"`
	Active    *bool   `json:"active"`
}

type CreatePlayerInput struct {
	TeamID string `json:"team_id" validate:"required,uuid"`
	playerFields
}

// BulkPlayerInput ссылается на команду по имени, а не по id.
type BulkPlayerInput struct {
	TeamName string `json:"team_name" validate:"required"`
	playerFields
}

type UpdatePlayerInput struct {
	TeamID    *string `json:"team_id" validate:"omitempty,uuid"`
	Name      *string `json:"name" validate:"omitempty,min=1,max=150"`
	Document  *string `json:"document" validate:"omitempty,max=50"`
	Birthdate *string `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	Number    *string `json:"number" validate:"omitempty,max=10"`
	Photo     *string `json:"photo"`
	Active    *bool   `json:"active"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
	resolver   *ReferenceResolver
	txManager  repositories.TxManager
	defaults   *storage.DefaultImages
	log        zerolog.Logger
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	resolver *ReferenceResolver,
	txManager repositories.TxManager,
	defaults *storage.DefaultImages,
	logger zerolog.Logger,
) PlayerService {
	if defaults == nil {
		defaults = &storage.DefaultImages{}
	}
	return &playerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		resolver:   resolver,
		txManager:  txManager,
		defaults:   defaults,
		log:        logger.With().Str("component", "player_service").Logger(),
	}
}

// build собирает модель игрока; defaultPhoto подставляется, если фото не передано.
func (f playerFields) build(teamID uuid.UUID, defaultPhoto string) (*models.Player, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return nil, newValidationError(FieldError{Field: "name", Message: "is required"})
	}
	p := &models.Player{
		TeamID:   teamID,
		Name:     name,
		Document: trimmedPtr(f.Document),
		Number:   trimmedPtr(f.Number),
		Photo:    trimmedPtr(f.Photo),
		Active:   f.Active == nil || *f.Active,
	}
	if f.Birthdate != nil && *f.Birthdate != "" {
		d, err := parseDate(*f.Birthdate)
		if err != nil {
			return nil, newValidationError(FieldError{Field: "birthdate", Message: err.Error()})
		}
		p.Birthdate = &models.Date{Time: d}
	}
	if p.Photo == nil && defaultPhoto != "" {
		photo := defaultPhoto
		p.Photo = &photo
	}
	return p, nil
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	teamID := uuid.MustParse(input.TeamID)
	player, err := input.build(teamID, s.defaults.PlayerPhoto)
	if err != nil {
		return nil, err
	}

	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, missingRef("team", input.TeamID)
		}
		return nil, fmt.Errorf("failed to check team %s: %w", teamID, err)
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player %q: %w", player.Name, err)
	}
	return player, nil
}

// CreatePlayers сначала проверяет и разрешает все строки, затем вставляет их в одной
// транзакции. Первая неразрешённая команда (в порядке входа) прерывает весь пакет.
func (s *playerService) CreatePlayers(ctx context.Context, inputs []BulkPlayerInput) ([]*models.Player, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyBatch
	}
	names := make([]string, 0, len(inputs))
	for i, in := range inputs {
		if err := validateStruct(in); err != nil {
			return nil, atIndex(i, err)
		}
		names = append(names, strings.TrimSpace(in.TeamName))
	}

	teamIDs, err := s.resolver.TeamIDsByName(ctx, names)
	if err != nil {
		return nil, err
	}

	// Фото по умолчанию читается один раз на пакет
	defaultPhoto := s.defaults.PlayerPhoto
	players := make([]*models.Player, 0, len(inputs))
	for i, in := range inputs {
		teamID, ok := teamIDs[names[i]]
		if !ok {
			return nil, atIndex(i, missingRef("team", names[i]))
		}
		p, err := in.build(teamID, defaultPhoto)
		if err != nil {
			return nil, atIndex(i, err)
		}
		players = append(players, p)
	}

	err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		for i, p := range players {
			if err := s.playerRepo.Create(txCtx, p); err != nil {
				return atIndex(i, fmt.Errorf("failed to create player %q: %w", p.Name, err))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("count", len(players)).Msg("players created")
	return players, nil
}

func (s *playerService) GetPlayerByID(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player by id %s: %w", id, err)
	}
	return player, nil
}

func (s *playerService) GetAllPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all players: %w", err)
	}
	return players, nil
}

func (s *playerService) GetPlayersByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Player, error) {
	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players of team %s: %w", teamID, err)
	}
	sortPlayersByNumber(players)
	return players, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, id uuid.UUID, input UpdatePlayerInput) (*models.Player, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	player, err := s.GetPlayerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.TeamID != nil {
		player.TeamID = uuid.MustParse(*input.TeamID)
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, newValidationError(FieldError{Field: "name", Message: "must not be empty"})
		}
		player.Name = name
	}
	if input.Document != nil {
		player.Document = trimmedPtr(input.Document)
	}
	if input.Birthdate != nil {
		if *input.Birthdate == "" {
			player.Birthdate = nil
		} else {
			d, err := parseDate(*input.Birthdate)
			if err != nil {
				return nil, newValidationError(FieldError{Field: "birthdate", Message: err.Error()})
			}
			player.Birthdate = &models.Date{Time: d}
		}
	}
	if input.Number != nil {
		player.Number = trimmedPtr(input.Number)
	}
	if input.Photo != nil {
		player.Photo = trimmedPtr(input.Photo)
	}
	if input.Active != nil {
		player.Active = *input.Active
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerNotFound):
			return nil, ErrPlayerNotFound
		case errors.Is(err, repositories.ErrReference):
			return nil, missingRef("team", player.TeamID.String())
		default:
			return nil, fmt.Errorf("failed to update player %s: %w", id, err)
		}
	}
	return player, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to delete player %s: %w", id, err)
	}
	return nil
}
