package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/Dosada05/tournament-admin/repositories"
	"github.com/google/uuid"
)

type GoalService interface {
	CreateGoal(ctx context.Context, input GoalInput) (*models.Goal, error)
	CreateGoals(ctx context.Context, inputs []GoalInput) ([]*models.Goal, error)
	GetGoalByID(ctx context.Context, id uuid.UUID) (*models.Goal, error)
	GetAllGoals(ctx context.Context) ([]models.Goal, error)
	GetGoalsByMatch(ctx context.Context, matchID uuid.UUID) ([]models.Goal, error)
	DeleteGoal(ctx context.Context, id uuid.UUID) error
}

// GoalInput - один гол; несколько голов игрока в матче это несколько строк.
type GoalInput struct {
	MatchID  string `json:"match_id" validate:"required,uuid"`
	PlayerID string `json:"player_id" validate:"required,uuid"`
}

type goalService struct {
	repo      repositories.GoalRepository
	publisher EventPublisher
}

func NewGoalService(repo repositories.GoalRepository, publisher EventPublisher) GoalService {
	return &goalService{repo: repo, publisher: publisherOrNoop(publisher)}
}

func newGoal(input GoalInput) (*models.Goal, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	return &models.Goal{MatchID: uuid.MustParse(input.MatchID), PlayerID: uuid.MustParse(input.PlayerID)}, nil
}

// goalWriteError переводит нарушение внешнего ключа в понятную ссылочную ошибку.
func goalWriteError(g *models.Goal, err error) error {
	if errors.Is(err, repositories.ErrReference) {
		return missingRef("match or player", g.MatchID.String()+"/"+g.PlayerID.String())
	}
	return fmt.Errorf("failed to create goal: %w", err)
}

func (s *goalService) CreateGoal(ctx context.Context, input GoalInput) (*models.Goal, error) {
	goal, err := newGoal(input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, goalWriteError(goal, err)
	}
	s.publisher.PublishMatchEvent(goal.MatchID, EventGoalAdded, goal)
	return goal, nil
}

func (s *goalService) CreateGoals(ctx context.Context, inputs []GoalInput) ([]*models.Goal, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyBatch
	}
	goals := make([]*models.Goal, 0, len(inputs))
	for i, in := range inputs {
		goal, err := newGoal(in)
		if err != nil {
			return nil, atIndex(i, err)
		}
		goals = append(goals, goal)
	}
	if err := s.repo.CreateMany(ctx, goals); err != nil {
		if errors.Is(err, repositories.ErrReference) {
			return nil, fmt.Errorf("%w: %w", ErrReferenceNotFound, err)
		}
		return nil, fmt.Errorf("failed to create goals: %w", err)
	}
	for _, g := range goals {
		s.publisher.PublishMatchEvent(g.MatchID, EventGoalAdded, g)
	}
	return goals, nil
}

func (s *goalService) GetGoalByID(ctx context.Context, id uuid.UUID) (*models.Goal, error) {
	goal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGoalNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to get goal by id %s: %w", id, err)
	}
	return goal, nil
}

func (s *goalService) GetAllGoals(ctx context.Context) ([]models.Goal, error) {
	goals, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all goals: %w", err)
	}
	return goals, nil
}

func (s *goalService) GetGoalsByMatch(ctx context.Context, matchID uuid.UUID) ([]models.Goal, error) {
	goals, err := s.repo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals of match %s: %w", matchID, err)
	}
	return goals, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrGoalNotFound) {
			return ErrGoalNotFound
		}
		return fmt.Errorf("failed to delete goal %s: %w", id, err)
	}
	return nil
}
