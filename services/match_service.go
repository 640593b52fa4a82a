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
	"golang.org/x/sync/errgroup"
)

type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	CreateMatches(ctx context.Context, inputs []CreateMatchInput) ([]*models.Match, error)
	GetMatchByID(ctx context.Context, id uuid.UUID) (*models.Match, error)
	GetAllMatches(ctx context.Context) ([]models.Match, error)
	GetMatchesByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.Match, error)
	UpdateResult(ctx context.Context, matchID uuid.UUID, input UpdateResultInput) (*models.Result, error)
	UpdateSchedule(ctx context.Context, matchID uuid.UUID, input UpdateScheduleInput) (*models.Schedule, error)
	DeleteMatch(ctx context.Context, id uuid.UUID) error
}

type CreateMatchInput struct {
	HomeTeamID    string `json:"home_team_id" validate:"required,uuid"`
	AwayTeamID    string `json:"away_team_id" validate:"required,uuid"`
	CompetitionID string `json:"competition_id" validate:"required,uuid"`
	RoundCode     string `json:"roundCode" validate:"required"`
	MatchDate     string `json:"match_date" validate:"required,datetime=2006-01-02"`
	StartTime     string `json:"start_time" validate:"required,clock"`
	FieldName     string `json:"field_name" validate:"required"`
}

type UpdateResultInput struct {
	HomeScore       *int `json:"home_score" validate:"omitempty,gte=0"`
	AwayScore       *int `json:"away_score" validate:"omitempty,gte=0"`
	HomeGlobalScore *int `json:"home_global_score" validate:"omitempty,gte=0"`
	AwayGlobalScore *int `json:"away_global_score" validate:"omitempty,gte=0"`
}

type UpdateScheduleInput struct {
	StateName *string `json:"state_name" validate:"omitempty,min=1"`
	FieldName *string `json:"field_name" validate:"omitempty,min=1"`
	StartTime *string `json:"start_time" validate:"omitempty,clock"`
}

type matchService struct {
	matches      repositories.MatchRepository
	teams        repositories.TeamRepository
	rounds       repositories.RoundRepository
	fields       repositories.FieldRepository
	states       repositories.StateRepository
	competitions repositories.CompetitionRepository
	resolver     *ReferenceResolver
	txManager    repositories.TxManager
	publisher    EventPublisher
	log          zerolog.Logger
}

type MatchServiceDeps struct {
	Matches      repositories.MatchRepository
	Teams        repositories.TeamRepository
	Rounds       repositories.RoundRepository
	Fields       repositories.FieldRepository
	States       repositories.StateRepository
	Competitions repositories.CompetitionRepository
	Resolver     *ReferenceResolver
	TxManager    repositories.TxManager
	Publisher    EventPublisher
}

func NewMatchService(deps MatchServiceDeps, logger zerolog.Logger) MatchService {
	return &matchService{
		matches:      deps.Matches,
		teams:        deps.Teams,
		rounds:       deps.Rounds,
		fields:       deps.Fields,
		states:       deps.States,
		competitions: deps.Competitions,
		resolver:     deps.Resolver,
		txManager:    deps.TxManager,
		publisher:    publisherOrNoop(deps.Publisher),
		log:          logger.With().Str("component", "match_service").Logger(),
	}
}

// normalize проверяет наличие полей и форматы даты/времени. В базу не ходит.
func (in CreateMatchInput) normalize() (matchSpec, error) {
	if err := validateStruct(in); err != nil {
		return matchSpec{}, err
	}
	date, err := parseDate(in.MatchDate)
	if err != nil {
		return matchSpec{}, newValidationError(FieldError{Field: "match_date", Message: err.Error()})
	}
	hour, minute, err := parseClock(in.StartTime)
	if err != nil {
		return matchSpec{}, newValidationError(FieldError{Field: "start_time", Message: err.Error()})
	}
	return matchSpec{
		HomeTeamID:    uuid.MustParse(in.HomeTeamID),
		AwayTeamID:    uuid.MustParse(in.AwayTeamID),
		CompetitionID: uuid.MustParse(in.CompetitionID),
		RoundCode:     strings.TrimSpace(in.RoundCode),
		FieldName:     strings.TrimSpace(in.FieldName),
		Date:          date,
		Hour:          hour,
		Minute:        minute,
	}, nil
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	spec, err := input.normalize()
	if err != nil {
		return nil, err
	}

	var match *models.Match
	err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		resolved, err := s.lookupReferences(txCtx, spec)
		if err != nil {
			return err
		}
		match, err = s.insertMatch(txCtx, resolved)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("match_id", match.ID.String()).Str("round", spec.RoundCode).Msg("match created")
	return match, nil
}

// lookupReferences параллельно ищет все ссылки матча в текущей транзакции.
// Промахи проверяются после завершения всех запросов в фиксированном порядке.
func (s *matchService) lookupReferences(ctx context.Context, spec matchSpec) (resolvedMatch, error) {
	var (
		round       *models.Round
		pending     *models.State
		field       *models.Field
		home, away  *models.Team
		competition *models.Competition
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		round, err = s.rounds.GetByCode(gctx, spec.RoundCode)
		return ignoreNotFound(err)
	})
	g.Go(func() (err error) {
		pending, err = s.states.GetByName(gctx, models.StatePending)
		return ignoreNotFound(err)
	})
	g.Go(func() (err error) {
		field, err = s.fields.GetByName(gctx, spec.FieldName)
		return ignoreNotFound(err)
	})
	g.Go(func() (err error) {
		home, err = s.teams.GetByID(gctx, spec.HomeTeamID)
		return ignoreNotFound(err)
	})
	g.Go(func() (err error) {
		away, err = s.teams.GetByID(gctx, spec.AwayTeamID)
		return ignoreNotFound(err)
	})
	g.Go(func() (err error) {
		competition, err = s.competitions.GetByID(gctx, spec.CompetitionID)
		return ignoreNotFound(err)
	})
	if err := g.Wait(); err != nil {
		return resolvedMatch{}, fmt.Errorf("failed to look up match references: %w", err)
	}

	switch {
	case round == nil:
		return resolvedMatch{}, missingRef("round", spec.RoundCode)
	case pending == nil:
		return resolvedMatch{}, missingRef("state", models.StatePending)
	case field == nil:
		return resolvedMatch{}, missingRef("field", spec.FieldName)
	case home == nil:
		return resolvedMatch{}, missingRef("home team", spec.HomeTeamID.String())
	case away == nil:
		return resolvedMatch{}, missingRef("away team", spec.AwayTeamID.String())
	case competition == nil:
		return resolvedMatch{}, missingRef("competition", spec.CompetitionID.String())
	}
	return resolvedMatch{matchSpec: spec, RoundID: round.ID, FieldID: field.ID, StateID: pending.ID}, nil
}

// insertMatch пишет матч, затем параллельно его расписание ("Pendiente") и результат 0/0/0/0.
func (s *matchService) insertMatch(ctx context.Context, rm resolvedMatch) (*models.Match, error) {
	roundID, fieldID := rm.RoundID, rm.FieldID
	match := &models.Match{
		HomeTeamID:    rm.HomeTeamID,
		AwayTeamID:    rm.AwayTeamID,
		CompetitionID: rm.CompetitionID,
		RoundID:       &roundID,
		MatchDate:     rm.matchDate(),
	}
	if err := s.matches.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	schedule := models.Schedule{MatchID: match.ID, FieldID: &fieldID, StateID: rm.StateID, StartTime: rm.startTime()}
	result := models.Result{MatchID: match.ID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.matches.CreateSchedule(gctx, &schedule); err != nil {
			return fmt.Errorf("failed to create schedule: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.matches.CreateResult(gctx, &result); err != nil {
			return fmt.Errorf("failed to create result: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	match.Schedules = []models.Schedule{schedule}
	match.Results = []models.Result{result}
	return match, nil
}

// CreateMatches проверяет весь пакет до первого запроса в базу, затем разрешает ссылки
// пакетно и вставляет все матчи в одной транзакции: либо все, либо ни одного.
func (s *matchService) CreateMatches(ctx context.Context, inputs []CreateMatchInput) ([]*models.Match, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyBatch
	}
	specs := make([]matchSpec, 0, len(inputs))
	for i, in := range inputs {
		spec, err := in.normalize()
		if err != nil {
			return nil, atIndex(i, err)
		}
		specs = append(specs, spec)
	}

	matches := make([]*models.Match, 0, len(specs))
	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		resolved, err := s.resolver.ResolveMatches(txCtx, specs)
		if err != nil {
			return err
		}
		for i, rm := range resolved {
			m, err := s.insertMatch(txCtx, rm)
			if err != nil {
				return atIndex(i, err)
			}
			matches = append(matches, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("count", len(matches)).Msg("matches created")
	return matches, nil
}

func (s *matchService) GetMatchByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	match, err := s.matches.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match by id %s: %w", id, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		match.Schedules, err = s.matches.ListSchedules(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		match.Results, err = s.matches.ListResults(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load match %s details: %w", id, err)
	}
	return match, nil
}

func (s *matchService) GetAllMatches(ctx context.Context) ([]models.Match, error) {
	matches, err := s.matches.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all matches: %w", err)
	}
	return matches, nil
}

func (s *matchService) GetMatchesByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.Match, error) {
	matches, err := s.matches.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches of competition %s: %w", competitionID, err)
	}
	return matches, nil
}

func (s *matchService) UpdateResult(ctx context.Context, matchID uuid.UUID, input UpdateResultInput) (*models.Result, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	results, err := s.matches.ListResults(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load result of match %s: %w", matchID, err)
	}
	if len(results) == 0 {
		return nil, ErrResultNotFound
	}

	result := results[0]
	if input.HomeScore != nil {
		result.HomeScore = *input.HomeScore
	}
	if input.AwayScore != nil {
		result.AwayScore = *input.AwayScore
	}
	if input.HomeGlobalScore != nil {
		result.HomeGlobalScore = *input.HomeGlobalScore
	}
	if input.AwayGlobalScore != nil {
		result.AwayGlobalScore = *input.AwayGlobalScore
	}

	if err := s.matches.UpdateResult(ctx, &result); err != nil {
		if errors.Is(err, repositories.ErrResultNotFound) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to update result of match %s: %w", matchID, err)
	}
	s.publisher.PublishMatchEvent(matchID, EventResultUpdated, result)
	return &result, nil
}

// UpdateSchedule меняет состояние и поле по имени и время начала.
func (s *matchService) UpdateSchedule(ctx context.Context, matchID uuid.UUID, input UpdateScheduleInput) (*models.Schedule, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	schedules, err := s.matches.ListSchedules(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule of match %s: %w", matchID, err)
	}
	if len(schedules) == 0 {
		return nil, ErrScheduleNotFound
	}
	schedule := schedules[0]

	if input.StateName != nil {
		name := strings.TrimSpace(*input.StateName)
		state, err := s.states.GetByName(ctx, name)
		if err != nil {
			if errors.Is(err, repositories.ErrStateNotFound) {
				return nil, missingRef("state", name)
			}
			return nil, fmt.Errorf("failed to get state %q: %w", name, err)
		}
		schedule.StateID = state.ID
	}
	if input.FieldName != nil {
		name := strings.TrimSpace(*input.FieldName)
		field, err := s.fields.GetByName(ctx, name)
		if err != nil {
			if errors.Is(err, repositories.ErrFieldNotFound) {
				return nil, missingRef("field", name)
			}
			return nil, fmt.Errorf("failed to get field %q: %w", name, err)
		}
		schedule.FieldID = &field.ID
	}
	if input.StartTime != nil {
		hour, minute, _ := parseClock(*input.StartTime)
		schedule.StartTime = formatClock(hour, minute)
	}

	if err := s.matches.UpdateSchedule(ctx, &schedule); err != nil {
		if errors.Is(err, repositories.ErrScheduleNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to update schedule of match %s: %w", matchID, err)
	}
	s.publisher.PublishMatchEvent(matchID, EventScheduleUpdated, schedule)
	return &schedule, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, id uuid.UUID) error {
	if err := s.matches.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to delete match %s: %w", id, err)
	}
	s.log.Info().Str("match_id", id.String()).Msg("match deleted")
	return nil
}

func ignoreNotFound(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	return err
}
