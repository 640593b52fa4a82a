package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/Dosada05/tournament-admin/repositories"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ReferenceResolver переводит внешние ключи пакетных запросов (имя команды, код раунда,
// имя поля) в первичные ключи. Каждый вид ключа разрешается одним запросом на весь пакет.
type ReferenceResolver struct {
	teams        repositories.TeamRepository
	rounds       repositories.RoundRepository
	fields       repositories.FieldRepository
	competitions repositories.CompetitionRepository
	states       repositories.StateRepository
}

func NewReferenceResolver(
	teams repositories.TeamRepository,
	rounds repositories.RoundRepository,
	fields repositories.FieldRepository,
	competitions repositories.CompetitionRepository,
	states repositories.StateRepository,
) *ReferenceResolver {
	return &ReferenceResolver{teams: teams, rounds: rounds, fields: fields, competitions: competitions, states: states}
}

// TeamIDsByName возвращает карту имя -> id для всех найденных имён.
func (r *ReferenceResolver) TeamIDsByName(ctx context.Context, names []string) (map[string]uuid.UUID, error) {
	ids, err := r.teams.FindIDsByNames(ctx, distinct(names))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve team names: %w", err)
	}
	return ids, nil
}

// matchSpec - провалидированный элемент запроса на создание матча.
type matchSpec struct {
	HomeTeamID    uuid.UUID
	AwayTeamID    uuid.UUID
	CompetitionID uuid.UUID
	RoundCode     string
	FieldName     string
	Date          time.Time
	Hour, Minute  int
}

func (m matchSpec) matchDate() models.LocalDateTime {
	return models.NewLocalDateTime(m.Date, m.Hour, m.Minute)
}

func (m matchSpec) startTime() string {
	return formatClock(m.Hour, m.Minute)
}

type resolvedMatch struct {
	matchSpec
	RoundID uuid.UUID
	FieldID uuid.UUID
	StateID uuid.UUID
}

// ResolveMatches пакетно разрешает ссылки всех матчей и проверяет их по порядку элементов.
// Внутри элемента порядок проверок фиксирован: раунд, состояние "Pendiente", поле,
// команда хозяев, команда гостей, соревнование.
func (r *ReferenceResolver) ResolveMatches(ctx context.Context, specs []matchSpec) ([]resolvedMatch, error) {
	codes := make([]string, 0, len(specs))
	fieldNames := make([]string, 0, len(specs))
	teamIDs := make([]uuid.UUID, 0, len(specs)*2)
	competitionIDs := make([]uuid.UUID, 0, len(specs))
	for _, s := range specs {
		codes = append(codes, s.RoundCode)
		fieldNames = append(fieldNames, s.FieldName)
		teamIDs = append(teamIDs, s.HomeTeamID, s.AwayTeamID)
		competitionIDs = append(competitionIDs, s.CompetitionID)
	}

	var (
		roundIDs     map[string]uuid.UUID
		fieldIDs     map[string]uuid.UUID
		teamsFound   map[uuid.UUID]bool
		compsFound   map[uuid.UUID]bool
		pendingState *models.State
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		roundIDs, err = r.rounds.FindIDsByCodes(gctx, distinct(codes))
		return err
	})
	g.Go(func() error {
		st, err := r.states.GetByName(gctx, models.StatePending)
		if err != nil && !errors.Is(err, repositories.ErrStateNotFound) {
			return err
		}
		pendingState = st
		return nil
	})
	g.Go(func() (err error) {
		fieldIDs, err = r.fields.FindIDsByNames(gctx, distinct(fieldNames))
		return err
	})
	g.Go(func() (err error) {
		teamsFound, err = r.teams.FindExistingIDs(gctx, distinctIDs(teamIDs))
		return err
	})
	g.Go(func() (err error) {
		compsFound, err = r.competitions.FindExistingIDs(gctx, distinctIDs(competitionIDs))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to resolve match references: %w", err)
	}

	out := make([]resolvedMatch, 0, len(specs))
	for i, s := range specs {
		roundID, ok := roundIDs[s.RoundCode]
		if !ok {
			return nil, atIndex(i, missingRef("round", s.RoundCode))
		}
		if pendingState == nil {
			return nil, atIndex(i, missingRef("state", models.StatePending))
		}
		fieldID, ok := fieldIDs[s.FieldName]
		if !ok {
			return nil, atIndex(i, missingRef("field", s.FieldName))
		}
		if !teamsFound[s.HomeTeamID] {
			return nil, atIndex(i, missingRef("home team", s.HomeTeamID.String()))
		}
		if !teamsFound[s.AwayTeamID] {
			return nil, atIndex(i, missingRef("away team", s.AwayTeamID.String()))
		}
		if !compsFound[s.CompetitionID] {
			return nil, atIndex(i, missingRef("competition", s.CompetitionID.String()))
		}
		out = append(out, resolvedMatch{matchSpec: s, RoundID: roundID, FieldID: fieldID, StateID: pendingState.ID})
	}
	return out, nil
}

func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func distinctIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
