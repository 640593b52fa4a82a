package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type matchFixture struct {
	svc         MatchService
	matches     *fakeMatchRepo
	tx          *fakeTxManager
	home, away  *models.Team
	competition *models.Competition
	round       *models.Round
	field       *models.Field
	pending     *models.State
}

func newMatchFixture(t *testing.T) *matchFixture {
	t.Helper()
	f := &matchFixture{
		home:        &models.Team{ID: uuid.New(), Name: "Atlético"},
		away:        &models.Team{ID: uuid.New(), Name: "Deportivo"},
		competition: &models.Competition{ID: uuid.New(), Name: "Liga"},
		round:       &models.Round{ID: uuid.New(), Name: "Final", Code: "F"},
		field:       &models.Field{ID: uuid.New(), Name: "Cancha 1"},
		pending:     &models.State{ID: uuid.New(), Name: models.StatePending},
		matches:     newFakeMatchRepo(),
		tx:          &fakeTxManager{},
	}
	teams := newFakeTeamRepo(f.home, f.away)
	rounds := newFakeRoundRepo(f.round)
	fields := newFakeFieldRepo(f.field)
	states := newFakeStateRepo(f.pending)
	competitions := newFakeCompetitionRepo(f.competition)
	f.svc = NewMatchService(MatchServiceDeps{
		Matches:      f.matches,
		Teams:        teams,
		Rounds:       rounds,
		Fields:       fields,
		States:       states,
		Competitions: competitions,
		Resolver:     NewReferenceResolver(teams, rounds, fields, competitions, states),
		TxManager:    f.tx,
	}, zerolog.Nop())
	return f
}

func (f *matchFixture) input() CreateMatchInput {
	return CreateMatchInput{
		HomeTeamID:    f.home.ID.String(),
		AwayTeamID:    f.away.ID.String(),
		CompetitionID: f.competition.ID.String(),
		RoundCode:     "F",
		MatchDate:     "2024-08-31",
		StartTime:     "12:30",
		FieldName:     "Cancha 1",
	}
}

func TestCreateMatch_CreatesPendingScheduleAndEmptyResult(t *testing.T) {
	f := newMatchFixture(t)

	match, err := f.svc.CreateMatch(context.Background(), f.input())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, match.ID)
	require.NotNil(t, match.RoundID)
	assert.Equal(t, f.round.ID, *match.RoundID)
	assert.Equal(t, "2024-08-31T12:30:00", match.MatchDate.Format(models.LocalDateTimeLayout))
	assert.Equal(t, 1, f.tx.calls)

	require.Len(t, match.Schedules, 1)
	sched := match.Schedules[0]
	assert.Equal(t, match.ID, sched.MatchID)
	assert.Equal(t, f.pending.ID, sched.StateID)
	require.NotNil(t, sched.FieldID)
	assert.Equal(t, f.field.ID, *sched.FieldID)
	assert.Equal(t, "12:30", sched.StartTime)

	require.Len(t, match.Results, 1)
	res := match.Results[0]
	assert.Equal(t, match.ID, res.MatchID)
	assert.Zero(t, res.HomeScore)
	assert.Zero(t, res.AwayScore)
	assert.Zero(t, res.HomeGlobalScore)
	assert.Zero(t, res.AwayGlobalScore)

	assert.Len(t, f.matches.schedules, 1)
	assert.Len(t, f.matches.results, 1)
}

func TestCreateMatch_DependentInsertFailure(t *testing.T) {
	tests := []struct {
		name  string
		patch func(r *fakeMatchRepo)
		msg   string
	}{
		{"schedule", func(r *fakeMatchRepo) { r.createScheduleErr = errors.New("connection reset") }, "failed to create schedule"},
		{"result", func(r *fakeMatchRepo) { r.createResultErr = errors.New("connection reset") }, "failed to create result"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMatchFixture(t)
			tt.patch(f.matches)

			match, err := f.svc.CreateMatch(context.Background(), f.input())
			require.Error(t, err)
			assert.Nil(t, match)
			assert.Contains(t, err.Error(), tt.msg)
			assert.NotErrorIs(t, err, ErrReferenceNotFound)
			assert.NotErrorIs(t, err, ErrValidationFailed)
			assert.Equal(t, 1, f.tx.calls)
		})
	}
}

func TestCreateMatch_MissingReferences(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *matchFixture, in *CreateMatchInput)
		entity string
	}{
		{
			name:   "unknown round",
			mutate: func(_ *matchFixture, in *CreateMatchInput) { in.RoundCode = "QF" },
			entity: "round",
		},
		{
			name:   "unknown field",
			mutate: func(_ *matchFixture, in *CreateMatchInput) { in.FieldName = "Cancha 9" },
			entity: "field",
		},
		{
			name:   "unknown home team",
			mutate: func(_ *matchFixture, in *CreateMatchInput) { in.HomeTeamID = uuid.NewString() },
			entity: "home team",
		},
		{
			name:   "unknown away team",
			mutate: func(_ *matchFixture, in *CreateMatchInput) { in.AwayTeamID = uuid.NewString() },
			entity: "away team",
		},
		{
			name:   "unknown competition",
			mutate: func(_ *matchFixture, in *CreateMatchInput) { in.CompetitionID = uuid.NewString() },
			entity: "competition",
		},
		{
			name: "round is reported before everything else",
			mutate: func(_ *matchFixture, in *CreateMatchInput) {
				in.RoundCode = "QF"
				in.FieldName = "Cancha 9"
				in.CompetitionID = uuid.NewString()
			},
			entity: "round",
		},
		{
			name: "field before teams",
			mutate: func(_ *matchFixture, in *CreateMatchInput) {
				in.FieldName = "Cancha 9"
				in.HomeTeamID = uuid.NewString()
			},
			entity: "field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMatchFixture(t)
			in := f.input()
			tt.mutate(f, &in)

			_, err := f.svc.CreateMatch(context.Background(), in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrReferenceNotFound)

			var refErr *ReferenceError
			require.True(t, errors.As(err, &refErr))
			assert.Equal(t, tt.entity, refErr.Entity)
			assert.Empty(t, f.matches.matches, "nothing must be written")
		})
	}
}

func TestCreateMatch_MissingPendingState(t *testing.T) {
	f := newMatchFixture(t)
	teams := newFakeTeamRepo(f.home, f.away)
	rounds := newFakeRoundRepo(f.round)
	fields := newFakeFieldRepo(f.field)
	states := newFakeStateRepo()
	competitions := newFakeCompetitionRepo(f.competition)
	svc := NewMatchService(MatchServiceDeps{
		Matches: f.matches, Teams: teams, Rounds: rounds, Fields: fields, States: states,
		Competitions: competitions,
		Resolver:     NewReferenceResolver(teams, rounds, fields, competitions, states),
		TxManager:    f.tx,
	}, zerolog.Nop())

	in := f.input()
	in.FieldName = "Cancha 9"
	_, err := svc.CreateMatch(context.Background(), in)

	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "state", refErr.Entity)
	assert.Equal(t, models.StatePending, refErr.Key)
}

func TestCreateMatch_Validation(t *testing.T) {
	tests := []struct {
		name  string
		patch func(in *CreateMatchInput)
		field string
	}{
		{"hour out of range", func(in *CreateMatchInput) { in.StartTime = "24:00" }, "start_time"},
		{"minute out of range", func(in *CreateMatchInput) { in.StartTime = "12:60" }, "start_time"},
		{"single digit hour", func(in *CreateMatchInput) { in.StartTime = "9:05" }, "start_time"},
		{"bad date", func(in *CreateMatchInput) { in.MatchDate = "31/08/2024" }, "match_date"},
		{"missing round code", func(in *CreateMatchInput) { in.RoundCode = "" }, "roundCode"},
		{"home team not uuid", func(in *CreateMatchInput) { in.HomeTeamID = "abc" }, "home_team_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMatchFixture(t)
			in := f.input()
			tt.patch(&in)

			_, err := f.svc.CreateMatch(context.Background(), in)
			require.ErrorIs(t, err, ErrValidationFailed)
			fields := FieldErrors(err)
			require.NotEmpty(t, fields)
			assert.Equal(t, tt.field, fields[0].Field)
			assert.Zero(t, f.tx.calls, "validation runs before the transaction")
		})
	}
}

func TestCreateMatches_ResolvesBatch(t *testing.T) {
	f := newMatchFixture(t)
	second := f.input()
	second.HomeTeamID, second.AwayTeamID = second.AwayTeamID, second.HomeTeamID
	second.StartTime = "18:00"

	matches, err := f.svc.CreateMatches(context.Background(), []CreateMatchInput{f.input(), second})
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, f.away.ID, matches[1].HomeTeamID)
	assert.Equal(t, "18:00", matches[1].Schedules[0].StartTime)
	assert.Len(t, f.matches.results, 2)
}

func TestCreateMatches_FailsWholeBatch(t *testing.T) {
	f := newMatchFixture(t)
	bad := f.input()
	bad.CompetitionID = uuid.NewString()

	matches, err := f.svc.CreateMatches(context.Background(), []CreateMatchInput{f.input(), bad})
	require.ErrorIs(t, err, ErrReferenceNotFound)
	assert.Nil(t, matches)
	assert.Contains(t, err.Error(), "item 1")
	assert.Empty(t, f.matches.matches)
}

func TestCreateMatches_ResultFailureAbortsBatch(t *testing.T) {
	f := newMatchFixture(t)
	f.matches.createResultErr = errors.New("connection reset")
	f.matches.resultErrAfter = 1

	matches, err := f.svc.CreateMatches(context.Background(), []CreateMatchInput{f.input(), f.input()})
	require.Error(t, err)
	assert.Nil(t, matches)
	assert.Contains(t, err.Error(), "item 1: failed to create result")
	assert.NotErrorIs(t, err, ErrReferenceNotFound)
	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, 2, f.matches.resultCalls)
}

func TestCreateMatches_Empty(t *testing.T) {
	f := newMatchFixture(t)
	_, err := f.svc.CreateMatches(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestGetMatchByID(t *testing.T) {
	f := newMatchFixture(t)
	created, err := f.svc.CreateMatch(context.Background(), f.input())
	require.NoError(t, err)

	got, err := f.svc.GetMatchByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, got.Schedules, 1)
	assert.Len(t, got.Results, 1)

	_, err = f.svc.GetMatchByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrMatchNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}
