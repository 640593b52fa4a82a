package repositories_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/Dosada05/tournament-admin/db"
	"github.com/Dosada05/tournament-admin/models"
	"github.com/Dosada05/tournament-admin/repositories"
	"github.com/Dosada05/tournament-admin/services"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Контрактные тесты идут против настоящего postgres:
// CONTRACT_TESTS=1 DATABASE_URL=postgres://... go test ./repositories/...
var (
	testDB *sql.DB
	skippy bool
)

func TestMain(m *testing.M) {
	if os.Getenv("CONTRACT_TESTS") != "1" || os.Getenv("DATABASE_URL") == "" {
		skippy = true
		os.Exit(m.Run())
	}

	conn, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = conn.PingContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ping db: %v\n", err)
		os.Exit(1)
	}
	if err := db.RunMigrations(conn); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
	testDB = conn

	code := m.Run()
	_ = conn.Close()
	os.Exit(code)
}

func skipIfNeeded(t *testing.T) {
	t.Helper()
	if skippy {
		t.Skip("contract tests skipped; set CONTRACT_TESTS=1 and DATABASE_URL")
	}
}

type world struct {
	teams        repositories.TeamRepository
	players      repositories.PlayerRepository
	rounds       repositories.RoundRepository
	fields       repositories.FieldRepository
	states       repositories.StateRepository
	competitions repositories.CompetitionRepository
	matches      repositories.MatchRepository
	goals        repositories.GoalRepository
	types        repositories.SanctionTypeRepository
	sanctions    repositories.SanctionRepository
	tx           repositories.TxManager
}

func newWorld() world {
	return world{
		teams:        repositories.NewPostgresTeamRepository(testDB),
		players:      repositories.NewPostgresPlayerRepository(testDB),
		rounds:       repositories.NewPostgresRoundRepository(testDB),
		fields:       repositories.NewPostgresFieldRepository(testDB),
		states:       repositories.NewPostgresStateRepository(testDB),
		competitions: repositories.NewPostgresCompetitionRepository(testDB),
		matches:      repositories.NewPostgresMatchRepository(testDB),
		goals:        repositories.NewPostgresGoalRepository(testDB),
		types:        repositories.NewPostgresSanctionTypeRepository(testDB),
		sanctions:    repositories.NewPostgresSanctionRepository(testDB),
		tx:           repositories.NewTxManager(testDB),
	}
}

func (w world) matchService() services.MatchService {
	return services.NewMatchService(services.MatchServiceDeps{
		Matches:      w.matches,
		Teams:        w.teams,
		Rounds:       w.rounds,
		Fields:       w.fields,
		States:       w.states,
		Competitions: w.competitions,
		Resolver:     services.NewReferenceResolver(w.teams, w.rounds, w.fields, w.competitions, w.states),
		TxManager:    w.tx,
	}, zerolog.Nop())
}

// fixture - уникальные по суффиксу команды, раунд, поле и соревнование.
type fixture struct {
	home, away  *models.Team
	round       *models.Round
	field       *models.Field
	competition *models.Competition
}

func seed(t *testing.T, w world) fixture {
	t.Helper()
	ctx := context.Background()
	suffix := uuid.NewString()[:8]

	f := fixture{
		home:  &models.Team{Name: "Local " + suffix, Active: true},
		away:  &models.Team{Name: "Visita " + suffix, Active: true},
		round: &models.Round{Name: "Final " + suffix, Code: "F" + suffix},
		field: &models.Field{Name: "Cancha " + suffix},
		competition: &models.Competition{
			Name:      "Liga " + suffix,
			StartDate: models.Date{Time: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)},
			EndDate:   models.Date{Time: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)},
			Active:    true,
		},
	}
	require.NoError(t, w.teams.Create(ctx, f.home))
	require.NoError(t, w.teams.Create(ctx, f.away))
	require.NoError(t, w.rounds.Create(ctx, f.round))
	require.NoError(t, w.fields.Create(ctx, f.field))
	require.NoError(t, w.competitions.Create(ctx, f.competition))
	return f
}

func (f fixture) input() services.CreateMatchInput {
	return services.CreateMatchInput{
		HomeTeamID:    f.home.ID.String(),
		AwayTeamID:    f.away.ID.String(),
		CompetitionID: f.competition.ID.String(),
		RoundCode:     f.round.Code,
		MatchDate:     "2024-08-31",
		StartTime:     "12:30",
		FieldName:     f.field.Name,
	}
}

func countRows(t *testing.T, query string, args ...interface{}) int {
	t.Helper()
	var n int
	require.NoError(t, testDB.QueryRowContext(context.Background(), query, args...).Scan(&n))
	return n
}

func TestContract_CreateMatchWritesScheduleAndResult(t *testing.T) {
	skipIfNeeded(t)
	w := newWorld()
	f := seed(t, w)

	match, err := w.matchService().CreateMatch(context.Background(), f.input())
	require.NoError(t, err)

	assert.Equal(t, 1, countRows(t, `SELECT COUNT(*) FROM matches WHERE competition_id = $1`, f.competition.ID))

	var state, startTime string
	require.NoError(t, testDB.QueryRowContext(context.Background(), `
		SELECT st.name, s.start_time
		FROM schedules s JOIN states st ON st.id = s.state_id
		WHERE s.match_id = $1`, match.ID).Scan(&state, &startTime))
	assert.Equal(t, models.StatePending, state)
	assert.Equal(t, "12:30", startTime)
	assert.Equal(t, 1, countRows(t, `SELECT COUNT(*) FROM schedules WHERE match_id = $1`, match.ID))

	var home, away, homeGlobal, awayGlobal int
	require.NoError(t, testDB.QueryRowContext(context.Background(), `
		SELECT home_score, away_score, home_global_score, away_global_score
		FROM results WHERE match_id = $1`, match.ID).Scan(&home, &away, &homeGlobal, &awayGlobal))
	assert.Zero(t, home+away+homeGlobal+awayGlobal)

	got, err := w.matches.GetByID(context.Background(), match.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-08-31T12:30:00", got.MatchDate.Format(models.LocalDateTimeLayout))
}

func TestContract_UnknownRoundPersistsNothing(t *testing.T) {
	skipIfNeeded(t)
	w := newWorld()
	f := seed(t, w)
	in := f.input()
	in.RoundCode = "missing-" + uuid.NewString()[:8]

	_, err := w.matchService().CreateMatch(context.Background(), in)
	require.ErrorIs(t, err, services.ErrReferenceNotFound)
	assert.Zero(t, countRows(t, `SELECT COUNT(*) FROM matches WHERE competition_id = $1`, f.competition.ID))
}

func TestContract_BatchRollsBackOnMissingReference(t *testing.T) {
	skipIfNeeded(t)
	w := newWorld()
	f := seed(t, w)
	bad := f.input()
	bad.FieldName = "missing-" + uuid.NewString()[:8]

	_, err := w.matchService().CreateMatches(context.Background(), []services.CreateMatchInput{f.input(), bad})
	require.ErrorIs(t, err, services.ErrReferenceNotFound)
	assert.Zero(t, countRows(t, `SELECT COUNT(*) FROM matches WHERE competition_id = $1`, f.competition.ID))
}

func TestContract_CountByPlayer(t *testing.T) {
	skipIfNeeded(t)
	w := newWorld()
	f := seed(t, w)
	ctx := context.Background()

	match, err := w.matchService().CreateMatch(ctx, f.input())
	require.NoError(t, err)

	number := "9"
	pipe := &models.Player{TeamID: f.home.ID, Name: "Pipe", Number: &number, Active: true}
	beto := &models.Player{TeamID: f.away.ID, Name: "Beto", Active: true}
	require.NoError(t, w.players.Create(ctx, pipe))
	require.NoError(t, w.players.Create(ctx, beto))
	for _, p := range []*models.Player{pipe, pipe, pipe, beto} {
		require.NoError(t, w.goals.Create(ctx, &models.Goal{MatchID: match.ID, PlayerID: p.ID}))
	}

	entries, err := w.goals.CountByPlayer(ctx, repositories.ScorerFilter{MatchID: &match.ID}, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, pipe.ID, entries[0].PlayerID)
	assert.Equal(t, 3, entries[0].GoalCount)
	assert.Equal(t, f.home.Name, entries[0].TeamName)
	require.NotNil(t, entries[0].PlayerNumber)
	assert.Equal(t, "9", *entries[0].PlayerNumber)
	assert.Equal(t, 1, entries[1].GoalCount)

	entries, err = w.goals.CountByPlayer(ctx, repositories.ScorerFilter{MatchID: &match.ID}, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, pipe.ID, entries[0].PlayerID)

	entries, err = w.goals.CountByPlayer(ctx, repositories.ScorerFilter{MatchID: &match.ID, TeamID: &f.away.ID}, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, beto.ID, entries[0].PlayerID)
}

func TestContract_SanctionAggregations(t *testing.T) {
	skipIfNeeded(t)
	w := newWorld()
	f := seed(t, w)
	ctx := context.Background()
	svc := w.matchService()

	first, err := svc.CreateMatch(ctx, f.input())
	require.NoError(t, err)
	second, err := svc.CreateMatch(ctx, f.input())
	require.NoError(t, err)

	yellow := &models.SanctionType{Name: "Amarilla " + uuid.NewString()[:8], Active: true}
	require.NoError(t, w.types.Create(ctx, yellow))

	players := make([]*models.Player, 6)
	for i := range players {
		players[i] = &models.Player{TeamID: f.home.ID, Name: fmt.Sprintf("Jugador %d", i), Active: true}
		require.NoError(t, w.players.Create(ctx, players[i]))
	}
	// Первый игрок получает две санкции, остальные по одной.
	record := func(p *models.Player, m *models.Match) {
		require.NoError(t, w.sanctions.Create(ctx, &models.Sanction{PlayerID: p.ID, SanctionTypeID: yellow.ID, MatchID: m.ID, Active: true}))
	}
	record(players[0], first)
	record(players[0], second)
	for _, p := range players[1:] {
		record(p, first)
	}

	top, err := w.sanctions.TopByType(ctx, yellow.ID, services.TopLimit)
	require.NoError(t, err)
	require.Len(t, top, services.TopLimit)
	assert.Equal(t, players[0].ID, top[0].PlayerID)
	assert.Equal(t, 2, top[0].SanctionsCount)
	assert.Equal(t, []uuid.UUID{first.ID, second.ID}, top[0].MatchIDs)

	rows, err := w.sanctions.ListRows(ctx, repositories.SanctionFilter{TypeID: yellow.ID, MatchID: &second.ID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, players[0].ID, rows[0].PlayerID)
	assert.Equal(t, f.home.Name, rows[0].TeamName)

	rows, err = w.sanctions.ListRows(ctx, repositories.SanctionFilter{TypeID: uuid.New()})
	require.NoError(t, err)
	assert.Empty(t, rows)
}
