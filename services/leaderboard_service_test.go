package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/Dosada05/tournament-admin/repositories"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func scorer(name string, goals int) models.ScorerEntry {
	return models.ScorerEntry{PlayerID: uuid.New(), PlayerName: name, TeamName: "Team " + name, GoalCount: goals}
}

func names(entries []models.ScorerEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.PlayerName)
	}
	return out
}

func TestRankScorers(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.ScorerEntry
		limit   int
		want    []string
	}{
		{
			name:    "sorted by goals desc, ties keep input order",
			entries: []models.ScorerEntry{scorer("a", 1), scorer("b", 3), scorer("c", 3), scorer("d", 2)},
			want:    []string{"b", "c", "d", "a"},
		},
		{
			name: "limit cuts ties at the boundary",
			entries: []models.ScorerEntry{
				scorer("a", 5), scorer("b", 4), scorer("c", 3), scorer("d", 2), scorer("e", 1), scorer("f", 1),
			},
			limit: TopLimit,
			want:  []string{"a", "b", "c", "d", "e"},
		},
		{
			name:    "limit larger than input",
			entries: []models.ScorerEntry{scorer("a", 1), scorer("b", 2)},
			limit:   TopLimit,
			want:    []string{"b", "a"},
		},
		{
			name: "empty",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rankScorers(tt.entries, tt.limit)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func newLeaderboardFixture(goals *fakeGoalRepo, sanctions *fakeSanctionRepo, types *fakeSanctionTypeRepo, teams *fakeTeamRepo, matches *fakeMatchRepo) LeaderboardService {
	return NewLeaderboardService(goals, sanctions, types, teams, matches, zerolog.Nop())
}

func TestTopScorers(t *testing.T) {
	goals := &fakeGoalRepo{scorers: []models.ScorerEntry{
		scorer("a", 1), scorer("b", 7), scorer("c", 2), scorer("d", 7), scorer("e", 4), scorer("f", 3),
	}}
	svc := newLeaderboardFixture(goals, &fakeSanctionRepo{}, newFakeSanctionTypeRepo(), newFakeTeamRepo(), newFakeMatchRepo())

	all, err := svc.TopScorers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d", "e", "f", "c", "a"}, names(all))
	assert.Equal(t, 0, goals.limit)

	top, err := svc.TopFiveScorers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d", "e", "f", "c"}, names(top))
	assert.Equal(t, TopLimit, goals.limit)
}

func TestTopScorers_Filters(t *testing.T) {
	goals := &fakeGoalRepo{}
	svc := newLeaderboardFixture(goals, &fakeSanctionRepo{}, newFakeSanctionTypeRepo(), newFakeTeamRepo(), newFakeMatchRepo())
	matchID, teamID := uuid.New(), uuid.New()

	_, err := svc.TopScorersByMatch(context.Background(), matchID)
	require.NoError(t, err)
	require.NotNil(t, goals.filter.MatchID)
	assert.Equal(t, matchID, *goals.filter.MatchID)
	assert.Nil(t, goals.filter.TeamID)

	_, err = svc.TopScorersByTeam(context.Background(), teamID)
	require.NoError(t, err)
	require.NotNil(t, goals.filter.TeamID)
	assert.Equal(t, teamID, *goals.filter.TeamID)
}

func TestTopScorers_EmptyIsNotAnError(t *testing.T) {
	svc := newLeaderboardFixture(&fakeGoalRepo{}, &fakeSanctionRepo{}, newFakeSanctionTypeRepo(), newFakeTeamRepo(), newFakeMatchRepo())

	entries, err := svc.TopScorers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGroupSanctionRows(t *testing.T) {
	p1, p2, p3 := uuid.New(), uuid.New(), uuid.New()
	m1, m2, m3 := uuid.New(), uuid.New(), uuid.New()
	rows := []models.SanctionRow{
		{PlayerID: p1, PlayerName: "uno", MatchID: m1, TeamName: "A"},
		{PlayerID: p2, PlayerName: "dos", MatchID: m1, TeamName: "B"},
		{PlayerID: p2, PlayerName: "dos", MatchID: m2, TeamName: "B"},
		{PlayerID: p3, PlayerName: "tres", MatchID: m2, TeamName: "A"},
		{PlayerID: p1, PlayerName: "uno", MatchID: m3, TeamName: "A"},
	}

	got := groupSanctionRows(rows)
	require.Len(t, got, 3)

	// p1 и p2 по две санкции; p1 встретился первым
	assert.Equal(t, p1, got[0].PlayerID)
	assert.Equal(t, 2, got[0].SanctionsCount)
	assert.Equal(t, []uuid.UUID{m1, m3}, got[0].MatchIDs)

	assert.Equal(t, p2, got[1].PlayerID)
	assert.Equal(t, []uuid.UUID{m1, m2}, got[1].MatchIDs)

	assert.Equal(t, p3, got[2].PlayerID)
	assert.Equal(t, 1, got[2].SanctionsCount)
	assert.Equal(t, "A", got[2].TeamName)
}

func TestGroupSanctionRows_Empty(t *testing.T) {
	assert.Empty(t, groupSanctionRows(nil))
}

func TestSanctionsByType(t *testing.T) {
	yellow := &models.SanctionType{ID: uuid.New(), Name: "Amarilla"}
	team := &models.Team{ID: uuid.New(), Name: "A"}
	match := &models.Match{ID: uuid.New()}
	player := uuid.New()

	sanctions := &fakeSanctionRepo{rows: []models.SanctionRow{
		{PlayerID: player, MatchID: match.ID, TeamID: team.ID},
		{PlayerID: player, MatchID: uuid.New(), TeamID: team.ID},
	}}
	svc := newLeaderboardFixture(&fakeGoalRepo{}, sanctions, newFakeSanctionTypeRepo(yellow), newFakeTeamRepo(team), newFakeMatchRepo(match))
	ctx := context.Background()

	entries, err := svc.SanctionsByType(ctx, yellow.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].SanctionsCount)
	assert.Equal(t, yellow.ID, sanctions.filter.TypeID)

	_, err = svc.SanctionsByTypeAndTeam(ctx, yellow.ID, team.ID)
	require.NoError(t, err)
	require.NotNil(t, sanctions.filter.TeamID)
	assert.Equal(t, team.ID, *sanctions.filter.TeamID)

	_, err = svc.SanctionsByTypeAndMatch(ctx, yellow.ID, match.ID)
	require.NoError(t, err)
	require.NotNil(t, sanctions.filter.MatchID)
	assert.Equal(t, match.ID, *sanctions.filter.MatchID)
}

func TestSanctionsByType_UnknownFilterTargets(t *testing.T) {
	yellow := &models.SanctionType{ID: uuid.New(), Name: "Amarilla"}
	svc := newLeaderboardFixture(&fakeGoalRepo{}, &fakeSanctionRepo{}, newFakeSanctionTypeRepo(yellow), newFakeTeamRepo(), newFakeMatchRepo())
	ctx := context.Background()

	_, err := svc.SanctionsByType(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrSanctionTypeNotFound)

	_, err = svc.SanctionsByTypeAndTeam(ctx, yellow.ID, uuid.New())
	assert.ErrorIs(t, err, ErrTeamNotFound)

	_, err = svc.SanctionsByTypeAndMatch(ctx, yellow.ID, uuid.New())
	assert.ErrorIs(t, err, ErrMatchNotFound)

	_, err = svc.TopFiveSanctionedByType(ctx, uuid.New())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestTopFiveSanctionedByType(t *testing.T) {
	red := &models.SanctionType{ID: uuid.New(), Name: "Roja"}
	top := make([]models.SanctionEntry, 0, 6)
	for _, n := range []int{1, 3, 2, 3, 1, 4} {
		top = append(top, models.SanctionEntry{PlayerID: uuid.New(), SanctionsCount: n})
	}
	svc := newLeaderboardFixture(&fakeGoalRepo{}, &fakeSanctionRepo{top: top}, newFakeSanctionTypeRepo(red), newFakeTeamRepo(), newFakeMatchRepo())

	got, err := svc.TopFiveSanctionedByType(context.Background(), red.ID)
	require.NoError(t, err)
	require.Len(t, got, TopLimit)
	counts := make([]int, 0, len(got))
	for _, e := range got {
		counts = append(counts, e.SanctionsCount)
	}
	assert.Equal(t, []int{4, 3, 3, 2, 1}, counts)
}

func TestExportTopScorers(t *testing.T) {
	number := "9"
	goals := &fakeGoalRepo{scorers: []models.ScorerEntry{
		scorer("Lucho", 2),
		{PlayerID: uuid.New(), PlayerName: "Pipe", PlayerNumber: &number, TeamName: "Rojos", GoalCount: 5},
	}}
	svc := newLeaderboardFixture(goals, &fakeSanctionRepo{}, newFakeSanctionTypeRepo(), newFakeTeamRepo(), newFakeMatchRepo())

	data, err := svc.ExportTopScorers(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Goleadores")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"#", "Player", "Number", "Team", "Goals"}, rows[0])
	assert.Equal(t, []string{"1", "Pipe", "9", "Rojos", "5"}, rows[1])
	assert.Equal(t, "Lucho", rows[2][1])
}
