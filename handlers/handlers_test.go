package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/Dosada05/tournament-admin/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu      sync.Mutex
	entries []models.Log
}

func (s *recordingSink) Record(entry models.Log) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
}

func (s *recordingSink) Close() error { return nil }

// Фейки сервисов встраивают интерфейс: невызываемые методы паникуют.
type fakeTeamService struct {
	services.TeamService
	team  *models.Team
	teams []models.Team
	err   error
	got   services.CreateTeamInput
}

func (f *fakeTeamService) CreateTeam(_ context.Context, in services.CreateTeamInput) (*models.Team, error) {
	f.got = in
	return f.team, f.err
}

func (f *fakeTeamService) GetTeamByID(context.Context, uuid.UUID) (*models.Team, error) {
	return f.team, f.err
}

func (f *fakeTeamService) GetAllTeams(context.Context) ([]models.Team, error) {
	return f.teams, f.err
}

type fakeRoundService struct {
	services.RoundService
	round *models.Round
	err   error
}

func (f *fakeRoundService) GetRoundByID(context.Context, uuid.UUID) (*models.Round, error) {
	return f.round, f.err
}

func (f *fakeRoundService) GetRoundByCode(context.Context, string) (*models.Round, error) {
	return f.round, f.err
}

type fakeLeaderboardService struct {
	services.LeaderboardService
	scorers []models.ScorerEntry
	err     error
}

func (f *fakeLeaderboardService) TopScorers(context.Context) ([]models.ScorerEntry, error) {
	return f.scorers, f.err
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

type decoded struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) decoded {
	t.Helper()
	var body decoded
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func teamRouter(svc services.TeamService, sink *recordingSink) http.Handler {
	h := NewTeamHandler(svc, sink, zerolog.Nop())
	r := chi.NewRouter()
	r.Post("/teams/addTeam", h.AddTeam)
	r.Get("/teams/getAll", h.GetAllTeams)
	r.Get("/teams/{id}", h.GetTeamByID)
	return r
}

func TestAddTeam_Created(t *testing.T) {
	team := &models.Team{ID: uuid.New(), Name: "Rojos", Active: true}
	svc := &fakeTeamService{team: team}
	sink := &recordingSink{}

	rec := serve(teamRouter(svc, sink), http.MethodPost, "/teams/addTeam", `{"name":"Rojos"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.Equal(t, "team created successfully", body.Message)
	assert.Contains(t, string(body.Data), team.ID.String())
	assert.Equal(t, "Rojos", svc.got.Name)
	assert.Empty(t, sink.entries)
}

func TestAddTeam_BadBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"empty", ``, "body must not be empty"},
		{"malformed", `{"name":`, "body contains badly-formed JSON"},
		{"unknown key", `{"nombre":"x"}`, `body contains unknown key "nombre"`},
		{"two values", `{"name":"a"}{"name":"b"}`, "body must only contain a single JSON value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(teamRouter(&fakeTeamService{}, &recordingSink{}), http.MethodPost, "/teams/addTeam", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, decode(t, rec).Message)
		})
	}
}

func TestAddTeam_ValidationErrorCarriesFields(t *testing.T) {
	svc := &fakeTeamService{err: &services.ValidationError{Fields: []services.FieldError{{Field: "name", Message: "is required"}}}}

	rec := serve(teamRouter(svc, &recordingSink{}), http.MethodPost, "/teams/addTeam", `{"name":""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.JSONEq(t, `[{"field":"name","message":"is required"}]`, string(body.Data))
}

func TestAddTeam_ServerErrorIsAudited(t *testing.T) {
	svc := &fakeTeamService{err: errors.New("connection reset")}
	sink := &recordingSink{}

	rec := serve(teamRouter(svc, sink), http.MethodPost, "/teams/addTeam", `{"name":"Rojos"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "CreateTeam: connection reset", body.Message)
	assert.JSONEq(t, `"connection reset"`, string(body.Data))

	require.Len(t, sink.entries, 1)
	entry := sink.entries[0]
	assert.Equal(t, "Team", entry.Entity)
	assert.Equal(t, "CreateTeam", entry.Method)
	assert.Equal(t, "connection reset", entry.Error)
	assert.Contains(t, string(entry.Payload), "Rojos")
}

func TestGetTeamByID(t *testing.T) {
	t.Run("missing is 200 with null data", func(t *testing.T) {
		svc := &fakeTeamService{err: services.ErrTeamNotFound}
		rec := serve(teamRouter(svc, &recordingSink{}), http.MethodGet, "/teams/"+uuid.NewString(), "")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "team not found", body.Message)
		assert.Equal(t, "null", string(body.Data))
	})

	t.Run("bad id is 400", func(t *testing.T) {
		rec := serve(teamRouter(&fakeTeamService{}, &recordingSink{}), http.MethodGet, "/teams/abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetAllTeams_EmptyList(t *testing.T) {
	rec := serve(teamRouter(&fakeTeamService{}, &recordingSink{}), http.MethodGet, "/teams/getAll", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "no teams found", body.Message)
	assert.Equal(t, "null", string(body.Data))
}

func TestCatalogLookup_NotFoundIs404(t *testing.T) {
	h := NewCatalogHandler(&fakeRoundService{err: services.ErrRoundNotFound}, nil, nil, &recordingSink{}, zerolog.Nop())
	r := chi.NewRouter()
	r.Get("/rounds/code/{code}", h.GetRoundByCode)
	r.Get("/rounds/{id}", h.GetRoundByID)

	rec := serve(r, http.MethodGet, "/rounds/code/QF", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "round not found", decode(t, rec).Message)

	rec = serve(r, http.MethodGet, "/rounds/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTopScorers(t *testing.T) {
	newRouter := func(ls services.LeaderboardService) http.Handler {
		h := NewGoalHandler(nil, ls, &recordingSink{}, zerolog.Nop())
		r := chi.NewRouter()
		r.Get("/goals/topScorers", h.TopScorers)
		return r
	}

	rec := serve(newRouter(&fakeLeaderboardService{}), http.MethodGet, "/goals/topScorers", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "no goals recorded yet", body.Message)
	assert.Equal(t, "null", string(body.Data))

	ls := &fakeLeaderboardService{scorers: []models.ScorerEntry{{PlayerName: "Pipe", GoalCount: 3}}}
	rec = serve(newRouter(ls), http.MethodGet, "/goals/topScorers", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var entries []models.ScorerEntry
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].GoalCount)
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler(fakePinger{}).Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	NewHealthHandler(fakePinger{err: errors.New("dial tcp: refused")}).Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "database unavailable", decode(t, rec).Message)
}
