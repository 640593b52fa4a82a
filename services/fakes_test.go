package services

import (
	"context"
	"sync"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/Dosada05/tournament-admin/repositories"
	"github.com/google/uuid"
)

// Фейки репозиториев для тестов сервисов. Сервисы читают параллельно через errgroup,
// поэтому все фейки под мьютексом.

type fakeTxManager struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeTxManager) WithinTx(ctx context.Context, fn repositories.TxFunc) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return fn(ctx)
}

type fakeTeamRepo struct {
	mu    sync.Mutex
	teams map[uuid.UUID]*models.Team
	err   error
}

func newFakeTeamRepo(teams ...*models.Team) *fakeTeamRepo {
	r := &fakeTeamRepo{teams: make(map[uuid.UUID]*models.Team)}
	for _, t := range teams {
		r.teams[t.ID] = t
	}
	return r
}

func (r *fakeTeamRepo) Create(_ context.Context, team *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	team.ID = uuid.New()
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) CreateMany(ctx context.Context, teams []*models.Team) error {
	for _, t := range teams {
		if err := r.Create(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return t, nil
}

func (r *fakeTeamRepo) GetAll(context.Context) ([]models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Team, 0, len(r.teams))
	for _, t := range r.teams {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, team *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[team.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}

func (r *fakeTeamRepo) FindIDsByNames(_ context.Context, names []string) (map[string]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]uuid.UUID)
	for _, name := range names {
		for id, t := range r.teams {
			if t.Name == name {
				out[name] = id
			}
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) FindExistingIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if _, ok := r.teams[id]; ok {
			out[id] = true
		}
	}
	return out, nil
}

type fakePlayerRepo struct {
	mu      sync.Mutex
	created []*models.Player
	// failOn - имя игрока, на котором Create вернёт ошибку
	failOn string
}

func (r *fakePlayerRepo) Create(_ context.Context, p *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn != "" && p.Name == r.failOn {
		return repositories.ErrConflict
	}
	p.ID = uuid.New()
	r.created = append(r.created, p)
	return nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.created {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (r *fakePlayerRepo) GetAll(context.Context) ([]models.Player, error) { return nil, nil }

func (r *fakePlayerRepo) ListByTeam(context.Context, uuid.UUID) ([]models.Player, error) {
	return nil, nil
}

func (r *fakePlayerRepo) Update(context.Context, *models.Player) error { return nil }

func (r *fakePlayerRepo) Delete(context.Context, uuid.UUID) error { return nil }

type fakeCompetitionRepo struct {
	competitions map[uuid.UUID]*models.Competition
}

func newFakeCompetitionRepo(cs ...*models.Competition) *fakeCompetitionRepo {
	r := &fakeCompetitionRepo{competitions: make(map[uuid.UUID]*models.Competition)}
	for _, c := range cs {
		r.competitions[c.ID] = c
	}
	return r
}

func (r *fakeCompetitionRepo) Create(context.Context, *models.Competition) error { return nil }

func (r *fakeCompetitionRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Competition, error) {
	c, ok := r.competitions[id]
	if !ok {
		return nil, repositories.ErrCompetitionNotFound
	}
	return c, nil
}

func (r *fakeCompetitionRepo) GetAll(context.Context) ([]models.Competition, error) { return nil, nil }

func (r *fakeCompetitionRepo) Update(context.Context, *models.Competition) error { return nil }

func (r *fakeCompetitionRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (r *fakeCompetitionRepo) FindExistingIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if _, ok := r.competitions[id]; ok {
			out[id] = true
		}
	}
	return out, nil
}

type fakeRoundRepo struct {
	byCode map[string]*models.Round
}

func newFakeRoundRepo(rounds ...*models.Round) *fakeRoundRepo {
	r := &fakeRoundRepo{byCode: make(map[string]*models.Round)}
	for _, rd := range rounds {
		r.byCode[rd.Code] = rd
	}
	return r
}

func (r *fakeRoundRepo) Create(context.Context, *models.Round) error { return nil }

func (r *fakeRoundRepo) CreateMany(context.Context, []*models.Round) error { return nil }

func (r *fakeRoundRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Round, error) {
	for _, rd := range r.byCode {
		if rd.ID == id {
			return rd, nil
		}
	}
	return nil, repositories.ErrRoundNotFound
}

func (r *fakeRoundRepo) GetByCode(_ context.Context, code string) (*models.Round, error) {
	rd, ok := r.byCode[code]
	if !ok {
		return nil, repositories.ErrRoundNotFound
	}
	return rd, nil
}

func (r *fakeRoundRepo) GetAll(context.Context) ([]models.Round, error) { return nil, nil }

func (r *fakeRoundRepo) Update(context.Context, *models.Round) error { return nil }

func (r *fakeRoundRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (r *fakeRoundRepo) FindIDsByCodes(_ context.Context, codes []string) (map[string]uuid.UUID, error) {
	out := make(map[string]uuid.UUID)
	for _, c := range codes {
		if rd, ok := r.byCode[c]; ok {
			out[c] = rd.ID
		}
	}
	return out, nil
}

type fakeFieldRepo struct {
	byName map[string]*models.Field
}

func newFakeFieldRepo(fields ...*models.Field) *fakeFieldRepo {
	r := &fakeFieldRepo{byName: make(map[string]*models.Field)}
	for _, f := range fields {
		r.byName[f.Name] = f
	}
	return r
}

func (r *fakeFieldRepo) Create(context.Context, *models.Field) error { return nil }

func (r *fakeFieldRepo) CreateMany(context.Context, []*models.Field) error { return nil }

func (r *fakeFieldRepo) GetByID(context.Context, uuid.UUID) (*models.Field, error) {
	return nil, repositories.ErrFieldNotFound
}

func (r *fakeFieldRepo) GetByName(_ context.Context, name string) (*models.Field, error) {
	f, ok := r.byName[name]
	if !ok {
		return nil, repositories.ErrFieldNotFound
	}
	return f, nil
}

func (r *fakeFieldRepo) GetAll(context.Context) ([]models.Field, error) { return nil, nil }

func (r *fakeFieldRepo) Update(context.Context, *models.Field) error { return nil }

func (r *fakeFieldRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (r *fakeFieldRepo) FindIDsByNames(_ context.Context, names []string) (map[string]uuid.UUID, error) {
	out := make(map[string]uuid.UUID)
	for _, n := range names {
		if f, ok := r.byName[n]; ok {
			out[n] = f.ID
		}
	}
	return out, nil
}

type fakeStateRepo struct {
	byName map[string]*models.State
}

func newFakeStateRepo(states ...*models.State) *fakeStateRepo {
	r := &fakeStateRepo{byName: make(map[string]*models.State)}
	for _, s := range states {
		r.byName[s.Name] = s
	}
	return r
}

func (r *fakeStateRepo) Create(context.Context, *models.State) error { return nil }

func (r *fakeStateRepo) GetByID(context.Context, uuid.UUID) (*models.State, error) {
	return nil, repositories.ErrStateNotFound
}

func (r *fakeStateRepo) GetByName(_ context.Context, name string) (*models.State, error) {
	s, ok := r.byName[name]
	if !ok {
		return nil, repositories.ErrStateNotFound
	}
	return s, nil
}

func (r *fakeStateRepo) GetAll(context.Context) ([]models.State, error) { return nil, nil }

func (r *fakeStateRepo) Update(context.Context, *models.State) error { return nil }

func (r *fakeStateRepo) Delete(context.Context, uuid.UUID) error { return nil }

type fakeMatchRepo struct {
	mu        sync.Mutex
	matches   map[uuid.UUID]*models.Match
	schedules []models.Schedule
	results   []models.Result

	createScheduleErr error
	createResultErr   error
	// resultErrAfter успешных CreateResult до того, как вернётся createResultErr.
	resultErrAfter int
	resultCalls    int
}

func newFakeMatchRepo(matches ...*models.Match) *fakeMatchRepo {
	r := &fakeMatchRepo{matches: make(map[uuid.UUID]*models.Match)}
	for _, m := range matches {
		r.matches[m.ID] = m
	}
	return r
}

func (r *fakeMatchRepo) Create(_ context.Context, m *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = uuid.New()
	r.matches[m.ID] = m
	return nil
}

func (r *fakeMatchRepo) CreateSchedule(_ context.Context, s *models.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createScheduleErr != nil {
		return r.createScheduleErr
	}
	s.ID = uuid.New()
	r.schedules = append(r.schedules, *s)
	return nil
}

func (r *fakeMatchRepo) CreateResult(_ context.Context, res *models.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resultCalls++
	if r.createResultErr != nil && r.resultCalls > r.resultErrAfter {
		return r.createResultErr
	}
	res.ID = uuid.New()
	r.results = append(r.results, *res)
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return m, nil
}

func (r *fakeMatchRepo) GetAll(context.Context) ([]models.Match, error) { return nil, nil }

func (r *fakeMatchRepo) ListByCompetition(context.Context, uuid.UUID) ([]models.Match, error) {
	return nil, nil
}

func (r *fakeMatchRepo) ListSchedules(_ context.Context, matchID uuid.UUID) ([]models.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Schedule
	for _, s := range r.schedules {
		if s.MatchID == matchID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) ListResults(_ context.Context, matchID uuid.UUID) ([]models.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Result
	for _, res := range r.results {
		if res.MatchID == matchID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) UpdateResult(context.Context, *models.Result) error { return nil }

func (r *fakeMatchRepo) UpdateSchedule(context.Context, *models.Schedule) error { return nil }

func (r *fakeMatchRepo) Delete(context.Context, uuid.UUID) error { return nil }

type fakeGoalRepo struct {
	mu        sync.Mutex
	created   []*models.Goal
	createErr error
	scorers   []models.ScorerEntry
	filter    repositories.ScorerFilter
	limit     int
}

func (r *fakeGoalRepo) Create(_ context.Context, g *models.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	g.ID = uuid.New()
	r.created = append(r.created, g)
	return nil
}

func (r *fakeGoalRepo) CreateMany(ctx context.Context, goals []*models.Goal) error {
	r.mu.Lock()
	if r.createErr != nil {
		r.mu.Unlock()
		return r.createErr
	}
	r.mu.Unlock()
	for _, g := range goals {
		if err := r.Create(ctx, g); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeGoalRepo) GetByID(context.Context, uuid.UUID) (*models.Goal, error) {
	return nil, repositories.ErrGoalNotFound
}

func (r *fakeGoalRepo) GetAll(context.Context) ([]models.Goal, error) { return nil, nil }

func (r *fakeGoalRepo) ListByMatch(context.Context, uuid.UUID) ([]models.Goal, error) {
	return nil, nil
}

func (r *fakeGoalRepo) Delete(context.Context, uuid.UUID) error { return repositories.ErrGoalNotFound }

func (r *fakeGoalRepo) CountByPlayer(_ context.Context, filter repositories.ScorerFilter, limit int) ([]models.ScorerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filter, r.limit = filter, limit
	out := make([]models.ScorerEntry, len(r.scorers))
	copy(out, r.scorers)
	return out, nil
}

type fakeSanctionRepo struct {
	mu        sync.Mutex
	rows      []models.SanctionRow
	top       []models.SanctionEntry
	createErr error
	filter    repositories.SanctionFilter
}

func (r *fakeSanctionRepo) Create(_ context.Context, s *models.Sanction) error {
	if r.createErr != nil {
		return r.createErr
	}
	s.ID = uuid.New()
	return nil
}

func (r *fakeSanctionRepo) GetByID(context.Context, uuid.UUID) (*models.Sanction, error) {
	return nil, repositories.ErrSanctionNotFound
}

func (r *fakeSanctionRepo) GetAll(context.Context) ([]models.Sanction, error) { return nil, nil }

func (r *fakeSanctionRepo) Update(context.Context, *models.Sanction) error { return nil }

func (r *fakeSanctionRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (r *fakeSanctionRepo) ListRows(_ context.Context, filter repositories.SanctionFilter) ([]models.SanctionRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filter = filter
	return r.rows, nil
}

func (r *fakeSanctionRepo) TopByType(_ context.Context, typeID uuid.UUID, limit int) ([]models.SanctionEntry, error) {
	return r.top, nil
}

type fakeSanctionTypeRepo struct {
	types map[uuid.UUID]*models.SanctionType
}

func newFakeSanctionTypeRepo(types ...*models.SanctionType) *fakeSanctionTypeRepo {
	r := &fakeSanctionTypeRepo{types: make(map[uuid.UUID]*models.SanctionType)}
	for _, t := range types {
		r.types[t.ID] = t
	}
	return r
}

func (r *fakeSanctionTypeRepo) Create(context.Context, *models.SanctionType) error { return nil }

func (r *fakeSanctionTypeRepo) CreateMany(context.Context, []*models.SanctionType) error {
	return nil
}

func (r *fakeSanctionTypeRepo) GetByID(_ context.Context, id uuid.UUID) (*models.SanctionType, error) {
	t, ok := r.types[id]
	if !ok {
		return nil, repositories.ErrSanctionTypeNotFound
	}
	return t, nil
}

func (r *fakeSanctionTypeRepo) GetAll(context.Context) ([]models.SanctionType, error) {
	return nil, nil
}

func (r *fakeSanctionTypeRepo) Update(context.Context, *models.SanctionType) error { return nil }

func (r *fakeSanctionTypeRepo) Delete(context.Context, uuid.UUID) error { return nil }

type fakeUserRepo struct {
	users     []*models.User
	createErr error
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	u.ID = uuid.New()
	r.users = append(r.users, u)
	return nil
}

func (r *fakeUserRepo) GetAll(context.Context) ([]models.User, error) { return nil, nil }

func (r *fakeUserRepo) FindByCredentials(_ context.Context, username, password string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.Password == password {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

type fakeRoleRepo struct{}

func (fakeRoleRepo) Create(_ context.Context, role *models.Role) error {
	role.ID = uuid.New()
	return nil
}

func (fakeRoleRepo) GetAll(context.Context) ([]models.Role, error) { return nil, nil }

type publishedEvent struct {
	MatchID uuid.UUID
	Type    string
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) PublishMatchEvent(matchID uuid.UUID, eventType string, _ interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{MatchID: matchID, Type: eventType})
}
