package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/google/uuid"
)

var (
	ErrMatchNotFound    = fmt.Errorf("match %w", ErrNotFound)
	ErrScheduleNotFound = fmt.Errorf("schedule %w", ErrNotFound)
	ErrResultNotFound   = fmt.Errorf("result %w", ErrNotFound)
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	CreateSchedule(ctx context.Context, schedule *models.Schedule) error
	CreateResult(ctx context.Context, result *models.Result) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error)
	GetAll(ctx context.Context) ([]models.Match, error)
	ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.Match, error)
	ListSchedules(ctx context.Context, matchID uuid.UUID) ([]models.Schedule, error)
	ListResults(ctx context.Context, matchID uuid.UUID) ([]models.Result, error)
	UpdateResult(ctx context.Context, result *models.Result) error
	UpdateSchedule(ctx context.Context, schedule *models.Schedule) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, home_team_id, away_team_id, competition_id, round_id, match_date, created_at`

func scanMatch(row interface{ Scan(...any) error }) (models.Match, error) {
	var m models.Match
	err := row.Scan(&m.ID, &m.HomeTeamID, &m.AwayTeamID, &m.CompetitionID, &m.RoundID, &m.MatchDate, &m.CreatedAt)
	return m, err
}

func scanSchedule(row interface{ Scan(...any) error }) (models.Schedule, error) {
	var s models.Schedule
	err := row.Scan(&s.ID, &s.MatchID, &s.FieldID, &s.StateID, &s.StartTime)
	return s, err
}

func scanResult(row interface{ Scan(...any) error }) (models.Result, error) {
	var r models.Result
	err := row.Scan(&r.ID, &r.MatchID, &r.HomeScore, &r.AwayScore, &r.HomeGlobalScore, &r.AwayGlobalScore)
	return r, err
}

func (r *postgresMatchRepository) Create(ctx context.Context, m *models.Match) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	query := `
		INSERT INTO matches (id, home_team_id, away_team_id, competition_id, round_id, match_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return run(ctx, r.db, func(exec SQLExecutor) error {
		err := exec.QueryRowContext(ctx, query,
			m.ID, m.HomeTeamID, m.AwayTeamID, m.CompetitionID, m.RoundID, m.MatchDate,
		).Scan(&m.CreatedAt)
		return mapPqError(err)
	})
}

func (r *postgresMatchRepository) CreateSchedule(ctx context.Context, s *models.Schedule) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	query := `INSERT INTO schedules (id, match_id, field_id, state_id, start_time) VALUES ($1, $2, $3, $4, $5)`
	return run(ctx, r.db, func(exec SQLExecutor) error {
		_, err := exec.ExecContext(ctx, query, s.ID, s.MatchID, s.FieldID, s.StateID, s.StartTime)
		return mapPqError(err)
	})
}

func (r *postgresMatchRepository) CreateResult(ctx context.Context, res *models.Result) error {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	query := `
		INSERT INTO results (id, match_id, home_score, away_score, home_global_score, away_global_score)
		VALUES ($1, $2, $3, $4, $5, $6)`
	return run(ctx, r.db, func(exec SQLExecutor) error {
		_, err := exec.ExecContext(ctx, query,
			res.ID, res.MatchID, res.HomeScore, res.AwayScore, res.HomeGlobalScore, res.AwayGlobalScore)
		return mapPqError(err)
	})
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	var match models.Match
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		m, err := scanMatch(exec.QueryRowContext(ctx, query, id))
		if err != nil {
			return notFoundOr(err, ErrMatchNotFound)
		}
		match = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *postgresMatchRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Match, error) {
	var matches []models.Match
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		var err error
		matches, err = queryList(ctx, exec, func(rows *sql.Rows) (models.Match, error) { return scanMatch(rows) }, query, args...)
		return err
	})
	return matches, err
}

func (r *postgresMatchRepository) GetAll(ctx context.Context) ([]models.Match, error) {
	return r.list(ctx, `SELECT `+matchColumns+` FROM matches ORDER BY match_date ASC`)
}

func (r *postgresMatchRepository) ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.Match, error) {
	return r.list(ctx, `SELECT `+matchColumns+` FROM matches WHERE competition_id = $1 ORDER BY match_date ASC`, competitionID)
}

func (r *postgresMatchRepository) ListSchedules(ctx context.Context, matchID uuid.UUID) ([]models.Schedule, error) {
	query := `SELECT id, match_id, field_id, state_id, start_time FROM schedules WHERE match_id = $1`
	var schedules []models.Schedule
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		var err error
		schedules, err = queryList(ctx, exec, func(rows *sql.Rows) (models.Schedule, error) { return scanSchedule(rows) }, query, matchID)
		return err
	})
	return schedules, err
}

func (r *postgresMatchRepository) ListResults(ctx context.Context, matchID uuid.UUID) ([]models.Result, error) {
	query := `
		SELECT id, match_id, home_score, away_score, home_global_score, away_global_score
		FROM results WHERE match_id = $1`
	var results []models.Result
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		var err error
		results, err = queryList(ctx, exec, func(rows *sql.Rows) (models.Result, error) { return scanResult(rows) }, query, matchID)
		return err
	})
	return results, err
}

// UpdateResult обновляет счёт по match_id (у матча ровно одна строка results).
func (r *postgresMatchRepository) UpdateResult(ctx context.Context, res *models.Result) error {
	query := `
		UPDATE results
		SET home_score = $1, away_score = $2, home_global_score = $3, away_global_score = $4
		WHERE match_id = $5
		RETURNING id`
	return run(ctx, r.db, func(exec SQLExecutor) error {
		err := exec.QueryRowContext(ctx, query,
			res.HomeScore, res.AwayScore, res.HomeGlobalScore, res.AwayGlobalScore, res.MatchID,
		).Scan(&res.ID)
		return notFoundOr(err, ErrResultNotFound)
	})
}

func (r *postgresMatchRepository) UpdateSchedule(ctx context.Context, s *models.Schedule) error {
	query := `UPDATE schedules SET field_id = $1, state_id = $2, start_time = $3 WHERE match_id = $4 RETURNING id`
	return run(ctx, r.db, func(exec SQLExecutor) error {
		err := exec.QueryRowContext(ctx, query, s.FieldID, s.StateID, s.StartTime, s.MatchID).Scan(&s.ID)
		return notFoundOr(err, ErrScheduleNotFound)
	})
}

// Delete удаляет матч; schedules, results, goals и sanctions уходят каскадом.
func (r *postgresMatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return run(ctx, r.db, func(exec SQLExecutor) error {
		result, err := exec.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
		if err != nil {
			return mapPqError(err)
		}
		return checkAffectedRows(result, ErrMatchNotFound)
	})
}
