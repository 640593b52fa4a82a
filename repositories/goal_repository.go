package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/google/uuid"
)

var ErrGoalNotFound = fmt.Errorf("goal %w", ErrNotFound)

// ScorerFilter сужает выборку голов до группировки. Пустые поля - без фильтра.
type ScorerFilter struct {
	MatchID *uuid.UUID
	TeamID  *uuid.UUID
}

type GoalRepository interface {
	Create(ctx context.Context, goal *models.Goal) error
	CreateMany(ctx context.Context, goals []*models.Goal) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Goal, error)
	GetAll(ctx context.Context) ([]models.Goal, error)
	ListByMatch(ctx context.Context, matchID uuid.UUID) ([]models.Goal, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// CountByPlayer группирует голы на стороне БД. limit <= 0 - без ограничения.
	CountByPlayer(ctx context.Context, filter ScorerFilter, limit int) ([]models.ScorerEntry, error)
}

type postgresGoalRepository struct {
	db *sql.DB
}

func NewPostgresGoalRepository(db *sql.DB) GoalRepository {
	return &postgresGoalRepository{db: db}
}

func scanGoal(row interface{ Scan(...any) error }) (models.Goal, error) {
	var g models.Goal
	err := row.Scan(&g.ID, &g.MatchID, &g.PlayerID, &g.CreatedAt)
	return g, err
}

func (r *postgresGoalRepository) Create(ctx context.Context, goal *models.Goal) error {
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	query := `INSERT INTO goals (id, match_id, player_id) VALUES ($1, $2, $3) RETURNING created_at`
	return run(ctx, r.db, func(exec SQLExecutor) error {
		err := exec.QueryRowContext(ctx, query, goal.ID, goal.MatchID, goal.PlayerID).Scan(&goal.CreatedAt)
		return mapPqError(err)
	})
}

func (r *postgresGoalRepository) CreateMany(ctx context.Context, goals []*models.Goal) error {
	if len(goals) == 0 {
		return nil
	}
	args := make([]interface{}, 0, len(goals)*3)
	for _, g := range goals {
		if g.ID == uuid.Nil {
			g.ID = uuid.New()
		}
		args = append(args, g.ID, g.MatchID, g.PlayerID)
	}
	query := fmt.Sprintf(`INSERT INTO goals (id, match_id, player_id) VALUES %s`, valuesPlaceholders(len(goals), 3))
	return run(ctx, r.db, func(exec SQLExecutor) error {
		_, err := exec.ExecContext(ctx, query, args...)
		return mapPqError(err)
	})
}

func (r *postgresGoalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Goal, error) {
	var goal models.Goal
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		g, err := scanGoal(exec.QueryRowContext(ctx, `SELECT id, match_id, player_id, created_at FROM goals WHERE id = $1`, id))
		if err != nil {
			return notFoundOr(err, ErrGoalNotFound)
		}
		goal = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *postgresGoalRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Goal, error) {
	var goals []models.Goal
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		var err error
		goals, err = queryList(ctx, exec, func(rows *sql.Rows) (models.Goal, error) { return scanGoal(rows) }, query, args...)
		return err
	})
	return goals, err
}

func (r *postgresGoalRepository) GetAll(ctx context.Context) ([]models.Goal, error) {
	return r.list(ctx, `SELECT id, match_id, player_id, created_at FROM goals ORDER BY created_at ASC`)
}

func (r *postgresGoalRepository) ListByMatch(ctx context.Context, matchID uuid.UUID) ([]models.Goal, error) {
	return r.list(ctx, `SELECT id, match_id, player_id, created_at FROM goals WHERE match_id = $1 ORDER BY created_at ASC`, matchID)
}

func (r *postgresGoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return run(ctx, r.db, func(exec SQLExecutor) error {
		result, err := exec.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
		if err != nil {
			return mapPqError(err)
		}
		return checkAffectedRows(result, ErrGoalNotFound)
	})
}

// В GROUP BY перечислены все выбранные денормализованные колонки,
// иначе postgres отвергнет запрос как неоднозначный.
func (r *postgresGoalRepository) CountByPlayer(ctx context.Context, filter ScorerFilter, limit int) ([]models.ScorerEntry, error) {
	query := `
		SELECT t.id, t.name, t.logo, p.id, p.name, p.number, COUNT(g.id) AS goal_count
		FROM goals g
		JOIN players p ON p.id = g.player_id
		JOIN teams t ON t.id = p.team_id
		WHERE ($1::uuid IS NULL OR g.match_id = $1::uuid)
		  AND ($2::uuid IS NULL OR p.team_id = $2::uuid)
		GROUP BY p.id, p.team_id, t.id, t.name, t.logo, p.name, p.number
		ORDER BY goal_count DESC
		LIMIT $3`

	var entries []models.ScorerEntry
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		var err error
		entries, err = queryList(ctx, exec, func(rows *sql.Rows) (models.ScorerEntry, error) {
			var e models.ScorerEntry
			err := rows.Scan(&e.TeamID, &e.TeamName, &e.TeamLogo, &e.PlayerID, &e.PlayerName, &e.PlayerNumber, &e.GoalCount)
			return e, err
		}, query, nullableUUID(filter.MatchID), nullableUUID(filter.TeamID), nullableLimit(limit))
		return err
	})
	return entries, err
}
