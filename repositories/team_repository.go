package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/google/uuid"
)

var ErrTeamNotFound = fmt.Errorf("team %w", ErrNotFound)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	CreateMany(ctx context.Context, teams []*models.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error)
	GetAll(ctx context.Context) ([]models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindIDsByNames(ctx context.Context, names []string) (map[string]uuid.UUID, error)
	FindExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `id, name, coach, logo, active, created_at`

func scanTeam(row interface{ Scan(...any) error }) (models.Team, error) {
	var t models.Team
	err := row.Scan(&t.ID, &t.Name, &t.Coach, &t.Logo, &t.Active, &t.CreatedAt)
	return t, err
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	query := `INSERT INTO teams (id, name, coach, logo, active) VALUES ($1, $2, $3, $4, $5) RETURNING created_at`
	return run(ctx, r.db, func(exec SQLExecutor) error {
		err := exec.QueryRowContext(ctx, query, team.ID, team.Name, team.Coach, team.Logo, team.Active).Scan(&team.CreatedAt)
		return mapPqError(err)
	})
}

// CreateMany вставляет все команды одним INSERT: либо все, либо ни одной.
func (r *postgresTeamRepository) CreateMany(ctx context.Context, teams []*models.Team) error {
	if len(teams) == 0 {
		return nil
	}
	args := make([]interface{}, 0, len(teams)*5)
	byID := make(map[uuid.UUID]*models.Team, len(teams))
	for _, t := range teams {
		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		byID[t.ID] = t
		args = append(args, t.ID, t.Name, t.Coach, t.Logo, t.Active)
	}
	query := fmt.Sprintf(`INSERT INTO teams (id, name, coach, logo, active) VALUES %s RETURNING id, created_at`,
		valuesPlaceholders(len(teams), 5))

	return run(ctx, r.db, func(exec SQLExecutor) error {
		rows, err := exec.QueryContext(ctx, query, args...)
		if err != nil {
			return mapPqError(err)
		}
		defer rows.Close()
		for rows.Next() {
			var id uuid.UUID
			var t models.Team
			if err := rows.Scan(&id, &t.CreatedAt); err != nil {
				return err
			}
			if team, ok := byID[id]; ok {
				team.CreatedAt = t.CreatedAt
			}
		}
		return rows.Err()
	})
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`
	var team models.Team
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		t, err := scanTeam(exec.QueryRowContext(ctx, query, id))
		if err != nil {
			return notFoundOr(err, ErrTeamNotFound)
		}
		team = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *postgresTeamRepository) GetAll(ctx context.Context) ([]models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams ORDER BY name ASC`
	var teams []models.Team
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		var err error
		teams, err = queryList(ctx, exec, func(rows *sql.Rows) (models.Team, error) { return scanTeam(rows) }, query)
		return err
	})
	return teams, err
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `UPDATE teams SET name = $1, coach = $2, logo = $3, active = $4 WHERE id = $5`
	return run(ctx, r.db, func(exec SQLExecutor) error {
		result, err := exec.ExecContext(ctx, query, team.Name, team.Coach, team.Logo, team.Active, team.ID)
		if err != nil {
			return mapPqError(err)
		}
		return checkAffectedRows(result, ErrTeamNotFound)
	})
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return run(ctx, r.db, func(exec SQLExecutor) error {
		result, err := exec.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
		if err != nil {
			return mapPqError(err)
		}
		return checkAffectedRows(result, ErrTeamNotFound)
	})
}

func (r *postgresTeamRepository) FindIDsByNames(ctx context.Context, names []string) (map[string]uuid.UUID, error) {
	var ids map[string]uuid.UUID
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		var err error
		ids, err = lookupIDs(ctx, exec, `SELECT id, name FROM teams WHERE name = ANY($1)`, names)
		return err
	})
	return ids, err
}

func (r *postgresTeamRepository) FindExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	var found map[uuid.UUID]bool
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		var err error
		found, err = existingIDs(ctx, exec, "teams", ids)
		return err
	})
	return found, err
}
