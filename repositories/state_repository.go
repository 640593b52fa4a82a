package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/google/uuid"
)

var ErrStateNotFound = fmt.Errorf("state %w", ErrNotFound)

type StateRepository interface {
	Create(ctx context.Context, state *models.State) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.State, error)
	GetByName(ctx context.Context, name string) (*models.State, error)
	GetAll(ctx context.Context) ([]models.State, error)
	Update(ctx context.Context, state *models.State) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresStateRepository struct {
	db *sql.DB
}

func NewPostgresStateRepository(db *sql.DB) StateRepository {
	return &postgresStateRepository{db: db}
}

func scanState(row interface{ Scan(...any) error }) (models.State, error) {
	var s models.State
	err := row.Scan(&s.ID, &s.Name, &s.Color)
	return s, err
}

func (r *postgresStateRepository) Create(ctx context.Context, state *models.State) error {
	if state.ID == uuid.Nil {
		state.ID = uuid.New()
	}
	return run(ctx, r.db, func(exec SQLExecutor) error {
		_, err := exec.ExecContext(ctx, `INSERT INTO states (id, name, color) VALUES ($1, $2, $3)`,
			state.ID, state.Name, state.Color)
		return mapPqError(err)
	})
}

func (r *postgresStateRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.State, error) {
	var state models.State
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		s, err := scanState(exec.QueryRowContext(ctx, query, arg))
		if err != nil {
			return notFoundOr(err, ErrStateNotFound)
		}
		state = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *postgresStateRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.State, error) {
	return r.getOne(ctx, `SELECT id, name, color FROM states WHERE id = $1`, id)
}

func (r *postgresStateRepository) GetByName(ctx context.Context, name string) (*models.State, error) {
	return r.getOne(ctx, `SELECT id, name, color FROM states WHERE name = $1`, name)
}

func (r *postgresStateRepository) GetAll(ctx context.Context) ([]models.State, error) {
	var states []models.State
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		var err error
		states, err = queryList(ctx, exec, func(rows *sql.Rows) (models.State, error) { return scanState(rows) },
			`SELECT id, name, color FROM states ORDER BY name ASC`)
		return err
	})
	return states, err
}

func (r *postgresStateRepository) Update(ctx context.Context, state *models.State) error {
	return run(ctx, r.db, func(exec SQLExecutor) error {
		result, err := exec.ExecContext(ctx, `UPDATE states SET name = $1, color = $2 WHERE id = $3`,
			state.Name, state.Color, state.ID)
		if err != nil {
			return mapPqError(err)
		}
		return checkAffectedRows(result, ErrStateNotFound)
	})
}

func (r *postgresStateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return run(ctx, r.db, func(exec SQLExecutor) error {
		result, err := exec.ExecContext(ctx, `DELETE FROM states WHERE id = $1`, id)
		if err != nil {
			return mapPqError(err)
		}
		return checkAffectedRows(result, ErrStateNotFound)
	})
}
