package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/google/uuid"
)

var ErrRoundNotFound = fmt.Errorf("round %w", ErrNotFound)

type RoundRepository interface {
	Create(ctx context.Context, round *models.Round) error
	CreateMany(ctx context.Context, rounds []*models.Round) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Round, error)
	GetByCode(ctx context.Context, code string) (*models.Round, error)
	GetAll(ctx context.Context) ([]models.Round, error)
	Update(ctx context.Context, round *models.Round) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindIDsByCodes(ctx context.Context, codes []string) (map[string]uuid.UUID, error)
}

type postgresRoundRepository struct {
	db *sql.DB
}

func NewPostgresRoundRepository(db *sql.DB) RoundRepository {
	return &postgresRoundRepository{db: db}
}

func scanRound(row interface{ Scan(...any) error }) (models.Round, error) {
	var rd models.Round
	err := row.Scan(&rd.ID, &rd.Name, &rd.Code)
	return rd, err
}

func (r *postgresRoundRepository) Create(ctx context.Context, round *models.Round) error {
	if round.ID == uuid.Nil {
		round.ID = uuid.New()
	}
	return run(ctx, r.db, func(exec SQLExecutor) error {
		_, err := exec.ExecContext(ctx, `INSERT INTO rounds (id, name, code) VALUES ($1, $2, $3)`, round.ID, round.Name, round.Code)
		return mapPqError(err)
	})
}

func (r *postgresRoundRepository) CreateMany(ctx context.Context, rounds []*models.Round) error {
	if len(rounds) == 0 {
		return nil
	}
	args := make([]interface{}, 0, len(rounds)*3)
	for _, rd := range rounds {
		if rd.ID == uuid.Nil {
			rd.ID = uuid.New()
		}
		args = append(args, rd.ID, rd.Name, rd.Code)
	}
	query := fmt.Sprintf(`INSERT INTO rounds (id, name, code) VALUES %s`, valuesPlaceholders(len(rounds), 3))
	return run(ctx, r.db, func(exec SQLExecutor) error {
		_, err := exec.ExecContext(ctx, query, args...)
		return mapPqError(err)
	})
}

func (r *postgresRoundRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.Round, error) {
	var round models.Round
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		rd, err := scanRound(exec.QueryRowContext(ctx, query, arg))
		if err != nil {
			return notFoundOr(err, ErrRoundNotFound)
		}
		round = rd
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &round, nil
}

func (r *postgresRoundRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Round, error) {
	return r.getOne(ctx, `SELECT id, name, code FROM rounds WHERE id = $1`, id)
}

func (r *postgresRoundRepository) GetByCode(ctx context.Context, code string) (*models.Round, error) {
	return r.getOne(ctx, `SELECT id, name, code FROM rounds WHERE code = $1`, code)
}

func (r *postgresRoundRepository) GetAll(ctx context.Context) ([]models.Round, error) {
	var rounds []models.Round
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		var err error
		rounds, err = queryList(ctx, exec, func(rows *sql.Rows) (models.Round, error) { return scanRound(rows) },
			`SELECT id, name, code FROM rounds ORDER BY code ASC`)
		return err
	})
	return rounds, err
}

func (r *postgresRoundRepository) Update(ctx context.Context, round *models.Round) error {
	return run(ctx, r.db, func(exec SQLExecutor) error {
		result, err := exec.ExecContext(ctx, `UPDATE rounds SET name = $1, code = $2 WHERE id = $3`, round.Name, round.Code, round.ID)
		if err != nil {
			return mapPqError(err)
		}
		return checkAffectedRows(result, ErrRoundNotFound)
	})
}

func (r *postgresRoundRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return run(ctx, r.db, func(exec SQLExecutor) error {
		result, err := exec.ExecContext(ctx, `DELETE FROM rounds WHERE id = $1`, id)
		if err != nil {
			return mapPqError(err)
		}
		return checkAffectedRows(result, ErrRoundNotFound)
	})
}

func (r *postgresRoundRepository) FindIDsByCodes(ctx context.Context, codes []string) (map[string]uuid.UUID, error) {
	var ids map[string]uuid.UUID
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		var err error
		ids, err = lookupIDs(ctx, exec, `SELECT id, code FROM rounds WHERE code = ANY($1)`, codes)
		return err
	})
	return ids, err
}
