package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/google/uuid"
)

var ErrFieldNotFound = fmt.Errorf("field %w", ErrNotFound)

type FieldRepository interface {
	Create(ctx context.Context, field *models.Field) error
	CreateMany(ctx context.Context, fields []*models.Field) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Field, error)
	GetByName(ctx context.Context, name string) (*models.Field, error)
	GetAll(ctx context.Context) ([]models.Field, error)
	Update(ctx context.Context, field *models.Field) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindIDsByNames(ctx context.Context, names []string) (map[string]uuid.UUID, error)
}

type postgresFieldRepository struct {
	db *sql.DB
}

func NewPostgresFieldRepository(db *sql.DB) FieldRepository {
	return &postgresFieldRepository{db: db}
}

func scanField(row interface{ Scan(...any) error }) (models.Field, error) {
	var f models.Field
	err := row.Scan(&f.ID, &f.Name, &f.Location)
	return f, err
}

func (r *postgresFieldRepository) Create(ctx context.Context, field *models.Field) error {
	if field.ID == uuid.Nil {
		field.ID = uuid.New()
	}
	return run(ctx, r.db, func(exec SQLExecutor) error {
		_, err := exec.ExecContext(ctx, `INSERT INTO fields (id, name, location) VALUES ($1, $2, $3)`,
			field.ID, field.Name, field.Location)
		return mapPqError(err)
	})
}

func (r *postgresFieldRepository) CreateMany(ctx context.Context, fields []*models.Field) error {
	if len(fields) == 0 {
		return nil
	}
	args := make([]interface{}, 0, len(fields)*3)
	for _, f := range fields {
		if f.ID == uuid.Nil {
			f.ID = uuid.New()
		}
		args = append(args, f.ID, f.Name, f.Location)
	}
	query := fmt.Sprintf(`INSERT INTO fields (id, name, location) VALUES %s`, valuesPlaceholders(len(fields), 3))
	return run(ctx, r.db, func(exec SQLExecutor) error {
		_, err := exec.ExecContext(ctx, query, args...)
		return mapPqError(err)
	})
}

func (r *postgresFieldRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.Field, error) {
	var field models.Field
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		f, err := scanField(exec.QueryRowContext(ctx, query, arg))
		if err != nil {
			return notFoundOr(err, ErrFieldNotFound)
		}
		field = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &field, nil
}

func (r *postgresFieldRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Field, error) {
	return r.getOne(ctx, `SELECT id, name, location FROM fields WHERE id = $1`, id)
}

func (r *postgresFieldRepository) GetByName(ctx context.Context, name string) (*models.Field, error) {
	return r.getOne(ctx, `SELECT id, name, location FROM fields WHERE name = $1`, name)
}

func (r *postgresFieldRepository) GetAll(ctx context.Context) ([]models.Field, error) {
	var fields []models.Field
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		var err error
		fields, err = queryList(ctx, exec, func(rows *sql.Rows) (models.Field, error) { return scanField(rows) },
			`SELECT id, name, location FROM fields ORDER BY name ASC`)
		return err
	})
	return fields, err
}

func (r *postgresFieldRepository) Update(ctx context.Context, field *models.Field) error {
	return run(ctx, r.db, func(exec SQLExecutor) error {
		result, err := exec.ExecContext(ctx, `UPDATE fields SET name = $1, location = $2 WHERE id = $3`,
			field.Name, field.Location, field.ID)
		if err != nil {
			return mapPqError(err)
		}
		return checkAffectedRows(result, ErrFieldNotFound)
	})
}

func (r *postgresFieldRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return run(ctx, r.db, func(exec SQLExecutor) error {
		result, err := exec.ExecContext(ctx, `DELETE FROM fields WHERE id = $1`, id)
		if err != nil {
			return mapPqError(err)
		}
		return checkAffectedRows(result, ErrFieldNotFound)
	})
}

func (r *postgresFieldRepository) FindIDsByNames(ctx context.Context, names []string) (map[string]uuid.UUID, error) {
	var ids map[string]uuid.UUID
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		var err error
		ids, err = lookupIDs(ctx, exec, `SELECT id, name FROM fields WHERE name = ANY($1)`, names)
		return err
	})
	return ids, err
}
