package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/google/uuid"
)

var ErrSanctionTypeNotFound = fmt.Errorf("sanction type %w", ErrNotFound)

type SanctionTypeRepository interface {
	Create(ctx context.Context, st *models.SanctionType) error
	CreateMany(ctx context.Context, types []*models.SanctionType) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SanctionType, error)
	GetAll(ctx context.Context) ([]models.SanctionType, error)
	Update(ctx context.Context, st *models.SanctionType) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresSanctionTypeRepository struct {
	db *sql.DB
}

func NewPostgresSanctionTypeRepository(db *sql.DB) SanctionTypeRepository {
	return &postgresSanctionTypeRepository{db: db}
}

const sanctionTypeColumns = `id, name, description, sort_order, active`

func scanSanctionType(row interface{ Scan(...any) error }) (models.SanctionType, error) {
	var st models.SanctionType
	err := row.Scan(&st.ID, &st.Name, &st.Description, &st.SortOrder, &st.Active)
	return st, err
}

func (r *postgresSanctionTypeRepository) Create(ctx context.Context, st *models.SanctionType) error {
	return r.CreateMany(ctx, []*models.SanctionType{st})
}

func (r *postgresSanctionTypeRepository) CreateMany(ctx context.Context, types []*models.SanctionType) error {
	if len(types) == 0 {
		return nil
	}
	args := make([]interface{}, 0, len(types)*5)
	for _, st := range types {
		if st.ID == uuid.Nil {
			st.ID = uuid.New()
		}
		args = append(args, st.ID, st.Name, st.Description, st.SortOrder, st.Active)
	}
	query := fmt.Sprintf(`INSERT INTO sanction_types (%s) VALUES %s`, sanctionTypeColumns, valuesPlaceholders(len(types), 5))
	return run(ctx, r.db, func(exec SQLExecutor) error {
		_, err := exec.ExecContext(ctx, query, args...)
		return mapPqError(err)
	})
}

func (r *postgresSanctionTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SanctionType, error) {
	query := `SELECT ` + sanctionTypeColumns + ` FROM sanction_types WHERE id = $1`
	var st models.SanctionType
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		found, err := scanSanctionType(exec.QueryRowContext(ctx, query, id))
		if err != nil {
			return notFoundOr(err, ErrSanctionTypeNotFound)
		}
		st = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *postgresSanctionTypeRepository) GetAll(ctx context.Context) ([]models.SanctionType, error) {
	query := `SELECT ` + sanctionTypeColumns + ` FROM sanction_types ORDER BY sort_order ASC, name ASC`
	var list []models.SanctionType
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		var err error
		list, err = queryList(ctx, exec, func(rows *sql.Rows) (models.SanctionType, error) { return scanSanctionType(rows) }, query)
		return err
	})
	return list, err
}

func (r *postgresSanctionTypeRepository) Update(ctx context.Context, st *models.SanctionType) error {
	query := `UPDATE sanction_types SET name = $1, description = $2, sort_order = $3, active = $4 WHERE id = $5`
	return run(ctx, r.db, func(exec SQLExecutor) error {
		result, err := exec.ExecContext(ctx, query, st.Name, st.Description, st.SortOrder, st.Active, st.ID)
		if err != nil {
			return mapPqError(err)
		}
		return checkAffectedRows(result, ErrSanctionTypeNotFound)
	})
}

func (r *postgresSanctionTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return run(ctx, r.db, func(exec SQLExecutor) error {
		result, err := exec.ExecContext(ctx, `DELETE FROM sanction_types WHERE id = $1`, id)
		if err != nil {
			return mapPqError(err)
		}
		return checkAffectedRows(result, ErrSanctionTypeNotFound)
	})
}
