package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/google/uuid"
)

var ErrCompetitionNotFound = fmt.Errorf("competition %w", ErrNotFound)

type CompetitionRepository interface {
	Create(ctx context.Context, c *models.Competition) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Competition, error)
	GetAll(ctx context.Context) ([]models.Competition, error)
	Update(ctx context.Context, c *models.Competition) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)
}

type postgresCompetitionRepository struct {
	db *sql.DB
}

func NewPostgresCompetitionRepository(db *sql.DB) CompetitionRepository {
	return &postgresCompetitionRepository{db: db}
}

const competitionColumns = `id, name, description, organizer, start_date, end_date, logo, second_logo, active, created_at`

func scanCompetition(row interface{ Scan(...any) error }) (models.Competition, error) {
	var c models.Competition
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Organizer, &c.StartDate, &c.EndDate,
		&c.Logo, &c.SecondLogo, &c.Active, &c.CreatedAt)
	return c, err
}

func (r *postgresCompetitionRepository) Create(ctx context.Context, c *models.Competition) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	query := `
		INSERT INTO competitions (id, name, description, organizer, start_date, end_date, logo, second_logo, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	return run(ctx, r.db, func(exec SQLExecutor) error {
		err := exec.QueryRowContext(ctx, query,
			c.ID, c.Name, c.Description, c.Organizer, c.StartDate, c.EndDate, c.Logo, c.SecondLogo, c.Active,
		).Scan(&c.CreatedAt)
		return mapPqError(err)
	})
}

func (r *postgresCompetitionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Competition, error) {
	query := `SELECT ` + competitionColumns + ` FROM competitions WHERE id = $1`
	var competition models.Competition
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		c, err := scanCompetition(exec.QueryRowContext(ctx, query, id))
		if err != nil {
			return notFoundOr(err, ErrCompetitionNotFound)
		}
		competition = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &competition, nil
}

func (r *postgresCompetitionRepository) GetAll(ctx context.Context) ([]models.Competition, error) {
	query := `SELECT ` + competitionColumns + ` FROM competitions ORDER BY start_date DESC`
	var list []models.Competition
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		var err error
		list, err = queryList(ctx, exec, func(rows *sql.Rows) (models.Competition, error) { return scanCompetition(rows) }, query)
		return err
	})
	return list, err
}

func (r *postgresCompetitionRepository) Update(ctx context.Context, c *models.Competition) error {
	query := `
		UPDATE competitions
		SET name = $1, description = $2, organizer = $3, start_date = $4, end_date = $5,
		    logo = $6, second_logo = $7, active = $8
		WHERE id = $9`

	return run(ctx, r.db, func(exec SQLExecutor) error {
		result, err := exec.ExecContext(ctx, query,
			c.Name, c.Description, c.Organizer, c.StartDate, c.EndDate, c.Logo, c.SecondLogo, c.Active, c.ID)
		if err != nil {
			return mapPqError(err)
		}
		return checkAffectedRows(result, ErrCompetitionNotFound)
	})
}

func (r *postgresCompetitionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return run(ctx, r.db, func(exec SQLExecutor) error {
		result, err := exec.ExecContext(ctx, `DELETE FROM competitions WHERE id = $1`, id)
		if err != nil {
			return mapPqError(err)
		}
		return checkAffectedRows(result, ErrCompetitionNotFound)
	})
}

func (r *postgresCompetitionRepository) FindExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	var found map[uuid.UUID]bool
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		var err error
		found, err = existingIDs(ctx, exec, "competitions", ids)
		return err
	})
	return found, err
}
