package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/google/uuid"
)

var ErrPlayerNotFound = fmt.Errorf("player %w", ErrNotFound)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error)
	GetAll(ctx context.Context) ([]models.Player, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `id, team_id, name, document, birthdate, number, photo, active, created_at`

func scanPlayer(row interface{ Scan(...any) error }) (models.Player, error) {
	var p models.Player
	err := row.Scan(&p.ID, &p.TeamID, &p.Name, &p.Document, &p.Birthdate, &p.Number, &p.Photo, &p.Active, &p.CreatedAt)
	return p, err
}

func (r *postgresPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	query := `
		INSERT INTO players (id, team_id, name, document, birthdate, number, photo, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return run(ctx, r.db, func(exec SQLExecutor) error {
		err := exec.QueryRowContext(ctx, query,
			p.ID, p.TeamID, p.Name, p.Document, p.Birthdate, p.Number, p.Photo, p.Active,
		).Scan(&p.CreatedAt)
		return mapPqError(err)
	})
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	var player models.Player
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		p, err := scanPlayer(exec.QueryRowContext(ctx, query, id))
		if err != nil {
			return notFoundOr(err, ErrPlayerNotFound)
		}
		player = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func (r *postgresPlayerRepository) GetAll(ctx context.Context) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players ORDER BY name ASC`
	var players []models.Player
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		var err error
		players, err = queryList(ctx, exec, func(rows *sql.Rows) (models.Player, error) { return scanPlayer(rows) }, query)
		return err
	})
	return players, err
}

func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE team_id = $1`
	var players []models.Player
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		var err error
		players, err = queryList(ctx, exec, func(rows *sql.Rows) (models.Player, error) { return scanPlayer(rows) }, query, teamID)
		return err
	})
	return players, err
}

func (r *postgresPlayerRepository) Update(ctx context.Context, p *models.Player) error {
	query := `
		UPDATE players
		SET team_id = $1, name = $2, document = $3, birthdate = $4, number = $5, photo = $6, active = $7
		WHERE id = $8`

	return run(ctx, r.db, func(exec SQLExecutor) error {
		result, err := exec.ExecContext(ctx, query, p.TeamID, p.Name, p.Document, p.Birthdate, p.Number, p.Photo, p.Active, p.ID)
		if err != nil {
			return mapPqError(err)
		}
		return checkAffectedRows(result, ErrPlayerNotFound)
	})
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return run(ctx, r.db, func(exec SQLExecutor) error {
		result, err := exec.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
		if err != nil {
			return mapPqError(err)
		}
		return checkAffectedRows(result, ErrPlayerNotFound)
	})
}
