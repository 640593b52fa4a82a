package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var ErrSanctionNotFound = fmt.Errorf("sanction %w", ErrNotFound)

type SanctionFilter struct {
	TypeID  uuid.UUID
	TeamID  *uuid.UUID
	MatchID *uuid.UUID
}

type SanctionRepository interface {
	Create(ctx context.Context, s *models.Sanction) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Sanction, error)
	GetAll(ctx context.Context) ([]models.Sanction, error)
	Update(ctx context.Context, s *models.Sanction) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListRows отдаёт плоские строки для группировки в приложении.
	ListRows(ctx context.Context, filter SanctionFilter) ([]models.SanctionRow, error)
	// TopByType группирует на стороне БД (COUNT + array_agg). limit <= 0 - без ограничения.
	TopByType(ctx context.Context, typeID uuid.UUID, limit int) ([]models.SanctionEntry, error)
}

type postgresSanctionRepository struct {
	db *sql.DB
}

func NewPostgresSanctionRepository(db *sql.DB) SanctionRepository {
	return &postgresSanctionRepository{db: db}
}

const sanctionColumns = `id, player_id, sanction_type_id, match_id, active, created_at`

func scanSanction(row interface{ Scan(...any) error }) (models.Sanction, error) {
	var s models.Sanction
	err := row.Scan(&s.ID, &s.PlayerID, &s.SanctionTypeID, &s.MatchID, &s.Active, &s.CreatedAt)
	return s, err
}

func (r *postgresSanctionRepository) Create(ctx context.Context, s *models.Sanction) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	query := `
		INSERT INTO sanctions (id, player_id, sanction_type_id, match_id, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`
	return run(ctx, r.db, func(exec SQLExecutor) error {
		err := exec.QueryRowContext(ctx, query, s.ID, s.PlayerID, s.SanctionTypeID, s.MatchID, s.Active).Scan(&s.CreatedAt)
		return mapPqError(err)
	})
}

func (r *postgresSanctionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Sanction, error) {
	var sanction models.Sanction
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		s, err := scanSanction(exec.QueryRowContext(ctx, `SELECT `+sanctionColumns+` FROM sanctions WHERE id = $1`, id))
		if err != nil {
			return notFoundOr(err, ErrSanctionNotFound)
		}
		sanction = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sanction, nil
}

func (r *postgresSanctionRepository) GetAll(ctx context.Context) ([]models.Sanction, error) {
	var list []models.Sanction
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		var err error
		list, err = queryList(ctx, exec, func(rows *sql.Rows) (models.Sanction, error) { return scanSanction(rows) },
			`SELECT `+sanctionColumns+` FROM sanctions ORDER BY created_at ASC`)
		return err
	})
	return list, err
}

func (r *postgresSanctionRepository) Update(ctx context.Context, s *models.Sanction) error {
	query := `UPDATE sanctions SET player_id = $1, sanction_type_id = $2, match_id = $3, active = $4 WHERE id = $5`
	return run(ctx, r.db, func(exec SQLExecutor) error {
		result, err := exec.ExecContext(ctx, query, s.PlayerID, s.SanctionTypeID, s.MatchID, s.Active, s.ID)
		if err != nil {
			return mapPqError(err)
		}
		return checkAffectedRows(result, ErrSanctionNotFound)
	})
}

func (r *postgresSanctionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return run(ctx, r.db, func(exec SQLExecutor) error {
		result, err := exec.ExecContext(ctx, `DELETE FROM sanctions WHERE id = $1`, id)
		if err != nil {
			return mapPqError(err)
		}
		return checkAffectedRows(result, ErrSanctionNotFound)
	})
}

func (r *postgresSanctionRepository) ListRows(ctx context.Context, filter SanctionFilter) ([]models.SanctionRow, error) {
	query := `
		SELECT s.id, s.match_id, p.id, p.name, p.number, t.id, t.name, t.logo
		FROM sanctions s
		JOIN players p ON p.id = s.player_id
		JOIN teams t ON t.id = p.team_id
		WHERE s.sanction_type_id = $1
		  AND ($2::uuid IS NULL OR p.team_id = $2::uuid)
		  AND ($3::uuid IS NULL OR s.match_id = $3::uuid)
		ORDER BY s.created_at ASC, s.id ASC`

	var rowsOut []models.SanctionRow
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		var err error
		rowsOut, err = queryList(ctx, exec, func(rows *sql.Rows) (models.SanctionRow, error) {
			var sr models.SanctionRow
			err := rows.Scan(&sr.SanctionID, &sr.MatchID, &sr.PlayerID, &sr.PlayerName, &sr.PlayerNumber,
				&sr.TeamID, &sr.TeamName, &sr.TeamLogo)
			return sr, err
		}, query, filter.TypeID, nullableUUID(filter.TeamID), nullableUUID(filter.MatchID))
		return err
	})
	return rowsOut, err
}

func (r *postgresSanctionRepository) TopByType(ctx context.Context, typeID uuid.UUID, limit int) ([]models.SanctionEntry, error) {
	query := `
		SELECT t.id, t.name, t.logo, p.id, p.name, p.number,
		       COUNT(s.id) AS sanctions_count,
		       array_agg(s.match_id::text ORDER BY s.created_at) AS match_ids
		FROM sanctions s
		JOIN players p ON p.id = s.player_id
		JOIN teams t ON t.id = p.team_id
		WHERE s.sanction_type_id = $1
		GROUP BY p.id, p.team_id, t.id, t.name, t.logo, p.name, p.number
		ORDER BY sanctions_count DESC
		LIMIT $2`

	var entries []models.SanctionEntry
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		var err error
		entries, err = queryList(ctx, exec, func(rows *sql.Rows) (models.SanctionEntry, error) {
			var e models.SanctionEntry
			var matchIDs []string
			if err := rows.Scan(&e.TeamID, &e.TeamName, &e.TeamLogo, &e.PlayerID, &e.PlayerName, &e.PlayerNumber,
				&e.SanctionsCount, pq.Array(&matchIDs)); err != nil {
				return e, err
			}
			ids, err := parseUUIDs(matchIDs)
			if err != nil {
				return e, err
			}
			e.MatchIDs = ids
			return e, nil
		}, query, typeID, nullableLimit(limit))
		return err
	})
	return entries, err
}
