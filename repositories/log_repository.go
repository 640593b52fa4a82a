package repositories

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/google/uuid"
)

type LogRepository interface {
	Create(ctx context.Context, entry *models.Log) error
	GetAll(ctx context.Context) ([]models.Log, error)
}

type postgresLogRepository struct {
	db *sql.DB
}

func NewPostgresLogRepository(db *sql.DB) LogRepository {
	return &postgresLogRepository{db: db}
}

func (r *postgresLogRepository) Create(ctx context.Context, entry *models.Log) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	payload := entry.Payload
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	query := `
		INSERT INTO logs (id, entity, method, error, payload)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`
	return run(ctx, r.db, func(exec SQLExecutor) error {
		err := exec.QueryRowContext(ctx, query, entry.ID, entry.Entity, entry.Method, entry.Error, []byte(payload)).
			Scan(&entry.CreatedAt)
		return mapPqError(err)
	})
}

func (r *postgresLogRepository) GetAll(ctx context.Context) ([]models.Log, error) {
	query := `SELECT id, entity, method, error, payload, created_at FROM logs ORDER BY created_at DESC`
	var logs []models.Log
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		var err error
		logs, err = queryList(ctx, exec, func(rows *sql.Rows) (models.Log, error) {
			var l models.Log
			var payload []byte
			if err := rows.Scan(&l.ID, &l.Entity, &l.Method, &l.Error, &payload, &l.CreatedAt); err != nil {
				return l, err
			}
			l.Payload = json.RawMessage(payload)
			return l, nil
		}, query)
		return err
	})
	return logs, err
}
