package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("unique constraint violation")
	ErrReference = errors.New("referenced row does not exist or is still referenced")
	ErrCheck     = errors.New("check constraint violation")
)

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError // Возвращаем переданную ошибку "не найдено"
	}
	return nil
}

// mapPqError переводит коды postgres в доменные ошибки, сохраняя исходный текст.
func mapPqError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%w: %s", ErrConflict, pqErr.Message)
		case pqForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrReference, pqErr.Message)
		case pqCheckViolation:
			return fmt.Errorf("%w: %s", ErrCheck, pqErr.Message)
		}
	}
	return err
}

// notFoundOr возвращает notFound для sql.ErrNoRows, иначе ошибку драйвера.
func notFoundOr(err error, notFound error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return mapPqError(err)
}

// valuesPlaceholders строит "($1, $2), ($3, $4)" для многострочного INSERT.
func valuesPlaceholders(rows, cols int) string {
	var b strings.Builder
	n := 1
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j := 0; j < cols; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", n)
			n++
		}
		b.WriteByte(')')
	}
	return b.String()
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// nullableUUID отдаёт nil для отсутствующего фильтра, чтобы сработал "$n::uuid IS NULL".
func nullableUUID(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return id.String()
}

func nullableLimit(limit int) interface{} {
	if limit <= 0 {
		return nil
	}
	return limit
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid uuid %q: %w", s, err)
		}
		out = append(out, id)
	}
	return out, nil
}

// queryList выполняет запрос и сканирует каждую строку функцией scan.
func queryList[T any](ctx context.Context, exec SQLExecutor, scan func(*sql.Rows) (T, error), query string, args ...interface{}) ([]T, error) {
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapPqError(err)
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, scanErr := scan(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// lookupIDs читает пары (id, key) и собирает карту key -> id.
func lookupIDs(ctx context.Context, exec SQLExecutor, query string, keys []string) (map[string]uuid.UUID, error) {
	out := make(map[string]uuid.UUID, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	rows, err := exec.QueryContext(ctx, query, pq.Array(keys))
	if err != nil {
		return nil, mapPqError(err)
	}
	defer rows.Close()
	for rows.Next() {
		var id uuid.UUID
		var key string
		if err := rows.Scan(&id, &key); err != nil {
			return nil, err
		}
		out[key] = id
	}
	return out, rows.Err()
}

// existingIDs возвращает подмножество ids, для которых есть строка в table.
func existingIDs(ctx context.Context, exec SQLExecutor, table string, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := fmt.Sprintf(`SELECT id FROM %s WHERE id = ANY($1::uuid[])`, table)
	rows, err := exec.QueryContext(ctx, query, pq.Array(uuidStrings(ids)))
	if err != nil {
		return nil, mapPqError(err)
	}
	defer rows.Close()
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}
