package repositories

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuesPlaceholders(t *testing.T) {
	assert.Equal(t, "", valuesPlaceholders(0, 3))
	assert.Equal(t, "($1, $2, $3)", valuesPlaceholders(1, 3))
	assert.Equal(t, "($1, $2), ($3, $4), ($5, $6)", valuesPlaceholders(3, 2))
}

func TestMapPqError(t *testing.T) {
	tests := []struct {
		code pq.ErrorCode
		want error
	}{
		{"23505", ErrConflict},
		{"23503", ErrReference},
		{"23514", ErrCheck},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := mapPqError(&pq.Error{Code: tt.code, Message: "constraint fired"})
			require.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "constraint fired")
		})
	}

	t.Run("wrapped", func(t *testing.T) {
		err := mapPqError(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}))
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("other codes pass through", func(t *testing.T) {
		orig := &pq.Error{Code: "42P01", Message: `relation "x" does not exist`}
		assert.Same(t, orig, mapPqError(orig))

		plain := errors.New("connection reset")
		assert.Equal(t, plain, mapPqError(plain))
		assert.NoError(t, mapPqError(nil))
	})
}

func TestNotFoundOr(t *testing.T) {
	assert.ErrorIs(t, notFoundOr(sql.ErrNoRows, ErrTeamNotFound), ErrTeamNotFound)
	assert.ErrorIs(t, notFoundOr(sql.ErrNoRows, ErrTeamNotFound), ErrNotFound)
	assert.ErrorIs(t, notFoundOr(&pq.Error{Code: "23503"}, ErrTeamNotFound), ErrReference)
}

func TestCheckAffectedRows(t *testing.T) {
	assert.ErrorIs(t, checkAffectedRows(driver.RowsAffected(0), ErrRoundNotFound), ErrRoundNotFound)
	assert.NoError(t, checkAffectedRows(driver.RowsAffected(1), ErrRoundNotFound))
}

func TestNullableArgs(t *testing.T) {
	assert.Nil(t, nullableLimit(0))
	assert.Nil(t, nullableLimit(-1))
	assert.Equal(t, 5, nullableLimit(5))

	assert.Nil(t, nullableUUID(nil))
	id := uuid.New()
	assert.Equal(t, id.String(), nullableUUID(&id))
}

func TestParseUUIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	got, err := parseUUIDs([]string{a.String(), b.String()})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, got)

	got, err = parseUUIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = parseUUIDs([]string{"not-a-uuid"})
	assert.Error(t, err)
}
