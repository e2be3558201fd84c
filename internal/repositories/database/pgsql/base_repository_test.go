package pgsql

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestMapWriteError(t *testing.T) {
	assert.NoError(t, mapWriteError(nil, "gl header", "h-1"))

	unique := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "uq_gl_headers_active_source"}
	err := mapWriteError(unique, "gl header", "h-1")
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.Contains(t, err.Error(), "uq_gl_headers_active_source")

	other := &pgconn.PgError{Code: "23503"}
	err = mapWriteError(other, "gl header", "h-1")
	assert.NotErrorIs(t, err, apperrors.ErrDuplicate)
	var appErr *apperrors.AppError
	assert.True(t, errors.As(err, &appErr))
}

func TestMapReadError(t *testing.T) {
	assert.ErrorIs(t, mapReadError(pgx.ErrNoRows, "pdc", "p-1"), apperrors.ErrNotFound)
	assert.NotErrorIs(t, mapReadError(errors.New("boom"), "pdc", "p-1"), apperrors.ErrNotFound)
}

func TestUniqueSorted(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, uniqueSorted([]string{"c", "a", "b", "a"}))
	assert.Empty(t, uniqueSorted(nil))
}

func TestForUpdate(t *testing.T) {
	assert.Equal(t, " FOR UPDATE", forUpdate(true))
	assert.Equal(t, "", forUpdate(false))
}
