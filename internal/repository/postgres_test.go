package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	t.Run("no rows becomes not found", func(t *testing.T) {
		assert.ErrorIs(t, translateError(pgx.ErrNoRows, "select profile"), ErrNotFound)
	})

	t.Run("unique email violation becomes duplicate email", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23505", ConstraintName: "unique_email"}
		assert.ErrorIs(t, translateError(err, "insert profile"), ErrDuplicateEmail)
	})

	t.Run("other unique violations stay storage errors", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23505", ConstraintName: "profiles_pkey"}
		translated := translateError(err, "insert profile")
		assert.NotErrorIs(t, translated, ErrDuplicateEmail)
		assert.NotErrorIs(t, translated, ErrNotFound)
	})

	t.Run("generic errors keep the operation context", func(t *testing.T) {
		translated := translateError(errors.New("connection reset"), "count profiles")
		assert.ErrorContains(t, translated, "count profiles")
	})
}
