package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"box-office-lab/internal/storage"
)

func TestStoreError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, storeError("insert run", nil))
	})

	t.Run("unknown run", func(t *testing.T) {
		err := storeError("get run by id", fmt.Errorf("scan: %w", pgx.ErrNoRows))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("repeated run id", func(t *testing.T) {
		err := storeError("insert run", &pgconn.PgError{Code: pgErrUniqueViolation})
		assert.ErrorIs(t, err, storage.ErrDuplicateKey)
	})

	t.Run("other constraint", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23502", Message: "null value in column"}
		err := storeError("insert adjusted revenue in bulk", pgErr)

		assert.NotErrorIs(t, err, storage.ErrDuplicateKey)
		assert.Contains(t, err.Error(), "insert adjusted revenue in bulk")

		var got *pgconn.PgError
		assert.True(t, errors.As(err, &got))
	})
}
