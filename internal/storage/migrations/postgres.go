package migrations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer runs a multi-statement SQL script. *postgres.Pool satisfies it.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// RunPostgresMigrations applies the embedded PostgreSQL scripts in order
// and returns the names of the applied files. Scripts are idempotent.
func RunPostgresMigrations(ctx context.Context, db Execer) ([]string, error) {
	files, err := Files(PostgresFS, "postgres")
	if err != nil {
		return nil, err
	}

	applied := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := db.Exec(ctx, f.SQL); err != nil {
			return applied, fmt.Errorf("apply migration %s: %w", f.Name, err)
		}
		applied = append(applied, f.Name)
	}
	return applied, nil
}
