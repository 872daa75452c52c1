// Package postgres persists pipeline runs and their ranked, inflation-adjusted
// revenue rows. Each run is one row in runs; its movies live in
// adjusted_revenues keyed by (run_id, adjusted_rank).
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"box-office-lab/internal/storage"
)

const applicationName = "box-office-lab"

// Pool is the connection pool shared by RunStore and AdjustedRevenueStore.
type Pool struct {
	*pgxpool.Pool
}

// NewPool connects to dsn and pings it before returning.
func NewPool(ctx context.Context, dsn string) (*Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if _, ok := config.ConnConfig.RuntimeParams["application_name"]; !ok {
		config.ConnConfig.RuntimeParams["application_name"] = applicationName
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// Close releases every connection.
func (p *Pool) Close() {
	p.Pool.Close()
}

// withTx runs fn inside a transaction. The transaction is rolled back when
// fn fails and committed otherwise.
func (p *Pool) withTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := p.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

const pgErrUniqueViolation = "23505"

// storeError maps driver errors onto the storage sentinels. A second run with
// the same run_id, or a repeated rank inside one run, is ErrDuplicateKey; a
// lookup of an unknown run is ErrNotFound. Anything else is wrapped with op.
func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		return storage.ErrDuplicateKey
	}
	return fmt.Errorf("%s: %w", op, err)
}
