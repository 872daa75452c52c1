package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"box-office-lab/internal/adjust"
	"box-office-lab/internal/config"
	chstore "box-office-lab/internal/storage/clickhouse"
	"box-office-lab/internal/storage/memory"
	"box-office-lab/internal/storage/migrations"
	pgstore "box-office-lab/internal/storage/postgres"
)

// OptionsFromConfig maps a validated Config to run Options.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	policy, err := adjust.ParseFaultPolicy(cfg.Pipeline.FaultPolicy)
	if err != nil {
		return Options{}, err
	}
	return Options{
		CpiFile:      cfg.Paths.CpiFile,
		RevenueFile:  cfg.Paths.RevenueFile,
		OutputDir:    cfg.Paths.OutputDir,
		BaseYear:     cfg.Pipeline.BaseYear,
		Region:       cfg.Pipeline.Region,
		RegionColumn: cfg.Pipeline.RegionColumn,
		CpiSkipRows:  cfg.Pipeline.CpiSkipRows,
		CpiSheet:     cfg.Pipeline.CpiSheet,
		RevenueSheet: cfg.Pipeline.RevenueSheet,
		FaultPolicy:  policy,
		TopN:         cfg.Pipeline.TopN,
	}, nil
}

// OpenStores connects the configured backend. With migrate set, the
// embedded schemas are applied first. The returned cleanup closes every
// connection.
func OpenStores(ctx context.Context, cfg config.StorageConfig, migrate bool) (Stores, func(), error) {
	if cfg.Backend == config.BackendMemory {
		return Stores{
			Backend:  config.BackendMemory,
			Runs:     memory.NewRunStore(),
			Revenues: memory.NewAdjustedRevenueStore(),
			Index:    memory.NewIndexStore(),
		}, func() {}, nil
	}
	if cfg.Backend != config.BackendPostgres {
		return Stores{}, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}

	pool, err := pgstore.NewPool(ctx, cfg.PostgresDSN)
	if err != nil {
		return Stores{}, nil, err
	}
	if migrate {
		applied, err := migrations.RunPostgresMigrations(ctx, pool)
		if err != nil {
			pool.Close()
			return Stores{}, nil, err
		}
		slog.Info("postgres migrations applied", "files", applied)
	}

	var conn *chstore.Conn
	if migrate {
		conn, err = migrations.RunClickhouseMigrations(ctx, cfg.ClickhouseDSN)
	} else {
		conn, err = chstore.NewConn(ctx, cfg.ClickhouseDSN)
	}
	if err != nil {
		pool.Close()
		return Stores{}, nil, err
	}

	cleanup := func() {
		conn.Close()
		pool.Close()
	}

	return Stores{
		Backend:  config.BackendPostgres,
		Runs:     pgstore.NewRunStore(pool),
		Revenues: pgstore.NewAdjustedRevenueStore(pool),
		Index:    chstore.NewIndexStore(conn),
	}, cleanup, nil
}
