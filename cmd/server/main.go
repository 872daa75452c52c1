// Command server exposes stored adjustment runs over HTTP.
//
// With the memory backend it performs one pipeline run at startup so there
// is something to serve. With the postgres backend it applies migrations
// and serves whatever runs cmd/adjust has persisted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"box-office-lab/internal/api"
	"box-office-lab/internal/config"
	"box-office-lab/internal/logging"
	"box-office-lab/internal/observability"
	"box-office-lab/internal/pipeline"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to TOML config file")
	addr := flag.String("addr", "", "HTTP listen address")
	backend := flag.String("backend", "", "Storage backend (memory, postgres)")
	skipStartupRun := flag.Bool("skip-startup-run", false, "Do not run the pipeline at startup (memory backend)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Server.Addr = *addr
		case "backend":
			cfg.Storage.Backend = *backend
		}
	})
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores, cleanup, err := pipeline.OpenStores(ctx, cfg.Storage, cfg.Storage.Backend == config.BackendPostgres)
	if err != nil {
		return fmt.Errorf("open stores: %w", err)
	}
	defer cleanup()

	if cfg.Storage.Backend == config.BackendMemory && !*skipStartupRun {
		opts, err := pipeline.OptionsFromConfig(cfg)
		if err != nil {
			return err
		}
		if _, err := pipeline.New(opts, stores).Run(ctx); err != nil {
			return err
		}
	}

	server := api.NewServer(api.Stores{
		Runs:     stores.Runs,
		Revenues: stores.Revenues,
		Index:    stores.Index,
	}, observability.DefaultMetrics)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(cfg.Server.Addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case sig := <-sigCh:
		slog.Info("shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("shutdown complete")
	return nil
}
