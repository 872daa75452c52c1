// Command adjust runs the inflation adjustment pipeline once and writes
// the ranking, index, workbook, chart and REPORT.md to the output directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"box-office-lab/internal/config"
	"box-office-lab/internal/logging"
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
	cpiFile := flag.String("cpi", "", "CPI table (.csv or .xlsx)")
	revenueFile := flag.String("revenue", "", "Box office revenue table (.csv or .xlsx)")
	outputDir := flag.String("output-dir", "", "Output directory for reports")
	baseYear := flag.Int("base-year", 0, "Year whose prices the output is expressed in")
	region := flag.String("region", "", "CPI region row")
	faultPolicy := flag.String("fault-policy", "", "Per-record fault policy (fail-fast, skip)")
	topN := flag.Int("top-n", -1, "Movies shown in the chart and REPORT.md (0 = all)")
	backend := flag.String("backend", "", "Storage backend (memory, postgres)")
	migrate := flag.Bool("migrate", false, "Apply database migrations before the run (postgres backend)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", "", "Log format (text, json)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "cpi":
			cfg.Paths.CpiFile = *cpiFile
		case "revenue":
			cfg.Paths.RevenueFile = *revenueFile
		case "output-dir":
			cfg.Paths.OutputDir = *outputDir
		case "base-year":
			cfg.Pipeline.BaseYear = *baseYear
		case "region":
			cfg.Pipeline.Region = *region
		case "fault-policy":
			cfg.Pipeline.FaultPolicy = *faultPolicy
		case "top-n":
			cfg.Pipeline.TopN = *topN
		case "backend":
			cfg.Storage.Backend = *backend
		case "log-level":
			cfg.Logging.Level = *logLevel
		case "log-format":
			cfg.Logging.Format = *logFormat
		}
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts, err := pipeline.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}

	stores, cleanup, err := pipeline.OpenStores(ctx, cfg.Storage, *migrate)
	if err != nil {
		return fmt.Errorf("open stores: %w", err)
	}
	defer cleanup()

	res, err := pipeline.New(opts, stores).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Run %s: %d movies ranked at %d prices (%d clamped, %d skipped)\n",
		res.Run.RunID, res.Run.MovieCount, res.Run.BaseYear, res.Run.ClampedCount, res.Run.SkippedCount)
	for _, o := range res.Outputs {
		fmt.Printf("  %-9s %s\n", o.Format, o.Path)
	}
	return nil
}
