// Package config loads run configuration from defaults, a TOML file,
// .env and BOXOFFICE_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"box-office-lab/internal/adjust"
	"box-office-lab/internal/cpi"
	"box-office-lab/internal/domain"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BOXOFFICE_"

// Config is the complete run configuration.
type Config struct {
	Pipeline PipelineConfig `toml:"pipeline"`
	Paths    PathsConfig    `toml:"paths"`
	Storage  StorageConfig  `toml:"storage"`
	Logging  LoggingConfig  `toml:"logging"`
	Server   ServerConfig   `toml:"server"`
}

// PipelineConfig controls index construction and adjustment.
type PipelineConfig struct {
	BaseYear     int    `toml:"base_year"`
	Region       string `toml:"region"`
	RegionColumn string `toml:"region_column"`
	CpiSkipRows  int    `toml:"cpi_skip_rows"`
	CpiSheet     string `toml:"cpi_sheet"`
	RevenueSheet string `toml:"revenue_sheet"`
	FaultPolicy  string `toml:"fault_policy"`
	TopN         int    `toml:"top_n"`
}

// PathsConfig locates inputs and the report directory.
type PathsConfig struct {
	CpiFile     string `toml:"cpi_file"`
	RevenueFile string `toml:"revenue_file"`
	OutputDir   string `toml:"output_dir"`
}

// StorageConfig selects where runs are persisted.
// The postgres backend stores runs and rankings in PostgreSQL and the
// CPI index in ClickHouse, so it needs both DSNs.
type StorageConfig struct {
	Backend       string `toml:"backend"`
	PostgresDSN   string `toml:"postgres_dsn"`
	ClickhouseDSN string `toml:"clickhouse_dsn"`
}

// LoggingConfig is passed to logging.Setup.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ServerConfig configures cmd/server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			BaseYear:     domain.DefaultBaseYear,
			Region:       domain.DefaultRegion,
			RegionColumn: cpi.DefaultRegionColumn,
			CpiSkipRows:  4,
			FaultPolicy:  string(adjust.PolicyFailFast),
			TopN:         50,
		},
		Paths: PathsConfig{
			CpiFile:     "data/API_FP.CPI.TOTL.ZG_DS2_en_csv_v2_122376.csv",
			RevenueFile: "data/enhanced_box_office_data(2000-2024)u.csv",
			OutputDir:   "output",
		},
		Storage: StorageConfig{
			Backend: BackendMemory,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load builds a Config from defaults, the TOML file at path (skipped when
// path is empty), a .env file in the working directory if present, and the
// process environment. The result is not validated; call Validate after
// applying flag overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// Real environment wins over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from BOXOFFICE_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	strVars := map[string]*string{
		"REGION":          &c.Pipeline.Region,
		"REGION_COLUMN":   &c.Pipeline.RegionColumn,
		"CPI_SHEET":       &c.Pipeline.CpiSheet,
		"REVENUE_SHEET":   &c.Pipeline.RevenueSheet,
		"FAULT_POLICY":    &c.Pipeline.FaultPolicy,
		"CPI_FILE":        &c.Paths.CpiFile,
		"REVENUE_FILE":    &c.Paths.RevenueFile,
		"OUTPUT_DIR":      &c.Paths.OutputDir,
		"STORAGE_BACKEND": &c.Storage.Backend,
		"POSTGRES_DSN":    &c.Storage.PostgresDSN,
		"CLICKHOUSE_DSN":  &c.Storage.ClickhouseDSN,
		"LOG_LEVEL":       &c.Logging.Level,
		"LOG_FORMAT":      &c.Logging.Format,
		"SERVER_ADDR":     &c.Server.Addr,
	}
	for name, dst := range strVars {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}

	intVars := map[string]*int{
		"BASE_YEAR":     &c.Pipeline.BaseYear,
		"CPI_SKIP_ROWS": &c.Pipeline.CpiSkipRows,
		"TOP_N":         &c.Pipeline.TopN,
	}
	for name, dst := range intVars {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %q is not an integer", EnvPrefix, name, v)
		}
		*dst = n
	}

	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Pipeline.BaseYear <= 0 {
		return fmt.Errorf("pipeline.base_year must be positive, got %d", c.Pipeline.BaseYear)
	}
	if strings.TrimSpace(c.Pipeline.Region) == "" {
		return errors.New("pipeline.region is required")
	}
	if strings.TrimSpace(c.Pipeline.RegionColumn) == "" {
		return errors.New("pipeline.region_column is required")
	}
	if c.Pipeline.CpiSkipRows < 0 {
		return fmt.Errorf("pipeline.cpi_skip_rows must not be negative, got %d", c.Pipeline.CpiSkipRows)
	}
	if c.Pipeline.TopN < 0 {
		return fmt.Errorf("pipeline.top_n must not be negative, got %d", c.Pipeline.TopN)
	}
	if _, err := adjust.ParseFaultPolicy(c.Pipeline.FaultPolicy); err != nil {
		return fmt.Errorf("pipeline.fault_policy: %w", err)
	}
	if c.Paths.CpiFile == "" {
		return errors.New("paths.cpi_file is required")
	}
	if c.Paths.RevenueFile == "" {
		return errors.New("paths.revenue_file is required")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir is required")
	}

	switch c.Storage.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.Storage.PostgresDSN == "" {
			return errors.New("storage.postgres_dsn is required for the postgres backend")
		}
		if c.Storage.ClickhouseDSN == "" {
			return errors.New("storage.clickhouse_dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendMemory, BackendPostgres, c.Storage.Backend)
	}

	return nil
}
