// Package pipeline runs one inflation adjustment end to end: load CPI,
// build the index, load revenues, adjust and rank, persist, write reports.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"box-office-lab/internal/adjust"
	"box-office-lab/internal/cpi"
	"box-office-lab/internal/domain"
	"box-office-lab/internal/franchise"
	"box-office-lab/internal/idhash"
	"box-office-lab/internal/logging"
	"box-office-lab/internal/movies"
	"box-office-lab/internal/observability"
	"box-office-lab/internal/reporting"
	"box-office-lab/internal/storage"
	"box-office-lab/internal/table"
)

// Stage names used in StageError and metrics.
const (
	StageLoadCPI     = "load_cpi"
	StageBuildIndex  = "build_index"
	StageLoadRevenue = "load_revenue"
	StageAdjust      = "adjust"
	StagePersist     = "persist"
	StageReport      = "report"
)

// Options are the inputs of one run.
type Options struct {
	CpiFile      string
	RevenueFile  string
	OutputDir    string // empty skips report files
	BaseYear     int
	Region       string
	RegionColumn string
	CpiSkipRows  int
	CpiSheet     string
	RevenueSheet string
	FaultPolicy  adjust.FaultPolicy
	TopN         int
}

// Stores receive the run's results.
type Stores struct {
	Backend  string // metrics label
	Runs     storage.RunStore
	Revenues storage.AdjustedRevenueStore
	Index    storage.IndexStore
}

// Result summarizes a finished run.
type Result struct {
	Run     *domain.Run
	Audit   *adjust.Audit
	Report  *reporting.Report
	Outputs []reporting.Output
}

// Pipeline orchestrates a run.
type Pipeline struct {
	opts    Options
	stores  Stores
	tagger  *franchise.Tagger
	metrics *observability.Metrics
	clock   func() time.Time
	newID   func() string
}

// New creates a pipeline with the default franchise tagger and metrics.
func New(opts Options, stores Stores) *Pipeline {
	if opts.BaseYear == 0 {
		opts.BaseYear = domain.DefaultBaseYear
	}
	if opts.Region == "" {
		opts.Region = domain.DefaultRegion
	}
	if opts.FaultPolicy == "" {
		opts.FaultPolicy = adjust.PolicyFailFast
	}
	return &Pipeline{
		opts:    opts,
		stores:  stores,
		tagger:  franchise.NewTagger(nil),
		metrics: observability.DefaultMetrics,
		clock:   func() time.Time { return time.Now().UTC() },
		newID:   func() string { return uuid.NewString() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (p *Pipeline) WithClock(clock func() time.Time) *Pipeline {
	p.clock = clock
	return p
}

// WithRunID sets the run id generator.
func (p *Pipeline) WithRunID(newID func() string) *Pipeline {
	p.newID = newID
	return p
}

// WithMetrics replaces the default metrics instance.
func (p *Pipeline) WithMetrics(m *observability.Metrics) *Pipeline {
	p.metrics = m
	return p
}

// WithTagger replaces the default franchise tagger.
func (p *Pipeline) WithTagger(t *franchise.Tagger) *Pipeline {
	p.tagger = t
	return p
}

// Run executes every stage. A failure is returned as *domain.StageError.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	runID := p.newID()
	ctx = logging.WithRun(ctx, runID)
	log := logging.FromContext(ctx)
	started := p.clock()

	log.Info("pipeline started",
		"cpi_file", p.opts.CpiFile,
		"revenue_file", p.opts.RevenueFile,
		"base_year", p.opts.BaseYear,
		"region", p.opts.Region,
		"fault_policy", string(p.opts.FaultPolicy),
	)

	res, err := p.run(ctx, log, runID, started)
	finished := p.clock()
	if err != nil {
		p.metrics.RecordPipelineRun(observability.StatusFailure, finished.Sub(started), finished)
		log.Error("pipeline failed", "error", err)
		return nil, err
	}

	p.metrics.RecordPipelineRun(observability.StatusSuccess, finished.Sub(started), finished)
	log.Info("pipeline finished",
		"movies", res.Run.MovieCount,
		"clamped", res.Run.ClampedCount,
		"skipped", res.Run.SkippedCount,
		"outputs", len(res.Outputs),
	)
	return res, nil
}

func (p *Pipeline) run(ctx context.Context, log *slog.Logger, runID string, started time.Time) (*Result, error) {
	// 1. CPI series
	var series domain.CpiSeries
	err := p.stage(ctx, StageLoadCPI, func() error {
		t, err := table.ReadFile(ctx, p.opts.CpiFile, table.Options{SkipRows: p.opts.CpiSkipRows, Sheet: p.opts.CpiSheet})
		if err != nil {
			return err
		}
		series, err = cpi.LoadSeries(t, cpi.LoaderConfig{Region: p.opts.Region, RegionColumn: p.opts.RegionColumn})
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info("cpi series loaded", "years", series.Len())

	// 2. Index
	var idx *domain.CpiIndex
	err = p.stage(ctx, StageBuildIndex, func() error {
		var err error
		idx, err = cpi.BuildIndex(series, p.opts.BaseYear)
		return err
	})
	if err != nil {
		return nil, err
	}
	p.metrics.RecordIndex(idx.Len(), idx.BaseYearFallback())
	if idx.BaseYearFallback() {
		log.Warn("base year not in cpi data, re-based on latest year",
			"requested_base_year", idx.RequestedBaseYear(),
			"base_year", idx.BaseYear(),
		)
	}
	log.Info("cpi index built", "years", idx.Len(), "min_year", idx.MinYear(), "max_year", idx.MaxYear())

	// 3. Revenues
	var records []domain.RevenueRecord
	err = p.stage(ctx, StageLoadRevenue, func() error {
		t, err := table.ReadFile(ctx, p.opts.RevenueFile, table.Options{Sheet: p.opts.RevenueSheet})
		if err != nil {
			return err
		}
		records, err = movies.Parse(t)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info("revenue table loaded", "movies", len(records))

	// 4. Adjust and rank
	var adjusted []*domain.AdjustedRevenueRecord
	var audit *adjust.Audit
	err = p.stage(ctx, StageAdjust, func() error {
		var err error
		adjusted, audit, err = adjust.NewAdjuster(idx, p.opts.FaultPolicy).Adjust(records)
		return err
	})
	if err != nil {
		return nil, err
	}
	for _, r := range adjusted {
		r.RunID = runID
		r.MovieID = idhash.ComputeMovieID(r.Title, r.Year)
	}
	p.tagger.TagAll(adjusted)

	p.metrics.RecordAdjusted(len(adjusted))
	for _, e := range audit.Extrapolations {
		p.metrics.RecordExtrapolation(string(e.Direction))
		log.Warn("release year outside cpi range, clamped",
			"title", e.Title, "year", e.Year, "index_year", e.IndexYear, "direction", string(e.Direction))
	}
	for _, s := range audit.Skipped {
		p.metrics.RecordSkipped(skipReason(s.Err))
		log.Warn("record skipped", "title", s.Record.Title, "year", s.Record.Year, "error", s.Err)
	}

	// 5. Persist
	run := &domain.Run{
		RunID:             runID,
		StartedAt:         started,
		FinishedAt:        p.clock(),
		Region:            p.opts.Region,
		RequestedBaseYear: idx.RequestedBaseYear(),
		BaseYear:          idx.BaseYear(),
		CpiSource:         p.opts.CpiFile,
		RevenueSource:     p.opts.RevenueFile,
		IndexYears:        idx.Len(),
		MovieCount:        len(adjusted),
		ClampedCount:      len(audit.Extrapolations),
		SkippedCount:      len(audit.Skipped),
	}
	err = p.stage(ctx, StagePersist, func() error {
		if err := p.timed("insert_run", func() error { return p.stores.Runs.Insert(ctx, run) }); err != nil {
			return err
		}
		if err := p.timed("insert_index", func() error {
			return p.stores.Index.InsertBulk(ctx, idx.Points(runID, series))
		}); err != nil {
			return err
		}
		return p.timed("insert_rankings", func() error { return p.stores.Revenues.InsertBulk(ctx, adjusted) })
	})
	if err != nil {
		return nil, err
	}

	// 6. Reports
	res := &Result{Run: run, Audit: audit}
	err = p.stage(ctx, StageReport, func() error {
		gen := reporting.NewGenerator(p.stores.Runs, p.stores.Revenues, p.stores.Index).WithClock(p.clock)
		report, err := gen.Generate(ctx, runID, p.opts.TopN, qualityFromAudit(audit))
		if err != nil {
			return err
		}
		res.Report = report

		if p.opts.OutputDir == "" {
			return nil
		}
		outputs, err := reporting.WriteAll(p.opts.OutputDir, report, p.tagger)
		for _, o := range outputs {
			p.metrics.RecordReport(o.Format)
			log.Info("report written", "format", o.Format, "path", o.Path)
		}
		res.Outputs = outputs
		return err
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// stage runs fn, records its duration and wraps any error with the stage name.
func (p *Pipeline) stage(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return &domain.StageError{Stage: name, Err: err}
	}
	start := time.Now()
	err := fn()
	p.metrics.RecordStage(name, time.Since(start))
	if err != nil {
		return &domain.StageError{Stage: name, Err: err}
	}
	return nil
}

func (p *Pipeline) timed(operation string, fn func() error) error {
	start := time.Now()
	err := fn()
	p.metrics.RecordDBQuery(p.stores.Backend, operation, time.Since(start), err)
	return err
}

func qualityFromAudit(a *adjust.Audit) reporting.DataQuality {
	q := reporting.DataQuality{Extrapolations: a.Extrapolations}
	for _, s := range a.Skipped {
		q.Skipped = append(q.Skipped, reporting.SkippedRow{
			Title:  s.Record.Title,
			Year:   s.Record.Year,
			Reason: s.Err.Error(),
		})
	}
	return q
}

func skipReason(err error) string {
	var dz *domain.DivisionByZeroError
	var gap *domain.InteriorGapError
	var nf *domain.NonFiniteRevenueError
	switch {
	case errors.As(err, &dz):
		return "division_by_zero"
	case errors.As(err, &gap):
		return "interior_gap"
	case errors.As(err, &nf):
		return "non_finite_revenue"
	default:
		return "other"
	}
}
