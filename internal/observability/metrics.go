// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Pipeline metrics
	PipelineRunsTotal *prometheus.CounterVec
	PipelineDuration  *prometheus.HistogramVec
	StageDuration     *prometheus.HistogramVec
	ReportsGenerated  *prometheus.CounterVec

	// Adjustment metrics
	MoviesAdjusted    prometheus.Counter
	Extrapolations    *prometheus.CounterVec
	RecordsSkipped    *prometheus.CounterVec
	BaseYearFallbacks prometheus.Counter
	IndexYears        prometheus.Gauge

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec

	// Health metrics
	LastSuccessfulPipeline prometheus.Gauge
}

// NewMetrics creates a new Metrics instance registered with reg.
// A nil reg registers with the Prometheus default registerer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "box_office_lab"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		// Pipeline metrics
		PipelineRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total number of pipeline runs by status",
		}, []string{"status"}),
		PipelineDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "duration_seconds",
			Help:      "Pipeline execution duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		}, []string{"status"}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		ReportsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "reports_generated_total",
			Help:      "Total number of report files written by format",
		}, []string{"format"}),

		// Adjustment metrics
		MoviesAdjusted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "adjust",
			Name:      "movies_adjusted_total",
			Help:      "Total number of revenue records restated in base-year terms",
		}),
		Extrapolations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "adjust",
			Name:      "extrapolations_total",
			Help:      "Total number of records clamped to the index boundary by direction",
		}, []string{"direction"}),
		RecordsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "adjust",
			Name:      "records_skipped_total",
			Help:      "Total number of records excluded under the skip fault policy by reason",
		}, []string{"reason"}),
		BaseYearFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cpi",
			Name:      "base_year_fallbacks_total",
			Help:      "Total number of index builds that re-based on the latest year",
		}),
		IndexYears: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cpi",
			Name:      "index_years",
			Help:      "Number of years covered by the last built CPI index",
		}),

		// Database metrics
		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),

		// HTTP metrics
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of API requests by route and status code",
		}, []string{"route", "code"}),

		// Health metrics
		LastSuccessfulPipeline: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_pipeline_timestamp",
			Help:      "Unix timestamp of last successful pipeline run",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("", nil)

// RecordPipelineRun records a finished pipeline run and, on success, its timestamp.
func (m *Metrics) RecordPipelineRun(status string, duration time.Duration, finishedAt time.Time) {
	m.PipelineRunsTotal.WithLabelValues(status).Inc()
	m.PipelineDuration.WithLabelValues(status).Observe(duration.Seconds())
	if status == StatusSuccess {
		m.LastSuccessfulPipeline.Set(float64(finishedAt.Unix()))
	}
}

// RecordStage records the duration of one pipeline stage.
func (m *Metrics) RecordStage(stage string, duration time.Duration) {
	m.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordIndex records the size of a built index and whether the base year fell back.
func (m *Metrics) RecordIndex(years int, fallback bool) {
	m.IndexYears.Set(float64(years))
	if fallback {
		m.BaseYearFallbacks.Inc()
	}
}

// RecordAdjusted adds n to the adjusted movies counter.
func (m *Metrics) RecordAdjusted(n int) {
	m.MoviesAdjusted.Add(float64(n))
}

// RecordExtrapolation counts one clamp in direction ("below" or "above").
func (m *Metrics) RecordExtrapolation(direction string) {
	m.Extrapolations.WithLabelValues(direction).Inc()
}

// RecordSkipped counts one skipped record.
func (m *Metrics) RecordSkipped(reason string) {
	m.RecordsSkipped.WithLabelValues(reason).Inc()
}

// RecordReport counts one written report file.
func (m *Metrics) RecordReport(format string) {
	m.ReportsGenerated.WithLabelValues(format).Inc()
}

// RecordDBQuery records database query metrics.
func (m *Metrics) RecordDBQuery(database, operation string, duration time.Duration, err error) {
	m.DBQueryDuration.WithLabelValues(database, operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}

// RecordHTTPRequest counts one API request.
func (m *Metrics) RecordHTTPRequest(route string, code int) {
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// Pipeline run statuses.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)
