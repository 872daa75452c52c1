package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"box-office-lab/internal/domain"
	"box-office-lab/internal/reporting"
)

type runResponse struct {
	RunID             string    `json:"run_id"`
	StartedAt         time.Time `json:"started_at"`
	FinishedAt        time.Time `json:"finished_at"`
	Region            string    `json:"region"`
	RequestedBaseYear int       `json:"requested_base_year"`
	BaseYear          int       `json:"base_year"`
	BaseYearFallback  bool      `json:"base_year_fallback"`
	CpiSource         string    `json:"cpi_source"`
	RevenueSource     string    `json:"revenue_source"`
	IndexYears        int       `json:"index_years"`
	MovieCount        int       `json:"movie_count"`
	ClampedCount      int       `json:"clamped_count"`
	SkippedCount      int       `json:"skipped_count"`
}

type rankingResponse struct {
	Rank              int     `json:"adjusted_rank"`
	MovieID           string  `json:"movie_id"`
	Title             string  `json:"title"`
	Year              int     `json:"year"`
	Worldwide         float64 `json:"worldwide"`
	Domestic          float64 `json:"domestic"`
	Foreign           float64 `json:"foreign"`
	IndexYear         int     `json:"index_year"`
	IndexValue        float64 `json:"index_value"`
	Clamp             string  `json:"clamp,omitempty"`
	InflationFactor   float64 `json:"inflation_factor"`
	WorldwideAdjusted float64 `json:"worldwide_adjusted"`
	DomesticAdjusted  float64 `json:"domestic_adjusted"`
	ForeignAdjusted   float64 `json:"foreign_adjusted"`
	AdjustmentAmount  float64 `json:"adjustment_amount"`
	Franchise         string  `json:"franchise"`
}

type indexPointResponse struct {
	Year      int      `json:"year"`
	PctChange *float64 `json:"pct_change"`
	Value     float64  `json:"value"`
}

type franchiseResponse struct {
	Franchise         string  `json:"franchise"`
	Movies            int     `json:"movies"`
	NominalWorldwide  float64 `json:"nominal_worldwide"`
	AdjustedWorldwide float64 `json:"adjusted_worldwide"`
	BestTitle         string  `json:"best_title"`
	BestRank          int     `json:"best_rank"`
}

func toRunResponse(r *domain.Run) runResponse {
	return runResponse{
		RunID:             r.RunID,
		StartedAt:         r.StartedAt,
		FinishedAt:        r.FinishedAt,
		Region:            r.Region,
		RequestedBaseYear: r.RequestedBaseYear,
		BaseYear:          r.BaseYear,
		BaseYearFallback:  r.BaseYear != r.RequestedBaseYear,
		CpiSource:         r.CpiSource,
		RevenueSource:     r.RevenueSource,
		IndexYears:        r.IndexYears,
		MovieCount:        r.MovieCount,
		ClampedCount:      r.ClampedCount,
		SkippedCount:      r.SkippedCount,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleLatestRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.stores.Runs.GetLatest(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, toRunResponse(run))
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.stores.Runs.GetByID(r.Context(), chi.URLParam(r, "runID"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, toRunResponse(run))
}

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	runID := chi.URLParam(r, "runID")
	if _, err := s.stores.Runs.GetByID(r.Context(), runID); err != nil {
		writeStoreError(w, r, err)
		return
	}

	records, err := s.stores.Revenues.GetTopN(r.Context(), runID, limit)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	out := make([]rankingResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, rankingResponse{
			Rank:              rec.AdjustedRank,
			MovieID:           rec.MovieID,
			Title:             rec.Title,
			Year:              rec.Year,
			Worldwide:         rec.Worldwide,
			Domestic:          rec.Domestic,
			Foreign:           rec.Foreign,
			IndexYear:         rec.IndexYear,
			IndexValue:        rec.IndexValue,
			Clamp:             string(rec.Clamp),
			InflationFactor:   rec.InflationFactor,
			WorldwideAdjusted: rec.WorldwideAdjusted,
			DomesticAdjusted:  rec.DomesticAdjusted,
			ForeignAdjusted:   rec.ForeignAdjusted,
			AdjustmentAmount:  rec.AdjustmentAmount,
			Franchise:         rec.Franchise,
		})
	}
	writeJSON(w, out)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	if _, err := s.stores.Runs.GetByID(r.Context(), runID); err != nil {
		writeStoreError(w, r, err)
		return
	}

	points, err := s.stores.Index.GetByRunID(r.Context(), runID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	out := make([]indexPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, indexPointResponse{Year: p.Year, PctChange: p.PctChange, Value: p.Value})
	}
	writeJSON(w, out)
}

func (s *Server) handleFranchises(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	if _, err := s.stores.Runs.GetByID(r.Context(), runID); err != nil {
		writeStoreError(w, r, err)
		return
	}

	records, err := s.stores.Revenues.GetByRunID(r.Context(), runID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	summaries := reporting.SummarizeFranchises(records)
	out := make([]franchiseResponse, 0, len(summaries))
	for _, f := range summaries {
		out = append(out, franchiseResponse(f))
	}
	writeJSON(w, out)
}
