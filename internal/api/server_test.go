package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"box-office-lab/internal/domain"
	"box-office-lab/internal/observability"
	"box-office-lab/internal/storage/memory"
)

func ptr(v float64) *float64 { return &v }

func setupServer(t *testing.T) (*Server, *observability.Metrics) {
	t.Helper()
	ctx := context.Background()

	runs := memory.NewRunStore()
	revenues := memory.NewAdjustedRevenueStore()
	index := memory.NewIndexStore()

	started := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, runs.Insert(ctx, &domain.Run{
		RunID: "run-old", StartedAt: started.Add(-time.Hour), FinishedAt: started.Add(-time.Hour),
		Region: "World", RequestedBaseYear: 2024, BaseYear: 2024,
	}))
	require.NoError(t, runs.Insert(ctx, &domain.Run{
		RunID: "run-1", StartedAt: started, FinishedAt: started.Add(time.Second),
		Region: "World", RequestedBaseYear: 2025, BaseYear: 2024,
		IndexYears: 2, MovieCount: 3, ClampedCount: 1,
	}))

	mk := func(rank int, title, franchise string, nominal, adjusted float64) *domain.AdjustedRevenueRecord {
		return &domain.AdjustedRevenueRecord{
			RevenueRecord:     domain.RevenueRecord{Title: title, Year: 2023, Worldwide: nominal},
			RunID:             "run-1",
			MovieID:           title,
			IndexYear:         2023,
			IndexValue:        95,
			InflationFactor:   100.0 / 95,
			WorldwideAdjusted: adjusted,
			AdjustmentAmount:  adjusted - nominal,
			AdjustedRank:      rank,
			Franchise:         franchise,
		}
	}
	require.NoError(t, revenues.InsertBulk(ctx, []*domain.AdjustedRevenueRecord{
		mk(1, "Frozen II", "Disney", 1450, 1526),
		mk(2, "Toy Story 4", "Pixar", 1073, 1129),
		mk(3, "Moana", "Disney", 643, 676),
	}))
	require.NoError(t, index.InsertBulk(ctx, []*domain.IndexPoint{
		{RunID: "run-1", Year: 2023, PctChange: ptr(5.0), Value: 95},
		{RunID: "run-1", Year: 2024, Value: 100},
	}))

	m := observability.NewMetrics("test", prometheus.NewRegistry())
	return NewServer(Stores{Runs: runs, Revenues: revenues, Index: index}, m), m
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := setupServer(t)
	rec := get(t, s, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestLatestRun(t *testing.T) {
	s, _ := setupServer(t)
	rec := get(t, s, "/api/runs/latest")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got runResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, 2025, got.RequestedBaseYear)
	assert.Equal(t, 2024, got.BaseYear)
	assert.True(t, got.BaseYearFallback)
	assert.Equal(t, 3, got.MovieCount)
}

func TestLatestRun_Empty(t *testing.T) {
	s := NewServer(Stores{
		Runs:     memory.NewRunStore(),
		Revenues: memory.NewAdjustedRevenueStore(),
		Index:    memory.NewIndexStore(),
	}, observability.NewMetrics("test", prometheus.NewRegistry()))

	rec := get(t, s, "/api/runs/latest")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunByID(t *testing.T) {
	s, _ := setupServer(t)

	rec := get(t, s, "/api/runs/run-old")
	require.Equal(t, http.StatusOK, rec.Code)
	var got runResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "run-old", got.RunID)
	assert.False(t, got.BaseYearFallback)

	rec = get(t, s, "/api/runs/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"run not found"}`, rec.Body.String())
}

func TestRankings(t *testing.T) {
	s, _ := setupServer(t)

	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantTitle []string
	}{
		{"all", "", http.StatusOK, []string{"Frozen II", "Toy Story 4", "Moana"}},
		{"limit", "?limit=2", http.StatusOK, []string{"Frozen II", "Toy Story 4"}},
		{"zero means all", "?limit=0", http.StatusOK, []string{"Frozen II", "Toy Story 4", "Moana"}},
		{"negative", "?limit=-1", http.StatusBadRequest, nil},
		{"not a number", "?limit=abc", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, "/api/runs/run-1/rankings"+tt.query)
			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode != http.StatusOK {
				return
			}

			var got []rankingResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			require.Len(t, got, len(tt.wantTitle))
			for i, title := range tt.wantTitle {
				assert.Equal(t, title, got[i].Title)
				assert.Equal(t, i+1, got[i].Rank)
			}
		})
	}
}

func TestRankings_UnknownRun(t *testing.T) {
	s, _ := setupServer(t)
	rec := get(t, s, "/api/runs/missing/rankings")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIndex(t *testing.T) {
	s, _ := setupServer(t)
	rec := get(t, s, "/api/runs/run-1/index")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`[{"year":2023,"pct_change":5,"value":95},{"year":2024,"pct_change":null,"value":100}]`,
		rec.Body.String())
}

func TestFranchises(t *testing.T) {
	s, _ := setupServer(t)
	rec := get(t, s, "/api/runs/run-1/franchises")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []franchiseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Disney", got[0].Franchise)
	assert.Equal(t, 2, got[0].Movies)
	assert.InDelta(t, 2202.0, got[0].AdjustedWorldwide, 1e-9)
	assert.Equal(t, "Frozen II", got[0].BestTitle)
	assert.Equal(t, "Pixar", got[1].Franchise)
}

func TestRequestMetrics(t *testing.T) {
	s, m := setupServer(t)
	get(t, s, "/api/runs/run-1")
	get(t, s, "/api/runs/missing")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/api/runs/{runID}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/api/runs/{runID}", "404")))
}
