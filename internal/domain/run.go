package domain

import "time"

// Run is one execution of the adjustment pipeline.
// Corresponds to runs table in PostgreSQL.
type Run struct {
	RunID             string    // uuid
	StartedAt         time.Time // UTC
	FinishedAt        time.Time // UTC
	Region            string    // CPI row that was selected
	RequestedBaseYear int       // configured base year
	BaseYear          int       // base year actually used (latest year on fallback)
	CpiSource         string    // CPI table path
	RevenueSource     string    // revenue table path
	IndexYears        int       // number of indexed years
	MovieCount        int       // adjusted (ranked) records
	ClampedCount      int       // records priced at a boundary year
	SkippedCount      int       // records excluded under the skip policy
}
