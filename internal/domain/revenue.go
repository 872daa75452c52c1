package domain

// RevenueRecord is one movie row of the nominal box-office table.
type RevenueRecord struct {
	Title     string  // release group / movie title
	Year      int     // release year
	Domestic  float64 // nominal domestic gross
	Foreign   float64 // nominal foreign gross
	Worldwide float64 // nominal worldwide gross
}

// ClampDirection tells whether a record's year fell outside the index range.
type ClampDirection string

const (
	ClampNone  ClampDirection = ""
	ClampBelow ClampDirection = "below"
	ClampAbove ClampDirection = "above"
)

// FranchiseOther labels records that match no franchise keyword.
const FranchiseOther = "Other"

// AdjustedRevenueRecord is a RevenueRecord restated in base-year currency.
// Corresponds to adjusted_revenues table in PostgreSQL.
type AdjustedRevenueRecord struct {
	RevenueRecord

	RunID             string         // pipeline run identifier
	MovieID           string         // SHA256(title|year)
	IndexYear         int            // year whose index value was used
	IndexValue        float64        // matched CPI index value (base = 100)
	Clamp             ClampDirection // set when IndexYear != Year
	InflationFactor   float64        // 100 / IndexValue
	DomesticAdjusted  float64        // Domestic * InflationFactor
	ForeignAdjusted   float64        // Foreign * InflationFactor
	WorldwideAdjusted float64        // Worldwide * InflationFactor
	AdjustmentAmount  float64        // WorldwideAdjusted - Worldwide
	AdjustedRank      int            // 1 = highest WorldwideAdjusted
	Franchise         string         // franchise label, FranchiseOther if none
}
