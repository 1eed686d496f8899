package contracts

import "time"

// CoverageSnapshot describes how well a table covers its climatology window
// ⭐ SSOT: coverage information handed from the quality gate to callers
type CoverageSnapshot struct {
	Source        string             `json:"source"`
	Column        Column             `json:"column"`
	YearStart     int                `json:"year_start"`
	YearEnd       int                `json:"year_end"`
	TotalRows     int                `json:"total_rows"`
	WindowRows    int                `json:"window_rows"`
	MonthCounts   map[time.Month]int `json:"month_counts"`
	MissingMonths []time.Month       `json:"missing_months,omitempty"`
	Coverage      map[string]float64 `json:"coverage"`      // month_coverage, value_coverage
	QualityScore  float64            `json:"quality_score"` // 0.0 ~ 1.0
	Passed        bool               `json:"passed"`
}

// IsValid checks if the snapshot meets minimum requirements
func (d *CoverageSnapshot) IsValid() bool {
	return d.QualityScore >= 0.7 && d.WindowRows > 0
}

// CoverageRate returns the average coverage rate across all coverage kinds
func (d *CoverageSnapshot) CoverageRate() float64 {
	if len(d.Coverage) == 0 {
		return 0.0
	}

	total := 0.0
	for _, rate := range d.Coverage {
		total += rate
	}

	return total / float64(len(d.Coverage))
}
