package quality

import (
	"math"
	"time"

	"github.com/madHatter106/state-of-the-climate/internal/contracts"
)

// QualityGate checks how well a table covers its climatology window
type QualityGate struct {
	config Config
}

// Config holds quality gate thresholds
type Config struct {
	MinMonthCoverage float64 `yaml:"min_month_coverage"` // 1.0: all twelve months
	MinValueCoverage float64 `yaml:"min_value_coverage"` // share of non-NaN values in the window
	MinScore         float64 `yaml:"min_score"`

	// score weights, expected to sum to 1
	MonthWeight float64 `yaml:"month_weight"`
	ValueWeight float64 `yaml:"value_weight"`
}

// DefaultConfig returns the thresholds used by the pipeline
func DefaultConfig() Config {
	return Config{
		MinMonthCoverage: 1.0,
		MinValueCoverage: 0.8,
		MinScore:         0.7,
		MonthWeight:      0.6,
		ValueWeight:      0.4,
	}
}

// NewQualityGate creates a new QualityGate instance
func NewQualityGate(config Config) *QualityGate {
	return &QualityGate{config: config}
}

// Check builds a coverage snapshot for t against its climatology c
// ⭐ SSOT: coverage check between the climatology and plot stages
func (g *QualityGate) Check(t *contracts.Table, c *contracts.Climatology) *contracts.CoverageSnapshot {
	snapshot := &contracts.CoverageSnapshot{
		Source:      t.Name,
		Column:      c.Column,
		YearStart:   c.YearStart,
		YearEnd:     c.YearEnd,
		TotalRows:   t.Len(),
		MonthCounts: make(map[time.Month]int, 12),
		Coverage:    make(map[string]float64, 2),
	}

	// 1. Rows inside the window and their values
	valid := 0
	for i, row := range t.Rows {
		y := row.Timestamp.Year()
		if y < c.YearStart || y > c.YearEnd {
			continue
		}
		snapshot.WindowRows++

		v, err := t.Value(i, c.Column)
		if err == nil && !math.IsNaN(v) {
			valid++
		}
	}

	// 2. Months the climatology could define
	defined := 0
	for _, m := range c.Months {
		snapshot.MonthCounts[m.Month] = m.Count
		if m.Defined() {
			defined++
		}
	}
	snapshot.MissingMonths = c.MissingMonths()

	snapshot.Coverage["month_coverage"] = float64(defined) / 12
	if snapshot.WindowRows > 0 {
		snapshot.Coverage["value_coverage"] = float64(valid) / float64(snapshot.WindowRows)
	} else {
		snapshot.Coverage["value_coverage"] = 0
	}

	// 3. Score and verdict
	snapshot.QualityScore = g.calculateScore(snapshot.Coverage)
	snapshot.Passed = snapshot.Coverage["month_coverage"] >= g.config.MinMonthCoverage &&
		snapshot.Coverage["value_coverage"] >= g.config.MinValueCoverage &&
		snapshot.QualityScore >= g.config.MinScore

	return snapshot
}

// calculateScore calculates overall quality score using weighted average
func (g *QualityGate) calculateScore(coverage map[string]float64) float64 {
	weights := map[string]float64{
		"month_coverage": g.config.MonthWeight,
		"value_coverage": g.config.ValueWeight,
	}

	score := 0.0
	for key, weight := range weights {
		if cov, exists := coverage[key]; exists {
			score += cov * weight
		}
	}

	return score
}
