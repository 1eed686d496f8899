package profile

import (
	"fmt"
	"math"
	"regexp"

	"github.com/madHatter106/state-of-the-climate/internal/anomaly"
)

// ValidationError reports the first invalid field of a profile
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var hexColorRe = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks all required constraints
func Validate(p *Profile) error {
	// === Meta ===
	if p.Meta.ProfileID == "" {
		return ValidationError{"meta.profile_id", "required"}
	}

	// === Climatology ===
	if p.Climatology.Column == "" {
		return ValidationError{"climatology.column", "required"}
	}
	c := p.Climatology
	if c.YearStart != 0 && c.YearEnd != 0 && c.YearStart > c.YearEnd {
		return ValidationError{"climatology", "year_start must be <= year_end"}
	}
	if _, err := anomaly.ParsePolicy(c.ZeroMeanPolicy); err != nil {
		return ValidationError{"climatology.zero_mean_policy", err.Error()}
	}

	// === Quality ===
	for field, v := range map[string]float64{
		"quality.min_month_coverage": p.Quality.MinMonthCoverage,
		"quality.min_value_coverage": p.Quality.MinValueCoverage,
		"quality.min_score":          p.Quality.MinScore,
	} {
		if v < 0 || v > 1 {
			return ValidationError{field, "must be in [0, 1]"}
		}
	}
	if err := validateWeightsSum([]float64{p.Quality.Weights.Month, p.Quality.Weights.Value}, 1.0, 1e-6); err != nil {
		return ValidationError{"quality.weights", err.Error()}
	}

	// === Plot ===
	if len(p.Plot.Labels) == 0 {
		return ValidationError{"plot.labels", "at least one label required"}
	}
	for name, hex := range p.Plot.Colors {
		if !hexColorRe.MatchString(hex) {
			return ValidationError{"plot.colors." + name, fmt.Sprintf("invalid colour %q", hex)}
		}
	}
	if p.Plot.FontSize < 0 || p.Plot.Width < 0 || p.Plot.Height < 0 {
		return ValidationError{"plot", "font_size, width and height must not be negative"}
	}

	return nil
}

func validateWeightsSum(weights []float64, expected, tolerance float64) error {
	sum := 0.0
	for _, w := range weights {
		if w < 0 {
			return fmt.Errorf("weights must not be negative")
		}
		sum += w
	}
	if math.Abs(sum-expected) > tolerance {
		return fmt.Errorf("weights sum to %.6f, want %.1f", sum, expected)
	}
	return nil
}
