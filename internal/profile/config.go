package profile

import (
	"fmt"

	"github.com/madHatter106/state-of-the-climate/internal/climatology"
	"github.com/madHatter106/state-of-the-climate/internal/contracts"
	"github.com/madHatter106/state-of-the-climate/internal/plot"
	"github.com/madHatter106/state-of-the-climate/internal/quality"
	"github.com/madHatter106/state-of-the-climate/pkg/config"
)

// Profile is a versioned run profile: reference window, quality thresholds
// and plot style. A run records the hash of the profile it used.
type Profile struct {
	Meta        Meta        `yaml:"meta" json:"meta"`
	Climatology Climatology `yaml:"climatology" json:"climatology"`
	Quality     Quality     `yaml:"quality" json:"quality"`
	Plot        Plot        `yaml:"plot" json:"plot"`
}

// Meta identifies the profile
type Meta struct {
	ProfileID   string `yaml:"profile_id" json:"profile_id"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description" json:"description"`
}

// Climatology holds the reference window; zero years derive from data
type Climatology struct {
	Column         string `yaml:"column" json:"column"`
	YearStart      int    `yaml:"year_start" json:"year_start"`
	YearEnd        int    `yaml:"year_end" json:"year_end"`
	ZeroMeanPolicy string `yaml:"zero_mean_policy" json:"zero_mean_policy"` // undefined, strict
}

// Quality holds coverage gate thresholds
type Quality struct {
	MinMonthCoverage float64      `yaml:"min_month_coverage" json:"min_month_coverage"`
	MinValueCoverage float64      `yaml:"min_value_coverage" json:"min_value_coverage"`
	MinScore         float64      `yaml:"min_score" json:"min_score"`
	Weights          ScoreWeights `yaml:"weights" json:"weights"`
}

// ScoreWeights sum to 1.0
type ScoreWeights struct {
	Month float64 `yaml:"month" json:"month"`
	Value float64 `yaml:"value" json:"value"`
}

// Plot holds the plot style and default labels
type Plot struct {
	Labels     []string          `yaml:"labels" json:"labels"`
	Colors     map[string]string `yaml:"colors" json:"colors"`
	FontSize   float64           `yaml:"font_size" json:"font_size"`
	Width      float64           `yaml:"width" json:"width"`   // inches
	Height     float64           `yaml:"height" json:"height"` // inches
	TimeFormat string            `yaml:"time_format" json:"time_format"`
}

// Default returns the built-in profile
func Default() *Profile {
	style := plot.DefaultStyle()
	gate := quality.DefaultConfig()

	return &Profile{
		Meta: Meta{
			ProfileID: "default",
			Version:   "1",
		},
		Climatology: Climatology{
			Column:         string(contracts.ColumnMean),
			ZeroMeanPolicy: "undefined",
		},
		Quality: Quality{
			MinMonthCoverage: gate.MinMonthCoverage,
			MinValueCoverage: gate.MinValueCoverage,
			MinScore:         gate.MinScore,
			Weights:          ScoreWeights{Month: gate.MonthWeight, Value: gate.ValueWeight},
		},
		Plot: Plot{
			Labels:     []string{string(contracts.ColumnMean), contracts.ColumnMean.AnomalyLabel()},
			Colors:     style.Colors,
			FontSize:   style.FontSize,
			Width:      style.Width,
			Height:     style.Height,
			TimeFormat: style.TimeFormat,
		},
	}
}

// Window returns the climatology reference window
func (p *Profile) Window() climatology.Window {
	return climatology.Window{YearStart: p.Climatology.YearStart, YearEnd: p.Climatology.YearEnd}
}

// QualityConfig returns the coverage gate thresholds
func (p *Profile) QualityConfig() quality.Config {
	return quality.Config{
		MinMonthCoverage: p.Quality.MinMonthCoverage,
		MinValueCoverage: p.Quality.MinValueCoverage,
		MinScore:         p.Quality.MinScore,
		MonthWeight:      p.Quality.Weights.Month,
		ValueWeight:      p.Quality.Weights.Value,
	}
}

// Style returns the plot style. Colours missing from the profile fall back
// to the default palette.
func (p *Profile) Style() plot.Style {
	style := plot.DefaultStyle()
	for name, hex := range p.Plot.Colors {
		style.Colors[name] = hex
	}
	if p.Plot.FontSize > 0 {
		style.FontSize = p.Plot.FontSize
	}
	if p.Plot.Width > 0 {
		style.Width = p.Plot.Width
	}
	if p.Plot.Height > 0 {
		style.Height = p.Plot.Height
	}
	if p.Plot.TimeFormat != "" {
		style.TimeFormat = p.Plot.TimeFormat
	}
	return style
}

// FromConfig builds the profile described by environment configuration
func FromConfig(cfg *config.Config) *Profile {
	p := Default()
	p.Meta.ProfileID = "env"
	p.Climatology.Column = cfg.Data.Column
	p.Climatology.YearStart = cfg.Climatology.YearStart
	p.Climatology.YearEnd = cfg.Climatology.YearEnd
	p.Climatology.ZeroMeanPolicy = cfg.Climatology.ZeroMeanPolicy
	if len(cfg.Plot.Labels) > 0 {
		p.Plot.Labels = cfg.Plot.Labels
	}
	return p
}

// Resolve returns the profile file named by cfg.ProfilePath, or the profile
// built from environment configuration when none is set. The raw YAML is nil
// for the latter.
func Resolve(cfg *config.Config) (*Profile, []byte, error) {
	if cfg.ProfilePath == "" {
		p := FromConfig(cfg)
		return p, nil, Validate(p)
	}

	p, data, err := Load(cfg.ProfilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("load profile %s: %w", cfg.ProfilePath, err)
	}
	return p, data, nil
}
