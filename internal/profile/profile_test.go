package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madHatter106/state-of-the-climate/pkg/config"
)

const sampleYAML = `meta:
  profile_id: soc2017
  version: "2"
  description: NASA State of the Climate 2017 figures
climatology:
  column: chl_a_mean
  year_start: 2003
  year_end: 2012
  zero_mean_policy: strict
quality:
  min_month_coverage: 1.0
  min_value_coverage: 0.9
  min_score: 0.8
  weights:
    month: 0.5
    value: 0.5
plot:
  labels: [chl_a_mean_anomaly, perc_chl_a_mean_anomaly]
  colors:
    aqua: "#112233"
  font_size: 12
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "soc2017", p.Meta.ProfileID)
	assert.Equal(t, 2003, p.Window().YearStart)
	assert.Equal(t, 2012, p.Window().YearEnd)

	q := p.QualityConfig()
	assert.Equal(t, 0.9, q.MinValueCoverage)
	assert.Equal(t, 0.5, q.MonthWeight)

	style := p.Style()
	assert.Equal(t, "#112233", style.Colors["aqua"])
	assert.Equal(t, "#A60628", style.Colors["viirs"], "missing colours fall back to defaults")
	assert.Equal(t, 12.0, style.FontSize)
	assert.Equal(t, 17.0, style.Width)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte(sampleYAML + "extra: 1\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Profile)
		field  string
	}{
		{"missing id", func(p *Profile) { p.Meta.ProfileID = "" }, "meta.profile_id"},
		{"inverted window", func(p *Profile) { p.Climatology.YearStart, p.Climatology.YearEnd = 2012, 2003 }, "climatology"},
		{"bad policy", func(p *Profile) { p.Climatology.ZeroMeanPolicy = "zero" }, "climatology.zero_mean_policy"},
		{"threshold range", func(p *Profile) { p.Quality.MinScore = 1.5 }, "quality.min_score"},
		{"weights sum", func(p *Profile) { p.Quality.Weights.Value = 0.7 }, "quality.weights"},
		{"no labels", func(p *Profile) { p.Plot.Labels = nil }, "plot.labels"},
		{"bad colour", func(p *Profile) { p.Plot.Colors["mei"] = "green" }, "plot.colors.mei"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(p)

			var verr ValidationError
			require.True(t, errors.As(Validate(p), &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	assert.NoError(t, Validate(Default()))
}

func TestHash(t *testing.T) {
	a, err := Hash(Default())
	require.NoError(t, err)
	assert.Len(t, a, 64)

	b, err := Hash(Default())
	require.NoError(t, err)
	assert.Equal(t, a, b, "hash is deterministic")

	changed := Default()
	changed.Climatology.YearStart = 2003
	c, err := Hash(changed)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestLoadAndSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	p, data, err := Load(path)
	require.NoError(t, err)

	snap, err := NewRunSnapshot(p, data, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", snap.RunID)
	assert.Equal(t, "soc2017", snap.ProfileID)
	assert.Equal(t, sampleYAML, snap.ProfileYAML)

	_, _, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	cfg := &config.Config{
		Data:        config.DataConfig{Column: "chl_a_mean"},
		Climatology: config.ClimatologyConfig{YearStart: 2003, YearEnd: 2012, ZeroMeanPolicy: "undefined"},
		Plot:        config.PlotConfig{Labels: []string{"chl_a_mean"}},
	}

	p, data, err := Resolve(cfg)
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.Equal(t, "env", p.Meta.ProfileID)
	assert.Equal(t, 2003, p.Climatology.YearStart)
	assert.Equal(t, []string{"chl_a_mean"}, p.Plot.Labels)

	path := filepath.Join(t.TempDir(), "soc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))
	cfg.ProfilePath = path

	p, data, err = Resolve(cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "strict", p.Climatology.ZeroMeanPolicy)

	cfg.ProfilePath = filepath.Join(t.TempDir(), "missing.yaml")
	_, _, err = Resolve(cfg)
	assert.Error(t, err)
}

func TestLoad_Bundled(t *testing.T) {
	path := "../../config/soc2017.yaml"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skip("profile file not found")
	}

	p, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "soc2017", p.Meta.ProfileID)
	assert.Equal(t, 2003, p.Climatology.YearStart)
	assert.Len(t, p.Plot.Labels, 3)
}
