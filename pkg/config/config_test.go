package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	// Check defaults
	assert.Equal(t, "8089", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.Data.Minimal)
	assert.Equal(t, "chl_a_mean", cfg.Data.Column)
	assert.Equal(t, 0, cfg.Climatology.YearStart)
	assert.Equal(t, "undefined", cfg.Climatology.ZeroMeanPolicy)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, []string{"chl_a_mean", "chl_a_mean_anomaly"}, cfg.Plot.Labels)
}

func TestLoadWithCustomValues(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("SOC_SENSORS", "viirs=/data/v.txt, aqua=/data/a.txt,broken")
	t.Setenv("SOC_CLIM_YEAR_START", "2003")
	t.Setenv("SOC_CLIM_YEAR_END", "2012")
	t.Setenv("SOC_ZERO_MEAN_POLICY", "strict")
	t.Setenv("PLOT_LABELS", "chl_a_mean, perc_chl_a_mean_anomaly")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, map[string]string{"aqua": "/data/a.txt", "viirs": "/data/v.txt"}, cfg.Data.Sensors)
	assert.Equal(t, []string{"aqua", "viirs"}, cfg.SensorNames())
	assert.Equal(t, 2003, cfg.Climatology.YearStart)
	assert.Equal(t, 2012, cfg.Climatology.YearEnd)
	assert.Equal(t, "strict", cfg.Climatology.ZeroMeanPolicy)
	assert.Equal(t, []string{"chl_a_mean", "perc_chl_a_mean_anomaly"}, cfg.Plot.Labels)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"invalid env", map[string]string{"ENV": "invalid"}},
		{"inverted range", map[string]string{"SOC_CLIM_YEAR_START": "2010", "SOC_CLIM_YEAR_END": "2005"}},
		{"unknown policy", map[string]string{"SOC_ZERO_MEAN_POLICY": "infinite"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "2h")
	assert.Equal(t, 2*time.Hour, getEnvAsDuration("TEST_DURATION", "1h"))

	t.Setenv("TEST_DURATION", "garbage")
	assert.Equal(t, time.Hour, getEnvAsDuration("TEST_DURATION", "1h"))
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_INT", "100")
	assert.Equal(t, 100, getEnvAsInt("TEST_INT", 50))

	os.Unsetenv("TEST_INT")
	assert.Equal(t, 50, getEnvAsInt("TEST_INT", 50))
}

func TestGetEnvAsFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "0.5")
	assert.Equal(t, 0.5, getEnvAsFloat("TEST_FLOAT", 2))
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "false")
	assert.False(t, getEnvAsBool("TEST_BOOL", true))
}
