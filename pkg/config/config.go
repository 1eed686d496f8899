package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: every environment variable is read here and nowhere else
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Pipeline inputs
	Data DataConfig

	// Climatology reference window and anomaly policy
	Climatology ClimatologyConfig

	// External climate index (MEI)
	MEI MEIConfig

	// Outbound HTTP
	HTTP HTTPConfig

	// Plot collaborator
	Plot PlotConfig

	// Optional YAML run profile; overrides climatology, quality and plot settings
	ProfilePath string

	// Cron expression for the scheduler (seconds field included)
	Schedule string

	// Logging
	LogLevel  string
	LogFormat string
}

// DataConfig holds the per-sensor record sources
type DataConfig struct {
	// Sensors maps a sensor label (aqua, viirs, swf) to a record file path
	Sensors map[string]string
	Minimal bool
	Column  string
}

// ClimatologyConfig holds the reference period. Zero means "derive from data".
type ClimatologyConfig struct {
	YearStart      int
	YearEnd        int
	ZeroMeanPolicy string // undefined, strict
}

// MEIConfig holds the NOAA Multivariate ENSO Index table source
type MEIConfig struct {
	URL     string
	Enabled bool
}

// HTTPConfig holds outbound HTTP client settings
type HTTPConfig struct {
	Timeout    time.Duration
	RateLimit  float64 // requests per second, 0 disables limiting
	MaxRetries int
}

// PlotConfig holds plot output settings
type PlotConfig struct {
	Output string
	Labels []string
}

// Load reads configuration from environment variables
// ⭐ SSOT: the only caller of os.Getenv()
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		Data: DataConfig{
			Sensors: getEnvAsMap("SOC_SENSORS"),
			Minimal: getEnvAsBool("SOC_MINIMAL", true),
			Column:  getEnv("SOC_COLUMN", "chl_a_mean"),
		},

		Climatology: ClimatologyConfig{
			YearStart:      getEnvAsInt("SOC_CLIM_YEAR_START", 0),
			YearEnd:        getEnvAsInt("SOC_CLIM_YEAR_END", 0),
			ZeroMeanPolicy: getEnv("SOC_ZERO_MEAN_POLICY", "undefined"),
		},

		MEI: MEIConfig{
			URL:     getEnv("MEI_URL", "https://www.esrl.noaa.gov/psd/enso/mei/table.html"),
			Enabled: getEnvAsBool("MEI_ENABLED", true),
		},

		HTTP: HTTPConfig{
			Timeout:    getEnvAsDuration("HTTP_TIMEOUT", "30s"),
			RateLimit:  getEnvAsFloat("HTTP_RATE_LIMIT", 2),
			MaxRetries: getEnvAsInt("HTTP_MAX_RETRIES", 3),
		},

		Plot: PlotConfig{
			Output: getEnv("PLOT_OUTPUT", ""),
			Labels: getEnvAsList("PLOT_LABELS", []string{"chl_a_mean", "chl_a_mean_anomaly"}),
		},

		ProfilePath: getEnv("SOC_PROFILE", ""),

		Schedule: getEnv("SCHEDULE", "0 0 6 * * *"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// SensorNames returns the configured sensor labels in sorted order
func (c *Config) SensorNames() []string {
	names := make([]string, 0, len(c.Data.Sensors))
	for name := range c.Data.Sensors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// validate checks if configuration values are consistent
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Climatology.YearStart != 0 && c.Climatology.YearEnd != 0 &&
		c.Climatology.YearStart > c.Climatology.YearEnd {
		return fmt.Errorf("SOC_CLIM_YEAR_START (%d) is after SOC_CLIM_YEAR_END (%d)",
			c.Climatology.YearStart, c.Climatology.YearEnd)
	}

	switch c.Climatology.ZeroMeanPolicy {
	case "undefined", "strict":
	default:
		return fmt.Errorf("SOC_ZERO_MEAN_POLICY must be one of: undefined, strict")
	}

	if c.Data.Column == "" {
		return fmt.Errorf("SOC_COLUMN must not be empty")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

// getEnvAsList splits a comma separated value, dropping empty items
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// getEnvAsMap parses "a=x,b=y". Items without '=' are ignored.
func getEnvAsMap(key string) map[string]string {
	result := make(map[string]string)
	for _, item := range getEnvAsList(key, nil) {
		name, value, ok := strings.Cut(item, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		result[name] = value
	}
	return result
}
