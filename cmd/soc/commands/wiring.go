package commands

import (
	"fmt"
	"strings"

	"github.com/madHatter106/state-of-the-climate/internal/external/noaa"
	"github.com/madHatter106/state-of-the-climate/internal/pipeline"
	"github.com/madHatter106/state-of-the-climate/internal/profile"
	"github.com/madHatter106/state-of-the-climate/pkg/config"
	"github.com/madHatter106/state-of-the-climate/pkg/httputil"
	"github.com/madHatter106/state-of-the-climate/pkg/logger"
)

// newMEIClient creates the NOAA client from config
func newMEIClient(cfg *config.Config, log *logger.Logger) *noaa.Client {
	httpClient := httputil.New(cfg, log)
	return noaa.NewClient(httpClient, log, cfg.MEI.URL)
}

// newRunner wires a pipeline runner from config and its run profile. MEI is
// fetched only when enabled in config and not disabled by the caller.
func newRunner(cfg *config.Config, log *logger.Logger, withMEI bool) (*pipeline.Runner, *profile.Profile, error) {
	prof, data, err := profile.Resolve(cfg)
	if err != nil {
		return nil, nil, err
	}

	opts, err := pipeline.OptionsFromProfile(cfg, prof, data)
	if err != nil {
		return nil, nil, err
	}

	if withMEI && cfg.MEI.Enabled {
		return pipeline.NewRunner(opts, newMEIClient(cfg, log), log), prof, nil
	}
	return pipeline.NewRunner(opts, nil, log), prof, nil
}

// applySensorFlags merges name=path flag values into cfg
func applySensorFlags(cfg *config.Config, values []string) error {
	if len(values) == 0 {
		return nil
	}
	if cfg.Data.Sensors == nil {
		cfg.Data.Sensors = make(map[string]string, len(values))
	}

	for _, v := range values {
		name, path, ok := strings.Cut(v, "=")
		if !ok || name == "" || path == "" {
			return fmt.Errorf("invalid --sensor %q, want name=path", v)
		}
		cfg.Data.Sensors[name] = path
	}
	return nil
}

// plotLabels returns flag labels when given, else the profile's
func plotLabels(prof *profile.Profile, flagLabels []string) []string {
	if len(flagLabels) > 0 {
		return flagLabels
	}
	return prof.Plot.Labels
}
