// Package pipeline runs the batch flow for every configured source:
// load → climatology → anomaly → quality, plus the MEI index.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/madHatter106/state-of-the-climate/internal/anomaly"
	"github.com/madHatter106/state-of-the-climate/internal/climatology"
	"github.com/madHatter106/state-of-the-climate/internal/contracts"
	"github.com/madHatter106/state-of-the-climate/internal/loader"
	"github.com/madHatter106/state-of-the-climate/internal/profile"
	"github.com/madHatter106/state-of-the-climate/internal/quality"
	"github.com/madHatter106/state-of-the-climate/internal/timeconv"
	"github.com/madHatter106/state-of-the-climate/pkg/config"
	"github.com/madHatter106/state-of-the-climate/pkg/logger"
)

// ErrNoSources is returned when neither sensors nor MEI are configured
var ErrNoSources = errors.New("no sensors configured")

// MEIFetcher provides the MEI climate index table
type MEIFetcher interface {
	FetchMEI(ctx context.Context) (*contracts.ClimateIndexTable, error)
}

// Options controls one pipeline run
type Options struct {
	// Sensors maps a sensor name to its record file
	Sensors map[string]string
	Minimal bool
	Column  contracts.Column
	Window  climatology.Window
	Policy  anomaly.Policy
	Quality quality.Config

	// Profile is recorded in the run snapshot; nil records the default
	Profile     *profile.Profile
	ProfileYAML []byte
}

// OptionsFromConfig builds run options from the application config and the
// run profile it names
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	prof, data, err := profile.Resolve(cfg)
	if err != nil {
		return Options{}, err
	}
	return OptionsFromProfile(cfg, prof, data)
}

// OptionsFromProfile takes sensors from cfg and everything else from prof
func OptionsFromProfile(cfg *config.Config, prof *profile.Profile, profileYAML []byte) (Options, error) {
	policy, err := anomaly.ParsePolicy(prof.Climatology.ZeroMeanPolicy)
	if err != nil {
		return Options{}, err
	}

	sensors := make(map[string]string, len(cfg.Data.Sensors))
	for name, path := range cfg.Data.Sensors {
		sensors[name] = path
	}

	return Options{
		Sensors:     sensors,
		Minimal:     cfg.Data.Minimal,
		Column:      contracts.Column(prof.Climatology.Column),
		Window:      prof.Window(),
		Policy:      policy,
		Quality:     prof.QualityConfig(),
		Profile:     prof,
		ProfileYAML: profileYAML,
	}, nil
}

// SensorResult holds everything computed for one sensor
type SensorResult struct {
	Name        string                      `json:"name"`
	Path        string                      `json:"path"`
	Table       *contracts.Table            `json:"-"`
	Climatology *contracts.Climatology      `json:"climatology"`
	Quality     *contracts.CoverageSnapshot `json:"quality"`
}

// Result is the outcome of a full run. It is not modified after Run returns.
type Result struct {
	RunID    string                     `json:"run_id"`
	Snapshot *profile.RunSnapshot       `json:"snapshot"`
	Sensors  map[string]*SensorResult   `json:"sensors"`
	MEI      *contracts.Table           `json:"-"`
	Stages   []contracts.PipelineResult `json:"stages"`
	Started  time.Time                  `json:"started"`
	Finished time.Time                  `json:"finished"`
}

// SensorNames returns sensor names in sorted order
func (r *Result) SensorNames() []string {
	names := make([]string, 0, len(r.Sensors))
	for name := range r.Sensors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tables returns every table by source name, including "mei" when fetched
func (r *Result) Tables() map[string]*contracts.Table {
	tables := make(map[string]*contracts.Table, len(r.Sensors)+1)
	for name, s := range r.Sensors {
		tables[name] = s.Table
	}
	if r.MEI != nil {
		tables[r.MEI.Name] = r.MEI
	}
	return tables
}

// Runner executes the pipeline
// ⭐ SSOT: engine call order lives here only
type Runner struct {
	opts   Options
	mei    MEIFetcher
	gate   *quality.QualityGate
	logger *logger.Logger
}

// NewRunner creates a Runner. A nil mei skips the climate index.
func NewRunner(opts Options, mei MEIFetcher, log *logger.Logger) *Runner {
	return &Runner{
		opts:   opts,
		mei:    mei,
		gate:   quality.NewQualityGate(opts.Quality),
		logger: log.WithField("module", "pipeline"),
	}
}

// Run processes every sensor in name order and then fetches MEI. The first
// failure aborts the run.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if len(r.opts.Sensors) == 0 && r.mei == nil {
		return nil, ErrNoSources
	}

	result := &Result{
		RunID:   uuid.NewString(),
		Sensors: make(map[string]*SensorResult, len(r.opts.Sensors)),
		Started: time.Now(),
	}

	prof := r.opts.Profile
	if prof == nil {
		prof = profile.Default()
	}
	snapshot, err := profile.NewRunSnapshot(prof, r.opts.ProfileYAML, result.RunID)
	if err != nil {
		return nil, fmt.Errorf("profile snapshot: %w", err)
	}
	result.Snapshot = snapshot

	names := make([]string, 0, len(r.opts.Sensors))
	for name := range r.opts.Sensors {
		names = append(names, name)
	}
	sort.Strings(names)

	r.logger.WithFields(map[string]interface{}{
		"run_id":  result.RunID,
		"profile": snapshot.ProfileID,
		"sensors": names,
		"column":  r.opts.Column,
		"policy":  r.opts.Policy,
	}).Info("Starting pipeline run")

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sr, err := r.runSensor(name, r.opts.Sensors[name], result)
		if err != nil {
			return nil, fmt.Errorf("sensor %s: %w", name, err)
		}
		result.Sensors[name] = sr
	}

	if r.mei != nil {
		table, err := r.fetchMEI(ctx, result)
		if err != nil {
			return nil, fmt.Errorf("mei: %w", err)
		}
		result.MEI = table
	}

	result.Finished = time.Now()
	r.logger.WithFields(map[string]interface{}{
		"run_id":      result.RunID,
		"sensors":     len(result.Sensors),
		"duration_ms": result.Finished.Sub(result.Started).Milliseconds(),
	}).Info("Pipeline run completed")

	return result, nil
}

func (r *Runner) runSensor(name, path string, result *Result) (*SensorResult, error) {
	log := r.logger.WithField("sensor", name)

	// 1. Load
	var table *contracts.Table
	err := r.stage(result, contracts.StageLoad, name, 0, func() (int, error) {
		var err error
		table, err = loader.LoadFile(path, loader.Options{Minimal: r.opts.Minimal, Name: name})
		if err != nil {
			return 0, err
		}
		return table.Len(), nil
	})
	if err != nil {
		return nil, err
	}

	// 2. Climatology
	var clim *contracts.Climatology
	err = r.stage(result, contracts.StageClimatology, name, table.Len(), func() (int, error) {
		var err error
		clim, err = climatology.MonthlyMeans(table, r.opts.Column, r.opts.Window)
		if err != nil {
			return 0, err
		}
		return 12 - len(clim.MissingMonths()), nil
	})
	if err != nil {
		return nil, err
	}

	// 3. Anomaly (in place)
	err = r.stage(result, contracts.StageAnomaly, name, table.Len(), func() (int, error) {
		if err := anomaly.ApplyWithPolicy(table, clim, r.opts.Column, r.opts.Policy); err != nil {
			return 0, err
		}
		return table.Len(), nil
	})
	if err != nil {
		return nil, err
	}

	// 4. Quality
	snapshot := r.gate.Check(table, clim)
	result.Stages = append(result.Stages, contracts.PipelineResult{
		Stage:       contracts.StageQuality,
		Source:      name,
		Success:     snapshot.Passed,
		InputCount:  snapshot.TotalRows,
		OutputCount: snapshot.WindowRows,
	})
	if !snapshot.Passed {
		log.WithFields(map[string]interface{}{
			"score":          snapshot.QualityScore,
			"missing_months": snapshot.MissingMonths,
		}).Warn("Climatology coverage below threshold")
	}

	log.WithFields(map[string]interface{}{
		"rows":       table.Len(),
		"year_start": clim.YearStart,
		"year_end":   clim.YearEnd,
	}).Debug("Sensor processed")

	return &SensorResult{
		Name:        name,
		Path:        path,
		Table:       table,
		Climatology: clim,
		Quality:     snapshot,
	}, nil
}

func (r *Runner) fetchMEI(ctx context.Context, result *Result) (*contracts.Table, error) {
	var table *contracts.Table
	err := r.stage(result, contracts.StageLoad, string(contracts.ColumnMEI), 0, func() (int, error) {
		index, err := r.mei.FetchMEI(ctx)
		if err != nil {
			return 0, err
		}
		table = index.ToTable(contracts.ColumnMEI, timeconv.ToSeconds)
		return table.Len(), nil
	})
	return table, err
}

// stage runs fn and records its outcome
func (r *Runner) stage(result *Result, stage contracts.Stage, source string, input int, fn func() (int, error)) error {
	start := time.Now()
	output, err := fn()

	rec := contracts.PipelineResult{
		Stage:       stage,
		Source:      source,
		Success:     err == nil,
		InputCount:  input,
		OutputCount: output,
		Duration:    time.Since(start).Milliseconds(),
	}
	if err != nil {
		rec.Error = err.Error()
		r.logger.WithError(err).WithFields(map[string]interface{}{
			"stage":  stage.ShortName(),
			"source": source,
		}).Error("Pipeline stage failed")
	}
	result.Stages = append(result.Stages, rec)
	return err
}
