package jobs

import (
	"context"
	"fmt"

	"github.com/madHatter106/state-of-the-climate/internal/pipeline"
	"github.com/madHatter106/state-of-the-climate/internal/plot"
	"github.com/madHatter106/state-of-the-climate/pkg/logger"
)

// PipelineJob re-runs the full batch pipeline and publishes the result
// ⭐ SSOT: the refresh schedule is owned by this job
type PipelineJob struct {
	runner   *pipeline.Runner
	store    *pipeline.Store
	schedule string
	logger   *logger.Logger

	// optional plot output
	plotPath   string
	plotLabels []string
	plotStyle  plot.Style
}

// NewPipelineJob creates a new pipeline job
func NewPipelineJob(runner *pipeline.Runner, store *pipeline.Store, schedule string, log *logger.Logger) *PipelineJob {
	return &PipelineJob{
		runner:   runner,
		store:    store,
		schedule: schedule,
		logger:   log,
	}
}

// WithPlot renders a PNG to path after every successful run
func (j *PipelineJob) WithPlot(path string, labels []string, style plot.Style) *PipelineJob {
	j.plotPath = path
	j.plotLabels = labels
	j.plotStyle = style
	return j
}

// Name returns the job name
func (j *PipelineJob) Name() string {
	return "pipeline_refresh"
}

// Schedule returns the cron schedule (with seconds)
func (j *PipelineJob) Schedule() string {
	return j.schedule
}

// Run executes the pipeline
func (j *PipelineJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled pipeline run")

	result, err := j.runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("run pipeline: %w", err)
	}
	j.store.Set(result)

	if j.plotPath != "" {
		if _, err := j.runner.Plot(result, j.plotPath, j.plotLabels, j.plotStyle); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
	}

	j.logger.WithField("sensors", len(result.Sensors)).Info("Scheduled pipeline run completed")
	return nil
}
