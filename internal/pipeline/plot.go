package pipeline

import (
	"time"

	"github.com/madHatter106/state-of-the-climate/internal/contracts"
	"github.com/madHatter106/state-of-the-climate/internal/plot"
)

// Plot hands every table of result to the plot collaborator and writes a PNG
// to path
func (r *Runner) Plot(result *Result, path string, labels []string, style plot.Style) (contracts.PipelineResult, error) {
	start := time.Now()
	tables := result.Tables()

	err := plot.RenderFile(path, tables, labels, style)
	rec := contracts.PipelineResult{
		Stage:       contracts.StagePlot,
		Source:      path,
		Success:     err == nil,
		InputCount:  len(tables),
		OutputCount: len(labels),
		Duration:    time.Since(start).Milliseconds(),
	}
	if err != nil {
		rec.OutputCount = 0
		rec.Error = err.Error()
		r.logger.WithError(err).WithField("path", path).Error("Plot rendering failed")
		return rec, err
	}

	r.logger.WithFields(map[string]interface{}{
		"path":   path,
		"labels": labels,
	}).Info("Plot written")
	return rec, nil
}
