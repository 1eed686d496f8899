package contracts

// Pipeline stages (SSOT)
// Every log line and result record uses these constants.
//
// Flow:
//   LOAD → CLIMATOLOGY → ANOMALY → QUALITY → PLOT

// Stage represents a pipeline stage
type Stage string

const (
	// StageLoad: record sources → Time-Indexed Tables (internal/loader, internal/external/noaa)
	StageLoad Stage = "S0_LOAD"

	// StageClimatology: monthly means over the reference window (internal/climatology)
	StageClimatology Stage = "S1_CLIMATOLOGY"

	// StageAnomaly: in-place anomaly columns (internal/anomaly)
	StageAnomaly Stage = "S2_ANOMALY"

	// StageQuality: coverage of the reference window (internal/quality)
	StageQuality Stage = "S3_QUALITY"

	// StagePlot: hand-off to the plot collaborator (internal/plot)
	StagePlot Stage = "S4_PLOT"
)

// String returns the stage name
func (s Stage) String() string {
	return string(s)
}

// ShortName returns abbreviated stage name (e.g., "S0", "S1")
func (s Stage) ShortName() string {
	switch s {
	case StageLoad:
		return "S0"
	case StageClimatology:
		return "S1"
	case StageAnomaly:
		return "S2"
	case StageQuality:
		return "S3"
	case StagePlot:
		return "S4"
	default:
		return "UNKNOWN"
	}
}

// AllStages returns all pipeline stages in order
func AllStages() []Stage {
	return []Stage{
		StageLoad,
		StageClimatology,
		StageAnomaly,
		StageQuality,
		StagePlot,
	}
}

// IsValidStage checks if a stage string is valid
func IsValidStage(s string) bool {
	for _, stage := range AllStages() {
		if string(stage) == s {
			return true
		}
	}
	return false
}

// PipelineResult represents the result of a pipeline stage for one source
type PipelineResult struct {
	Stage       Stage  `json:"stage"`
	Source      string `json:"source"`
	Success     bool   `json:"success"`
	InputCount  int    `json:"input_count"`
	OutputCount int    `json:"output_count"`
	Duration    int64  `json:"duration_ms"`
	Error       string `json:"error,omitempty"`
}
