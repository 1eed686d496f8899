package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/madHatter106/state-of-the-climate/internal/contracts"
	"github.com/madHatter106/state-of-the-climate/internal/pipeline"
	"github.com/madHatter106/state-of-the-climate/pkg/logger"
)

// ResultSource provides the latest pipeline result
type ResultSource interface {
	Latest() *pipeline.Result
}

// SensorHandler serves computed tables to external renderers
// ⭐ SSOT: sensor API handlers live here only
type SensorHandler struct {
	results ResultSource
	logger  *logger.Logger
}

// NewSensorHandler creates a new sensor handler
func NewSensorHandler(results ResultSource, log *logger.Logger) *SensorHandler {
	return &SensorHandler{
		results: results,
		logger:  log,
	}
}

// SensorSummary describes one source of the latest run
type SensorSummary struct {
	Name   string   `json:"name"`
	Path   string   `json:"path,omitempty"`
	Rows   int      `json:"rows"`
	Labels []string `json:"labels"`
	Passed *bool    `json:"quality_passed,omitempty"`
}

// SeriesPoint is one row of a series response; undefined values are null
type SeriesPoint struct {
	Timestamp time.Time           `json:"timestamp"`
	Values    map[string]*float64 `json:"values"`
}

// SeriesResponse is the body of GET /api/sensors/{sensor}/series
type SeriesResponse struct {
	Sensor string        `json:"sensor"`
	Labels []string      `json:"labels"`
	Points []SeriesPoint `json:"points"`
}

// MonthlyMeanItem is one month of a climatology response
type MonthlyMeanItem struct {
	Month string   `json:"month"`
	Mean  *float64 `json:"mean"`
	Count int      `json:"count"`
}

// ClimatologyResponse is the body of GET /api/sensors/{sensor}/climatology
type ClimatologyResponse struct {
	Sensor    string            `json:"sensor"`
	Column    string            `json:"column"`
	YearStart int               `json:"year_start"`
	YearEnd   int               `json:"year_end"`
	Months    []MonthlyMeanItem `json:"months"`
}

// ListSensors returns every source of the latest run
// GET /api/sensors
func (h *SensorHandler) ListSensors(w http.ResponseWriter, r *http.Request) {
	result, ok := h.latest(w)
	if !ok {
		return
	}

	items := make([]SensorSummary, 0, len(result.Sensors)+1)
	for _, name := range result.SensorNames() {
		s := result.Sensors[name]
		passed := s.Quality.Passed
		items = append(items, SensorSummary{
			Name:   name,
			Path:   s.Path,
			Rows:   s.Table.Len(),
			Labels: s.Table.Labels(),
			Passed: &passed,
		})
	}
	if result.MEI != nil {
		items = append(items, SensorSummary{
			Name:   result.MEI.Name,
			Rows:   result.MEI.Len(),
			Labels: result.MEI.Labels(),
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sensors":  items,
		"finished": result.Finished,
	})
}

// GetSeries returns the requested labels of a table
// GET /api/sensors/{sensor}/series?labels=chl_a_mean,chl_a_mean_anomaly
func (h *SensorHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	result, ok := h.latest(w)
	if !ok {
		return
	}

	sensor := mux.Vars(r)["sensor"]
	table, ok := result.Tables()[sensor]
	if !ok {
		respondError(w, http.StatusNotFound, "unknown sensor: "+sensor)
		return
	}

	labels := table.Labels()
	if q := r.URL.Query().Get("labels"); q != "" {
		labels = nil
		for _, l := range strings.Split(q, ",") {
			if l = strings.TrimSpace(l); l != "" {
				labels = append(labels, l)
			}
		}
	}

	points := make([]SeriesPoint, 0, table.Len())
	for i, row := range table.Rows {
		values := make(map[string]*float64, len(labels))
		for _, label := range labels {
			v, err := table.Lookup(i, label)
			if errors.Is(err, contracts.ErrUnknownColumn) {
				respondError(w, http.StatusBadRequest, "unknown label: "+label)
				return
			}
			if err != nil {
				h.logger.WithError(err).Error("Failed to read series")
				respondError(w, http.StatusInternalServerError, "Failed to read series")
				return
			}
			values[label] = nullable(v)
		}
		points = append(points, SeriesPoint{Timestamp: row.Timestamp, Values: values})
	}

	respondJSON(w, http.StatusOK, SeriesResponse{
		Sensor: sensor,
		Labels: labels,
		Points: points,
	})
}

// GetClimatology returns the monthly climatology of a sensor
// GET /api/sensors/{sensor}/climatology
func (h *SensorHandler) GetClimatology(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sensor(w, r)
	if !ok {
		return
	}

	clim := s.Climatology
	months := make([]MonthlyMeanItem, 0, len(clim.Months))
	for _, m := range clim.Months {
		months = append(months, MonthlyMeanItem{
			Month: m.Month.String(),
			Mean:  nullable(m.Mean),
			Count: m.Count,
		})
	}

	respondJSON(w, http.StatusOK, ClimatologyResponse{
		Sensor:    s.Name,
		Column:    string(clim.Column),
		YearStart: clim.YearStart,
		YearEnd:   clim.YearEnd,
		Months:    months,
	})
}

// GetQuality returns the coverage snapshot of a sensor
// GET /api/sensors/{sensor}/quality
func (h *SensorHandler) GetQuality(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sensor(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, s.Quality)
}

// GetRun returns the run id, profile snapshot and timings of the latest run
// GET /api/pipeline/run
func (h *SensorHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	result, ok := h.latest(w)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":   result.RunID,
		"snapshot": result.Snapshot,
		"started":  result.Started,
		"finished": result.Finished,
	})
}

// GetStages returns the stage records of the latest run
// GET /api/pipeline/stages
func (h *SensorHandler) GetStages(w http.ResponseWriter, r *http.Request) {
	result, ok := h.latest(w)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, result.Stages)
}

func (h *SensorHandler) latest(w http.ResponseWriter) (*pipeline.Result, bool) {
	result := h.results.Latest()
	if result == nil {
		respondError(w, http.StatusServiceUnavailable, "No pipeline result yet")
		return nil, false
	}
	return result, true
}

func (h *SensorHandler) sensor(w http.ResponseWriter, r *http.Request) (*pipeline.SensorResult, bool) {
	result, ok := h.latest(w)
	if !ok {
		return nil, false
	}

	name := mux.Vars(r)["sensor"]
	s, ok := result.Sensors[name]
	if !ok {
		respondError(w, http.StatusNotFound, "unknown sensor: "+name)
		return nil, false
	}
	return s, true
}
