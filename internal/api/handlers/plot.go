package handlers

import (
	"net/http"

	"github.com/madHatter106/state-of-the-climate/internal/plot"
)

// PlotHandler exposes the plot configuration used by this process
type PlotHandler struct {
	style  plot.Style
	labels []string
}

// NewPlotHandler creates a new plot handler
func NewPlotHandler(style plot.Style, labels []string) *PlotHandler {
	return &PlotHandler{style: style, labels: labels}
}

// GetStyle returns colours, font and figure size plus the default labels
// GET /api/plot/style
func (h *PlotHandler) GetStyle(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"style":  h.style,
		"labels": h.labels,
	})
}
