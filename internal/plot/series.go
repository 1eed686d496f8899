package plot

import (
	"math"
	"sort"

	"gonum.org/v1/plot/plotter"

	"github.com/madHatter106/state-of-the-climate/internal/contracts"
)

// Segments extracts label from t as time-ordered runs of defined points.
// X is Unix seconds; an undefined value ends the current run, leaving a gap.
func Segments(t *contracts.Table, label string) ([]plotter.XYs, error) {
	order := make([]int, t.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return t.Rows[order[a]].Timestamp.Before(t.Rows[order[b]].Timestamp)
	})

	var (
		segments []plotter.XYs
		current  plotter.XYs
	)
	for _, i := range order {
		v, err := t.Lookup(i, label)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			if len(current) > 0 {
				segments = append(segments, current)
				current = nil
			}
			continue
		}
		current = append(current, plotter.XY{
			X: float64(t.Rows[i].Timestamp.Unix()),
			Y: v,
		})
	}
	if len(current) > 0 {
		segments = append(segments, current)
	}
	return segments, nil
}
