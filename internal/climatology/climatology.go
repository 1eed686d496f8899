// Package climatology computes monthly climatological means of a
// Time-Indexed Table over a reference window of years.
package climatology

import (
	"fmt"
	"math"
	"time"

	"github.com/madHatter106/state-of-the-climate/internal/contracts"
)

// Window is an inclusive [YearStart, YearEnd] reference period. A zero bound
// defaults to the minimum (start) or maximum (end) year present in the table.
type Window struct {
	YearStart int
	YearEnd   int
}

// Resolve fills defaulted bounds from t and validates the result
func (w Window) Resolve(t *contracts.Table) (Window, error) {
	if w.YearStart == 0 || w.YearEnd == 0 {
		lo, hi, ok := t.YearSpan()
		if !ok {
			return w, fmt.Errorf("derive climatology window: %w", contracts.ErrEmptyTable)
		}
		if w.YearStart == 0 {
			w.YearStart = lo
		}
		if w.YearEnd == 0 {
			w.YearEnd = hi
		}
	}

	if w.YearStart > w.YearEnd {
		return w, fmt.Errorf("%w: start %d is after end %d", contracts.ErrInvalidRange, w.YearStart, w.YearEnd)
	}
	return w, nil
}

// Contains reports whether ts falls inside the window
func (w Window) Contains(ts time.Time) bool {
	y := ts.Year()
	return y >= w.YearStart && y <= w.YearEnd
}

// MonthlyMeans averages column col of every row whose year lies in the window,
// grouped by calendar month only. The result always has twelve entries; a month
// without data has a NaN mean and a zero count. NaN values are skipped.
func MonthlyMeans(t *contracts.Table, col contracts.Column, w Window) (*contracts.Climatology, error) {
	if !t.HasColumn(col) {
		return nil, fmt.Errorf("%w: %q", contracts.ErrUnknownColumn, col)
	}

	w, err := w.Resolve(t)
	if err != nil {
		return nil, err
	}

	var sums [12]float64
	var counts [12]int
	for i, row := range t.Rows {
		if !w.Contains(row.Timestamp) {
			continue
		}

		v, err := t.Value(i, col)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(v) {
			continue
		}

		m := row.Timestamp.Month() - 1
		sums[m] += v
		counts[m]++
	}

	c := &contracts.Climatology{
		Column:    col,
		YearStart: w.YearStart,
		YearEnd:   w.YearEnd,
	}
	for i := range c.Months {
		mean := math.NaN()
		if counts[i] > 0 {
			mean = sums[i] / float64(counts[i])
		}
		c.Months[i] = contracts.MonthlyMean{
			Month: time.Month(i + 1),
			Mean:  mean,
			Count: counts[i],
		}
	}

	return c, nil
}
