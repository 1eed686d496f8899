// Package anomaly derives absolute and percentage anomalies of a
// Time-Indexed Table against a monthly climatology.
//
// The engine mutates the table it is given. Callers keep the same *Table and
// read the new columns through Table.Lookup with Column.AnomalyLabel and
// Column.PercentAnomalyLabel.
package anomaly

import (
	"fmt"
	"math"

	"github.com/madHatter106/state-of-the-climate/internal/contracts"
)

// Policy decides what a zero climatological mean does to the percentage anomaly
type Policy string

const (
	// PolicyUndefined writes NaN as the percentage anomaly
	PolicyUndefined Policy = "undefined"
	// PolicyStrict fails with contracts.ErrDivisionUndefined
	PolicyStrict Policy = "strict"
)

// ParsePolicy converts a configuration string to a Policy
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyUndefined, PolicyStrict:
		return Policy(s), nil
	case "":
		return PolicyUndefined, nil
	default:
		return "", fmt.Errorf("unknown zero-mean policy %q", s)
	}
}

// Apply is ApplyWithPolicy with PolicyUndefined
func Apply(t *contracts.Table, c *contracts.Climatology, col contracts.Column) error {
	return ApplyWithPolicy(t, c, col, PolicyUndefined)
}

// ApplyWithPolicy writes <col>_anomaly and perc_<col>_anomaly on every row of
// t in place. A row whose month has no climatological mean gets NaN for both.
// The climatology must have been computed for col. Under PolicyStrict the
// table is checked first and left untouched on error.
func ApplyWithPolicy(t *contracts.Table, c *contracts.Climatology, col contracts.Column, policy Policy) error {
	if !t.HasColumn(col) {
		return fmt.Errorf("%w: %q", contracts.ErrUnknownColumn, col)
	}
	if c.Column != col {
		return fmt.Errorf("%w: climatology of %q applied to %q", contracts.ErrUnknownColumn, c.Column, col)
	}

	if policy == PolicyStrict {
		for _, row := range t.Rows {
			m := row.Timestamp.Month()
			if c.Mean(m) == 0 {
				return fmt.Errorf("%w: %s", contracts.ErrDivisionUndefined, m)
			}
		}
	}

	for i, row := range t.Rows {
		v, err := t.Value(i, col)
		if err != nil {
			return err
		}
		t.SetAnomaly(i, col, Compute(v, c.Mean(row.Timestamp.Month())))
	}

	return nil
}

// Compute returns the anomaly of value against climMean. NaN inputs and a
// zero climMean make the percentage NaN.
func Compute(value, climMean float64) contracts.Anomaly {
	a := value - climMean
	perc := math.NaN()
	if climMean != 0 && !math.IsNaN(a) {
		perc = a / climMean * 100
	}
	return contracts.Anomaly{Value: a, Percent: perc}
}
