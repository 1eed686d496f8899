package contracts

import (
	"fmt"
	"math"
	"time"
)

// Column names a measurement column of a Time-Indexed Table.
// Anomaly columns are not Columns; they are labels derived from one.
type Column string

const (
	ColumnNBins  Column = "nbins"
	ColumnMean   Column = "chl_a_mean" // raw "mean", always exposed under this name
	ColumnMedian Column = "median"
	ColumnStdv   Column = "stdv"
	ColumnMEI    Column = "mei"
)

// AnomalyLabel returns the label of the absolute anomaly derived from c
func (c Column) AnomalyLabel() string {
	return string(c) + "_anomaly"
}

// PercentAnomalyLabel returns the label of the percentage anomaly derived from c
func (c Column) PercentAnomalyLabel() string {
	return "perc_" + string(c) + "_anomaly"
}

// RawRecord is one line of a record source: time nbins mean median stdv
type RawRecord struct {
	Time   float64 `json:"time"` // seconds since 2000-01-01T00:00:00Z
	NBins  float64 `json:"nbins"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Stdv   float64 `json:"stdv"`
}

// Anomaly is the deviation of a row value from its month's climatological mean
type Anomaly struct {
	Value   float64 `json:"anomaly"`
	Percent float64 `json:"perc_anomaly"`
}

// Row is one observation keyed by its calendar timestamp
type Row struct {
	Timestamp time.Time
	Record    RawRecord
	Anomalies map[Column]Anomaly
}

// Table is a Time-Indexed Table. Row order is load order; timestamps may
// repeat and are not sorted.
type Table struct {
	// Name identifies the source (sensor or index name)
	Name string
	// Minimal tables expose only ValueColumn
	Minimal bool
	// ValueColumn is the label under which Record.Mean is exposed
	ValueColumn Column
	Rows        []Row

	derived []Column
}

// NewTable creates an empty table exposing Record.Mean as valueColumn
func NewTable(name string, valueColumn Column, minimal bool, capacity int) *Table {
	return &Table{
		Name:        name,
		Minimal:     minimal,
		ValueColumn: valueColumn,
		Rows:        make([]Row, 0, capacity),
	}
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Columns returns the addressable measurement columns in display order
func (t *Table) Columns() []Column {
	if t.Minimal {
		return []Column{t.ValueColumn}
	}
	return []Column{ColumnNBins, t.ValueColumn, ColumnMedian, ColumnStdv}
}

// HasColumn reports whether c is addressable on this table
func (t *Table) HasColumn(c Column) bool {
	for _, col := range t.Columns() {
		if col == c {
			return true
		}
	}
	return false
}

// Value returns column c of row i
func (t *Table) Value(i int, c Column) (float64, error) {
	if !t.HasColumn(c) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, c)
	}

	rec := t.Rows[i].Record
	switch c {
	case t.ValueColumn:
		return rec.Mean, nil
	case ColumnNBins:
		return rec.NBins, nil
	case ColumnMedian:
		return rec.Median, nil
	case ColumnStdv:
		return rec.Stdv, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, c)
}

// SetAnomaly writes the anomaly pair of column c on row i, overwriting any
// previous value
func (t *Table) SetAnomaly(i int, c Column, a Anomaly) {
	row := &t.Rows[i]
	if row.Anomalies == nil {
		row.Anomalies = make(map[Column]Anomaly, 1)
	}
	row.Anomalies[c] = a

	for _, d := range t.derived {
		if d == c {
			return
		}
	}
	t.derived = append(t.derived, c)
}

// Labels returns every readable label: columns, then anomaly labels of
// columns that have been through the anomaly engine
func (t *Table) Labels() []string {
	cols := t.Columns()
	labels := make([]string, 0, len(cols)+2*len(t.derived))
	for _, c := range cols {
		labels = append(labels, string(c))
	}
	for _, c := range t.derived {
		labels = append(labels, c.AnomalyLabel(), c.PercentAnomalyLabel())
	}
	return labels
}

// Lookup reads any label returned by Labels for row i. Rows without an
// anomaly entry for a derived column read as NaN.
func (t *Table) Lookup(i int, label string) (float64, error) {
	if t.HasColumn(Column(label)) {
		return t.Value(i, Column(label))
	}

	for _, c := range t.derived {
		switch label {
		case c.AnomalyLabel():
			if a, ok := t.Rows[i].Anomalies[c]; ok {
				return a.Value, nil
			}
			return math.NaN(), nil
		case c.PercentAnomalyLabel():
			if a, ok := t.Rows[i].Anomalies[c]; ok {
				return a.Percent, nil
			}
			return math.NaN(), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, label)
}

// YearSpan returns the minimum and maximum calendar year in the table
func (t *Table) YearSpan() (int, int, bool) {
	if len(t.Rows) == 0 {
		return 0, 0, false
	}

	lo, hi := t.Rows[0].Timestamp.Year(), t.Rows[0].Timestamp.Year()
	for _, row := range t.Rows[1:] {
		y := row.Timestamp.Year()
		if y < lo {
			lo = y
		}
		if y > hi {
			hi = y
		}
	}
	return lo, hi, true
}
