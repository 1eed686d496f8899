package contracts

import (
	"math"
	"time"
)

// ClimateIndexYear is one row of a climate index table: a year and one value
// per month column
type ClimateIndexYear struct {
	Year   int         `json:"year"`
	Values [12]float64 `json:"values"`
}

// ClimateIndexTable is an already-parsed monthly climate index such as MEI
type ClimateIndexTable struct {
	Name    string             `json:"name"`
	Columns []string           `json:"columns"`
	Years   []ClimateIndexYear `json:"years"`
}

// ToTable flattens the index into a minimal Time-Indexed Table, one row per
// defined (year, month) value, timestamped at the start of the month
func (c *ClimateIndexTable) ToTable(column Column, toSeconds func(time.Time) float64) *Table {
	t := NewTable(c.Name, column, true, 12*len(c.Years))
	for _, y := range c.Years {
		for i, v := range y.Values {
			if math.IsNaN(v) {
				continue
			}
			ts := time.Date(y.Year, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC)
			t.Rows = append(t.Rows, Row{
				Timestamp: ts,
				Record:    RawRecord{Time: toSeconds(ts), Mean: v},
			})
		}
	}
	return t
}
