package contracts

import (
	"math"
	"time"
)

// MonthlyMean is one row of a Monthly Climatology Table
type MonthlyMean struct {
	Month time.Month `json:"month"`
	Mean  float64    `json:"mean"`
	Count int        `json:"count"`
}

// Defined reports whether the month had any data in the reference window
func (m MonthlyMean) Defined() bool {
	return m.Count > 0 && !math.IsNaN(m.Mean)
}

// Climatology is the Monthly Climatology Table: exactly one entry per
// calendar month, January first
type Climatology struct {
	Column    Column          `json:"column"`
	YearStart int             `json:"year_start"`
	YearEnd   int             `json:"year_end"`
	Months    [12]MonthlyMean `json:"months"`
}

// Mean returns the climatological mean for month m, NaN when undefined
func (c *Climatology) Mean(m time.Month) float64 {
	if m < time.January || m > time.December {
		return math.NaN()
	}
	return c.Months[m-1].Mean
}

// MissingMonths lists months without data in the reference window
func (c *Climatology) MissingMonths() []time.Month {
	var missing []time.Month
	for _, m := range c.Months {
		if !m.Defined() {
			missing = append(missing, m.Month)
		}
	}
	return missing
}
