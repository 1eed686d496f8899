// Package timeconv converts the dataset's elapsed-seconds Time Values into
// calendar timestamps and fractional days of year.
//
// Time Values count seconds since 2000-01-01T00:00:00Z. All results are UTC.
package timeconv

import (
	"math"
	"time"
)

const secondsPerDay = 86400

var (
	// Epoch2000 is the zero point of Time Values
	Epoch2000 = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

	// epochOffset is the number of seconds between the 1970 and 2000 epochs
	epochOffset = Epoch2000.Unix()
)

// ToTimestamp converts seconds since Epoch2000 into a UTC calendar timestamp.
// Whole and fractional seconds are applied separately so that values far
// outside the range of time.Duration still land on the right date.
func ToTimestamp(sec float64) time.Time {
	whole := math.Floor(sec)
	nanos := math.Round((sec - whole) * 1e9)
	return time.Unix(epochOffset+int64(whole), int64(nanos)).UTC()
}

// ToSeconds is the inverse of ToTimestamp
func ToSeconds(t time.Time) float64 {
	return float64(t.Unix()-epochOffset) + float64(t.Nanosecond())/1e9
}

// DayOfYear converts seconds since Epoch2000 into days elapsed since January 1
// of the timestamp's own year. The result is 0-based: Jan 1 00:00:00 is 0.0
// and Jan 2 12:00:00 is 1.5.
func DayOfYear(sec float64) float64 {
	y := ToTimestamp(sec).Year()
	yearStart := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	return (sec - float64(yearStart.Unix()-epochOffset)) / secondsPerDay
}
