package contracts

import "time"

// FilePair is one MODIS-Aqua record file matched with the VIIRS file that
// covers the same period
type FilePair struct {
	// Key is the three-letter month of the period start ("Jan")
	Key   string    `json:"key"`
	Label string    `json:"label"`
	Aqua  string    `json:"aqua"`
	VIIRS string    `json:"viirs"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
