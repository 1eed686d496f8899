package plot

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Style is the explicit plot configuration passed to the renderer at call
// time. The zero value is not usable; start from DefaultStyle.
type Style struct {
	// Colors maps a sensor or index name to a #rrggbb colour
	Colors map[string]string `json:"colors"`
	// FontSize in points for titles, axis labels and ticks
	FontSize float64 `json:"font_size"`
	// Width and Height of the whole figure in inches
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	// TimeFormat is the layout of x axis tick labels
	TimeFormat string `json:"time_format"`
}

// fallbackColor is used for sources without an entry in Colors
const fallbackColor = "#777777"

// DefaultStyle returns the standard sensor palette
func DefaultStyle() Style {
	return Style{
		Colors: map[string]string{
			"swf":   "#000000",
			"aqua":  "#348ABD",
			"viirs": "#A60628",
			"mei":   "#467821",
		},
		FontSize:   14,
		Width:      17,
		Height:     6,
		TimeFormat: "2006",
	}
}

// Color returns the colour of source, or a neutral grey when unknown
func (s Style) Color(source string) (color.RGBA, error) {
	hex, ok := s.Colors[source]
	if !ok {
		hex = fallbackColor
	}
	return ParseHexColor(hex)
}

// ParseHexColor parses "#rrggbb" or "#rgb"
func ParseHexColor(s string) (color.RGBA, error) {
	c := color.RGBA{A: 0xff}
	hex := strings.TrimPrefix(s, "#")

	switch len(hex) {
	case 6:
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	default:
		return c, fmt.Errorf("invalid colour %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return c, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	c.R = uint8(v >> 16)
	c.G = uint8(v >> 8)
	c.B = uint8(v)
	return c, nil
}
