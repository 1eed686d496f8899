// Package plot renders Time-Indexed Tables as stacked time series panels,
// one panel per label and one line per source.
package plot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/madHatter106/state-of-the-climate/internal/contracts"
)

// ErrNoLabels is returned when nothing was asked to be plotted
var ErrNoLabels = errors.New("no labels to plot")

// Render draws one panel per label and writes a PNG to w. Tables that do not
// expose a label are left out of that panel; a label no table exposes is an
// error.
func Render(w io.Writer, tables map[string]*contracts.Table, labels []string, style Style) error {
	if len(labels) == 0 {
		return ErrNoLabels
	}

	panels := make([][]*plot.Plot, len(labels))
	for i, label := range labels {
		p, err := panel(tables, label, style)
		if err != nil {
			return err
		}
		panels[i] = []*plot.Plot{p}
	}

	img := vgimg.New(vg.Length(style.Width)*vg.Inch, vg.Length(style.Height)*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: len(labels),
		Cols: 1,
		PadY: vg.Millimeter,
	}

	canvases := plot.Align(panels, tiles, dc)
	for i := range panels {
		panels[i][0].Draw(canvases[i][0])
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// RenderFile renders to a PNG file at path
func RenderFile(path string, tables map[string]*contracts.Table, labels []string, style Style) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}
	if err := Render(f, tables, labels, style); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func panel(tables map[string]*contracts.Table, label string, style Style) (*plot.Plot, error) {
	p := plot.New()
	p.Y.Label.Text = label
	p.X.Tick.Marker = plot.TimeTicks{Format: style.TimeFormat}
	p.Legend.Top = true
	p.Legend.Left = true

	size := vg.Points(style.FontSize)
	p.Y.Label.TextStyle.Font.Size = size
	p.X.Tick.Label.Font.Size = size
	p.Y.Tick.Label.Font.Size = size
	p.Legend.TextStyle.Font.Size = size

	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	plotted := 0
	for _, name := range names {
		t := tables[name]
		segments, err := Segments(t, label)
		if errors.Is(err, contracts.ErrUnknownColumn) {
			continue
		}
		if err != nil {
			return nil, err
		}

		col, err := style.Color(name)
		if err != nil {
			return nil, err
		}

		var legend *plotter.Scatter
		for _, seg := range segments {
			line, err := plotter.NewLine(seg)
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", name, label, err)
			}
			line.LineStyle.Color = col
			line.LineStyle.Width = vg.Points(1)

			points, err := plotter.NewScatter(seg)
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", name, label, err)
			}
			points.GlyphStyle.Shape = draw.PlusGlyph{}
			points.GlyphStyle.Color = col
			points.GlyphStyle.Radius = vg.Points(3)

			p.Add(line, points)
			if legend == nil {
				legend = points
			}
		}
		if legend != nil {
			p.Legend.Add(name, legend)
		}
		plotted++
	}

	if plotted == 0 {
		return nil, fmt.Errorf("%w: %q in any table", contracts.ErrUnknownColumn, label)
	}
	return p, nil
}
