package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/xtding233/circle-curves/internal/curve"
)

var ErrUnsupportedFormat = errors.New("unsupported chart format")

// ChartOptions controls the line chart. Zero values pick defaults.
type ChartOptions struct {
	Title  string
	Width  vg.Length
	Height vg.Length
	// Unit of the sampled domain. Radian curves get an x axis of [0, 2π].
	Unit curve.AngleUnit
}

func (o ChartOptions) withDefaults() ChartOptions {
	if o.Title == "" {
		o.Title = "Circular transform curve"
	}
	if o.Width <= 0 {
		o.Width = 8 * vg.Inch
	}
	if o.Height <= 0 {
		o.Height = 5 * vg.Inch
	}
	return o
}

// NewChart builds a connected line chart, x horizontal and y vertical.
func NewChart(samples []curve.Sample, o ChartOptions) (*plot.Plot, error) {
	o = o.withDefaults()

	p := plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	if o.Unit == curve.UnitDegrees {
		p.X.Label.Text = "i"
	}
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		pts[i].X = s.X
		pts[i].Y = s.Y
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("chart line: %w", err)
	}
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)

	if o.Unit != curve.UnitDegrees {
		p.X.Min, p.X.Max = 0, 2*math.Pi
	}
	return p, nil
}

// SaveChart renders the chart to path. The extension picks the format (png, svg, pdf, ...).
func SaveChart(path string, samples []curve.Sample, o ChartOptions) error {
	p, err := NewChart(samples, o)
	if err != nil {
		return err
	}
	o = o.withDefaults()
	if err := p.Save(o.Width, o.Height, path); err != nil {
		return fmt.Errorf("save chart %s: %w", filepath.Base(path), err)
	}
	return nil
}

// WriteChart renders the chart to w in the given format.
func WriteChart(w io.Writer, format string, samples []curve.Sample, o ChartOptions) error {
	format = strings.ToLower(format)
	if _, ok := ContentTypes[format]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	p, err := NewChart(samples, o)
	if err != nil {
		return err
	}
	o = o.withDefaults()
	wt, err := p.WriterTo(o.Width, o.Height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// ContentTypes lists the formats WriteChart serves, with their MIME types.
var ContentTypes = map[string]string{
	"png": "image/png",
	"svg": "image/svg+xml",
	"pdf": "application/pdf",
}
