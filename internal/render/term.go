package render

import (
	"github.com/guptarohit/asciigraph"

	"github.com/xtding233/circle-curves/internal/curve"
)

// TerminalOptions sizes the ASCII chart. Zero values let asciigraph decide.
type TerminalOptions struct {
	Height  int
	Width   int
	Caption string
}

// TerminalChart draws the y values as an ASCII line chart.
// Samples are plotted at equal spacing, which matches every curve domain here.
func TerminalChart(samples []curve.Sample, o TerminalOptions) string {
	if len(samples) == 0 {
		return ""
	}
	var opts []asciigraph.Option
	if o.Height > 0 {
		opts = append(opts, asciigraph.Height(o.Height))
	}
	if o.Width > 0 {
		opts = append(opts, asciigraph.Width(o.Width))
	}
	if o.Caption != "" {
		opts = append(opts, asciigraph.Caption(o.Caption))
	}
	return asciigraph.Plot(curve.Ys(samples), opts...)
}
