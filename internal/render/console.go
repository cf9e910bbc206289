// Package render holds the presentation adapters for evaluated curves:
// plain text, image charts and terminal charts.
package render

import (
	"bufio"
	"io"
	"strconv"

	"github.com/xtding233/circle-curves/internal/curve"
)

// WriteSamples writes one "x y" line per sample, in the given order.
func WriteSamples(w io.Writer, samples []curve.Sample) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 64)
	for _, s := range samples {
		buf = buf[:0]
		buf = strconv.AppendFloat(buf, s.X, 'g', -1, 64)
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, s.Y, 'g', -1, 64)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
