package curve

import "math"

// Linspace returns n evenly spaced points over [0, 2π].
// n == 1 gives {0}; n > 1 includes both endpoints, the last one exactly 2π.
// n < 1 gives nil.
func Linspace(n int) []float64 {
	if n < 1 {
		return nil
	}
	xs := make([]float64, n)
	if n == 1 {
		return xs
	}
	step := 2 * math.Pi / float64(n-1)
	for i := range xs {
		xs[i] = float64(i) * step
	}
	// avoid drift on the closing endpoint
	xs[n-1] = 2 * math.Pi
	return xs
}

// indexDomain returns 0, 1, ..., n-1.
func indexDomain(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}
