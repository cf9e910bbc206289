package curve

import (
	"math"
	"sort"
)

// Summary describes the y values of an evaluated curve.
type Summary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
}

// Summarize computes min/max/mean/variance/percentiles of the samples' y.
func Summarize(samples []Sample) Summary {
	n := len(samples)
	if n == 0 {
		return Summary{}
	}
	ys := Ys(samples)

	// mean
	var sum float64
	for _, v := range ys {
		sum += v
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range ys {
		d := v - mean
		acc += d * d
	}
	variance := acc / float64(n)

	sort.Float64s(ys)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return ys[0]
		}
		if p >= 1 {
			return ys[n-1]
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return ys[i]
		}
		return ys[i]*(1-f) + ys[i+1]*f
	}

	return Summary{
		Count:  n,
		Min:    ys[0],
		Max:    ys[n-1],
		Mean:   mean,
		Var:    variance,
		StdDev: math.Sqrt(variance),
		P50:    percentile(0.50),
		P90:    percentile(0.90),
		P99:    percentile(0.99),
	}
}
