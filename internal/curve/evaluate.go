package curve

import "math"

// termFunc is the contribution of a single component at x.
type termFunc func(c Component, x float64) float64

func sineTerm(c Component, x float64) float64 {
	return c.Radius * math.Sin(c.Frequency*x+c.Phase)
}

func linearTerm(c Component, x float64) float64 {
	return c.Radius*c.Frequency*x + c.Phase
}

func degreesTerm(c Component, x float64) float64 {
	return c.Radius * math.Sin((c.Frequency*x+c.Phase)*math.Pi/180)
}

// accumulate sums term over components at every x, in x order.
func accumulate(xs []float64, components []Component, term termFunc) []Sample {
	out := make([]Sample, len(xs))
	for i, x := range xs {
		var y float64
		for _, c := range components {
			y += term(c, x)
		}
		out[i] = Sample{X: x, Y: y}
	}
	return out
}

// Evaluate samples the composed waveform at n evenly spaced points over [0, 2π]:
// y(x) = Σ radius·sin(frequency·x + phase).
// n < 1 => ErrInvalidSampleCount. Empty components => y ≡ 0.
func Evaluate(n int, components []Component) ([]Sample, error) {
	if err := validateSampleCount(n); err != nil {
		return nil, err
	}
	return accumulate(Linspace(n), components, sineTerm), nil
}

// EvaluateLegacy uses the same domain as Evaluate but accumulates the linear
// form y(x) = Σ radius·frequency·x + phase.
//
// Deprecated: use Evaluate. Kept to reproduce output of the first curve script.
func EvaluateLegacy(n int, components []Component) ([]Sample, error) {
	if err := validateSampleCount(n); err != nil {
		return nil, err
	}
	return accumulate(Linspace(n), components, linearTerm), nil
}

// EvaluateDegrees samples at the integer indices 0..n-1 and treats
// frequency·i + phase as an angle in degrees.
func EvaluateDegrees(n int, components []Component) ([]Sample, error) {
	if err := validateSampleCount(n); err != nil {
		return nil, err
	}
	return accumulate(indexDomain(n), components, degreesTerm), nil
}

// Evaluate dispatches on the curve's formula and unit.
func (c Curve) Evaluate() ([]Sample, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	switch {
	case c.Formula == FormulaLinear:
		return EvaluateLegacy(c.N, c.Components)
	case c.Unit == UnitDegrees:
		return EvaluateDegrees(c.N, c.Components)
	default:
		return Evaluate(c.N, c.Components)
	}
}
