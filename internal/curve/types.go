package curve

// Component is one rotating circle: a sinusoidal term of the composed curve.
type Component struct {
	Radius    float64 `json:"radius"`
	Frequency float64 `json:"frequency"`
	Phase     float64 `json:"phase"`
}

// Formula selects how components are accumulated into y.
type Formula string

const (
	// y = sum of radius * sin(frequency*x + phase)
	FormulaSine Formula = "sine"
	// y = sum of radius*frequency*x + phase
	//
	// Deprecated: kept only to reproduce the first draft of the curve script.
	FormulaLinear Formula = "linear"
)

// AngleUnit selects the sampling domain.
type AngleUnit string

const (
	// N points over [0, 2π], arguments in radians.
	UnitRadians AngleUnit = "radians"
	// x is the sample index 0..N-1 and frequency*x + phase is taken in degrees.
	UnitDegrees AngleUnit = "degrees"
)

// Curve is a sample count plus an ordered set of components.
// Zero Unit means radians, zero Formula means sine.
type Curve struct {
	N          int         `json:"n"`
	Components []Component `json:"components"`
	Unit       AngleUnit   `json:"unit,omitempty"`
	Formula    Formula     `json:"formula,omitempty"`
}

// Sample is one (x, y) point of an evaluated curve.
type Sample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Xs returns the x coordinates of samples.
func Xs(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.X
	}
	return out
}

// Ys returns the y coordinates of samples.
func Ys(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Y
	}
	return out
}
