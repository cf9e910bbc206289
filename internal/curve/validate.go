package curve

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidSampleCount = errors.New("invalid sample count; must be >= 1")
	ErrInvalidCurve       = errors.New("invalid curve")
	ErrNonFiniteSample    = errors.New("non-finite sample")
)

func validateSampleCount(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSampleCount, n)
	}
	return nil
}

// ParseFormula maps a user string to a Formula. Empty means sine.
func ParseFormula(s string) (Formula, error) {
	switch Formula(s) {
	case "", FormulaSine:
		return FormulaSine, nil
	case FormulaLinear:
		return FormulaLinear, nil
	}
	return "", fmt.Errorf("%w: unknown formula %q (want sine or linear)", ErrInvalidCurve, s)
}

// ParseUnit maps a user string to an AngleUnit. Empty means radians.
func ParseUnit(s string) (AngleUnit, error) {
	switch AngleUnit(s) {
	case "", UnitRadians:
		return UnitRadians, nil
	case UnitDegrees:
		return UnitDegrees, nil
	}
	return "", fmt.Errorf("%w: unknown unit %q (want radians or degrees)", ErrInvalidCurve, s)
}

// Validate checks that c can be evaluated.
func (c Curve) Validate() error {
	if err := validateSampleCount(c.N); err != nil {
		return err
	}
	f, err := ParseFormula(string(c.Formula))
	if err != nil {
		return err
	}
	u, err := ParseUnit(string(c.Unit))
	if err != nil {
		return err
	}
	if f == FormulaLinear && u == UnitDegrees {
		return fmt.Errorf("%w: linear formula has no degrees domain", ErrInvalidCurve)
	}
	return nil
}

// CheckFinite reports the first sample whose x or y is NaN or ±Inf.
func CheckFinite(samples []Sample) error {
	for i, s := range samples {
		if !finite(s.X) || !finite(s.Y) {
			return fmt.Errorf("%w: sample %d is (%v, %v)", ErrNonFiniteSample, i, s.X, s.Y)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
