package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/xtding233/circle-curves/internal/curve"
)

var (
	ErrInvalidConfig = errors.New("invalid curve config")
	ErrCurveNotFound = errors.New("curve not found")
)

// ValidateRaw checks semantic constraints of a RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// curve.preset
	if cfg.Curve.Preset != "" {
		if _, ok := curve.LookupPreset(cfg.Curve.Preset); !ok {
			errs = append(errs, fmt.Sprintf("curve.preset %q is unknown (known: %s)",
				cfg.Curve.Preset, strings.Join(curve.PresetNames(), ", ")))
		}
	}
	// curve.n
	if cfg.Curve.N != nil && *cfg.Curve.N < 1 {
		errs = append(errs, "curve.n must be >= 1")
	}
	if cfg.Curve.Target != nil && !finite(*cfg.Curve.Target) {
		errs = append(errs, "curve.target must be finite")
	}

	// formula / unit
	formula, ferr := curve.ParseFormula(cfg.Curve.Formula)
	if ferr != nil {
		errs = append(errs, "curve.formula must be one of: sine, linear")
	}
	unit, uerr := curve.ParseUnit(cfg.Curve.Unit)
	if uerr != nil {
		errs = append(errs, "curve.unit must be one of: radians, degrees")
	}
	if ferr == nil && uerr == nil && formula == curve.FormulaLinear && unit == curve.UnitDegrees {
		errs = append(errs, "curve.formula=linear cannot be combined with unit=degrees")
	}

	// components
	for i, c := range cfg.Curve.Components {
		for _, f := range []struct {
			name string
			v    *float64
		}{{"radius", c.Radius}, {"frequency", c.Frequency}, {"phase", c.Phase}} {
			switch {
			case f.v == nil:
				errs = append(errs, fmt.Sprintf("curve.components[%d].%s is required", i, f.name))
			case !finite(*f.v):
				errs = append(errs, fmt.Sprintf("curve.components[%d].%s must be finite", i, f.name))
			}
		}
	}

	// render (optional)
	if cfg.Render != nil {
		if cfg.Render.Width < 0 {
			errs = append(errs, "render.width must be >= 0")
		}
		if cfg.Render.Height < 0 {
			errs = append(errs, "render.height must be >= 0")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
