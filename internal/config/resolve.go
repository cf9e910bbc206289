// resolve.go
package config

import (
	"fmt"

	"github.com/xtding233/circle-curves/internal/curve"
)

// Overrides carries caller-side overrides (flags, query params) applied last.
type Overrides struct {
	N       *int
	Formula *string
	Unit    *string
}

type Resolver interface {
	// Returns merged RawConfig and the curve ready for evaluation
	Resolve(name string, o Overrides) (RawConfig, curve.Curve, error)
}

var _ Resolver = (*Loader)(nil)

// Resolve merges default → curve file → overrides and builds a curve.Curve.
// The preset (if any) is the base, explicit YAML fields replace its values.
func (l *Loader) Resolve(name string, o Overrides) (RawConfig, curve.Curve, error) {
	raw, err := l.LoadMerged(name)
	if err != nil {
		return RawConfig{}, curve.Curve{}, err
	}
	if o.N != nil {
		n := *o.N
		raw.Curve.N = &n
	}
	if o.Formula != nil {
		raw.Curve.Formula = *o.Formula
	}
	if o.Unit != nil {
		raw.Curve.Unit = *o.Unit
	}
	if err := ValidateRaw(raw); err != nil {
		return raw, curve.Curve{}, err
	}
	c := Build(raw.Curve)
	if err := c.Validate(); err != nil {
		return raw, curve.Curve{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return raw, c, nil
}

// Build turns a validated CurveConfig into a curve.Curve.
func Build(cc CurveConfig) curve.Curve {
	var c curve.Curve
	if f, ok := curve.LookupPreset(cc.Preset); ok {
		target := float64(curve.DefaultTarget)
		if cc.Target != nil {
			target = *cc.Target
		}
		c = f(target)
	}
	if cc.N != nil {
		c.N = *cc.N
	}
	if cc.Formula != "" {
		c.Formula = curve.Formula(cc.Formula)
	}
	if cc.Unit != "" {
		c.Unit = curve.AngleUnit(cc.Unit)
	}
	if len(cc.Components) > 0 {
		c.Components = make([]curve.Component, 0, len(cc.Components))
		for _, comp := range cc.Components {
			c.Components = append(c.Components, curve.Component{
				Radius:    deref(comp.Radius),
				Frequency: deref(comp.Frequency),
				Phase:     deref(comp.Phase),
			})
		}
	}
	return c
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
