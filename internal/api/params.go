package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/xtding233/circle-curves/internal/curve"
)

// MaxSamples caps n for a single request.
const MaxSamples = 100_000

var (
	ErrUnknownPreset  = errors.New("unknown preset")
	ErrBadParam       = errors.New("bad parameter")
	ErrTooManySamples = fmt.Errorf("too many samples; must be <= %d", MaxSamples)
)

func parseFloat(r *http.Request, key string) (float64, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

func parseInt(r *http.Request, key string) (int, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

// parseComponent reads "radius,frequency,phase".
func parseComponent(s string) (curve.Component, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return curve.Component{}, fmt.Errorf("%w: c %q: want radius,frequency,phase", ErrBadParam, s)
	}
	var vals [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return curve.Component{}, fmt.Errorf("%w: c %q: %v", ErrBadParam, s, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return curve.Component{}, fmt.Errorf("%w: c %q: values must be finite", ErrBadParam, s)
		}
		vals[i] = v
	}
	return curve.Component{Radius: vals[0], Frequency: vals[1], Phase: vals[2]}, nil
}

// curveFromQuery builds a curve from preset/target/n/formula/unit/c params.
// Explicit c params replace the preset's components.
func curveFromQuery(r *http.Request) (curve.Curve, error) {
	q := r.URL.Query()
	var c curve.Curve

	if name := q.Get("preset"); name != "" {
		f, ok := curve.LookupPreset(name)
		if !ok {
			return curve.Curve{}, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
		}
		target, hasTarget, msg := parseFloat(r, "target")
		if msg != "" {
			return curve.Curve{}, fmt.Errorf("%w: %s", ErrBadParam, msg)
		}
		if !hasTarget {
			target = curve.DefaultTarget
		}
		c = f(target)
	}

	n, hasN, msg := parseInt(r, "n")
	if msg != "" {
		return curve.Curve{}, fmt.Errorf("%w: %s", ErrBadParam, msg)
	}
	if hasN {
		c.N = n
	}

	if s := q.Get("formula"); s != "" {
		f, err := curve.ParseFormula(s)
		if err != nil {
			return curve.Curve{}, err
		}
		c.Formula = f
	}
	if s := q.Get("unit"); s != "" {
		u, err := curve.ParseUnit(s)
		if err != nil {
			return curve.Curve{}, err
		}
		c.Unit = u
	}

	if raw := q["c"]; len(raw) > 0 {
		comps := make([]curve.Component, 0, len(raw))
		for _, s := range raw {
			comp, err := parseComponent(s)
			if err != nil {
				return curve.Curve{}, err
			}
			comps = append(comps, comp)
		}
		c.Components = comps
	}
	return c, nil
}

// checkSize rejects curves too large to evaluate for one request.
func checkSize(c curve.Curve) error {
	if c.N > MaxSamples {
		return fmt.Errorf("%w: got %d", ErrTooManySamples, c.N)
	}
	return nil
}
