package rpc

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/circle-curves/internal/curve"
)

// MaxSamples caps n for a single call.
const MaxSamples = 100_000

var (
	ErrMismatchedLists = errors.New("radii, frequencies and phases must have equal length")
	ErrUnknownPreset   = errors.New("unknown preset")
	ErrTooManySamples  = fmt.Errorf("too many samples; must be <= %d", MaxSamples)
)

// Request is the decoded form of an Evaluate call.
type Request struct {
	N           *int
	Preset      string
	Target      *float64
	Formula     string
	Unit        string
	Radii       []float64
	Frequencies []float64
	Phases      []float64
}

// Curve builds the curve to evaluate. Explicit lists replace the preset's components.
func (r Request) Curve() (curve.Curve, error) {
	var c curve.Curve
	if r.Preset != "" {
		f, ok := curve.LookupPreset(r.Preset)
		if !ok {
			return curve.Curve{}, fmt.Errorf("%w: %s", ErrUnknownPreset, r.Preset)
		}
		target := float64(curve.DefaultTarget)
		if r.Target != nil {
			target = *r.Target
		}
		c = f(target)
	}
	if r.N != nil {
		if *r.N > MaxSamples {
			return curve.Curve{}, fmt.Errorf("%w: got %d", ErrTooManySamples, *r.N)
		}
		c.N = *r.N
	}
	if r.Formula != "" {
		f, err := curve.ParseFormula(r.Formula)
		if err != nil {
			return curve.Curve{}, err
		}
		c.Formula = f
	}
	if r.Unit != "" {
		u, err := curve.ParseUnit(r.Unit)
		if err != nil {
			return curve.Curve{}, err
		}
		c.Unit = u
	}
	if len(r.Radii) != len(r.Frequencies) || len(r.Radii) != len(r.Phases) {
		return curve.Curve{}, ErrMismatchedLists
	}
	if len(r.Radii) > 0 {
		c.Components = make([]curve.Component, len(r.Radii))
		for i := range r.Radii {
			c.Components[i] = curve.Component{Radius: r.Radii[i], Frequency: r.Frequencies[i], Phase: r.Phases[i]}
		}
	}
	return c, nil
}

// Encode packs the request into a Struct.
func (r Request) Encode() (*structpb.Struct, error) {
	m := map[string]any{}
	if r.N != nil {
		m["n"] = *r.N
	}
	if r.Preset != "" {
		m["preset"] = r.Preset
	}
	if r.Target != nil {
		m["target"] = *r.Target
	}
	if r.Formula != "" {
		m["formula"] = r.Formula
	}
	if r.Unit != "" {
		m["unit"] = r.Unit
	}
	if len(r.Radii)+len(r.Frequencies)+len(r.Phases) > 0 {
		m["radii"] = floats(r.Radii)
		m["frequencies"] = floats(r.Frequencies)
		m["phases"] = floats(r.Phases)
	}
	return structpb.NewStruct(m)
}

// DecodeRequest reads a Request from a Struct.
func DecodeRequest(st *structpb.Struct) (Request, error) {
	var r Request
	fields := st.GetFields()
	if v, ok := fields["n"]; ok {
		f, err := number(v, "n")
		if err != nil {
			return Request{}, err
		}
		if f != math.Trunc(f) {
			return Request{}, fmt.Errorf("n must be an integer, got %v", f)
		}
		// bound before converting; int(f) is undefined outside the int range
		if math.Abs(f) > MaxSamples {
			return Request{}, fmt.Errorf("%w: got %v", ErrTooManySamples, f)
		}
		n := int(f)
		r.N = &n
	}
	if v, ok := fields["target"]; ok {
		f, err := number(v, "target")
		if err != nil {
			return Request{}, err
		}
		r.Target = &f
	}
	r.Preset = fields["preset"].GetStringValue()
	r.Formula = fields["formula"].GetStringValue()
	r.Unit = fields["unit"].GetStringValue()

	var err error
	if r.Radii, err = numberList(fields["radii"], "radii"); err != nil {
		return Request{}, err
	}
	if r.Frequencies, err = numberList(fields["frequencies"], "frequencies"); err != nil {
		return Request{}, err
	}
	if r.Phases, err = numberList(fields["phases"], "phases"); err != nil {
		return Request{}, err
	}
	return r, nil
}

func number(v *structpb.Value, name string) (float64, error) {
	nv, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	if math.IsNaN(nv.NumberValue) || math.IsInf(nv.NumberValue, 0) {
		return 0, fmt.Errorf("%s must be finite", name)
	}
	return nv.NumberValue, nil
}

func numberList(v *structpb.Value, name string) ([]float64, error) {
	if v == nil {
		return nil, nil
	}
	list := v.GetListValue()
	if list == nil {
		return nil, fmt.Errorf("%s must be a list", name)
	}
	out := make([]float64, len(list.GetValues()))
	for i, item := range list.GetValues() {
		f, err := number(item, fmt.Sprintf("%s[%d]", name, i))
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func floats(xs []float64) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}
