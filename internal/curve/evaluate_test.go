package curve_test

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/xtding233/circle-curves/internal/curve"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) <= eps }

func TestEvaluateHarmonicsDomain(t *testing.T) {
	comps := []curve.Component{
		{Radius: 1, Frequency: 1, Phase: 0},
		{Radius: 1, Frequency: 2, Phase: 0},
		{Radius: 1, Frequency: 3, Phase: 0},
	}
	got, err := curve.Evaluate(5, comps)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2, 2 * math.Pi}
	if len(got) != len(want) {
		t.Fatalf("len=%d want %d", len(got), len(want))
	}
	for i, x := range want {
		if !near(got[i].X, x) {
			t.Fatalf("x[%d]=%f want %f", i, got[i].X, x)
		}
	}
	if got[0].Y != 0 {
		t.Fatalf("y[0]=%f want 0", got[0].Y)
	}
	// sin(π/2)+sin(π)+sin(3π/2) = 1 + 0 - 1
	if !near(got[1].Y, 0) {
		t.Fatalf("y[1]=%f want 0", got[1].Y)
	}
}

func TestEvaluateSinglePoint(t *testing.T) {
	comps := []curve.Component{
		{Radius: 2, Frequency: 5, Phase: 0.5},
		{Radius: 1, Frequency: 9, Phase: 1},
	}
	got, err := curve.Evaluate(1, comps)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("len=%d want 1", len(got))
	}
	if got[0].X != 0 {
		t.Fatalf("x=%f want 0", got[0].X)
	}
	want := 2*math.Sin(0.5) + math.Sin(1)
	if !near(got[0].Y, want) {
		t.Fatalf("y=%f want %f", got[0].Y, want)
	}
}

func TestEvaluateEmptyComponents(t *testing.T) {
	for _, n := range []int{1, 2, 7, 100} {
		got, err := curve.Evaluate(n, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != n {
			t.Fatalf("n=%d: len=%d", n, len(got))
		}
		for i, s := range got {
			if s.Y != 0 {
				t.Fatalf("n=%d: y[%d]=%f want 0", n, i, s.Y)
			}
		}
	}
}

func TestEvaluateConstantComponent(t *testing.T) {
	got, err := curve.Evaluate(10, []curve.Component{{Radius: 3, Frequency: 0, Phase: 1}})
	if err != nil {
		t.Fatal(err)
	}
	want := 3 * math.Sin(1)
	for i, s := range got {
		if !near(s.Y, want) {
			t.Fatalf("y[%d]=%f want %f", i, s.Y, want)
		}
	}
	if math.Abs(want-2.524) > 1e-3 {
		t.Fatalf("3·sin(1)=%f, expected ≈2.524", want)
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	comps := curve.RisingTide(0).Components
	a, err := curve.Evaluate(50, comps)
	if err != nil {
		t.Fatal(err)
	}
	b, err := curve.Evaluate(50, comps)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated evaluation differs")
	}
}

func TestEvaluateDomainSpacing(t *testing.T) {
	for _, n := range []int{2, 3, 15, 100} {
		got, err := curve.Evaluate(n, nil)
		if err != nil {
			t.Fatal(err)
		}
		step := 2 * math.Pi / float64(n-1)
		for i := 1; i < n; i++ {
			if got[i].X <= got[i-1].X {
				t.Fatalf("n=%d: x not strictly increasing at %d", n, i)
			}
			if d := got[i].X - got[i-1].X; !near(d, step) {
				t.Fatalf("n=%d: spacing %f want %f", n, d, step)
			}
		}
		if got[0].X != 0 || got[n-1].X != 2*math.Pi {
			t.Fatalf("n=%d: endpoints %f..%f", n, got[0].X, got[n-1].X)
		}
	}
}

func TestEvaluateInvalidSampleCount(t *testing.T) {
	for _, n := range []int{0, -1, -100} {
		if _, err := curve.Evaluate(n, nil); !errors.Is(err, curve.ErrInvalidSampleCount) {
			t.Fatalf("n=%d: err=%v, want ErrInvalidSampleCount", n, err)
		}
		if _, err := curve.EvaluateLegacy(n, nil); !errors.Is(err, curve.ErrInvalidSampleCount) {
			t.Fatalf("legacy n=%d: err=%v", n, err)
		}
		if _, err := curve.EvaluateDegrees(n, nil); !errors.Is(err, curve.ErrInvalidSampleCount) {
			t.Fatalf("degrees n=%d: err=%v", n, err)
		}
	}
}

func TestEvaluateLegacyLinear(t *testing.T) {
	comps := curve.Harmonics(0).Components
	got, err := curve.EvaluateLegacy(5, comps)
	if err != nil {
		t.Fatal(err)
	}
	// 1*1*x + 1*2*x + 1*3*x = 6x
	for i, s := range got {
		if !near(s.Y, 6*s.X) {
			t.Fatalf("y[%d]=%f want %f", i, s.Y, 6*s.X)
		}
	}
}

func TestEvaluateDegrees(t *testing.T) {
	got, err := curve.EvaluateDegrees(4, []curve.Component{{Radius: 2, Frequency: 90, Phase: 0}})
	if err != nil {
		t.Fatal(err)
	}
	want := []curve.Sample{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 2, Y: 0}, {X: 3, Y: -2}}
	for i := range want {
		if got[i].X != want[i].X || !near(got[i].Y, want[i].Y) {
			t.Fatalf("sample %d = %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestCurveEvaluateDispatch(t *testing.T) {
	c := curve.Harmonics(0)
	sine, err := c.Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	direct, _ := curve.Evaluate(c.N, c.Components)
	if !reflect.DeepEqual(sine, direct) {
		t.Fatalf("zero formula should evaluate as sine")
	}

	c.Formula = curve.FormulaLinear
	lin, err := c.Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	legacy, _ := curve.EvaluateLegacy(c.N, c.Components)
	if !reflect.DeepEqual(lin, legacy) {
		t.Fatalf("linear formula should use legacy accumulation")
	}

	c.Unit = curve.UnitDegrees
	if _, err := c.Evaluate(); !errors.Is(err, curve.ErrInvalidCurve) {
		t.Fatalf("linear+degrees: err=%v want ErrInvalidCurve", err)
	}

	c = curve.Curve{N: 3, Formula: "cosine"}
	if _, err := c.Evaluate(); !errors.Is(err, curve.ErrInvalidCurve) {
		t.Fatalf("unknown formula: err=%v", err)
	}
}

func TestLinspace(t *testing.T) {
	if got := curve.Linspace(0); got != nil {
		t.Fatalf("Linspace(0)=%v want nil", got)
	}
	if got := curve.Linspace(1); len(got) != 1 || got[0] != 0 {
		t.Fatalf("Linspace(1)=%v", got)
	}
	got := curve.Linspace(3)
	if got[0] != 0 || !near(got[1], math.Pi) || got[2] != 2*math.Pi {
		t.Fatalf("Linspace(3)=%v", got)
	}
}

func TestCheckFinite(t *testing.T) {
	ok, _ := curve.Evaluate(5, curve.Harmonics(0).Components)
	if err := curve.CheckFinite(ok); err != nil {
		t.Fatalf("finite samples rejected: %v", err)
	}

	// two huge radii overflow the sum even though each input is finite
	big := []curve.Component{{Radius: 1e308, Phase: math.Pi / 2}, {Radius: 1e308, Phase: math.Pi / 2}}
	samples, err := curve.Evaluate(3, big)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if err := curve.CheckFinite(samples); !errors.Is(err, curve.ErrNonFiniteSample) {
		t.Fatalf("overflow: err=%v, want ErrNonFiniteSample", err)
	}

	nan := []curve.Sample{{X: 0, Y: 1}, {X: 1, Y: math.NaN()}}
	if err := curve.CheckFinite(nan); !errors.Is(err, curve.ErrNonFiniteSample) {
		t.Fatalf("NaN: err=%v, want ErrNonFiniteSample", err)
	}
}
