package curve

import "sort"

// PresetFunc returns a fixed curve definition.
// The target value is accepted for compatibility but not used yet: solving for
// circles that hit a target is not implemented, every preset is hardcoded.
type PresetFunc func(target float64) Curve

// DefaultPreset and DefaultTarget reproduce the reference entry point, flat(15).
const (
	DefaultPreset = "flat"
	DefaultTarget = 15
)

// Flat: N=2, a constant offset plus one full-turn circle.
func Flat(target float64) Curve {
	return Curve{
		N: 2,
		Components: []Component{
			{Radius: 1, Frequency: 0, Phase: 1},
			{Radius: 3, Frequency: 1, Phase: 0},
		},
	}
}

// RisingTide: N=100, a quarter-speed circle over the constant offset.
func RisingTide(target float64) Curve {
	return Curve{
		N: 100,
		Components: []Component{
			{Radius: 1, Frequency: 0, Phase: 1},
			{Radius: 3, Frequency: 0.25, Phase: 0},
		},
	}
}

// Mountain: N=4, same two components whatever the target.
func Mountain(target float64) Curve {
	return Curve{
		N: 4,
		Components: []Component{
			{Radius: 1, Frequency: 0, Phase: 1},
			{Radius: 1, Frequency: 0.85, Phase: 0},
		},
	}
}

// Harmonics is the curve of the first script: three unit circles at 1x, 2x and 3x.
func Harmonics(target float64) Curve {
	return Curve{
		N: 5,
		Components: []Component{
			{Radius: 1, Frequency: 1, Phase: 0},
			{Radius: 1, Frequency: 2, Phase: 0},
			{Radius: 1, Frequency: 3, Phase: 0},
		},
	}
}

// Egocentric is the web chart's default pay curve (degrees domain).
func Egocentric(target float64) Curve {
	return Curve{
		N:    100,
		Unit: UnitDegrees,
		Components: []Component{
			{Radius: 1, Frequency: 0, Phase: 1},
			{Radius: 1, Frequency: 0.85, Phase: 0},
		},
	}
}

// Exponential (degrees domain).
func Exponential(target float64) Curve {
	return Curve{
		N:    100,
		Unit: UnitDegrees,
		Components: []Component{
			{Radius: 1, Frequency: 0, Phase: 0},
			{Radius: 1, Frequency: 0.25, Phase: 270},
		},
	}
}

var presets = map[string]PresetFunc{
	"flat":        Flat,
	"rising_tide": RisingTide,
	"mountain":    Mountain,
	"harmonics":   Harmonics,
	"egocentric":  Egocentric,
	"exponential": Exponential,
}

// LookupPreset finds a preset by name.
func LookupPreset(name string) (PresetFunc, bool) {
	f, ok := presets[name]
	return f, ok
}

// PresetNames returns all preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
