// types.go
package config

// RawConfig is a curve definition as loaded from YAML.
type RawConfig struct {
	Version string        `yaml:"version"`
	Curve   CurveConfig   `yaml:"curve"`
	Render  *RenderConfig `yaml:"render,omitempty"`
	Notes   string        `yaml:"notes,omitempty"`
}

type CurveConfig struct {
	Preset     string            `yaml:"preset,omitempty"` // base preset, e.g. "mountain"
	Target     *float64          `yaml:"target,omitempty"` // passed to the preset, currently unused by every preset
	N          *int              `yaml:"n,omitempty"`
	Formula    string            `yaml:"formula,omitempty"` // "sine" | "linear"
	Unit       string            `yaml:"unit,omitempty"`    // "radians" | "degrees"
	Components []ComponentConfig `yaml:"components,omitempty"`
}

type ComponentConfig struct {
	Radius    *float64 `yaml:"radius"`
	Frequency *float64 `yaml:"frequency"`
	Phase     *float64 `yaml:"phase"`
}

type RenderConfig struct {
	Title  string  `yaml:"title,omitempty"`
	Width  float64 `yaml:"width,omitempty"`  // inches
	Height float64 `yaml:"height,omitempty"` // inches
	Output string  `yaml:"output,omitempty"` // file path; extension picks the format
}
