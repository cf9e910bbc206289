package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const defaultKey = "$default"

// Paths helper for default/curve files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/app/config
}

func (p Paths) CurvesDir() string {
	return filepath.Join(p.BaseDir, "curves")
}
func (p Paths) DefaultPath() string {
	return filepath.Join(p.CurvesDir(), "default.yaml")
}
func (p Paths) CurvePath(name string) string {
	return filepath.Join(p.CurvesDir(), name+".yaml")
}

// Loader reads YAML curve definitions and merges default → curve.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: curve name or "$default"
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// Paths returns the directory layout the loader reads from.
func (l *Loader) Paths() Paths { return l.paths }

// LoadMerged loads default.yaml and <name>.yaml and merges them, the curve
// file winning. An empty name returns the defaults only. A name with no file
// returns ErrCurveNotFound.
// It returns the merged RawConfig without validation.
func (l *Loader) LoadMerged(name string) (RawConfig, error) {
	key := name
	if key == "" {
		key = defaultKey
	}
	l.mu.RLock()
	if cfg, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, _, err := readYAML(l.paths.DefaultPath()) // defaults are optional
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if name != "" {
		curveCfg, found, err := readYAML(l.paths.CurvePath(name))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read curve %q: %w", name, err)
		}
		if !found {
			return RawConfig{}, fmt.Errorf("%w: %s", ErrCurveNotFound, name)
		}
		merged = mergeRaw(defCfg, curveCfg)
	}

	l.mu.Lock()
	l.cache[defaultKey] = defCfg
	l.cache[key] = merged
	l.mu.Unlock()

	return merged, nil
}

// Invalidate clears loader's cache. Call after the watcher reports a change.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg and found=false.
func readYAML(path string) (RawConfig, bool, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, false, nil
		}
		return RawConfig{}, false, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, true, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, filepath.Base(path), err)
	}
	return cfg, true, nil
}

// mergeRaw overlays 'b' on 'a' where b is non-zero/non-nil.
// Components in 'b' replace a's list as a whole.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	// top-level scalars
	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	// curve
	if b.Curve.Preset != "" {
		out.Curve.Preset = b.Curve.Preset
	}
	if b.Curve.Target != nil {
		out.Curve.Target = b.Curve.Target
	}
	if b.Curve.N != nil {
		out.Curve.N = b.Curve.N
	}
	if b.Curve.Formula != "" {
		out.Curve.Formula = b.Curve.Formula
	}
	if b.Curve.Unit != "" {
		out.Curve.Unit = b.Curve.Unit
	}
	if len(b.Curve.Components) > 0 {
		out.Curve.Components = append([]ComponentConfig(nil), b.Curve.Components...)
	}

	// render
	switch {
	case out.Render == nil && b.Render != nil:
		c := *b.Render
		out.Render = &c
	case out.Render != nil && b.Render != nil:
		c := *out.Render
		if b.Render.Title != "" {
			c.Title = b.Render.Title
		}
		if b.Render.Width != 0 {
			c.Width = b.Render.Width
		}
		if b.Render.Height != 0 {
			c.Height = b.Render.Height
		}
		if b.Render.Output != "" {
			c.Output = b.Render.Output
		}
		out.Render = &c
	}

	return out
}
