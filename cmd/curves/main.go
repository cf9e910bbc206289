package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gonum.org/v1/plot/vg"

	"github.com/xtding233/circle-curves/internal/config"
	"github.com/xtding233/circle-curves/internal/curve"
	"github.com/xtding233/circle-curves/internal/render"
)

var (
	// curve selection
	presetName string
	target     float64
	sampleN    int
	formula    string
	unit       string
	configDir  string
	curveName  string

	// output
	plotPath    string
	termChart   bool
	showSummary bool
	verbose     bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "curves",
	Short: "Evaluate and plot curves built from rotating circles",
	Long: `curves samples y(x) = Σ radius·sin(frequency·x + phase) at N evenly spaced
points over [0, 2π], prints one "x y" line per sample and draws the curve.

Without flags it evaluates the flat preset with target 15.

Examples:
  curves --preset mountain --term
  curves --config ./config --curve tide --plot tide.svg
  curves --preset harmonics --formula linear`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logger != nil {
			return nil
		}
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runCurves,
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in curve presets",
	Args:  cobra.NoArgs,
	RunE:  listPresets,
}

func init() {
	bindCurveFlags(rootCmd)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(presetsCmd)
}

// bindCurveFlags registers the evaluation flags on cmd, resetting them to defaults.
func bindCurveFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&presetName, "preset", curve.DefaultPreset, "built-in curve preset")
	f.Float64Var(&target, "target", curve.DefaultTarget, "target value passed to the preset (currently unused by all presets)")
	f.IntVar(&sampleN, "n", 0, "override the number of samples")
	f.StringVar(&formula, "formula", "", "accumulation formula: sine or linear (deprecated)")
	f.StringVar(&unit, "unit", "", "domain unit: radians or degrees")
	f.StringVar(&configDir, "config", "", "config base directory holding curves/*.yaml")
	f.StringVar(&curveName, "curve", "", "curve name to load from --config")
	f.StringVar(&plotPath, "plot", "curve.png", "chart output path (png, svg, pdf); empty disables")
	f.BoolVar(&termChart, "term", false, "draw an ASCII chart on stderr")
	f.BoolVar(&showSummary, "summary", false, "print y statistics on stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// selectCurve picks the curve and chart options from flags, or from the config
// directory when --curve is given. Flags explicitly set win over YAML.
func selectCurve(cmd *cobra.Command) (curve.Curve, render.ChartOptions, string, error) {
	flags := cmd.Flags()
	out := plotPath
	var opts render.ChartOptions

	var c curve.Curve
	if curveName != "" {
		if configDir == "" {
			return curve.Curve{}, opts, "", fmt.Errorf("--curve requires --config")
		}
		var o config.Overrides
		if flags.Changed("n") {
			o.N = &sampleN
		}
		if flags.Changed("formula") {
			o.Formula = &formula
		}
		if flags.Changed("unit") {
			o.Unit = &unit
		}
		raw, resolved, err := config.NewLoader(configDir).Resolve(curveName, o)
		if err != nil {
			return curve.Curve{}, opts, "", err
		}
		c = resolved
		opts.Title = curveName
		if r := raw.Render; r != nil {
			if r.Title != "" {
				opts.Title = r.Title
			}
			opts.Width = vg.Length(r.Width) * vg.Inch
			opts.Height = vg.Length(r.Height) * vg.Inch
			if r.Output != "" && !flags.Changed("plot") {
				out = r.Output
			}
		}
	} else {
		preset, ok := curve.LookupPreset(presetName)
		if !ok {
			return curve.Curve{}, opts, "", fmt.Errorf("unknown preset %q (see 'curves presets')", presetName)
		}
		c = preset(target)
		opts.Title = fmt.Sprintf("%s(%g)", presetName, target)
		if flags.Changed("n") {
			c.N = sampleN
		}
		if flags.Changed("formula") {
			c.Formula = curve.Formula(formula)
		}
		if flags.Changed("unit") {
			c.Unit = curve.AngleUnit(unit)
		}
	}
	opts.Unit = c.Unit
	return c, opts, out, nil
}

func runCurves(cmd *cobra.Command, args []string) error {
	c, opts, out, err := selectCurve(cmd)
	if err != nil {
		return err
	}
	if c.Formula == curve.FormulaLinear {
		logger.Warn("linear formula is deprecated; results are not a circular transform")
	}

	samples, err := c.Evaluate()
	if err != nil {
		return err
	}
	logger.Debug("curve evaluated",
		zap.Int("n", c.N),
		zap.Int("components", len(c.Components)),
		zap.String("formula", string(c.Formula)),
		zap.String("unit", string(c.Unit)))

	if err := render.WriteSamples(cmd.OutOrStdout(), samples); err != nil {
		return err
	}

	if showSummary {
		s := curve.Summarize(samples)
		fmt.Fprintf(cmd.ErrOrStderr(), "n=%d min=%g max=%g mean=%g stddev=%g p50=%g p90=%g\n",
			s.Count, s.Min, s.Max, s.Mean, s.StdDev, s.P50, s.P90)
	}
	if termChart {
		fmt.Fprintln(cmd.ErrOrStderr(), render.TerminalChart(samples, render.TerminalOptions{
			Height:  12,
			Caption: opts.Title,
		}))
	}
	if out != "" {
		if err := render.SaveChart(out, samples, opts); err != nil {
			return err
		}
		logger.Info("chart written", zap.String("path", out))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	for _, name := range curve.PresetNames() {
		f, _ := curve.LookupPreset(name)
		c := f(curve.DefaultTarget)
		u := c.Unit
		if u == "" {
			u = curve.UnitRadians
		}
		fmt.Fprintf(w, "%-12s n=%-4d components=%d unit=%s\n", name, c.N, len(c.Components), u)
	}
	return nil
}
