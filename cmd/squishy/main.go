package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/san-kum/squishy/internal/config"
	"github.com/san-kum/squishy/internal/experiment"
	"github.com/san-kum/squishy/internal/viz"
)

var (
	dataDir    string
	configFile string
	frames     int
	seed       int64
	tool       string
	outFile    string
	theme      string
	// Slider overrides, 0-100.
	stiffness  float64
	viscosity  float64
	gravity    float64
	pressure   float64
	plasticity float64
	bounce     float64
	friction   float64
	// Live view
	watchFile bool
	// Export
	braille bool
	// Sweep and tune
	paramName  string
	paramMin   float64
	paramMax   float64
	numSteps   int
	workers    int
	tuneMetric string
	tuneParams []string
	// Monte Carlo
	trials       int
	perturbation float64
	benchFrames  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "squishy",
		Short: "deformable toy simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			viz.SetTheme(theme)
			return viz.RunPicker()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".squishy", "data directory")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", viz.ThemeCandy.Name, "colour theme")

	runCmd := &cobra.Command{
		Use:   "run [toy]",
		Short: "run a toy headless and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "wobble and settling analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and samples to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id|toy]",
		Short: "draw a stored run's final frame, or a toy after its frames, as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	addConfigFlags(exportSVGCmd)
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().BoolVar(&braille, "braille", false, "render the terminal canvas instead of vector outlines")

	liveCmd := &cobra.Command{
		Use:   "live [toy]",
		Short: "play with a toy in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)
	liveCmd.Flags().StringVar(&tool, "tool", "", "pointer tool: poke, drag, pinch or pin")
	liveCmd.Flags().BoolVar(&watchFile, "watch", false, "reload the --config file when it changes")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "rerun the --config file headless every time it changes",
		RunE:  watchConfig,
	}
	watchCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	_ = watchCmd.MarkFlagRequired("config")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available toys",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range experiment.NewRegistry().ListToys() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-14s %d bodies, %d frames\n", name, len(cfg.Bodies), cfg.Frames)
			}
			return nil
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a YAML scenario and store every step",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [toy]",
		Short: "run a toy across a range of one slider",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&paramName, "param", "stiffness", "slider to sweep")
	sweepCmd.Flags().Float64Var(&paramMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&paramMax, "max", 100, "last value")
	sweepCmd.Flags().IntVar(&numSteps, "steps", 5, "number of values")
	sweepCmd.Flags().IntVar(&frames, "frames", 0, "frames per run (default: toy's)")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (default: all)")

	dropCmd := &cobra.Command{
		Use:   "drop [toy]",
		Short: "drop a toy from random heights and check it stays in the arena",
		Args:  cobra.ExactArgs(1),
		RunE:  runDrop,
	}
	dropCmd.Flags().IntVar(&trials, "trials", 20, "number of drops")
	dropCmd.Flags().Float64Var(&perturbation, "spread", 40, "largest height change in pixels")
	dropCmd.Flags().IntVar(&frames, "frames", 0, "frames per drop (default: toy's)")
	dropCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0: time based)")

	tuneCmd := &cobra.Command{
		Use:   "tune [toy]",
		Short: "grid search sliders to minimise a metric",
		Args:  cobra.ExactArgs(1),
		RunE:  runTune,
	}
	tuneCmd.Flags().StringSliceVar(&tuneParams, "param", []string{"stiffness"}, "sliders to search")
	tuneCmd.Flags().IntVar(&numSteps, "steps", 5, "values per slider, spread over 0-100")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "radius_deviation", "metric to minimise")
	tuneCmd.Flags().IntVar(&frames, "frames", 0, "frames per run (default: toy's)")

	benchCmd := &cobra.Command{
		Use:   "bench [toy]",
		Short: "measure frames per second",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchToys,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 600, "frames per toy")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd,
		liveCmd, watchCmd, presetsCmd, scenarioCmd, sweepCmd, dropCmd, tuneCmd, benchCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// addConfigFlags registers the flags that build a config: a YAML file,
// frame count, seed and slider overrides.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().IntVar(&frames, "frames", 0, "frames to run")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed recorded with the run")
	cmd.Flags().Float64Var(&stiffness, "stiffness", 0, "stiffness slider (0-100)")
	cmd.Flags().Float64Var(&viscosity, "viscosity", 0, "viscosity slider (0-100)")
	cmd.Flags().Float64Var(&gravity, "gravity", 0, "gravity slider (0-100)")
	cmd.Flags().Float64Var(&pressure, "pressure", 0, "pressure slider (0-100)")
	cmd.Flags().Float64Var(&plasticity, "plasticity", 0, "plasticity slider (0-100)")
	cmd.Flags().Float64Var(&bounce, "bounce", 0, "bounce slider (0-100)")
	cmd.Flags().Float64Var(&friction, "friction", 0, "friction slider (0-100)")
}

// loadConfig resolves the toy from --config, the toy argument or the
// default, then applies any flags the user set. Flags override YAML.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	case len(args) > 0:
		c, err := experiment.NewRegistry().GetToy(args[0])
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
		cfg = c
	default:
		cfg = config.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("tool") {
		cfg.Pointer.Tool = tool
	}
	sliders := map[string]*float64{
		"stiffness":  &stiffness,
		"viscosity":  &viscosity,
		"gravity":    &gravity,
		"pressure":   &pressure,
		"plasticity": &plasticity,
		"bounce":     &bounce,
		"friction":   &friction,
	}
	for name, v := range sliders {
		if flags.Changed(name) {
			if err := cfg.SetParam(name, *v); err != nil {
				return nil, err
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
