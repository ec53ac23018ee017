package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/squishy/internal/analysis"
	"github.com/san-kum/squishy/internal/automation"
	"github.com/san-kum/squishy/internal/config"
	"github.com/san-kum/squishy/internal/experiment"
	"github.com/san-kum/squishy/internal/export"
	"github.com/san-kum/squishy/internal/metrics"
	"github.com/san-kum/squishy/internal/optim"
	"github.com/san-kum/squishy/internal/softbody"
	"github.com/san-kum/squishy/internal/storage"
	"github.com/san-kum/squishy/internal/viz"
	"github.com/san-kum/squishy/internal/watch"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s for %d frames...\n", cfg.Toy, cfg.Frames)
	start := time.Now()
	result, err := runConfig(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	printResult(result)
	return nil
}

func runConfig(ctx context.Context, cfg *config.Config) (*experiment.Result, error) {
	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry().DefaultMetrics()); err != nil {
		return nil, err
	}
	return exp.Run(ctx)
}

func printResult(result *experiment.Result) {
	fmt.Printf("frames: %d\n", result.Frames)
	if result.World != nil {
		fmt.Printf("bodies: %d\n", result.World.Len())
	}
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTOY\tTIME\tFRAMES\tBODIES\tTORN")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Toy,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Bodies,
			run.Torn,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("toy: %s\n", meta.Toy)
	fmt.Printf("samples: %d\n\n", len(samples))

	series := []struct {
		caption string
		data    []float64
	}{
		{"mean radius", analysis.RadiusSeries(samples)},
		{"centroid height (y down)", analysis.HeightSeries(samples)},
		{"kinetic activity", analysis.KineticSeries(samples)},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("wobble analysis: %s\n", meta.ID)
	fmt.Printf("toy: %s\n\n", meta.Toy)

	ps := analysis.PowerSpectrum(analysis.RadiusSeries(samples))
	if len(ps) > 8 {
		graph := asciigraph.Plot(ps[:len(ps)/2],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (mean radius)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	r := analysis.Analyze(samples, analysis.DefaultSettleTolerance)
	fmt.Printf("radius: final %.2f, range %.2f-%.2f\n", r.FinalRadius, r.MinRadius, r.MaxRadius)
	if r.Wobbles {
		fmt.Printf("wobble period: %.1f frames\n", r.WobblePeriod)
	} else {
		fmt.Println("wobble period: none")
	}
	fmt.Printf("settles at frame: %d\n", r.SettleFrame)
	fmt.Printf("kinetic: peak %.4f, final %.4f\n", r.PeakKinetic, r.FinalKinetic)
	fmt.Printf("frames in contact: %d\n", r.ContactFrames)
	fmt.Printf("links lost: %d\n", r.LinksLost)
	return nil
}

// output returns the --out file, or stdout.
func output() (io.WriteCloser, error) {
	if outFile == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(outFile)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func exportCSV(cmd *cobra.Command, args []string) error {
	out, err := output()
	if err != nil {
		return err
	}
	if err := storage.New(dataDir).ExportCSV(args[0], out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	out, err := output()
	if err != nil {
		return err
	}
	if err := storage.New(dataDir).ExportJSON(args[0], out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// exportSVG draws a stored run when the argument names one, otherwise runs
// the toy for its frames first.
func exportSVG(cmd *cobra.Command, args []string) error {
	viz.SetTheme(theme)
	scene, err := storedScene(args)
	if err != nil {
		return err
	}
	if scene == nil {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		result, err := runConfig(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		scene = &export.Scene{
			Width:  cfg.Arena.Width,
			Height: cfg.Arena.Height,
			Bodies: result.World.Snapshot(),
			Trail:  trail(result.Samples),
		}
	}
	scene.Theme = viz.CurrentTheme

	var svg string
	if braille {
		c := viz.NewCanvas(80, 30)
		viz.DrawWorld(c, viz.Fit(c, scene.Width, scene.Height), scene.Bodies)
		svg = export.CanvasToSVG(c, 4, scene.Theme)
	} else {
		svg = export.SceneToSVG(*scene)
	}

	out, err := output()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(out, svg+"\n"); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func storedScene(args []string) (*export.Scene, error) {
	if len(args) == 0 {
		return nil, nil
	}
	st := storage.New(dataDir)
	if _, err := st.Load(args[0]); err != nil {
		return nil, nil
	}
	cfg, err := st.LoadConfig(args[0])
	if err != nil {
		return nil, err
	}
	bodies, err := st.LoadFinal(args[0])
	if err != nil {
		return nil, err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return nil, err
	}
	return &export.Scene{
		Width:  cfg.Arena.Width,
		Height: cfg.Arena.Height,
		Bodies: bodies,
		Trail:  trail(samples),
	}, nil
}

func trail(samples []experiment.Sample) []softbody.Vec {
	out := make([]softbody.Vec, len(samples))
	for i, s := range samples {
		out[i] = softbody.V(s.CentroidX, s.CentroidY)
	}
	return out
}

func runLive(cmd *cobra.Command, args []string) error {
	viz.SetTheme(theme)
	if len(args) == 0 && configFile == "" {
		return viz.RunPicker()
	}
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	p, err := viz.NewProgram(cfg)
	if err != nil {
		return err
	}

	if watchFile {
		if configFile == "" {
			return fmt.Errorf("--watch needs --config")
		}
		w, err := watch.NewWatcher(configFile)
		if err != nil {
			return err
		}
		defer w.Close()
		go func() {
			for {
				select {
				case path, ok := <-w.Events:
					if !ok {
						return
					}
					cfg, err := config.Load(path)
					p.Send(viz.ReloadMsg{Config: cfg, Err: err})
				case err, ok := <-w.Errors:
					if !ok {
						return
					}
					p.Send(viz.ReloadMsg{Err: err})
				}
			}
		}()
	}

	_, err = p.Run()
	return err
}

// watchConfig reruns the config file headless on every change.
func watchConfig(cmd *cobra.Command, args []string) error {
	w, err := watch.NewWatcher(configFile)
	if err != nil {
		return err
	}
	defer w.Close()

	rerun := func(path string) {
		cfg, err := config.Load(path)
		if err != nil {
			log.Printf("reload %s: %v", path, err)
			return
		}
		result, err := runConfig(cmd.Context(), cfg)
		if err != nil {
			log.Printf("run %s: %v", path, err)
			return
		}
		r := analysis.Analyze(result.Samples, analysis.DefaultSettleTolerance)
		log.Printf("%s: %d frames, radius %.2f, settles at %d, %d links lost",
			cfg.Toy, result.Frames, r.FinalRadius, r.SettleFrame, r.LinksLost)
	}

	rerun(configFile)
	log.Printf("watching %s", configFile)
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			rerun(path)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %v", err)
		case <-cmd.Context().Done():
			return nil
		}
	}
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if scenario.Description != "" {
		fmt.Printf("%s: %s\n", scenario.Name, scenario.Description)
	}

	results, err := automation.RunScenario(cmd.Context(), scenario, experiment.NewRegistry())
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	for _, r := range results {
		runID, err := st.Save(r.Config, r.Result)
		if err != nil {
			return err
		}
		fmt.Printf("%s -> %s (%d frames, %d event errors)\n", r.Name, runID, r.Result.Frames, len(r.Result.Errors))
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	sweep := &automation.ParameterSweep{
		Toy:       args[0],
		ParamName: paramName,
		ParamMin:  paramMin,
		ParamMax:  paramMax,
		NumSteps:  numSteps,
		Frames:    frames,
		Workers:   workers,
	}
	results, err := automation.RunSweep(cmd.Context(), sweep, experiment.NewRegistry())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tRADIUS\tAREA\tPEAK KE\tSETTLE\n", paramName)
	for _, r := range results {
		fmt.Fprintf(w, "%.2f\t%.2f\t%.3f\t%.4f\t%d\n", r.ParamValue, r.MeanRadius, r.AreaRatio, r.MaxKinetic, r.SettleFrame)
	}
	return w.Flush()
}

func runDrop(cmd *cobra.Command, args []string) error {
	cfg := &automation.MonteCarloConfig{
		Toy:          args[0],
		Perturbation: perturbation,
		NumTrials:    trials,
		Frames:       frames,
		Seed:         seed,
	}
	results, err := automation.RunMonteCarlo(cmd.Context(), cfg, experiment.NewRegistry())
	if err != nil {
		return err
	}
	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("stable: %d, unstable: %d\n", stable, unstable)
	for _, r := range results {
		if !r.Stable {
			fmt.Printf("  trial %d: offset %.1f, penetration %.2f\n", r.TrialID, r.DropOffset, r.Penetration)
		}
	}
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	base, err := registry.GetToy(args[0])
	if err != nil {
		return err
	}
	if frames > 0 {
		base.Frames = frames
	}
	if _, err := registry.GetMetric(tuneMetric); err != nil {
		return err
	}

	ranges := make([][]float64, len(tuneParams))
	for i := range tuneParams {
		ranges[i] = optim.Range(0, 100, numSteps)
	}
	g := optim.NewGridSearch(tuneParams, ranges)
	build := optim.ConfigBuilder(base, func() []metrics.Metric {
		m, _ := registry.GetMetric(tuneMetric)
		return []metrics.Metric{m}
	})

	fmt.Printf("tuning %s over %v to minimise %s...\n", args[0], tuneParams, tuneMetric)
	best, val, err := g.Search(cmd.Context(), build, tuneMetric)
	if err != nil {
		return err
	}
	fmt.Printf("trials: %d\n", g.Trials)
	fmt.Printf("best %s: %.6f\n", tuneMetric, val)
	for _, name := range tuneParams {
		fmt.Printf("  %s: %.1f\n", name, best[name])
	}
	return nil
}

func benchToys(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	toys := registry.ListToys()
	if len(args) > 0 {
		toys = args
	}

	fmt.Printf("benchmarking %d frames per toy\n\n", benchFrames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TOY\tPARTICLES\tLINKS\tTIME\tFRAMES/SEC")
	for _, name := range toys {
		cfg, err := registry.GetToy(name)
		if err != nil {
			return err
		}
		world, err := cfg.Build()
		if err != nil {
			return err
		}
		particles, links := 0, 0
		for _, b := range world.Bodies() {
			particles += len(b.Particles)
			links += len(b.Links)
		}

		start := time.Now()
		world.Run(benchFrames)
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\n", name, particles, links, elapsed, float64(benchFrames)/elapsed.Seconds())
	}
	return w.Flush()
}
