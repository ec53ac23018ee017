package automation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/squishy/internal/analysis"
	"github.com/san-kum/squishy/internal/config"
	"github.com/san-kum/squishy/internal/experiment"
	"github.com/san-kum/squishy/internal/softbody"
)

// Scenario is a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep runs one toy with slider overrides and timed events.
type ScenarioStep struct {
	Toy    string             `yaml:"toy"`
	Frames int                `yaml:"frames"`
	Params map[string]float64 `yaml:"params"`
	Events []config.Event     `yaml:"events"`
	SaveAs string             `yaml:"save_as"`
}

// StepResult pairs a step's resolved config with its run.
type StepResult struct {
	Name   string
	Config *config.Config
	Result *experiment.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Config resolves the step against the registry.
func (s ScenarioStep) Config(registry *experiment.Registry) (*config.Config, error) {
	cfg, err := registry.GetToy(s.Toy)
	if err != nil {
		return nil, err
	}
	if s.Frames > 0 {
		cfg.Frames = s.Frames
	}
	if err := cfg.SetParams(s.Params); err != nil {
		return nil, err
	}
	cfg.Events = append(cfg.Events, s.Events...)
	return cfg, cfg.Validate()
}

// RunScenario executes all steps in order.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		fmt.Printf("Running step %d/%d: %s\n", i+1, len(scenario.Steps), step.Toy)

		cfg, err := step.Config(registry)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(registry.DefaultMetrics()); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		name := step.SaveAs
		if name == "" {
			name = step.Toy
		}
		results = append(results, StepResult{Name: name, Config: cfg, Result: result})
	}

	return results, nil
}

// ParameterSweep runs one toy across a range of slider values.
type ParameterSweep struct {
	Toy       string
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Frames    int
	// Workers bounds how many worlds run at once; zero means one per value.
	Workers int
}

type SweepResult struct {
	ParamValue float64
	MeanRadius float64
	AreaRatio  float64
	MaxKinetic float64
	SettleFrame int
	Metrics    map[string]float64
}

// Values returns the swept slider values.
func (s *ParameterSweep) Values() []float64 {
	if s.NumSteps <= 1 {
		return []float64{s.ParamMin}
	}
	step := (s.ParamMax - s.ParamMin) / float64(s.NumSteps-1)
	out := make([]float64, s.NumSteps)
	for i := range out {
		out[i] = s.ParamMin + float64(i)*step
	}
	return out
}

// RunSweep executes the sweep. Worlds share nothing, so values run in
// parallel; results keep the order of Values.
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("%w: sweep steps=%d", softbody.ErrParameterBounds, sweep.NumSteps)
	}
	base, err := registry.GetToy(sweep.Toy)
	if err != nil {
		return nil, err
	}
	if _, err := base.Param(sweep.ParamName); err != nil {
		return nil, fmt.Errorf("toy %s: %w", sweep.Toy, err)
	}

	values := sweep.Values()
	results := make([]SweepResult, len(values))

	g, ctx := errgroup.WithContext(ctx)
	if sweep.Workers > 0 {
		g.SetLimit(sweep.Workers)
	}
	for i, v := range values {
		g.Go(func() error {
			cfg := base.Clone()
			if sweep.Frames > 0 {
				cfg.Frames = sweep.Frames
			}
			if err := cfg.SetParam(sweep.ParamName, v); err != nil {
				return err
			}

			exp := experiment.New(cfg)
			if err := exp.Setup(registry.DefaultMetrics()); err != nil {
				return fmt.Errorf("%s=%.4f: %w", sweep.ParamName, v, err)
			}
			result, err := exp.Run(ctx)
			if err != nil {
				return err
			}

			results[i] = summarizeSweep(v, result)
			fmt.Printf("Sweep %d/%d: %s=%.4f\n", i+1, len(values), sweep.ParamName, v)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func summarizeSweep(v float64, result *experiment.Result) SweepResult {
	r := SweepResult{ParamValue: v, Metrics: result.Metrics, SettleFrame: -1}
	if len(result.Samples) == 0 {
		return r
	}
	last := result.Samples[len(result.Samples)-1]
	r.MeanRadius = last.MeanRadius
	r.AreaRatio = last.AreaRatio
	for _, s := range result.Samples {
		r.MaxKinetic = math.Max(r.MaxKinetic, s.Kinetic)
	}
	r.SettleFrame = analysis.Analyze(result.Samples, analysis.DefaultSettleTolerance).SettleFrame
	return r
}

// MonteCarloConfig drops a toy from randomly perturbed heights.
type MonteCarloConfig struct {
	Toy string
	// Perturbation is the largest height offset in pixels, either way.
	Perturbation float64
	NumTrials    int
	Frames       int
	Seed         int64
}

type MonteCarloResult struct {
	TrialID       int
	DropOffset    float64
	FinalCentroid softbody.Vec
	Penetration   float64
	Stable        bool // positions finite and bodies inside the arena
}

// MaxPenetration is how far a particle centre may sit past a wall at the
// end of a trial that still counts as stable.
const MaxPenetration = 1.0

// RunMonteCarlo executes trials sequentially from one seeded source.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry) ([]MonteCarloResult, error) {
	base, err := registry.GetToy(cfg.Toy)
	if err != nil {
		return nil, err
	}
	if cfg.Frames > 0 {
		base.Frames = cfg.Frames
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		offset := (rng.Float64() - 0.5) * 2 * cfg.Perturbation

		trialCfg := base.Clone()
		for i := range trialCfg.Bodies {
			trialCfg.Bodies[i].Center.Y += offset
		}

		exp := experiment.New(trialCfg)
		if err := exp.Setup(nil); err != nil {
			return results, fmt.Errorf("trial %d: %w", trial, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return results, err
		}

		w := result.World
		r := MonteCarloResult{TrialID: trial, DropOffset: offset, Stable: w.Valid()}
		var sum softbody.Vec
		for _, b := range w.Bodies() {
			sum = sum.Add(b.Centroid())
			r.Penetration = math.Max(r.Penetration, softbody.Penetration(b, w.Planes))
		}
		if n := w.Len(); n > 0 {
			r.FinalCentroid = sum.Mult(1 / float64(n))
		}
		if r.Penetration > MaxPenetration {
			r.Stable = false
		}
		results = append(results, r)

		if (trial+1)%10 == 0 {
			fmt.Printf("Monte Carlo: %d/%d trials complete\n", trial+1, cfg.NumTrials)
		}
	}

	return results, nil
}

func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
