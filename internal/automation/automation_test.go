package automation

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/squishy/internal/experiment"
)

const scenarioYAML = `
name: poke-and-drop
description: poke a jelly then drop a water balloon
steps:
  - toy: jelly
    frames: 60
    params:
      gravity: 0
    events:
      - frame: 10
        action: poke
        at: {x: 200, y: 100}
        radius: 40
        strength: 3
    save_as: poked_jelly
  - toy: water_balloon
    frames: 40
`

func TestParseScenario(t *testing.T) {
	s, err := ParseScenario([]byte(scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "poke-and-drop" {
		t.Errorf("expected name poke-and-drop, got %s", s.Name)
	}
	if len(s.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(s.Steps))
	}
	if len(s.Steps[0].Events) != 1 || s.Steps[0].Events[0].Radius != 40 {
		t.Errorf("expected one poke event, got %+v", s.Steps[0].Events)
	}
	if s.Steps[0].Params["gravity"] != 0 {
		t.Errorf("expected gravity override 0, got %v", s.Steps[0].Params["gravity"])
	}
}

func TestParseScenarioEmpty(t *testing.T) {
	if _, err := ParseScenario([]byte("name: nothing\n")); err == nil {
		t.Error("expected error for scenario without steps")
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Steps) != 2 {
		t.Errorf("expected 2 steps, got %d", len(s.Steps))
	}
}

func TestRunScenario(t *testing.T) {
	s, err := ParseScenario([]byte(scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	results, err := RunScenario(context.Background(), s, experiment.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Name != "poked_jelly" || results[1].Name != "water_balloon" {
		t.Errorf("expected names poked_jelly/water_balloon, got %s/%s", results[0].Name, results[1].Name)
	}
	if results[0].Result.Frames != 60 {
		t.Errorf("expected 60 frames, got %d", results[0].Result.Frames)
	}
	if results[0].Config.Params.Gravity != 0 {
		t.Errorf("expected gravity override applied, got %v", results[0].Config.Params.Gravity)
	}
	if len(results[0].Result.Errors) != 0 {
		t.Errorf("unexpected event errors: %v", results[0].Result.Errors)
	}
}

func TestRunScenarioUnknownToy(t *testing.T) {
	s := &Scenario{Steps: []ScenarioStep{{Toy: "anvil"}}}
	if _, err := RunScenario(context.Background(), s, experiment.NewRegistry()); err == nil {
		t.Error("expected error for unknown toy")
	}
}

func TestSweepValues(t *testing.T) {
	tests := []struct {
		sweep ParameterSweep
		want  []float64
	}{
		{ParameterSweep{ParamMin: 0, ParamMax: 100, NumSteps: 5}, []float64{0, 25, 50, 75, 100}},
		{ParameterSweep{ParamMin: 30, ParamMax: 90, NumSteps: 1}, []float64{30}},
	}
	for _, tt := range tests {
		got := tt.sweep.Values()
		if len(got) != len(tt.want) {
			t.Fatalf("expected %v, got %v", tt.want, got)
		}
		for i := range got {
			if math.Abs(got[i]-tt.want[i]) > 1e-9 {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		}
	}
}

func TestRunSweep(t *testing.T) {
	sweep := &ParameterSweep{
		Toy:       "jelly",
		ParamName: "stiffness",
		ParamMin:  20,
		ParamMax:  100,
		NumSteps:  3,
		Frames:    60,
		Workers:   2,
	}
	results, err := RunSweep(context.Background(), sweep, experiment.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range []float64{20, 60, 100} {
		if results[i].ParamValue != want {
			t.Errorf("expected value %v at %d, got %v", want, i, results[i].ParamValue)
		}
		if results[i].MeanRadius <= 0 {
			t.Errorf("expected positive radius, got %v", results[i].MeanRadius)
		}
		if _, ok := results[i].Metrics["area_ratio"]; !ok {
			t.Error("expected area_ratio metric")
		}
	}
}

func TestRunSweepErrors(t *testing.T) {
	r := experiment.NewRegistry()
	cases := []*ParameterSweep{
		{Toy: "jelly", ParamName: "wobble", NumSteps: 2},
		{Toy: "anvil", ParamName: "gravity", NumSteps: 2},
		{Toy: "jelly", ParamName: "gravity", NumSteps: 0},
		{Toy: "jelly", ParamName: "gravity", ParamMin: 0, ParamMax: 200, NumSteps: 2, Frames: 5},
	}
	for i, s := range cases {
		if _, err := RunSweep(context.Background(), s, r); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestRunMonteCarlo(t *testing.T) {
	cfg := &MonteCarloConfig{Toy: "stress_ball", Perturbation: 30, NumTrials: 4, Frames: 200, Seed: 7}
	results, err := RunMonteCarlo(context.Background(), cfg, experiment.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 trials, got %d", len(results))
	}
	for _, r := range results {
		if math.Abs(r.DropOffset) > 30 {
			t.Errorf("expected offset within 30, got %v", r.DropOffset)
		}
		if !r.Stable {
			t.Errorf("trial %d: expected stable, penetration %v", r.TrialID, r.Penetration)
		}
	}
	stable, unstable := MonteCarloStats(results)
	if stable != 4 || unstable != 0 {
		t.Errorf("expected 4/0, got %d/%d", stable, unstable)
	}

	again, err := RunMonteCarlo(context.Background(), cfg, experiment.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	if again[0].DropOffset != results[0].DropOffset {
		t.Errorf("expected seeded offsets to repeat, got %v and %v", results[0].DropOffset, again[0].DropOffset)
	}
}

func TestMonteCarloStats(t *testing.T) {
	stable, unstable := MonteCarloStats([]MonteCarloResult{{Stable: true}, {Stable: false}, {Stable: true}})
	if stable != 2 || unstable != 1 {
		t.Errorf("expected 2/1, got %d/%d", stable, unstable)
	}
}
