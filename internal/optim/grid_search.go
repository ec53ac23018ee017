package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/squishy/internal/config"
	"github.com/san-kum/squishy/internal/experiment"
	"github.com/san-kum/squishy/internal/metrics"
)

// ErrNoCandidate is returned when every grid point failed to build or run.
var ErrNoCandidate = errors.New("no grid point produced a metric")

// GridSearch tries every combination of slider values and keeps the one
// with the lowest metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64

	// Trials counts the grid points evaluated by the last Search.
	Trials int
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Builder turns one grid point into a ready-to-run experiment.
type Builder func(params map[string]float64) (*experiment.Experiment, error)

// ConfigBuilder applies grid points on top of base and records the named
// metrics.
func ConfigBuilder(base *config.Config, ms func() []metrics.Metric) Builder {
	return func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := base.Clone()
		if err := cfg.SetParams(params); err != nil {
			return nil, err
		}
		exp := experiment.New(cfg)
		if err := exp.Setup(ms()); err != nil {
			return nil, err
		}
		return exp, nil
	}
}

func (g *GridSearch) Search(ctx context.Context, build Builder, metricName string) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("%d params but %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	var bestParams map[string]float64
	g.Trials = 0

	g.searchRecursive(ctx, 0, make(map[string]float64), build, metricName, &best, &bestParams)

	if err := ctx.Err(); err != nil {
		return bestParams, best, err
	}
	if bestParams == nil {
		return nil, best, ErrNoCandidate
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build Builder,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) {
	if ctx.Err() != nil {
		return
	}
	if depth == len(g.paramNames) {
		exp, err := build(current)
		if err != nil {
			return
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return
		}
		g.Trials++

		val, ok := result.Metrics[metricName]
		if !ok || math.IsNaN(val) {
			return
		}
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(ctx, depth+1, newParams, build, metricName, best, bestParams)
	}
}

// Range returns n evenly spaced values from lo to hi inclusive.
func Range(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
