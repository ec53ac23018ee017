package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/squishy/internal/config"
	"github.com/san-kum/squishy/internal/metrics"
)

type Registry struct {
	toys    map[string]func() *config.Config
	metrics map[string]func() metrics.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		toys:    make(map[string]func() *config.Config),
		metrics: make(map[string]func() metrics.Metric),
	}

	for _, name := range config.ListPresets() {
		name := name
		r.toys[name] = func() *config.Config { return config.GetPreset(name) }
	}

	r.metrics["area_ratio"] = func() metrics.Metric { return metrics.NewAreaRatio() }
	r.metrics["radius_deviation"] = func() metrics.Metric { return metrics.NewRadiusDeviation() }
	r.metrics["kinetic_energy"] = func() metrics.Metric { return metrics.NewKineticEnergy() }
	r.metrics["stability"] = func() metrics.Metric { return metrics.NewStability(metrics.DefaultSpeedLimit) }
	r.metrics["torn_links"] = func() metrics.Metric { return metrics.NewTornLinks() }

	return r
}

// Register adds or replaces a toy.
func (r *Registry) Register(name string, fn func() *config.Config) {
	r.toys[name] = fn
}

func (r *Registry) GetToy(name string) (*config.Config, error) {
	fn, ok := r.toys[name]
	if !ok {
		return nil, fmt.Errorf("unknown toy: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetMetric(name string) (metrics.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListToys() []string {
	names := make([]string, 0, len(r.toys))
	for name := range r.toys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []metrics.Metric {
	return metrics.Default()
}
