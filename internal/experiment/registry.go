package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/lifesim/internal/metrics"
	"github.com/san-kum/lifesim/internal/pattern"
	"github.com/san-kum/lifesim/internal/sim"
)

// Registry resolves preset and metric names for experiments.
type Registry struct {
	library *pattern.Library
	metrics map[string]func() sim.Metric
}

func NewRegistry(lib *pattern.Library) *Registry {
	if lib == nil {
		lib = pattern.NewLibrary("", nil)
	}
	r := &Registry{
		library: lib,
		metrics: make(map[string]func() sim.Metric),
	}

	r.metrics["population"] = func() sim.Metric { return metrics.NewPopulation() }
	r.metrics["turnover"] = func() sim.Metric { return metrics.NewTurnover() }
	r.metrics["stability"] = func() sim.Metric { return metrics.NewStability() }

	return r
}

func (r *Registry) Library() *pattern.Library { return r.library }

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListPresets() []string {
	return pattern.Names()
}

// DefaultMetrics returns a fresh instance of every registered metric.
func (r *Registry) DefaultMetrics() []sim.Metric {
	out := make([]sim.Metric, 0, len(r.metrics))
	for _, name := range r.ListMetrics() {
		out = append(out, r.metrics[name]())
	}
	return out
}

// NewExperiment builds and sets up an experiment with the default metrics.
func (r *Registry) NewExperiment(cfg Config) (*Experiment, error) {
	e := New(cfg)
	if err := e.Setup(r.library, r.DefaultMetrics()); err != nil {
		return nil, err
	}
	return e, nil
}
