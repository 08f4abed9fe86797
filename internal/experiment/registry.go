package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/heatsim/internal/metrics"
	"github.com/san-kum/heatsim/internal/sim"
)

type Registry struct {
	metrics map[string]func(ambient float64) sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func(float64) sim.Metric),
	}

	r.metrics["energy_residual"] = func(float64) sim.Metric { return metrics.NewEnergyResidual() }
	r.metrics["conduction_residual"] = func(float64) sim.Metric { return metrics.NewConductionResidual() }
	r.metrics["ambient_exchange"] = func(float64) sim.Metric { return metrics.NewAmbientExchange() }
	r.metrics["ambient_gap"] = func(ambient float64) sim.Metric { return metrics.NewAmbientGap(ambient) }

	return r
}

func (r *Registry) GetMetric(name string, ambient float64) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(ambient), nil
}

// Metrics builds the named metrics, or the defaults when names is empty.
func (r *Registry) Metrics(names []string, ambient float64) ([]sim.Metric, error) {
	if len(names) == 0 {
		return r.DefaultMetrics(ambient), nil
	}
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		m, err := r.GetMetric(name, ambient)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(ambient float64) []sim.Metric {
	return metrics.Defaults(ambient)
}
