package metrics

import "github.com/san-kum/lifesim/internal/sim"

// Default returns the metrics recorded for every stored run.
func Default() []sim.Metric {
	return []sim.Metric{
		NewPopulation(),
		NewTurnover(),
		NewStability(),
	}
}
