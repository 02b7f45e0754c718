// Package optim searches experiment parameters for the settings that score
// best on a metric.
package optim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/lifesim/internal/experiment"
)

// Generations scores a run by how many generations it lasted, which makes
// sense paired with StopOnStill or StopOnEmpty.
const Generations = "generations"

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	maximize   bool
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Maximize makes the search keep the highest score instead of the lowest.
func (g *GridSearch) Maximize() *GridSearch {
	g.maximize = true
	return g
}

// Trial is one evaluated point of the grid.
type Trial struct {
	Params map[string]float64
	Score  float64
}

// Search runs one experiment per point of the grid and returns the best
// parameters with their score. Build errors are returned; a canceled context
// stops the search.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
) (map[string]float64, float64, error) {
	trials, err := g.Trials(ctx, buildExperiment, metricName)
	if err != nil {
		return nil, 0, err
	}
	if len(trials) == 0 {
		return nil, 0, fmt.Errorf("empty search grid")
	}
	return trials[0].Params, trials[0].Score, nil
}

// Trials evaluates the whole grid and returns every point, best first.
func (g *GridSearch) Trials(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
) ([]Trial, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, fmt.Errorf("%d params but %d ranges", len(g.paramNames), len(g.ranges))
	}

	var trials []Trial
	err := g.searchRecursive(ctx, 0, make(map[string]float64), buildExperiment, metricName, &trials)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(trials, func(i, j int) bool {
		if g.maximize {
			return trials[i].Score > trials[j].Score
		}
		return trials[i].Score < trials[j].Score
	})
	return trials, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	metricName string,
	trials *[]Trial,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		exp, err := buildExperiment(current)
		if err != nil {
			return fmt.Errorf("build %v: %w", current, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return err
		}

		var val float64
		if metricName == Generations {
			val = float64(result.Generations())
		} else {
			v, ok := result.Metrics[metricName]
			if !ok {
				return fmt.Errorf("unknown metric: %s", metricName)
			}
			val = v
		}
		if math.IsNaN(val) {
			return nil
		}

		params := make(map[string]float64, len(current))
		for k, v := range current {
			params[k] = v
		}
		*trials = append(*trials, Trial{Params: params, Score: val})
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, buildExperiment, metricName, trials); err != nil {
			return err
		}
	}
	return nil
}
