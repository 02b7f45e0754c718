package automation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/lifesim/internal/analysis"
	"github.com/san-kum/lifesim/internal/experiment"
	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/metrics"
	"github.com/san-kum/lifesim/internal/pattern"
	"github.com/san-kum/lifesim/internal/sim"
	"github.com/san-kum/lifesim/internal/storage"
)

// Scenario defines a scripted sequence of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Cols        int            `yaml:"cols"`
	Rows        int            `yaml:"rows"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario. Cols and Rows fall back to the
// scenario's; SaveAs names a directory that receives the final board.csv.
type ScenarioStep struct {
	Preset      string  `yaml:"preset"`
	Generations int     `yaml:"generations"`
	History     bool    `yaml:"history"`
	Density     float64 `yaml:"density"`
	Seed        uint64  `yaml:"seed"`
	Cols        int     `yaml:"cols"`
	Rows        int     `yaml:"rows"`
	StopOnStill bool    `yaml:"stop_on_still"`
	SaveAs      string  `yaml:"save_as"`
}

// StepResult is what one scenario step produced.
type StepResult struct {
	Step   ScenarioStep
	RunID  string
	Result *sim.Result
	Board  *life.Board
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &scenario, nil
}

// Runner executes scenarios, sweeps and trials. Store may be nil, in which
// case runs are not recorded.
type Runner struct {
	Registry *experiment.Registry
	Store    *storage.Store
	Logger   log.Logger
	Workers  int
}

func (r *Runner) logger() log.Logger {
	if r.Logger == nil {
		return log.NewNopLogger()
	}
	return r.Logger
}

// RunScenario executes all steps in a scenario
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))
	logger := log.With(r.logger(), "scenario", scenario.Name)

	for i, step := range scenario.Steps {
		level.Info(logger).Log("msg", "running step", "step", i+1, "of", len(scenario.Steps), "preset", step.Preset)

		cols, rows := step.Cols, step.Rows
		if cols == 0 {
			cols = scenario.Cols
		}
		if rows == 0 {
			rows = scenario.Rows
		}
		if cols == 0 || rows == 0 {
			cols, rows = pattern.PresetCols, pattern.PresetRows
		}
		density := step.Density
		if density == 0 {
			density = life.DefaultDensity
		}

		e, err := r.Registry.NewExperiment(experiment.Config{
			Preset:       step.Preset,
			Cols:         cols,
			Rows:         rows,
			Density:      density,
			Seed:         step.Seed,
			Generations:  step.Generations,
			Workers:      r.Workers,
			HistoryTrail: step.History,
			StopOnStill:  step.StopOnStill,
		})
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := e.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		out := StepResult{Step: step, Result: result, Board: e.Board()}
		if r.Store != nil {
			id, err := r.Store.Save(storage.RunInfo{
				Preset:       step.Preset,
				Seed:         step.Seed,
				Density:      density,
				HistoryTrail: step.History,
			}, e.Board(), result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			out.RunID = id
		}
		if step.SaveAs != "" {
			if _, err := pattern.Save(step.SaveAs, e.Board()); err != nil {
				return results, fmt.Errorf("step %d save_as: %w", i+1, err)
			}
		}
		results = append(results, out)
	}

	return results, nil
}

// DensitySweep runs random boards across a range of initial densities
type DensitySweep struct {
	Cols, Rows  int
	Min, Max    float64
	NumSteps    int
	Generations int
	Seed        uint64
}

// SweepResult summarizes one density of a sweep.
type SweepResult struct {
	Density  float64
	Initial  int
	Final    int
	Peak     int
	Turnover float64
	Period   int
}

// RunSweep executes a density sweep. Period is 0 when the board did not
// repeat within the run.
func (r *Runner) RunSweep(ctx context.Context, sweep *DensitySweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)
	delta := (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		density := sweep.Min + float64(i)*delta
		pop := metrics.NewPopulation()
		turn := metrics.NewTurnover()

		e := experiment.New(experiment.Config{
			Preset:      pattern.Random,
			Cols:        sweep.Cols,
			Rows:        sweep.Rows,
			Density:     density,
			Seed:        sweep.Seed + uint64(i) + 1,
			Generations: sweep.Generations,
			Workers:     r.Workers,
		})
		if err := e.Setup(r.Registry.Library(), []sim.Metric{pop, turn}); err != nil {
			return nil, err
		}
		result, err := e.Run(ctx)
		if err != nil {
			return nil, err
		}

		final := e.Board().Population()
		period := 0
		if c, ok := analysis.DetectCycle(e.Board(), 64); ok {
			period = c.Period
		}

		results = append(results, SweepResult{
			Density:  density,
			Initial:  result.Initial,
			Final:    final,
			Peak:     pop.Peak(),
			Turnover: turn.Value(),
			Period:   period,
		})
		level.Info(r.logger()).Log("msg", "sweep", "step", i+1, "of", sweep.NumSteps, "density", fmt.Sprintf("%.3f", density))
	}

	return results, nil
}

// MonteCarloConfig defines repeated random trials at one density
type MonteCarloConfig struct {
	Cols, Rows  int
	Density     float64
	NumTrials   int
	Generations int
	Seed        uint64
}

// MonteCarloResult holds the outcome of one trial
type MonteCarloResult struct {
	TrialID int
	Seed    uint64
	Initial int
	Final   int
	Extinct bool
}

// RunMonteCarlo runs NumTrials random boards and records which died out.
func (r *Runner) RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	rng := rand.New(rand.NewPCG(cfg.Seed, 0))

	for trial := 0; trial < cfg.NumTrials; trial++ {
		seed := rng.Uint64() | 1
		e := experiment.New(experiment.Config{
			Preset:      pattern.Random,
			Cols:        cfg.Cols,
			Rows:        cfg.Rows,
			Density:     cfg.Density,
			Seed:        seed,
			Generations: cfg.Generations,
			Workers:     r.Workers,
			StopOnEmpty: true,
		})
		if err := e.Setup(r.Registry.Library(), nil); err != nil {
			return nil, err
		}
		result, err := e.Run(ctx)
		if err != nil {
			return nil, err
		}

		final := e.Board().Population()
		results = append(results, MonteCarloResult{
			TrialID: trial,
			Seed:    seed,
			Initial: result.Initial,
			Final:   final,
			Extinct: final == 0,
		})

		if (trial+1)%10 == 0 {
			level.Info(r.logger()).Log("msg", "monte carlo", "done", trial+1, "of", cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats counts surviving and extinct trials.
func MonteCarloStats(results []MonteCarloResult) (survived int, extinct int) {
	for _, r := range results {
		if r.Extinct {
			extinct++
		} else {
			survived++
		}
	}
	return
}
