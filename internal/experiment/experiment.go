package experiment

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/pattern"
	"github.com/san-kum/lifesim/internal/sim"
)

// Config describes one headless run: which board, how it is seeded and how
// long it runs.
type Config struct {
	Preset       string
	Cols, Rows   int
	Density      float64
	Seed         uint64
	Generations  int
	Workers      int
	HistoryTrail bool
	StopOnStill  bool
	StopOnEmpty  bool
}

type Experiment struct {
	cfg       Config
	board     *life.Board
	simulator *sim.Simulator
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup builds the board, applies the preset and attaches metrics. A non-zero
// seed makes the Random preset reproducible.
func (e *Experiment) Setup(lib *pattern.Library, metrics []sim.Metric) error {
	b := life.New(e.cfg.Cols, e.cfg.Rows)
	b.SetWorkers(e.cfg.Workers)

	if e.cfg.Preset == pattern.Random && e.cfg.Seed != 0 {
		b.Clear()
		b.RandomizeWith(rand.New(rand.NewPCG(e.cfg.Seed, e.cfg.Seed^0x9e3779b97f4a7c15)), e.cfg.Density)
	} else if err := lib.Apply(e.cfg.Preset, b, e.cfg.Density); err != nil {
		return err
	}
	b.SetHistoryTrail(e.cfg.HistoryTrail)

	e.board = b
	e.simulator = sim.New(b)
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, sim.Config{
		Generations:      e.cfg.Generations,
		StopOnExtinction: e.cfg.StopOnEmpty,
		StopOnStill:      e.cfg.StopOnStill,
	})
}

func (e *Experiment) Config() Config { return e.cfg }

func (e *Experiment) Board() *life.Board { return e.board }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
