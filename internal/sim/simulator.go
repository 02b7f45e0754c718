package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/lifesim/internal/life"
)

// Simulator advances a board headlessly, feeding every step to its metrics
// and observers.
type Simulator struct {
	board     *life.Board
	metrics   []Metric
	observers []Observer
}

func New(board *life.Board) *Simulator {
	return &Simulator{
		board:     board,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) Board() *life.Board     { return s.board }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	result := &Result{
		Steps:   make([]life.Step, 0, max(cfg.Generations, 0)),
		Metrics: make(map[string]float64),
		Initial: s.board.Population(),
		Stop:    StopLimit,
	}
	err := s.run(ctx, cfg, result, nil)
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, err
}

// RunWithCallback is Run without a collected result; the callback stops the
// run by returning false.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(life.Step) bool) (StopReason, error) {
	result := &Result{Stop: StopLimit}
	err := s.run(ctx, cfg, result, callback)
	return result.Stop, err
}

func (s *Simulator) run(ctx context.Context, cfg Config, result *Result, callback func(life.Step) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < cfg.Generations; i++ {
		select {
		case <-ctx.Done():
			return &RunError{Generation: s.board.Generation(), Wrapped: fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())}
		default:
		}

		step := s.board.AdvanceGeneration()
		for _, m := range s.metrics {
			m.Observe(step)
		}
		for _, obs := range s.observers {
			obs.OnStep(step)
		}
		if result.Steps != nil {
			result.Steps = append(result.Steps, step)
		}

		if callback != nil && !callback(step) {
			result.Stop = StopCallback
			return nil
		}
		if cfg.StopOnExtinction && step.Population == 0 {
			result.Stop = StopExtinction
			return nil
		}
		if cfg.StopOnStill && step.Births == 0 && step.Deaths == 0 {
			result.Stop = StopStill
			return nil
		}
	}
	return nil
}

func validateConfig(cfg Config) error {
	if cfg.Generations <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidGenerations, cfg.Generations)
	}
	return nil
}
