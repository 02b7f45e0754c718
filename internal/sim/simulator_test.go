package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/lifesim/internal/life"
)

func blinkerBoard() *life.Board {
	b := life.New(5, 5)
	b.LoadCoords([]life.Coord{{X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}})
	return b
}

func TestSimulatorRun(t *testing.T) {
	s := New(blinkerBoard())
	result, err := s.Run(context.Background(), Config{Generations: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Generations() != 10 {
		t.Errorf("expected 10 steps, got %d", result.Generations())
	}
	pops := result.Populations()
	if len(pops) != 11 {
		t.Fatalf("expected 11 populations, got %d", len(pops))
	}
	for i, p := range pops {
		if p != 3 {
			t.Errorf("population[%d] = %v, want 3", i, p)
		}
	}
	if result.Stop != StopLimit {
		t.Errorf("stop = %s, want %s", result.Stop, StopLimit)
	}
	if s.Board().Generation() != 10 {
		t.Errorf("board generation = %d", s.Board().Generation())
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero generations", Config{Generations: 0}},
		{"negative generations", Config{Generations: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(blinkerBoard()).Run(context.Background(), tt.cfg)
			if !errors.Is(err, ErrInvalidGenerations) {
				t.Errorf("expected ErrInvalidGenerations, got %v", err)
			}
		})
	}
}

func TestSimulatorEarlyStop(t *testing.T) {
	tests := []struct {
		name   string
		coords []life.Coord
		cfg    Config
		want   StopReason
		steps  int
	}{
		{"extinction", []life.Coord{{X: 2, Y: 2}}, Config{Generations: 10, StopOnExtinction: true}, StopExtinction, 1},
		{"still block", []life.Coord{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 1}, {X: 2, Y: 2}}, Config{Generations: 10, StopOnStill: true}, StopStill, 1},
		{"blinker never still", []life.Coord{{X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}}, Config{Generations: 6, StopOnStill: true}, StopLimit, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := life.New(5, 5)
			b.LoadCoords(tt.coords)
			result, err := New(b).Run(context.Background(), tt.cfg)
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if result.Stop != tt.want {
				t.Errorf("stop = %s, want %s", result.Stop, tt.want)
			}
			if result.Generations() != tt.steps {
				t.Errorf("steps = %d, want %d", result.Generations(), tt.steps)
			}
		})
	}
}

func TestSimulatorCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(blinkerBoard()).Run(ctx, Config{Generations: 5})
	if !errors.Is(err, ErrCanceled) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	var runErr *RunError
	if !errors.As(err, &runErr) || runErr.Generation != 0 {
		t.Errorf("expected RunError at generation 0, got %v", err)
	}
}

type testMetric struct {
	count int
	sum   float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(step life.Step) {
	t.count++
	t.sum += float64(step.Population)
}
func (t *testMetric) Value() float64 {
	if t.count == 0 {
		return 0
	}
	return t.sum / float64(t.count)
}
func (t *testMetric) Reset() {
	t.count = 0
	t.sum = 0
}

type countingObserver struct{ n int }

func (c *countingObserver) OnStep(life.Step) { c.n++ }

func TestSimulatorMetrics(t *testing.T) {
	s := New(blinkerBoard())
	metric := &testMetric{}
	obs := &countingObserver{}
	s.AddMetric(metric)
	s.AddObserver(obs)

	result, err := s.Run(context.Background(), Config{Generations: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if v, ok := result.Metrics["test"]; !ok || v != 3 {
		t.Errorf("metric = %v, %v", v, ok)
	}
	if metric.count != 10 {
		t.Errorf("expected 10 observations, got %d", metric.count)
	}
	if obs.n != 10 {
		t.Errorf("expected 10 observer calls, got %d", obs.n)
	}
}

func TestRunWithCallback(t *testing.T) {
	s := New(blinkerBoard())
	calls := 0
	reason, err := s.RunWithCallback(context.Background(), Config{Generations: 100}, func(step life.Step) bool {
		calls++
		return step.Generation < 4
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if reason != StopCallback || calls != 4 {
		t.Errorf("reason = %s after %d calls", reason, calls)
	}
}
