package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/lifesim/internal/pattern"
)

func TestExperimentRun(t *testing.T) {
	reg := NewRegistry(nil)
	e, err := reg.NewExperiment(Config{Preset: pattern.RPentomino, Cols: 80, Rows: 60, Generations: 20})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if e.Board().Population() != 5 {
		t.Fatalf("initial population = %d", e.Board().Population())
	}
	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Generations() != 20 || e.Board().Generation() != 20 {
		t.Errorf("ran %d generations", result.Generations())
	}
	for _, name := range reg.ListMetrics() {
		if _, ok := result.Metrics[name]; !ok {
			t.Errorf("missing metric %s", name)
		}
	}
}

func TestExperimentSeededRandom(t *testing.T) {
	reg := NewRegistry(nil)
	cfg := Config{Preset: pattern.Random, Cols: 32, Rows: 32, Density: 0.4, Seed: 9, Generations: 5}
	a, err := reg.NewExperiment(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := reg.NewExperiment(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a.Board().AliveIndices(), b.Board().AliveIndices()); diff != "" {
		t.Errorf("same seed, different boards:\n%s", diff)
	}
}

func TestExperimentNotSetup(t *testing.T) {
	if _, err := New(Config{Generations: 1}).Run(context.Background()); err == nil {
		t.Error("expected error")
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry(nil)
	if _, err := reg.GetMetric("energy"); err == nil {
		t.Error("expected unknown metric error")
	}
	m, err := reg.GetMetric("turnover")
	if err != nil || m.Name() != "turnover" {
		t.Errorf("GetMetric(turnover) = %v, %v", m, err)
	}
	if len(reg.ListPresets()) != 7 {
		t.Errorf("presets = %v", reg.ListPresets())
	}

	_, err = reg.NewExperiment(Config{Preset: "Nope", Cols: 5, Rows: 5, Generations: 1})
	if !errors.Is(err, pattern.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}
