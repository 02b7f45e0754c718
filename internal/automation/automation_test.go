package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/lifesim/internal/experiment"
	"github.com/san-kum/lifesim/internal/pattern"
	"github.com/san-kum/lifesim/internal/storage"
)

const scenarioYAML = `
name: smoke
description: two presets on a small board
cols: 40
rows: 30
steps:
  - preset: R Pentomino
    generations: 10
    history: true
  - preset: Random
    generations: 5
    density: 0.25
    seed: 3
    cols: 20
    rows: 20
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sc.Name != "smoke" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	if !sc.Steps[0].History || sc.Steps[1].Seed != 3 || sc.Steps[1].Density != 0.25 {
		t.Errorf("unexpected steps %+v", sc.Steps)
	}

	if _, err := LoadScenario(writeScenario(t, "steps: [")); err == nil {
		t.Error("expected yaml error")
	}
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected missing file error")
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	saveDir := filepath.Join(t.TempDir(), "out")
	sc.Steps[0].SaveAs = saveDir

	st := storage.New(t.TempDir())
	r := &Runner{Registry: experiment.NewRegistry(nil), Store: st}
	results, err := r.RunScenario(context.Background(), sc)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	first := results[0]
	if first.Board.Cols() != 40 || first.Board.Rows() != 30 {
		t.Errorf("first board %dx%d", first.Board.Cols(), first.Board.Rows())
	}
	if first.Result.Generations() != 10 || !first.Board.HistoryTrail() {
		t.Errorf("first step ran %d generations", first.Result.Generations())
	}
	if results[1].Board.Cols() != 20 {
		t.Errorf("step override ignored: %d cols", results[1].Board.Cols())
	}

	if _, err := os.Stat(filepath.Join(saveDir, pattern.BoardFile)); err != nil {
		t.Errorf("save_as not written: %v", err)
	}
	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].ID != first.RunID {
		t.Errorf("stored runs = %+v", runs)
	}
}

func TestRunScenarioUnknownPreset(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{{Preset: "Spaceship Factory", Generations: 1}}}
	r := &Runner{Registry: experiment.NewRegistry(nil)}
	if _, err := r.RunScenario(context.Background(), sc); err == nil {
		t.Error("expected error")
	}
}

func TestRunSweep(t *testing.T) {
	r := &Runner{Registry: experiment.NewRegistry(nil)}
	results, err := r.RunSweep(context.Background(), &DensitySweep{
		Cols: 16, Rows: 16, Min: 0, Max: 0.6, NumSteps: 4, Generations: 8, Seed: 1,
	})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if results[0].Initial != 0 || results[0].Final != 0 || results[0].Period != 1 {
		t.Errorf("zero density result %+v", results[0])
	}
	if results[3].Initial == 0 {
		t.Error("densest board started empty")
	}

	if _, err := r.RunSweep(context.Background(), &DensitySweep{NumSteps: 1}); err == nil {
		t.Error("expected error for a single step")
	}
}

func TestRunMonteCarlo(t *testing.T) {
	r := &Runner{Registry: experiment.NewRegistry(nil)}
	results, err := r.RunMonteCarlo(context.Background(), &MonteCarloConfig{
		Cols: 12, Rows: 12, Density: 0.05, NumTrials: 5, Generations: 30, Seed: 2,
	})
	if err != nil {
		t.Fatalf("monte carlo failed: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 trials, got %d", len(results))
	}
	survived, extinct := MonteCarloStats(results)
	if survived+extinct != 5 {
		t.Errorf("stats %d + %d", survived, extinct)
	}
	for _, res := range results {
		if res.Extinct != (res.Final == 0) {
			t.Errorf("trial %d inconsistent: %+v", res.TrialID, res)
		}
	}
}
