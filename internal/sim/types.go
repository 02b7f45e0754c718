package sim

import "github.com/san-kum/lifesim/internal/life"

// Metric accumulates a value over the steps of a run.
type Metric interface {
	Name() string
	Observe(step life.Step)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(step life.Step)
}

type Config struct {
	Generations int
	// StopOnExtinction ends the run early once the population reaches zero.
	StopOnExtinction bool
	// StopOnStill ends the run early after a generation with no births or deaths.
	StopOnStill bool
}

type Result struct {
	Steps   []life.Step
	Metrics map[string]float64
	// Initial is the population before the first generation.
	Initial int
	Stop    StopReason
}

type StopReason string

const (
	StopLimit      StopReason = "limit"
	StopExtinction StopReason = "extinction"
	StopStill      StopReason = "still"
	StopCallback   StopReason = "callback"
)

// Populations returns the population series including the initial board.
func (r *Result) Populations() []float64 {
	out := make([]float64, 0, len(r.Steps)+1)
	out = append(out, float64(r.Initial))
	for _, s := range r.Steps {
		out = append(out, float64(s.Population))
	}
	return out
}

// Generations reports how many generations the run advanced.
func (r *Result) Generations() int { return len(r.Steps) }
