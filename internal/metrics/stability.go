package metrics

import "github.com/san-kum/lifesim/internal/life"

// Stability counts the trailing run of generations with no births or deaths.
// A board that has settled into a still life reports a growing value; any
// change resets it.
type Stability struct {
	name    string
	streak  int
	longest int
}

func NewStability() *Stability {
	return &Stability{name: "stability"}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(step life.Step) {
	if step.Births == 0 && step.Deaths == 0 {
		s.streak++
		s.longest = max(s.longest, s.streak)
		return
	}
	s.streak = 0
}

func (s *Stability) Value() float64 {
	return float64(s.streak)
}

// Longest is the longest unchanged run seen since Reset.
func (s *Stability) Longest() int { return s.longest }

func (s *Stability) Reset() {
	s.streak = 0
	s.longest = 0
}
