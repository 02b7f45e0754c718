package metrics

import "github.com/san-kum/lifesim/internal/life"

// Turnover is the mean number of births plus deaths per generation.
type Turnover struct {
	name    string
	sum     int
	samples int
}

func NewTurnover() *Turnover {
	return &Turnover{name: "turnover"}
}

func (t *Turnover) Name() string {
	return t.name
}

func (t *Turnover) Observe(step life.Step) {
	t.sum += step.Births + step.Deaths
	t.samples++
}

func (t *Turnover) Value() float64 {
	if t.samples == 0 {
		return 0
	}
	return float64(t.sum) / float64(t.samples)
}

func (t *Turnover) Reset() {
	t.sum = 0
	t.samples = 0
}
