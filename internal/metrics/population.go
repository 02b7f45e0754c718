package metrics

import "github.com/san-kum/lifesim/internal/life"

// Population averages the live-cell count over a run and tracks its peak.
type Population struct {
	name    string
	sum     float64
	samples int
	peak    int
}

func NewPopulation() *Population {
	return &Population{name: "population"}
}

func (p *Population) Name() string { return p.name }

func (p *Population) Observe(step life.Step) {
	p.sum += float64(step.Population)
	p.peak = max(p.peak, step.Population)
	p.samples++
}

func (p *Population) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.sum / float64(p.samples)
}

func (p *Population) Peak() int { return p.peak }

func (p *Population) Reset() {
	p.sum = 0
	p.samples = 0
	p.peak = 0
}
