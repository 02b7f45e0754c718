package analysis

import (
	"math/rand/v2"
	"strings"

	"github.com/san-kum/lifesim/internal/life"
)

// SweepPoint holds the populations a random board settled into for one
// initial density.
type SweepPoint struct {
	Density float64
	Values  []float64
}

// SweepConfig parameterizes DensitySweep.
type SweepConfig struct {
	Cols, Rows int
	Min, Max   float64
	Steps      int
	Transient  int
	Record     int
	Seed       uint64
	Workers    int
}

// DensitySweep seeds a fresh board at each density in [Min, Max], lets it
// settle for Transient generations and records the distinct populations seen
// over the next Record generations.
func DensitySweep(cfg SweepConfig) []SweepPoint {
	steps := cfg.Steps
	if steps <= 1 {
		steps = 2
	}
	delta := (cfg.Max - cfg.Min) / float64(steps-1)

	results := make([]SweepPoint, 0, steps)
	for i := 0; i < steps; i++ {
		density := cfg.Min + float64(i)*delta
		b := life.New(cfg.Cols, cfg.Rows)
		b.SetWorkers(cfg.Workers)
		b.RandomizeWith(rand.New(rand.NewPCG(cfg.Seed, uint64(i))), density)

		for g := 0; g < cfg.Transient; g++ {
			b.AdvanceGeneration()
		}

		values := make([]float64, 0, cfg.Record)
		seen := make(map[int]bool)
		for g := 0; g < cfg.Record; g++ {
			step := b.AdvanceGeneration()
			if !seen[step.Population] {
				seen[step.Population] = true
				values = append(values, float64(step.Population))
			}
		}
		results = append(results, SweepPoint{Density: density, Values: values})
	}
	return results
}

// SweepToASCII plots a sweep as a dot chart: density across, population up.
func SweepToASCII(data []SweepPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	found := false
	for _, p := range data {
		for _, v := range p.Values {
			if !found {
				minVal, maxVal = v, v
				found = true
				continue
			}
			minVal = min(minVal, v)
			maxVal = max(maxVal, v)
		}
	}
	if !found {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}
	for i, p := range data {
		col := min(i*width/len(data), width-1)
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}
