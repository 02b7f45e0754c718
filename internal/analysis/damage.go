package analysis

import "github.com/san-kum/lifesim/internal/life"

// Damage runs b and a copy with one cell flipped side by side and returns the
// number of cells that differ after each generation. Neither b nor its
// history is modified.
func Damage(b *life.Board, flip life.Coord, gens int) []int {
	base := Clone(b)
	perturbed := Clone(b)
	perturbed.Toggle(flip.X, flip.Y)

	out := make([]int, 0, gens)
	for i := 0; i < gens; i++ {
		base.AdvanceGeneration()
		perturbed.AdvanceGeneration()
		out = append(out, Distance(base, perturbed))
	}
	return out
}

// Distance is the Hamming distance between two boards of equal size. Boards of
// different sizes compare cell by cell over the shorter one.
func Distance(a, b *life.Board) int {
	n := min(a.Len(), b.Len())
	d := 0
	for i := 0; i < n; i++ {
		if a.Alive(i) != b.Alive(i) {
			d++
		}
	}
	return d
}

// Clone copies the live cells of b onto a new board of the same size.
func Clone(b *life.Board) *life.Board {
	c := life.New(b.Cols(), b.Rows())
	c.SetWorkers(b.Workers())
	c.LoadPattern(b.AliveIndices())
	return c
}
