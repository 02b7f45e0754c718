package viz

import "github.com/san-kum/lifesim/internal/life"

// Shade is what a render surface shows for one cell.
type Shade uint8

const (
	ShadeDead Shade = iota
	ShadeAlive
	// ShadeTrail+d-1 is a trail of decay d.
	ShadeTrail
)

// Decay returns the decay value of a trail shade, or 0.
func (s Shade) Decay() int {
	if s < ShadeTrail {
		return 0
	}
	return int(s-ShadeTrail) + 1
}

// Grid mirrors a board from its events. It is the only state a renderer
// reads; the board is never queried while drawing.
type Grid struct {
	cols, rows int
	shades     []Shade
}

// NewGrid builds a grid for b, seeds it from the current live cells and
// subscribes it to b's events.
func NewGrid(b *life.Board) *Grid {
	g := &Grid{cols: b.Cols(), rows: b.Rows(), shades: make([]Shade, b.Len())}
	for _, idx := range b.AliveIndices() {
		g.shades[idx] = ShadeAlive
	}
	b.AddObserver(g)
	return g
}

func (g *Grid) OnEvent(e life.Event) {
	if e.Cell < 0 || e.Cell >= len(g.shades) {
		return
	}
	switch e.Kind {
	case life.EventAlive:
		g.shades[e.Cell] = ShadeAlive
	case life.EventDead, life.EventHistoryCleared:
		g.shades[e.Cell] = ShadeDead
	case life.EventDecay:
		// Decay events arrive oldest first; the last one is the freshest.
		g.shades[e.Cell] = ShadeTrail + Shade(e.Decay-1)
	}
}

func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Rows() int { return g.rows }

// At returns the shade of cell (x, y); out-of-range cells are dead.
func (g *Grid) At(x, y int) Shade {
	if x < 0 || x >= g.cols || y < 0 || y >= g.rows {
		return ShadeDead
	}
	return g.shades[x*g.rows+y]
}

// Sync resets every shade to the live state of b, dropping trails. Used
// after operations that rewrite history without per-cell events, such as
// Undo; callers re-emit trails with ShowHistory.
func (g *Grid) Sync(b *life.Board) {
	for i := range g.shades {
		g.shades[i] = ShadeDead
		if b.Alive(i) {
			g.shades[i] = ShadeAlive
		}
	}
}
