package life

import "math/rand/v2"

// DefaultDensity is the probability that Randomize sets a cell alive.
const DefaultDensity = 0.3

// Coord addresses a cell by column and row.
type Coord struct {
	X, Y int
}

// Step summarizes one call to AdvanceGeneration.
type Step struct {
	Generation int
	Births     int
	Deaths     int
	Population int
}

// Board owns a cols x rows grid of cells. Cell (x, y) lives at linear index
// x*rows + y.
type Board struct {
	cols, rows int
	cells      []Cell
	observers  []Observer

	generation   int
	historyTrail bool
	workers      int
	changed      []bool
	trailed      []bool
}

// New builds a board and its neighbor graph. Non-positive dimensions are
// clamped to 1.
func New(cols, rows int) *Board {
	if cols <= 0 {
		cols = 1
	}
	if rows <= 0 {
		rows = 1
	}
	b := &Board{
		cols:    cols,
		rows:    rows,
		cells:   make([]Cell, cols*rows),
		changed: make([]bool, cols*rows),
		trailed: make([]bool, cols*rows),
		workers: 1,
	}
	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			idx := x*rows + y
			b.cells[idx] = newCell(idx, x, y)
		}
	}
	b.buildNeighbors()
	return b
}

// buildNeighbors runs once; adjacency is never rebuilt.
func (b *Board) buildNeighbors() {
	for i := range b.cells {
		c := &b.cells[i]
		c.neighbors = make([]int, 0, 8)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}
				if n, ok := b.Index(c.X+dx, c.Y+dy); ok {
					c.neighbors = append(c.neighbors, n)
				}
			}
		}
	}
}

func (b *Board) AddObserver(o Observer) { b.observers = append(b.observers, o) }

func (b *Board) emit(kind EventKind, idx, decay int) {
	if len(b.observers) == 0 {
		return
	}
	c := &b.cells[idx]
	e := Event{Kind: kind, Cell: idx, X: c.X, Y: c.Y, Decay: decay}
	for _, o := range b.observers {
		o.OnEvent(e)
	}
}

func (b *Board) Cols() int       { return b.cols }
func (b *Board) Rows() int       { return b.rows }
func (b *Board) Len() int        { return len(b.cells) }
func (b *Board) Generation() int { return b.generation }

// SetWorkers sets how many goroutines AdvanceGeneration may use per phase.
func (b *Board) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	b.workers = n
}

func (b *Board) Workers() int { return b.workers }

// Index maps (x, y) to a linear index.
func (b *Board) Index(x, y int) (int, bool) {
	if x < 0 || x >= b.cols || y < 0 || y >= b.rows {
		return 0, false
	}
	return x*b.rows + y, true
}

// Coord maps a linear index back to (x, y).
func (b *Board) Coord(idx int) (Coord, bool) {
	if !b.valid(idx) {
		return Coord{}, false
	}
	return Coord{X: idx / b.rows, Y: idx % b.rows}, true
}

func (b *Board) valid(idx int) bool { return idx >= 0 && idx < len(b.cells) }

// Cell returns the cell at idx for read access.
func (b *Board) Cell(idx int) (*Cell, bool) {
	if !b.valid(idx) {
		return nil, false
	}
	return &b.cells[idx], true
}

func (b *Board) Alive(idx int) bool {
	return b.valid(idx) && b.cells[idx].IsAlive()
}

// LiveNeighbors counts the live neighbors of idx.
func (b *Board) LiveNeighbors(idx int) int {
	if !b.valid(idx) {
		return 0
	}
	n := 0
	for _, j := range b.cells[idx].neighbors {
		if b.cells[j].state == Alive {
			n++
		}
	}
	return n
}

func (b *Board) Population() int {
	n := 0
	for i := range b.cells {
		if b.cells[i].state == Alive {
			n++
		}
	}
	return n
}

// AliveIndices lists live cells in ascending index order.
func (b *Board) AliveIndices() []int {
	out := make([]int, 0, 64)
	for i := range b.cells {
		if b.cells[i].state == Alive {
			out = append(out, i)
		}
	}
	return out
}

// SetAlive sets the cell at idx alive and emits EventAlive. It reports false
// for an index outside the board.
func (b *Board) SetAlive(idx int) bool {
	if !b.valid(idx) {
		return false
	}
	b.cells[idx].setAlive()
	b.emit(EventAlive, idx, 0)
	return true
}

// SetDead is the counterpart of SetAlive.
func (b *Board) SetDead(idx int) bool {
	if !b.valid(idx) {
		return false
	}
	b.cells[idx].setDead()
	b.emit(EventDead, idx, 0)
	return true
}

// Fill sets the cell at (x, y) alive.
func (b *Board) Fill(x, y int) bool {
	idx, ok := b.Index(x, y)
	if !ok {
		return false
	}
	return b.SetAlive(idx)
}

// Erase sets the cell at (x, y) dead.
func (b *Board) Erase(x, y int) bool {
	idx, ok := b.Index(x, y)
	if !ok {
		return false
	}
	return b.SetDead(idx)
}

// Toggle flips the cell at (x, y).
func (b *Board) Toggle(x, y int) bool {
	idx, ok := b.Index(x, y)
	if !ok {
		return false
	}
	if b.cells[idx].IsAlive() {
		return b.SetDead(idx)
	}
	return b.SetAlive(idx)
}

// AdvanceGeneration computes the next generation for every cell, then
// commits it. Every cell records its previous state in its history ring;
// only cells whose state changed emit events. A dead cell whose trail aged
// out of its ring emits EventHistoryCleared.
func (b *Board) AdvanceGeneration() Step {
	n := len(b.cells)

	parallelFor(n, b.workers, func(start, end int) {
		for i := start; i < end; i++ {
			b.cells[i].computeNextState(b.LiveNeighbors(i))
		}
	})

	parallelFor(n, b.workers, func(start, end int) {
		for i := start; i < end; i++ {
			c := &b.cells[i]
			b.changed[i] = c.pending != c.state
			b.trailed[i] = c.historical
			if c.pending == Alive {
				c.setAlive()
			} else {
				c.setDead()
			}
		}
	})

	step := Step{}
	for i := range b.cells {
		alive := b.cells[i].state == Alive
		if alive {
			step.Population++
		}
		if !b.changed[i] {
			continue
		}
		if alive {
			step.Births++
			b.emit(EventAlive, i, 0)
		} else {
			step.Deaths++
			b.emit(EventDead, i, 0)
		}
	}

	if b.historyTrail {
		b.ShowHistory()
	} else {
		b.ClearHistory(false)
	}
	for i := range b.cells {
		c := &b.cells[i]
		if b.trailed[i] && !c.historical && c.state == Dead {
			b.emit(EventHistoryCleared, i, 0)
		}
	}

	b.generation++
	step.Generation = b.generation
	return step
}

// Clear kills every live cell, empties all history rings and resets the
// generation counter. Adjacency is kept.
func (b *Board) Clear() {
	for i := range b.cells {
		if b.cells[i].state == Alive {
			b.SetDead(i)
		}
	}
	b.ClearHistory(true)
	for i := range b.cells {
		b.cells[i].pending = b.cells[i].state
	}
	b.generation = 0
}

// LoadPattern clears the board and sets every listed index alive.
// Out-of-range indices are skipped. It returns how many were applied.
func (b *Board) LoadPattern(indices []int) int {
	b.Clear()
	n := 0
	for _, idx := range indices {
		if b.SetAlive(idx) {
			n++
		}
	}
	return n
}

// LoadCoords is LoadPattern addressed by (x, y).
func (b *Board) LoadCoords(coords []Coord) int {
	b.Clear()
	n := 0
	for _, c := range coords {
		if b.Fill(c.X, c.Y) {
			n++
		}
	}
	return n
}

// Randomize sets each cell alive with probability density using the global,
// unseeded source.
func (b *Board) Randomize(density float64) {
	b.randomize(rand.Float64, density)
}

// RandomizeWith is Randomize with a caller-provided source.
func (b *Board) RandomizeWith(r *rand.Rand, density float64) {
	b.randomize(r.Float64, density)
}

func (b *Board) randomize(next func() float64, density float64) {
	for i := range b.cells {
		if next() < density {
			b.SetAlive(i)
		}
	}
}

// Undo steps every cell back one entry in its history ring. The last entry
// is popped while more than one remains, so a single remaining entry can be
// restored repeatedly. Undo reports false when no cell has any history.
func (b *Board) Undo() bool {
	undone := false
	for i := range b.cells {
		c := &b.cells[i]
		if len(c.history) == 0 {
			continue
		}
		undone = true
		last := c.history[len(c.history)-1]
		if len(c.history) > 1 {
			c.history = c.history[:len(c.history)-1]
		}
		c.historical = false
		c.pending = last
		if last == c.state {
			continue
		}
		c.state = last
		if last == Alive {
			b.emit(EventAlive, i, 0)
		} else {
			b.emit(EventDead, i, 0)
		}
	}
	if undone && b.generation > 0 {
		b.generation--
	}
	return undone
}
