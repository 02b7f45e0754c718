package life

// HistoryDepth is the number of past states each cell remembers.
const HistoryDepth = 6

// State is the live state of a cell.
type State uint8

const (
	Dead State = iota
	Alive
)

func (s State) String() string {
	if s == Alive {
		return "alive"
	}
	return "dead"
}

// Cell is a single automaton unit. Cells are owned by a Board and refer to
// their neighbors by index into the Board's arena.
type Cell struct {
	ID int
	X  int
	Y  int

	state      State
	pending    State
	history    []State
	historical bool
	neighbors  []int
}

func newCell(id, x, y int) Cell {
	return Cell{
		ID:      id,
		X:       x,
		Y:       y,
		history: make([]State, 0, HistoryDepth),
	}
}

// IsAlive reports the current state.
func (c *Cell) IsAlive() bool { return c.state == Alive }

// State returns the current state.
func (c *Cell) State() State { return c.state }

// Pending returns the state computed for the next generation.
func (c *Cell) Pending() State { return c.pending }

// Historical reports whether the cell is currently rendered as a trail.
func (c *Cell) Historical() bool { return c.historical }

// History returns a copy of the past states, oldest first.
func (c *Cell) History() []State {
	h := make([]State, len(c.history))
	copy(h, c.history)
	return h
}

// Neighbors returns a copy of the neighbor indices.
func (c *Cell) Neighbors() []int {
	n := make([]int, len(c.neighbors))
	copy(n, c.neighbors)
	return n
}

func (c *Cell) setAlive() { c.set(Alive) }
func (c *Cell) setDead()  { c.set(Dead) }

func (c *Cell) set(s State) {
	c.push(c.state)
	c.state = s
	c.pending = s
	c.historical = false
}

func (c *Cell) push(s State) {
	if len(c.history) == HistoryDepth {
		copy(c.history, c.history[1:])
		c.history = c.history[:HistoryDepth-1]
	}
	c.history = append(c.history, s)
}

func (c *Cell) setPendingAlive() { c.pending = Alive }
func (c *Cell) setPendingDead()  { c.pending = Dead }

// computeNextState applies B3/S23 to the live neighbor count and writes only
// the pending state.
func (c *Cell) computeNextState(liveNeighbors int) {
	switch {
	case liveNeighbors < 2 || liveNeighbors > 3:
		c.setPendingDead()
	case c.state == Dead && liveNeighbors == 3:
		c.setPendingAlive()
	default:
		c.pending = c.state
	}
}
