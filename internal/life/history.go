package life

// SetHistoryTrail turns trail rendering on or off. Turning it off clears any
// trail currently shown.
func (b *Board) SetHistoryTrail(on bool) {
	b.historyTrail = on
	if on {
		b.ShowHistory()
	} else {
		b.ClearHistory(false)
	}
}

func (b *Board) HistoryTrail() bool { return b.historyTrail }

// ShowHistory emits an EventDecay for every live entry in the history ring of
// every dead cell, scanning oldest to newest. The newest superseded live
// state has decay 1.
func (b *Board) ShowHistory() {
	for i := range b.cells {
		c := &b.cells[i]
		if c.state == Alive {
			continue
		}
		n := len(c.history)
		for pos, s := range c.history {
			if s != Alive {
				continue
			}
			c.historical = true
			b.emit(EventDecay, i, n-pos)
		}
	}
}

// Decay returns the smallest decay value of the cell at idx, or false when the
// cell is alive or has no live entry in its ring.
func (b *Board) Decay(idx int) (int, bool) {
	if !b.valid(idx) {
		return 0, false
	}
	c := &b.cells[idx]
	if c.state == Alive {
		return 0, false
	}
	n := len(c.history)
	for pos := n - 1; pos >= 0; pos-- {
		if c.history[pos] == Alive {
			return n - pos, true
		}
	}
	return 0, false
}

// ClearHistory emits EventHistoryCleared for every dead cell currently shown
// as a trail. With reset it also empties every history ring.
func (b *Board) ClearHistory(reset bool) {
	for i := range b.cells {
		c := &b.cells[i]
		if reset {
			c.history = c.history[:0]
		}
		if !c.historical {
			continue
		}
		c.historical = false
		if c.state == Dead {
			b.emit(EventHistoryCleared, i, 0)
		}
	}
}
