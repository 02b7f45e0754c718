package life

import "testing"

func TestComputeNextState(t *testing.T) {
	tests := []struct {
		name      string
		state     State
		neighbors int
		want      State
	}{
		{"dead lonely", Dead, 0, Dead},
		{"dead two", Dead, 2, Dead},
		{"dead born", Dead, 3, Alive},
		{"dead crowded", Dead, 4, Dead},
		{"alive lonely", Alive, 1, Dead},
		{"alive survives two", Alive, 2, Alive},
		{"alive survives three", Alive, 3, Alive},
		{"alive crowded", Alive, 4, Dead},
		{"alive full", Alive, 8, Dead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCell(0, 0, 0)
			c.state = tt.state
			c.pending = Dead
			c.computeNextState(tt.neighbors)
			if c.pending != tt.want {
				t.Errorf("pending = %v, want %v", c.pending, tt.want)
			}
			if c.state != tt.state {
				t.Errorf("state changed to %v", c.state)
			}
		})
	}
}

func TestCellHistoryBounded(t *testing.T) {
	c := newCell(0, 0, 0)
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			c.setAlive()
		} else {
			c.setDead()
		}
		if len(c.history) > HistoryDepth {
			t.Fatalf("history length %d after %d sets", len(c.history), i+1)
		}
	}
	if len(c.history) != HistoryDepth {
		t.Errorf("expected full ring of %d, got %d", HistoryDepth, len(c.history))
	}
	// last set was setDead, so the newest entry is the alive state it replaced
	if c.history[HistoryDepth-1] != Alive {
		t.Errorf("newest history entry = %v, want alive", c.history[HistoryDepth-1])
	}
}

func TestCellSetClearsHistorical(t *testing.T) {
	c := newCell(0, 0, 0)
	c.historical = true
	c.setAlive()
	if c.historical {
		t.Error("setAlive should clear historical")
	}
	if c.pending != Alive {
		t.Errorf("pending = %v, want alive", c.pending)
	}

	c.historical = true
	c.setPendingDead()
	if !c.historical {
		t.Error("setPendingDead must not touch historical")
	}
	if c.state != Alive {
		t.Error("setPendingDead must not touch state")
	}
}

func TestStateString(t *testing.T) {
	if Alive.String() != "alive" || Dead.String() != "dead" {
		t.Errorf("unexpected strings %q %q", Alive, Dead)
	}
}
