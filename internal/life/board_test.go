package life_test

import (
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lifesim/internal/life"
)

func aliveCoords(b *life.Board) []life.Coord {
	out := []life.Coord{}
	for _, idx := range b.AliveIndices() {
		c, _ := b.Coord(idx)
		out = append(out, c)
	}
	return out
}

type recorder struct {
	events []life.Event
}

func (r *recorder) OnEvent(e life.Event) { r.events = append(r.events, e) }

func (r *recorder) kinds(k life.EventKind) []life.Event {
	out := []life.Event{}
	for _, e := range r.events {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

var _ = Describe("Board", func() {
	Describe("construction", func() {
		It("uses column-major indices", func() {
			b := life.New(4, 3)
			Expect(b.Len()).To(Equal(12))
			idx, ok := b.Index(2, 1)
			Expect(ok).To(BeTrue())
			Expect(idx).To(Equal(2*3 + 1))
			c, ok := b.Coord(idx)
			Expect(ok).To(BeTrue())
			Expect(c).To(Equal(life.Coord{X: 2, Y: 1}))
		})

		It("gives corners 3, edges 5 and interior cells 8 neighbors", func() {
			b := life.New(5, 4)
			for x := 0; x < 5; x++ {
				for y := 0; y < 4; y++ {
					idx, _ := b.Index(x, y)
					cell, _ := b.Cell(idx)
					onX := x == 0 || x == 4
					onY := y == 0 || y == 3
					want := 8
					switch {
					case onX && onY:
						want = 3
					case onX || onY:
						want = 5
					}
					Expect(cell.Neighbors()).To(HaveLen(want), "cell (%d,%d)", x, y)
				}
			}
		})

		It("never links a bottom cell to the top of the next column", func() {
			b := life.New(3, 3)
			bottom, _ := b.Index(0, 2)
			nextTop, _ := b.Index(1, 0)
			cell, _ := b.Cell(bottom)
			Expect(cell.Neighbors()).NotTo(ContainElement(nextTop))
		})

		It("clamps degenerate sizes", func() {
			b := life.New(0, -3)
			Expect(b.Cols()).To(Equal(1))
			Expect(b.Rows()).To(Equal(1))
		})
	})

	Describe("lookups", func() {
		It("treats out-of-range coordinates as no-ops", func() {
			b := life.New(3, 3)
			Expect(b.Fill(-1, 0)).To(BeFalse())
			Expect(b.Fill(3, 0)).To(BeFalse())
			Expect(b.SetAlive(9)).To(BeFalse())
			Expect(b.SetDead(-1)).To(BeFalse())
			_, ok := b.Cell(42)
			Expect(ok).To(BeFalse())
			Expect(b.Population()).To(BeZero())
		})

		It("toggles cells", func() {
			b := life.New(3, 3)
			Expect(b.Toggle(1, 1)).To(BeTrue())
			Expect(b.Population()).To(Equal(1))
			Expect(b.Toggle(1, 1)).To(BeTrue())
			Expect(b.Population()).To(BeZero())
		})
	})

	Describe("AdvanceGeneration", func() {
		It("keeps an empty board empty", func() {
			b := life.New(10, 10)
			for i := 0; i < 5; i++ {
				step := b.AdvanceGeneration()
				Expect(step.Population).To(BeZero())
			}
			Expect(b.AliveIndices()).To(BeEmpty())
			Expect(b.Generation()).To(Equal(5))
		})

		It("kills a lone cell", func() {
			b := life.New(5, 5)
			b.Fill(2, 2)
			step := b.AdvanceGeneration()
			Expect(b.Alive(2*5 + 2)).To(BeFalse())
			Expect(step.Deaths).To(Equal(1))
			Expect(step.Births).To(BeZero())
		})

		It("keeps a block still", func() {
			b := life.New(6, 6)
			block := []life.Coord{{X: 2, Y: 2}, {X: 2, Y: 3}, {X: 3, Y: 2}, {X: 3, Y: 3}}
			b.LoadCoords(block)
			for i := 0; i < 10; i++ {
				b.AdvanceGeneration()
				Expect(aliveCoords(b)).To(ConsistOf(block))
			}
		})

		It("oscillates a blinker with period 2", func() {
			b := life.New(5, 5)
			horizontal := []life.Coord{{X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}}
			vertical := []life.Coord{{X: 2, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 3}}
			b.LoadCoords(horizontal)
			for i := 0; i < 6; i++ {
				b.AdvanceGeneration()
				if i%2 == 0 {
					Expect(aliveCoords(b)).To(ConsistOf(vertical))
				} else {
					Expect(aliveCoords(b)).To(ConsistOf(horizontal))
				}
			}
		})

		It("keeps a blinker on the board edge from wrapping", func() {
			b := life.New(4, 4)
			b.LoadCoords([]life.Coord{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}})
			b.AdvanceGeneration()
			Expect(aliveCoords(b)).To(ConsistOf(life.Coord{X: 2, Y: 0}, life.Coord{X: 2, Y: 1}))
		})

		It("emits events only for changed cells", func() {
			b := life.New(5, 5)
			b.LoadCoords([]life.Coord{{X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}})
			rec := &recorder{}
			b.AddObserver(rec)

			step := b.AdvanceGeneration()
			Expect(step.Births).To(Equal(2))
			Expect(step.Deaths).To(Equal(2))
			Expect(step.Population).To(Equal(3))
			Expect(rec.kinds(life.EventAlive)).To(HaveLen(2))
			Expect(rec.kinds(life.EventDead)).To(HaveLen(2))
			for i := 1; i < len(rec.events); i++ {
				Expect(rec.events[i].Cell).To(BeNumerically(">", rec.events[i-1].Cell))
			}
		})

		It("gives the same result with worker fan-out", func() {
			seq := life.New(64, 64)
			par := life.New(64, 64)
			par.SetWorkers(4)
			seq.RandomizeWith(rand.New(rand.NewPCG(7, 0)), life.DefaultDensity)
			par.RandomizeWith(rand.New(rand.NewPCG(7, 0)), life.DefaultDensity)
			Expect(par.AliveIndices()).To(Equal(seq.AliveIndices()))

			for i := 0; i < 25; i++ {
				a := seq.AdvanceGeneration()
				c := par.AdvanceGeneration()
				Expect(c).To(Equal(a))
			}
			Expect(par.AliveIndices()).To(Equal(seq.AliveIndices()))
		})
	})

	Describe("Clear", func() {
		It("is idempotent", func() {
			b := life.New(20, 20)
			b.RandomizeWith(rand.New(rand.NewPCG(1, 2)), 0.5)
			b.AdvanceGeneration()
			b.AdvanceGeneration()

			b.Clear()
			Expect(b.Population()).To(BeZero())
			Expect(b.Generation()).To(BeZero())
			for i := 0; i < b.Len(); i++ {
				c, _ := b.Cell(i)
				Expect(c.History()).To(BeEmpty())
				Expect(c.Historical()).To(BeFalse())
			}

			b.Clear()
			Expect(b.Population()).To(BeZero())
			for i := 0; i < b.Len(); i++ {
				c, _ := b.Cell(i)
				Expect(c.History()).To(BeEmpty())
			}
		})

		It("emits a dead event per live cell", func() {
			b := life.New(5, 5)
			b.LoadCoords([]life.Coord{{X: 0, Y: 0}, {X: 4, Y: 4}})
			rec := &recorder{}
			b.AddObserver(rec)
			b.Clear()
			Expect(rec.kinds(life.EventDead)).To(HaveLen(2))
		})
	})

	Describe("LoadPattern", func() {
		It("skips out-of-range indices", func() {
			b := life.New(3, 3)
			b.Fill(0, 0)
			n := b.LoadPattern([]int{1, 4, 99, -2})
			Expect(n).To(Equal(2))
			Expect(b.AliveIndices()).To(Equal([]int{1, 4}))
		})
	})

	Describe("Randomize", func() {
		It("fills roughly the requested density", func() {
			b := life.New(100, 100)
			b.RandomizeWith(rand.New(rand.NewPCG(3, 4)), 0.3)
			Expect(b.Population()).To(BeNumerically("~", 3000, 300))
		})

		It("fills nothing at zero density", func() {
			b := life.New(10, 10)
			b.Randomize(0)
			Expect(b.Population()).To(BeZero())
		})
	})

	Describe("Undo", func() {
		It("steps a blinker back", func() {
			b := life.New(5, 5)
			horizontal := []life.Coord{{X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}}
			b.LoadCoords(horizontal)
			b.AdvanceGeneration()
			Expect(b.Undo()).To(BeTrue())
			Expect(aliveCoords(b)).To(ConsistOf(horizontal))
			Expect(b.Generation()).To(BeZero())
		})

		It("reports false on a fresh board", func() {
			Expect(life.New(3, 3).Undo()).To(BeFalse())
		})
	})
})
