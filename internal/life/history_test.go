package life_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lifesim/internal/life"
)

var _ = Describe("History", func() {
	var (
		b   *life.Board
		rec *recorder
		idx int
	)

	BeforeEach(func() {
		b = life.New(5, 5)
		idx, _ = b.Index(2, 2)
		b.SetAlive(idx)
		rec = &recorder{}
		b.AddObserver(rec)
	})

	It("never grows a ring past the history depth", func() {
		for i := 0; i < 50; i++ {
			if i%3 == 0 {
				b.SetDead(idx)
			} else {
				b.SetAlive(idx)
			}
		}
		cell, _ := b.Cell(idx)
		Expect(len(cell.History())).To(BeNumerically("<=", life.HistoryDepth))
	})

	It("ages decay by one per generation until the ring forgets", func() {
		b.SetHistoryTrail(true)
		Expect(b.HistoryTrail()).To(BeTrue())

		for gen := 1; gen <= life.HistoryDepth; gen++ {
			rec.events = nil
			b.AdvanceGeneration()

			decays := rec.kinds(life.EventDecay)
			Expect(decays).To(HaveLen(1), "generation %d", gen)
			Expect(decays[0].Cell).To(Equal(idx))
			Expect(decays[0].Decay).To(Equal(gen))

			d, ok := b.Decay(idx)
			Expect(ok).To(BeTrue())
			Expect(d).To(Equal(gen))
			cell, _ := b.Cell(idx)
			Expect(cell.Historical()).To(BeTrue())
		}

		rec.events = nil
		b.AdvanceGeneration()
		Expect(rec.kinds(life.EventDecay)).To(BeEmpty())
		cleared := rec.kinds(life.EventHistoryCleared)
		Expect(cleared).To(HaveLen(1))
		Expect(cleared[0].Cell).To(Equal(idx))
		_, ok := b.Decay(idx)
		Expect(ok).To(BeFalse())
	})

	It("never reports decay for a live cell", func() {
		block := []life.Coord{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 1}, {X: 2, Y: 2}}
		b.LoadCoords(block)
		b.SetHistoryTrail(true)
		rec.events = nil
		b.AdvanceGeneration()
		Expect(rec.kinds(life.EventDecay)).To(BeEmpty())
		i, _ := b.Index(1, 1)
		_, ok := b.Decay(i)
		Expect(ok).To(BeFalse())
	})

	It("clears shown trails when trail mode is turned off", func() {
		b.SetHistoryTrail(true)
		b.AdvanceGeneration()

		rec.events = nil
		b.SetHistoryTrail(false)
		cleared := rec.kinds(life.EventHistoryCleared)
		Expect(cleared).To(HaveLen(1))
		cell, _ := b.Cell(idx)
		Expect(cell.Historical()).To(BeFalse())
		Expect(cell.History()).NotTo(BeEmpty())
	})

	It("empties rings on reset", func() {
		b.AdvanceGeneration()
		b.ClearHistory(true)
		cell, _ := b.Cell(idx)
		Expect(cell.History()).To(BeEmpty())
	})

	It("resets historical when input sets the cell", func() {
		b.SetHistoryTrail(true)
		b.AdvanceGeneration()
		cell, _ := b.Cell(idx)
		Expect(cell.Historical()).To(BeTrue())
		b.SetDead(idx)
		Expect(cell.Historical()).To(BeFalse())
	})
})
