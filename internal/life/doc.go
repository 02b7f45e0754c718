// Package life implements the Game of Life engine: a fixed-size board of
// cells, the Moore-neighborhood graph, synchronous generation advance and the
// bounded per-cell history used to draw fading trails.
//
//   - [Cell]: current state, pending state and a ring of the last
//     [HistoryDepth] states
//   - [Board]: owns all cells, builds adjacency once, advances generations
//   - [Observer]: receives [Event] values for every visible change
//
// # Example
//
//	b := life.New(80, 60)
//	b.AddObserver(life.ObserverFunc(func(e life.Event) { ... }))
//	b.LoadCoords([]life.Coord{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}})
//	step := b.AdvanceGeneration()
//
// # Generation Advance
//
// Advancing is split in two phases. Phase one computes every cell's pending
// state from the current state of its neighbors; phase two commits. Phase one
// never observes a partially committed board, so results do not depend on
// evaluation order. With [Board.SetWorkers] both phases are fanned out across
// goroutines with a barrier between them; events are still emitted in index
// order after the commit.
//
// # Thread Safety
//
// A Board is NOT safe for concurrent use. Drive it from one goroutine, for
// example the scheduler or the UI loop.
package life
