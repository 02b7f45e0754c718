package analysis

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/san-kum/lifesim/internal/life"
)

// Cycle describes a repeating board: the generation at which the repeated
// configuration first appeared and the number of generations between repeats.
// A still life has period 1; a board that died out is a still life.
type Cycle struct {
	Start  int
	Period int
}

// Fingerprint hashes the set of live cells. Generation and history are ignored.
func Fingerprint(b *life.Board) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, idx := range b.AliveIndices() {
		binary.LittleEndian.PutUint64(buf[:], uint64(idx))
		h.Write(buf[:])
	}
	return h.Sum64()
}

// DetectCycle advances b up to maxGens generations and stops at the first
// configuration seen before. b is left at the generation where the repeat was
// found.
func DetectCycle(b *life.Board, maxGens int) (Cycle, bool) {
	seen := map[uint64]int{Fingerprint(b): b.Generation()}
	for i := 0; i < maxGens; i++ {
		b.AdvanceGeneration()
		fp := Fingerprint(b)
		if first, ok := seen[fp]; ok {
			return Cycle{Start: first, Period: b.Generation() - first}, true
		}
		seen[fp] = b.Generation()
	}
	return Cycle{}, false
}
