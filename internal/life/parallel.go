package life

import "golang.org/x/sync/errgroup"

// minChunk keeps tiny boards on a single goroutine.
const minChunk = 256

// parallelFor runs fn over [0, n) split into at most workers contiguous
// chunks. Wait is the barrier between phases.
func parallelFor(n, workers int, fn func(start, end int)) {
	if workers <= 1 || n <= minChunk {
		fn(0, n)
		return
	}
	if n/minChunk < workers {
		workers = n / minChunk
	}
	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < n; start += chunk {
		s, e := start, min(start+chunk, n)
		g.Go(func() error {
			fn(s, e)
			return nil
		})
	}
	// The chunks never fail; Wait is only the barrier.
	_ = g.Wait()
}
