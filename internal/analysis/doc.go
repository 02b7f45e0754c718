// Package analysis characterizes how a board evolves.
//
// The package includes:
//
//   - [PowerSpectrum]: FFT magnitude of a population series
//   - [DominantPeriod]: strongest oscillation period in a population series
//   - [DetectCycle]: exact period detection by fingerprinting live cells
//   - [DensitySweep]: settled populations across initial random densities
//   - [Damage]: spread of a single-cell perturbation over time
//
// # Cycle Detection
//
// DetectCycle advances the board it is given:
//
//	c, ok := analysis.DetectCycle(board, 500)
//	if ok && c.Period == 2 {
//	    // blinker-like oscillator
//	}
package analysis
