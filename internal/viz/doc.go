// Package viz provides the terminal board editor.
//
// The editor is a Bubble Tea program:
//
//   - [Model]: the interactive editor, stepped by a [scheduler.Scheduler]
//   - [Grid]: an event-fed mirror of the board that rendering reads
//   - [Canvas]: braille canvas used for the zoomed-out overview
//   - Theme selection with 6 built-in color schemes
//
// # Key Bindings
//
//	Space - Run/Pause
//	N     - Advance one generation
//	R / C - Random board / clear
//	P     - Cycle presets
//	H     - Toggle history trail
//	U     - Undo one generation
//	S / L - Save / load the autosave board
//	+ / - - Zoom
//	[ / ] - Slower / faster
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// GIF recordings are written to the data directory as life_<unix>.gif.
package viz
