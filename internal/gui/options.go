// Package gui is the desktop board editor. It is built only with the
// raylib tag; without it Run reports ErrUnavailable.
package gui

import (
	"errors"

	"github.com/go-kit/log"

	"github.com/san-kum/lifesim/internal/export"
	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/pattern"
)

// ErrUnavailable is returned by Run in builds without the raylib tag.
var ErrUnavailable = errors.New("gui: built without raylib support (rebuild with -tags raylib)")

// Options configures the desktop editor.
type Options struct {
	Board        *life.Board
	Library      *pattern.Library
	Preset       string
	Density      float64
	Slider       int
	HistoryTrail bool
	CellPixels   int
	Palette      export.Palette
	AutosaveDir  string
	Logger       log.Logger
	// Menu opens the preset picker before the board.
	Menu bool
}
