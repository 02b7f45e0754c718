// Package logging builds the go-kit logger shared by the command and the
// collaborators around the engine. The engine itself does not log.
package logging

import (
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// New returns a logfmt logger writing to w, filtered at the named level
// (debug, info, warn, error). Unknown names fall back to info.
func New(w io.Writer, lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	return level.NewFilter(logger, Option(lvl))
}

// Option maps a level name to a go-kit filter option.
func Option(lvl string) level.Option {
	switch strings.ToLower(lvl) {
	case "debug":
		return level.AllowDebug()
	case "warn", "warning":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	case "none", "off":
		return level.AllowNone()
	default:
		return level.AllowInfo()
	}
}

// Nop discards everything.
func Nop() log.Logger { return log.NewNopLogger() }
