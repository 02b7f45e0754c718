package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-kit/log/level"
)

func TestLevelFilter(t *testing.T) {
	tests := []struct {
		lvl       string
		wantDebug bool
		wantWarn  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, true},
		{"error", false, false},
		{"bogus", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.lvl, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(&buf, tt.lvl)
			level.Debug(logger).Log("msg", "dbg")
			level.Warn(logger).Log("msg", "wrn")

			out := buf.String()
			if got := strings.Contains(out, "msg=dbg"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "msg=wrn"); got != tt.wantWarn {
				t.Errorf("warn logged = %v, want %v", got, tt.wantWarn)
			}
		})
	}
}

func TestLogfmtOutput(t *testing.T) {
	var buf bytes.Buffer
	level.Info(New(&buf, "info")).Log("msg", "loaded", "cells", 3)
	out := buf.String()
	for _, want := range []string{"level=info", "msg=loaded", "cells=3", "ts="} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}
