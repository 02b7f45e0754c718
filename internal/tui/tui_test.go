package tui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/pattern"
)

func TestLiveRendererFrame(t *testing.T) {
	b := life.New(4, 4)
	b.LoadCoords([]life.Coord{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}, {X: 2, Y: 1}})

	var out bytes.Buffer
	r := NewLiveRenderer(b, &out, 1)
	r.Start()
	r.OnStep(life.Step{Generation: 7, Population: 4, Births: 2, Deaths: 1})

	got := out.String()
	for _, want := range []string{hideCursor, "generation 7", "population 4", "▀▄█ ", "+2 -1"} {
		if !strings.Contains(got, want) {
			t.Errorf("frame missing %q:\n%s", want, got)
		}
	}

	out.Reset()
	r.OnStep(life.Step{Generation: 8})
	if out.Len() != 0 {
		t.Errorf("second frame inside the frame interval should be dropped")
	}

	r.Stop()
	if out.String() != showCursor {
		t.Errorf("stop wrote %q", out.String())
	}
}

func TestLiveRendererCapsCanvas(t *testing.T) {
	r := NewLiveRenderer(life.New(300, 300), &bytes.Buffer{}, 0)
	if len(r.canvas) != maxHeight || len(r.canvas[0]) != maxWidth {
		t.Errorf("canvas %dx%d", len(r.canvas[0]), len(r.canvas))
	}
	if r.frameRate != 30 {
		t.Errorf("frame rate = %d, want default 30", r.frameRate)
	}
}

func send(m launcher, keys ...tea.KeyMsg) launcher {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(launcher)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	down  = tea.KeyMsg{Type: tea.KeyDown}
	right = tea.KeyMsg{Type: tea.KeyRight}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
)

func TestLauncherFlow(t *testing.T) {
	m := newLauncher(Settings{Preset: pattern.Random, Density: 0.3, Slider: 1200, Theme: "classic", Cols: 50, Rows: 50})
	if m.presets[m.cursor] != pattern.Random {
		t.Fatalf("cursor should start on the initial preset")
	}

	m = send(m, down, enter)
	if m.state != stateConfig || m.settings.Preset != pattern.DieHard {
		t.Fatalf("state = %d preset = %q", m.state, m.settings.Preset)
	}

	m = send(m, right, right)
	if m.settings.Density < 0.39 || m.settings.Density > 0.41 {
		t.Errorf("density = %v, want 0.4", m.settings.Density)
	}

	m = send(m, down, enter, runes("9"), runes("9"), runes("9"), runes("9"), enter)
	if m.settings.Slider != 2000 {
		t.Errorf("typed slider should clamp to 2000, got %d", m.settings.Slider)
	}

	m = send(m, down, enter, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace}, runes("8"), enter)
	if m.settings.Cols != 8 {
		t.Errorf("cols = %d, want 8", m.settings.Cols)
	}

	m = send(m, down, down, enter)
	if !m.settings.HistoryTrail {
		t.Errorf("enter on trails should toggle it")
	}

	m = send(m, down, right)
	if m.settings.Theme == "classic" {
		t.Errorf("theme did not change")
	}

	m = send(m, runes("s"))
	if m.state != stateDone || m.canceled {
		t.Errorf("s should finish the launcher")
	}
}

func TestLauncherBackAndQuit(t *testing.T) {
	m := newLauncher(Settings{Preset: pattern.Empty, Slider: 1200})
	m = send(m, enter, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateMenu {
		t.Errorf("esc should return to the menu")
	}
	if !strings.Contains(m.View(), pattern.GosperGliderGun) {
		t.Errorf("menu should list presets")
	}
	m = send(m, runes("q"))
	if !m.canceled {
		t.Errorf("q on the menu should cancel")
	}
}
