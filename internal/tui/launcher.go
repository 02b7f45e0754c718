package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/pattern"
	"github.com/san-kum/lifesim/internal/viz"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

var presetInfo = map[string]string{
	pattern.Empty:                     "blank board",
	pattern.Random:                    "random fill",
	pattern.DieHard:                   "vanishes after 130 generations",
	pattern.RPentomino:                "methuselah",
	pattern.BlockLayingSwitchEngine:   "infinite growth",
	pattern.BlockLayingSwitchEngineV2: "infinite growth, 5x5 seed",
	pattern.GosperGliderGun:           "glider gun",
}

// Settings is what the launcher hands to the editor.
type Settings struct {
	Preset       string
	Density      float64
	Slider       int
	HistoryTrail bool
	Theme        string
	Cols, Rows   int
}

type state int

const (
	stateMenu state = iota
	stateConfig
	stateDone
)

const (
	paramDensity = "density"
	paramSpeed   = "speed"
	paramCols    = "cols"
	paramRows    = "rows"
	paramTrails  = "trails"
	paramTheme   = "theme"
)

var paramNames = []string{paramDensity, paramSpeed, paramCols, paramRows, paramTrails, paramTheme}

type launcher struct {
	state    state
	cursor   int
	presets  []string
	settings Settings

	paramCursor int
	editing     bool
	editBuf     string
	canceled    bool
}

func newLauncher(initial Settings) launcher {
	presets := pattern.Names()
	cursor := 0
	for i, p := range presets {
		if p == initial.Preset {
			cursor = i
		}
	}
	return launcher{state: stateMenu, cursor: cursor, presets: presets, settings: initial}
}

// Launch shows the pattern menu and settings screen. It reports false when
// the user quit without starting.
func Launch(initial Settings) (Settings, bool, error) {
	final, err := tea.NewProgram(newLauncher(initial)).Run()
	if err != nil {
		return initial, false, err
	}
	l := final.(launcher)
	return l.settings, l.state == stateDone && !l.canceled, nil
}

func (m launcher) Init() tea.Cmd { return nil }

func (m launcher) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case stateMenu:
			return m.menuKey(msg)
		case stateConfig:
			return m.configKey(msg)
		}
	}
	return m, nil
}

func (m launcher) menuKey(msg tea.KeyMsg) (launcher, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.canceled = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.settings.Preset = m.presets[m.cursor]
		m.state = stateConfig
		m.paramCursor = 0
	}
	return m, nil
}

func (m launcher) configKey(msg tea.KeyMsg) (launcher, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			m.commitEdit()
			m.editing = false
			m.editBuf = ""
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		m.canceled = true
		return m, tea.Quit
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(paramNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		switch name := paramNames[m.paramCursor]; name {
		case paramTrails, paramTheme:
			m.adjust(1)
		default:
			m.editing = true
			m.editBuf = m.value(name)
		}
	case "s":
		m.state = stateDone
		return m, tea.Quit
	case "left", "h":
		m.adjust(-1)
	case "right", "l":
		m.adjust(1)
	}
	return m, nil
}

func (m *launcher) adjust(dir int) {
	s := &m.settings
	switch paramNames[m.paramCursor] {
	case paramDensity:
		s.Density = min(max(s.Density+0.05*float64(dir), 0), 1)
	case paramSpeed:
		s.Slider = min(max(s.Slider+100*dir, config.MinSlider), config.MaxSlider)
	case paramCols:
		s.Cols = max(s.Cols+10*dir, 1)
	case paramRows:
		s.Rows = max(s.Rows+10*dir, 1)
	case paramTrails:
		s.HistoryTrail = !s.HistoryTrail
	case paramTheme:
		names := viz.ThemeNames()
		i := 0
		for j, n := range names {
			if n == s.Theme {
				i = j
			}
		}
		s.Theme = names[(i+dir+len(names))%len(names)]
	}
}

func (m *launcher) commitEdit() {
	s := &m.settings
	switch paramNames[m.paramCursor] {
	case paramDensity:
		if v, err := strconv.ParseFloat(m.editBuf, 64); err == nil && v >= 0 && v <= 1 {
			s.Density = v
		}
	case paramSpeed:
		if v, err := strconv.Atoi(m.editBuf); err == nil {
			s.Slider = min(max(v, config.MinSlider), config.MaxSlider)
		}
	case paramCols:
		if v, err := strconv.Atoi(m.editBuf); err == nil && v > 0 {
			s.Cols = v
		}
	case paramRows:
		if v, err := strconv.Atoi(m.editBuf); err == nil && v > 0 {
			s.Rows = v
		}
	}
}

func (m launcher) value(name string) string {
	s := m.settings
	switch name {
	case paramDensity:
		return fmt.Sprintf("%.2f", s.Density)
	case paramSpeed:
		return strconv.Itoa(s.Slider)
	case paramCols:
		return strconv.Itoa(s.Cols)
	case paramRows:
		return strconv.Itoa(s.Rows)
	case paramTrails:
		if s.HistoryTrail {
			return "on"
		}
		return "off"
	case paramTheme:
		return s.Theme
	}
	return ""
}

func (m launcher) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	}
	return ""
}

func (m launcher) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("g a m e   o f   l i f e") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-32s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-32s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter configure   q quit") + "\n")

	return b.String()
}

func (m launcher) viewConfig() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(m.settings.Preset) + "  " + dim.Render(presetInfo[m.settings.Preset]) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 30)) + "\n\n")

	for i, name := range paramNames {
		val := fmt.Sprintf("%10s", m.value(name))
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%10s", m.editBuf+"▋")
		}
		if i == m.paramCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-10s", name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-10s", name)) + dim.Render(val) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  enter edit  s start  esc back") + "\n")

	return b.String()
}
