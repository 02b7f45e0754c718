package viz

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/export"
	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/pattern"
	"github.com/san-kum/lifesim/internal/scheduler"
	"github.com/san-kum/lifesim/internal/storage"
)

const (
	panelWidth      = 38
	historyCapacity = 600
	sliderStep      = 100
	gifCellSize     = 4
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// StepMsg is delivered once per scheduler tick.
type StepMsg struct{}

// Options configures a Model.
type Options struct {
	Board        *life.Board
	Library      *pattern.Library
	Preset       string
	Density      float64
	Slider       int
	HistoryTrail bool
	Theme        string
	AutosaveDir  string
	DataDir      string
	Logger       log.Logger
}

// Model is the interactive board editor. The board is only touched from
// Update; the scheduler goroutine just posts ticks.
type Model struct {
	board  *life.Board
	grid   *Grid
	lib    *pattern.Library
	logger log.Logger

	presetIdx int
	density   float64

	sched   *scheduler.Scheduler
	ticks   chan struct{}
	running bool
	slider  int

	zoom          Zoom
	cursor        life.Coord
	width, height int
	frame         int

	population []float64
	last       life.Step
	status     string
	showHelp   bool
	theme      Theme

	recorder    *export.Recorder
	recording   bool
	autosaveDir string
	dataDir     string
}

// NewModel builds a paused editor over opts.Board, applying opts.Preset when
// one is named.
func NewModel(opts Options) (Model, error) {
	if opts.Board == nil {
		return Model{}, errors.New("viz: no board")
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNopLogger()
	}
	if opts.Library == nil {
		opts.Library = pattern.NewLibrary("", opts.Logger)
	}
	if opts.Density <= 0 {
		opts.Density = life.DefaultDensity
	}
	if opts.Slider == 0 {
		opts.Slider = config.DefaultSlider
	}
	opts.Slider = min(max(opts.Slider, config.MinSlider), config.MaxSlider)
	if opts.AutosaveDir == "" {
		opts.AutosaveDir = config.DefaultAutosaveDir
	}
	if opts.DataDir == "" {
		opts.DataDir = config.DefaultDataDir
	}

	b := opts.Board
	presetIdx := 0
	if opts.Preset != "" {
		if err := opts.Library.Apply(opts.Preset, b, opts.Density); err != nil {
			return Model{}, err
		}
		for i, name := range pattern.Names() {
			if name == opts.Preset {
				presetIdx = i
			}
		}
	}
	b.SetHistoryTrail(opts.HistoryTrail)

	ticks := make(chan struct{}, 1)
	m := Model{
		board:       b,
		grid:        NewGrid(b),
		lib:         opts.Library,
		logger:      opts.Logger,
		presetIdx:   presetIdx,
		density:     opts.Density,
		ticks:       ticks,
		slider:      opts.Slider,
		cursor:      life.Coord{X: b.Cols() / 2, Y: b.Rows() / 2},
		width:       120,
		height:      40,
		population:  make([]float64, 0, historyCapacity),
		theme:       GetTheme(opts.Theme),
		autosaveDir: opts.AutosaveDir,
		dataDir:     opts.DataDir,
		status:      "ready",
	}
	m.sched = scheduler.FromSlider(func() {
		select {
		case ticks <- struct{}{}:
		default:
		}
	}, opts.Slider)
	m.recordPopulation()
	return m, nil
}

// Run opens the editor full screen and blocks until it quits.
func Run(opts Options) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	m.sched.Stop()
	return err
}

func waitTick(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return StepMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	m.sched.Start(context.Background())
	if !m.running {
		m.sched.Pause()
	}
	return waitTick(m.ticks)
}

// Update handles input events and steps the board.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case StepMsg:
		if m.running {
			m.step()
		}
		return m, waitTick(m.ticks)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.sched.Stop()
		return m, tea.Quit
	case " ":
		m.setRunning(!m.running)
	case "n":
		m.step()
	case "r":
		m.applyPreset(pattern.Random)
	case "c":
		m.applyPreset(pattern.Empty)
	case "p":
		m.cyclePreset(1)
	case "P":
		m.cyclePreset(-1)
	case "h":
		m.board.SetHistoryTrail(!m.board.HistoryTrail())
	case "u":
		if m.board.Undo() {
			m.grid.Sync(m.board)
			if m.board.HistoryTrail() {
				m.board.ShowHistory()
			}
			m.status = fmt.Sprintf("undo to generation %d", m.board.Generation())
		} else {
			m.status = "nothing to undo"
		}
	case "s":
		m.setRunning(false)
		m.autosave()
	case "l":
		m.setRunning(false)
		m.restore()
	case "t":
		m.theme = NextTheme(m.theme.Name)
	case "up", "k":
		m.moveCursor(0, -1)
	case "down", "j":
		m.moveCursor(0, 1)
	case "left":
		m.moveCursor(-1, 0)
	case "right":
		m.moveCursor(1, 0)
	case "enter", "f":
		m.board.Fill(m.cursor.X, m.cursor.Y)
	case "x", "backspace":
		m.board.Erase(m.cursor.X, m.cursor.Y)
	case ".":
		m.board.Toggle(m.cursor.X, m.cursor.Y)
	case "+", "=":
		m.zoom.In()
	case "-", "_":
		m.zoom.Out()
	case "[":
		m.setSlider(m.slider - sliderStep)
	case "]":
		m.setSlider(m.slider + sliderStep)
	case "g":
		m.toggleRecording()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action == tea.MouseActionRelease {
		return
	}
	w, h := m.boardArea()
	if msg.X >= w || msg.Y >= h {
		return
	}
	c, ok := m.viewport().cellAt(m.zoom, msg.X, msg.Y)
	if !ok {
		return
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		m.board.Fill(c.X, c.Y)
		m.cursor = c
	case tea.MouseButtonRight:
		m.board.Erase(c.X, c.Y)
		m.cursor = c
	}
}

func (m *Model) setRunning(on bool) {
	m.running = on
	if on {
		m.sched.Resume()
		m.status = "running"
		return
	}
	m.sched.Pause()
	m.status = "paused"
}

func (m *Model) step() {
	m.last = m.board.AdvanceGeneration()
	m.frame++
	m.recordPopulation()
	if m.recording {
		m.recorder.Capture(m.board)
	}
}

func (m *Model) recordPopulation() {
	m.population = append(m.population, float64(m.board.Population()))
	if len(m.population) > historyCapacity {
		m.population = m.population[1:]
	}
}

func (m *Model) applyPreset(name string) {
	if err := m.lib.Apply(name, m.board, m.density); err != nil {
		level.Error(m.logger).Log("msg", "apply preset", "preset", name, "err", err)
		m.status = err.Error()
		return
	}
	for i, n := range pattern.Names() {
		if n == name {
			m.presetIdx = i
		}
	}
	m.last = life.Step{Population: m.board.Population()}
	m.population = m.population[:0]
	m.recordPopulation()
	m.status = "loaded " + name
}

func (m *Model) cyclePreset(dir int) {
	names := pattern.Names()
	m.presetIdx = (m.presetIdx + dir + len(names)) % len(names)
	m.applyPreset(names[m.presetIdx])
}

func (m *Model) moveCursor(dx, dy int) {
	m.cursor.X = clamp(m.cursor.X+dx, 0, m.board.Cols()-1)
	m.cursor.Y = clamp(m.cursor.Y+dy, 0, m.board.Rows()-1)
}

func (m *Model) setSlider(v int) {
	m.slider = min(max(v, config.MinSlider), config.MaxSlider)
	m.sched.SetSlider(m.slider)
}

func (m *Model) autosave() {
	path, err := storage.Autosave(m.autosaveDir, m.board)
	if err != nil {
		level.Error(m.logger).Log("msg", "autosave", "err", err)
		m.status = "save failed: " + err.Error()
		return
	}
	level.Info(m.logger).Log("msg", "autosave", "path", path, "population", m.board.Population())
	m.status = "saved " + path
}

func (m *Model) restore() {
	stats, err := pattern.Load(m.autosaveDir, m.board, m.logger)
	if err != nil {
		level.Error(m.logger).Log("msg", "restore", "err", err)
		m.status = "load failed: " + err.Error()
		return
	}
	m.population = m.population[:0]
	m.recordPopulation()
	m.status = fmt.Sprintf("loaded %d cells (%d skipped)", stats.Applied, stats.Skipped)
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recorder = export.NewRecorder(m.theme.Cells, gifCellSize, m.board.HistoryTrail())
		m.recorder.Capture(m.board)
		m.recording = true
		m.status = "recording"
		return
	}
	m.recording = false
	path, err := m.saveGIF()
	if err != nil {
		level.Error(m.logger).Log("msg", "save gif", "err", err)
		m.status = "gif failed: " + err.Error()
		return
	}
	level.Info(m.logger).Log("msg", "saved gif", "path", path, "frames", m.recorder.Len())
	m.status = "saved " + path
}

func (m *Model) saveGIF() (string, error) {
	if err := os.MkdirAll(m.dataDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(m.dataDir, fmt.Sprintf("life_%d.gif", time.Now().Unix()))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	delay := max(int(m.sched.Interval()/(10*time.Millisecond)), 2)
	if err := m.recorder.WriteGIF(f, delay); err != nil {
		return "", err
	}
	return path, nil
}

// boardArea is the character area left of the side panel.
func (m Model) boardArea() (int, int) {
	return max(m.width-panelWidth-1, 8), max(m.height-1, 4)
}

func (m Model) viewport() viewport {
	w, h := m.boardArea()
	return fit(m.zoom, w, h, m.grid, m.cursor)
}

// View renders the board and the side panel.
func (m Model) View() string {
	vp := m.viewport()
	boardView := renderBoard(m.grid, m.theme, m.zoom, vp, m.cursor, !m.running)

	var s strings.Builder
	s.WriteString(headerStyle.Render(GradientText("GAME OF LIFE", m.theme.Primary, m.theme.Secondary)) + "\n")

	status := StatusPaused.Render("⏸ PAUSED")
	if m.running {
		status = StatusRunning.Render(AnimatedSpinner(m.frame) + " RUNNING")
	}
	if m.recording {
		status += "  " + StatusRecording.Render("● REC")
	}
	s.WriteString(status + "\n\n")

	s.WriteString(row("Generation", fmt.Sprintf("%d", m.board.Generation())))
	s.WriteString(row("Population", fmt.Sprintf("%d", m.board.Population())))
	s.WriteString(row("Births", fmt.Sprintf("+%d / -%d", m.last.Births, m.last.Deaths)))
	s.WriteString(row("Preset", pattern.Names()[m.presetIdx]))
	s.WriteString(row("Interval", m.sched.Interval().String()))
	speed := float64(m.slider-config.MinSlider) / float64(config.MaxSlider-config.MinSlider)
	s.WriteString(MetricLabel.Render("Speed") + ProgressBar(speed, 16) + "\n")
	s.WriteString(row("Zoom", fmt.Sprintf("%+d", m.zoom.Level())))
	trail := "off"
	if m.board.HistoryTrail() {
		trail = "on"
	}
	s.WriteString(row("Trails", trail))
	s.WriteString(row("Theme", m.theme.Name))
	s.WriteString(MetricLabel.Render("Cursor") + cursorStyle.Render(fmt.Sprintf("(%d, %d)", m.cursor.X, m.cursor.Y)) + "\n")
	s.WriteString("\n" + Separator(panelWidth-4) + "\n")

	if len(m.population) > 1 {
		chart := asciigraph.Plot(m.population, asciigraph.Height(5), asciigraph.Width(panelWidth-12), asciigraph.Caption("Population"))
		s.WriteString(graphStyle.Render(chart) + "\n")
		s.WriteString(SparklineChart(m.population[max(len(m.population)-(panelWidth-4), 0):], panelWidth-4) + "\n")
	}
	if m.status != "" {
		s.WriteString("\n" + Subtle.Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Run N:Step R:Random C:Clear\nP:Preset H:Trail U:Undo S:Save\n[ ]:Speed +/-:Zoom ?:Help Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, boardView, panelStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

func row(label, value string) string {
	return MetricLabel.Render(label) + MetricValue.Render(value) + "\n"
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Run/Pause                ║
║  N        - Advance one generation   ║
║  R / C    - Random board / Clear     ║
║  P / ⇧P   - Next / previous preset   ║
║  H        - Toggle history trail     ║
║  U        - Undo one generation      ║
║  S / L    - Save / load autosave     ║
║  Arrows   - Move cursor              ║
║  Enter/X  - Fill / erase cell        ║
║  .        - Toggle cell              ║
║  Mouse    - Left fills, right erases ║
║  + / -    - Zoom in / out            ║
║  [ / ]    - Slower / faster          ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`
