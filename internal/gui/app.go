//go:build raylib

package gui

import (
	"fmt"
	"image/color"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/export"
	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/pattern"
	"github.com/san-kum/lifesim/internal/storage"
)

const (
	panelPx    = 280
	maxCatchUp = 4
)

// Theme colors for the chrome around the board.
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(240, 201, 2, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

type App struct {
	Board    *life.Board
	Library  *pattern.Library
	Logger   log.Logger
	Palette  export.Palette
	Running  bool
	InMenu   bool
	Presets  []string
	Selected int
	Density  float64
	Slider   int
	Status   string
	Font     rl.Font

	layout      layout
	acc         time.Duration
	last        life.Step
	autosaveDir string
}

func toRL(c color.RGBA) rl.Color { return rl.NewColor(c.R, c.G, c.B, c.A) }

// initWindow opens a window sized for the board plus the side panel.
func initWindow(w, h int) {
	rl.InitWindow(int32(w), int32(h), "lifesim")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// NewApp creates the editor. The window must already be open.
func NewApp(opts Options) (*App, error) {
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
	if opts.CellPixels <= 0 {
		opts.CellPixels = config.DefaultCellSize / config.DefaultScale
	}
	if opts.Palette == (export.Palette{}) {
		opts.Palette = export.Classic
	}
	if opts.AutosaveDir == "" {
		opts.AutosaveDir = config.DefaultAutosaveDir
	}

	b := opts.Board
	presets := pattern.Names()
	selected := 0
	for i, name := range presets {
		if name == opts.Preset {
			selected = i
		}
	}
	if opts.Preset != "" {
		if err := opts.Library.Apply(opts.Preset, b, opts.Density); err != nil {
			return nil, err
		}
	}
	b.SetHistoryTrail(opts.HistoryTrail)

	w, h := boardPixels(b, opts.CellPixels)
	return &App{
		Board:       b,
		Library:     opts.Library,
		Logger:      opts.Logger,
		Palette:     opts.Palette,
		InMenu:      opts.Menu,
		Presets:     presets,
		Selected:    selected,
		Density:     opts.Density,
		Slider:      min(max(opts.Slider, config.MinSlider), config.MaxSlider),
		Font:        rl.GetFontDefault(),
		layout:      newLayout(b.Cols(), b.Rows(), opts.CellPixels, w, h),
		autosaveDir: opts.AutosaveDir,
	}, nil
}

// boardPixels is the board area size, capped to a reasonable window.
func boardPixels(b *life.Board, cellPx int) (int, int) {
	return min(b.Cols()*cellPx, 1280), min(b.Rows()*cellPx, 900)
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	if opts.Board == nil {
		return fmt.Errorf("gui: no board")
	}
	if opts.CellPixels <= 0 {
		opts.CellPixels = config.DefaultCellSize / config.DefaultScale
	}
	w, h := boardPixels(opts.Board, opts.CellPixels)
	initWindow(w+panelPx, max(h, 480))
	defer rl.CloseWindow()

	app, err := NewApp(opts)
	if err != nil {
		return err
	}
	for !rl.WindowShouldClose() {
		if app.Update() {
			break
		}
		app.Draw()
	}
	return nil
}

// Update handles input and advances the board. It reports true when the
// user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return true
	}

	if a.InMenu {
		a.updateMenu()
		return false
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.InMenu = true
		a.Running = false
		return false
	}

	a.handleKeys()
	a.handleMouse()

	if a.Running {
		a.acc += time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
		interval := config.IntervalFromSlider(a.Slider)
		for n := 0; a.acc >= interval && n < maxCatchUp; n++ {
			a.acc -= interval
			a.last = a.Board.AdvanceGeneration()
		}
		if a.acc > interval {
			a.acc = 0
		}
	}
	return false
}

func (a *App) updateMenu() {
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.Selected = (a.Selected + 1) % len(a.Presets)
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.Selected = (a.Selected - 1 + len(a.Presets)) % len(a.Presets)
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) {
		a.apply(a.Presets[a.Selected])
		a.InMenu = false
	}
}

func (a *App) handleKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.Running = !a.Running
	case rl.IsKeyPressed(rl.KeyN):
		a.last = a.Board.AdvanceGeneration()
	case rl.IsKeyPressed(rl.KeyR):
		a.apply(pattern.Random)
	case rl.IsKeyPressed(rl.KeyC):
		a.apply(pattern.Empty)
	case rl.IsKeyPressed(rl.KeyP):
		a.Selected = (a.Selected + 1) % len(a.Presets)
		a.apply(a.Presets[a.Selected])
	case rl.IsKeyPressed(rl.KeyH):
		a.Board.SetHistoryTrail(!a.Board.HistoryTrail())
	case rl.IsKeyPressed(rl.KeyU):
		a.Board.Undo()
		if a.Board.HistoryTrail() {
			a.Board.ShowHistory()
		}
	case rl.IsKeyPressed(rl.KeyS):
		a.Running = false
		path, err := storage.Autosave(a.autosaveDir, a.Board)
		if err != nil {
			level.Error(a.Logger).Log("msg", "autosave", "err", err)
			a.Status = "save failed"
			return
		}
		level.Info(a.Logger).Log("msg", "autosave", "path", path)
		a.Status = "saved " + path
	case rl.IsKeyPressed(rl.KeyLeftBracket):
		a.Slider = max(a.Slider-100, config.MinSlider)
	case rl.IsKeyPressed(rl.KeyRightBracket):
		a.Slider = min(a.Slider+100, config.MaxSlider)
	case rl.IsKeyPressed(rl.KeyEqual):
		a.layout.zoom(1)
	case rl.IsKeyPressed(rl.KeyMinus):
		a.layout.zoom(-1)
	case rl.IsKeyPressed(rl.KeyLeft):
		a.layout.pan(-1, 0)
	case rl.IsKeyPressed(rl.KeyRight):
		a.layout.pan(1, 0)
	case rl.IsKeyPressed(rl.KeyUp):
		a.layout.pan(0, -1)
	case rl.IsKeyPressed(rl.KeyDown):
		a.layout.pan(0, 1)
	}
}

func (a *App) handleMouse() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.layout.zoom(int(wheel))
	}
	c, ok := a.layout.cellAt(int(rl.GetMouseX()), int(rl.GetMouseY()))
	if !ok {
		return
	}
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		a.Board.Fill(c.X, c.Y)
	} else if rl.IsMouseButtonDown(rl.MouseRightButton) {
		a.Board.Erase(c.X, c.Y)
	}
}

func (a *App) apply(name string) {
	if err := a.Library.Apply(name, a.Board, a.Density); err != nil {
		level.Error(a.Logger).Log("msg", "apply preset", "preset", name, "err", err)
		a.Status = err.Error()
		return
	}
	a.last = life.Step{Population: a.Board.Population()}
	a.Status = "loaded " + name
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InMenu {
		a.drawMenu()
	} else {
		a.drawBoard()
		a.drawHUD()
	}

	rl.EndDrawing()
}
