//go:build raylib

package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/lifesim/internal/config"
)

// drawBoard paints every visible cell; live cells in the alive color, trail
// cells by decay tier, the rest as dead.
func (a *App) drawBoard() {
	l := a.layout
	vw, vh := l.visible()
	rl.DrawRectangle(0, 0, int32(vw*l.cellPx), int32(vh*l.cellPx), toRL(a.Palette.Background))

	gap := 0
	if l.cellPx >= 6 {
		gap = 1
	}
	size := int32(l.cellPx - gap)
	for x := l.originX; x < l.originX+vw; x++ {
		for y := l.originY; y < l.originY+vh; y++ {
			idx, _ := a.Board.Index(x, y)
			col := a.Palette.Dead
			if a.Board.Alive(idx) {
				col = a.Palette.Alive
			} else if a.Board.HistoryTrail() {
				if d, ok := a.Board.Decay(idx); ok {
					col = a.Palette.TrailShade(d)
				}
			}
			px, py := l.pixel(x, y)
			rl.DrawRectangle(int32(px), int32(py), size, size, toRL(col))
		}
	}
}

func (a *App) drawHUD() {
	x := a.layout.viewW + 20
	a.drawText("lifesim", x, 20, 24, ColSelect)
	a.drawText(a.Presets[a.Selected], x, 50, 14, ColText)

	status, col := "RUNNING", ColAccent
	if !a.Running {
		status, col = "PAUSED", ColTextDim
	}
	a.drawText(status, x, 80, 16, col)

	trail := "off"
	if a.Board.HistoryTrail() {
		trail = "on"
	}
	lines := []string{
		fmt.Sprintf("generation  %d", a.Board.Generation()),
		fmt.Sprintf("population  %d", a.Board.Population()),
		fmt.Sprintf("births      %d", a.last.Births),
		fmt.Sprintf("deaths      %d", a.last.Deaths),
		fmt.Sprintf("interval    %v", config.IntervalFromSlider(a.Slider)),
		fmt.Sprintf("cell        %dpx", a.layout.cellPx),
		fmt.Sprintf("trails      %s", trail),
	}
	y := 120
	for _, s := range lines {
		a.drawText(s, x, y, 14, ColText)
		y += 22
	}
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), x, y+10, 12, ColTextDim)
	if a.Status != "" {
		a.drawText(a.Status, x, y+32, 12, ColTextDim)
	}

	help := []string{
		"[SPACE] RUN  [N] STEP",
		"[R] RANDOM  [C] CLEAR  [P] PRESET",
		"[H] TRAILS  [U] UNDO  [S] SAVE",
		"[ ] SPEED  +/- ZOOM",
		"[ESC] MENU  [Q] QUIT",
	}
	y = a.layout.viewH - 20*len(help) - 10
	for _, s := range help {
		a.drawText(s, x, y, 12, ColTextDim)
		y += 20
	}
}

func (a *App) drawMenu() {
	a.drawText("lifesim", 50, 50, 40, ColSelect)
	a.drawText("Select Pattern", 50, 100, 16, ColTextDim)

	y := 160
	for i, name := range a.Presets {
		if i == a.Selected {
			a.drawText(fmt.Sprintf("> %s", name), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %s", name), 50, y, 20, ColText)
		}
		y += 28
	}

	a.drawText("ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT", 50, y+40, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
