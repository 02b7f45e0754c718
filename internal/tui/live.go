package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/lifesim/internal/life"
)

const (
	maxWidth    = 100
	maxHeight   = 40
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer prints the board as plain text while a headless run advances
// it. It is a sim.Observer; frames are dropped to hold frameRate.
type LiveRenderer struct {
	board     *life.Board
	out       io.Writer
	frameRate int
	lastFrame time.Time
	canvas    [][]rune
}

func NewLiveRenderer(b *life.Board, out io.Writer, frameRate int) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	h := min((b.Rows()+1)/2, maxHeight)
	canvas := make([][]rune, h)
	for i := range canvas {
		canvas[i] = make([]rune, min(b.Cols(), maxWidth))
	}
	return &LiveRenderer{
		board:     b,
		out:       out,
		frameRate: frameRate,
		canvas:    canvas,
	}
}

func (r *LiveRenderer) OnStep(step life.Step) {
	elapsed := time.Since(r.lastFrame)
	if elapsed < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()
	r.draw()
	r.render(step)
}

// draw packs two board rows into each text row with half blocks.
func (r *LiveRenderer) draw() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			top := r.alive(x, 2*y)
			bottom := r.alive(x, 2*y+1)
			switch {
			case top && bottom:
				r.canvas[y][x] = '█'
			case top:
				r.canvas[y][x] = '▀'
			case bottom:
				r.canvas[y][x] = '▄'
			default:
				r.canvas[y][x] = ' '
			}
		}
	}
}

func (r *LiveRenderer) alive(x, y int) bool {
	idx, ok := r.board.Index(x, y)
	return ok && r.board.Alive(idx)
}

func (r *LiveRenderer) render(step life.Step) {
	w := 0
	if len(r.canvas) > 0 {
		w = len(r.canvas[0])
	}
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  generation %d  population %d\n", step.Generation, step.Population))
	b.WriteString("  " + strings.Repeat("-", w) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", w) + "\n")
	b.WriteString(fmt.Sprintf("  +%d -%d\n", step.Births, step.Deaths))

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
