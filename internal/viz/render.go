package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/lifesim/internal/export"
	"github.com/san-kum/lifesim/internal/life"
)

// MaxZoom bounds the zoom count in both directions.
const MaxZoom = 5

// Zoom is a bounded zoom count. Zero draws two cells per character, positive
// levels draw each cell as a 2*level x level block, negative levels switch to
// a braille overview.
type Zoom struct {
	level int
}

func (z *Zoom) In() {
	z.level = min(z.level+1, MaxZoom)
}

func (z *Zoom) Out() {
	z.level = max(z.level-1, -MaxZoom)
}

func (z Zoom) Level() int { return z.level }

// cellsPerChar returns how many cells one terminal character spans, as
// numerator/denominator per axis.
func (z Zoom) scale() (cx, cy, cw, ch int) {
	switch {
	case z.level < 0:
		return 2, 4, 1, 1
	case z.level == 0:
		return 1, 2, 1, 1
	default:
		return 1, 1, 2 * z.level, z.level
	}
}

// viewport is the window of the board shown on screen.
type viewport struct {
	X, Y       int
	Cols, Rows int
}

// fit sizes a viewport for a w x h character area and centers it on the
// cursor, keeping it inside the board.
func fit(z Zoom, w, h int, g *Grid, cursor life.Coord) viewport {
	cx, cy, cw, ch := z.scale()
	vp := viewport{
		Cols: min(max(w, 1)*cx/cw, g.Cols()),
		Rows: min(max(h, 1)*cy/ch, g.Rows()),
	}
	vp.Cols = max(vp.Cols, 1)
	vp.Rows = max(vp.Rows, 1)
	vp.X = clamp(cursor.X-vp.Cols/2, 0, g.Cols()-vp.Cols)
	vp.Y = clamp(cursor.Y-vp.Rows/2, 0, g.Rows()-vp.Rows)
	return vp
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

// cellAt maps a character position inside the board area to a cell.
func (vp viewport) cellAt(z Zoom, sx, sy int) (life.Coord, bool) {
	if sx < 0 || sy < 0 {
		return life.Coord{}, false
	}
	cx, cy, cw, ch := z.scale()
	x := vp.X + sx*cx/cw
	y := vp.Y + sy*cy/ch
	if x >= vp.X+vp.Cols || y >= vp.Y+vp.Rows {
		return life.Coord{}, false
	}
	return life.Coord{X: x, Y: y}, true
}

type painter struct {
	theme  Theme
	styles map[[2]string]lipgloss.Style
}

func newPainter(t Theme) *painter {
	return &painter{theme: t, styles: make(map[[2]string]lipgloss.Style)}
}

func (p *painter) color(s Shade, cursor bool) string {
	if cursor {
		return string(p.theme.Accent)
	}
	pal := p.theme.Cells
	switch {
	case s == ShadeAlive:
		return export.Hex(pal.Alive)
	case s >= ShadeTrail:
		return export.Hex(pal.TrailShade(s.Decay()))
	}
	return export.Hex(pal.Dead)
}

func (p *painter) style(fg, bg string) lipgloss.Style {
	key := [2]string{fg, bg}
	st, ok := p.styles[key]
	if !ok {
		st = lipgloss.NewStyle().Foreground(lipgloss.Color(fg)).Background(lipgloss.Color(bg))
		p.styles[key] = st
	}
	return st
}

// line accumulates runs of identically styled glyphs.
type line struct {
	sb      strings.Builder
	run     strings.Builder
	fg, bg  string
	painter *painter
}

func (l *line) put(glyph, fg, bg string) {
	if l.run.Len() > 0 && (fg != l.fg || bg != l.bg) {
		l.flush()
	}
	l.fg, l.bg = fg, bg
	l.run.WriteString(glyph)
}

func (l *line) flush() {
	if l.run.Len() == 0 {
		return
	}
	l.sb.WriteString(l.painter.style(l.fg, l.bg).Render(l.run.String()))
	l.run.Reset()
}

func (l *line) String() string {
	l.flush()
	return l.sb.String()
}

// renderBoard draws the viewport of g. The cursor cell is drawn in the
// theme's accent color.
func renderBoard(g *Grid, t Theme, z Zoom, vp viewport, cursor life.Coord, showCursor bool) string {
	if z.Level() < 0 {
		return renderOverview(g, t, vp)
	}
	p := newPainter(t)
	isCursor := func(x, y int) bool { return showCursor && x == cursor.X && y == cursor.Y }

	var out strings.Builder
	if z.Level() == 0 {
		for y := vp.Y; y < vp.Y+vp.Rows; y += 2 {
			l := &line{painter: p}
			for x := vp.X; x < vp.X+vp.Cols; x++ {
				top := p.color(g.At(x, y), isCursor(x, y))
				bottom := p.color(ShadeDead, false)
				if y+1 < vp.Y+vp.Rows {
					bottom = p.color(g.At(x, y+1), isCursor(x, y+1))
				}
				l.put("▀", top, bottom)
			}
			out.WriteString(l.String())
			out.WriteByte('\n')
		}
		return out.String()
	}

	w, h := 2*z.Level(), z.Level()
	block := strings.Repeat("█", w)
	for y := vp.Y; y < vp.Y+vp.Rows; y++ {
		l := &line{painter: p}
		for x := vp.X; x < vp.X+vp.Cols; x++ {
			col := p.color(g.At(x, y), isCursor(x, y))
			l.put(block, col, col)
		}
		row := l.String()
		for i := 0; i < h; i++ {
			out.WriteString(row)
			out.WriteByte('\n')
		}
	}
	return out.String()
}

// renderOverview plots live cells as braille dots, eight cells per character.
func renderOverview(g *Grid, t Theme, vp viewport) string {
	cv := NewCanvas((vp.Cols+1)/2, (vp.Rows+3)/4)
	cv.Plot(g, vp)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(export.Hex(t.Cells.Alive))).
		Render(strings.TrimRight(cv.String(), "\n")) + "\n"
}
