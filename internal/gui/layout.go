package gui

import "github.com/san-kum/lifesim/internal/life"

const (
	minCellPx = 3
	maxCellPx = 40
)

// layout maps between board cells and window pixels. The board is drawn
// from the top-left corner; origin is the first visible cell.
type layout struct {
	cellPx       int
	originX      int
	originY      int
	viewW, viewH int
	cols, rows   int
}

func newLayout(cols, rows, cellPx, viewW, viewH int) layout {
	l := layout{cols: cols, rows: rows, viewW: viewW, viewH: viewH}
	l.setCellPx(cellPx)
	return l
}

// visible is the number of whole cells on screen per axis.
func (l layout) visible() (int, int) {
	return min(l.viewW/l.cellPx, l.cols), min(l.viewH/l.cellPx, l.rows)
}

func (l layout) cellAt(px, py int) (life.Coord, bool) {
	if px < 0 || py < 0 || px >= l.viewW || py >= l.viewH {
		return life.Coord{}, false
	}
	x, y := l.originX+px/l.cellPx, l.originY+py/l.cellPx
	if x >= l.cols || y >= l.rows {
		return life.Coord{}, false
	}
	return life.Coord{X: x, Y: y}, true
}

// pixel is the top-left corner of cell (x, y) on screen.
func (l layout) pixel(x, y int) (int, int) {
	return (x - l.originX) * l.cellPx, (y - l.originY) * l.cellPx
}

func (l *layout) setCellPx(px int) {
	l.cellPx = min(max(px, minCellPx), maxCellPx)
	l.pan(0, 0)
}

// zoom scales the cells around the center of the view.
func (l *layout) zoom(delta int) {
	vw, vh := l.visible()
	cx, cy := l.originX+vw/2, l.originY+vh/2
	l.setCellPx(l.cellPx + delta)
	vw, vh = l.visible()
	l.originX, l.originY = cx-vw/2, cy-vh/2
	l.pan(0, 0)
}

func (l *layout) pan(dx, dy int) {
	vw, vh := l.visible()
	l.originX = min(max(l.originX+dx, 0), l.cols-vw)
	l.originY = min(max(l.originY+dy, 0), l.rows-vh)
}
