package viz

import "strings"

const brailleBlank = 0x2800

// Dot bits of a braille character, indexed [row][col] within its 2x4 block.
var brailleDots = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas packs board cells into braille characters, 2 columns by 4 rows each.
type Canvas struct {
	Width, Height int
	cells         []rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([]rune, w*h)}
	c.Clear()
	return c
}

// Set marks the dot for board-relative cell (x, y); off-canvas dots are
// ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return
	}
	c.cells[(y/4)*c.Width+x/2] |= brailleDots[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = brailleBlank
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		b.WriteString(string(c.cells[row*c.Width : (row+1)*c.Width]))
		b.WriteByte('\n')
	}
	return b.String()
}

// Plot sets one dot per live cell of the viewport.
func (c *Canvas) Plot(g *Grid, vp viewport) {
	for x := vp.X; x < vp.X+vp.Cols; x++ {
		for y := vp.Y; y < vp.Y+vp.Rows; y++ {
			if g.At(x, y) == ShadeAlive {
				c.Set(x-vp.X, y-vp.Y)
			}
		}
	}
}
