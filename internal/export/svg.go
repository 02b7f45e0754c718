package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/lifesim/internal/life"
)

// BoardToSVG draws every live cell, and with trails every decaying dead cell,
// as a square of cellSize pixels.
func BoardToSVG(b *life.Board, pal Palette, cellSize int, trails bool) string {
	if b == nil {
		return ""
	}
	if cellSize <= 0 {
		cellSize = 10
	}
	width, height := b.Cols()*cellSize, b.Rows()*cellSize

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, Hex(pal.Background))

	if trails {
		for tier := TrailTiers; tier >= 1; tier-- {
			var cells []int
			for i := 0; i < b.Len(); i++ {
				if d, ok := b.Decay(i); ok && min(d, TrailTiers) == tier {
					cells = append(cells, i)
				}
			}
			writeGroup(&sb, b, cells, Hex(pal.TrailShade(tier)), cellSize)
		}
	}
	writeGroup(&sb, b, b.AliveIndices(), Hex(pal.Alive), cellSize)

	sb.WriteString("</svg>")
	return sb.String()
}

func writeGroup(sb *strings.Builder, b *life.Board, cells []int, fill string, cellSize int) {
	if len(cells) == 0 {
		return
	}
	fmt.Fprintf(sb, "<g fill=\"%s\">\n", fill)
	for _, idx := range cells {
		c, _ := b.Coord(idx)
		fmt.Fprintf(sb, "<rect x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\"/>\n", c.X*cellSize, c.Y*cellSize, cellSize, cellSize)
	}
	sb.WriteString("</g>\n")
}

// PopulationToSVG plots a population series as a polyline.
func PopulationToSVG(series []float64, width, height int, strokeColor string) string {
	if len(series) < 2 {
		return ""
	}

	minY, maxY := series[0], series[0]
	for _, v := range series {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2
	rangeX := float64(len(series) - 1)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i, v := range series {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
