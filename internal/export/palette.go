package export

import (
	"fmt"
	"image/color"
)

// TrailTiers is the number of distinct trail shades. Decay values beyond it
// share the faintest shade.
const TrailTiers = 5

// Palette colors a board: live cells, dead cells and fading trails, from the
// most recent (decay 1) to the oldest.
type Palette struct {
	Background color.RGBA
	Alive      color.RGBA
	Dead       color.RGBA
	Trail      [TrailTiers]color.RGBA
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 0xff} }

// Classic is the yellow-on-grey scheme of the desktop editor.
var Classic = Palette{
	Background: rgb(150, 150, 161),
	Alive:      rgb(240, 201, 2),
	Dead:       rgb(150, 150, 161),
	Trail: [TrailTiers]color.RGBA{
		rgb(224, 157, 1),
		rgb(191, 134, 0),
		rgb(156, 109, 0),
		rgb(133, 93, 0),
		rgb(115, 81, 0),
	},
}

// TrailShade returns the color for a decay value of 1 or more.
func (p Palette) TrailShade(decay int) color.RGBA {
	tier := min(max(decay, 1), TrailTiers)
	return p.Trail[tier-1]
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Fade builds a trail ramp from the alive color toward the dead color.
func Fade(alive, dead color.RGBA) [TrailTiers]color.RGBA {
	var out [TrailTiers]color.RGBA
	for i := range out {
		t := float64(i+1) / float64(TrailTiers+1)
		out[i] = color.RGBA{
			R: lerp(alive.R, dead.R, t),
			G: lerp(alive.G, dead.G, t),
			B: lerp(alive.B, dead.B, t),
			A: 0xff,
		}
	}
	return out
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}
