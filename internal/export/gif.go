package export

import (
	"image"
	"image/color"
	"image/gif"
	"io"

	"github.com/san-kum/lifesim/internal/life"
)

// Recorder collects board frames for an animated GIF.
type Recorder struct {
	pal      Palette
	cellSize int
	trails   bool
	frames   []*image.Paletted
}

func NewRecorder(pal Palette, cellSize int, trails bool) *Recorder {
	if cellSize <= 0 {
		cellSize = 4
	}
	return &Recorder{pal: pal, cellSize: cellSize, trails: trails}
}

func (r *Recorder) palette() color.Palette {
	p := color.Palette{r.pal.Background, r.pal.Alive}
	for _, c := range r.pal.Trail {
		p = append(p, c)
	}
	return p
}

// Capture renders the current board as one frame.
func (r *Recorder) Capture(b *life.Board) {
	cs := r.cellSize
	img := image.NewPaletted(image.Rect(0, 0, b.Cols()*cs, b.Rows()*cs), r.palette())
	for i := 0; i < b.Len(); i++ {
		var ci uint8
		switch d, ok := b.Decay(i); {
		case b.Alive(i):
			ci = 1
		case r.trails && ok:
			ci = uint8(1 + min(d, TrailTiers))
		default:
			continue
		}
		c, _ := b.Coord(i)
		for py := 0; py < cs; py++ {
			for px := 0; px < cs; px++ {
				img.SetColorIndex(c.X*cs+px, c.Y*cs+py, ci)
			}
		}
	}
	r.frames = append(r.frames, img)
}

func (r *Recorder) Len() int { return len(r.frames) }

// WriteGIF encodes the captured frames with delay hundredths of a second
// between them.
func (r *Recorder) WriteGIF(w io.Writer, delay int) error {
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (r *Recorder) Reset() { r.frames = r.frames[:0] }
