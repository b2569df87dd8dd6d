package banner

import (
	"context"
	"image/color"
	"time"

	"github.com/pkg/errors"
	"github.com/qubic/go-mempool-matrix/entities"
	"tinygo.org/x/tinyfont"
)

// BitcoinOrange is the default text color.
var BitcoinOrange = entities.RGB{R: 242, G: 169, B: 0}

type Display interface {
	SetPixel(x, y int, c entities.RGB)
	Show() error
	Shape() (width, height int)
}

// Scroller moves text from the right edge of the display to the left until it is gone.
type Scroller struct {
	display Display
	font    tinyfont.Fonter
	color   entities.RGB
	step    time.Duration
}

func NewScroller(display Display, step time.Duration) *Scroller {
	return &Scroller{
		display: display,
		font:    &tinyfont.TomThumb,
		color:   BitcoinOrange,
		step:    step,
	}
}

// Scroll blocks until the text has passed or ctx is done. The display is left blank.
func (s *Scroller) Scroll(ctx context.Context, text string) error {
	width, height := s.display.Shape()
	canvas := s.render(text, width, height)

	for offset := 0; offset+width <= canvas.width; offset++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				c := entities.Off
				if canvas.lit(x+offset, y) {
					c = s.color
				}
				s.display.SetPixel(x, y, c)
			}
		}
		if err := s.display.Show(); err != nil {
			return errors.Wrap(err, "showing banner frame")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.step):
		}
	}
	return nil
}

// render draws the text into a canvas with one blank display width on each side.
func (s *Scroller) render(text string, width, height int) *canvas {
	_, textWidth := tinyfont.LineWidth(s.font, text)
	c := newCanvas(int(textWidth)+2*width, height)
	baseline := int16((height + 5) / 2)
	tinyfont.WriteLine(c, s.font, int16(width), baseline, text, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	return c
}

// canvas is a monochrome tinyfont.Displayer.
type canvas struct {
	width  int
	height int
	bits   []bool
}

func newCanvas(width, height int) *canvas {
	return &canvas{width: width, height: height, bits: make([]bool, width*height)}
}

func (c *canvas) Size() (int16, int16) {
	return int16(c.width), int16(c.height)
}

func (c *canvas) SetPixel(x, y int16, col color.RGBA) {
	if x < 0 || y < 0 || int(x) >= c.width || int(y) >= c.height {
		return
	}
	c.bits[int(y)*c.width+int(x)] = col.A > 0
}

func (c *canvas) Display() error {
	return nil
}

func (c *canvas) lit(x, y int) bool {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return false
	}
	return c.bits[y*c.width+x]
}
