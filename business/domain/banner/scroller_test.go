package banner

import (
	"context"
	"testing"

	"github.com/qubic/go-mempool-matrix/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tinygo.org/x/tinyfont"
)

type FakeDisplay struct {
	width, height int
	pixels        map[[2]int]entities.RGB
	frames        []int // lit pixels per frame
	outOfBounds   int
}

func newFakeDisplay(width, height int) *FakeDisplay {
	return &FakeDisplay{width: width, height: height, pixels: map[[2]int]entities.RGB{}}
}

func (f *FakeDisplay) SetPixel(x, y int, c entities.RGB) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		f.outOfBounds++
		return
	}
	f.pixels[[2]int{x, y}] = c
}

func (f *FakeDisplay) Show() error {
	lit := 0
	for _, c := range f.pixels {
		if c != entities.Off {
			lit++
		}
	}
	f.frames = append(f.frames, lit)
	return nil
}

func (f *FakeDisplay) Shape() (int, int) {
	return f.width, f.height
}

func TestScroller_Scroll(t *testing.T) {
	display := newFakeDisplay(17, 7)
	scroller := NewScroller(display, 0)

	text := "New Block 1"
	require.NoError(t, scroller.Scroll(context.Background(), text))

	_, textWidth := tinyfont.LineWidth(&tinyfont.TomThumb, text)
	require.Len(t, display.frames, int(textWidth)+17+1)
	assert.Zero(t, display.frames[0], "text starts right of the display")
	assert.Zero(t, display.frames[len(display.frames)-1], "text ends left of the display")
	assert.Zero(t, display.outOfBounds)

	maxLit := 0
	for _, lit := range display.frames {
		maxLit = max(maxLit, lit)
	}
	assert.Positive(t, maxLit)
}

func TestScroller_Scroll_usesColor(t *testing.T) {
	display := newFakeDisplay(17, 7)
	scroller := NewScroller(display, 0)
	canvas := scroller.render("X", 17, 7)

	lit := 0
	for x := 0; x < canvas.width; x++ {
		for y := 0; y < canvas.height; y++ {
			if canvas.lit(x, y) {
				lit++
				assert.GreaterOrEqual(t, x, 17, "text is drawn after the leading blank")
			}
		}
	}
	assert.Positive(t, lit)
}

func TestScroller_Scroll_cancelled(t *testing.T) {
	display := newFakeDisplay(17, 7)
	scroller := NewScroller(display, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := scroller.Scroll(ctx, "Button A pressed!")
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, display.frames)
}
