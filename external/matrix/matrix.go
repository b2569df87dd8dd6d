// Package matrix contains the LED matrix drivers the display renders to.
package matrix

import (
	"github.com/pkg/errors"
	"github.com/qubic/go-mempool-matrix/entities"
)

// Panel size of a Unicorn HAT Mini.
const (
	PanelWidth  = 17
	PanelHeight = 7
)

var ErrInvalidRotation = errors.New("rotation must be a multiple of 90 degrees")

type Button string

const (
	ButtonA Button = "A"
	ButtonB Button = "B"
	ButtonX Button = "X"
	ButtonY Button = "Y"
)

// Event is user input coming from the device. Quit is set when the user asks to
// stop the program.
type Event struct {
	Button Button
	Quit   bool
}

// Device is the pixel set/show contract of a matrix. Coordinates are relative to
// the current rotation and must be within Shape().
type Device interface {
	SetPixel(x, y int, c entities.RGB)
	Show() error
	Shape() (width, height int)
	SetRotation(degrees int) error
	SetBrightness(brightness float64)
	Clear()
	Events() <-chan Event
	Close() error
}

// NormalizeRotation maps degrees onto 0, 90, 180 or 270.
func NormalizeRotation(degrees int) (int, error) {
	if degrees%90 != 0 {
		return 0, errors.Wrapf(ErrInvalidRotation, "got [%d]", degrees)
	}
	return ((degrees % 360) + 360) % 360, nil
}

// geometry translates rotated coordinates to panel coordinates.
type geometry struct {
	width    int
	height   int
	rotation int
}

func (g *geometry) Shape() (int, int) {
	if g.rotation == 90 || g.rotation == 270 {
		return g.height, g.width
	}
	return g.width, g.height
}

func (g *geometry) SetRotation(degrees int) error {
	rotation, err := NormalizeRotation(degrees)
	if err != nil {
		return err
	}
	g.rotation = rotation
	return nil
}

// panel returns the panel coordinates of (x, y), ok is false when outside the matrix.
func (g *geometry) panel(x, y int) (px, py int, ok bool) {
	w, h := g.Shape()
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0, 0, false
	}
	switch g.rotation {
	case 90:
		return y, g.height - 1 - x, true
	case 180:
		return g.width - 1 - x, g.height - 1 - y, true
	case 270:
		return g.width - 1 - y, x, true
	}
	return x, y, true
}

func clampBrightness(brightness float64) float64 {
	return min(max(brightness, 0), 1)
}
