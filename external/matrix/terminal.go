package matrix

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"github.com/qubic/go-mempool-matrix/entities"
)

const (
	// each LED is drawn two cells wide so it looks square in a terminal
	cellsPerPixel = 2
	marginX       = 2
	marginY       = 1

	// lowest value level a lit LED is drawn with, even at brightness 0
	minVisibleLevel = 0.3
)

// Terminal emulates the matrix in a terminal. Keys a, b, x and y act as the
// device buttons, q, Escape and Ctrl-C ask to quit.
type Terminal struct {
	screen tcell.Screen

	mutex      sync.Mutex
	geometry   geometry
	brightness float64
	pixels     []entities.RGB

	events chan Event
	done   chan struct{}
}

func NewTerminal(width, height int) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "creating screen")
	}
	return newTerminal(screen, width, height)
}

func newTerminal(screen tcell.Screen, width, height int) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "initializing screen")
	}
	screen.HideCursor()
	screen.Clear()

	t := Terminal{
		screen:     screen,
		geometry:   geometry{width: width, height: height},
		brightness: 0.5,
		pixels:     make([]entities.RGB, width*height),
		events:     make(chan Event, 8),
		done:       make(chan struct{}),
	}
	go t.pollEvents()
	return &t, nil
}

func (t *Terminal) pollEvents() {
	defer close(t.done)
	for {
		ev := t.screen.PollEvent()
		if ev == nil { // screen finalized
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if event, ok := keyEvent(ev); ok {
				select {
				case t.events <- event:
				default: // nobody listening, drop
				}
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func keyEvent(ev *tcell.EventKey) (Event, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Event{Quit: true}, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return Event{Button: ButtonA}, true
		case 'b', 'B':
			return Event{Button: ButtonB}, true
		case 'x', 'X':
			return Event{Button: ButtonX}, true
		case 'y', 'Y':
			return Event{Button: ButtonY}, true
		case 'q', 'Q':
			return Event{Quit: true}, true
		}
	}
	return Event{}, false
}

func (t *Terminal) SetPixel(x, y int, c entities.RGB) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	px, py, ok := t.geometry.panel(x, y)
	if !ok {
		return
	}
	t.pixels[py*t.geometry.width+px] = c
}

func (t *Terminal) Show() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	for py := 0; py < t.geometry.height; py++ {
		for px := 0; px < t.geometry.width; px++ {
			style := tcell.StyleDefault.
				Foreground(dim(t.pixels[py*t.geometry.width+px], t.brightness)).
				Background(tcell.ColorBlack)
			for i := range cellsPerPixel {
				t.screen.SetContent(marginX+px*cellsPerPixel+i, marginY+py, '█', nil, style)
			}
		}
	}
	t.screen.Show()
	return nil
}

// dim scales the value of a color by the brightness keeping hue and saturation.
func dim(c entities.RGB, brightness float64) tcell.Color {
	h, s, v := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsv()
	level := minVisibleLevel + (1-minVisibleLevel)*brightness
	r, g, b := colorful.Hsv(h, s, v*level).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (t *Terminal) Shape() (int, int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.geometry.Shape()
}

func (t *Terminal) SetRotation(degrees int) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.geometry.SetRotation(degrees)
}

func (t *Terminal) SetBrightness(brightness float64) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.brightness = clampBrightness(brightness)
}

func (t *Terminal) Clear() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	clear(t.pixels)
}

func (t *Terminal) Events() <-chan Event {
	return t.events
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	t.screen.Fini()
	<-t.done
	return nil
}
