package matrix

import (
	"sync"

	"github.com/qubic/go-mempool-matrix/entities"
)

// Framebuffer is an in-memory Device. It backs the headless driver and tests.
type Framebuffer struct {
	mutex      sync.Mutex
	geometry   geometry
	brightness float64
	pending    []entities.RGB
	shown      []entities.RGB
	frames     int
	events     chan Event
	closed     bool
}

func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		geometry:   geometry{width: width, height: height},
		brightness: 0.5,
		pending:    make([]entities.RGB, width*height),
		shown:      make([]entities.RGB, width*height),
		events:     make(chan Event, 8),
	}
}

func (f *Framebuffer) SetPixel(x, y int, c entities.RGB) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	px, py, ok := f.geometry.panel(x, y)
	if !ok {
		return
	}
	f.pending[py*f.geometry.width+px] = c
}

func (f *Framebuffer) Show() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	copy(f.shown, f.pending)
	f.frames++
	return nil
}

func (f *Framebuffer) Shape() (int, int) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.geometry.Shape()
}

func (f *Framebuffer) SetRotation(degrees int) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.geometry.SetRotation(degrees)
}

func (f *Framebuffer) SetBrightness(brightness float64) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.brightness = clampBrightness(brightness)
}

func (f *Framebuffer) Brightness() float64 {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.brightness
}

func (f *Framebuffer) Clear() {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	clear(f.pending)
}

func (f *Framebuffer) Events() <-chan Event {
	return f.events
}

// Press queues a button event as if pressed on the device.
func (f *Framebuffer) Press(button Button) {
	f.events <- Event{Button: button}
}

// Quit queues a quit request.
func (f *Framebuffer) Quit() {
	f.events <- Event{Quit: true}
}

func (f *Framebuffer) Close() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.closed = true
	return nil
}

func (f *Framebuffer) Closed() bool {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.closed
}

// Pixel returns the last shown color at (x, y) in rotated coordinates.
func (f *Framebuffer) Pixel(x, y int) entities.RGB {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	px, py, ok := f.geometry.panel(x, y)
	if !ok {
		return entities.Off
	}
	return f.shown[py*f.geometry.width+px]
}

// Column returns the last shown colors of column x, top row first.
func (f *Framebuffer) Column(x int) []entities.RGB {
	_, h := f.Shape()
	column := make([]entities.RGB, h)
	for y := range column {
		column[y] = f.Pixel(x, y)
	}
	return column
}

func (f *Framebuffer) Frames() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.frames
}
