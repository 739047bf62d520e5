// Package ili9488test provides buses for testing code that talks to an
// ILI9488 controller without hardware.
//
// Record logs every line change and byte. Panel decodes the byte stream the
// way the controller does and keeps the resulting frame memory as an image.
package ili9488test

import (
	"fmt"
	"image"
	"image/color"

	"periph.io/x/conn/v3/gpio"

	"periph.io/x/devices/v3/ili9488"
)

// Op is one recorded bus operation.
type Op struct {
	Line  ili9488.Line // Line changed; unused for byte writes
	Level gpio.Level   // New level; unused for byte writes
	Write bool         // True for a byte write
	Byte  byte
	RS    gpio.Level // Register-select level at the time of a byte write
	CS    gpio.Level // Chip-select level at the time of a byte write
}

func (o Op) String() string {
	if o.Write {
		kind := "cmd"
		if o.RS == gpio.High {
			kind = "data"
		}
		return fmt.Sprintf("%s:0x%02x", kind, o.Byte)
	}
	return fmt.Sprintf("%s=%s", o.Line, o.Level)
}

// Record implements ili9488.Bus and records everything sent to it.
type Record struct {
	Ops []Op

	levels [5]gpio.Level
}

// NewRecord returns a Record with every line idle (high).
func NewRecord() *Record {
	r := &Record{}
	for i := range r.levels {
		r.levels[i] = gpio.High
	}
	return r
}

// SetLine implements ili9488.Bus.
func (r *Record) SetLine(l ili9488.Line, level gpio.Level) error {
	if l < 0 || int(l) >= len(r.levels) {
		return fmt.Errorf("ili9488test: unknown line %s", l)
	}
	r.levels[l] = level
	r.Ops = append(r.Ops, Op{Line: l, Level: level})
	return nil
}

// WriteByte implements ili9488.Bus.
func (r *Record) WriteByte(v byte) error {
	r.Ops = append(r.Ops, Op{
		Write: true,
		Byte:  v,
		RS:    r.levels[ili9488.RegisterSelect],
		CS:    r.levels[ili9488.ChipSelect],
	})
	return nil
}

// Level returns the current level of l.
func (r *Record) Level(l ili9488.Line) gpio.Level {
	return r.levels[l]
}

// Writes returns the byte writes only, formatted as "cmd:0x2a" or
// "data:0x01".
func (r *Record) Writes() []string {
	var out []string
	for _, o := range r.Ops {
		if o.Write {
			out = append(out, o.String())
		}
	}
	return out
}

// Bytes returns the raw bytes written.
func (r *Record) Bytes() []byte {
	var out []byte
	for _, o := range r.Ops {
		if o.Write {
			out = append(out, o.Byte)
		}
	}
	return out
}

// Reset forgets recorded operations. Line levels are kept.
func (r *Record) Reset() {
	r.Ops = r.Ops[:0]
}

// Pixel is one pixel landed in frame memory.
type Pixel struct {
	image.Point
	ili9488.RGB
}

// State is the controller configuration decoded from the byte stream.
type State struct {
	Sleeping     bool
	DisplayOn    bool
	Partial      bool
	Inverted     bool
	MemoryAccess byte
	PixelFormat  byte
	Brightness   byte
	CtrlDisplay  byte
	FrameRate    [2]byte
	ScrollArea   [3]uint16
	ScrollStart  uint16
	Window       image.Rectangle // Inclusive-exclusive, like image.Rect
}

// Panel implements ili9488.Bus by modelling the controller.
//
// Bytes are only latched while chip select is low and reset is high. Memory
// writes land in Image starting at the window origin and advance in
// row-major order, wrapping inside the window. Pixels are also appended to
// Log in the order they landed.
type Panel struct {
	Image *image.RGBA
	Log   []Pixel
	State State

	// Strobes counts latched bytes; Dropped counts bytes sent while the
	// chip was deselected or held in reset.
	Strobes int
	Dropped int

	levels [5]gpio.Level
	cmd    byte
	params []byte
	cursor image.Point
	pixel  []byte
	caset  [2]int
	paset  [2]int
}

// NewPanel returns a Panel with w by h pixels of frame memory.
func NewPanel(w, h int) *Panel {
	p := &Panel{Image: image.NewRGBA(image.Rect(0, 0, w, h))}
	for i := range p.levels {
		p.levels[i] = gpio.High
	}
	p.powerOn()
	return p
}

func (p *Panel) powerOn() {
	b := p.Image.Bounds()
	p.State = State{
		Sleeping: true,
		Window:   b,
	}
	p.caset = [2]int{0, b.Dx() - 1}
	p.paset = [2]int{0, b.Dy() - 1}
	p.cmd = 0
	p.params = nil
	p.pixel = nil
}

// SetLine implements ili9488.Bus.
func (p *Panel) SetLine(l ili9488.Line, level gpio.Level) error {
	if l < 0 || int(l) >= len(p.levels) {
		return fmt.Errorf("ili9488test: unknown line %s", l)
	}
	if l == ili9488.Reset && level == gpio.Low {
		p.powerOn()
	}
	p.levels[l] = level
	return nil
}

// WriteByte implements ili9488.Bus.
func (p *Panel) WriteByte(v byte) error {
	if p.levels[ili9488.ChipSelect] == gpio.High || p.levels[ili9488.Reset] == gpio.Low {
		p.Dropped++
		return nil
	}
	p.Strobes++
	if p.levels[ili9488.RegisterSelect] == gpio.Low {
		p.command(v)
	} else {
		p.data(v)
	}
	return nil
}

func (p *Panel) command(v byte) {
	p.cmd = v
	p.params = p.params[:0]
	p.pixel = p.pixel[:0]
	switch v {
	case 0x01:
		p.powerOn()
		p.cmd = v
	case 0x10:
		p.State.Sleeping = true
	case 0x11:
		p.State.Sleeping = false
	case 0x12:
		p.State.Partial = true
	case 0x13:
		p.State.Partial = false
	case 0x20:
		p.State.Inverted = false
	case 0x21:
		p.State.Inverted = true
	case 0x28:
		p.State.DisplayOn = false
	case 0x29:
		p.State.DisplayOn = true
	case 0x2C:
		p.cursor = p.State.Window.Min
	}
}

func (p *Panel) data(v byte) {
	if p.cmd == 0x2C {
		p.pixel = append(p.pixel, v)
		if len(p.pixel) == 3 {
			p.put(ili9488.RGB{R: p.pixel[0], G: p.pixel[1], B: p.pixel[2]})
			p.pixel = p.pixel[:0]
		}
		return
	}
	p.params = append(p.params, v)
	n := len(p.params)
	switch p.cmd {
	case 0x2A:
		if n == 4 {
			p.caset = [2]int{be16(p.params[0:]), be16(p.params[2:])}
			p.updateWindow()
		}
	case 0x2B:
		if n == 4 {
			p.paset = [2]int{be16(p.params[0:]), be16(p.params[2:])}
			p.updateWindow()
		}
	case 0x33:
		if n == 6 {
			p.State.ScrollArea = [3]uint16{uint16(be16(p.params[0:])), uint16(be16(p.params[2:])), uint16(be16(p.params[4:]))}
		}
	case 0x36:
		p.State.MemoryAccess = v
	case 0x37:
		if n == 2 {
			p.State.ScrollStart = uint16(be16(p.params))
		}
	case 0x3A:
		p.State.PixelFormat = v
	case 0x51:
		p.State.Brightness = v
	case 0x53:
		p.State.CtrlDisplay = v
	case 0xB1:
		if n <= 2 {
			p.State.FrameRate[n-1] = v
		}
	}
}

func (p *Panel) updateWindow() {
	p.State.Window = image.Rect(p.caset[0], p.paset[0], p.caset[1]+1, p.paset[1]+1)
}

func (p *Panel) put(c ili9488.RGB) {
	w := p.State.Window
	if p.cursor.In(p.Image.Rect) {
		p.Image.SetRGBA(p.cursor.X, p.cursor.Y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF})
	}
	p.Log = append(p.Log, Pixel{Point: p.cursor, RGB: c})
	p.cursor.X++
	if p.cursor.X >= w.Max.X {
		p.cursor.X = w.Min.X
		p.cursor.Y++
		if p.cursor.Y >= w.Max.Y {
			p.cursor.Y = w.Min.Y
		}
	}
}

// Points returns the set of points written since the log was last cleared.
func (p *Panel) Points() map[image.Point]int {
	m := make(map[image.Point]int, len(p.Log))
	for _, px := range p.Log {
		m[px.Point]++
	}
	return m
}

// ClearLog forgets logged pixels and counters. Frame memory and state are
// kept.
func (p *Panel) ClearLog() {
	p.Log = p.Log[:0]
	p.Strobes = 0
	p.Dropped = 0
}

// RGBAt returns the frame memory color at (x, y).
func (p *Panel) RGBAt(x, y int) ili9488.RGB {
	c := p.Image.RGBAAt(x, y)
	return ili9488.RGB{R: c.R, G: c.G, B: c.B}
}

func be16(b []byte) int {
	return int(b[0])<<8 | int(b[1])
}

var _ ili9488.Bus = &Record{}
var _ ili9488.Bus = &Panel{}
