package ili9488

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"tinygo.org/x/drivers"

	"periph.io/x/devices/v3/ili9488/glyph"
)

// Controller opcodes used by this driver.
const (
	cmdNOP      = 0x00 // No-op, terminates a window parameter run
	cmdSWRESET  = 0x01 // Software reset
	cmdSLPIN    = 0x10 // Sleep in
	cmdSLPOUT   = 0x11 // Sleep out
	cmdPTLON    = 0x12 // Partial mode on
	cmdINVOFF   = 0x20 // Display inversion off
	cmdINVON    = 0x21 // Display inversion on
	cmdDISPOFF  = 0x28 // Display off
	cmdDISPON   = 0x29 // Display on
	cmdCASET    = 0x2A // Column address set
	cmdPASET    = 0x2B // Page (row) address set
	cmdRAMWR    = 0x2C // Memory write
	cmdVSCRDEF  = 0x33 // Vertical scrolling definition
	cmdMADCTL   = 0x36 // Memory access control
	cmdVSCRSADD = 0x37 // Vertical scrolling start address
	cmdCOLMOD   = 0x3A // Interface pixel format
	cmdWRDISBV  = 0x51 // Write display brightness
	cmdWRCTRLD  = 0x53 // Write CTRL display
	cmdFRMCTR1  = 0xB1 // Frame rate control (normal mode)
)

// Parameter values programmed during initialization.
const (
	// MY | MX | MV | BGR: landscape, 480 columns by 320 rows.
	defaultMemoryAccess = 0xE8
	// 18 bits per pixel, three bytes per pixel on the 8-bit bus.
	pixelFormat18 = 0x06
	// Brightness control block, display dimming and backlight on.
	ctrlDisplay       = 0x2C
	defaultBrightness = 0x0F
)

var frameRate = []byte{0xB0, 0x11}

// Settle times required by the controller after each init step.
const (
	resetHold   = 100 * time.Millisecond
	resetSettle = 100 * time.Millisecond
	stepSettle  = 100 * time.Millisecond
	frameSettle = 50 * time.Millisecond
)

// Number of lines in the controller's frame memory, the scroll range.
const memoryLines = 480

// ErrOutOfBounds is returned when coordinates fall outside the panel.
var ErrOutOfBounds = errors.New("ili9488: out of bounds")

var errHalted = errors.New("ili9488: halted")

// Font provides glyph bitmaps for the text layer.
type Font interface {
	Lookup(c byte) (glyph.Bitmap, bool)
}

// Opts is the configuration for the ILI9488 display.
type Opts struct {
	// Panel dimensions in pixels, in the orientation selected by
	// MemoryAccess.
	W int // Width (default: 480)
	H int // Height (default: 320)

	// MemoryAccess is the MADCTL parameter (default: 0xE8, landscape BGR).
	MemoryAccess byte
	// Brightness is the WRDISBV parameter (default: 0x0F).
	Brightness byte
	// Background is the color the panel is filled with during init.
	Background RGB

	// Font used by DrawChar and DrawString (default: glyph.Basic()).
	Font Font
	// Delay provides the init settle times (default: Sleep).
	Delay Delayer
	// Log receives init progress at debug level (default: discarded).
	Log logrus.FieldLogger
}

// Dev is the device handle for the ILI9488 display.
type Dev struct {
	bus   Bus
	delay Delayer
	log   logrus.FieldLogger
	font  Font

	memoryAccess byte
	brightness   byte
	background   RGB

	rect     image.Rectangle
	window   image.Rectangle // Last programmed address window
	selected bool

	halted bool
}

// New initializes the display on bus and returns a handle to it.
//
// opts can be nil to use defaults (480x320 landscape panel).
func New(bus Bus, opts *Opts) (*Dev, error) {
	if bus == nil {
		return nil, errors.New("ili9488: bus is nil")
	}
	if opts == nil {
		opts = &Opts{}
	}
	o := *opts
	if o.W == 0 && o.H == 0 {
		o.W, o.H = 480, 320
	}
	if o.W <= 0 || o.W > 480 || o.H <= 0 || o.H > 480 || (o.W > 320 && o.H > 320) {
		return nil, errors.New("ili9488: panel must fit 480x320 in either orientation")
	}
	if o.MemoryAccess == 0 {
		o.MemoryAccess = defaultMemoryAccess
	}
	if o.Brightness == 0 {
		o.Brightness = defaultBrightness
	}
	if o.Font == nil {
		o.Font = glyph.Basic()
	}
	if o.Delay == nil {
		o.Delay = Sleep
	}
	if o.Log == nil {
		l := logrus.New()
		l.Out = io.Discard
		o.Log = l
	}

	d := &Dev{
		bus:          bus,
		delay:        o.Delay,
		log:          o.Log,
		font:         o.Font,
		memoryAccess: o.MemoryAccess,
		brightness:   o.Brightness,
		background:   o.Background,
		rect:         image.Rect(0, 0, o.W, o.H),
	}
	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

// NewGPIO creates a GPIOBus on pins and initializes the display on it.
func NewGPIO(pins GPIOPins, opts *Opts) (*Dev, error) {
	var delay Delayer
	if opts != nil {
		delay = opts.Delay
	}
	b, err := NewGPIOBus(pins, 0, delay)
	if err != nil {
		return nil, err
	}
	return New(b, opts)
}

type initStep struct {
	name   string
	cmd    byte
	params []byte
	settle time.Duration
}

// init brings the controller from power-on to a cleared, addressable panel.
func (d *Dev) init() error {
	d.log.Debug("ili9488: hardware reset")
	if err := d.bus.SetLine(Reset, gpio.Low); err != nil {
		return fmt.Errorf("ili9488: failed to pull RST low: %w", err)
	}
	d.delay.Delay(resetHold)
	if err := d.bus.SetLine(Reset, gpio.High); err != nil {
		return fmt.Errorf("ili9488: failed to pull RST high: %w", err)
	}
	d.delay.Delay(resetSettle)

	if err := d.begin(); err != nil {
		return err
	}
	if err := d.runSteps([]initStep{
		{"software reset", cmdSWRESET, nil, stepSettle},
		{"sleep out", cmdSLPOUT, nil, stepSettle},
		{"memory access control", cmdMADCTL, []byte{d.memoryAccess}, stepSettle},
		{"pixel format", cmdCOLMOD, []byte{pixelFormat18}, stepSettle},
		{"partial mode on", cmdPTLON, nil, stepSettle},
		{"display on", cmdDISPON, nil, stepSettle},
	}); err != nil {
		return d.finish(err)
	}

	d.log.WithField("window", d.rect).Debug("ili9488: full panel window")
	if err := d.setWindow(0, 0, d.rect.Dx()-1, d.rect.Dy()-1); err != nil {
		return d.finish(err)
	}
	d.delay.Delay(stepSettle)

	if err := d.runSteps([]initStep{
		{"brightness", cmdWRDISBV, []byte{d.brightness}, stepSettle},
		{"brightness control", cmdWRCTRLD, []byte{ctrlDisplay}, stepSettle},
		{"frame rate", cmdFRMCTR1, frameRate, frameSettle},
	}); err != nil {
		return d.finish(err)
	}

	d.log.WithField("color", d.background).Debug("ili9488: background fill")
	if err := d.stream(d.background, d.window.Dx()*d.window.Dy()); err != nil {
		return d.finish(err)
	}
	if err := d.end(); err != nil {
		return err
	}
	d.delay.Delay(stepSettle)
	d.halted = false
	return nil
}

func (d *Dev) runSteps(steps []initStep) error {
	for _, s := range steps {
		d.log.WithFields(logrus.Fields{
			"step": s.name,
			"cmd":  fmt.Sprintf("0x%02x", s.cmd),
		}).Debug("ili9488: init")
		if err := d.command(s.cmd, s.params...); err != nil {
			return err
		}
		d.delay.Delay(s.settle)
	}
	return nil
}

// Init runs the full initialization sequence again, including the hardware
// reset. It also recovers a halted display.
func (d *Dev) Init() error {
	return d.init()
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return RGBModel
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Window returns the address window most recently programmed into the
// controller.
func (d *Dev) Window() image.Rectangle {
	return d.window
}

// SetBrightness sets the display brightness (0-255).
func (d *Dev) SetBrightness(brightness byte) error {
	if d.halted {
		return errHalted
	}
	if err := d.begin(); err != nil {
		return err
	}
	d.brightness = brightness
	return d.finish(d.command(cmdWRDISBV, brightness))
}

// Invert inverts the display colors.
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return errHalted
	}
	mode := byte(cmdINVOFF)
	if invert {
		mode = cmdINVON
	}
	if err := d.begin(); err != nil {
		return err
	}
	return d.finish(d.sendCommand(mode))
}

// SetScrollArea defines the vertical scrolling area as top fixed lines,
// height scrolling lines and bottom fixed lines of frame memory. The three
// must add up to 480.
func (d *Dev) SetScrollArea(top, height, bottom uint16) error {
	if d.halted {
		return errHalted
	}
	if int(top)+int(height)+int(bottom) != memoryLines {
		return fmt.Errorf("ili9488: scroll area %d+%d+%d must cover %d lines", top, height, bottom, memoryLines)
	}
	if err := d.begin(); err != nil {
		return err
	}
	return d.finish(d.command(cmdVSCRDEF,
		byte(top>>8), byte(top),
		byte(height>>8), byte(height),
		byte(bottom>>8), byte(bottom),
	))
}

// ScrollTo sets the frame memory line shown at the top of the scrolling
// area.
func (d *Dev) ScrollTo(line uint16) error {
	if d.halted {
		return errHalted
	}
	if line >= memoryLines {
		return fmt.Errorf("ili9488: scroll line %d out of range", line)
	}
	if err := d.begin(); err != nil {
		return err
	}
	return d.finish(d.command(cmdVSCRSADD, byte(line>>8), byte(line)))
}

// Halt turns the display off and puts the controller to sleep.
// After calling Halt, drawing fails until Init is called.
func (d *Dev) Halt() error {
	d.halted = true
	if err := d.begin(); err != nil {
		return err
	}
	if err := d.sendCommand(cmdDISPOFF); err != nil {
		return d.finish(err)
	}
	return d.finish(d.sendCommand(cmdSLPIN))
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ili9488.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

// Size returns the panel size.
func (d *Dev) Size() (x, y int16) {
	return int16(d.rect.Dx()), int16(d.rect.Dy())
}

// SetPixel writes one pixel. Points outside the panel are ignored.
func (d *Dev) SetPixel(x, y int16, c color.RGBA) {
	if !(image.Point{X: int(x), Y: int(y)}.In(d.rect)) {
		return
	}
	_ = d.WritePixel(int(x), int(y), RGB{R: c.R, G: c.G, B: c.B})
}

// Display is a no-op: every draw call already reached the controller.
func (d *Dev) Display() error {
	if d.halted {
		return errHalted
	}
	return nil
}

var _ display.Drawer = &Dev{}
var _ drivers.Displayer = &Dev{}
var _ conn.Resource = &Dev{}
