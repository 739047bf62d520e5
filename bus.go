package ili9488

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Line identifies one of the controller's control inputs.
type Line int

const (
	// Reset is the hardware reset input (active low).
	Reset Line = iota
	// ChipSelect enables the bus interface (active low).
	ChipSelect
	// RegisterSelect selects command (Low) or data (High) for the next byte.
	RegisterSelect
	// WriteStrobe latches D0-D7 on its rising edge (active low).
	WriteStrobe
	// ReadStrobe is the read enable (active low). The driver keeps it idle.
	ReadStrobe
)

var lineNames = [...]string{"RST", "CS", "RS", "WR", "RD"}

func (l Line) String() string {
	if l < 0 || int(l) >= len(lineNames) {
		return fmt.Sprintf("Line(%d)", int(l))
	}
	return lineNames[l]
}

// Register-select levels.
const (
	modeCommand = gpio.Low
	modeData    = gpio.High
)

// Bus is the 8080-style parallel interface to the controller.
//
// WriteByte drives the data lines to v and pulses WriteStrobe exactly once.
// The controller never acknowledges; errors only come from the host side.
type Bus interface {
	SetLine(l Line, level gpio.Level) error
	WriteByte(v byte) error
}

// GPIOPins lists the host pins wired to the controller.
type GPIOPins struct {
	Data [8]gpio.PinOut // D0..D7

	RST gpio.PinOut
	CS  gpio.PinOut
	RS  gpio.PinOut
	WR  gpio.PinOut
	RD  gpio.PinOut // optional, parked high when present
}

// GPIOBus bit-bangs the parallel bus over individual GPIO pins.
type GPIOBus struct {
	data  [8]gpio.PinOut
	lines [5]gpio.PinOut
	last  int // last byte driven on D0..D7, -1 when unknown

	hold  time.Duration
	delay Delayer
}

// NewGPIOBus returns a bus driving pins. hold is how long WR stays low for
// each byte; zero relies on GPIO toggle latency alone, which already exceeds
// the controller's 15ns minimum on every supported host.
//
// All control lines are driven to their idle (high) level.
func NewGPIOBus(pins GPIOPins, hold time.Duration, delay Delayer) (*GPIOBus, error) {
	for i, p := range pins.Data {
		if p == nil {
			return nil, fmt.Errorf("ili9488: data pin D%d is nil", i)
		}
	}
	if pins.RST == nil || pins.CS == nil || pins.RS == nil || pins.WR == nil {
		return nil, errors.New("ili9488: RST, CS, RS and WR pins are required")
	}
	if delay == nil {
		delay = Sleep
	}
	b := &GPIOBus{
		data:  pins.Data,
		lines: [5]gpio.PinOut{pins.RST, pins.CS, pins.RS, pins.WR, pins.RD},
		last:  -1,
		hold:  hold,
		delay: delay,
	}
	for l, p := range b.lines {
		if p == nil {
			continue
		}
		if err := p.Out(gpio.High); err != nil {
			return nil, fmt.Errorf("ili9488: failed to park %s high: %w", Line(l), err)
		}
	}
	return b, nil
}

// SetLine drives control line l. Setting ReadStrobe without an RD pin is a
// no-op.
func (b *GPIOBus) SetLine(l Line, level gpio.Level) error {
	if l < 0 || int(l) >= len(b.lines) {
		return fmt.Errorf("ili9488: unknown line %s", l)
	}
	p := b.lines[l]
	if p == nil {
		return nil
	}
	if err := p.Out(level); err != nil {
		return fmt.Errorf("ili9488: failed to drive %s: %w", l, err)
	}
	return nil
}

// WriteByte drives D0..D7 to v and pulses WR.
//
// Data pins whose level does not change are left alone; a run of bytes with
// the same value (a solid fill) costs just the strobe.
func (b *GPIOBus) WriteByte(v byte) error {
	for i, p := range b.data {
		bit := v >> uint(i) & 1
		if b.last >= 0 && byte(b.last)>>uint(i)&1 == bit {
			continue
		}
		if err := p.Out(gpio.Level(bit == 1)); err != nil {
			b.last = -1
			return fmt.Errorf("ili9488: failed to drive D%d: %w", i, err)
		}
	}
	b.last = int(v)

	wr := b.lines[WriteStrobe]
	if err := wr.Out(gpio.Low); err != nil {
		return fmt.Errorf("ili9488: failed to pull WR low: %w", err)
	}
	if b.hold > 0 {
		b.delay.Delay(b.hold)
	}
	if err := wr.Out(gpio.High); err != nil {
		return fmt.Errorf("ili9488: failed to release WR: %w", err)
	}
	return nil
}

// String returns a description of the bus.
func (b *GPIOBus) String() string {
	return fmt.Sprintf("GPIOBus{D0=%s, CS=%s, RS=%s, WR=%s}", b.data[0], b.lines[ChipSelect], b.lines[RegisterSelect], b.lines[WriteStrobe])
}

var _ Bus = &GPIOBus{}
