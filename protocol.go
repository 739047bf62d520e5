package ili9488

import (
	"fmt"
	"image"

	"periph.io/x/conn/v3/gpio"
)

// begin starts a new chip-select transaction: deselect, then select.
func (d *Dev) begin() error {
	if err := d.bus.SetLine(ChipSelect, gpio.High); err != nil {
		return err
	}
	d.selected = false
	if err := d.bus.SetLine(ChipSelect, gpio.Low); err != nil {
		return err
	}
	d.selected = true
	return nil
}

// end closes the current transaction, if any.
func (d *Dev) end() error {
	if !d.selected {
		return nil
	}
	if err := d.bus.SetLine(ChipSelect, gpio.High); err != nil {
		return err
	}
	d.selected = false
	return nil
}

// finish closes the transaction and returns err, or the deselect error if
// err is nil.
func (d *Dev) finish(err error) error {
	if e := d.end(); err == nil {
		err = e
	}
	return err
}

// sendCommand sends a single command byte.
func (d *Dev) sendCommand(cmd byte) error {
	if err := d.bus.SetLine(RegisterSelect, modeCommand); err != nil {
		return err
	}
	return d.bus.WriteByte(cmd)
}

// sendData sends parameter or pixel bytes.
func (d *Dev) sendData(data ...byte) error {
	if err := d.bus.SetLine(RegisterSelect, modeData); err != nil {
		return err
	}
	for _, b := range data {
		if err := d.bus.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}

// command sends cmd followed by its parameters.
func (d *Dev) command(cmd byte, params ...byte) error {
	if err := d.sendCommand(cmd); err != nil {
		return err
	}
	if len(params) == 0 {
		return nil
	}
	return d.sendData(params...)
}

// setWindow programs the inclusive address window (x0, y0)-(x1, y1) and
// leaves the chip selected.
func (d *Dev) setWindow(x0, y0, x1, y1 int) error {
	if err := d.begin(); err != nil {
		return err
	}
	if err := d.command(cmdCASET, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1)); err != nil {
		return err
	}
	if err := d.sendCommand(cmdNOP); err != nil {
		return err
	}
	if err := d.command(cmdPASET, byte(y0>>8), byte(y0), byte(y1>>8), byte(y1)); err != nil {
		return err
	}
	if err := d.sendCommand(cmdNOP); err != nil {
		return err
	}
	d.window = image.Rect(x0, y0, x1+1, y1+1)
	return nil
}

// stream issues a memory write and sends c n times. The controller advances
// its cursor through the window after each pixel.
func (d *Dev) stream(c RGB, n int) error {
	if err := d.sendCommand(cmdRAMWR); err != nil {
		return err
	}
	if err := d.bus.SetLine(RegisterSelect, modeData); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := d.writeRGB(c.R, c.G, c.B); err != nil {
			return err
		}
	}
	return nil
}

// SetAddressWindow programs the inclusive window (x0, y0)-(x1, y1). Pixels
// sent by FillWindow land in it in row-major order.
func (d *Dev) SetAddressWindow(x0, y0, x1, y1 int) error {
	if d.halted {
		return errHalted
	}
	if x0 > x1 || y0 > y1 {
		return fmt.Errorf("ili9488: window (%d,%d)-(%d,%d) is inverted", x0, y0, x1, y1)
	}
	if !(image.Point{X: x0, Y: y0}.In(d.rect)) || !(image.Point{X: x1, Y: y1}.In(d.rect)) {
		return fmt.Errorf("%w: window (%d,%d)-(%d,%d)", ErrOutOfBounds, x0, y0, x1, y1)
	}
	return d.finish(d.setWindow(x0, y0, x1, y1))
}
