// Package ili9488 controls an ILI9488 TFT controller over its 8-bit 8080
// parallel interface.
//
// The driver keeps no framebuffer. Every draw call programs an address
// window on the controller and streams pixels straight into its frame
// memory, three bytes (R, G, B) per pixel in 18-bit mode.
//
// # Display Characteristics
//
// - 480×320 pixels (landscape), 18-bit color
// - Address window with row-major auto-increment
// - Vertical hardware scrolling
// - Adjustable brightness (0-255)
// - Display inversion
//
// # Hardware Connection
//
// Connect the controller to ten or more GPIOs:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	DB0..DB7    → 8 GPIOs (data bus)
//	RST         → GPIO (reset, active low)
//	CS          → GPIO (chip select, active low)
//	RS (D/C)    → GPIO (low = command, high = data)
//	WR          → GPIO (write strobe, latched on rising edge)
//	RD          → GPIO or 3.3V (read strobe, kept high)
//
// # Basic Usage
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/devices/v3/ili9488"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		var pins ili9488.GPIOPins
//		for i, n := range []string{"GPIO4", "GPIO5", "GPIO6", "GPIO7", "GPIO8", "GPIO9", "GPIO10", "GPIO11"} {
//			pins.Data[i] = gpioreg.ByName(n)
//		}
//		pins.RST = gpioreg.ByName("GPIO17")
//		pins.CS = gpioreg.ByName("GPIO18")
//		pins.RS = gpioreg.ByName("GPIO22")
//		pins.WR = gpioreg.ByName("GPIO23")
//
//		dev, _ := ili9488.NewGPIO(pins, nil)
//		defer dev.Halt()
//
//		dev.DrawLine(0, 0, 479, 319, ili9488.RGB{G: 235, B: 155})
//		dev.DrawCircle(240, 160, 80, ili9488.RGB{R: 255})
//		dev.DrawString("Hello world!", 200, 20, ili9488.RGB{R: 255, G: 255, B: 255})
//	}
//
// # Initialization
//
// New pulses reset, then sends software reset, sleep out, memory access
// control, pixel format, partial mode and display on, programs the full
// panel window, sets brightness and frame rate and fills the panel with
// Opts.Background. Each step is followed by the settle time the controller
// needs; initialization takes a little over a second.
//
// # Coordinates
//
// Coordinates are signed. WritePixel and SetAddressWindow return
// ErrOutOfBounds for points off the panel. The rasterizers (DrawLine,
// DrawCircle, DrawChar, DrawString) skip such points instead, so shapes may
// extend past the edges.
//
// # Text
//
// Glyphs are 10×15 bitmaps from a Font, by default glyph.Basic(). Text is
// drawn additively: only set bits are written. Each character advances the
// pen by 10 pixels.
//
// # Compatibility
//
// Dev implements display.Drawer from periph.io and drivers.Displayer from
// tinygo.org/x/drivers.
//
// # Concurrency
//
// Dev is not safe for concurrent use. Each method call is made of complete
// chip-select transactions and leaves the chip deselected.
package ili9488
