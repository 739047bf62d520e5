package ili9488

import (
	"image"
	"image/color"
)

// RGB is a pixel as sent to the controller: three 8-bit channels. In 18-bit
// mode the controller keeps the top six bits of each.
type RGB struct {
	R, G, B uint8
}

// RGBA implements color.Color. RGB is always opaque.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xFFFF
}

func toRGB(c color.Color) color.Color {
	if v, ok := c.(RGB); ok {
		return v
	}
	r, g, b, _ := c.RGBA()
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// RGBModel converts colors to RGB by keeping the high byte of each channel.
var RGBModel = color.ModelFunc(toRGB)

// Draw streams src into the dst rectangle of the panel. The src image is
// read starting at sp. dst is clipped to the panel.
//
// The whole rectangle goes out as one memory write; nothing is kept on the
// host side.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errHalted
	}
	clipped := dst.Intersect(d.rect)
	if clipped.Empty() {
		return nil
	}
	sp = sp.Add(clipped.Min.Sub(dst.Min))
	dst = clipped

	if err := d.setWindow(dst.Min.X, dst.Min.Y, dst.Max.X-1, dst.Max.Y-1); err != nil {
		return d.finish(err)
	}
	if err := d.sendCommand(cmdRAMWR); err != nil {
		return d.finish(err)
	}
	if err := d.bus.SetLine(RegisterSelect, modeData); err != nil {
		return d.finish(err)
	}

	// Fast path: read *image.RGBA pixels directly.
	if img, ok := src.(*image.RGBA); ok {
		for y := 0; y < dst.Dy(); y++ {
			for x := 0; x < dst.Dx(); x++ {
				p := image.Point{X: sp.X + x, Y: sp.Y + y}
				var px []byte
				if p.In(img.Rect) {
					i := img.PixOffset(p.X, p.Y)
					px = img.Pix[i : i+3]
				} else {
					px = []byte{0, 0, 0}
				}
				if err := d.writeRGB(px[0], px[1], px[2]); err != nil {
					return d.finish(err)
				}
			}
		}
		return d.finish(nil)
	}

	for y := 0; y < dst.Dy(); y++ {
		for x := 0; x < dst.Dx(); x++ {
			c := RGBModel.Convert(src.At(sp.X+x, sp.Y+y)).(RGB)
			if err := d.writeRGB(c.R, c.G, c.B); err != nil {
				return d.finish(err)
			}
		}
	}
	return d.finish(nil)
}

func (d *Dev) writeRGB(r, g, b byte) error {
	if err := d.bus.WriteByte(r); err != nil {
		return err
	}
	if err := d.bus.WriteByte(g); err != nil {
		return err
	}
	return d.bus.WriteByte(b)
}
