package ili9488

import (
	"errors"
	"fmt"
	"image"

	"periph.io/x/devices/v3/ili9488/glyph"
)

// WritePixel writes one pixel at (x, y), reprogramming a 1x1 window so the
// pixel lands there regardless of the controller's cursor.
func (d *Dev) WritePixel(x, y int, c RGB) error {
	if d.halted {
		return errHalted
	}
	if !(image.Point{X: x, Y: y}.In(d.rect)) {
		return fmt.Errorf("%w: pixel (%d,%d)", ErrOutOfBounds, x, y)
	}
	return d.finish(d.plot(x, y, c))
}

// plot writes one pixel and leaves the chip selected. Points outside the
// panel are dropped.
func (d *Dev) plot(x, y int, c RGB) error {
	if !(image.Point{X: x, Y: y}.In(d.rect)) {
		return nil
	}
	if err := d.setWindow(x, y, x, y); err != nil {
		return err
	}
	return d.stream(c, 1)
}

// FillWindow fills the current address window with c using a single memory
// write.
func (d *Dev) FillWindow(c RGB) error {
	if d.halted {
		return errHalted
	}
	if d.window.Empty() {
		return errors.New("ili9488: no address window programmed")
	}
	if err := d.begin(); err != nil {
		return err
	}
	return d.finish(d.stream(c, d.window.Dx()*d.window.Dy()))
}

// FillRect fills r, clipped to the panel, with c.
func (d *Dev) FillRect(r image.Rectangle, c RGB) error {
	if d.halted {
		return errHalted
	}
	r = r.Intersect(d.rect)
	if r.Empty() {
		return nil
	}
	if err := d.setWindow(r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1); err != nil {
		return d.finish(err)
	}
	return d.finish(d.stream(c, r.Dx()*r.Dy()))
}

// Clear fills the whole panel with c.
func (d *Dev) Clear(c RGB) error {
	return d.FillRect(d.rect, c)
}

// DrawLine draws a line from (x1, y1) to (x2, y2), both ends included.
// Pixels are written starting at (x1, y1); those off the panel are skipped.
func (d *Dev) DrawLine(x1, y1, x2, y2 int, c RGB) error {
	if d.halted {
		return errHalted
	}
	return d.finish(line(x1, y1, x2, y2, func(x, y int) error {
		return d.plot(x, y, c)
	}))
}

// DrawCircle draws a circle of radius r centered at (cx, cy). Points off the
// panel are skipped.
func (d *Dev) DrawCircle(cx, cy, r int, c RGB) error {
	if d.halted {
		return errHalted
	}
	if r < 0 {
		return fmt.Errorf("%w: radius %d", ErrOutOfBounds, r)
	}
	return d.finish(circle(cx, cy, r, func(x, y int) error {
		return d.plot(x, y, c)
	}))
}

// DrawChar draws the glyph for ch with its top-left corner at (x, y). Only
// set bits are written; the background is left as is.
func (d *Dev) DrawChar(ch byte, x, y int, c RGB) error {
	if d.halted {
		return errHalted
	}
	return d.finish(d.drawChar(ch, x, y, c))
}

func (d *Dev) drawChar(ch byte, x, y int, c RGB) error {
	g, ok := d.font.Lookup(ch)
	if !ok {
		return nil
	}
	for row := 0; row < glyph.Height; row++ {
		bits := g[row]
		for col := 0; col < glyph.Width; col++ {
			if bits&0x8000 != 0 {
				if err := d.plot(x+col, y+row, c); err != nil {
					return err
				}
			}
			bits <<= 1
		}
	}
	return nil
}

// DrawString draws s on one line starting at (x, y), advancing a fixed
// glyph.Advance pixels per byte.
func (d *Dev) DrawString(s string, x, y int, c RGB) error {
	if d.halted {
		return errHalted
	}
	for i := 0; i < len(s); i++ {
		if err := d.drawChar(s[i], x+i*glyph.Advance, y, c); err != nil {
			return d.finish(err)
		}
	}
	return d.finish(nil)
}

// line rasterizes (x1, y1)-(x2, y2) with Bresenham's algorithm, stepping the
// longer axis every pixel. The run is always computed from the smaller
// endpoint so both directions cover the same pixels; it is replayed
// backwards when the caller started from the larger one.
func line(x1, y1, x2, y2 int, plot func(x, y int) error) error {
	if x2 > x1 || (x2 == x1 && y2 >= y1) {
		return bresenham(x1, y1, x2, y2, plot)
	}
	var pts []image.Point
	_ = bresenham(x2, y2, x1, y1, func(x, y int) error {
		pts = append(pts, image.Point{X: x, Y: y})
		return nil
	})
	for i := len(pts) - 1; i >= 0; i-- {
		if err := plot(pts[i].X, pts[i].Y); err != nil {
			return err
		}
	}
	return nil
}

func bresenham(x1, y1, x2, y2 int, plot func(x, y int) error) error {
	w, h := x2-x1, y2-y1
	dx1, dy1 := sign(w), sign(h)
	dx2, dy2 := dx1, 0

	longest, shortest := abs(w), abs(h)
	if !(longest > shortest) {
		longest, shortest = shortest, longest
		dx2, dy2 = 0, dy1
	}
	numerator := longest >> 1
	for i := 0; i <= longest; i++ {
		if err := plot(x1, y1); err != nil {
			return err
		}
		numerator += shortest
		if !(numerator < longest) {
			numerator -= longest
			x1 += dx1
			y1 += dy1
		} else {
			x1 += dx2
			y1 += dy2
		}
	}
	return nil
}

// circle rasterizes a circle with the midpoint algorithm, plotting the
// eight symmetric points of each step.
func circle(cx, cy, r int, plot func(x, y int) error) error {
	x, y, e := r, 0, 0
	for x >= y {
		for _, p := range [8][2]int{
			{cx + x, cy + y},
			{cx + y, cy + x},
			{cx - y, cy + x},
			{cx - x, cy + y},
			{cx - x, cy - y},
			{cx - y, cy - x},
			{cx + y, cy - x},
			{cx + x, cy - y},
		} {
			if err := plot(p[0], p[1]); err != nil {
				return err
			}
		}
		if e <= 0 {
			y++
			e += 2*y + 1
		}
		if e > 0 {
			x--
			e -= 2*x + 1
		}
	}
	return nil
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
