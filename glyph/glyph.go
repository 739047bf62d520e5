package glyph

import (
	"errors"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Glyph geometry.
const (
	Width   = 10 // Drawn columns per row
	Height  = 15 // Rows per glyph
	Advance = 10 // Pen advance per character

	rowBytes = 2
	// Stride is the number of bytes per glyph in a raw table.
	Stride = Height * rowBytes
	// First is the character stored at offset 0 of a raw table.
	First = ' '
	// Last is the last printable ASCII character.
	Last = '~'
)

// Bitmap is one glyph: Height rows, most significant bit = column 0.
type Bitmap [Height]uint16

// Bit reports whether the pixel at (x, y) is set.
func (b *Bitmap) Bit(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return b[y]&(0x8000>>uint(x)) != 0
}

// SetBit sets or clears the pixel at (x, y). Points outside the glyph are
// ignored.
func (b *Bitmap) SetBit(x, y int, on bool) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	mask := uint16(0x8000) >> uint(x)
	if on {
		b[y] |= mask
	} else {
		b[y] &^= mask
	}
}

// Empty reports whether no pixel is set.
func (b *Bitmap) Empty() bool {
	for _, r := range b {
		if r != 0 {
			return false
		}
	}
	return true
}

// ColorModel returns the color model of the glyph mask.
func (b *Bitmap) ColorModel() color.Model {
	return color.AlphaModel
}

// Bounds returns the glyph bounds.
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, Width, Height)
}

// At returns opaque for set pixels and transparent otherwise.
// It implements the image.Image interface.
func (b *Bitmap) At(x, y int) color.Color {
	if b.Bit(x, y) {
		return color.Alpha{A: 0xFF}
	}
	return color.Alpha{}
}

// Table is a read-only raw glyph table.
type Table struct {
	raw []byte
}

// New wraps raw, a table of Stride bytes per glyph starting at First.
// raw is not copied and must not be modified afterwards.
func New(raw []byte) (*Table, error) {
	if len(raw) == 0 || len(raw)%Stride != 0 {
		return nil, errors.New("glyph: table size must be a non-zero multiple of 30")
	}
	return &Table{raw: raw}, nil
}

// Len returns the number of glyphs in the table.
func (t *Table) Len() int {
	return len(t.raw) / Stride
}

// Lookup returns the glyph for character c.
func (t *Table) Lookup(c byte) (Bitmap, bool) {
	var b Bitmap
	if c < First {
		return b, false
	}
	base := int(c-First) * Stride
	if base >= len(t.raw) {
		return b, false
	}
	for i := range b {
		b[i] = uint16(t.raw[base+rowBytes*i])<<8 | uint16(t.raw[base+rowBytes*i+1])
	}
	return b, true
}

// FromFace renders the printable ASCII range of face into a table. Each
// glyph is centered horizontally in the cell and the face's line box is
// centered vertically. Pixels with coverage of at least one half are set.
func FromFace(face font.Face) *Table {
	raw := make([]byte, 0, (Last-First+1)*Stride)
	for c := rune(First); c <= Last; c++ {
		b := render(face, c)
		for _, row := range b {
			raw = append(raw, byte(row>>8), byte(row))
		}
	}
	return &Table{raw: raw}
}

func render(face font.Face, r rune) Bitmap {
	var b Bitmap
	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	top := (Height - ascent - descent) / 2
	if top < 0 {
		top = 0
	}
	left := 0
	if adv, ok := face.GlyphAdvance(r); ok && adv.Ceil() < Width {
		left = (Width - adv.Ceil()) / 2
	}

	dr, mask, mp, _, ok := face.Glyph(fixed.P(left, top+ascent), r)
	if !ok || mask == nil {
		return b
	}
	for y := dr.Min.Y; y < dr.Max.Y; y++ {
		for x := dr.Min.X; x < dr.Max.X; x++ {
			_, _, _, a := mask.At(mp.X+x-dr.Min.X, mp.Y+y-dr.Min.Y).RGBA()
			if a >= 0x8000 {
				b.SetBit(x, y, true)
			}
		}
	}
	return b
}

var (
	basicOnce  sync.Once
	basicTable *Table
)

// Basic returns the default table, rendered once from basicfont.Face7x13.
func Basic() *Table {
	basicOnce.Do(func() {
		basicTable = FromFace(basicfont.Face7x13)
	})
	return basicTable
}
