// Package glyph provides the fixed-size bitmap font used by the ILI9488 text
// layer.
//
// Every glyph is 10 pixels wide and 15 pixels tall. A row is a 16-bit
// pattern whose most significant bit is the leftmost column; only the top
// 10 bits are drawn.
//
// Raw tables store two bytes per row, high byte first, 30 bytes per glyph,
// starting at the space character:
//
//	offset = (c - ' ') * 30
//
//	Row bits: 1111111111000000
//	Bytes:    0xFF      0xC0
//
// This package provides:
//
// - Bitmap: one glyph, usable as an image.Image alpha mask
// - Table: a raw glyph table with lookup by character code
// - FromFace: builds a Table from any golang.org/x/image/font.Face
// - Basic: a Table rendered from basicfont.Face7x13
//
// Example usage:
//
//	t := glyph.Basic()
//	g, ok := t.Lookup('A')
//	if ok && g.Bit(3, 5) {
//		// pixel (3, 5) of 'A' is set
//	}
package glyph
