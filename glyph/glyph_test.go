package glyph

import (
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/font/basicfont"
)

func rawTable(glyphs ...Bitmap) []byte {
	var raw []byte
	for _, g := range glyphs {
		for _, row := range g {
			raw = append(raw, byte(row>>8), byte(row))
		}
	}
	return raw
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
		wantLen int
	}{
		{"one glyph", 30, false, 1},
		{"full ASCII", 95 * 30, false, 95},
		{"empty", 0, true, 0},
		{"short", 29, true, 0},
		{"ragged", 45, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab, err := New(make([]byte, tt.size))
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && tab.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", tab.Len(), tt.wantLen)
			}
		})
	}
}

func TestTableLookup(t *testing.T) {
	var bang Bitmap
	bang[0] = 0xFFC0 // all ten columns
	bang[14] = 0x8001
	tab, err := New(rawTable(Bitmap{}, bang))
	if err != nil {
		t.Fatal(err)
	}

	// Raw layout: row 0 of '!' starts at (c - ' ') * 30.
	if raw := tab.raw[30:32]; raw[0] != 0xFF || raw[1] != 0xC0 {
		t.Errorf("raw row = % X, want FF C0", raw)
	}

	g, ok := tab.Lookup('!')
	if !ok {
		t.Fatal("Lookup('!') not found")
	}
	if g != bang {
		t.Errorf("Lookup('!') = %v, want %v", g, bang)
	}
	for x := 0; x < Width; x++ {
		if !g.Bit(x, 0) {
			t.Errorf("Bit(%d, 0) = false, want true", x)
		}
	}
	if !g.Bit(0, 14) {
		t.Error("Bit(0, 14) = false, want true")
	}

	if g, ok := tab.Lookup(' '); !ok || !g.Empty() {
		t.Errorf("Lookup(' ') = %v, %v; want empty glyph", g, ok)
	}
	for _, c := range []byte{'"', '~', 0x1F, 0, 0xFF} {
		if _, ok := tab.Lookup(c); ok {
			t.Errorf("Lookup(%#x) found, want missing", c)
		}
	}
}

func TestBitmapSetBit(t *testing.T) {
	var b Bitmap
	b.SetBit(0, 0, true)
	b.SetBit(9, 14, true)
	b.SetBit(10, 0, true) // out of range, ignored
	b.SetBit(-1, 3, true)
	b.SetBit(2, 15, true)

	if b[0] != 0x8000 {
		t.Errorf("row 0 = %#04x, want 0x8000", b[0])
	}
	if b[14] != 0x0040 {
		t.Errorf("row 14 = %#04x, want 0x0040", b[14])
	}
	for _, r := range b[1:14] {
		if r != 0 {
			t.Fatalf("unexpected bits in %v", b)
		}
	}

	b.SetBit(0, 0, false)
	if b[0] != 0 {
		t.Errorf("row 0 = %#04x after clear, want 0", b[0])
	}
	if b.Bit(10, 0) || b.Bit(0, -1) {
		t.Error("Bit outside the glyph must be false")
	}
}

func TestBitmapImage(t *testing.T) {
	var b Bitmap
	b.SetBit(3, 4, true)

	if got := b.Bounds(); got != image.Rect(0, 0, Width, Height) {
		t.Errorf("Bounds() = %v", got)
	}
	if b.ColorModel() != color.AlphaModel {
		t.Error("ColorModel() did not return AlphaModel")
	}
	if got := b.At(3, 4); got != (color.Alpha{A: 0xFF}) {
		t.Errorf("At(3, 4) = %v, want opaque", got)
	}
	if got := b.At(4, 3); got != (color.Alpha{}) {
		t.Errorf("At(4, 3) = %v, want transparent", got)
	}

	var _ image.Image = &b
}

func TestBasic(t *testing.T) {
	tab := Basic()
	if tab != Basic() {
		t.Error("Basic() must return the same table")
	}
	if tab.Len() != Last-First+1 {
		t.Fatalf("Len() = %d, want %d", tab.Len(), Last-First+1)
	}

	for c := byte(First); c <= Last; c++ {
		g, ok := tab.Lookup(c)
		if !ok {
			t.Fatalf("Lookup(%q) missing", c)
		}
		for y, row := range g {
			if row&0x003F != 0 {
				t.Errorf("%q row %d = %#04x uses bits past column 10", c, y, row)
			}
		}
		if c == ' ' {
			if !g.Empty() {
				t.Error("space glyph is not empty")
			}
			continue
		}
		if g.Empty() {
			t.Errorf("glyph %q is empty", c)
		}
	}
	if _, ok := tab.Lookup(Last + 1); ok {
		t.Error("DEL must not be in the table")
	}
}

func TestFromFaceMatchesBasic(t *testing.T) {
	tab := FromFace(basicfont.Face7x13)
	for _, c := range []byte{'A', 'g', '|', '@'} {
		got, _ := tab.Lookup(c)
		want, _ := Basic().Lookup(c)
		if got != want {
			t.Errorf("%q differs between FromFace and Basic", c)
		}
	}
}

func TestFromFacePlacement(t *testing.T) {
	// Face7x13 is 13 rows tall: one blank row above and below in the cell,
	// and its 7px advance leaves one blank column on the left.
	g, _ := FromFace(basicfont.Face7x13).Lookup('|')
	if g[0] != 0 || g[14] != 0 {
		t.Errorf("'|' touches the cell edge: %v", g)
	}
	for y := 0; y < Height; y++ {
		if g.Bit(0, y) {
			t.Errorf("'|' has a pixel in column 0, row %d", y)
		}
	}
}
