// Package bitfont holds the in-memory form of a fixed-size bitmap font as it
// is laid out in the character ROM.
//
// Each glyph row is a bitmask stored "backwards": the leftmost pixel of the
// row is the least significant bit. A row of the default 8-pixel-wide font
// therefore fits a single ROM byte.
package bitfont

const (
	// GlyphWidth and GlyphHeight are the dimensions of a character cell.
	GlyphWidth  = 8
	GlyphHeight = 16

	// Threshold is the largest intensity still considered unlit.
	Threshold = 127

	// Codes is the number of character codes in a font table (0x00-0xFF).
	Codes = 256

	// MaxWidth is the widest row a mask can hold.
	MaxWidth = 32
)

type Glyph struct {
	Mask []uint32
}

// Blank returns a glyph of height unlit rows.
func Blank(height int) Glyph {
	return Glyph{Mask: make([]uint32, height)}
}

// Lit reports whether pixel x of row y is set.
func (g Glyph) Lit(x, y int) bool {
	if y < 0 || y >= len(g.Mask) || x < 0 || x >= MaxWidth {
		return false
	}
	return g.Mask[y]&(1<<uint(x)) != 0
}

// Empty reports whether no pixel of the glyph is lit.
func (g Glyph) Empty() bool {
	for _, m := range g.Mask {
		if m != 0 {
			return false
		}
	}
	return true
}

type Font struct {
	Width, Height int
	Glyphs        map[rune]Glyph
}

// Glyph returns the glyph for ch, or a blank glyph of the font's height.
func (f *Font) Glyph(ch rune) Glyph {
	if g, ok := f.Glyphs[ch]; ok {
		return g
	}
	return Blank(f.Height)
}
