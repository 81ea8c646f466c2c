package image

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YanWQ-monad/SUSTech-CS202-Project-CPU/internal/bitfont"
)

var glyphI = []string{
	"________",
	"__****__",
	"___**___",
	"___**___",
	"___**___",
	"___**___",
	"__****__",
	"________",
	"________",
	"________",
	"________",
	"________",
	"________",
	"________",
	"________",
	"________",
}

// drawCell paints rows into the cell for code (relative to the sheet's first
// code) of a 16-column sheet of 8x16 cells.
func drawCell(img interface{ Set(x, y int, c color.Color) }, code int, rows []string, on color.Color) {
	ox, oy := (code%16)*8, (code/16)*16
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			if row[x] == '*' {
				img.Set(ox+x, oy+y, on)
			}
		}
	}
}

func TestSliceGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 128, 32))
	drawCell(img, 0x01, glyphA, color.Gray{Y: 255})
	drawCell(img, 0x11, glyphI, color.Gray{Y: 255})

	font, err := Slice(img, nil)
	require.NoError(t, err)
	assert.Equal(t, bitfont.GlyphWidth, font.Width)
	assert.Equal(t, bitfont.GlyphHeight, font.Height)
	require.Len(t, font.Glyphs, 2)
	assertGlyphMask(t, font.Glyphs[0x01], glyphA...)
	assertGlyphMask(t, font.Glyphs[0x11], glyphI...)

	// missing cells fall back to blank
	assert.True(t, font.Glyph(0x02).Empty())
	assert.Len(t, font.Glyph(0x02).Mask, bitfont.GlyphHeight)
}

func TestSliceKeepBlankAndFirst(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 128, 32))
	drawCell(img, 0x01, glyphA, color.Gray{Y: 255})

	font, err := Slice(img, &SheetOptions{First: 0x40, KeepBlank: true})
	require.NoError(t, err)
	assert.Len(t, font.Glyphs, 32)
	assertGlyphMask(t, font.Glyphs['A'], glyphA...)
	assert.True(t, font.Glyphs['@'].Empty())
	assert.True(t, font.Glyphs[0x5f].Empty())
}

func TestSliceTransparentSheet(t *testing.T) {
	// a fully lit cell must not flip the sheet to colour sampling
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 255})
		}
	}

	font, err := Slice(img, &SheetOptions{Columns: 2})
	require.NoError(t, err)
	require.Len(t, font.Glyphs, 1)
	for i, m := range font.Glyphs[0].Mask {
		assert.Equalf(t, uint32(0xff), m, "row %d", i)
	}
}

func TestSliceOpaqueAlphaSheet(t *testing.T) {
	// an NRGBA sheet with no transparent pixel at all is still sampled on alpha
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 255})
		}
	}

	font, err := Slice(img, &SheetOptions{Columns: 2})
	require.NoError(t, err)
	require.Len(t, font.Glyphs, 2)
	for _, ch := range []rune{0, 1} {
		for i, m := range font.Glyphs[ch].Mask {
			assert.Equalf(t, uint32(0xff), m, "glyph %d row %d", ch, i)
		}
	}
}

func TestSliceColumnsAndPartialCells(t *testing.T) {
	// 3 cells wide, 1.5 cells high, but only 2 columns per row
	img := image.NewGray(image.Rect(0, 0, 15, 12))
	for y := 0; y < 12; y++ {
		for x := 0; x < 15; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	font, err := Slice(img, &SheetOptions{Columns: 2, Cell: image.Pt(5, 8)})
	require.NoError(t, err)
	assert.Equal(t, 5, font.Width)
	assert.Equal(t, 8, font.Height)
	require.Len(t, font.Glyphs, 2)
	for _, ch := range []rune{0, 1} {
		g := font.Glyphs[ch]
		require.Len(t, g.Mask, 8)
		assert.Equal(t, uint32(0b11111), g.Mask[0])
	}
}

func TestOpenSheet(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 128, 16))
	drawCell(img, 0x0f, glyphI, color.Gray{Y: 200})

	name := filepath.Join(t.TempDir(), "sheet.png")
	require.NoError(t, os.WriteFile(name, encodePNG(t, img).Bytes(), 0644))

	font, err := OpenSheet(name, nil)
	require.NoError(t, err)
	require.Len(t, font.Glyphs, 1)
	assertGlyphMask(t, font.Glyphs[0x0f], glyphI...)
}
