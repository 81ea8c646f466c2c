package image

import (
	"image"
	"io"

	"github.com/disintegration/imaging"

	"github.com/YanWQ-monad/SUSTech-CS202-Project-CPU/internal/bitfont"
)

// SheetOptions describe a glyph sheet: a grid of equally sized cells laid out
// in code order, Columns cells per row, starting at code First.
type SheetOptions struct {
	Columns   int
	Cell      image.Point
	First     rune
	Threshold uint8

	// KeepBlank also returns cells without a lit pixel.
	KeepBlank bool
}

func (o *SheetOptions) defaults() SheetOptions {
	s := SheetOptions{
		Columns: 16,
		Cell:    image.Pt(bitfont.GlyphWidth, bitfont.GlyphHeight),
	}
	if o == nil {
		return s
	}
	if o.Columns > 0 {
		s.Columns = o.Columns
	}
	if o.Cell.X > 0 {
		s.Cell.X = o.Cell.X
	}
	if o.Cell.Y > 0 {
		s.Cell.Y = o.Cell.Y
	}
	s.First = o.First
	s.Threshold = o.Threshold
	s.KeepBlank = o.KeepBlank
	return s
}

// Slice cuts img into cells and thresholds each of them. Partial cells at the
// right and bottom edges are ignored.
func Slice(img image.Image, options *SheetOptions) (*bitfont.Font, error) {
	o := options.defaults()
	bounds := img.Bounds()
	cols := bounds.Dx() / o.Cell.X
	if cols > o.Columns {
		cols = o.Columns
	}
	rows := bounds.Dy() / o.Cell.Y

	font := &bitfont.Font{
		Width:  o.Cell.X,
		Height: o.Cell.Y,
		Glyphs: make(map[rune]bitfont.Glyph),
	}
	// the sampled channel is chosen once for the whole sheet
	l := layoutOf(img)
	t := (&Options{Threshold: o.Threshold}).threshold()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			origin := bounds.Min.Add(image.Pt(col*o.Cell.X, row*o.Cell.Y))
			g, _, err := l.threshold(image.Rectangle{Min: origin, Max: origin.Add(o.Cell)}, t)
			if err != nil {
				return nil, err
			}
			if g.Empty() && !o.KeepBlank {
				continue
			}
			font.Glyphs[o.First+rune(row*o.Columns+col)] = g
		}
	}
	return font, nil
}

func DecodeSheet(r io.Reader, options *SheetOptions) (*bitfont.Font, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, err
	}
	return Slice(img, options)
}

func OpenSheet(filename string, options *SheetOptions) (*bitfont.Font, error) {
	img, err := imaging.Open(filename)
	if err != nil {
		return nil, err
	}
	return Slice(img, options)
}
