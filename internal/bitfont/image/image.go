// Package image thresholds glyph bitmaps into row masks.
//
// A pixel is lit when the last interleaved channel of its decoded layout
// exceeds the threshold. Gray images compare the full sample, 16-bit ones
// included. Images stored with alpha (gray+alpha, RGBA) compare alpha and
// RGB images compare blue. Other decodings are converted to NRGBA first.
package image

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"

	"github.com/YanWQ-monad/SUSTech-CS202-Project-CPU/internal/bitfont"

	// glyph sources come in whatever the artist exported
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrTooWide = errors.New("glyph too wide")

type Options struct {
	// window is an optional subregion of the image to threshold,
	// an empty Size extends it to the image edge
	Offset image.Point
	Size   image.Point

	// zero selects bitfont.Threshold
	Threshold uint8
}

func (o *Options) threshold() uint8 {
	if o == nil || o.Threshold == 0 {
		return bitfont.Threshold
	}
	return o.Threshold
}

func (o *Options) window(b image.Rectangle) image.Rectangle {
	if o == nil {
		return b
	}
	w := b
	w.Min = b.Min.Add(o.Offset)
	if o.Size.X != 0 {
		w.Max.X = w.Min.X + o.Size.X
	}
	if o.Size.Y != 0 {
		w.Max.Y = w.Min.Y + o.Size.Y
	}
	return w.Intersect(b)
}

// layout describes where the sampled channel of each pixel sits in Pix.
type layout struct {
	pix    []uint8
	stride int  // bytes per row
	step   int  // bytes per pixel
	ch     int  // offset of the sampled channel within a pixel
	wide   bool // big endian 16-bit samples
	rect   image.Rectangle
}

func (l *layout) at(x, y int) uint32 {
	i := (y-l.rect.Min.Y)*l.stride + (x-l.rect.Min.X)*l.step + l.ch
	if l.wide {
		return uint32(l.pix[i])<<8 | uint32(l.pix[i+1])
	}
	return uint32(l.pix[i])
}

// layoutOf picks the sampled channel from the decoded type. image/png decodes
// colour type 2 to RGBA and types 4 and 6 to NRGBA, so the Go type tells
// whether the file carried alpha even when every pixel is opaque.
func layoutOf(img image.Image) layout {
	switch m := img.(type) {
	case *image.Gray:
		return layout{pix: m.Pix, stride: m.Stride, step: 1, rect: m.Rect}
	case *image.Gray16:
		return layout{pix: m.Pix, stride: m.Stride, step: 2, wide: true, rect: m.Rect}
	case *image.NRGBA:
		return layout{pix: m.Pix, stride: m.Stride, step: 4, ch: 3, rect: m.Rect}
	case *image.RGBA:
		return layout{pix: m.Pix, stride: m.Stride, step: 4, ch: 2, rect: m.Rect}
	}
	// paletted, YCbCr and friends: nothing says how the file was laid out,
	// so fall back to alpha only when some pixel is transparent
	n := imaging.Clone(img)
	l := layout{pix: n.Pix, stride: n.Stride, step: 4, ch: 3, rect: n.Rect}
	if n.Opaque() {
		l.ch = 2
	}
	return l
}

// Threshold converts img (within the options window) into a glyph, one mask
// per pixel row, and returns the window width.
func Threshold(img image.Image, options *Options) (bitfont.Glyph, int, error) {
	l := layoutOf(img)
	return l.threshold(options.window(img.Bounds()), options.threshold())
}

func (l *layout) threshold(bounds image.Rectangle, t uint8) (bitfont.Glyph, int, error) {
	if bounds.Dx() > bitfont.MaxWidth {
		return bitfont.Glyph{}, 0, fmt.Errorf("%w: %d pixels", ErrTooWide, bounds.Dx())
	}
	g := bitfont.Glyph{Mask: make([]uint32, 0, bounds.Dy())}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		var m uint32
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if l.at(x, y) > uint32(t) {
				m |= 1 << uint(x-bounds.Min.X)
			}
		}
		g.Mask = append(g.Mask, m)
	}
	return g, bounds.Dx(), nil
}

func Decode(r io.Reader, options *Options) (bitfont.Glyph, int, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return bitfont.Glyph{}, 0, err
	}
	return Threshold(img, options)
}

func Open(filename string, options *Options) (bitfont.Glyph, int, error) {
	img, err := imaging.Open(filename)
	if err != nil {
		return bitfont.Glyph{}, 0, err
	}
	return Threshold(img, options)
}
