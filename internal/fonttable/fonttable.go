// Package fonttable produces the character ROM image: a font.txt holding one
// two-digit hex byte per line, 16 rows for each of the codes 0x00-0xFF.
//
// The table is built in two steps. Extract thresholds one image per character
// into a directory of <HEX>.txt glyph files, which can be touched up by hand,
// and Build packs that directory into the table.
package fonttable

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/YanWQ-monad/SUSTech-CS202-Project-CPU/internal/bitfont"
	"github.com/YanWQ-monad/SUSTech-CS202-Project-CPU/internal/bitfont/text"
	"github.com/YanWQ-monad/SUSTech-CS202-Project-CPU/internal/logx"
)

var ErrRowOverflow = errors.New("glyph row does not fit a byte")

// GlyphFileName is the name of the glyph file for code, e.g. "41.txt".
func GlyphFileName(code rune) string {
	return fmt.Sprintf("%02X.txt", code)
}

type BuildOptions struct {
	// rows emitted for codes without a glyph file, zero means GlyphHeight
	Height int
	Log    logx.Logger
}

func (o *BuildOptions) height() int {
	if o == nil || o.Height <= 0 {
		return bitfont.GlyphHeight
	}
	return o.Height
}

func logger(l logx.Logger) logx.Logger {
	if l == nil {
		return logx.NopLogger{}
	}
	return l
}

// LoadGlyph reads the glyph file for code in dir. A missing file is not an
// error: ok is false and the glyph is blank.
func LoadGlyph(dir string, code rune, height int) (g bitfont.Glyph, ok bool, err error) {
	name := filepath.Join(dir, GlyphFileName(code))
	f, err := os.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return bitfont.Blank(height), false, nil
		}
		return bitfont.Glyph{}, false, err
	}
	defer f.Close()

	g, _, err = text.Decode(f)
	if err != nil {
		return bitfont.Glyph{}, false, fmt.Errorf("%s: %w", name, err)
	}
	return g, true, nil
}

// Build writes the font table for the glyph files in dir to w.
func Build(dir string, w io.Writer, options *BuildOptions) error {
	var log logx.Logger
	if options != nil {
		log = options.Log
	}
	log = logger(log)
	height := options.height()

	bw := bufio.NewWriter(w)
	found := 0
	for code := rune(0); code < bitfont.Codes; code++ {
		g, ok, err := LoadGlyph(dir, code, height)
		if err != nil {
			return err
		}
		if ok {
			found++
			if len(g.Mask) != height {
				log.LogPrintf(logx.NOTICE, "%s is %d rows high, expected %d", GlyphFileName(code), len(g.Mask), height)
			}
		} else {
			log.LogPrintf(logx.DEBUG, "no glyph for %02X, using blank", code)
		}
		for y, m := range g.Mask {
			if m > 0xff {
				return fmt.Errorf("%s row %d: %w", GlyphFileName(code), y, ErrRowOverflow)
			}
			fmt.Fprintf(bw, "%02x\n", m)
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	log.LogPrintf(logx.INFO, "packed %d glyphs from %s", found, dir)
	return nil
}

// BuildFile is Build writing to the file out.
func BuildFile(dir, out string, options *BuildOptions) (err error) {
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Build(dir, f, options)
}
