package fonttable

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gobwas/glob"

	"github.com/YanWQ-monad/SUSTech-CS202-Project-CPU/internal/bitfont"
	"github.com/YanWQ-monad/SUSTech-CS202-Project-CPU/internal/bitfont/image"
	"github.com/YanWQ-monad/SUSTech-CS202-Project-CPU/internal/bitfont/text"
	"github.com/YanWQ-monad/SUSTech-CS202-Project-CPU/internal/logx"
)

type ExtractOptions struct {
	// glob matched against file names in the source directory,
	// empty means "*.png"
	Match string
	Image *image.Options
	Log   logx.Logger
}

// CodeFromName parses the character code out of an image name such as
// "41.png" or "0041.png".
func CodeFromName(name string) (rune, error) {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	code, err := strconv.ParseUint(base, 16, 31)
	if err != nil {
		return 0, fmt.Errorf("%s: not a hex character code", name)
	}
	return rune(code), nil
}

// WriteGlyph writes g as the glyph file for code in dir.
func WriteGlyph(dir string, code rune, g bitfont.Glyph, width int) (err error) {
	f, err := os.Create(filepath.Join(dir, GlyphFileName(code)))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return text.Encode(f, g, width)
}

// Extract thresholds every matching image in src into a glyph file in dst
// and returns how many were written. Names that are not a character code, or
// name a code past 0xFF, are skipped with a warning.
func Extract(src, dst string, options *ExtractOptions) (int, error) {
	var o ExtractOptions
	if options != nil {
		o = *options
	}
	if o.Match == "" {
		o.Match = "*.png"
	}
	log := logger(o.Log)

	g, err := glob.Compile(o.Match)
	if err != nil {
		return 0, fmt.Errorf("bad match pattern %q: %w", o.Match, err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		return 0, err
	}

	n := 0
	for _, e := range entries {
		if e.IsDir() || !g.Match(e.Name()) {
			continue
		}
		code, err := CodeFromName(e.Name())
		if err != nil {
			log.LogPrintf(logx.WARN, "skipping %v", err)
			continue
		}
		if code >= bitfont.Codes {
			log.LogPrintf(logx.WARN, "skipping %s: code %#x is outside the table", e.Name(), code)
			continue
		}

		glyph, width, err := image.Open(filepath.Join(src, e.Name()), o.Image)
		if err != nil {
			return n, fmt.Errorf("%s: %w", e.Name(), err)
		}
		if len(glyph.Mask) != bitfont.GlyphHeight {
			log.LogPrintf(logx.NOTICE, "%s is %d rows high", e.Name(), len(glyph.Mask))
		}
		if err := WriteGlyph(dst, code, glyph, width); err != nil {
			return n, err
		}
		log.LogPrintf(logx.DEBUG, "%s -> %s", e.Name(), GlyphFileName(code))
		n++
	}
	log.LogPrintf(logx.INFO, "extracted %d glyphs into %s", n, dst)
	return n, nil
}

// WriteFont writes every glyph of font with a code inside the table to dst.
func WriteFont(dst string, font *bitfont.Font, log logx.Logger) (int, error) {
	log = logger(log)
	if err := os.MkdirAll(dst, 0755); err != nil {
		return 0, err
	}

	codes := make([]int, 0, len(font.Glyphs))
	for ch := range font.Glyphs {
		codes = append(codes, int(ch))
	}
	sort.Ints(codes)

	n := 0
	for _, c := range codes {
		if c >= bitfont.Codes {
			log.LogPrintf(logx.WARN, "dropping glyph %#x: outside the table", c)
			continue
		}
		if err := WriteGlyph(dst, rune(c), font.Glyphs[rune(c)], font.Width); err != nil {
			return n, err
		}
		n++
	}
	log.LogPrintf(logx.INFO, "wrote %d glyphs into %s", n, dst)
	return n, nil
}
