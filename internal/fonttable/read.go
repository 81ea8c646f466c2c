package fonttable

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/runenames"

	"github.com/YanWQ-monad/SUSTech-CS202-Project-CPU/internal/bitfont"
	"github.com/YanWQ-monad/SUSTech-CS202-Project-CPU/internal/bitfont/text"
)

// Read parses a font table back into height-row glyphs numbered from 0.
func Read(r io.Reader, height int) (*bitfont.Font, error) {
	if height <= 0 {
		height = bitfont.GlyphHeight
	}
	font := &bitfont.Font{
		Width:  bitfont.GlyphWidth,
		Height: height,
		Glyphs: make(map[rune]bitfont.Glyph),
	}

	scanner := bufio.NewScanner(r)
	var g bitfont.Glyph
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseUint(line, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad row %q", n, line)
		}
		g.Mask = append(g.Mask, uint32(v))
		if len(g.Mask) == height {
			font.Glyphs[rune(len(font.Glyphs))] = g
			g = bitfont.Glyph{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(g.Mask) != 0 {
		return nil, fmt.Errorf("trailing %d rows do not make a %d row glyph", len(g.Mask), height)
	}
	return font, nil
}

func label(ch rune) string {
	name := runenames.Name(ch)
	if unicode.IsPrint(ch) && ch != ' ' {
		return fmt.Sprintf("%c %s", ch, name)
	}
	return name
}

// Dump writes a text picture of font for checking by eye, one block per
// code. Blank glyphs are left out unless all is set.
func Dump(w io.Writer, font *bitfont.Font, all bool) error {
	codes := make([]int, 0, len(font.Glyphs))
	for ch := range font.Glyphs {
		codes = append(codes, int(ch))
	}
	sort.Ints(codes)

	bw := bufio.NewWriter(w)
	for _, c := range codes {
		g := font.Glyphs[rune(c)]
		if !all && g.Empty() {
			continue
		}
		fmt.Fprintf(bw, "# %02X %s\n", c, label(rune(c)))
		for _, m := range g.Mask {
			fmt.Fprintf(bw, "%02X  [%s]\n", c, text.BitsToRow(m, font.Width))
		}
	}
	return bw.Flush()
}
