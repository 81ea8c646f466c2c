// Package text reads and writes the per-glyph text format: one line per row,
// one character per pixel column, '_' for an unlit pixel and '*' for a lit one.
package text

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/YanWQ-monad/SUSTech-CS202-Project-CPU/internal/bitfont"
)

const (
	Unlit = '_'
	Lit   = '*'
)

var ErrBadRow = errors.New("bad glyph row")

// RowToBits transforms a 0-32-character-long string of '_' and '*' into a
// row mask, first character in the LSB.
func RowToBits(t string) (uint32, error) {
	if len(t) > bitfont.MaxWidth {
		return 0, fmt.Errorf("%w: %d columns is wider than %d", ErrBadRow, len(t), bitfont.MaxWidth)
	}
	if len(t) == 0 {
		return 0, nil
	}
	var o uint32
	for i := 0; i < len(t); i++ {
		o >>= 1
		switch t[i] {
		case Lit:
			o |= 0x80000000
		case Unlit:
		default:
			return 0, fmt.Errorf("%w: unexpected %q in %q", ErrBadRow, t[i], t)
		}
	}
	o >>= bitfont.MaxWidth - len(t)
	return o, nil
}

// BitsToRow renders the low w bits of b, LSB first.
func BitsToRow(b uint32, w int) string {
	var sb strings.Builder
	sb.Grow(w)
	for i := 0; i < w; i++ {
		if (b & 1) == 1 {
			sb.WriteByte(Lit)
		} else {
			sb.WriteByte(Unlit)
		}
		b >>= 1
	}
	return sb.String()
}

// Decode reads one glyph. Surrounding whitespace on each line is ignored and
// blank lines are skipped. The returned width is that of the widest row.
func Decode(r io.Reader) (g bitfont.Glyph, width int, err error) {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		m, err := RowToBits(line)
		if err != nil {
			return bitfont.Glyph{}, 0, fmt.Errorf("line %d: %w", n, err)
		}
		if len(line) > width {
			width = len(line)
		}
		g.Mask = append(g.Mask, m)
	}
	if err := scanner.Err(); err != nil {
		return bitfont.Glyph{}, 0, err
	}
	return g, width, nil
}

// Encode writes g as width-column rows, each terminated by a newline.
func Encode(w io.Writer, g bitfont.Glyph, width int) error {
	bw := bufio.NewWriter(w)
	for _, m := range g.Mask {
		bw.WriteString(BitsToRow(m, width))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
