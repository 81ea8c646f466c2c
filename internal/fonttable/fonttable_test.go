package fonttable

import (
	"bytes"
	stdimage "image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YanWQ-monad/SUSTech-CS202-Project-CPU/internal/bitfont"
	"github.com/YanWQ-monad/SUSTech-CS202-Project-CPU/internal/logx"
)

var glyphA = []string{
	"________",
	"________",
	"___**___",
	"__*__*__",
	"_*____*_",
	"_*____*_",
	"_*____*_",
	"_******_",
	"_*____*_",
	"_*____*_",
	"_*____*_",
	"_*____*_",
	"________",
	"________",
	"________",
	"________",
}

var hexA = []string{
	"00", "00", "18", "24", "42", "42", "42", "7e",
	"42", "42", "42", "42", "00", "00", "00", "00",
}

func writeGlyphText(t *testing.T, dir string, code rune, rows []string) {
	t.Helper()
	content := strings.Join(rows, "\n") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, GlyphFileName(code)), []byte(content), 0644))
}

func writeGlyphPNG(t *testing.T, dir, name string, rows []string) {
	t.Helper()
	img := stdimage.NewGray(stdimage.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			if row[x] == '*' {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0644))
}

func buildLines(t *testing.T, dir string) []string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Build(dir, &buf, nil))
	out := buf.String()
	require.True(t, strings.HasSuffix(out, "\n"))
	return strings.Split(strings.TrimSuffix(out, "\n"), "\n")
}

func TestGlyphFileName(t *testing.T) {
	assert.Equal(t, "00.txt", GlyphFileName(0))
	assert.Equal(t, "0A.txt", GlyphFileName(0x0a))
	assert.Equal(t, "FF.txt", GlyphFileName(0xff))
}

func TestBuildEmpty(t *testing.T) {
	lines := buildLines(t, t.TempDir())
	require.Len(t, lines, bitfont.Codes*bitfont.GlyphHeight)
	for i, l := range lines {
		if l != "00" {
			t.Fatalf("line %d: expected 00 got %q", i, l)
		}
	}
}

func TestBuildMissingDirectory(t *testing.T) {
	lines := buildLines(t, filepath.Join(t.TempDir(), "font_data"))
	assert.Len(t, lines, 4096)
}

func TestBuildGlyph(t *testing.T) {
	dir := t.TempDir()
	writeGlyphText(t, dir, 'A', glyphA)

	lines := buildLines(t, dir)
	require.Len(t, lines, 4096)
	assert.Equal(t, hexA, lines[0x41*16:0x42*16])
	for i, l := range lines {
		if i >= 0x41*16 && i < 0x42*16 {
			continue
		}
		if l != "00" {
			t.Fatalf("line %d: expected 00 got %q", i, l)
		}
	}
}

func TestBuildFullyLit(t *testing.T) {
	dir := t.TempDir()
	rows := make([]string, 16)
	for i := range rows {
		rows[i] = "********"
	}
	writeGlyphText(t, dir, 0xdb, rows)

	lines := buildLines(t, dir)
	for i := 0; i < 16; i++ {
		assert.Equal(t, "ff", lines[0xdb*16+i])
	}
}

func TestBuildBitOrder(t *testing.T) {
	dir := t.TempDir()
	writeGlyphText(t, dir, 0, []string{"*_______", "_______*", "**__*___", "  ____***_\r"})

	lines := buildLines(t, dir)
	// a short glyph contributes only its own rows
	assert.Len(t, lines, 4+255*16)
	assert.Equal(t, []string{"01", "80", "13", "70"}, lines[:4])
}

func TestBuildErrors(t *testing.T) {
	dir := t.TempDir()
	writeGlyphText(t, dir, 'B', []string{"___x____"})
	var buf bytes.Buffer
	err := Build(dir, &buf, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "42.txt")

	dir = t.TempDir()
	writeGlyphText(t, dir, 'W', []string{"*********"})
	err = Build(dir, &buf, nil)
	assert.ErrorIs(t, err, ErrRowOverflow)
}

func TestBuildHeightAndLog(t *testing.T) {
	var logbuf bytes.Buffer
	var buf bytes.Buffer
	err := Build(t.TempDir(), &buf, &BuildOptions{
		Height: 8,
		Log:    logx.NewLogToX(logx.NewWriterLogger(&logbuf, logx.INFO), "build"),
	})
	require.NoError(t, err)
	assert.Equal(t, 256*8, strings.Count(buf.String(), "\n"))
	assert.Contains(t, logbuf.String(), "packed 0 glyphs")
}

func TestBuildOddHeightNotice(t *testing.T) {
	dir := t.TempDir()
	writeGlyphText(t, dir, 'A', glyphA[:2])
	writeGlyphText(t, dir, 'B', nil)
	writeGlyphText(t, dir, 'C', glyphA)

	var logbuf bytes.Buffer
	var buf bytes.Buffer
	err := Build(dir, &buf, &BuildOptions{
		Log: logx.NewLogToX(logx.NewWriterLogger(&logbuf, logx.INFO), "build"),
	})
	require.NoError(t, err)
	// the table is still written, just not 4096 lines long
	assert.Equal(t, 256*16-14-16, strings.Count(buf.String(), "\n"))

	out := logbuf.String()
	assert.Contains(t, out, "41.txt is 2 rows high, expected 16")
	assert.Contains(t, out, "42.txt is 0 rows high, expected 16")
	assert.NotContains(t, out, "43.txt")
	assert.Contains(t, out, "NOTICE")
}

func TestBuildFile(t *testing.T) {
	dir := t.TempDir()
	writeGlyphText(t, dir, 'A', glyphA)
	out := filepath.Join(t.TempDir(), "font.txt")
	require.NoError(t, BuildFile(dir, out, nil))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	font, err := Read(f, 16)
	require.NoError(t, err)
	assert.Len(t, font.Glyphs, 256)
	assert.Equal(t, uint32(0x7e), font.Glyphs['A'].Mask[7])

	assert.Error(t, BuildFile(dir, filepath.Join(out, "nested"), nil))
}

func TestCodeFromName(t *testing.T) {
	testcases := []struct {
		name string
		code rune
		ok   bool
	}{
		{"41.png", 0x41, true},
		{"0041.png", 0x41, true},
		{"font_images/7f.bmp", 0x7f, true},
		{"FF.png", 0xff, true},
		{"0100.png", 0x100, true},
		{"A-glyph.png", 0, false},
		{".png", 0, false},
		{"FFFFFFFF.png", 0, false},
	}
	for _, tc := range testcases {
		code, err := CodeFromName(tc.name)
		if tc.ok {
			require.NoError(t, err, tc.name)
			assert.Equal(t, tc.code, code, tc.name)
		} else {
			assert.Error(t, err, tc.name)
		}
	}
}

func TestExtractThenBuild(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "font_data")
	writeGlyphPNG(t, src, "0041.png", glyphA)
	writeGlyphPNG(t, src, "21.png", []string{"___*____", "___*____", "________", "___*____"})
	writeGlyphPNG(t, src, "0100.png", glyphA)
	writeGlyphPNG(t, src, "cover.png", glyphA)
	writeGlyphPNG(t, src, "42.gif", glyphA)
	require.NoError(t, os.Mkdir(filepath.Join(src, "43.png"), 0755))

	var logbuf bytes.Buffer
	n, err := Extract(src, dst, &ExtractOptions{
		Log: logx.NewLogToX(logx.NewWriterLogger(&logbuf, logx.DEBUG), "extract"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Contains(t, logbuf.String(), "0100.png")
	assert.Contains(t, logbuf.String(), "cover.png")

	b, err := os.ReadFile(filepath.Join(dst, "41.txt"))
	require.NoError(t, err)
	assert.Equal(t, strings.Join(glyphA, "\n")+"\n", string(b))

	b, err = os.ReadFile(filepath.Join(dst, "21.txt"))
	require.NoError(t, err)
	assert.Equal(t, "___*____\n___*____\n________\n___*____\n", string(b))

	_, err = os.Stat(filepath.Join(dst, "42.txt"))
	assert.True(t, os.IsNotExist(err))

	lines := buildLines(t, dst)
	assert.Len(t, lines, 4+255*16)
	assert.Equal(t, []string{"08", "08", "00", "08"}, lines[0x21*16:0x21*16+4])
}

func TestExtractMatch(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeGlyphPNG(t, src, "0041.png", glyphA)
	writeGlyphPNG(t, src, "0141.png", glyphA)
	writeGlyphPNG(t, src, "41.png", glyphA)

	n, err := Extract(src, dst, &ExtractOptions{Match: "00??.png"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = Extract(filepath.Join(src, "missing"), dst, nil)
	assert.Error(t, err)
}

func TestExtractBadImage(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "41.png"), []byte("garbage"), 0644))
	_, err := Extract(src, t.TempDir(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "41.png")
}

func TestWriteFont(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "glyphs")
	font := &bitfont.Font{
		Width:  8,
		Height: 2,
		Glyphs: map[rune]bitfont.Glyph{
			0x30:  {Mask: []uint32{0x3c, 0x42}},
			0x100: {Mask: []uint32{0xff, 0xff}},
		},
	}
	n, err := WriteFont(dst, font, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	b, err := os.ReadFile(filepath.Join(dst, "30.txt"))
	require.NoError(t, err)
	assert.Equal(t, "__****__\n_*____*_\n", string(b))
}
