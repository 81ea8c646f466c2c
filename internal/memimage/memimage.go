// Package memimage pads a text memory image, one binary word per line, out
// to the fixed depth of the memory it initialises.
package memimage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	// Depth is the number of words in the instruction memory.
	Depth = 8192
	// Fill is the word appended to reach Depth.
	Fill = "00000000"
)

var ErrOverflow = errors.New("memory image overflow")

// Pad returns lines extended with fill until it holds size lines. Existing
// lines are kept as they are. More than size lines is an ErrOverflow.
func Pad(lines []string, size int, fill string) ([]string, error) {
	if len(lines) > size {
		return nil, fmt.Errorf("%w: %d lines, memory holds %d", ErrOverflow, len(lines), size)
	}
	out := make([]string, len(lines), size)
	copy(out, lines)
	for len(out) < size {
		out = append(out, fill)
	}
	return out, nil
}

// ReadLines reads every line of r with surrounding whitespace stripped.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// WriteLines writes lines separated by newlines, with a trailing newline.
func WriteLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		bw.WriteString(l)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// PadFile pads the image in to Depth words and writes it to out. Nothing is
// written when the input does not fit.
func PadFile(in, out string) (n int, err error) {
	f, err := os.Open(in)
	if err != nil {
		return 0, err
	}
	lines, err := ReadLines(f)
	f.Close()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", in, err)
	}

	padded, err := Pad(lines, Depth, Fill)
	if err != nil {
		return len(lines), fmt.Errorf("%s: %w", in, err)
	}

	o, err := os.Create(out)
	if err != nil {
		return len(lines), err
	}
	defer func() {
		if cerr := o.Close(); err == nil {
			err = cerr
		}
	}()
	return len(lines), WriteLines(o, padded)
}
