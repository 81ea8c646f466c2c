// Package config holds fontgen's settings. Values are layered: built-in
// defaults, then an optional TOML file, then FONTGEN_* environment variables
// (optionally seeded from a .env file), then command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/YanWQ-monad/SUSTech-CS202-Project-CPU/internal/bitfont"
)

const EnvPrefix = "FONTGEN_"

type Config struct {
	// directory of per-character glyph images
	Src string `toml:"src"`
	// directory of per-character <HEX>.txt glyph files
	Glyphs string `toml:"glyphs"`
	// font table written by build
	Output string `toml:"output"`
	// glob selecting glyph images inside Src
	Match string `toml:"match"`

	Threshold int `toml:"threshold"`
	Width     int `toml:"width"`
	Height    int `toml:"height"`

	// glyph sheet layout
	Columns int `toml:"columns"`
	First   int `toml:"first"`

	LogLevel string `toml:"log_level"`
}

var Default = Config{
	Src:       "font_images",
	Glyphs:    "font_data",
	Output:    "font.txt",
	Match:     "*.png",
	Threshold: bitfont.Threshold,
	Width:     bitfont.GlyphWidth,
	Height:    bitfont.GlyphHeight,
	Columns:   16,
	First:     0,
	LogLevel:  "info",
}

// Load returns the defaults overlaid with the TOML file at path, if any.
func Load(path string) (Config, error) {
	c := Default
	if path == "" {
		return c, nil
	}
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) != 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, keys[0].String())
	}
	return c, nil
}

// LoadDotEnv loads name into the process environment if it exists. Variables
// already set are not overridden.
func LoadDotEnv(name string) error {
	if _, err := os.Stat(name); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return godotenv.Load(name)
}

// ApplyEnv overrides fields from FONTGEN_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	strs := []struct {
		key string
		dst *string
	}{
		{"SRC", &c.Src},
		{"GLYPHS", &c.Glyphs},
		{"OUTPUT", &c.Output},
		{"MATCH", &c.Match},
		{"LOG_LEVEL", &c.LogLevel},
	}
	for _, s := range strs {
		if v, ok := lookup(EnvPrefix + s.key); ok {
			*s.dst = v
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"THRESHOLD", &c.Threshold},
		{"WIDTH", &c.Width},
		{"HEIGHT", &c.Height},
		{"COLUMNS", &c.Columns},
		{"FIRST", &c.First},
	}
	for _, i := range ints {
		v, ok := lookup(EnvPrefix + i.key)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSpace(v), 0, 32)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, i.key, err)
		}
		*i.dst = int(n)
	}
	return nil
}

func (c *Config) Validate() error {
	switch {
	case c.Threshold < 1 || c.Threshold > 255:
		return fmt.Errorf("threshold %d out of range 1-255", c.Threshold)
	case c.Width < 1 || c.Width > bitfont.MaxWidth:
		return fmt.Errorf("width %d out of range 1-%d", c.Width, bitfont.MaxWidth)
	case c.Height < 1:
		return fmt.Errorf("height %d must be positive", c.Height)
	case c.Columns < 1:
		return fmt.Errorf("columns %d must be positive", c.Columns)
	case c.First < 0 || c.First >= bitfont.Codes:
		return fmt.Errorf("first code %#x out of range", c.First)
	case c.Match == "":
		return errors.New("empty match pattern")
	}
	return nil
}
