// fontgen builds the character ROM of the VGA console. Draw every character
// as its own 8x16 image, named by its code in hex (41.png, or 0041.png as
// exported from a Unicode block chart), then run:
//
//	./fontgen extract -src font_images -glyphs font_data
//
// to threshold them into font_data/41.txt and friends. Those are plain text,
// one row per line with '*' for a lit pixel, and can be touched up by hand.
// Then:
//
//	./fontgen build -glyphs font_data -o font.txt
//
// packs all 256 codes into font.txt, one hex byte per row, leftmost pixel in
// the LSB. Codes without a glyph file come out blank.
//
// A whole font drawn as a 16-column grid can be split with "fontgen sheet",
// and "fontgen dump font.txt" prints a ROM back for checking.
//
// Settings may also come from a TOML file (-config) and FONTGEN_* variables,
// which are read from .env in the working directory when it exists.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/YanWQ-monad/SUSTech-CS202-Project-CPU/internal/config"
	"github.com/YanWQ-monad/SUSTech-CS202-Project-CPU/internal/logx"
)

type command struct {
	summary string
	run     func(args []string) error
}

var commands = map[string]command{
	"extract": {"threshold glyph images into glyph files", runExtract},
	"sheet":   {"split a glyph sheet into glyph files", runSheet},
	"build":   {"pack glyph files into the font table", runBuild},
	"dump":    {"print a font table as text", runDump},
}

var log logx.Logger = logx.NopLogger{}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: fontgen <command> [flags]")
	fmt.Fprintln(os.Stderr)
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(os.Stderr, "  %-8s %s\n", n, commands[n].summary)
	}
}

// settings are the flags shared by every command, bound over a copy of the
// defaults so that only flags given explicitly override the config file.
type settings struct {
	fs      *flag.FlagSet
	path    string
	verbose bool
	flagged config.Config
}

func newSettings(name string) *settings {
	s := &settings{
		fs:      flag.NewFlagSet("fontgen "+name, flag.ExitOnError),
		flagged: config.Default,
	}
	s.fs.StringVar(&s.path, "config", "", "TOML file with fontgen settings")
	s.fs.BoolVar(&s.verbose, "v", false, "log every glyph")
	return s
}

var overrides = map[string]func(dst, src *config.Config){
	"src":       func(d, s *config.Config) { d.Src = s.Src },
	"glyphs":    func(d, s *config.Config) { d.Glyphs = s.Glyphs },
	"o":         func(d, s *config.Config) { d.Output = s.Output },
	"match":     func(d, s *config.Config) { d.Match = s.Match },
	"threshold": func(d, s *config.Config) { d.Threshold = s.Threshold },
	"w":         func(d, s *config.Config) { d.Width = s.Width },
	"h":         func(d, s *config.Config) { d.Height = s.Height },
	"cols":      func(d, s *config.Config) { d.Columns = s.Columns },
	"first":     func(d, s *config.Config) { d.First = s.First },
}

// parse parses args and resolves the final configuration, setting up the
// package logger on the way.
func (s *settings) parse(args []string) (config.Config, error) {
	s.fs.Parse(args)

	if err := config.LoadDotEnv(".env"); err != nil {
		return config.Config{}, fmt.Errorf(".env: %w", err)
	}
	cfg, err := config.Load(s.path)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return config.Config{}, err
	}
	s.fs.Visit(func(f *flag.Flag) {
		if o, ok := overrides[f.Name]; ok {
			o(&cfg, &s.flagged)
		}
	})
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	lvl, ok := logx.ParseLevel(cfg.LogLevel)
	if !ok {
		return config.Config{}, fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	if s.verbose {
		lvl = logx.DEBUG
	}
	setLogger(lvl)
	return cfg, nil
}

func setLogger(lvl logx.Level) {
	log = logx.NewLogToX(logx.NewConsoleLogger(os.Stderr, lvl, logx.ColorAuto), "fontgen")
}

func main() {
	setLogger(logx.INFO)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		if os.Args[1] != "-h" && os.Args[1] != "help" {
			fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		}
		usage()
		os.Exit(2)
	}

	if err := cmd.run(os.Args[2:]); err != nil {
		log.LogPrintln(logx.ERROR, err)
		os.Exit(1)
	}
}
