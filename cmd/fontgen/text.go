package main

import (
	"os"

	"github.com/YanWQ-monad/SUSTech-CS202-Project-CPU/internal/fonttable"
	"github.com/YanWQ-monad/SUSTech-CS202-Project-CPU/internal/logx"
)

func runBuild(args []string) error {
	s := newSettings("build")
	s.fs.StringVar(&s.flagged.Glyphs, "glyphs", s.flagged.Glyphs, "directory of glyph files")
	s.fs.StringVar(&s.flagged.Output, "o", s.flagged.Output, "font table to create")
	s.fs.IntVar(&s.flagged.Height, "h", s.flagged.Height, "rows of a blank glyph")
	cfg, err := s.parse(args)
	if err != nil {
		return err
	}

	err = fonttable.BuildFile(cfg.Glyphs, cfg.Output, &fonttable.BuildOptions{
		Height: cfg.Height,
		Log:    log,
	})
	if err != nil {
		return err
	}
	log.LogPrintf(logx.INFO, "created %s", cfg.Output)
	return nil
}

func runDump(args []string) error {
	s := newSettings("dump")
	all := s.fs.Bool("all", false, "include blank glyphs")
	s.fs.IntVar(&s.flagged.Height, "h", s.flagged.Height, "rows per glyph")
	cfg, err := s.parse(args)
	if err != nil {
		return err
	}

	name := cfg.Output
	if s.fs.NArg() > 0 {
		name = s.fs.Arg(0)
	}
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	font, err := fonttable.Read(f, cfg.Height)
	if err != nil {
		return err
	}
	// dump a text representation of the font to stdout
	return fonttable.Dump(os.Stdout, font, *all)
}
