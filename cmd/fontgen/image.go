package main

import (
	"errors"
	"image"

	pimg "github.com/YanWQ-monad/SUSTech-CS202-Project-CPU/internal/bitfont/image"
	"github.com/YanWQ-monad/SUSTech-CS202-Project-CPU/internal/fonttable"
)

func runExtract(args []string) error {
	s := newSettings("extract")
	s.fs.StringVar(&s.flagged.Src, "src", s.flagged.Src, "directory of glyph images")
	s.fs.StringVar(&s.flagged.Glyphs, "glyphs", s.flagged.Glyphs, "directory to write glyph files to")
	s.fs.StringVar(&s.flagged.Match, "match", s.flagged.Match, "glob selecting glyph images")
	s.fs.IntVar(&s.flagged.Threshold, "threshold", s.flagged.Threshold, "largest value still unlit")
	cfg, err := s.parse(args)
	if err != nil {
		return err
	}

	_, err = fonttable.Extract(cfg.Src, cfg.Glyphs, &fonttable.ExtractOptions{
		Match: cfg.Match,
		Image: &pimg.Options{Threshold: uint8(cfg.Threshold)},
		Log:   log,
	})
	return err
}

func runSheet(args []string) error {
	s := newSettings("sheet")
	imageName := s.fs.String("img", "", "glyph sheet image")
	blank := s.fs.Bool("blank", false, "also write glyph files for empty cells")
	s.fs.StringVar(&s.flagged.Glyphs, "glyphs", s.flagged.Glyphs, "directory to write glyph files to")
	s.fs.IntVar(&s.flagged.Columns, "cols", s.flagged.Columns, "cells per sheet row")
	s.fs.IntVar(&s.flagged.Width, "w", s.flagged.Width, "cell width")
	s.fs.IntVar(&s.flagged.Height, "h", s.flagged.Height, "cell height")
	s.fs.IntVar(&s.flagged.First, "first", s.flagged.First, "code of the top left cell")
	s.fs.IntVar(&s.flagged.Threshold, "threshold", s.flagged.Threshold, "largest value still unlit")
	cfg, err := s.parse(args)
	if err != nil {
		return err
	}
	if *imageName == "" {
		s.fs.Usage()
		return errors.New("-img should be provided")
	}

	font, err := pimg.OpenSheet(*imageName, &pimg.SheetOptions{
		Columns:   cfg.Columns,
		Cell:      image.Pt(cfg.Width, cfg.Height),
		First:     rune(cfg.First),
		Threshold: uint8(cfg.Threshold),
		KeepBlank: *blank,
	})
	if err != nil {
		return err
	}
	_, err = fonttable.WriteFont(cfg.Glyphs, font, log)
	return err
}
