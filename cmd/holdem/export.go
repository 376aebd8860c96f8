package main

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/lox/holdem-engine/internal/fileutil"
	"github.com/lox/holdem-engine/internal/history"
)

// ExportCmd writes a saved hand in the Poker Hand History format
type ExportCmd struct {
	Source string `arg:"" help:"Hand JSON file or saved hand id"`
	Output string `short:"o" help:"Write to this file instead of stdout"`
}

func (c *ExportCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	entry, created, err := loadEntry(context.Background(), c.Source, cfg.History, logger)
	if err != nil {
		return err
	}
	if created.IsZero() {
		created = time.Now()
	}

	if c.Output == "" {
		return history.EncodePHH(os.Stdout, entry, created)
	}
	var buf bytes.Buffer
	if err := history.EncodePHH(&buf, entry, created); err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(c.Output, buf.Bytes(), 0o644)
}
