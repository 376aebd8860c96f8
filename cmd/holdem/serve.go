package main

import (
	"github.com/coder/quartz"

	"github.com/lox/holdem-engine/internal/server"
	"github.com/lox/holdem-engine/internal/store"
)

// ServeCmd runs the hand history service over the local hand directory
type ServeCmd struct {
	Listen string `short:"l" help:"Address to listen on (default from configuration)"`
	Dir    string `help:"Hand directory (default from configuration)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	addr := cfg.History.Listen
	if c.Listen != "" {
		addr = c.Listen
	}
	dir := cfg.History.Dir
	if c.Dir != "" {
		dir = c.Dir
	}

	hands, err := store.NewFileStore(dir, quartz.NewReal(), logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	logger.Info().Str("address", addr).Str("dir", dir).Msg("Starting hand history service")
	return server.New(hands, logger).ListenAndServe(ctx, addr)
}
