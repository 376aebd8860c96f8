package main

import (
	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/holdem-engine/internal/config"
	"github.com/lox/holdem-engine/internal/store"
)

// openStore returns the history service client when a remote is
// configured, otherwise the local hand directory
func openStore(cfg *config.HistoryConfig, logger zerolog.Logger) (store.Store, error) {
	if cfg.Remote != "" {
		logger.Debug().Str("url", cfg.Remote).Msg("Using remote history service")
		return store.NewRemoteStore(cfg.Remote, nil)
	}
	return store.NewFileStore(cfg.Dir, quartz.NewReal(), logger)
}
