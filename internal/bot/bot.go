// Package bot provides computer players for a table session.
package bot

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
)

// Bot chooses an action for the active player of a hand
type Bot interface {
	Decide(ctx context.Context, state game.GameState, valid []game.ValidAction) (game.Action, error)
}

// Factory builds a bot from a random source and a logger
type Factory func(rng *rand.Rand, logger *log.Logger) Bot

var strategies = map[string]Factory{
	"call":   func(_ *rand.Rand, logger *log.Logger) Bot { return NewCallBot(logger) },
	"fold":   func(_ *rand.Rand, logger *log.Logger) Bot { return NewFoldBot(logger) },
	"random": func(rng *rand.Rand, logger *log.Logger) Bot { return NewRandBot(rng, logger) },
	"tag":    func(rng *rand.Rand, logger *log.Logger) Bot { return NewTAGBot(rng, logger) },
	"maniac": func(rng *rand.Rand, logger *log.Logger) Bot { return NewManiacBot(rng, logger) },
}

// New returns the bot registered under strategy
func New(strategy string, rng *rand.Rand, logger *log.Logger) (Bot, error) {
	factory, ok := strategies[strategy]
	if !ok {
		return nil, fmt.Errorf("unknown bot strategy %q (want one of %v)", strategy, Strategies())
	}
	if rng == nil {
		rng, _ = randutil.NewTimeSeeded()
	}
	return factory(rng, logger), nil
}

// Strategies lists the registered strategy names in order
func Strategies() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// find returns the valid action of the given kind
func find(valid []game.ValidAction, kind game.ActionKind) (game.ValidAction, bool) {
	for _, va := range valid {
		if va.Kind == kind {
			return va, true
		}
	}
	return game.ValidAction{}, false
}

// prefer picks the first available kind, falling back to the first valid action
func prefer(valid []game.ValidAction, amount func(game.ValidAction) int, kinds ...game.ActionKind) game.Action {
	for _, kind := range kinds {
		if va, ok := find(valid, kind); ok {
			return va.Kind.ToAction(amount(va))
		}
	}
	if len(valid) > 0 {
		return valid[0].Kind.ToAction(valid[0].Min)
	}
	return game.Fold{}
}

func minAmount(va game.ValidAction) int { return va.Min }

func maxAmount(va game.ValidAction) int { return va.Max }

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger.WithPrefix("bot")
}
