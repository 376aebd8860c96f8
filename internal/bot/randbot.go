package bot

import (
	"context"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
)

// RandBot makes uniform random legal actions
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: orDiscard(logger)}
}

func (r *RandBot) Decide(_ context.Context, _ game.GameState, valid []game.ValidAction) (game.Action, error) {
	if len(valid) == 0 {
		return game.Fold{}, nil
	}
	choice := valid[r.rng.IntN(len(valid))]

	// Bets and raises pick a random size in range
	amount := choice.Min
	if choice.Max > choice.Min {
		amount += r.rng.IntN(choice.Max - choice.Min + 1)
	}
	return choice.Kind.ToAction(amount), nil
}
