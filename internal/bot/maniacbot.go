package bot

import (
	"context"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
)

// ManiacBot is an extremely aggressive bot that bets and shoves frequently
type ManiacBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewManiacBot creates a new ManiacBot instance
func NewManiacBot(rng *rand.Rand, logger *log.Logger) *ManiacBot {
	return &ManiacBot{rng: rng, logger: orDiscard(logger)}
}

func (m *ManiacBot) Decide(_ context.Context, state game.GameState, valid []game.ValidAction) (game.Action, error) {
	roll := m.rng.Float64()
	switch {
	case roll < 0.3:
		return prefer(valid, maxAmount, game.KindRaise, game.KindBet, game.KindCall, game.KindCheck), nil
	case roll < 0.85:
		return prefer(valid, minAmount, game.KindRaise, game.KindBet, game.KindCall, game.KindCheck), nil
	case roll < 0.95:
		return prefer(valid, minAmount, game.KindCall, game.KindCheck), nil
	default:
		return prefer(valid, minAmount, game.KindCheck, game.KindFold), nil
	}
}
