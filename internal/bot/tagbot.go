package bot

import (
	"context"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/poker"
)

// TAGBot is a tight aggressive bot that raises premium hands preflop,
// bets made hands after the flop and otherwise checks or gives up
type TAGBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewTAGBot creates a new TAGBot instance
func NewTAGBot(rng *rand.Rand, logger *log.Logger) *TAGBot {
	return &TAGBot{rng: rng, logger: orDiscard(logger)}
}

func (t *TAGBot) Decide(_ context.Context, state game.GameState, valid []game.ValidAction) (game.Action, error) {
	p := state.ActivePlayer()
	if p == nil || len(p.Hand) != 2 {
		return prefer(valid, minAmount, game.KindCheck, game.KindFold), nil
	}

	strong := false
	if state.Stage == game.StagePreFlop {
		strong = isPremium(p.Hand[0], p.Hand[1])
	} else if best, err := poker.EvaluateBest(append(append([]poker.Card{}, p.Hand...), state.CommunityCards...)); err == nil {
		strong = best.Category >= poker.TwoPair
	}

	if strong {
		// A quarter of the way between the minimum and a shove
		size := func(va game.ValidAction) int { return va.Min + (va.Max-va.Min)/4 }
		action := prefer(valid, size, game.KindRaise, game.KindBet, game.KindCall, game.KindCheck)
		t.logger.Debug("TAG value", "player", p.Name, "action", action)
		return action, nil
	}

	if _, ok := find(valid, game.KindCheck); ok {
		return game.Check{}, nil
	}
	// Defend the occasional cheap price
	if call, ok := find(valid, game.KindCall); ok && call.Min <= state.BigBlind && t.rng.Float64() < 0.3 {
		return game.Call{}, nil
	}
	return game.Fold{}, nil
}

// isPremium reports TT+, AK and AQ
func isPremium(a, b poker.Card) bool {
	if a.Rank == b.Rank {
		return a.Rank >= poker.Ten
	}
	hi, lo := max(a.Rank, b.Rank), min(a.Rank, b.Rank)
	return hi == poker.Ace && lo >= poker.Queen
}
