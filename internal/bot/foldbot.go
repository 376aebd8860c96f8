package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
)

// FoldBot always folds, or checks when it can
type FoldBot struct {
	logger *log.Logger
}

// NewFoldBot creates a new FoldBot instance
func NewFoldBot(logger *log.Logger) *FoldBot {
	return &FoldBot{logger: orDiscard(logger)}
}

func (f *FoldBot) Decide(_ context.Context, _ game.GameState, valid []game.ValidAction) (game.Action, error) {
	return prefer(valid, minAmount, game.KindCheck, game.KindFold), nil
}
