package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
)

// CallBot checks or calls every street
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a new CallBot instance
func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: orDiscard(logger)}
}

func (c *CallBot) Decide(_ context.Context, state game.GameState, valid []game.ValidAction) (game.Action, error) {
	action := prefer(valid, minAmount, game.KindCheck, game.KindCall, game.KindFold)
	c.logger.Debug("call-bot decision", "seat", state.ActivePlayerIndex, "action", action)
	return action, nil
}
