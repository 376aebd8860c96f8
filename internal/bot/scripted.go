package bot

import (
	"context"
	"errors"
	"sync"

	"github.com/lox/holdem-engine/internal/game"
)

// ErrScriptExhausted is returned once a Scripted bot has no actions left
var ErrScriptExhausted = errors.New("scripted bot has no actions left")

// Scripted plays a fixed list of actions in order
type Scripted struct {
	mu      sync.Mutex
	actions []game.Action
}

// NewScripted returns a bot that plays actions in order
func NewScripted(actions ...game.Action) *Scripted {
	return &Scripted{actions: actions}
}

func (s *Scripted) Decide(ctx context.Context, _ game.GameState, _ []game.ValidAction) (game.Action, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.actions) == 0 {
		return nil, ErrScriptExhausted
	}
	next := s.actions[0]
	s.actions = s.actions[1:]
	return next, nil
}

// Remaining returns the number of actions not yet played
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.actions)
}
