package game

import "errors"

// Rejection reasons returned by Engine.Try. Apply swallows them and hands
// back the input state.
var (
	ErrNotActionable  = errors.New("no hand in progress")
	ErrCannotCheck    = errors.New("cannot check facing a bet")
	ErrBetOutstanding = errors.New("cannot bet when there is already a bet, raise instead")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrRaiseTooSmall  = errors.New("raise is below the minimum")
	ErrNothingToCall  = errors.New("nothing to call")
	ErrNoChips        = errors.New("player has no chips")
	ErrUnknownAction  = errors.New("unknown action")
	ErrTooManyPlayers = errors.New("too many players for one deck")
)
