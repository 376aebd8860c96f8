package game

import "fmt"

// Action is one input to the engine. The set of actions is closed: only the
// types in this file implement it.
type Action interface {
	fmt.Stringer
	action()
}

// StartHand begins a new hand. Only Name, Stack and IsDealer of each player
// are read; the previous dealer's button moves to the next seat with chips.
type StartHand struct {
	Players []Player
}

// Fold gives up the hand
type Fold struct{}

// Check passes when there is nothing to call
type Check struct{}

// Call matches the current bet, or goes all-in for less
type Call struct{}

// Bet opens the betting round. Amount is the chips to put in.
type Bet struct {
	Amount int
}

// Raise raises the current bet. Amount is the total bet for the round, not
// the increment.
type Raise struct {
	Amount int
}

func (StartHand) action() {}
func (Fold) action()      {}
func (Check) action()     {}
func (Call) action()      {}
func (Bet) action()       {}
func (Raise) action()     {}

func (a StartHand) String() string { return fmt.Sprintf("start hand (%d players)", len(a.Players)) }
func (Fold) String() string        { return "fold" }
func (Check) String() string       { return "check" }
func (Call) String() string        { return "call" }
func (a Bet) String() string       { return fmt.Sprintf("bet %d", a.Amount) }
func (a Raise) String() string     { return fmt.Sprintf("raise to %d", a.Amount) }
