package game

import (
	"slices"

	"github.com/lox/holdem-engine/poker"
)

// Status is a player's standing in the current hand
type Status uint8

const (
	StatusPlaying Status = iota
	StatusFolded
	StatusAllIn
	StatusOut
)

// String returns a human-readable representation of the status
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusFolded:
		return "folded"
	case StatusAllIn:
		return "all-in"
	case StatusOut:
		return "out"
	default:
		return "unknown"
	}
}

// Player is one seat at the table. Seat, Name and Stack persist across
// hands; everything else is reset when a hand starts.
type Player struct {
	Seat  int
	Name  string
	Stack int

	Hand     []poker.Card
	Bet      int // committed this betting round
	TotalBet int // committed this hand
	Status   Status
	Winnings int // gross chips won at showdown

	IsDealer        bool
	IsSmallBlind    bool
	IsBigBlind      bool
	HasActedInRound bool

	BestHand *poker.HandEvaluation
}

// InHand reports whether the player can still win chips this hand
func (p Player) InHand() bool {
	return p.Status == StatusPlaying || p.Status == StatusAllIn
}

// CanAct reports whether the player can still make betting decisions
func (p Player) CanAct() bool {
	return p.Status == StatusPlaying
}

// ToCall returns the chips needed to match currentBet, capped by the stack
func (p Player) ToCall(currentBet int) int {
	return max(0, min(currentBet-p.Bet, p.Stack))
}

// commit moves chips from the stack into the player's bets. Running out of
// chips puts the player all-in.
func (p *Player) commit(amount int) {
	amount = min(amount, p.Stack)
	p.Stack -= amount
	p.Bet += amount
	p.TotalBet += amount
	if p.Stack == 0 && p.Status == StatusPlaying {
		p.Status = StatusAllIn
	}
}

func (p Player) clone() Player {
	c := p
	c.Hand = slices.Clone(p.Hand)
	if p.BestHand != nil {
		best := *p.BestHand
		best.Values = slices.Clone(best.Values)
		best.Cards = slices.Clone(best.Cards)
		c.BestHand = &best
	}
	return c
}
