package game

import (
	"slices"

	"github.com/lox/holdem-engine/poker"
)

// Table defaults: 20/40 blinds with 2000-chip stacks
const (
	DefaultSmallBlind = 20
	DefaultBigBlind   = 40
	DefaultStack      = 2000
	MaxSeats          = 9
)

// NoSeat marks the absence of a seat, e.g. no player to act
const NoSeat = -1

// Stage is the phase of the current hand
type Stage uint8

const (
	StageSetup Stage = iota
	StagePreFlop
	StageFlop
	StageTurn
	StageRiver
	StageShowdown
)

// String returns a human-readable representation of the stage
func (s Stage) String() string {
	switch s {
	case StageSetup:
		return "setup"
	case StagePreFlop:
		return "pre-flop"
	case StageFlop:
		return "flop"
	case StageTurn:
		return "turn"
	case StageRiver:
		return "river"
	case StageShowdown:
		return "showdown"
	default:
		return "unknown"
	}
}

// GameState is a snapshot of one table. The engine treats it as a value:
// every transition works on a deep copy.
type GameState struct {
	Players        []Player
	Deck           poker.Deck
	CommunityCards []poker.Card
	// Pot holds chips swept from finished betting rounds. Bets of the
	// current round are still on the players.
	Pot   int
	Stage Stage

	ActivePlayerIndex int
	LastRaiserIndex   int
	CurrentBet        int
	SmallBlind        int
	BigBlind          int

	ActionLog      []string
	ShortActionLog []string

	HandID                string
	HandWinnerDescription string
	HandOver              bool
}

// NewTable creates a table waiting for its first StartHand. Missing stacks
// default to DefaultStack.
func NewTable(names []string, stacks []int, smallBlind, bigBlind int) GameState {
	players := make([]Player, len(names))
	for i, name := range names {
		stack := DefaultStack
		if i < len(stacks) {
			stack = stacks[i]
		}
		players[i] = Player{Seat: i, Name: name, Stack: stack}
	}
	return GameState{
		Players:           players,
		Stage:             StageSetup,
		ActivePlayerIndex: 0,
		LastRaiserIndex:   NoSeat,
		SmallBlind:        smallBlind,
		BigBlind:          bigBlind,
		ActionLog:         []string{"Welcome to Texas Hold'em! Click Start to begin."},
		HandOver:          true,
	}
}

// Clone returns a deep copy sharing no mutable memory with s
func (s GameState) Clone() GameState {
	c := s
	c.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		c.Players[i] = p.clone()
	}
	c.Deck = s.Deck.Clone()
	c.CommunityCards = slices.Clone(s.CommunityCards)
	c.ActionLog = slices.Clone(s.ActionLog)
	c.ShortActionLog = slices.Clone(s.ShortActionLog)
	return c
}

// ActivePlayer returns the seat to act, or nil when nobody is to act
func (s GameState) ActivePlayer() *Player {
	if s.ActivePlayerIndex < 0 || s.ActivePlayerIndex >= len(s.Players) {
		return nil
	}
	return &s.Players[s.ActivePlayerIndex]
}

// TotalPot returns collected chips plus the bets of the current round
func (s GameState) TotalPot() int {
	total := s.Pot
	for _, p := range s.Players {
		total += p.Bet
	}
	return total
}

// TotalChips returns every chip on the table, in stacks, bets or the pot.
// After showdown the pot has already been paid into the stacks.
func (s GameState) TotalChips() int {
	total := s.Pot
	if s.Stage == StageShowdown {
		total = 0
	}
	for _, p := range s.Players {
		total += p.Stack + p.Bet
	}
	return total
}

// DealerIndex returns the seat holding the button, or NoSeat
func (s GameState) DealerIndex() int {
	return slices.IndexFunc(s.Players, func(p Player) bool { return p.IsDealer })
}

// CountInHand returns the number of players still contesting the pot
func (s GameState) CountInHand() int {
	return s.countWhere(Player.InHand)
}

// countWhere counts players matching keep
func (s *GameState) countWhere(keep func(Player) bool) int {
	n := 0
	for _, p := range s.Players {
		if keep(p) {
			n++
		}
	}
	return n
}

// mask returns a per-seat ineligibility mask for NextEligible
func (s *GameState) mask(ineligible func(Player) bool) []bool {
	m := make([]bool, len(s.Players))
	for i, p := range s.Players {
		m[i] = ineligible(p)
	}
	return m
}

func notPlaying(p Player) bool { return !p.CanAct() }

func (s *GameState) log(line string) {
	s.ActionLog = append(s.ActionLog, line)
}

func (s *GameState) logShort(code string) {
	s.ShortActionLog = append(s.ShortActionLog, code)
}
