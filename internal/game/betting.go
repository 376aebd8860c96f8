package game

import (
	"fmt"
	"strconv"
)

func fold(s *GameState, p *Player) {
	p.Status = StatusFolded
	s.log(p.Name + " folds.")
	s.logShort("f")
}

func check(s *GameState, p *Player) error {
	if s.CurrentBet > p.Bet {
		return ErrCannotCheck
	}
	s.log(p.Name + " checks.")
	s.logShort("x")
	return nil
}

func call(s *GameState, p *Player) error {
	amount := p.ToCall(s.CurrentBet)
	if amount <= 0 {
		if s.CurrentBet == 0 || p.Bet == s.CurrentBet {
			return check(s, p)
		}
		return ErrNothingToCall
	}
	p.commit(amount)
	s.log(fmt.Sprintf("%s calls %d.", p.Name, amount))
	s.logShort("c")
	return nil
}

func bet(s *GameState, p *Player, requested int) error {
	if s.CurrentBet > 0 {
		return ErrBetOutstanding
	}
	amount := min(requested, p.Stack)
	if amount <= 0 || (amount < s.BigBlind && amount < p.Stack) {
		return fmt.Errorf("%w: minimum bet is %d", ErrInvalidAmount, s.BigBlind)
	}

	p.commit(amount)
	s.CurrentBet = p.Bet
	s.LastRaiserIndex = s.ActivePlayerIndex
	reopen(s, s.ActivePlayerIndex)

	s.log(fmt.Sprintf("%s bets %d.", p.Name, amount))
	s.logShort("b" + strconv.Itoa(amount))
	return nil
}

func raise(s *GameState, p *Player, requested int) error {
	if p.Stack <= 0 {
		return ErrNoChips
	}
	total := min(requested, p.Stack+p.Bet)
	increment := total - p.Bet
	if increment <= 0 {
		return fmt.Errorf("%w: raise to %d does not add chips", ErrInvalidAmount, requested)
	}

	minTotal := MinRaiseTotal(*s)
	allIn := increment >= p.Stack
	if total < minTotal && !allIn {
		return fmt.Errorf("%w: minimum raise is to %d", ErrRaiseTooSmall, minTotal)
	}

	verb := "raises to"
	if allIn {
		verb = "goes all-in for"
		if total > s.CurrentBet {
			verb = "goes all-in with a raise to"
		}
	}

	p.commit(increment)
	if total >= minTotal {
		s.CurrentBet = p.Bet
		s.LastRaiserIndex = s.ActivePlayerIndex
		reopen(s, s.ActivePlayerIndex)
	} else {
		// Short all-in: the bet to match grows but action is not reopened
		s.CurrentBet = max(s.CurrentBet, p.Bet)
	}

	s.log(fmt.Sprintf("%s %s %d.", p.Name, verb, total))
	s.logShort("r" + strconv.Itoa(total))
	return nil
}

// reopen clears hasActedInRound for every playing seat except the aggressor
func reopen(s *GameState, aggressor int) {
	for i := range s.Players {
		if i != aggressor && s.Players[i].Status == StatusPlaying {
			s.Players[i].HasActedInRound = false
		}
	}
}

// LastRaiseSize estimates the size of the last raise as the gap between the
// current bet and the highest bet below it among players who have acted.
func LastRaiseSize(s GameState) int {
	below := 0
	for _, p := range s.Players {
		if p.HasActedInRound && p.Bet < s.CurrentBet && p.Bet > below {
			below = p.Bet
		}
	}
	return s.CurrentBet - below
}

// MinRaiseTotal returns the smallest total a full raise must reach
func MinRaiseTotal(s GameState) int {
	return s.CurrentBet + max(LastRaiseSize(s), s.BigBlind)
}

// ActionKind names a kind of player decision
type ActionKind uint8

const (
	KindFold ActionKind = iota
	KindCheck
	KindCall
	KindBet
	KindRaise
)

// String returns a human-readable representation of the kind
func (k ActionKind) String() string {
	switch k {
	case KindFold:
		return "fold"
	case KindCheck:
		return "check"
	case KindCall:
		return "call"
	case KindBet:
		return "bet"
	case KindRaise:
		return "raise"
	default:
		return "unknown"
	}
}

// ValidAction describes a legal decision. For bets and raises Min and Max
// bound the amount; for calls both hold the chips to call.
type ValidAction struct {
	Kind ActionKind
	Min  int
	Max  int
}

// ValidActions lists the decisions available to the player to act. It is
// empty when nobody can act.
func ValidActions(s GameState) []ValidAction {
	if s.Stage == StageSetup || s.HandOver {
		return nil
	}
	p := s.ActivePlayer()
	if p == nil || !p.CanAct() {
		return nil
	}

	actions := []ValidAction{{Kind: KindFold}}
	toCall := p.ToCall(s.CurrentBet)
	if toCall == 0 {
		actions = append(actions, ValidAction{Kind: KindCheck})
	} else {
		actions = append(actions, ValidAction{Kind: KindCall, Min: toCall, Max: toCall})
	}

	switch {
	case s.CurrentBet == 0:
		actions = append(actions, ValidAction{Kind: KindBet, Min: min(s.BigBlind, p.Stack), Max: p.Stack})
	case p.Stack > toCall:
		maxTotal := p.Stack + p.Bet
		actions = append(actions, ValidAction{Kind: KindRaise, Min: min(MinRaiseTotal(s), maxTotal), Max: maxTotal})
	}
	return actions
}

// ToAction turns a decision and amount into an engine action
func (k ActionKind) ToAction(amount int) Action {
	switch k {
	case KindFold:
		return Fold{}
	case KindCheck:
		return Check{}
	case KindCall:
		return Call{}
	case KindBet:
		return Bet{Amount: amount}
	case KindRaise:
		return Raise{Amount: amount}
	default:
		return nil
	}
}
