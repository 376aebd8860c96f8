package game

import (
	"fmt"
	"slices"

	"github.com/lox/holdem-engine/internal/handid"
	"github.com/lox/holdem-engine/poker"
)

const notEnoughPlayers = "Not enough players with stacks to start a hand."

func (e *Engine) startHand(prev GameState, input []Player) GameState {
	sb, bb := prev.SmallBlind, prev.BigBlind
	if sb == 0 && bb == 0 {
		sb, bb = DefaultSmallBlind, DefaultBigBlind
	}

	n := len(input)
	s := GameState{
		Players:           make([]Player, n),
		Stage:             StageSetup,
		ActivePlayerIndex: NoSeat,
		LastRaiserIndex:   NoSeat,
		SmallBlind:        sb,
		BigBlind:          bb,
		HandID:            e.ids.Generate(),
		ShortActionLog:    []string{},
	}

	prevDealer := NoSeat
	for i, in := range input {
		status := StatusPlaying
		if in.Stack <= 0 {
			status = StatusOut
		}
		s.Players[i] = Player{Seat: i, Name: in.Name, Stack: max(in.Stack, 0), Status: status}
		if in.IsDealer && prevDealer == NoSeat {
			prevDealer = i
		}
	}

	out := s.mask(func(p Player) bool { return p.Status == StatusOut })
	eligible := s.countWhere(func(p Player) bool { return p.Status != StatusOut })
	dealer := NextEligible(prevDealer, n, out)
	if dealer != NoSeat {
		s.Players[dealer].IsDealer = true
	}

	if eligible < 2 {
		s.ActionLog = []string{notEnoughPlayers}
		s.HandOver = true
		return s
	}

	smallBlind := NextEligible(dealer, n, out)
	if eligible == 2 {
		smallBlind = dealer
	}
	bigBlind := NextEligible(smallBlind, n, out)

	sbPlayer, bbPlayer := &s.Players[smallBlind], &s.Players[bigBlind]
	sbPlayer.IsSmallBlind = true
	sbPlayer.commit(sb)
	bbPlayer.IsBigBlind = true
	bbPlayer.commit(bb)

	// The table stake, even when the big blind could not cover it
	s.CurrentBet = bb
	s.Stage = StagePreFlop

	deck := e.newDeck()
	hands, deck, err := deck.Deal(eligible)
	if err != nil {
		panic(fmt.Sprintf("game: dealing hole cards: %v", err))
	}
	next := 0
	for i := range s.Players {
		if s.Players[i].Status == StatusOut {
			continue
		}
		s.Players[i].Hand = hands[next]
		next++
	}
	s.Deck = deck

	first := NextEligible(bigBlind, n, s.mask(notPlaying))
	s.ActivePlayerIndex = first
	s.LastRaiserIndex = first

	s.ActionLog = []string{
		fmt.Sprintf("--- New Hand #%s ---", handid.Short(s.HandID)),
		fmt.Sprintf("%s is the dealer.", s.Players[dealer].Name),
		fmt.Sprintf("%s posts small blind of %d.", sbPlayer.Name, sbPlayer.Bet),
		fmt.Sprintf("%s posts big blind of %d.", bbPlayer.Name, bbPlayer.Bet),
		"--- Dealing Hole Cards ---",
	}

	if s.countWhere(Player.CanAct) < 2 || first == NoSeat {
		e.advanceStage(&s)
	}
	return s
}

func (e *Engine) newDeck() poker.Deck {
	if e.deck != nil {
		return e.deck.Clone()
	}
	return poker.NewShuffledDeck(e.rng)
}

// afterAction closes the acting seat's turn and either hands the action to
// the next player or advances the hand.
func (e *Engine) afterAction(s *GameState) {
	if p := s.ActivePlayer(); p != nil {
		p.HasActedInRound = true
	}

	if s.countWhere(Player.InHand) <= 1 {
		e.advanceStage(s)
		return
	}

	if roundSettled(s) {
		e.advanceStage(s)
		return
	}

	seat := NextEligible(s.ActivePlayerIndex, len(s.Players), s.mask(notPlaying))
	if seat == NoSeat {
		e.advanceStage(s)
		return
	}
	s.ActivePlayerIndex = seat
}

// roundSettled reports whether every playing seat has acted and matched
// the current bet
func roundSettled(s *GameState) bool {
	for _, p := range s.Players {
		if p.CanAct() && (!p.HasActedInRound || p.Bet != s.CurrentBet) {
			return false
		}
	}
	return true
}

// collectBets sweeps the round's bets into the pot
func collectBets(s *GameState) {
	for i := range s.Players {
		s.Pot += s.Players[i].Bet
		s.Players[i].Bet = 0
	}
}

// advanceStage ends the betting round and deals the next street. When fewer
// than two players can still bet, the remaining streets are dealt straight
// away and the hand goes to showdown.
func (e *Engine) advanceStage(s *GameState) {
	for {
		if s.countWhere(Player.InHand) <= 1 {
			e.endHand(s)
			return
		}

		collectBets(s)
		s.CurrentBet = 0
		s.LastRaiserIndex = NoSeat
		for i := range s.Players {
			if s.Players[i].CanAct() {
				s.Players[i].HasActedInRound = false
			}
		}

		switch s.Stage {
		case StageSetup, StageShowdown:
			return
		case StageRiver:
			for len(s.CommunityCards) < 5 {
				dealStreet(s, 1)
			}
			e.endHand(s)
			return
		case StagePreFlop:
			s.Stage = StageFlop
			cards := dealStreet(s, 3)
			s.log(fmt.Sprintf("--- Flop --- [ %s ] (Pot: %d)", poker.FormatCards(cards, " "), s.Pot))
			s.logShort(fmt.Sprintf("F[%s]", poker.FormatCards(cards, "")))
		case StageFlop:
			s.Stage = StageTurn
			cards := dealStreet(s, 1)
			s.log(fmt.Sprintf("--- Turn --- [ %s ] (Pot: %d)", cards[0], s.Pot))
			s.logShort(fmt.Sprintf("T[%s]", cards[0]))
		case StageTurn:
			s.Stage = StageRiver
			cards := dealStreet(s, 1)
			s.log(fmt.Sprintf("--- River --- [ %s ] (Pot: %d)", cards[0], s.Pot))
			s.logShort(fmt.Sprintf("R[%s]", cards[0]))
		}

		first := NextEligible(s.DealerIndex(), len(s.Players), s.mask(notPlaying))
		if s.countWhere(Player.CanAct) < 2 || first == NoSeat {
			continue
		}
		s.ActivePlayerIndex = first
		s.LastRaiserIndex = first
		return
	}
}

// dealStreet burns one card and turns n cards onto the board
func dealStreet(s *GameState, n int) []poker.Card {
	deck := s.Deck.Burn()
	cards, deck, err := deck.Take(n)
	if err != nil {
		panic(fmt.Sprintf("game: dealing community cards: %v", err))
	}
	s.Deck = deck
	s.CommunityCards = append(slices.Clip(s.CommunityCards), cards...)
	return cards
}
