package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lox/holdem-engine/poker"
)

// endHand settles the pot and finishes the hand
func (e *Engine) endHand(s *GameState) {
	s.Stage = StageShowdown
	s.HandOver = true
	s.ActivePlayerIndex = NoSeat
	collectBets(s)

	s.log("--- Showdown ---")

	contenders := inHandSeats(s.Players)
	switch len(contenders) {
	case 0:
		panic("game: showdown with no players left in the hand")
	case 1:
		winner := &s.Players[contenders[0]]
		winner.Winnings = s.Pot
		s.HandWinnerDescription = fmt.Sprintf("%s wins pot of %d", winner.Name, s.Pot)
		s.log(s.HandWinnerDescription)
	default:
		e.showdown(s, contenders)
	}

	for i := range s.Players {
		s.Players[i].Stack += s.Players[i].Winnings
	}
}

func (e *Engine) showdown(s *GameState, contenders []int) {
	for _, seat := range contenders {
		p := &s.Players[seat]
		best, err := poker.EvaluateBest(append(slices.Clone(p.Hand), s.CommunityCards...))
		if err != nil {
			panic(fmt.Sprintf("game: evaluating %s at showdown: %v", p.Name, err))
		}
		p.BestHand = &best
	}

	pots := BuildPots(s.Players)
	settled := 0
	for _, pot := range pots {
		settled += pot.Amount
	}
	switch extra := s.Pot - settled; {
	case extra < 0:
		panic(fmt.Sprintf("game: pot of %d is smaller than the %d chips committed", s.Pot, settled))
	case extra > 0 && len(pots) == 0:
		pots = []Pot{{Amount: extra, Eligible: contenders}}
	case extra > 0:
		pots[len(pots)-1].Amount += extra
	}

	var summaries []string
	lower := 0
	for _, pot := range pots {
		floor := lower
		lower = pot.Level
		if pot.Amount == 0 {
			continue
		}
		if len(pot.Eligible) == 1 {
			p := &s.Players[pot.Eligible[0]]
			p.Winnings += pot.Amount
			if p.TotalBet-floor == pot.Amount {
				s.log(fmt.Sprintf("Uncalled bet of %d returned to %s.", pot.Amount, p.Name))
			} else {
				summaries = append(summaries, fmt.Sprintf("%s wins a pot of %d", p.Name, pot.Amount))
			}
			continue
		}

		eligible := make([]Player, len(pot.Eligible))
		for i, seat := range pot.Eligible {
			eligible[i] = s.Players[seat]
		}
		winners, best, err := FindWinners(eligible, s.CommunityCards)
		if err != nil {
			panic(fmt.Sprintf("game: settling pot of %d: %v", pot.Amount, err))
		}

		share := pot.Amount / len(winners)
		for _, seat := range winners {
			s.Players[seat].Winnings += share
		}
		distributeRemainder(s, winners, pot.Amount%len(winners))

		names := make([]string, len(winners))
		for i, seat := range winners {
			names[i] = s.Players[seat].Name
		}
		verb := "wins"
		if len(winners) > 1 {
			verb = "split"
		}
		summaries = append(summaries, fmt.Sprintf("%s %s a pot of %d with %s",
			strings.Join(names, ", "), verb, pot.Amount, best.Description))
	}

	s.HandWinnerDescription = strings.Join(summaries, "; ")
	s.ActionLog = append(s.ActionLog, summaries...)
}

// distributeRemainder hands odd chips one at a time to the winners in seat
// order, starting with the first winner after the dealer
func distributeRemainder(s *GameState, winners []int, remainder int) {
	if remainder <= 0 {
		return
	}
	notWinner := make([]bool, len(s.Players))
	for i := range notWinner {
		notWinner[i] = !slices.Contains(winners, i)
	}
	seat := s.DealerIndex()
	for remainder > 0 {
		next := NextEligible(seat, len(s.Players), notWinner)
		if next == NoSeat {
			// The dealer is the only winner left to receive chips
			next = seat
		}
		s.Players[next].Winnings++
		remainder--
		seat = next
	}
}

// FindWinners evaluates every player still in the hand against the board
// and returns the seats holding the strongest hand, with that hand. Folded
// and out players are ignored. It fails if any hand cannot be evaluated.
func FindWinners(players []Player, board []poker.Card) ([]int, poker.HandEvaluation, error) {
	var (
		winners []int
		best    poker.HandEvaluation
	)
	for _, p := range players {
		if !p.InHand() {
			continue
		}
		eval, err := poker.EvaluateBest(append(slices.Clone(p.Hand), board...))
		if err != nil {
			return nil, poker.HandEvaluation{}, fmt.Errorf("evaluating %s: %w", p.Name, err)
		}
		switch c := poker.Compare(eval, best); {
		case winners == nil || c > 0:
			winners = []int{p.Seat}
			best = eval
		case c == 0:
			winners = append(winners, p.Seat)
		}
	}
	return winners, best, nil
}
