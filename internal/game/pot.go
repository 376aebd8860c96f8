package game

import (
	"math"
	"slices"
)

// Pot represents a pot (main or side)
type Pot struct {
	Amount   int
	Eligible []int // Seats that can win this pot
	Level    int   // TotalBet a player needs to be eligible
}

// BuildPots splits every chip committed this hand into a main pot and side
// pots. Levels are the distinct TotalBet values of players still in the
// hand; each level holds what every player put in between the previous
// level and this one. Chips above the highest level belong to the top pot,
// so an uncalled bet goes back to whoever made it. Folded chips stay in the
// pots they were put into.
func BuildPots(players []Player) []Pot {
	var levels []int
	for _, p := range players {
		if p.InHand() && p.TotalBet > 0 && !slices.Contains(levels, p.TotalBet) {
			levels = append(levels, p.TotalBet)
		}
	}
	slices.Sort(levels)

	pots := make([]Pot, 0, len(levels))
	lower := 0
	for i, level := range levels {
		upper := level
		if i == len(levels)-1 {
			upper = math.MaxInt
		}

		amount := 0
		for _, p := range players {
			amount += min(p.TotalBet, upper) - min(p.TotalBet, lower)
		}
		var eligible []int
		for seat, p := range players {
			if p.InHand() && p.TotalBet >= level {
				eligible = append(eligible, seat)
			}
		}
		pots = append(pots, Pot{Amount: amount, Eligible: eligible, Level: level})
		lower = level
	}
	return pots
}

// Pots returns the pots of s as they would be settled now, including bets
// not yet swept from the current round
func Pots(s GameState) []Pot {
	pots := BuildPots(s.Players)
	committed := 0
	for _, p := range pots {
		committed += p.Amount
	}
	if extra := s.TotalPot() - committed; extra > 0 {
		if len(pots) == 0 {
			return []Pot{{Amount: extra, Eligible: inHandSeats(s.Players)}}
		}
		pots[len(pots)-1].Amount += extra
	}
	return pots
}

func inHandSeats(players []Player) []int {
	var seats []int
	for seat, p := range players {
		if p.InHand() {
			seats = append(seats, seat)
		}
	}
	return seats
}
