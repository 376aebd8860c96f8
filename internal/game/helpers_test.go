package game

import (
	"slices"
	"testing"

	"github.com/lox/holdem-engine/internal/handid"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/poker"
)

// stackedDeck returns a full deck whose first cards to be dealt are the
// given codes, in order
func stackedDeck(t *testing.T, codes string) poker.Deck {
	t.Helper()
	top, err := poker.ParseCards(codes)
	if err != nil {
		t.Fatalf("stackedDeck: %v", err)
	}
	var rest poker.Deck
	for _, c := range poker.NewDeck() {
		if !slices.Contains(top, c) {
			rest = append(rest, c)
		}
	}
	if len(rest)+len(top) != poker.DeckSize {
		t.Fatalf("stackedDeck: duplicate cards in %q", codes)
	}
	for i := len(top) - 1; i >= 0; i-- {
		rest = append(rest, top[i])
	}
	return rest
}

func testEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	rng := randutil.New(7)
	base := []Option{WithRand(rng), WithIDs(handid.NewGenerator(randutil.New(99)))}
	return NewEngine(append(base, opts...)...)
}

// riverState builds a hand already at the river with everyone all-in, the
// way a settled all-in confrontation looks before the final sweep
func riverState(t *testing.T, board string, hands []string, totals []int) GameState {
	t.Helper()
	names := make([]string, len(hands))
	for i := range names {
		names[i] = "Player " + string(rune('1'+i))
	}
	s := NewTable(names, nil, DefaultSmallBlind, DefaultBigBlind)
	s.Stage = StageRiver
	s.HandOver = false
	s.CommunityCards = poker.MustParseCards(board)
	for i := range s.Players {
		p := &s.Players[i]
		p.Hand = poker.MustParseCards(hands[i])
		p.TotalBet = totals[i]
		p.Stack = 0
		p.Status = StatusAllIn
		s.Pot += totals[i]
	}
	return s
}

func mustTry(t *testing.T, e *Engine, s GameState, a Action) GameState {
	t.Helper()
	next, err := e.Try(s, a)
	if err != nil {
		t.Fatalf("%s rejected at %s (seat %d): %v", a, s.Stage, s.ActivePlayerIndex, err)
	}
	return next
}

func sumStacks(s GameState) int {
	total := 0
	for _, p := range s.Players {
		total += p.Stack
	}
	return total
}
