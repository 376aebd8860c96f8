package history

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/poker"
)

// headsUpDeck deals Alice AsAc and Bob KsKc and runs out 2h7dJc Qh 4s
const headsUpDeck = "AsKs AcKc 2d 2h7dJc 3d Qh 4d 4s"

func stackedDeck(t *testing.T, codes string) poker.Deck {
	t.Helper()
	top, err := poker.ParseCards(codes)
	require.NoError(t, err)
	var deck poker.Deck
	for _, c := range poker.NewDeck() {
		if !slices.Contains(top, c) {
			deck = append(deck, c)
		}
	}
	for i := len(top) - 1; i >= 0; i-- {
		deck = append(deck, top[i])
	}
	return deck
}

// playHeadsUp plays the recorded heads-up hand: Alice limps, checks behind,
// raises the flop, checks the turn and takes the pot with a river bet.
func playHeadsUp(t *testing.T) game.GameState {
	t.Helper()
	e := game.NewEngine(game.WithDeck(stackedDeck(t, headsUpDeck)), game.WithIDs(fixedID("hand-1")))
	s := game.NewTable([]string{"Alice", "Bob"}, nil, 20, 40)
	s = e.Apply(s, game.StartHand{Players: s.Players})
	for _, a := range []game.Action{
		game.Call{}, game.Check{},
		game.Bet{Amount: 100}, game.Raise{Amount: 300}, game.Call{},
		game.Check{}, game.Check{},
		game.Check{}, game.Bet{Amount: 500}, game.Fold{},
	} {
		next, err := e.Try(s, a)
		require.NoError(t, err, "applying %s", a)
		s = next
	}
	require.True(t, s.HandOver)
	return s
}

// playShowdown plays a three-handed hand that is checked down to showdown
func playShowdown(t *testing.T) game.GameState {
	t.Helper()
	deck := stackedDeck(t, "AsKsQs AcKcQc 2d 2h7dJc 3d 8h 4d 4s")
	e := game.NewEngine(game.WithDeck(deck), game.WithIDs(fixedID("hand-2")))
	s := game.NewTable([]string{"Alice", "Bob", "Carol"}, []int{2000, 1500, 1000}, 20, 40)
	s = e.Apply(s, game.StartHand{Players: s.Players})
	for !s.HandOver {
		next, err := e.Try(s, game.Call{})
		require.NoError(t, err)
		s = next
	}
	return s
}
