// Package game implements the No-Limit Texas Hold'em rules for a single table.
//
// The engine is a reducer: a GameState and an Action go in, a new GameState
// comes out. The input state is never modified, so callers can keep old
// snapshots for undo, history or display.
//
// # Basic Usage
//
// Create a table and play a hand:
//
//	e := game.NewEngine(game.WithRand(randutil.New(42)))
//	s := game.NewTable([]string{"Alice", "Bob", "Charlie"}, []int{2000, 2000, 2000}, 20, 40)
//	s = e.Apply(s, game.StartHand{Players: s.Players})
//	s = e.Apply(s, game.Call{})
//	if s.HandOver {
//	    fmt.Println(s.HandWinnerDescription)
//	}
//
// Apply silently ignores illegal actions and returns the state unchanged.
// Use Try when the caller needs to know why an action was rejected:
//
//	next, err := e.Try(s, game.Raise{Amount: 140})
//	if errors.Is(err, game.ErrRaiseTooSmall) {
//	    // re-prompt
//	}
//
// # Deterministic Testing
//
// Shuffling uses the *rand.Rand supplied with WithRand. For complete control
// over the cards, WithDeck fixes the deck used for every hand. Cards are
// taken from the end of the deck.
//
// # Architecture
//
// The reducer is split into small steps that all operate on a private copy
// of the input:
//   - NextEligible: circular seat search used for every turn-order decision
//   - betting.go: per-action legality and chip movement
//   - hand.go: hand start, street advance and mechanical run-outs
//   - pot.go and showdown.go: side pots, winners and remainder chips
//
// Each Engine owns its random source and must not be shared between
// goroutines. Run independent tables with independent engines.
package game
