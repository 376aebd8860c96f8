package bot

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/poker"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// preflop deals a heads-up hand and gives the small blind hand
func preflop(t *testing.T, hand string) game.GameState {
	t.Helper()
	e := game.NewEngine(game.WithRand(randutil.New(3)))
	s := game.NewTable([]string{"Bot", "Villain"}, nil, 20, 40)
	s = e.Apply(s, game.StartHand{Players: s.Players})
	s.Players[s.ActivePlayerIndex].Hand = poker.MustParseCards(hand)
	return s
}

func TestStrategiesAlwaysReturnLegalActions(t *testing.T) {
	t.Parallel()
	for _, name := range Strategies() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			for seed := int64(1); seed <= 20; seed++ {
				e := game.NewEngine(game.WithRand(randutil.New(seed)))
				seats := []string{"A", "B", "C"}
				bots := make([]Bot, len(seats))
				for i := range bots {
					b, err := New(name, randutil.Derive(seed, i), quietLogger())
					if err != nil {
						t.Fatal(err)
					}
					bots[i] = b
				}

				s := game.NewTable(seats, nil, 20, 40)
				for hand := 0; hand < 10; hand++ {
					s = e.Apply(s, game.StartHand{Players: s.Players})
					if s.Stage == game.StageSetup {
						break
					}
					for steps := 0; !s.HandOver; steps++ {
						if steps > 200 {
							t.Fatalf("seed %d: hand did not finish", seed)
						}
						action, err := bots[s.ActivePlayerIndex].Decide(context.Background(), s, game.ValidActions(s))
						if err != nil {
							t.Fatalf("Decide: %v", err)
						}
						next, err := e.Try(s, action)
						if err != nil {
							t.Fatalf("seed %d: %s chose illegal %s: %v", seed, name, action, err)
						}
						s = next
					}
				}
			}
		})
	}
}

func TestNewUnknownStrategy(t *testing.T) {
	t.Parallel()
	if _, err := New("shark", nil, nil); err == nil {
		t.Fatal("expected an error for an unknown strategy")
	}
	if b, err := New("random", nil, nil); err != nil || b == nil {
		t.Fatalf("random bot without rng: %v", err)
	}
}

func TestCallBot(t *testing.T) {
	t.Parallel()
	s := preflop(t, "7s2d")
	action, _ := NewCallBot(nil).Decide(context.Background(), s, game.ValidActions(s))
	if action != (game.Call{}) {
		t.Errorf("call bot facing the big blind chose %s", action)
	}
}

func TestFoldBotChecksWhenFree(t *testing.T) {
	t.Parallel()
	valid := []game.ValidAction{{Kind: game.KindFold}, {Kind: game.KindCheck}, {Kind: game.KindBet, Min: 40, Max: 2000}}
	action, _ := NewFoldBot(nil).Decide(context.Background(), game.GameState{}, valid)
	if action != (game.Check{}) {
		t.Errorf("fold bot chose %s with a free check", action)
	}

	action, _ = NewFoldBot(nil).Decide(context.Background(), game.GameState{}, valid[:1])
	if action != (game.Fold{}) {
		t.Errorf("fold bot chose %s facing a bet", action)
	}
}

func TestTAGBotRaisesPremiums(t *testing.T) {
	t.Parallel()
	bot := NewTAGBot(randutil.New(1), nil)

	s := preflop(t, "AsAh")
	action, _ := bot.Decide(context.Background(), s, game.ValidActions(s))
	raise, ok := action.(game.Raise)
	if !ok || raise.Amount < game.MinRaiseTotal(s) {
		t.Errorf("TAG with aces chose %s", action)
	}

	if !isPremium(poker.MustParseCards("Ac")[0], poker.MustParseCards("Qd")[0]) {
		t.Error("AQ is premium")
	}
	if isPremium(poker.MustParseCards("9c")[0], poker.MustParseCards("9d")[0]) {
		t.Error("99 is not premium")
	}
}

func TestScripted(t *testing.T) {
	t.Parallel()
	b := NewScripted(game.Call{}, game.Raise{Amount: 200})
	ctx := context.Background()

	if a, _ := b.Decide(ctx, game.GameState{}, nil); a != (game.Call{}) {
		t.Errorf("first action %s", a)
	}
	if a, _ := b.Decide(ctx, game.GameState{}, nil); a != (game.Raise{Amount: 200}) {
		t.Errorf("second action %s", a)
	}
	if _, err := b.Decide(ctx, game.GameState{}, nil); err != ErrScriptExhausted {
		t.Errorf("exhausted script: err = %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := NewScripted(game.Fold{}).Decide(cancelled, game.GameState{}, nil); err == nil {
		t.Error("expected the context error")
	}
}
