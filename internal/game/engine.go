package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/lox/holdem-engine/internal/handid"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/poker"
)

// IDGenerator produces hand identifiers
type IDGenerator interface {
	Generate() string
}

// Engine applies actions to game states. It holds no table state of its own,
// only the sources of randomness used when a hand is dealt.
type Engine struct {
	rng    *rand.Rand
	deck   poker.Deck
	ids    IDGenerator
	logger zerolog.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithRand sets the random source used for shuffling. Hand ids are drawn
// from the same source unless WithIDs is also given.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithDeck deals every hand from a copy of deck instead of shuffling.
// Cards are taken from the end.
func WithDeck(deck poker.Deck) Option {
	return func(e *Engine) {
		e.deck = deck.Clone()
	}
}

// WithIDs sets the hand id generator
func WithIDs(ids IDGenerator) Option {
	return func(e *Engine) {
		e.ids = ids
	}
}

// WithLogger sets the logger used for debug output about rejected actions
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an engine. Without options it shuffles with a
// time-seeded generator and logs nothing.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng, _ = randutil.NewTimeSeeded()
	}
	if e.ids == nil {
		e.ids = handid.NewGenerator(e.rng)
	}
	return e
}

// Apply returns the state that results from action. Illegal actions leave
// the state unchanged. The input state is never modified.
func (e *Engine) Apply(s GameState, action Action) GameState {
	next, _ := e.Try(s, action)
	return next
}

// Try is Apply that also reports why an action was rejected. On error the
// returned state is s itself.
func (e *Engine) Try(s GameState, action Action) (GameState, error) {
	next, err := e.dispatch(s, action)
	if err != nil {
		e.logger.Debug().
			Err(err).
			Str("action", fmt.Sprint(action)).
			Str("stage", s.Stage.String()).
			Int("seat", s.ActivePlayerIndex).
			Msg("Action rejected")
		return s, err
	}
	return next, nil
}

func (e *Engine) dispatch(s GameState, action Action) (GameState, error) {
	if start, ok := action.(StartHand); ok {
		if len(start.Players) > MaxSeats {
			return s, fmt.Errorf("%w: %d seats, at most %d", ErrTooManyPlayers, len(start.Players), MaxSeats)
		}
		return e.startHand(s, start.Players), nil
	}
	if action == nil {
		return s, ErrUnknownAction
	}
	if s.Stage == StageSetup || s.HandOver {
		return s, ErrNotActionable
	}

	next := s.Clone()
	player := next.ActivePlayer()
	if player == nil || !player.CanAct() {
		// Turn tracking pointed at someone who cannot act: move on
		e.logger.Debug().
			Int("seat", next.ActivePlayerIndex).
			Str("dropped_action", fmt.Sprint(action)).
			Msg("Skipping seat that cannot act, action dropped")
		seat := NextEligible(next.ActivePlayerIndex, len(next.Players), next.mask(notPlaying))
		if seat != NoSeat && seat != next.ActivePlayerIndex {
			next.ActivePlayerIndex = seat
			return next, nil
		}
		e.afterAction(&next)
		return next, nil
	}

	var err error
	switch a := action.(type) {
	case Fold:
		fold(&next, player)
	case Check:
		err = check(&next, player)
	case Call:
		err = call(&next, player)
	case Bet:
		err = bet(&next, player, a.Amount)
	case Raise:
		err = raise(&next, player, a.Amount)
	default:
		err = ErrUnknownAction
	}
	if err != nil {
		return s, err
	}

	e.afterAction(&next)
	return next, nil
}
