// Package table runs hands at one table, carrying stacks from hand to hand
// and asking an Agent for every decision.
package table

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/history"
	"github.com/lox/holdem-engine/internal/store"
)

// DefaultActionTimeout bounds how long an agent may think
const DefaultActionTimeout = 30 * time.Second

// ErrNotEnoughPlayers is returned when fewer than two seats have chips
var ErrNotEnoughPlayers = errors.New("not enough players with chips")

// Agent decides what the active player does. Decide should return once ctx
// is cancelled; after a timeout the session does not ask the same seat
// again until the abandoned call has returned.
type Agent interface {
	Decide(ctx context.Context, state game.GameState, valid []game.ValidAction) (game.Action, error)
}

// Seat is a player joining the table
type Seat struct {
	Name  string
	Stack int
	Agent Agent
}

// Session plays consecutive hands at one table. It is not safe for
// concurrent use; run one Session per goroutine.
type Session struct {
	engine  *game.Engine
	state   game.GameState
	agents  []Agent
	pending []chan struct{} // per seat, closed when an abandoned Decide returns
	clock   quartz.Clock
	timeout time.Duration
	store   store.Store
	logger  zerolog.Logger
	observe func(game.GameState)
	sb, bb  int
}

// Option configures a Session
type Option func(*Session)

// WithEngine sets the engine used to apply actions
func WithEngine(e *game.Engine) Option { return func(s *Session) { s.engine = e } }

// WithClock sets the clock used for action timeouts
func WithClock(c quartz.Clock) Option { return func(s *Session) { s.clock = c } }

// WithActionTimeout sets how long an agent may take. Zero disables the limit.
func WithActionTimeout(d time.Duration) Option { return func(s *Session) { s.timeout = d } }

// WithStore records every finished hand in st
func WithStore(st store.Store) Option { return func(s *Session) { s.store = st } }

// WithLogger sets the session logger
func WithLogger(l zerolog.Logger) Option { return func(s *Session) { s.logger = l } }

// WithBlinds sets the stakes
func WithBlinds(small, big int) Option { return func(s *Session) { s.sb, s.bb = small, big } }

// WithObserver is called with the state after the hand starts and after
// every applied action
func WithObserver(fn func(game.GameState)) Option { return func(s *Session) { s.observe = fn } }

// NewSession seats players at a new table
func NewSession(seats []Seat, opts ...Option) (*Session, error) {
	if len(seats) < 2 || len(seats) > game.MaxSeats {
		return nil, fmt.Errorf("table needs 2 to %d seats, got %d", game.MaxSeats, len(seats))
	}
	s := &Session{
		clock:   quartz.NewReal(),
		timeout: DefaultActionTimeout,
		logger:  zerolog.Nop(),
		sb:      game.DefaultSmallBlind,
		bb:      game.DefaultBigBlind,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == nil {
		s.engine = game.NewEngine(game.WithLogger(s.logger))
	}

	names := make([]string, len(seats))
	stacks := make([]int, len(seats))
	seen := make(map[string]bool, len(seats))
	for i, seat := range seats {
		if seat.Agent == nil {
			return nil, fmt.Errorf("seat %d (%s) has no agent", i, seat.Name)
		}
		if seen[seat.Name] {
			return nil, fmt.Errorf("player name %q is used twice", seat.Name)
		}
		seen[seat.Name] = true
		names[i], stacks[i] = seat.Name, seat.Stack
		s.agents = append(s.agents, seat.Agent)
	}
	s.pending = make([]chan struct{}, len(seats))
	s.state = game.NewTable(names, stacks, s.sb, s.bb)
	return s, nil
}

// State returns the current table state
func (s *Session) State() game.GameState { return s.state }

// Stacks returns each player's chips by name
func (s *Session) Stacks() map[string]int {
	stacks := make(map[string]int, len(s.state.Players))
	for _, p := range s.state.Players {
		stacks[p.Name] = p.Stack
	}
	return stacks
}

// RestoreStacks seeds stacks from the last stored hand: each player found
// in it gets their stack after that hand. Players the hand does not list
// keep their current stack. It is a no-op when nothing is stored.
func (s *Session) RestoreStacks(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	last, err := store.Latest(ctx, s.store)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore stacks: %w", err)
	}

	final := last.Payload.FinalStacks()
	restored := 0
	for i := range s.state.Players {
		p := &s.state.Players[i]
		if stack, ok := final[p.Name]; ok {
			p.Stack = stack
			restored++
		}
	}
	s.logger.Info().Str("hand_id", last.ID).Int("players", restored).Msg("Restored stacks from history")
	return nil
}

// PlayHand plays one hand to completion and records it. A seat whose agent
// errors, times out or picks an illegal action folds.
func (s *Session) PlayHand(ctx context.Context) (game.GameState, error) {
	st := s.engine.Apply(s.state, game.StartHand{Players: s.state.Players})
	if st.Stage == game.StageSetup {
		s.state = st
		return st, ErrNotEnoughPlayers
	}
	s.notify(st)
	logger := s.logger.With().Str("hand_id", st.HandID).Logger()
	logger.Debug().Int("dealer", st.DealerIndex()).Msg("Hand started")

	for !st.HandOver {
		seat := st.ActivePlayerIndex
		action, err := s.decide(ctx, st)
		if ctx.Err() != nil {
			return st, ctx.Err()
		}
		if err != nil {
			logger.Warn().Err(err).Str("player", st.Players[seat].Name).Msg("Agent failed, folding")
			action = game.Fold{}
		}

		next, err := s.engine.Try(st, action)
		if err != nil {
			logger.Warn().Err(err).Str("player", st.Players[seat].Name).Stringer("action", action).Msg("Illegal action, folding")
			next, err = s.engine.Try(st, game.Fold{})
			if err != nil {
				return st, fmt.Errorf("folding seat %d: %w", seat, err)
			}
		}
		st = next
		s.notify(st)
	}

	s.state = st
	logger.Info().Str("result", st.HandWinnerDescription).Int("pot", st.Pot).Msg("Hand complete")
	if err := s.record(ctx, st); err != nil {
		return st, err
	}
	return st, nil
}

// Run plays up to hands hands, stopping early when the table runs out of
// players. It returns the number of hands played.
func (s *Session) Run(ctx context.Context, hands int) (int, error) {
	played := 0
	for hands <= 0 || played < hands {
		if _, err := s.PlayHand(ctx); err != nil {
			if errors.Is(err, ErrNotEnoughPlayers) {
				return played, nil
			}
			return played, err
		}
		played++
	}
	return played, nil
}

// decide asks the active seat's agent, folding it when the timeout fires
func (s *Session) decide(ctx context.Context, st game.GameState) (game.Action, error) {
	seat := st.ActivePlayerIndex
	agent := s.agents[seat]
	valid := game.ValidActions(st)

	if stale := s.pending[seat]; stale != nil {
		select {
		case <-stale:
			s.pending[seat] = nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.timeout <= 0 {
		return agent.Decide(ctx, st, valid)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type decision struct {
		action game.Action
		err    error
	}
	decided := make(chan decision, 1)
	returned := make(chan struct{})
	timedOut := make(chan struct{})

	timer := s.clock.AfterFunc(s.timeout, func() { close(timedOut) }, "table", "decide")
	defer timer.Stop()

	go func() {
		defer close(returned)
		action, err := agent.Decide(ctx, st, valid)
		decided <- decision{action, err}
	}()

	select {
	case d := <-decided:
		return d.action, d.err
	case <-timedOut:
		s.pending[seat] = returned
		return nil, fmt.Errorf("no decision after %s", s.timeout)
	case <-ctx.Done():
		s.pending[seat] = returned
		return nil, ctx.Err()
	}
}

func (s *Session) record(ctx context.Context, final game.GameState) error {
	if s.store == nil {
		return nil
	}
	entry := history.NewEntry(final)
	_, err := s.store.Save(ctx, store.Record{ID: entry.ID, Payload: entry, Payoffs: entry.Payoffs()})
	if err != nil {
		return fmt.Errorf("recording hand %s: %w", entry.ID, err)
	}
	return nil
}

func (s *Session) notify(st game.GameState) {
	if s.observe != nil {
		s.observe(st)
	}
}
