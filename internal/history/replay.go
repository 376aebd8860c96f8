package history

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/poker"
)

// Result is the outcome of replaying an entry
type Result struct {
	Payoffs map[string]int // net chips by player id
	Final   game.GameState
}

// fixedID hands the recorded id back to the engine
type fixedID string

func (id fixedID) Generate() string { return string(id) }

// Replay plays the recorded actions through the engine again, dealing the
// recorded hole cards and board, and returns each player's net payoff.
// The replay fails with ErrReplayMismatch if the engine rejects an action or
// deals a different hand from the one recorded.
func Replay(entry Entry) (Result, error) {
	s, err := run(entry, nil)
	if err != nil {
		return Result{}, err
	}
	payoffs := make(map[string]int, len(s.Players))
	for i, p := range s.Players {
		payoffs[entry.Players[i].ID] = p.Winnings - p.TotalBet
	}
	return Result{Payoffs: payoffs, Final: s}, nil
}

// run replays entry, calling visit with the state before each code is
// applied. Streets are dealt by the engine, so their state is the one
// after the closing action.
func run(entry Entry, visit func(before game.GameState, code Code)) (game.GameState, error) {
	if len(entry.Players) < 2 {
		return game.GameState{}, fmt.Errorf("%w: need at least 2 players, got %d", ErrReplayMismatch, len(entry.Players))
	}
	codes, err := ParseCodes(entry.Actions)
	if err != nil {
		return game.GameState{}, fmt.Errorf("%w: %w", ErrReplayMismatch, err)
	}

	names := make([]string, len(entry.Players))
	stacks := make([]int, len(entry.Players))
	for i, p := range entry.Players {
		names[i] = p.Name
		stacks[i] = p.Stack
	}

	deck, err := stackDeck(entry, codes)
	if err != nil {
		return game.GameState{}, err
	}

	stakes := entry.StakesOrDefault()
	s := game.NewTable(names, stacks, stakes.SmallBlind, stakes.BigBlind)
	dealer := slices.IndexFunc(entry.Players, func(p PlayerRecord) bool { return p.Name == entry.Dealer })
	if dealer < 0 {
		return game.GameState{}, fmt.Errorf("%w: dealer %q is not seated", ErrReplayMismatch, entry.Dealer)
	}
	if prev := previousButton(stacks, dealer); prev != game.NoSeat {
		s.Players[prev].IsDealer = true
	}

	e := game.NewEngine(game.WithDeck(deck), game.WithIDs(fixedID(entry.ID)))
	s = e.Apply(s, game.StartHand{Players: s.Players})
	if s.Stage == game.StageSetup {
		return game.GameState{}, fmt.Errorf("%w: hand could not start", ErrReplayMismatch)
	}
	if err := checkPositions(entry, s); err != nil {
		return game.GameState{}, err
	}

	for i, code := range codes {
		if visit != nil {
			visit(s, code)
		}
		action, ok := code.Action()
		if !ok {
			continue
		}
		next, err := e.Try(s, action)
		if err != nil {
			return game.GameState{}, fmt.Errorf("%w: action %d (%s): %w", ErrReplayMismatch, i, code, err)
		}
		s = next
	}

	if !s.HandOver {
		return game.GameState{}, fmt.Errorf("%w: hand is unfinished after %d actions", ErrReplayMismatch, len(codes))
	}
	if !slices.Equal(s.ShortActionLog, entry.Actions) {
		return game.GameState{}, fmt.Errorf("%w: engine logged %v, recorded %v", ErrReplayMismatch, s.ShortActionLog, entry.Actions)
	}
	return s, nil
}

// Verify replays entry and checks the recorded payoffs and pot
func Verify(entry Entry) error {
	_, err := Check(entry)
	return err
}

// Check is Verify returning the replay result as well
func Check(entry Entry) (Result, error) {
	res, err := Replay(entry)
	if err != nil {
		return Result{}, err
	}
	recorded := entry.Payoffs()
	for id, want := range res.Payoffs {
		if got := recorded[id]; got != want {
			return Result{}, fmt.Errorf("%w: player %s recorded %d, replay gives %d", ErrReplayMismatch, id, got, want)
		}
	}
	if res.Final.Pot != entry.FinalPot {
		return Result{}, fmt.Errorf("%w: recorded pot %d, replay gives %d", ErrReplayMismatch, entry.FinalPot, res.Final.Pot)
	}
	return res, nil
}

// previousButton finds the seat the button must move from to reach dealer
func previousButton(stacks []int, dealer int) int {
	n := len(stacks)
	for step := 1; step < n; step++ {
		seat := (dealer - step + n) % n
		if stacks[seat] > 0 {
			return seat
		}
	}
	return game.NoSeat
}

func checkPositions(entry Entry, s game.GameState) error {
	for _, p := range s.Players {
		switch {
		case p.IsDealer && p.Name != entry.Dealer:
			return fmt.Errorf("%w: dealer is %s, recorded %s", ErrReplayMismatch, p.Name, entry.Dealer)
		case p.IsSmallBlind && p.Name != entry.SmallBlind:
			return fmt.Errorf("%w: small blind is %s, recorded %s", ErrReplayMismatch, p.Name, entry.SmallBlind)
		case p.IsBigBlind && p.Name != entry.BigBlind:
			return fmt.Errorf("%w: big blind is %s, recorded %s", ErrReplayMismatch, p.Name, entry.BigBlind)
		}
	}
	return nil
}

// stackDeck orders a deck so the engine deals the recorded cards: hole
// cards to each seat with chips in seat order, then a burn before every
// street. Burns and unrecorded cards come from the unused rest of the deck.
func stackDeck(entry Entry, codes []Code) (poker.Deck, error) {
	var holes [][]poker.Card
	for _, p := range entry.Players {
		if p.Stack <= 0 {
			continue
		}
		cards, err := poker.ParseCards(p.Cards)
		if err != nil || len(cards) != 2 {
			return nil, fmt.Errorf("%w: player %s has cards %q", ErrReplayMismatch, p.Name, p.Cards)
		}
		holes = append(holes, cards)
	}

	var board []poker.Card
	for _, c := range codes {
		if c.IsStreet() {
			board = append(board, c.Cards...)
		}
	}
	if len(entry.CommunityCards) > 0 {
		recorded, err := poker.ParseCards(strings.Join(entry.CommunityCards, ""))
		if err != nil {
			return nil, fmt.Errorf("%w: community cards: %w", ErrReplayMismatch, err)
		}
		if !slices.Equal(recorded, board) {
			return nil, fmt.Errorf("%w: community cards %v do not match the dealt streets %v",
				ErrReplayMismatch, entry.CommunityCards, poker.CardStrings(board))
		}
	}

	used := make(map[poker.Card]bool)
	var order []poker.Card
	place := func(c poker.Card) error {
		if used[c] {
			return fmt.Errorf("%w: card %s appears twice", ErrReplayMismatch, c)
		}
		used[c] = true
		order = append(order, c)
		return nil
	}
	for round := 0; round < 2; round++ {
		for _, h := range holes {
			if err := place(h[round]); err != nil {
				return nil, err
			}
		}
	}
	for _, c := range board {
		if used[c] {
			return nil, fmt.Errorf("%w: card %s appears twice", ErrReplayMismatch, c)
		}
		used[c] = true
	}

	var rest poker.Deck
	for _, c := range poker.NewDeck() {
		if !used[c] {
			rest = append(rest, c)
		}
	}
	burn := func() {
		order = append(order, rest[len(rest)-1])
		rest = rest[:len(rest)-1]
	}
	for _, c := range codes {
		if !c.IsStreet() {
			continue
		}
		burn()
		order = append(order, c.Cards...)
	}

	// The deck is dealt from the end
	deck := slices.Clone(rest)
	for i := len(order) - 1; i >= 0; i-- {
		deck = append(deck, order[i])
	}
	return deck, nil
}
