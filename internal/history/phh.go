package history

import (
	"fmt"
	"io"
	"time"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/phh"
	"github.com/lox/holdem-engine/poker"
)

const phhVariant = "NT"

// ToPHH converts entry into a Poker Hand History record. Players are listed
// from the small blind, and seats without chips are left out. The entry is
// replayed to attribute every action to its player, so an entry that does
// not replay cannot be exported.
func ToPHH(entry Entry, createdAt time.Time) (*phh.HandHistory, error) {
	order, err := phhOrder(entry)
	if err != nil {
		return nil, err
	}
	index := make(map[int]int, len(order))
	for pos, seat := range order {
		index[seat] = pos
	}

	stakes := entry.StakesOrDefault()
	n := len(order)
	hist := &phh.HandHistory{
		Variant:           phhVariant,
		SeatCount:         len(entry.Players),
		Seats:             make([]int, n),
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		MinBet:            stakes.BigBlind,
		StartingStacks:    make([]int, n),
		FinishingStacks:   make([]int, n),
		Winnings:          make([]int, n),
		Players:           make([]string, n),
		Actions:           make([]string, 0, n+len(entry.Actions)),
		HandID:            entry.ID,
	}
	hist.SetTimestamp(createdAt)

	for pos, seat := range order {
		p := entry.Players[seat]
		hist.Seats[pos] = seat + 1
		hist.Players[pos] = p.Name
		hist.StartingStacks[pos] = p.Stack
		hist.FinishingStacks[pos] = p.Stack + p.Winnings
		hist.Winnings[pos] = max(p.Winnings, 0)
		switch p.Name {
		case entry.SmallBlind:
			hist.BlindsOrStraddles[pos] = min(stakes.SmallBlind, p.Stack)
		case entry.BigBlind:
			hist.BlindsOrStraddles[pos] = min(stakes.BigBlind, p.Stack)
		}
		hist.Actions = append(hist.Actions, phh.DealHole(pos, p.Cards))
	}

	final, err := run(entry, func(before game.GameState, code Code) {
		if code.IsStreet() {
			hist.Actions = append(hist.Actions, phh.DealBoard(poker.FormatCards(code.Cards, "")))
			return
		}
		pos := index[before.ActivePlayerIndex]
		switch code.Kind {
		case CodeFold:
			hist.Actions = append(hist.Actions, phh.Fold(pos))
		case CodeCheck, CodeCall:
			hist.Actions = append(hist.Actions, phh.CheckOrCall(pos))
		case CodeBet, CodeRaise:
			hist.Actions = append(hist.Actions, phh.BetOrRaiseTo(pos, code.Amount))
		}
	})
	if err != nil {
		return nil, err
	}

	// Hands that reached a showdown reveal every contender
	if final.CountInHand() > 1 {
		for pos, seat := range order {
			if p := final.Players[seat]; p.InHand() {
				hist.Actions = append(hist.Actions, phh.ShowHand(pos, entry.Players[seat].Cards))
			}
		}
	}
	return hist, nil
}

// EncodePHH writes entry to w as PHH TOML
func EncodePHH(w io.Writer, entry Entry, createdAt time.Time) error {
	hist, err := ToPHH(entry, createdAt)
	if err != nil {
		return fmt.Errorf("converting hand %s: %w", entry.ID, err)
	}
	return phh.Encode(w, hist)
}

// phhOrder lists the seats with chips starting from the small blind
func phhOrder(entry Entry) ([]int, error) {
	sb := -1
	for i, p := range entry.Players {
		if p.Name == entry.SmallBlind {
			sb = i
			break
		}
	}
	if sb < 0 {
		return nil, fmt.Errorf("%w: small blind %q is not seated", ErrReplayMismatch, entry.SmallBlind)
	}
	n := len(entry.Players)
	order := make([]int, 0, n)
	for step := range n {
		seat := (sb + step) % n
		if entry.Players[seat].Stack > 0 {
			order = append(order, seat)
		}
	}
	return order, nil
}
