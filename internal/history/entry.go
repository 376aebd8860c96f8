// Package history records finished hands, replays them through the engine
// to check their payoffs, and converts them to exchange formats.
package history

import (
	"errors"
	"strconv"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/poker"
)

// ErrReplayMismatch is returned when a recorded hand cannot be reproduced
var ErrReplayMismatch = errors.New("hand history does not replay")

// PlayerRecord is one seat of a recorded hand
type PlayerRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Stack    int    `json:"stack"`    // before the blinds were posted
	Cards    string `json:"cards"`    // hole cards, e.g. "AsKd"
	Winnings int    `json:"winnings"` // net result of the hand
}

// Stakes are the blinds a hand was played at
type Stakes struct {
	SmallBlind int `json:"smallBlind"`
	BigBlind   int `json:"bigBlind"`
}

// DefaultStakes are used for entries that do not record their blinds
var DefaultStakes = Stakes{SmallBlind: game.DefaultSmallBlind, BigBlind: game.DefaultBigBlind}

// Entry is the immutable record of one completed hand
type Entry struct {
	ID             string         `json:"id"`
	Dealer         string         `json:"dealer"`
	SmallBlind     string         `json:"smallBlind"`
	BigBlind       string         `json:"bigBlind"`
	Players        []PlayerRecord `json:"players"`
	Actions        []string       `json:"actions"`
	CommunityCards []string       `json:"communityCards"`
	FinalPot       int            `json:"finalPot"`
	Stakes         *Stakes        `json:"stakes,omitempty"`
}

// NewEntry builds the record of a finished hand from its final state.
// Starting stacks are recovered from what each player committed and won.
func NewEntry(final game.GameState) Entry {
	entry := Entry{
		ID:             final.HandID,
		Actions:        append([]string{}, final.ShortActionLog...),
		CommunityCards: poker.CardStrings(final.CommunityCards),
		FinalPot:       final.Pot,
		Stakes:         &Stakes{SmallBlind: final.SmallBlind, BigBlind: final.BigBlind},
	}
	for i, p := range final.Players {
		if p.IsDealer {
			entry.Dealer = p.Name
		}
		if p.IsSmallBlind {
			entry.SmallBlind = p.Name
		}
		if p.IsBigBlind {
			entry.BigBlind = p.Name
		}
		entry.Players = append(entry.Players, PlayerRecord{
			ID:       strconv.Itoa(i),
			Name:     p.Name,
			Stack:    p.Stack - p.Winnings + p.TotalBet,
			Cards:    poker.FormatCards(p.Hand, ""),
			Winnings: p.Winnings - p.TotalBet,
		})
	}
	return entry
}

// StakesOrDefault returns the recorded blinds, falling back to DefaultStakes
func (e Entry) StakesOrDefault() Stakes {
	if e.Stakes == nil || e.Stakes.BigBlind == 0 {
		return DefaultStakes
	}
	return *e.Stakes
}

// FinalStacks returns each player's stack after the hand, by name
func (e Entry) FinalStacks() map[string]int {
	stacks := make(map[string]int, len(e.Players))
	for _, p := range e.Players {
		stacks[p.Name] = p.Stack + p.Winnings
	}
	return stacks
}

// Payoffs returns the recorded net result of each player, by id
func (e Entry) Payoffs() map[string]int {
	payoffs := make(map[string]int, len(e.Players))
	for _, p := range e.Players {
		payoffs[p.ID] = p.Winnings
	}
	return payoffs
}
