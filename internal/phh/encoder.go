// Package phh writes hands in the Poker Hand History TOML format.
package phh

import (
	"bytes"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DealHole records hole cards dealt to the player at index (0-based).
func DealHole(index int, cards string) string {
	return fmt.Sprintf("d dh p%d %s", index+1, cards)
}

// DealBoard records community cards.
func DealBoard(cards string) string {
	return "d db " + cards
}

// Fold records a fold.
func Fold(index int) string {
	return fmt.Sprintf("p%d f", index+1)
}

// CheckOrCall records a check or a call.
func CheckOrCall(index int) string {
	return fmt.Sprintf("p%d cc", index+1)
}

// BetOrRaiseTo records a bet or raise to a total for the street.
func BetOrRaiseTo(index, total int) string {
	return fmt.Sprintf("p%d cbr %d", index+1, total)
}

// ShowHand records a player showing their hole cards at showdown.
func ShowHand(index int, cards string) string {
	return fmt.Sprintf("p%d sm %s", index+1, cards)
}
