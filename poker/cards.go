package poker

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit uint8

const (
	Spades Suit = iota
	Clubs
	Hearts
	Diamonds
)

// Suits lists every suit in deck-construction order
var Suits = [...]Suit{Spades, Clubs, Hearts, Diamonds}

const suitCodes = "schd"

// String returns the single-letter code of the suit ("s", "c", "h", "d")
func (s Suit) String() string {
	if int(s) >= len(suitCodes) {
		return "?"
	}
	return suitCodes[s : s+1]
}

// Symbol returns the unicode symbol for the suit
func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	default:
		return "?"
	}
}

// IsRed returns true for hearts and diamonds
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Values run from Two (2) to Ace (14).
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const rankCodes = "23456789TJQKA"

// String returns the single-character code of the rank
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	i := int(r - Two)
	return rankCodes[i : i+1]
}

// Card is an immutable playing card. Cards compare equal by rank and suit.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the card code, e.g. "As" or "Td"
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Valid reports whether the card has a real rank and suit
func (c Card) Valid() bool {
	return c.Rank >= Two && c.Rank <= Ace && int(c.Suit) < len(suitCodes)
}

// ParseCard parses a two-character card code such as "As", "Td" or "2c".
// The rank is case-insensitive for letters; the suit must be one of s, c, h, d.
func ParseCard(code string) (Card, error) {
	if len(code) != 2 {
		return Card{}, fmt.Errorf("invalid card %q: want 2 characters", code)
	}
	ri := strings.IndexByte(rankCodes, upper(code[0]))
	if ri < 0 {
		return Card{}, fmt.Errorf("invalid card %q: unknown rank %q", code, code[0])
	}
	si := strings.IndexByte(suitCodes, lower(code[1]))
	if si < 0 {
		return Card{}, fmt.Errorf("invalid card %q: unknown suit %q", code, code[1])
	}
	return Card{Rank: Two + Rank(ri), Suit: Suit(si)}, nil
}

// MustParseCard parses a card code and panics on error. Intended for tests and fixtures.
func MustParseCard(code string) Card {
	c, err := ParseCard(code)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCards parses a run of card codes. Whitespace between codes is optional,
// so "AsKd", "As Kd" and "As,Kd" are all accepted.
func ParseCards(s string) ([]Card, error) {
	compact := strings.Map(func(r rune) rune {
		if r == ' ' || r == ',' || r == '\t' {
			return -1
		}
		return r
	}, s)
	if len(compact)%2 != 0 {
		return nil, fmt.Errorf("invalid card list %q: odd length", s)
	}
	cards := make([]Card, 0, len(compact)/2)
	for i := 0; i < len(compact); i += 2 {
		c, err := ParseCard(compact[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixtures
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins card codes with sep
func FormatCards(cards []Card, sep string) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, sep)
}

// CardStrings returns the code of every card
func CardStrings(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}
