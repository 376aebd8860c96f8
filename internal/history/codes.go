package history

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/poker"
)

// CodeKind identifies an entry of the short action log
type CodeKind uint8

const (
	CodeFold CodeKind = iota
	CodeCheck
	CodeCall
	CodeBet
	CodeRaise
	CodeFlop
	CodeTurn
	CodeRiver
)

// Code is one parsed action code: a player decision such as "r120" or a
// street dealt by the engine such as "F[2h7dJc]".
type Code struct {
	Kind   CodeKind
	Amount int          // bets and raises
	Cards  []poker.Card // streets
}

// IsStreet reports whether the code records community cards
func (c Code) IsStreet() bool {
	return c.Kind == CodeFlop || c.Kind == CodeTurn || c.Kind == CodeRiver
}

// String formats the code the way the engine logs it
func (c Code) String() string {
	switch c.Kind {
	case CodeFold:
		return "f"
	case CodeCheck:
		return "x"
	case CodeCall:
		return "c"
	case CodeBet:
		return "b" + strconv.Itoa(c.Amount)
	case CodeRaise:
		return "r" + strconv.Itoa(c.Amount)
	case CodeFlop:
		return "F[" + poker.FormatCards(c.Cards, "") + "]"
	case CodeTurn:
		return "T[" + poker.FormatCards(c.Cards, "") + "]"
	case CodeRiver:
		return "R[" + poker.FormatCards(c.Cards, "") + "]"
	default:
		return "?"
	}
}

// Action returns the engine action for a player decision. ok is false for
// streets, which the engine deals itself.
func (c Code) Action() (action game.Action, ok bool) {
	switch c.Kind {
	case CodeFold:
		return game.Fold{}, true
	case CodeCheck:
		return game.Check{}, true
	case CodeCall:
		return game.Call{}, true
	case CodeBet:
		return game.Bet{Amount: c.Amount}, true
	case CodeRaise:
		return game.Raise{Amount: c.Amount}, true
	default:
		return nil, false
	}
}

// ParseCode parses one short action log entry. Street cards may be written
// with or without spaces, so "F[2h7dJc]" and "F[2h 7d Jc]" are equivalent.
func ParseCode(s string) (Code, error) {
	switch s {
	case "f", "F":
		return Code{Kind: CodeFold}, nil
	case "x":
		return Code{Kind: CodeCheck}, nil
	case "c":
		return Code{Kind: CodeCall}, nil
	}
	if s == "" {
		return Code{}, fmt.Errorf("empty action code")
	}

	switch s[0] {
	case 'b', 'r':
		amount, err := strconv.Atoi(s[1:])
		if err != nil || amount <= 0 {
			return Code{}, fmt.Errorf("invalid action code %q: bad amount", s)
		}
		kind := CodeBet
		if s[0] == 'r' {
			kind = CodeRaise
		}
		return Code{Kind: kind, Amount: amount}, nil
	case 'F', 'T', 'R':
		if len(s) < 3 || s[1] != '[' || !strings.HasSuffix(s, "]") {
			return Code{}, fmt.Errorf("invalid action code %q", s)
		}
		cards, err := poker.ParseCards(s[2 : len(s)-1])
		if err != nil {
			return Code{}, fmt.Errorf("invalid action code %q: %w", s, err)
		}
		kind, want := CodeFlop, 3
		switch s[0] {
		case 'T':
			kind, want = CodeTurn, 1
		case 'R':
			kind, want = CodeRiver, 1
		}
		if len(cards) != want {
			return Code{}, fmt.Errorf("invalid action code %q: want %d cards, got %d", s, want, len(cards))
		}
		return Code{Kind: kind, Cards: cards}, nil
	}
	return Code{}, fmt.Errorf("unknown action code %q", s)
}

// ParseCodes parses a whole short action log
func ParseCodes(codes []string) ([]Code, error) {
	out := make([]Code, 0, len(codes))
	for i, s := range codes {
		c, err := ParseCode(s)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}
