package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/history"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/internal/store"
)

func TestParseInput(t *testing.T) {
	t.Parallel()
	valid := []game.ValidAction{
		{Kind: game.KindFold},
		{Kind: game.KindCall, Min: 40, Max: 40},
		{Kind: game.KindRaise, Min: 80, Max: 2000},
	}
	tests := []struct {
		in   string
		want game.Action
	}{
		{"fold", game.Fold{}},
		{"F", game.Fold{}},
		{"x", game.Check{}},
		{"check", game.Check{}},
		{"c", game.Call{}},
		{"bet 120", game.Bet{Amount: 120}},
		{"r 240", game.Raise{Amount: 240}},
		{"  Raise   300 ", game.Raise{Amount: 300}},
		{"allin", game.Raise{Amount: 2000}},
	}
	for _, tt := range tests {
		got, err := parseInput(tt.in, valid)
		if err != nil {
			t.Fatalf("parseInput(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("parseInput(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseInputErrors(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"", "dance", "raise", "raise lots", "bet -5", "bet 0"} {
		if _, err := parseInput(in, nil); err == nil {
			t.Fatalf("parseInput(%q) should fail", in)
		}
	}
	if _, err := parseInput("q", nil); !errors.Is(err, errQuit) {
		t.Fatalf("quit: got %v", err)
	}
	if _, err := parseInput("?", nil); !errors.Is(err, errHelp) {
		t.Fatalf("help: got %v", err)
	}
}

func TestAllIn(t *testing.T) {
	t.Parallel()
	bet, err := allIn([]game.ValidAction{{Kind: game.KindFold}, {Kind: game.KindCheck}, {Kind: game.KindBet, Min: 40, Max: 500}})
	if err != nil || bet != (game.Bet{Amount: 500}) {
		t.Fatalf("bet all-in: got %v, %v", bet, err)
	}
	call, err := allIn([]game.ValidAction{{Kind: game.KindFold}, {Kind: game.KindCall, Min: 300, Max: 300}})
	if err != nil || call != (game.Call{}) {
		t.Fatalf("call all-in: got %v, %v", call, err)
	}
	if _, err := allIn([]game.ValidAction{{Kind: game.KindFold}, {Kind: game.KindCheck}}); err == nil {
		t.Fatal("expected an error with no chips to commit")
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "debug", "json")
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug().Str("hand_id", "h1").Msg("Hand started")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected json, got %q", buf.String())
	}
	if line["hand_id"] != "h1" || line["level"] != "debug" {
		t.Fatalf("unexpected log line %v", line)
	}

	if _, err := newLogger(&buf, "chatty", "json"); err == nil {
		t.Fatal("expected an invalid level error")
	}
	if _, err := newLogger(&buf, "info", "xml"); err == nil {
		t.Fatal("expected an invalid format error")
	}
}

// playedEntry plays a quick heads-up hand where the small blind folds
func playedEntry(t *testing.T) history.Entry {
	t.Helper()
	e := game.NewEngine(game.WithRand(randutil.New(7)))
	s := game.NewTable([]string{"Alice", "Bob"}, nil, 20, 40)
	s = e.Apply(s, game.StartHand{Players: s.Players})
	s = e.Apply(s, game.Fold{})
	if !s.HandOver {
		t.Fatal("hand should be over after the fold")
	}
	return history.NewEntry(s)
}

func TestDecodeSource(t *testing.T) {
	t.Parallel()
	entry := playedEntry(t)

	bare, err := json.Marshal(entry)
	if err != nil {
		t.Fatal(err)
	}
	got, created, err := decodeSource(bare)
	if err != nil || got.ID != entry.ID || !created.IsZero() {
		t.Fatalf("bare entry: got %v %v %v", got.ID, created, err)
	}

	saved := time.Date(2026, time.July, 4, 20, 0, 0, 0, time.UTC)
	wrapped, err := json.Marshal(store.Record{ID: entry.ID, Payload: entry, Payoffs: entry.Payoffs(), CreatedAt: saved})
	if err != nil {
		t.Fatal(err)
	}
	got, created, err = decodeSource(wrapped)
	if err != nil || got.ID != entry.ID || !created.Equal(saved) {
		t.Fatalf("stored record: got %v %v %v", got.ID, created, err)
	}

	if _, _, err := decodeSource([]byte(`{"id": 3}`)); !errors.Is(err, history.ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	entry := playedEntry(t)
	line := summarize(store.Record{ID: entry.ID, Payload: entry, Payoffs: entry.Payoffs()})
	if !strings.Contains(line, entry.ID) || !strings.Contains(line, "Alice -20") || !strings.Contains(line, "Bob +20") {
		t.Fatalf("unexpected summary %q", line)
	}
}

func TestNarratorPrintsEachLineOnce(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	n := newNarrator(&buf, newStyles(), "Alice")

	e := game.NewEngine(game.WithRand(randutil.New(3)))
	s := game.NewTable([]string{"Alice", "Bob"}, nil, 20, 40)
	s = e.Apply(s, game.StartHand{Players: s.Players})
	n.observe(s)
	n.observe(s)
	s = e.Apply(s, game.Fold{})
	n.observe(s)

	out := buf.String()
	if got := strings.Count(out, "posts big blind of 40."); got != 1 {
		t.Fatalf("big blind printed %d times:\n%s", got, out)
	}
	if !strings.Contains(out, "Alice folds.") {
		t.Fatalf("missing fold line:\n%s", out)
	}
}
