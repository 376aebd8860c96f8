package phh_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/lox/holdem-engine/internal/phh"
)

func TestActionFormatting(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"hole cards", phh.DealHole(0, "AhKh"), "d dh p1 AhKh"},
		{"board", phh.DealBoard("2c7dJh"), "d db 2c7dJh"},
		{"fold", phh.Fold(2), "p3 f"},
		{"check or call", phh.CheckOrCall(1), "p2 cc"},
		{"raise", phh.BetOrRaiseTo(0, 120), "p1 cbr 120"},
		{"show", phh.ShowHand(1, "QsJs"), "p2 sm QsJs"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Fatalf("%s: got %q want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestEncodeHandHistory(t *testing.T) {
	hand := &phh.HandHistory{
		Variant:           "NT",
		Table:             "default",
		SeatCount:         3,
		Seats:             []int{1, 2, 3},
		Antes:             []int{0, 0, 0},
		BlindsOrStraddles: []int{20, 40, 0},
		MinBet:            40,
		StartingStacks:    []int{2000, 2000, 2000},
		FinishingStacks:   []int{1960, 2080, 1960},
		Winnings:          []int{0, 120, 0},
		Actions: []string{
			"d dh p1 AhKh",
			"d dh p2 7c2d",
			"d dh p3 QsJs",
			"p3 cbr 120",
			"p1 f",
			"p2 cc",
		},
		Players: []string{"alice", "bob", "charlie"},
		HandID:  "3f1c2a8e-0000-4000-8000-000000000000",
	}
	hand.SetTimestamp(time.Date(2025, time.November, 14, 15, 22, 0, 0, time.UTC))

	var buf bytes.Buffer
	if err := phh.Encode(&buf, hand); err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	got := buf.String()
	want := "" +
		"variant = \"NT\"\n" +
		"table = \"default\"\n" +
		"seat_count = 3\n" +
		"seats = [1, 2, 3]\n" +
		"antes = [0, 0, 0]\n" +
		"blinds_or_straddles = [20, 40, 0]\n" +
		"min_bet = 40\n" +
		"starting_stacks = [2000, 2000, 2000]\n" +
		"finishing_stacks = [1960, 2080, 1960]\n" +
		"winnings = [0, 120, 0]\n" +
		"actions = [\"d dh p1 AhKh\", \"d dh p2 7c2d\", \"d dh p3 QsJs\", \"p3 cbr 120\", \"p1 f\", \"p2 cc\"]\n" +
		"players = [\"alice\", \"bob\", \"charlie\"]\n" +
		"hand = \"3f1c2a8e-0000-4000-8000-000000000000\"\n" +
		"time = \"15:22:00\"\n" +
		"time_zone = \"UTC\"\n" +
		"day = 14\n" +
		"month = 11\n" +
		"year = 2025\n"

	if got != want {
		t.Fatalf("Encode output mismatch.\nGot:\n%s\nWant:\n%s", got, want)
	}
}

func TestEncodeNil(t *testing.T) {
	if err := phh.Encode(&bytes.Buffer{}, nil); err == nil {
		t.Fatal("expected error for nil hand")
	}
}
