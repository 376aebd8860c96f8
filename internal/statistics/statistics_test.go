package statistics

import (
	"math"
	"testing"

	"github.com/lox/holdem-engine/internal/history"
)

func TestStatistics_Empty(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}

	if stats.Mean() != 0 || stats.Variance() != 0 || stats.StdDev() != 0 || stats.StdError() != 0 {
		t.Errorf("Expected zero moments for empty stats, got mean=%f var=%f", stats.Mean(), stats.Variance())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected empty stats to fail validation")
	}
}

func TestStatistics_MultipleValues(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	results := []HandResult{
		{NetBB: 1.0, Position: 0, WentToShowdown: false, PotBB: 2},
		{NetBB: -2.0, Position: 1, WentToShowdown: true, PotBB: 4},
		{NetBB: 3.0, Position: 2, WentToShowdown: true, PotBB: 6},
		{NetBB: 0.0, Position: 0, WentToShowdown: false, PotBB: 1},
		{NetBB: -1.0, Position: 1, WentToShowdown: false, PotBB: 3},
	}
	for _, r := range results {
		stats.Add(r)
	}

	if math.Abs(stats.Mean()-0.2) > 1e-9 {
		t.Errorf("Expected mean of 0.2, got %f", stats.Mean())
	}
	if math.Abs(stats.BB100()-20) > 1e-9 {
		t.Errorf("Expected 20 bb/100, got %f", stats.BB100())
	}
	// sorted: -2, -1, 0, 1, 3
	if stats.Median() != 0.0 {
		t.Errorf("Expected median of 0.0, got %f", stats.Median())
	}
	if stats.ShowdownWins != 1 || stats.NonShowdownWins != 1 {
		t.Errorf("Expected 1 showdown and 1 non-showdown win, got %d and %d", stats.ShowdownWins, stats.NonShowdownWins)
	}
	if stats.Positions[0].Hands != 2 || stats.Positions[1].Hands != 2 || stats.Positions[2].Hands != 1 {
		t.Errorf("Unexpected position counts %+v", stats.Positions)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats: %v", err)
	}
}

func TestStatistics_Percentiles(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	for i := 1; i <= 5; i++ {
		stats.Add(HandResult{NetBB: float64(i)})
	}

	tests := []struct {
		percentile float64
		expected   float64
	}{
		{0.0, 1.0},
		{0.25, 2.0},
		{0.5, 3.0},
		{0.75, 4.0},
		{0.875, 4.5},
		{1.0, 5.0},
	}
	for _, test := range tests {
		if got := stats.Percentile(test.percentile); math.Abs(got-test.expected) > 1e-9 {
			t.Errorf("Percentile %.3f: expected %f, got %f", test.percentile, test.expected, got)
		}
	}
}

func TestStatistics_ConfidenceInterval(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	for _, v := range []float64{1, 2, 3, 4, 5} {
		stats.Add(HandResult{NetBB: v})
	}

	low, high := stats.ConfidenceInterval95()
	if math.Abs((low+high)/2-stats.Mean()) > 1e-9 {
		t.Errorf("Confidence interval not symmetric around mean. Low: %f, High: %f", low, high)
	}
	if high-low <= 0 {
		t.Errorf("Confidence interval should be positive width, got %f", high-low)
	}
	// variance of 1..5 is 2.5
	if math.Abs(stats.Variance()-2.5) > 1e-9 {
		t.Errorf("Expected variance 2.5, got %f", stats.Variance())
	}
}

func TestStatistics_PositionsAndPots(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 2.0, Position: 1, PotBB: 10})
	stats.Add(HandResult{NetBB: 4.0, Position: 1, PotBB: 100})
	stats.Add(HandResult{NetBB: -1.0, Position: 2, PotBB: 2})

	if got := stats.PositionMean(1); math.Abs(got-3.0) > 1e-9 {
		t.Errorf("Position 1 mean: expected 3, got %f", got)
	}
	if stats.PositionMean(-1) != 0 || stats.PositionMean(9) != 0 {
		t.Error("Expected 0 for positions off the table")
	}
	if stats.MaxPotBB != 100 || stats.BigPots != 1 || stats.BigPotsBB != 4.0 {
		t.Errorf("Unexpected pot tracking max=%f big=%d bb=%f", stats.MaxPotBB, stats.BigPots, stats.BigPotsBB)
	}
}

func TestStatistics_Merge(t *testing.T) {
	t.Parallel()
	a, b, all := &Statistics{}, &Statistics{}, &Statistics{}
	for i, v := range []float64{1, -3, 2, 5, -1, 0} {
		r := HandResult{NetBB: v, Position: i % 3, WentToShowdown: i%2 == 0, PotBB: float64(10 * i)}
		all.Add(r)
		if i < 3 {
			a.Add(r)
		} else {
			b.Add(r)
		}
	}
	a.Merge(b)

	if a.Hands != all.Hands || a.SumBB != all.SumBB || a.SumBB2 != all.SumBB2 {
		t.Errorf("Merged totals differ: %+v vs %+v", a, all)
	}
	if a.Positions != all.Positions || a.MaxPotBB != all.MaxPotBB || a.BigPots != all.BigPots {
		t.Error("Merged breakdowns differ")
	}
	if a.Median() != all.Median() {
		t.Errorf("Merged median %f, want %f", a.Median(), all.Median())
	}
}

func heads(actions ...string) history.Entry {
	return history.Entry{
		ID:         "h1",
		Dealer:     "Alice",
		SmallBlind: "Alice",
		BigBlind:   "Bob",
		Players: []history.PlayerRecord{
			{ID: "0", Name: "Alice", Stack: 2000, Cards: "AsAc", Winnings: 120},
			{ID: "1", Name: "Bob", Stack: 2000, Cards: "KsKc", Winnings: -120},
			{ID: "2", Name: "Carol", Stack: 0},
		},
		Actions:  actions,
		FinalPot: 240,
		Stakes:   &history.Stakes{SmallBlind: 20, BigBlind: 40},
	}
}

func TestTableAddHand(t *testing.T) {
	t.Parallel()
	tbl := Table{}
	tbl.AddHand(heads("r120", "c", "F[2h7dJc]", "b120", "f"))
	tbl.AddHand(heads("c", "x", "F[2h7dJc]", "x", "x", "T[Qh]", "x", "x", "R[4s]", "x", "x"))

	if _, ok := tbl["Carol"]; ok {
		t.Error("Seats without cards should not be counted")
	}
	alice := tbl["Alice"]
	if alice.Hands != 2 || alice.SumBB != 6 {
		t.Errorf("Alice: expected 2 hands and +6bb, got %d and %f", alice.Hands, alice.SumBB)
	}
	if alice.ShowdownWins != 1 || alice.NonShowdownWins != 1 {
		t.Errorf("Alice: expected one win each way, got %d/%d", alice.ShowdownWins, alice.NonShowdownWins)
	}
	if alice.Positions[0].Hands != 2 || tbl["Bob"].Positions[1].Hands != 2 {
		t.Error("Expected the dealer at position 0 and the next seat at 1")
	}
	if alice.MaxPotBB != 6 {
		t.Errorf("Expected a 6bb pot, got %f", alice.MaxPotBB)
	}

	merged := Table{}
	merged.Merge(tbl)
	merged.Merge(tbl)
	if merged["Bob"].Hands != 4 {
		t.Errorf("Expected merged hands 4, got %d", merged["Bob"].Hands)
	}
}

func TestWentToShowdown(t *testing.T) {
	t.Parallel()
	if WentToShowdown(heads("f")) {
		t.Error("A fold ends the hand without a showdown")
	}
	if !WentToShowdown(heads("r1960", "c", "F[2h7dJc]", "T[Qh]", "R[4s]")) {
		t.Error("An all-in run out is a showdown")
	}
	if WentToShowdown(heads()) {
		t.Error("No actions means no showdown")
	}
}
