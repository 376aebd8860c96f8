// Package statistics summarises simulated play in big blinds per hand.
package statistics

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/history"
)

// bigPotBB is the pot size, in big blinds, counted as a big pot
const bigPotBB = 50

// HandResult is one player's outcome in a single hand
type HandResult struct {
	NetBB          float64 // net big blinds won or lost
	Position       int     // seats after the dealer, 0 is the button
	WentToShowdown bool
	PotBB          float64 // final pot in big blinds
}

// PositionStats tracks results from one table position
type PositionStats struct {
	Hands int
	SumBB float64
}

// Statistics accumulates one player's results
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64   // sum of squares for the variance
	Values []float64 // every result, for the median and percentiles

	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64 // showdown results, wins and losses
	NonShowdownBB   float64

	Positions [game.MaxSeats]PositionStats

	MaxPotBB  float64
	BigPots   int
	BigPotsBB float64
}

// Mean returns the mean result in big blinds per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// BB100 returns the win rate in big blinds per hundred hands
func (s *Statistics) BB100() float64 {
	return s.Mean() * 100
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a hand result
func (s *Statistics) Add(r HandResult) {
	s.Hands++
	s.SumBB += r.NetBB
	s.SumBB2 += r.NetBB * r.NetBB
	s.Values = append(s.Values, r.NetBB)

	if r.WentToShowdown {
		s.ShowdownBB += r.NetBB
		if r.NetBB > 0 {
			s.ShowdownWins++
		}
	} else {
		s.NonShowdownBB += r.NetBB
		if r.NetBB > 0 {
			s.NonShowdownWins++
		}
	}

	if r.Position >= 0 && r.Position < len(s.Positions) {
		s.Positions[r.Position].Hands++
		s.Positions[r.Position].SumBB += r.NetBB
	}

	s.MaxPotBB = max(s.MaxPotBB, r.PotBB)
	if r.PotBB >= bigPotBB {
		s.BigPots++
		s.BigPotsBB += r.NetBB
	}
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.SumBB += other.SumBB
	s.SumBB2 += other.SumBB2
	s.Values = append(s.Values, other.Values...)
	s.ShowdownWins += other.ShowdownWins
	s.NonShowdownWins += other.NonShowdownWins
	s.ShowdownBB += other.ShowdownBB
	s.NonShowdownBB += other.NonShowdownBB
	for i := range s.Positions {
		s.Positions[i].Hands += other.Positions[i].Hands
		s.Positions[i].SumBB += other.Positions[i].SumBB
	}
	s.MaxPotBB = max(s.MaxPotBB, other.MaxPotBB)
	s.BigPots += other.BigPots
	s.BigPotsBB += other.BigPotsBB
}

// Median returns the median result
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the result at p, between 0 and 1, interpolating
// between neighbours
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// PositionMean returns the mean result from a position
func (s *Statistics) PositionMean(position int) float64 {
	if position < 0 || position >= len(s.Positions) {
		return 0
	}
	ps := s.Positions[position]
	if ps.Hands == 0 {
		return 0
	}
	return ps.SumBB / float64(ps.Hands)
}

// IsLedgerBalanced reports whether the showdown split adds up to the total
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.SumBB-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Validate checks the accumulated data for internal consistency
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: total=%.6f, showdown=%.6f, non-showdown=%.6f",
			s.SumBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)", len(s.Values), s.Hands)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}
	total := 0
	for _, ps := range s.Positions {
		total += ps.Hands
	}
	if total != s.Hands {
		return fmt.Errorf("position hands total (%d) does not match total hands (%d)", total, s.Hands)
	}
	return nil
}

// Table holds the statistics of every player at a table, by name
type Table map[string]*Statistics

// AddHand records every dealt player's result from a finished hand
func (t Table) AddHand(entry history.Entry) {
	bb := float64(entry.StakesOrDefault().BigBlind)
	showdown := WentToShowdown(entry)
	pot := float64(entry.FinalPot) / bb

	dealer := slices.IndexFunc(entry.Players, func(p history.PlayerRecord) bool { return p.Name == entry.Dealer })
	n := len(entry.Players)
	for i, p := range entry.Players {
		if p.Cards == "" {
			continue
		}
		stats := t[p.Name]
		if stats == nil {
			stats = &Statistics{}
			t[p.Name] = stats
		}
		stats.Add(HandResult{
			NetBB:          float64(p.Winnings) / bb,
			Position:       (i - dealer + n) % n,
			WentToShowdown: showdown,
			PotBB:          pot,
		})
	}
}

// Merge folds other into t
func (t Table) Merge(other Table) {
	for name, stats := range other {
		if t[name] == nil {
			t[name] = &Statistics{}
		}
		t[name].Merge(stats)
	}
}

// WentToShowdown reports whether a hand was settled by comparing hands
// rather than by everyone else folding
func WentToShowdown(entry history.Entry) bool {
	if len(entry.Actions) == 0 {
		return false
	}
	code, err := history.ParseCode(entry.Actions[len(entry.Actions)-1])
	if err != nil {
		return false
	}
	return code.Kind != history.CodeFold
}
