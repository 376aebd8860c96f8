package poker

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"slices"
)

// ErrInvalidInput is returned when an evaluator is handed the wrong number of cards
var ErrInvalidInput = errors.New("poker: invalid evaluator input")

// HandCategory enumerates the categories of poker hands ordered from weakest to strongest.
type HandCategory uint8

const (
	HighCard HandCategory = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var categoryNames = [...]string{
	"High Card",
	"One Pair",
	"Two Pair",
	"Three of a Kind",
	"Straight",
	"Flush",
	"Full House",
	"Four of a Kind",
	"Straight Flush",
}

// String returns the category name, e.g. "Full House"
func (c HandCategory) String() string {
	if int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// HandEvaluation is the ranked result of a five-card hand.
type HandEvaluation struct {
	Category HandCategory
	// Values is the tie-break vector: primary ranks first, kickers after.
	Values      []int
	Cards       []Card
	Description string
}

// RankValue returns the category as an integer, 0 (High Card) to 8 (Straight Flush)
func (e HandEvaluation) RankValue() int {
	return int(e.Category)
}

// Name returns the category name
func (e HandEvaluation) Name() string {
	return e.Category.String()
}

// Compare orders two evaluations. It returns 1 if a is stronger, -1 if b is
// stronger and 0 for an exact tie. Categories are compared first, then the
// tie-break vectors element by element, treating missing values as 0.
func Compare(a, b HandEvaluation) int {
	if a.Category != b.Category {
		return cmp.Compare(a.Category, b.Category)
	}
	for i := 0; i < max(len(a.Values), len(b.Values)); i++ {
		var va, vb int
		if i < len(a.Values) {
			va = a.Values[i]
		}
		if i < len(b.Values) {
			vb = b.Values[i]
		}
		if va != vb {
			return cmp.Compare(va, vb)
		}
	}
	return 0
}

// Evaluate5 classifies exactly five cards
func Evaluate5(cards []Card) (HandEvaluation, error) {
	if len(cards) != 5 {
		return HandEvaluation{}, fmt.Errorf("%w: need 5 cards, got %d", ErrInvalidInput, len(cards))
	}
	return evaluate5(cards), nil
}

// EvaluateBest returns the strongest five-card hand that can be made from
// five to seven cards. The result does not depend on the order of cards.
func EvaluateBest(cards []Card) (HandEvaluation, error) {
	if len(cards) < 5 {
		return HandEvaluation{}, fmt.Errorf("%w: not enough cards to evaluate (%d)", ErrInvalidInput, len(cards))
	}
	if len(cards) > 7 {
		return HandEvaluation{}, fmt.Errorf("%w: too many cards to evaluate (%d)", ErrInvalidInput, len(cards))
	}

	// Canonical order makes the chosen subset independent of input order
	// when several subsets evaluate equal.
	sorted := sortCards(cards)

	var best HandEvaluation
	found := false
	for combo := range Combinations(sorted, 5) {
		eval := evaluate5(combo)
		if !found || Compare(eval, best) > 0 {
			best = eval
			found = true
		}
	}
	return best, nil
}

// MustEvaluateBest is EvaluateBest for callers that have already checked the count
func MustEvaluateBest(cards []Card) HandEvaluation {
	eval, err := EvaluateBest(cards)
	if err != nil {
		panic(err)
	}
	return eval
}

// Combinations yields every k-card subset of cards, preserving input order
// within each subset. Each yielded slice is freshly allocated.
func Combinations(cards []Card, k int) iter.Seq[[]Card] {
	return func(yield func([]Card) bool) {
		n := len(cards)
		if k < 0 || k > n {
			return
		}
		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}
		for {
			combo := make([]Card, k)
			for i, j := range idx {
				combo[i] = cards[j]
			}
			if !yield(combo) {
				return
			}

			// Advance to the next index tuple in lexicographic order
			i := k - 1
			for i >= 0 && idx[i] == n-k+i {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
}

func evaluate5(hand []Card) HandEvaluation {
	sorted := sortCards(hand)
	values := make([]int, len(sorted))
	for i, c := range sorted {
		values[i] = int(c.Rank)
	}

	flush := true
	for _, c := range sorted[1:] {
		if c.Suit != sorted[0].Suit {
			flush = false
			break
		}
	}

	straightHigh := 0
	if isConsecutive(values) {
		straightHigh = values[0]
	} else if slices.Equal(values, []int{14, 5, 4, 3, 2}) {
		// Wheel: the ace plays low
		straightHigh = 5
	}

	groups := groupRanks(values)
	grouped := make([]int, len(groups))
	for i, g := range groups {
		grouped[i] = g.rank
	}

	eval := HandEvaluation{Cards: sorted}
	switch {
	case straightHigh > 0 && flush:
		eval.Category = StraightFlush
		eval.Values = []int{straightHigh}
		eval.Description = fmt.Sprintf("Straight Flush, %s-high", Rank(straightHigh))
	case groups[0].count == 4:
		eval.Category = FourOfAKind
		eval.Values = grouped
		eval.Description = fmt.Sprintf("Four of a Kind, %ss", Rank(grouped[0]))
	case groups[0].count == 3 && groups[1].count == 2:
		eval.Category = FullHouse
		eval.Values = grouped
		eval.Description = fmt.Sprintf("Full House, %ss full of %ss", Rank(grouped[0]), Rank(grouped[1]))
	case flush:
		eval.Category = Flush
		eval.Values = values
		eval.Description = fmt.Sprintf("Flush, %s-high", Rank(values[0]))
	case straightHigh > 0:
		eval.Category = Straight
		eval.Values = []int{straightHigh}
		eval.Description = fmt.Sprintf("Straight, %s-high", Rank(straightHigh))
	case groups[0].count == 3:
		eval.Category = ThreeOfAKind
		eval.Values = grouped
		eval.Description = fmt.Sprintf("Three of a Kind, %ss", Rank(grouped[0]))
	case groups[0].count == 2 && groups[1].count == 2:
		eval.Category = TwoPair
		eval.Values = grouped
		eval.Description = fmt.Sprintf("Two Pair, %ss and %ss", Rank(grouped[0]), Rank(grouped[1]))
	case groups[0].count == 2:
		eval.Category = OnePair
		eval.Values = grouped
		eval.Description = fmt.Sprintf("One Pair, %ss", Rank(grouped[0]))
	default:
		eval.Category = HighCard
		eval.Values = values
		eval.Description = fmt.Sprintf("High Card, %s", Rank(values[0]))
	}
	return eval
}

type rankGroup struct {
	rank  int
	count int
}

// groupRanks groups equal ranks, ordered by count descending then rank descending
func groupRanks(values []int) []rankGroup {
	var groups []rankGroup
	for _, v := range values {
		i := slices.IndexFunc(groups, func(g rankGroup) bool { return g.rank == v })
		if i < 0 {
			groups = append(groups, rankGroup{rank: v, count: 1})
			continue
		}
		groups[i].count++
	}
	slices.SortFunc(groups, func(a, b rankGroup) int {
		if a.count != b.count {
			return cmp.Compare(b.count, a.count)
		}
		return cmp.Compare(b.rank, a.rank)
	})
	return groups
}

// isConsecutive reports whether descending values step down by exactly one
func isConsecutive(values []int) bool {
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1]-1 {
			return false
		}
	}
	return true
}

// sortCards returns a copy ordered by rank descending, then suit
func sortCards(cards []Card) []Card {
	out := slices.Clone(cards)
	slices.SortFunc(out, func(a, b Card) int {
		if a.Rank != b.Rank {
			return cmp.Compare(b.Rank, a.Rank)
		}
		return cmp.Compare(a.Suit, b.Suit)
	})
	return out
}
