package poker

import (
	"fmt"
	"math/rand/v2"
)

// DeckSize is the number of cards in a standard deck
const DeckSize = 52

// Deck is an ordered stack of cards. The top of the deck is the end of the
// slice: Pop, Burn and Deal all take cards from the end.
//
// Deck operations never modify their receiver; each returns the cards taken
// together with a new Deck holding what remains.
type Deck []Card

// NewDeck returns all 52 cards in a fixed order (suit-major, deuce to ace)
func NewDeck() Deck {
	d := make(Deck, 0, DeckSize)
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			d = append(d, NewCard(rank, suit))
		}
	}
	return d
}

// NewShuffledDeck returns a fresh deck shuffled with rng
func NewShuffledDeck(rng *rand.Rand) Deck {
	return NewDeck().Shuffle(rng)
}

// Shuffle returns a uniformly random permutation of the deck using
// Fisher-Yates. The receiver is copied first and left untouched.
func (d Deck) Shuffle(rng *rand.Rand) Deck {
	shuffled := d.Clone()
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// Clone returns an independent copy of the deck
func (d Deck) Clone() Deck {
	if d == nil {
		return nil
	}
	out := make(Deck, len(d))
	copy(out, d)
	return out
}

// Len returns the number of cards left
func (d Deck) Len() int {
	return len(d)
}

// Pop takes the top card. ok is false when the deck is empty.
func (d Deck) Pop() (card Card, rest Deck, ok bool) {
	if len(d) == 0 {
		return Card{}, d, false
	}
	return d[len(d)-1], d[:len(d)-1:len(d)-1], true
}

// Burn discards the top card, if any
func (d Deck) Burn() Deck {
	_, rest, _ := d.Pop()
	return rest
}

// Take pops n cards in order
func (d Deck) Take(n int) ([]Card, Deck, error) {
	if n > len(d) {
		return nil, d, fmt.Errorf("deck has %d cards, need %d", len(d), n)
	}
	cards := make([]Card, 0, n)
	rest := d
	for range n {
		var c Card
		c, rest, _ = rest.Pop()
		cards = append(cards, c)
	}
	return cards, rest, nil
}

// Deal pops two cards for each of numHands hands, one card at a time in
// interleaved order (first card to every hand, then second card to every hand).
func (d Deck) Deal(numHands int) ([][]Card, Deck, error) {
	if numHands < 0 {
		return nil, d, fmt.Errorf("invalid hand count %d", numHands)
	}
	if len(d) < 2*numHands {
		return nil, d, fmt.Errorf("deck has %d cards, need %d for %d hands", len(d), 2*numHands, numHands)
	}
	hands := make([][]Card, numHands)
	rest := d
	for round := 0; round < 2; round++ {
		for i := range hands {
			var c Card
			c, rest, _ = rest.Pop()
			hands[i] = append(hands[i], c)
		}
	}
	return hands, rest, nil
}
