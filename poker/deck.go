package poker

import (
	"fmt"
	"math/rand/v2"
)

// Deck is the complement of a dead card set: every card of the universe that is
// not already accounted for. It carries no dealing state; Draw samples without
// replacement and leaves the deck holding the same cards.
type Deck struct {
	cards [NumCards]Card // Fixed size array
	n     int
}

// NewDeck returns the universe minus dead.
func NewDeck(dead CardSet) Deck {
	var d Deck
	for suit := range uint8(4) {
		for rank := range uint8(13) {
			card := NewCard(rank, suit)
			if !dead.Contains(card) {
				d.cards[d.n] = card
				d.n++
			}
		}
	}
	return d
}

// Len returns the number of cards available to draw
func (d *Deck) Len() int {
	return d.n
}

// Cards returns a copy of the available cards.
func (d *Deck) Cards() []Card {
	out := make([]Card, d.n)
	copy(out, d.cards[:d.n])
	return out
}

// Draw fills dst with distinct cards chosen uniformly at random using a partial
// Fisher-Yates pass. Asking for more cards than the deck holds is a caller bug.
func (d *Deck) Draw(rng *rand.Rand, dst []Card) {
	if len(dst) > d.n {
		panic(fmt.Sprintf("poker: draw %d cards from a deck of %d", len(dst), d.n))
	}
	for i := range dst {
		j := i + rng.IntN(d.n-i)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
		dst[i] = d.cards[i]
	}
}
