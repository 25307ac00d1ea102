package poker

import "math/bits"

// CardSet is a set of cards sharing the Card bit layout. Multiple cards are
// represented by multiple bits set, so union is a bitwise OR.
type CardSet uint64

// NewCardSet creates a set from multiple cards
func NewCardSet(cards ...Card) CardSet {
	var cs CardSet
	for _, c := range cards {
		cs |= CardSet(c)
	}
	return cs
}

// Add adds a card to the set
func (cs *CardSet) Add(c Card) {
	*cs |= CardSet(c)
}

// Contains checks if the set holds a specific card
func (cs CardSet) Contains(c Card) bool {
	return cs&CardSet(c) != 0
}

// Overlaps reports whether the two sets share any card.
func (cs CardSet) Overlaps(other CardSet) bool {
	return cs&other != 0
}

// Count returns the number of cards in the set
func (cs CardSet) Count() int {
	return bits.OnesCount64(uint64(cs))
}

// SuitMask returns the ranks held in one suit as a 13 bit mask.
func (cs CardSet) SuitMask(suit uint8) uint16 {
	return uint16((cs >> (suit * 13)) & 0x1FFF)
}

// Cards returns the cards in the set ordered by bit position.
func (cs CardSet) Cards() []Card {
	cards := make([]Card, 0, cs.Count())
	for rest := uint64(cs); rest != 0; rest &= rest - 1 {
		cards = append(cards, Card(rest&-rest))
	}
	return cards
}

// String formats the set like FormatCards.
func (cs CardSet) String() string {
	return FormatCards(cs.Cards())
}

// RankMask returns the ranks present in any suit as a 13 bit mask.
func (cs CardSet) RankMask() uint16 {
	return cs.SuitMask(Clubs) | cs.SuitMask(Diamonds) | cs.SuitMask(Hearts) | cs.SuitMask(Spades)
}
