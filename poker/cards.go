// Package poker implements the card model and hand evaluator used by the equity engine.
package poker

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

var (
	// ErrInvalidCard is returned when a card token has an unknown rank or suit.
	ErrInvalidCard = errors.New("invalid card")
	// ErrInvalidBoard is returned for boards with the wrong card count or repeated cards.
	ErrInvalidBoard = errors.New("invalid board")
	// ErrDuplicateCard is returned when the same card appears twice in one parse.
	ErrDuplicateCard = errors.New("duplicate card")
)

// Card represents a single card as a bit position in a uint64.
// Layout: [13 clubs][13 diamonds][13 hearts][13 spades], deuce lowest within a suit.
type Card uint64

// Suit constants
const (
	Clubs    uint8 = 0
	Diamonds uint8 = 1
	Hearts   uint8 = 2
	Spades   uint8 = 3
)

// Rank constants (0-12 for 2-A)
const (
	Two   uint8 = 0
	Three uint8 = 1
	Four  uint8 = 2
	Five  uint8 = 3
	Six   uint8 = 4
	Seven uint8 = 5
	Eight uint8 = 6
	Nine  uint8 = 7
	Ten   uint8 = 8
	Jack  uint8 = 9
	Queen uint8 = 10
	King  uint8 = 11
	Ace   uint8 = 12
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"

	// NumCards is the size of the card universe.
	NumCards = 52
)

// NewCard creates a card from rank (0-12) and suit (0-3).
func NewCard(rank, suit uint8) Card {
	return Card(1) << (suit*13 + rank)
}

// Index returns the bit position of the card (0-51), or 255 for the zero value.
func (c Card) Index() uint8 {
	if c == 0 {
		return 255
	}
	return uint8(bits.TrailingZeros64(uint64(c)))
}

// Rank returns the rank of the card (0-12)
func (c Card) Rank() uint8 {
	idx := c.Index()
	if idx == 255 {
		return 255
	}
	return idx % 13
}

// Suit returns the suit of the card (0-3)
func (c Card) Suit() uint8 {
	idx := c.Index()
	if idx == 255 {
		return 255
	}
	return idx / 13
}

// String returns the two character form, e.g. "As" or "Td".
func (c Card) String() string {
	rank, suit := c.Rank(), c.Suit()
	if rank > 12 || suit > 3 {
		return "??"
	}
	return string(rankChars[rank]) + string(suitChars[suit])
}

// RankChar returns the notation character for a rank (0-12).
func RankChar(rank uint8) byte {
	if rank > 12 {
		return '?'
	}
	return rankChars[rank]
}

// ParseRank converts a rank character into 0-12.
func ParseRank(c byte) (uint8, bool) {
	switch c {
	case 'T', 't':
		return Ten, true
	case 'J', 'j':
		return Jack, true
	case 'Q', 'q':
		return Queen, true
	case 'K', 'k':
		return King, true
	case 'A', 'a':
		return Ace, true
	}
	if c >= '2' && c <= '9' {
		return c - '2', true
	}
	return 0, false
}

func parseSuit(c byte) (uint8, bool) {
	switch c {
	case 'c', 'C':
		return Clubs, true
	case 'd', 'D':
		return Diamonds, true
	case 'h', 'H':
		return Hearts, true
	case 's', 'S':
		return Spades, true
	}
	return 0, false
}

// ParseCard parses a string like "As" into a Card
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: %q must be a rank and a suit", ErrInvalidCard, s)
	}
	rank, ok := ParseRank(s[0])
	if !ok {
		return 0, fmt.Errorf("%w: unknown rank %q in %q", ErrInvalidCard, s[0], s)
	}
	suit, ok := parseSuit(s[1])
	if !ok {
		return 0, fmt.Errorf("%w: unknown suit %q in %q", ErrInvalidCard, s[1], s)
	}
	return NewCard(rank, suit), nil
}

// MustParseCard is like ParseCard but panics on error. Intended for fixtures.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCards parses concatenated cards such as "AhKs" or "Ah Ks, Qd".
// Separators are ignored; a repeated card is an error.
func ParseCards(s string) ([]Card, error) {
	compact := strings.Map(func(r rune) rune {
		if r == ' ' || r == ',' || r == '\t' {
			return -1
		}
		return r
	}, s)
	if len(compact)%2 != 0 {
		return nil, fmt.Errorf("%w: %q has an odd number of characters", ErrInvalidCard, s)
	}

	cards := make([]Card, 0, len(compact)/2)
	var seen CardSet
	for i := 0; i < len(compact); i += 2 {
		card, err := ParseCard(compact[i : i+2])
		if err != nil {
			return nil, err
		}
		if seen.Contains(card) {
			return nil, fmt.Errorf("%w: %s in %q", ErrDuplicateCard, card, s)
		}
		seen.Add(card)
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for fixtures.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// ParseBoard parses community cards. A board holds 0 (preflop), 3, 4 or 5 cards.
func ParseBoard(s string) ([]Card, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBoard, err)
	}
	if err := ValidateBoard(cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// ValidateBoard checks the card count and uniqueness of a board.
func ValidateBoard(board []Card) error {
	switch len(board) {
	case 0, 3, 4, 5:
	default:
		return fmt.Errorf("%w: %d cards, want 0, 3, 4 or 5", ErrInvalidBoard, len(board))
	}
	if NewCardSet(board...).Count() != len(board) {
		return fmt.Errorf("%w: %w in %s", ErrInvalidBoard, ErrDuplicateCard, FormatCards(board))
	}
	return nil
}

// FormatCards joins cards without separators, e.g. "Ts9s2h".
func FormatCards(cards []Card) string {
	var b strings.Builder
	b.Grow(len(cards) * 2)
	for _, c := range cards {
		b.WriteString(c.String())
	}
	return b.String()
}

// AllCards returns the 52 card universe ordered by bit position.
func AllCards() []Card {
	cards := make([]Card, 0, NumCards)
	for suit := range uint8(4) {
		for rank := range uint8(13) {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}
