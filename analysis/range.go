// Package analysis provides range expansion and Monte Carlo equity estimation
// on top of the poker card model.
package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/pokerodds/poker"
)

var (
	// ErrInvalidRangeToken is returned for malformed or inconsistent range notation.
	ErrInvalidRangeToken = errors.New("invalid range token")
	// ErrEmptyRange is returned when no combo survives dead card removal.
	ErrEmptyRange = errors.New("empty range")
)

// TotalStartingHands is the number of distinct two card combos in a 52 card deck.
const TotalStartingHands = 1326

// HandClass identifies a starting hand notation such as "AA", "AKs" or "AKo".
// High and Low are poker ranks (0-12) with High >= Low.
type HandClass struct {
	High   uint8
	Low    uint8
	Suited bool
}

// IsPair reports whether both cards share a rank.
func (h HandClass) IsPair() bool {
	return h.High == h.Low
}

// String returns the canonical notation.
func (h HandClass) String() string {
	s := string([]byte{poker.RankChar(h.High), poker.RankChar(h.Low)})
	switch {
	case h.IsPair():
		return s
	case h.Suited:
		return s + "s"
	default:
		return s + "o"
	}
}

// Combos returns the combinatorial weight: 6 for pairs, 4 suited, 12 offsuit.
func (h HandClass) Combos() int {
	switch {
	case h.IsPair():
		return 6
	case h.Suited:
		return 4
	default:
		return 12
	}
}

// appendCombos materialises every concrete combo of the class.
func (h HandClass) appendCombos(dst []Combo) []Combo {
	switch {
	case h.IsPair():
		for s1 := range uint8(4) {
			for s2 := s1 + 1; s2 < 4; s2++ {
				dst = append(dst, NewCombo(poker.NewCard(h.High, s1), poker.NewCard(h.High, s2)))
			}
		}
	case h.Suited:
		for s := range uint8(4) {
			dst = append(dst, NewCombo(poker.NewCard(h.High, s), poker.NewCard(h.Low, s)))
		}
	default:
		for s1 := range uint8(4) {
			for s2 := range uint8(4) {
				if s1 != s2 {
					dst = append(dst, NewCombo(poker.NewCard(h.High, s1), poker.NewCard(h.Low, s2)))
				}
			}
		}
	}
	return dst
}

// ParseHandClass parses a single exact notation ("AA", "AKs", "AKo").
func ParseHandClass(s string) (HandClass, error) {
	n, err := parseNotation(s)
	if err != nil {
		return HandClass{}, err
	}
	if n.qual == qualAny && n.high != n.low {
		return HandClass{}, fmt.Errorf("%w: %q needs an s or o suffix", ErrInvalidRangeToken, s)
	}
	return HandClass{High: n.high, Low: n.low, Suited: n.qual == qualSuited}, nil
}

// Combo is one concrete pair of hole cards, stored with the higher card first.
type Combo struct {
	First  poker.Card
	Second poker.Card
}

// NewCombo orders the two cards by rank, then suit, both descending.
func NewCombo(a, b poker.Card) Combo {
	if a.Rank() < b.Rank() || (a.Rank() == b.Rank() && a.Suit() < b.Suit()) {
		a, b = b, a
	}
	return Combo{First: a, Second: b}
}

// ParseCombo parses exactly two cards, e.g. "AsKh".
func ParseCombo(s string) (Combo, error) {
	cards, err := poker.ParseCards(s)
	if err != nil {
		return Combo{}, err
	}
	if len(cards) != 2 {
		return Combo{}, fmt.Errorf("%w: %q must hold exactly two cards", poker.ErrInvalidCard, s)
	}
	return NewCombo(cards[0], cards[1]), nil
}

// Cards returns the combo as a card set.
func (c Combo) Cards() poker.CardSet {
	return poker.NewCardSet(c.First, c.Second)
}

// Class returns the notation the combo instantiates.
func (c Combo) Class() HandClass {
	return HandClass{High: c.First.Rank(), Low: c.Second.Rank(), Suited: c.First.Suit() == c.Second.Suit()}
}

// String returns e.g. "AsKh"
func (c Combo) String() string {
	return c.First.String() + c.Second.String()
}

// Range is the deduplicated set of combos described by a notation, with dead
// cards removed. It is immutable once built.
type Range struct {
	notation string
	classes  []HandClass
	combos   []Combo
	index    map[Combo]struct{}
}

// ExpandRange parses a comma separated range and removes every combo touching a
// dead card. Examples: "AA,KK", "AKs,AKo", "TT+", "ATs-AQs", "KJo+", "AsKh".
//
// Parse failures wrap ErrInvalidRangeToken. A well formed range whose combos
// are all blocked by dead cards fails with ErrEmptyRange.
func ExpandRange(expr string, dead poker.CardSet) (*Range, error) {
	b, err := parseRange(expr)
	if err != nil {
		return nil, err
	}

	r := &Range{
		notation: expr,
		classes:  b.classes,
		index:    make(map[Combo]struct{}),
	}
	var all []Combo
	for _, class := range b.classes {
		all = class.appendCombos(all)
	}
	all = append(all, b.exact...)

	for _, combo := range all {
		if combo.Cards().Overlaps(dead) {
			continue
		}
		if _, dup := r.index[combo]; dup {
			continue
		}
		r.index[combo] = struct{}{}
		r.combos = append(r.combos, combo)
	}

	if len(r.combos) == 0 {
		return nil, fmt.Errorf("%w: %q has no combos left once %s is removed", ErrEmptyRange, expr, dead)
	}
	return r, nil
}

// CountCombos returns the number of combos a notation describes before any dead
// card removal, using the 6/4/12 weights per hand class.
func CountCombos(expr string) (int, error) {
	b, err := parseRange(expr)
	if err != nil {
		return 0, err
	}

	total := 0
	covered := make(map[HandClass]struct{}, len(b.classes))
	for _, class := range b.classes {
		covered[class] = struct{}{}
		total += class.Combos()
	}
	counted := make(map[Combo]struct{}, len(b.exact))
	for _, combo := range b.exact {
		if _, ok := covered[combo.Class()]; ok {
			continue
		}
		if _, ok := counted[combo]; ok {
			continue
		}
		counted[combo] = struct{}{}
		total++
	}
	return total, nil
}

// Notation returns the expression the range was built from.
func (r *Range) Notation() string {
	return r.notation
}

// Combos returns a copy of the surviving combos in expansion order.
func (r *Range) Combos() []Combo {
	out := make([]Combo, len(r.combos))
	copy(out, r.combos)
	return out
}

// Classes returns the resolved hand classes in order of first appearance.
// Exact combo tokens do not contribute a class.
func (r *Range) Classes() []HandClass {
	out := make([]HandClass, len(r.classes))
	copy(out, r.classes)
	return out
}

// Size returns the number of combos in the range.
func (r *Range) Size() int {
	return len(r.combos)
}

// Contains checks if a specific combo is in the range
func (r *Range) Contains(c Combo) bool {
	_, ok := r.index[NewCombo(c.First, c.Second)]
	return ok
}

// Percent returns the share of all 1326 starting combos held by the range.
func (r *Range) Percent() float64 {
	return float64(len(r.combos)) / TotalStartingHands * 100
}

type qualifier uint8

const (
	qualAny qualifier = iota
	qualSuited
	qualOffsuit
)

// notation is a parsed hand token before expansion into classes.
type notation struct {
	high, low uint8
	qual      qualifier
}

func parseNotation(s string) (notation, error) {
	if len(s) < 2 || len(s) > 3 {
		return notation{}, fmt.Errorf("%w: %q", ErrInvalidRangeToken, s)
	}
	high, ok1 := poker.ParseRank(s[0])
	low, ok2 := poker.ParseRank(s[1])
	if !ok1 || !ok2 {
		return notation{}, fmt.Errorf("%w: invalid rank in %q", ErrInvalidRangeToken, s)
	}
	if low > high {
		high, low = low, high
	}

	n := notation{high: high, low: low}
	if len(s) == 3 {
		if high == low {
			return notation{}, fmt.Errorf("%w: pocket pair %q cannot be suited or offsuit", ErrInvalidRangeToken, s)
		}
		switch s[2] {
		case 's', 'S':
			n.qual = qualSuited
		case 'o', 'O':
			n.qual = qualOffsuit
		default:
			return notation{}, fmt.Errorf("%w: invalid modifier %q in %q", ErrInvalidRangeToken, s[2], s)
		}
	}
	return n, nil
}

// rangeBuilder accumulates classes and exact combos, deduplicating classes by
// notation identity before anything is materialised.
type rangeBuilder struct {
	classes []HandClass
	seen    map[HandClass]struct{}
	exact   []Combo
}

func parseRange(expr string) (*rangeBuilder, error) {
	b := &rangeBuilder{seen: make(map[HandClass]struct{})}
	tokens := 0
	for part := range strings.SplitSeq(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tokens++
		if err := b.addToken(part); err != nil {
			return nil, err
		}
	}
	if tokens == 0 {
		return nil, fmt.Errorf("%w: empty range expression", ErrInvalidRangeToken)
	}
	return b, nil
}

func (b *rangeBuilder) addToken(tok string) error {
	hasPlus := strings.HasSuffix(tok, "+")
	hasDash := strings.Contains(tok, "-")
	switch {
	case hasPlus && hasDash:
		return fmt.Errorf("%w: %q mixes + and -", ErrInvalidRangeToken, tok)
	case hasPlus:
		return b.addPlus(tok)
	case hasDash:
		return b.addDash(tok)
	case len(tok) == 4:
		combo, err := ParseCombo(tok)
		if err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidRangeToken, tok, err)
		}
		b.exact = append(b.exact, combo)
		return nil
	}

	n, err := parseNotation(tok)
	if err != nil {
		return err
	}
	b.addNotation(n.high, n.low, n.qual)
	return nil
}

// addPlus handles "TT+" (pairs up to AA) and "ATs+" (kicker up to one below the top card).
func (b *rangeBuilder) addPlus(tok string) error {
	n, err := parseNotation(strings.TrimSuffix(tok, "+"))
	if err != nil {
		return err
	}
	if n.high == n.low {
		for rank := n.high; rank <= poker.Ace; rank++ {
			b.addNotation(rank, rank, qualAny)
		}
		return nil
	}
	for kicker := n.low; kicker < n.high; kicker++ {
		b.addNotation(n.high, kicker, n.qual)
	}
	return nil
}

// addDash handles "22-55" and "ATs-AQs". Both bounds of a non-pair run must
// share the top card and the suitedness qualifier.
func (b *rangeBuilder) addDash(tok string) error {
	parts := strings.Split(tok, "-")
	if len(parts) != 2 {
		return fmt.Errorf("%w: %q must have exactly two bounds", ErrInvalidRangeToken, tok)
	}
	start, err := parseNotation(strings.TrimSpace(parts[0]))
	if err != nil {
		return err
	}
	end, err := parseNotation(strings.TrimSpace(parts[1]))
	if err != nil {
		return err
	}

	startPair, endPair := start.high == start.low, end.high == end.low
	switch {
	case startPair && endPair:
		lo, hi := min(start.high, end.high), max(start.high, end.high)
		for rank := lo; rank <= hi; rank++ {
			b.addNotation(rank, rank, qualAny)
		}
		return nil
	case startPair != endPair:
		return fmt.Errorf("%w: %q mixes a pair with a non-pair", ErrInvalidRangeToken, tok)
	case start.high != end.high:
		return fmt.Errorf("%w: %q bounds have different top cards", ErrInvalidRangeToken, tok)
	case start.qual != end.qual:
		return fmt.Errorf("%w: %q bounds disagree on suitedness", ErrInvalidRangeToken, tok)
	}

	lo, hi := min(start.low, end.low), max(start.low, end.low)
	for kicker := lo; kicker <= hi; kicker++ {
		b.addNotation(start.high, kicker, start.qual)
	}
	return nil
}

func (b *rangeBuilder) addNotation(high, low uint8, qual qualifier) {
	if high == low {
		b.addClass(HandClass{High: high, Low: low})
		return
	}
	if qual != qualOffsuit {
		b.addClass(HandClass{High: high, Low: low, Suited: true})
	}
	if qual != qualSuited {
		b.addClass(HandClass{High: high, Low: low})
	}
}

func (b *rangeBuilder) addClass(h HandClass) {
	if _, ok := b.seen[h]; ok {
		return
	}
	b.seen[h] = struct{}{}
	b.classes = append(b.classes, h)
}
