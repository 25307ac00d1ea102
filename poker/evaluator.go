package poker

import (
	"math/bits"
	"slices"
)

// HandRank represents the strength of the best five card hand. Higher values are
// stronger; equal values chop. The zero value means no hand was evaluated.
type HandRank uint16

// HandType enumerates the categories of poker hands ordered from weakest to strongest.
type HandType uint8

const (
	HighCard HandType = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var handTypeNames = [...]string{
	HighCard:      "High Card",
	Pair:          "Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
}

// String returns a human-readable category name.
func (t HandType) String() string {
	if int(t) < len(handTypeNames) {
		return handTypeNames[t]
	}
	return "Unknown"
}

const (
	highCardCount      = 1277 // C(13,5) minus the ten straights
	onePairCount       = 13 * 220
	twoPairCount       = 78 * 11
	threeOfAKindCount  = 13 * 66
	straightCount      = 10
	flushCount         = 1277
	fullHouseCount     = 13 * 12
	fourOfAKindCount   = 13 * 12
	straightFlushCount = 10
)

const (
	baseHighCard      = 1
	baseOnePair       = baseHighCard + highCardCount
	baseTwoPair       = baseOnePair + onePairCount
	baseThreeOfAKind  = baseTwoPair + twoPairCount
	baseStraight      = baseThreeOfAKind + threeOfAKindCount
	baseFlush         = baseStraight + straightCount
	baseFullHouse     = baseFlush + flushCount
	baseFourOfAKind   = baseFullHouse + fullHouseCount
	baseStraightFlush = baseFourOfAKind + fourOfAKindCount

	// MaxHandRank is the royal flush.
	MaxHandRank HandRank = baseStraightFlush + straightFlushCount - 1
)

// lower bound of each category, indexed by HandType
var handTypeBases = [...]HandRank{
	baseHighCard,
	baseOnePair,
	baseTwoPair,
	baseThreeOfAKind,
	baseStraight,
	baseFlush,
	baseFullHouse,
	baseFourOfAKind,
	baseStraightFlush,
}

// IsValid reports whether the rank came from a successful evaluation.
func (hr HandRank) IsValid() bool {
	return hr >= baseHighCard && hr <= MaxHandRank
}

// Type returns the category of the hand (pair, flush, etc.).
func (hr HandRank) Type() HandType {
	for t := StraightFlush; t > HighCard; t-- {
		if hr >= handTypeBases[t] {
			return t
		}
	}
	return HighCard
}

// String returns the category name, or "Invalid" for the zero value.
func (hr HandRank) String() string {
	if !hr.IsValid() {
		return "Invalid"
	}
	return hr.Type().String()
}

// Compare returns 1 if hr is stronger, -1 if weaker and 0 for a chop.
func (hr HandRank) Compare(other HandRank) int {
	return CompareHands(hr, other)
}

// CompareHands compares two hands and returns 1 if a wins, -1 if b wins, 0 for tie
func CompareHands(a, b HandRank) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}
	return 0
}

// Evaluate returns the rank of the best five card hand that can be made from
// 5, 6 or 7 distinct cards. Every five card subset is ranked and the maximum
// kept. Other card counts return the zero HandRank.
func Evaluate(cards []Card) HandRank {
	switch len(cards) {
	case 5:
		return rankFive(NewCardSet(cards...))
	case 6:
		return bestSubset(cards, subsets6)
	case 7:
		return bestSubset(cards, subsets7)
	}
	return 0
}

func bestSubset(cards []Card, subsets [][5]uint8) HandRank {
	var best HandRank
	for _, s := range subsets {
		cs := CardSet(cards[s[0]] | cards[s[1]] | cards[s[2]] | cards[s[3]] | cards[s[4]])
		if r := rankFive(cs); r > best {
			best = r
		}
	}
	return best
}

// subsets6 and subsets7 list the index combinations choosing five of six or seven cards.
var (
	subsets6 = fiveCardSubsets(6)
	subsets7 = fiveCardSubsets(7)
)

func fiveCardSubsets(n int) [][5]uint8 {
	var out [][5]uint8
	for mask := 0; mask < 1<<n; mask++ {
		if bits.OnesCount(uint(mask)) != 5 {
			continue
		}
		var s [5]uint8
		k := 0
		for i := range n {
			if mask&(1<<i) != 0 {
				s[k] = uint8(i)
				k++
			}
		}
		out = append(out, s)
	}
	return out
}

// rankFive ranks exactly five distinct cards.
func rankFive(cs CardSet) HandRank {
	if cs.Count() != 5 {
		return 0
	}

	s0, s1, s2, s3 := cs.SuitMask(0), cs.SuitMask(1), cs.SuitMask(2), cs.SuitMask(3)
	rankMask := s0 | s1 | s2 | s3

	if bits.OnesCount16(rankMask) == 5 {
		flush := rankMask == s0 || rankMask == s1 || rankMask == s2 || rankMask == s3
		if high := straightHigh(rankMask); high > 0 {
			if flush {
				return HandRank(baseStraightFlush + straightIndex(high))
			}
			return HandRank(baseStraight + straightIndex(high))
		}
		if flush {
			return HandRank(baseFlush + distinctIndex(rankMask))
		}
		return HandRank(baseHighCard + distinctIndex(rankMask))
	}

	quads := s0 & s1 & s2 & s3
	trips := ((s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)) &^ quads
	pairs := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ (trips | quads)

	switch {
	case quads != 0:
		quad := highestRank(quads)
		kicker := highestRank(rankMask &^ quads)
		return HandRank(baseFourOfAKind + quad*12 + ordinal(kicker, quad))
	case trips != 0 && pairs != 0:
		trip := highestRank(trips)
		pair := highestRank(pairs)
		return HandRank(baseFullHouse + trip*12 + ordinal(pair, trip))
	case trips != 0:
		trip := highestRank(trips)
		kickers := squeeze(rankMask&^trips, trip)
		return HandRank(baseThreeOfAKind + trip*66 + comboIndex12of2[kickers])
	case bits.OnesCount16(pairs) == 2:
		high := highestRank(pairs)
		low := highestRank(pairs &^ (1 << high))
		kicker := highestRank(rankMask &^ pairs)
		return HandRank(baseTwoPair + comboIndex13of2[pairs]*11 + ordinal(ordinal(kicker, high), low))
	default:
		pair := highestRank(pairs)
		kickers := squeeze(rankMask&^pairs, pair)
		return HandRank(baseOnePair + pair*220 + comboIndex12of3[kickers])
	}
}

// highestRank returns the highest rank present in a non-empty bitmask.
func highestRank(mask uint16) uint16 {
	return uint16(bits.Len16(mask) - 1)
}

// ordinal returns the position of rank among the ranks that skip excluded.
// For two exclusions apply the higher one first.
func ordinal(rank, excluded uint16) uint16 {
	if excluded < rank {
		return rank - 1
	}
	return rank
}

// squeeze removes bit r from mask and shifts the higher bits down, mapping a
// 13 rank mask into the 12 ranks left after a paired rank is taken.
func squeeze(mask, r uint16) uint16 {
	low := mask & (1<<r - 1)
	high := (mask >> (r + 1)) << r
	return low | high
}

// straightHigh returns the rank of the top card of a straight in mask, 0 if none.
// The wheel reports Five.
func straightHigh(mask uint16) uint16 {
	const wheelMask = 0x100F // Ace + 2-3-4-5

	// Bitwise cascade identifies five consecutive ranks in one pass.
	if seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4); seq != 0 {
		return highestRank(seq) + 4
	}
	if mask&wheelMask == wheelMask {
		return uint16(Five)
	}
	return 0
}

// straightIndex orders straights from the wheel (0) to broadway (9).
func straightIndex(high uint16) uint16 {
	return high - uint16(Five)
}

// distinctIndex orders five unpaired, non-consecutive ranks by their kickers.
func distinctIndex(mask uint16) uint16 {
	idx := comboIndex13of5[mask]
	var adjust uint16
	for _, s := range straightComboIndices {
		if idx <= s {
			break
		}
		adjust++
	}
	return idx - adjust
}

// Combination index tables in colex order: masks with the same popcount are
// numbered by increasing numeric value, so the highest rank decides first.
var (
	comboIndex13of5 = comboIndexTable(13, 5)
	comboIndex13of2 = comboIndexTable(13, 2)
	comboIndex12of2 = comboIndexTable(12, 2)
	comboIndex12of3 = comboIndexTable(12, 3)
)

func comboIndexTable(n, k int) []uint16 {
	table := make([]uint16, 1<<n)
	var idx uint16
	for mask := 0; mask < 1<<n; mask++ {
		if bits.OnesCount(uint(mask)) == k {
			table[mask] = idx
			idx++
		}
	}
	return table
}

var straightComboIndices = func() []uint16 {
	out := []uint16{comboIndex13of5[0x100F]}
	for high := 4; high <= 12; high++ {
		mask := uint16(0x1F) << (high - 4)
		out = append(out, comboIndex13of5[mask])
	}
	slices.Sort(out)
	return out
}()
