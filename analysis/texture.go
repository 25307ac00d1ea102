package analysis

import (
	"math/bits"
	"slices"

	"github.com/lox/pokerodds/poker"
)

// Texture grades how coordinated a board is, from dry to very wet.
type Texture uint8

const (
	TextureDry Texture = iota
	TextureSemiWet
	TextureWet
	TextureVeryWet
)

var textureNames = [...]string{
	TextureDry:     "dry",
	TextureSemiWet: "semi-wet",
	TextureWet:     "wet",
	TextureVeryWet: "very wet",
}

func (t Texture) String() string {
	if int(t) < len(textureNames) {
		return textureNames[t]
	}
	return "unknown"
}

// BoardInfo summarises the flush and straight potential of a board.
type BoardInfo struct {
	Texture   Texture
	MaxSuit   int  // most cards held in one suit
	Monotone  bool // three or more cards, one suit
	Rainbow   bool // three or more cards, no suit repeated
	Connected int  // longest run of adjacent ranks, the ace plays high or low
	Paired    bool
	Broadway  int // distinct ranks from ten to ace
}

// AnalyzeBoard scores the board's texture. Boards of fewer than three cards
// are always dry.
func AnalyzeBoard(board []poker.Card) BoardInfo {
	cs := poker.NewCardSet(board...)
	ranks := cs.RankMask()

	var info BoardInfo
	suits := 0
	for suit := range uint8(4) {
		n := bits.OnesCount16(cs.SuitMask(suit))
		if n > 0 {
			suits++
		}
		info.MaxSuit = max(info.MaxSuit, n)
	}
	n := cs.Count()
	info.Monotone = n >= 3 && suits == 1
	info.Rainbow = n >= 3 && suits == n
	info.Connected = longestRun(ranks)
	info.Paired = bits.OnesCount16(ranks) < n
	info.Broadway = bits.OnesCount16(ranks >> poker.Ten)

	if n < 3 {
		return info
	}

	wet := 0
	switch {
	case info.Monotone, info.MaxSuit >= 4:
		wet += 4
	case info.MaxSuit == 3:
		wet += 3
	case info.MaxSuit == 2:
		wet++
	}
	switch {
	case info.Connected >= 4:
		wet += 4
	case info.Connected == 3:
		wet += 3
	case info.Connected == 2:
		wet++
	}
	if info.Paired {
		wet++
	}
	if info.Broadway >= 3 {
		wet++
	}

	switch {
	case wet == 0:
		info.Texture = TextureDry
	case wet <= 3:
		info.Texture = TextureSemiWet
	case wet <= 5:
		info.Texture = TextureWet
	default:
		info.Texture = TextureVeryWet
	}
	return info
}

// Draw is one way an unmade hand can improve on the next card.
type Draw uint8

const (
	DrawFlush Draw = iota
	DrawNutFlush
	DrawOpenEnded
	DrawGutshot
	DrawBackdoorFlush
	DrawOvercards
)

var drawNames = [...]string{
	DrawFlush:         "flush draw",
	DrawNutFlush:      "nut flush draw",
	DrawOpenEnded:     "open-ended straight draw",
	DrawGutshot:       "gutshot",
	DrawBackdoorFlush: "backdoor flush",
	DrawOvercards:     "overcards",
}

func (d Draw) String() string {
	if int(d) < len(drawNames) {
		return drawNames[d]
	}
	return "unknown"
}

// DrawInfo lists the draws a hand holds and its distinct outs.
type DrawInfo struct {
	Draws []Draw
	Outs  int
}

// Has reports whether d is among the detected draws.
func (d DrawInfo) Has(draw Draw) bool {
	return slices.Contains(d.Draws, draw)
}

// Combo reports whether several draws add up to twelve or more outs.
func (d DrawInfo) Combo() bool {
	return len(d.Draws) >= 2 && d.Outs >= 12
}

// DetectDraws finds hero's draws on a flop or turn. Preflop, river and made
// straights or better report no draws. Outs are counted once even when they
// complete more than one draw.
func DetectDraws(hero Combo, board []poker.Card) DrawInfo {
	if len(board) < 3 || len(board) > 4 {
		return DrawInfo{}
	}
	heroSet := hero.Cards()
	boardSet := poker.NewCardSet(board...)
	if heroSet.Overlaps(boardSet) {
		return DrawInfo{}
	}
	known := heroSet | boardSet

	hand := append([]poker.Card{hero.First, hero.Second}, board...)
	if poker.Evaluate(hand).Type() >= poker.Straight {
		return DrawInfo{}
	}

	var (
		info DrawInfo
		outs poker.CardSet
	)

	for suit := range uint8(4) {
		mine := bits.OnesCount16(heroSet.SuitMask(suit))
		total := mine + bits.OnesCount16(boardSet.SuitMask(suit))
		switch {
		case mine > 0 && total == 4:
			if heroSet.SuitMask(suit)&(1<<poker.Ace) != 0 {
				info.Draws = append(info.Draws, DrawNutFlush)
			} else {
				info.Draws = append(info.Draws, DrawFlush)
			}
			outs |= suitCards(suit) &^ known
		case mine > 0 && total == 3 && len(board) == 3:
			info.Draws = append(info.Draws, DrawBackdoorFlush)
		}
	}

	ranks := known.RankMask()
	boardRanks := boardSet.RankMask()
	var completing []uint8
	for r := poker.Two; r <= poker.Ace; r++ {
		bit := uint16(1) << r
		if ranks&bit != 0 {
			continue
		}
		if hasStraight(ranks|bit) && !hasStraight(boardRanks|bit) {
			completing = append(completing, r)
		}
	}
	switch {
	case len(completing) >= 2:
		info.Draws = append(info.Draws, DrawOpenEnded)
	case len(completing) == 1:
		info.Draws = append(info.Draws, DrawGutshot)
	}
	for _, r := range completing {
		outs |= rankCards(r) &^ known
	}

	if !info.Has(DrawFlush) && !info.Has(DrawNutFlush) && !info.Has(DrawOpenEnded) {
		top := uint8(bits.Len16(boardRanks) - 1)
		var over poker.CardSet
		if hero.First.Rank() != hero.Second.Rank() {
			for _, c := range []poker.Card{hero.First, hero.Second} {
				if c.Rank() > top {
					over |= rankCards(c.Rank()) &^ known
				}
			}
		}
		if over != 0 {
			info.Draws = append(info.Draws, DrawOvercards)
			outs |= over
		}
	}

	info.Outs = outs.Count()
	return info
}

// aceLow maps a rank mask onto 14 bits with the ace repeated below the deuce.
func aceLow(mask uint16) uint16 {
	return mask<<1 | (mask>>poker.Ace)&1
}

func hasStraight(mask uint16) bool {
	m := aceLow(mask)
	return m&(m>>1)&(m>>2)&(m>>3)&(m>>4) != 0
}

func longestRun(mask uint16) int {
	n := 0
	for m := aceLow(mask); m != 0; m &= m >> 1 {
		n++
	}
	return n
}

func suitCards(suit uint8) poker.CardSet {
	return poker.CardSet(0x1FFF) << (suit * 13)
}

func rankCards(rank uint8) poker.CardSet {
	var cs poker.CardSet
	for suit := range uint8(4) {
		cs.Add(poker.NewCard(rank, suit))
	}
	return cs
}
