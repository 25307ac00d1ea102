package analysis

import (
	"context"
	"slices"

	"github.com/lox/pokerodds/poker"
)

// AnyTwo is the range holding all 1326 starting combos.
const AnyTwo = "22+,32+,42+,52+,62+,72+,82+,92+,T2+,J2+,Q2+,K2+,A2+"

// NumHandClasses is the number of distinct starting hand notations.
const NumHandClasses = 169

// PreflopHand is one hand class with its estimated equity against a random hand.
type PreflopHand struct {
	Class  HandClass
	Result EquityResult
}

// GridClass returns the class in the 13x13 starting hand matrix at the given
// row and column ranks: pairs where they match, suited when the row rank is
// higher and offsuit when it is lower.
func GridClass(row, col uint8) HandClass {
	switch {
	case row == col:
		return HandClass{High: row, Low: col}
	case row > col:
		return HandClass{High: row, Low: col, Suited: true}
	}
	return HandClass{High: col, Low: row}
}

// AllHandClasses lists the 169 classes in matrix order, aces first.
func AllHandClasses() []HandClass {
	out := make([]HandClass, 0, NumHandClasses)
	for r := int(poker.Ace); r >= 0; r-- {
		for c := int(poker.Ace); c >= 0; c-- {
			out = append(out, GridClass(uint8(r), uint8(c)))
		}
	}
	return out
}

// PreflopTable estimates every class's heads-up equity against AnyTwo, with
// trials spent per class as in HandVsRange. Suits do not change preflop
// equity, so each class is simulated through one representative combo. The
// table is ordered strongest first.
func (s *Simulator) PreflopTable(ctx context.Context, trials int) ([]PreflopHand, error) {
	classes := AllHandClasses()
	table := make([]PreflopHand, 0, len(classes))

	start := s.clock.Now()
	for _, class := range classes {
		hero := class.appendCombos(nil)[0]
		res, err := s.HandVsRange(ctx, hero, AnyTwo, nil, trials)
		if err != nil {
			return nil, err
		}
		table = append(table, PreflopHand{Class: class, Result: res})
	}

	slices.SortStableFunc(table, func(a, b PreflopHand) int {
		switch ea, eb := a.Result.Equity(), b.Result.Equity(); {
		case ea > eb:
			return -1
		case ea < eb:
			return 1
		}
		return 0
	})

	s.logger.Debug("Generated preflop table", "classes", len(table), "elapsed", s.clock.Now().Sub(start))
	return table, nil
}
