package main

import (
	"fmt"

	"github.com/lox/pokerodds/analysis"
	"github.com/lox/pokerodds/poker"
)

// CombosCmd expands a range and prints its combo breakdown.
type CombosCmd struct {
	Range string `arg:"" help:"Range notation, e.g. 'TT+,AKs,KQo'"`
	Dead  string `short:"d" help:"Dead cards removed from the range (e.g. AsKd)"`
	Grid  bool   `default:"true" negatable:"" help:"Show the 13x13 hand grid"`
}

func (c *CombosCmd) Run(e *env) error {
	dead, err := poker.ParseCards(c.Dead)
	if err != nil {
		return fmt.Errorf("dead cards: %w", err)
	}

	total, err := analysis.CountCombos(c.Range)
	if err != nil {
		return err
	}
	r, err := analysis.ExpandRange(c.Range, poker.NewCardSet(dead...))
	if err != nil {
		return err
	}
	e.logger.Debug("Expanded range", "range", c.Range, "combos", r.Size(), "before_dead", total)

	counts := countByClass(r.Combos())
	e.printf("%s\n\n", combosTable(counts))

	summary := fmt.Sprintf("%d combos (%.1f%% of hands)", r.Size(), r.Percent())
	if blocked := total - r.Size(); blocked > 0 {
		summary += fmt.Sprintf(", %d blocked by %s", blocked, poker.FormatCards(dead))
	}
	e.printf("%s\n", headerStyle.Render(summary))

	if c.Grid {
		e.printf("\n%s\n", rangeGrid(counts))
	}
	return nil
}
