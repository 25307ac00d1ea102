package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lox/pokerodds/analysis"
	"github.com/lox/pokerodds/poker"
)

// EquityCmd estimates hero equity against a single hand or a range.
type EquityCmd struct {
	Hero    string   `arg:"" help:"Hero hole cards, e.g. AsKs"`
	Villain []string `arg:"" help:"Villain hand (QhQd) or range ('TT+,AKs'); a leading 'vs' is ignored"`
	Board   string   `short:"b" help:"Community cards: 0, 3, 4 or 5 (e.g. Ts9s2h)"`
	Trials  int      `short:"n" help:"Number of Monte Carlo trials (default from config)"`
	Seed    *int64   `help:"Random seed for reproducible results"`
	Workers int      `help:"Concurrent workers (default from config)"`
}

func (c *EquityCmd) Run(e *env) error {
	hero, err := analysis.ParseCombo(c.Hero)
	if err != nil {
		return fmt.Errorf("hero: %w", err)
	}
	board, err := poker.ParseBoard(c.Board)
	if err != nil {
		return err
	}
	villain := villainExpr(c.Villain)
	if villain == "" {
		return fmt.Errorf("%w: missing villain hand or range", analysis.ErrInvalidRangeToken)
	}

	trials := c.Trials
	if trials == 0 {
		trials = e.cfg.Simulation.Trials
	}
	sim := e.simulator(c.Seed, c.Workers)

	var (
		res   analysis.EquityResult
		label string
	)
	start := e.clock.Now()
	if combo, ok := villainCombo(villain); ok {
		label = combo.String()
		res, err = sim.HandVsHand(context.Background(), hero, combo, board, trials)
	} else {
		label = villain
		res, err = sim.HandVsRange(context.Background(), hero, villain, board, trials)
	}
	if err != nil {
		return err
	}
	elapsed := e.clock.Now().Sub(start)

	heroLabel := hero.String()
	width := max(len(heroLabel), len(label))
	e.printf("%s  %s", headerStyle.Render("board"), renderBoard(board))
	if texture := renderTexture(hero, board); texture != "" {
		e.printf("  %s", texture)
	}
	e.printf("\n\n")
	e.printf("%s  %s %s\n", handStyle.Render(fmt.Sprintf("%-*s", width, heroLabel)), equityBar(res), percent(res.Equity()))
	e.printf("%s  %s %s\n\n", handStyle.Render(fmt.Sprintf("%-*s", width, label)), equityBar(res.Reverse()), percent(res.Reverse().Equity()))
	e.printf("%s\n\n", equityTable(heroLabel, label, res))

	lo, hi := res.ConfidenceInterval()
	e.printf("%s\n", dimStyle.Render(fmt.Sprintf("95%% interval %s - %s", percent(lo), percent(hi))))
	e.printf("%s\n", dimStyle.Render(fmt.Sprintf("%d trials in %v", res.Trials(), elapsed.Truncate(time.Millisecond))))
	return nil
}

// villainExpr joins the villain arguments into one expression, dropping a
// leading "vs" so "AsKs vs QhQd" reads naturally.
func villainExpr(args []string) string {
	if len(args) > 0 && strings.EqualFold(args[0], "vs") {
		args = args[1:]
	}
	return strings.Join(args, ",")
}

// villainCombo reports whether expr names one concrete hand such as "QhQd".
func villainCombo(expr string) (analysis.Combo, bool) {
	if len(expr) != 4 {
		return analysis.Combo{}, false
	}
	combo, err := analysis.ParseCombo(expr)
	if err != nil {
		return analysis.Combo{}, false
	}
	return combo, true
}
