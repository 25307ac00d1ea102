package main

import (
	"context"
	"fmt"
	"time"

	"github.com/lox/pokerodds/analysis"
)

// PreflopCmd ranks every starting hand by its equity against a random hand.
type PreflopCmd struct {
	Trials  int    `short:"n" default:"2000" help:"Trials per hand class"`
	Top     int    `default:"20" help:"Rows to list, 0 for all 169"`
	Seed    *int64 `help:"Random seed for reproducible results"`
	Workers int    `help:"Concurrent workers (default from config)"`
	Grid    bool   `default:"true" negatable:"" help:"Show equities on the 13x13 hand grid"`
}

func (c *PreflopCmd) Run(e *env) error {
	start := e.clock.Now()
	table, err := e.simulator(c.Seed, c.Workers).PreflopTable(context.Background(), c.Trials)
	if err != nil {
		return err
	}
	elapsed := e.clock.Now().Sub(start)

	rows := table
	if c.Top > 0 && c.Top < len(rows) {
		rows = rows[:c.Top]
	}
	e.printf("%s\n", preflopTable(rows))

	if c.Grid {
		e.printf("\n%s\n", equityGrid(table))
	}

	trials := 0
	for _, h := range table {
		trials += h.Result.Trials()
	}
	e.printf("\n%s\n", dimStyle.Render(fmt.Sprintf("%d hands, %d trials in %v", len(table), trials, elapsed.Truncate(time.Millisecond))))
	return nil
}
