package main

import (
	"fmt"
	"strings"

	"github.com/lox/pokerodds/poker"
)

// EvalCmd ranks five to seven cards.
type EvalCmd struct {
	Cards []string `arg:"" help:"Five to seven cards, e.g. 'As Ks Qs Js Ts'"`
}

func (c *EvalCmd) Run(e *env) error {
	cards, err := poker.ParseCards(strings.Join(c.Cards, ""))
	if err != nil {
		return err
	}
	rank := poker.Evaluate(cards)
	if !rank.IsValid() {
		return fmt.Errorf("%w: need 5 to 7 cards, got %d", poker.ErrInvalidCard, len(cards))
	}

	e.printf("%s  %s  %s\n",
		handStyle.Render(poker.FormatCards(cards)),
		headerStyle.Render(rank.String()),
		dimStyle.Render(fmt.Sprintf("rank %d/%d", rank, poker.MaxHandRank)))
	return nil
}
