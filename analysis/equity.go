package analysis

import (
	"fmt"
	"math"
)

// EquityResult holds the outcome counts of a simulation batch from the hero's
// point of view. Probabilities are derived from the counts on demand.
type EquityResult struct {
	Wins   int
	Ties   int
	Losses int
}

// Trials returns the number of trials actually run.
func (e EquityResult) Trials() int {
	return e.Wins + e.Ties + e.Losses
}

// Win returns the win probability (0.0 to 1.0)
func (e EquityResult) Win() float64 {
	return e.rate(e.Wins)
}

// Tie returns the tie probability (0.0 to 1.0)
func (e EquityResult) Tie() float64 {
	return e.rate(e.Ties)
}

// Lose returns the loss probability (0.0 to 1.0)
func (e EquityResult) Lose() float64 {
	return e.rate(e.Losses)
}

// Equity returns the pot share, wins count as 1.0 and ties as 0.5.
func (e EquityResult) Equity() float64 {
	n := e.Trials()
	if n == 0 {
		return 0.0
	}
	return (float64(e.Wins) + float64(e.Ties)*0.5) / float64(n)
}

// ConfidenceInterval returns the 95% confidence interval for equity
func (e EquityResult) ConfidenceInterval() (lower, upper float64) {
	n := float64(e.Trials())
	if n == 0 {
		return 0.0, 0.0
	}
	equity := e.Equity()

	// Standard error for binomial proportion
	se := math.Sqrt((equity * (1.0 - equity)) / n)
	margin := 1.96 * se

	return math.Max(0.0, equity-margin), math.Min(1.0, equity+margin)
}

// Reverse returns the same counts from the opponent's point of view.
func (e EquityResult) Reverse() EquityResult {
	return EquityResult{Wins: e.Losses, Ties: e.Ties, Losses: e.Wins}
}

func (e EquityResult) String() string {
	return fmt.Sprintf("Win %.1f%% | Tie %.1f%% | Lose %.1f%% (equity: %.1f%%)",
		e.Win()*100, e.Tie()*100, e.Lose()*100, e.Equity()*100)
}

func (e EquityResult) add(o EquityResult) EquityResult {
	return EquityResult{
		Wins:   e.Wins + o.Wins,
		Ties:   e.Ties + o.Ties,
		Losses: e.Losses + o.Losses,
	}
}

func (e EquityResult) rate(count int) float64 {
	n := e.Trials()
	if n == 0 {
		return 0.0
	}
	return float64(count) / float64(n)
}
