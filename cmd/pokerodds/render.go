package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/pokerodds/analysis"
	"github.com/lox/pokerodds/poker"
)

const barWidth = 30

var (
	// Style definitions
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	loseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	cellStyle = lipgloss.NewStyle().
			Width(4).
			Align(lipgloss.Center)

	fullCellStyle    = cellStyle.Background(lipgloss.Color("28")).Foreground(lipgloss.Color("15"))
	partialCellStyle = cellStyle.Background(lipgloss.Color("136")).Foreground(lipgloss.Color("15"))
	emptyCellStyle   = cellStyle.Foreground(lipgloss.Color("8"))
)

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

// equityBar renders a fixed width bar: wins solid, ties shaded, losses empty.
func equityBar(res analysis.EquityResult) string {
	wins := int(math.Round(res.Win() * barWidth))
	ties := min(int(math.Round(res.Tie()*barWidth)), barWidth-wins)
	rest := barWidth - wins - ties

	return winStyle.Render(strings.Repeat("█", wins)) +
		tieStyle.Render(strings.Repeat("▒", ties)) +
		dimStyle.Render(strings.Repeat("░", rest))
}

func renderBoard(board []poker.Card) string {
	if len(board) == 0 {
		return dimStyle.Render("preflop")
	}
	parts := make([]string, len(board))
	for i, c := range board {
		parts[i] = c.String()
	}
	return handStyle.Render(strings.Join(parts, " "))
}

// equityTable lists both sides of a heads-up result.
func equityTable(hero, villain string, res analysis.EquityResult) string {
	opp := res.Reverse()
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers("hand", "win", "tie", "lose", "equity").
		Row(hero, percent(res.Win()), percent(res.Tie()), percent(res.Lose()), percent(res.Equity())).
		Row(villain, percent(opp.Win()), percent(opp.Tie()), percent(opp.Lose()), percent(opp.Equity())).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return s.Inherit(headerStyle)
			case col == 0:
				return s.Inherit(handStyle)
			case col == 1:
				return s.Inherit(winStyle)
			case col == 2:
				return s.Inherit(tieStyle)
			case col == 3:
				return s.Inherit(loseStyle)
			}
			return s
		}).
		Render()
}

// classCount pairs a hand class with how many of its combos survived.
type classCount struct {
	class analysis.HandClass
	count int
}

// countByClass groups combos by hand class in order of first appearance.
func countByClass(combos []analysis.Combo) []classCount {
	var out []classCount
	index := make(map[analysis.HandClass]int)
	for _, c := range combos {
		class := c.Class()
		i, ok := index[class]
		if !ok {
			i = len(out)
			index[class] = i
			out = append(out, classCount{class: class})
		}
		out[i].count++
	}
	return out
}

func combosTable(counts []classCount) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers("hand", "combos", "tier").
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return s.Inherit(headerStyle)
			case col == 0:
				return s.Inherit(handStyle)
			case col == 2:
				return s.Inherit(dimStyle)
			}
			return s.Align(lipgloss.Right)
		})
	for _, cc := range counts {
		t.Row(cc.class.String(), fmt.Sprintf("%d/%d", cc.count, cc.class.Combos()), cc.class.Tier().String())
	}
	return t.Render()
}

// rangeGrid draws the 13x13 starting hand matrix, aces top left. Pairs sit on
// the diagonal, suited hands above it and offsuit hands below.
func rangeGrid(counts []classCount) string {
	held := make(map[analysis.HandClass]int, len(counts))
	for _, cc := range counts {
		held[cc.class] = cc.count
	}

	rows := make([]string, 0, 13)
	for r := int(poker.Ace); r >= 0; r-- {
		cells := make([]string, 0, 13)
		for c := int(poker.Ace); c >= 0; c-- {
			class := analysis.GridClass(uint8(r), uint8(c))
			style := emptyCellStyle
			switch n := held[class]; {
			case n == class.Combos():
				style = fullCellStyle
			case n > 0:
				style = partialCellStyle
			}
			cells = append(cells, style.Render(class.String()))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func preflopTable(hands []analysis.PreflopHand) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers("#", "hand", "equity", "tier").
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return s.Inherit(headerStyle)
			case col == 1:
				return s.Inherit(handStyle)
			case col == 3:
				return s.Inherit(dimStyle)
			}
			return s.Align(lipgloss.Right)
		})
	for i, h := range hands {
		t.Row(fmt.Sprintf("%d", i+1), h.Class.String(), percent(h.Result.Equity()), h.Class.Tier().String())
	}
	return t.Render()
}

// equityGrid draws the hand matrix with each class's equity, shaded by strength.
func equityGrid(hands []analysis.PreflopHand) string {
	equity := make(map[analysis.HandClass]float64, len(hands))
	for _, h := range hands {
		equity[h.Class] = h.Result.Equity()
	}

	rows := make([]string, 0, 13)
	for r := int(poker.Ace); r >= 0; r-- {
		cells := make([]string, 0, 13)
		for c := int(poker.Ace); c >= 0; c-- {
			class := analysis.GridClass(uint8(r), uint8(c))
			eq := equity[class]
			style := emptyCellStyle
			switch {
			case eq >= 0.6:
				style = fullCellStyle
			case eq >= 0.5:
				style = partialCellStyle
			}
			cells = append(cells, style.Width(5).Render(fmt.Sprintf("%.0f", eq*100)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderTexture describes the board and hero's draws, empty preflop.
func renderTexture(hero analysis.Combo, board []poker.Card) string {
	if len(board) < 3 {
		return ""
	}
	info := analysis.AnalyzeBoard(board)
	s := dimStyle.Render(info.Texture.String())

	draws := analysis.DetectDraws(hero, board)
	if len(draws.Draws) == 0 {
		return s
	}
	names := make([]string, len(draws.Draws))
	for i, d := range draws.Draws {
		names[i] = d.String()
	}
	if draws.Combo() {
		names = append(names, "combo draw")
	}
	return s + "\n" + headerStyle.Render("draws") + "  " +
		tieStyle.Render(fmt.Sprintf("%s (%d outs)", strings.Join(names, ", "), draws.Outs))
}
