package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/cavern/types"
)

// directionLetters abbreviates exits for the status bar.
var directionLetters = map[types.Direction]string{
	types.North: "n",
	types.South: "s",
	types.East:  "e",
	types.West:  "w",
}

// renderStatusBar produces a full-width status line: the active player,
// their cave and exits on the left; what they sense, their ammunition or
// gold and the turn count on the right.
func (m Model) renderStatusBar() string {
	p := m.engine.ActivePlayer()

	var exits []string
	for _, d := range m.engine.ValidMoves() {
		exits = append(exits, directionLetters[d])
	}
	left := fmt.Sprintf(" %s | Cave %s | Exits: %s", p.Name, p.Cave, strings.Join(exits, ","))

	var right string
	if m.engine.Rules.Arrows() {
		right = fmt.Sprintf("Arrows: %d | T:%d ", p.Arrows, m.engine.State.TurnCount)
	} else {
		right = fmt.Sprintf("Gold: %d | T:%d ", p.Gold, m.engine.State.TurnCount)
	}

	alert := senses(m.engine.Maze().Smells(p.Room))
	if m.engine.Over() {
		alert = "GAME OVER"
	}
	if alert != "" {
		alert += " | "
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(alert) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := styleStatusBar.Render(left+strings.Repeat(" ", gap)) +
		styleStatusAlert.Render(alert) +
		styleStatusBar.Render(right)
	return lipgloss.NewStyle().Width(m.width).MaxWidth(m.width).Render(bar)
}

// senses names the warnings felt in a cave, for the status bar.
func senses(smells []types.Smell) string {
	var names []string
	for _, s := range smells {
		switch s {
		case types.Stench:
			names = append(names, "Stench")
		case types.Draft:
			names = append(names, "Draft")
		}
	}
	return strings.Join(names, " ")
}
