package maze

import (
	"fmt"
	"strings"

	"github.com/nathoo/cavern/types"
)

var featureGlyph = map[types.FeatureKind]string{
	types.Wumpus: "W",
	types.Bat:    "B",
	types.Pit:    "P",
	types.Gold:   "G",
	types.Thief:  "T",
}

// Render draws the maze as text. Every cell is shown as its id, or as its
// cave label and feature glyphs when detailed is set (tunnels become ".").
// "|" marks a standing vertical wall and "_" a standing horizontal one;
// boundary walls are left open where a wrap passage crosses them.
func Render(m *Maze, detailed bool) string {
	return render(m, func(id int) string { return cellText(m, id, detailed) })
}

// RenderExplored draws the maze as the players know it: visited rooms in
// detail and "?" for the rest.
func RenderExplored(m *Maze) string {
	return render(m, func(id int) string {
		if !m.Rooms[id].Visited {
			return "?"
		}
		return cellText(m, id, true)
	})
}

func render(m *Maze, cell func(id int) string) string {
	g := m.Grid

	text := make([]string, g.Size())
	width := 3
	for id := range text {
		text[id] = cell(id)
		if len(text[id]) > width {
			width = len(text[id])
		}
	}

	var sb strings.Builder
	// between writes the horizontal wall line separating row r from row r+1;
	// r = -1 and r = Rows-1 are the boundary lines.
	between := func(r int) {
		for c := 0; c < g.Cols; c++ {
			var open bool
			if r < 0 || r == g.Rows-1 {
				open = g.Rows >= 3 && g.IsOpen(c, g.Cell(g.Rows-1, c))
			} else {
				open = g.IsOpen(g.Cell(r, c), g.Cell(r+1, c))
			}
			sb.WriteString(" ")
			if open {
				sb.WriteString(strings.Repeat(" ", width))
			} else {
				sb.WriteString(strings.Repeat("_", width))
			}
		}
		sb.WriteString("\n")
	}

	between(-1)
	for r := 0; r < g.Rows; r++ {
		first, last := g.Cell(r, 0), g.Cell(r, g.Cols-1)
		edge := "|"
		if g.Cols >= 3 && g.IsOpen(first, last) {
			edge = " "
		}
		sb.WriteString(edge)
		for c := 0; c < g.Cols; c++ {
			id := g.Cell(r, c)
			fmt.Fprintf(&sb, "%-*s", width, text[id])
			switch {
			case c == g.Cols-1:
				sb.WriteString(edge)
			case g.IsOpen(id, id+1):
				sb.WriteString(" ")
			default:
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
		between(r)
	}
	return sb.String()
}

func cellText(m *Maze, id int, detailed bool) string {
	if !detailed {
		return fmt.Sprintf("%d", id)
	}
	r := &m.Rooms[id]
	if !r.IsCave() {
		return "."
	}
	var sb strings.Builder
	sb.WriteString(r.Label)
	for _, k := range types.FeatureKinds {
		if r.Features.Has(k) {
			sb.WriteString(featureGlyph[k])
		}
	}
	return sb.String()
}
