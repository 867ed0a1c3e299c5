// Package maze builds cave mazes: a rectangular grid whose walls are carved
// by a randomized spanning tree, classified into caves and tunnels, and
// populated with features.
package maze

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/nathoo/cavern/types"
)

var (
	// ErrInvalidArgument reports bad construction input. Nothing is mutated.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidState reports a construction step that does not apply to this maze.
	ErrInvalidState = errors.New("invalid state")
	// ErrInvariant reports a post-construction check that failed. It signals
	// a bug in the generator, not bad input.
	ErrInvariant = errors.New("invariant violated")
	// ErrMalformedMaze reports a tunnel chain that never reaches a cave.
	ErrMalformedMaze = errors.New("malformed maze")
)

// Wall is an unordered pair of cell ids, stored with A < B.
type Wall struct {
	A, B int
}

// NewWall normalises the pair order.
func NewWall(i, j int) Wall {
	if i > j {
		i, j = j, i
	}
	return Wall{A: i, B: j}
}

func (w Wall) String() string {
	return fmt.Sprintf("%d-%d", w.A, w.B)
}

// Axis distinguishes row wrap edges (west/east boundary) from column wrap
// edges (north/south boundary).
type Axis int

const (
	RowWrap Axis = iota
	ColWrap
)

// Grid is the row×column index space of the maze together with its open
// passages. Passages are symmetric by construction.
type Grid struct {
	Rows     int
	Cols     int
	Wrapping bool

	open mapset.Set[Wall]
}

// NewGrid creates a grid with every wall standing.
func NewGrid(rows, cols int, wrapping bool) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidArgument, rows, cols)
	}
	return &Grid{
		Rows:     rows,
		Cols:     cols,
		Wrapping: wrapping,
		open:     mapset.New[Wall](),
	}, nil
}

// Size returns the number of cells.
func (g *Grid) Size() int {
	return g.Rows * g.Cols
}

// Cell returns the id of the cell at (r, c).
func (g *Grid) Cell(r, c int) int {
	return r*g.Cols + c
}

// Coords returns the row and column of a cell id.
func (g *Grid) Coords(id int) (int, int) {
	return id / g.Cols, id % g.Cols
}

// Open demolishes the wall between i and j.
func (g *Grid) Open(i, j int) {
	if i == j {
		return
	}
	g.open.Put(NewWall(i, j))
}

// IsOpen reports whether there is a passage between i and j.
func (g *Grid) IsOpen(i, j int) bool {
	return g.open.Has(NewWall(i, j))
}

// OpenCount returns the number of open passages, wrap passages included.
func (g *Grid) OpenCount() int {
	return g.open.Size()
}

// OpenEdges returns every open passage in sorted order.
func (g *Grid) OpenEdges() []Wall {
	edges := make([]Wall, 0, g.open.Size())
	g.open.Each(func(w Wall) {
		edges = append(edges, w)
	})
	sortWalls(edges)
	return edges
}

// InternalEdges returns the east and south neighbour pairs of every cell,
// in the order the carver draws weights for them.
func (g *Grid) InternalEdges() []Wall {
	var edges []Wall
	n := g.Size()
	for i := 0; i < n; i++ {
		if (i+1)%g.Cols != 0 {
			edges = append(edges, Wall{A: i, B: i + 1})
		}
		if i < n-g.Cols {
			edges = append(edges, Wall{A: i, B: i + g.Cols})
		}
	}
	return edges
}

// WrapEdges returns the boundary edges along one axis. Edges that would be
// self-loops or duplicate an internal edge (a dimension below 3) are
// omitted.
func (g *Grid) WrapEdges(axis Axis) []Wall {
	var edges []Wall
	switch axis {
	case RowWrap:
		if g.Cols < 3 {
			return nil
		}
		for r := 0; r < g.Rows; r++ {
			edges = append(edges, Wall{A: r * g.Cols, B: r*g.Cols + g.Cols - 1})
		}
	case ColWrap:
		if g.Rows < 3 {
			return nil
		}
		for c := 0; c < g.Cols; c++ {
			edges = append(edges, Wall{A: c, B: c + (g.Rows-1)*g.Cols})
		}
	}
	return edges
}

// isWrapEdge reports whether w joins opposite boundaries.
func (g *Grid) isWrapEdge(w Wall) bool {
	ra, ca := g.Coords(w.A)
	rb, cb := g.Coords(w.B)
	if ra == rb {
		return cb-ca > 1
	}
	return ca == cb && rb-ra > 1
}

// MaxInternalEdges returns the number of east/south neighbour pairs.
func (g *Grid) MaxInternalEdges() int {
	return (g.Rows-1)*g.Cols + (g.Cols-1)*g.Rows
}

// MaxRemovableWalls returns how many internal walls may stand while every
// cell is still reachable: all internal edges minus a spanning tree.
func (g *Grid) MaxRemovableWalls() int {
	return g.MaxInternalEdges() - (g.Size() - 1)
}

// AllWalls returns every closed internal edge, sorted.
func (g *Grid) AllWalls() []Wall {
	var walls []Wall
	for _, e := range g.InternalEdges() {
		if !g.open.Has(e) {
			walls = append(walls, e)
		}
	}
	return walls
}

// Step returns the cell reached from id in direction d and whether the grid
// has such a neighbour. Wrap-around neighbours exist only on wrapping grids.
func (g *Grid) Step(id int, d types.Direction) (int, bool) {
	r, c := g.Coords(id)
	switch d {
	case types.North:
		r--
	case types.South:
		r++
	case types.East:
		c++
	case types.West:
		c--
	}
	if r < 0 || r >= g.Rows || c < 0 || c >= g.Cols {
		if !g.Wrapping {
			return 0, false
		}
		r = (r + g.Rows) % g.Rows
		c = (c + g.Cols) % g.Cols
	}
	next := g.Cell(r, c)
	if next == id {
		return 0, false
	}
	return next, true
}

// Exits returns, per direction, the cell reached through an open passage or
// -1. A passage that is both internal and wrap-around (a dimension of 2) is
// reported on its internal side only.
func (g *Grid) Exits(id int) [4]int {
	exits := [4]int{-1, -1, -1, -1}
	for _, d := range types.Directions {
		next, ok := g.Step(id, d)
		if !ok || !g.IsOpen(id, next) {
			continue
		}
		if g.isWrapStep(id, d) && !g.isWrapEdge(NewWall(id, next)) {
			continue
		}
		exits[d] = next
	}
	return exits
}

// isWrapStep reports whether moving from id in direction d crosses the
// grid boundary.
func (g *Grid) isWrapStep(id int, d types.Direction) bool {
	r, c := g.Coords(id)
	switch d {
	case types.North:
		return r == 0
	case types.South:
		return r == g.Rows-1
	case types.East:
		return c == g.Cols-1
	default:
		return c == 0
	}
}

// Degree returns the number of open exits of a cell.
func (g *Grid) Degree(id int) int {
	n := 0
	for _, e := range g.Exits(id) {
		if e >= 0 {
			n++
		}
	}
	return n
}

// Connected reports whether every cell is reachable from cell 0.
func (g *Grid) Connected() bool {
	n := g.Size()
	seen := make([]bool, n)
	seen[0] = true
	queue := []int{0}
	count := 1
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range g.Exits(cur) {
			if next >= 0 && !seen[next] {
				seen[next] = true
				count++
				queue = append(queue, next)
			}
		}
	}
	return count == n
}

func sortWalls(walls []Wall) {
	sort.Slice(walls, func(i, j int) bool {
		if walls[i].A != walls[j].A {
			return walls[i].A < walls[j].A
		}
		return walls[i].B < walls[j].B
	})
}

// DirectionBetween returns the direction leading from a to its neighbour b,
// including the inverted directions of wrap passages.
func (g *Grid) DirectionBetween(a, b int) (types.Direction, bool) {
	for _, d := range types.Directions {
		if next, ok := g.Step(a, d); ok && next == b {
			return d, true
		}
	}
	return 0, false
}
