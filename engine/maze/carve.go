package maze

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/heap"
)

// Source is the random source the generator draws from. engine.RNG
// satisfies it.
type Source interface {
	Intn(n int) int
}

// Carver demolishes walls of a grid. It exclusively owns the grid until the
// maze is classified.
type Carver struct {
	grid    *Grid
	src     Source
	perfect bool
	carved  bool
	log     logrus.FieldLogger
}

// NewCarver returns a carver for g. Perfect mazes keep exactly a spanning
// tree of passages; imperfect ones may open more.
func NewCarver(g *Grid, perfect bool, src Source, log logrus.FieldLogger) *Carver {
	if log == nil {
		log = discardLogger()
	}
	return &Carver{grid: g, src: src, perfect: perfect, log: log}
}

type frontierItem struct {
	weight int
	cell   int
}

// weights assigns a random weight in [1, 3n] to every candidate edge. Boundary
// wrap edges are candidates only for perfect wrapping mazes; imperfect ones
// open them afterwards with RemoveWrappingWalls.
func (c *Carver) weights() map[Wall]int {
	g := c.grid
	n := g.Size()
	w := make(map[Wall]int)
	draw := func() int { return c.src.Intn(n*3) + 1 }

	if g.Wrapping && c.perfect {
		for r := 0; r < g.Rows; r++ {
			a := r * g.Cols
			b := a + g.Cols - 1
			weight := draw()
			if a != b {
				w[NewWall(a, b)] = weight
			}
		}
		for col := 0; col < g.Cols; col++ {
			a := col
			b := a + (g.Rows-1)*g.Cols
			weight := draw()
			if a != b {
				w[NewWall(a, b)] = weight
			}
		}
	}

	// A single-column grid draws twice for cell 0; the second draw wins.
	// Kept so that published seeds keep producing the same mazes.
	for i := 0; i < n; i++ {
		if (i+1)%g.Cols != 0 || (i == 0 && n > 1) {
			w[NewWall(i, i+1)] = draw()
		}
		if i < n-g.Cols {
			w[NewWall(i, i+g.Cols)] = draw()
		}
	}
	return w
}

// RemoveInsideWalls runs Prim's algorithm from cell 0 over randomly weighted
// edges and opens every tree edge, leaving a perfect maze: n-1 passages and
// every cell reachable.
func (c *Carver) RemoveInsideWalls() {
	g := c.grid
	n := g.Size()

	type neighbour struct{ cell, weight int }
	adj := make([][]neighbour, n)
	for e, w := range c.weights() {
		adj[e.A] = append(adj[e.A], neighbour{e.B, w})
		adj[e.B] = append(adj[e.B], neighbour{e.A, w})
	}

	const unreached = int(^uint(0) >> 1)
	best := make([]int, n)
	parent := make([]int, n)
	visited := make([]bool, n)
	for i := range best {
		best[i] = unreached
		parent[i] = -1
	}
	best[0] = 0
	parent[0] = 0

	frontier := heap.New(func(a, b frontierItem) bool {
		if a.weight != b.weight {
			return a.weight < b.weight
		}
		return a.cell < b.cell
	})
	frontier.Push(frontierItem{weight: 0, cell: 0})

	for frontier.Size() > 0 {
		item, _ := frontier.Pop()
		if visited[item.cell] || item.weight != best[item.cell] {
			continue
		}
		visited[item.cell] = true
		for _, nb := range adj[item.cell] {
			if !visited[nb.cell] && nb.weight < best[nb.cell] {
				best[nb.cell] = nb.weight
				parent[nb.cell] = item.cell
				frontier.Push(frontierItem{weight: nb.weight, cell: nb.cell})
			}
		}
	}

	for i := 1; i < n; i++ {
		g.Open(parent[i], i)
	}
	c.carved = true
	c.log.WithFields(logrus.Fields{
		"rows": g.Rows, "cols": g.Cols, "open": g.OpenCount(),
	}).Debug("spanning tree carved")
}

// RemoveAdditionalWalls opens random closed internal walls until exactly
// remaining internal walls stand. Only imperfect mazes accept it, and only
// after the spanning tree is carved.
func (c *Carver) RemoveAdditionalWalls(remaining int) error {
	g := c.grid
	if c.perfect {
		return fmt.Errorf("%w: a perfect maze keeps all its remaining walls", ErrInvalidState)
	}
	if !c.carved {
		return fmt.Errorf("%w: spanning tree not carved yet", ErrInvalidState)
	}
	if remaining < 0 || remaining > g.MaxRemovableWalls() {
		return fmt.Errorf("%w: remaining walls must be between 0 and %d, got %d",
			ErrInvalidArgument, g.MaxRemovableWalls(), remaining)
	}

	closed := g.AllWalls()
	for len(closed) > remaining {
		i := c.src.Intn(len(closed))
		g.Open(closed[i].A, closed[i].B)
		closed[i] = closed[len(closed)-1]
		closed = closed[:len(closed)-1]
	}
	c.log.WithField("walls", len(closed)).Debug("additional walls removed")
	return nil
}

// RemoveWrappingWalls opens k closed boundary edges, half across rows and
// the rest across columns. When one axis runs out of closed edges the
// remainder moves to the other.
func (c *Carver) RemoveWrappingWalls(k int) error {
	g := c.grid
	if !g.Wrapping {
		return fmt.Errorf("%w: maze does not wrap", ErrInvalidState)
	}
	if c.perfect {
		return fmt.Errorf("%w: a perfect maze cannot open wrapping walls", ErrInvalidState)
	}
	rows := g.closedWrapEdges(RowWrap)
	cols := g.closedWrapEdges(ColWrap)
	if k < 0 || k > len(rows)+len(cols) {
		return fmt.Errorf("%w: can remove between 0 and %d wrapping walls, got %d",
			ErrInvalidArgument, len(rows)+len(cols), k)
	}

	h := k / 2
	v := k - h
	if h > len(rows) {
		v += h - len(rows)
		h = len(rows)
	}
	if v > len(cols) {
		h += v - len(cols)
		v = len(cols)
	}
	c.openRandom(rows, h)
	c.openRandom(cols, v)
	c.log.WithFields(logrus.Fields{"rows": h, "cols": v}).Debug("wrapping walls removed")
	return nil
}

func (c *Carver) openRandom(candidates []Wall, count int) {
	for ; count > 0; count-- {
		i := c.src.Intn(len(candidates))
		c.grid.Open(candidates[i].A, candidates[i].B)
		candidates[i] = candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]
	}
}

func (g *Grid) closedWrapEdges(axis Axis) []Wall {
	var closed []Wall
	for _, e := range g.WrapEdges(axis) {
		if !g.IsOpen(e.A, e.B) {
			closed = append(closed, e)
		}
	}
	return closed
}
