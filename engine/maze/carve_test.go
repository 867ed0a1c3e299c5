package maze

import (
	"errors"
	"math/rand"
	"testing"
)

func newSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

func carvedGrid(t *testing.T, rows, cols int, wrapping, perfect bool, seed int64) (*Grid, *Carver) {
	t.Helper()
	g, err := NewGrid(rows, cols, wrapping)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	c := NewCarver(g, perfect, newSource(seed), nil)
	c.RemoveInsideWalls()
	return g, c
}

func wrapCount(g *Grid) int {
	n := 0
	for _, e := range g.OpenEdges() {
		if g.isWrapEdge(e) {
			n++
		}
	}
	return n
}

func TestCarver_PerfectIsSpanningTree(t *testing.T) {
	sizes := []struct{ rows, cols int }{{1, 1}, {1, 6}, {6, 1}, {2, 2}, {3, 4}, {5, 7}, {10, 10}}
	for _, wrapping := range []bool{false, true} {
		for _, sz := range sizes {
			for seed := int64(1); seed <= 5; seed++ {
				g, _ := carvedGrid(t, sz.rows, sz.cols, wrapping, true, seed)
				if got, want := g.OpenCount(), g.Size()-1; got != want {
					t.Errorf("%dx%d wrapping=%v seed=%d: %d passages, want %d",
						sz.rows, sz.cols, wrapping, seed, got, want)
				}
				if !g.Connected() {
					t.Errorf("%dx%d wrapping=%v seed=%d: not connected", sz.rows, sz.cols, wrapping, seed)
				}
			}
		}
	}
}

func TestCarver_NonWrappingNeverOpensWraps(t *testing.T) {
	g, _ := carvedGrid(t, 6, 6, false, true, 3)
	if n := wrapCount(g); n != 0 {
		t.Errorf("non-wrapping maze opened %d wrap passages", n)
	}
}

func TestCarver_Deterministic(t *testing.T) {
	a, _ := carvedGrid(t, 7, 9, true, true, 42)
	b, _ := carvedGrid(t, 7, 9, true, true, 42)

	ea, eb := a.OpenEdges(), b.OpenEdges()
	if len(ea) != len(eb) {
		t.Fatalf("edge counts differ: %d vs %d", len(ea), len(eb))
	}
	for i := range ea {
		if ea[i] != eb[i] {
			t.Fatalf("edge %d differs: %v vs %v", i, ea[i], eb[i])
		}
	}
}

func TestCarver_RemoveAdditionalWalls(t *testing.T) {
	for remaining := 0; remaining <= 6; remaining++ {
		g, c := carvedGrid(t, 3, 4, false, false, int64(remaining))
		if err := c.RemoveAdditionalWalls(remaining); err != nil {
			t.Fatalf("remaining=%d: %v", remaining, err)
		}
		if got := len(g.AllWalls()); got != remaining {
			t.Errorf("remaining=%d: %d walls stand", remaining, got)
		}
		if !g.Connected() {
			t.Errorf("remaining=%d: not connected", remaining)
		}
	}
}

func TestCarver_RemoveAdditionalWalls_Errors(t *testing.T) {
	g, c := carvedGrid(t, 3, 4, false, false, 1)
	before := g.OpenCount()

	if err := c.RemoveAdditionalWalls(7); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("remaining above max: expected ErrInvalidArgument, got %v", err)
	}
	if err := c.RemoveAdditionalWalls(-1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative remaining: expected ErrInvalidArgument, got %v", err)
	}
	if g.OpenCount() != before {
		t.Error("rejected call mutated the grid")
	}

	_, perfect := carvedGrid(t, 3, 4, false, true, 1)
	if err := perfect.RemoveAdditionalWalls(2); !errors.Is(err, ErrInvalidState) {
		t.Errorf("perfect maze: expected ErrInvalidState, got %v", err)
	}

	fresh, _ := NewGrid(3, 4, false)
	uncarved := NewCarver(fresh, false, newSource(1), nil)
	if err := uncarved.RemoveAdditionalWalls(2); !errors.Is(err, ErrInvalidState) {
		t.Errorf("uncarved maze: expected ErrInvalidState, got %v", err)
	}
}

func TestCarver_RemoveWrappingWalls(t *testing.T) {
	for k := 0; k <= 7; k++ {
		g, c := carvedGrid(t, 3, 4, true, false, int64(k+10))
		if wrapCount(g) != 0 {
			t.Fatal("imperfect carve should not open wrap passages")
		}
		if err := c.RemoveWrappingWalls(k); err != nil {
			t.Fatalf("k=%d: %v", k, err)
		}
		if got := wrapCount(g); got != k {
			t.Errorf("k=%d: %d wrap passages open", k, got)
		}
	}
}

func TestCarver_RemoveWrappingWalls_Split(t *testing.T) {
	g, c := carvedGrid(t, 4, 4, true, false, 5)
	if err := c.RemoveWrappingWalls(5); err != nil {
		t.Fatal(err)
	}
	rows := len(g.WrapEdges(RowWrap)) - len(g.closedWrapEdges(RowWrap))
	cols := len(g.WrapEdges(ColWrap)) - len(g.closedWrapEdges(ColWrap))
	if rows != 2 || cols != 3 {
		t.Errorf("split: got %d row and %d column wraps, want 2 and 3", rows, cols)
	}
}

func TestCarver_RemoveWrappingWalls_Errors(t *testing.T) {
	_, flat := carvedGrid(t, 3, 4, false, false, 1)
	if err := flat.RemoveWrappingWalls(1); !errors.Is(err, ErrInvalidState) {
		t.Errorf("non-wrapping: expected ErrInvalidState, got %v", err)
	}

	_, perfect := carvedGrid(t, 3, 4, true, true, 1)
	if err := perfect.RemoveWrappingWalls(1); !errors.Is(err, ErrInvalidState) {
		t.Errorf("perfect: expected ErrInvalidState, got %v", err)
	}

	g, c := carvedGrid(t, 3, 4, true, false, 1)
	before := g.OpenCount()
	if err := c.RemoveWrappingWalls(8); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("too many: expected ErrInvalidArgument, got %v", err)
	}
	if g.OpenCount() != before {
		t.Error("rejected call mutated the grid")
	}
}
