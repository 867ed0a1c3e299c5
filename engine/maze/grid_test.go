package maze

import (
	"errors"
	"testing"

	"github.com/nathoo/cavern/types"
)

func TestNewGrid_RejectsEmpty(t *testing.T) {
	tests := []struct{ rows, cols int }{{0, 4}, {3, 0}, {-1, -1}}
	for _, tt := range tests {
		if _, err := NewGrid(tt.rows, tt.cols, false); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("NewGrid(%d, %d): expected ErrInvalidArgument, got %v", tt.rows, tt.cols, err)
		}
	}
}

func TestGrid_OpenIsSymmetric(t *testing.T) {
	g, _ := NewGrid(3, 4, false)
	g.Open(5, 1)

	if !g.IsOpen(1, 5) || !g.IsOpen(5, 1) {
		t.Error("passage should be open in both directions")
	}
	if g.OpenCount() != 1 {
		t.Errorf("open count: got %d, want 1", g.OpenCount())
	}
	g.Open(3, 3)
	if g.OpenCount() != 1 {
		t.Error("opening a cell to itself should be ignored")
	}
}

func TestGrid_EdgeCounts(t *testing.T) {
	tests := []struct {
		rows, cols int
		internal   int
		removable  int
	}{
		{3, 4, 17, 6},
		{1, 5, 4, 0},
		{5, 5, 40, 16},
		{2, 2, 4, 1},
	}
	for _, tt := range tests {
		g, _ := NewGrid(tt.rows, tt.cols, false)
		if got := len(g.InternalEdges()); got != tt.internal {
			t.Errorf("%dx%d internal edges: got %d, want %d", tt.rows, tt.cols, got, tt.internal)
		}
		if got := g.MaxInternalEdges(); got != tt.internal {
			t.Errorf("%dx%d MaxInternalEdges: got %d, want %d", tt.rows, tt.cols, got, tt.internal)
		}
		if got := g.MaxRemovableWalls(); got != tt.removable {
			t.Errorf("%dx%d MaxRemovableWalls: got %d, want %d", tt.rows, tt.cols, got, tt.removable)
		}
	}
}

func TestGrid_WrapEdges(t *testing.T) {
	g, _ := NewGrid(3, 4, true)

	rows := g.WrapEdges(RowWrap)
	want := []Wall{{0, 3}, {4, 7}, {8, 11}}
	if len(rows) != len(want) {
		t.Fatalf("row wraps: got %v, want %v", rows, want)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row wrap %d: got %v, want %v", i, rows[i], want[i])
		}
	}

	cols := g.WrapEdges(ColWrap)
	if len(cols) != 4 || cols[0] != (Wall{0, 8}) || cols[3] != (Wall{3, 11}) {
		t.Errorf("column wraps: got %v", cols)
	}

	// Two columns: the wrap edge would duplicate the internal one.
	narrow, _ := NewGrid(3, 2, true)
	if got := narrow.WrapEdges(RowWrap); got != nil {
		t.Errorf("2-column grid should have no row wraps, got %v", got)
	}
}

func TestGrid_Step(t *testing.T) {
	flat, _ := NewGrid(3, 4, false)
	round, _ := NewGrid(3, 4, true)

	tests := []struct {
		g    *Grid
		id   int
		d    types.Direction
		want int
		ok   bool
	}{
		{flat, 5, types.North, 1, true},
		{flat, 5, types.South, 9, true},
		{flat, 5, types.East, 6, true},
		{flat, 5, types.West, 4, true},
		{flat, 0, types.North, 0, false},
		{flat, 3, types.East, 0, false},
		{round, 0, types.North, 8, true},
		{round, 3, types.East, 0, true},
		{round, 8, types.South, 0, true},
		{round, 4, types.West, 7, true},
	}
	for _, tt := range tests {
		got, ok := tt.g.Step(tt.id, tt.d)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("Step(%d, %s) wrapping=%v: got (%d, %v), want (%d, %v)",
				tt.id, tt.d, tt.g.Wrapping, got, ok, tt.want, tt.ok)
		}
	}
}

func TestGrid_ExitsThroughWrap(t *testing.T) {
	g, _ := NewGrid(3, 4, true)
	g.Open(0, 3)
	g.Open(0, 1)

	exits := g.Exits(0)
	if exits[types.West] != 3 {
		t.Errorf("west exit of 0: got %d, want 3", exits[types.West])
	}
	if exits[types.East] != 1 {
		t.Errorf("east exit of 0: got %d, want 1", exits[types.East])
	}
	if exits[types.North] != -1 || exits[types.South] != -1 {
		t.Errorf("north/south of 0 should be closed, got %v", exits)
	}
	if g.Exits(3)[types.East] != 0 {
		t.Errorf("east exit of 3 should wrap to 0")
	}
	if g.Degree(0) != 2 {
		t.Errorf("degree of 0: got %d, want 2", g.Degree(0))
	}
}

func TestGrid_ExitsNarrowWrap(t *testing.T) {
	g, _ := NewGrid(3, 2, true)
	g.Open(0, 1)

	exits := g.Exits(0)
	if exits[types.East] != 1 || exits[types.West] != -1 {
		t.Errorf("2-column passage should be reported east only, got %v", exits)
	}
}

func TestGrid_DirectionBetween(t *testing.T) {
	g, _ := NewGrid(3, 4, true)

	if d, ok := g.DirectionBetween(0, 3); !ok || d != types.West {
		t.Errorf("0 to 3: got (%s, %v), want west", d, ok)
	}
	if d, ok := g.DirectionBetween(3, 0); !ok || d != types.East {
		t.Errorf("3 to 0: got (%s, %v), want east", d, ok)
	}
	if _, ok := g.DirectionBetween(0, 5); ok {
		t.Error("0 and 5 are not neighbours")
	}
}

func TestGrid_AllWallsSorted(t *testing.T) {
	g, _ := NewGrid(2, 2, false)
	g.Open(0, 1)

	walls := g.AllWalls()
	want := []Wall{{0, 2}, {1, 3}, {2, 3}}
	if len(walls) != len(want) {
		t.Fatalf("walls: got %v, want %v", walls, want)
	}
	for i := range want {
		if walls[i] != want[i] {
			t.Errorf("wall %d: got %v, want %v", i, walls[i], want[i])
		}
	}
}

func TestGrid_Connected(t *testing.T) {
	g, _ := NewGrid(2, 2, false)
	g.Open(0, 1)
	g.Open(1, 3)
	if g.Connected() {
		t.Error("cell 2 is isolated, grid should not be connected")
	}
	g.Open(2, 3)
	if !g.Connected() {
		t.Error("grid should be connected")
	}
}
