package state

import (
	"errors"
	"testing"

	"github.com/nathoo/cavern/engine/maze"
	"github.com/nathoo/cavern/types"
)

// testGame builds a 3x4 maze whose caves are 0,1,3,4,5,6,8,9 and whose
// tunnels are 2,7,10,11, with a Wumpus in cave 0 and a pit in cave 8.
func testGame(t *testing.T, players ...Player) *Game {
	t.Helper()
	g, err := maze.NewGrid(3, 4, false)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range [][2]int{
		{0, 4}, {1, 2}, {2, 6}, {3, 7}, {4, 5}, {4, 8},
		{5, 6}, {5, 9}, {6, 10}, {7, 11}, {10, 11},
	} {
		g.Open(e[0], e[1])
	}
	m, err := maze.FromGrid(g, true)
	if err != nil {
		t.Fatal(err)
	}
	m.Room(0).Features[types.Wumpus] = true
	m.Room(8).Features[types.Pit] = true

	game := New(m, "wumpus")
	game.Players = players
	return game
}

func TestNew(t *testing.T) {
	g := testGame(t)
	if g.Goal != maze.NoRoom {
		t.Errorf("goal: got %d, want NoRoom", g.Goal)
	}
	if g.Refresh.Size() != 0 || g.Explored.Size() != 0 {
		t.Error("new game should start with empty sets")
	}
	if g.Rules != "wumpus" {
		t.Errorf("rules: got %q", g.Rules)
	}
}

func TestOver(t *testing.T) {
	tests := []struct {
		name    string
		players []Player
		quit    bool
		want    bool
	}{
		{"playing", []Player{{Name: "a"}, {Name: "b"}}, false, false},
		{"one dead", []Player{{Name: "a", Dead: true}, {Name: "b"}}, false, false},
		{"all dead", []Player{{Name: "a", Dead: true}, {Name: "b", Dead: true}}, false, true},
		{"won", []Player{{Name: "a"}, {Name: "b", Won: true}}, false, true},
		{"quit", []Player{{Name: "a"}}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGame(t, tt.players...)
			g.Quit = tt.quit
			if got := Over(g); got != tt.want {
				t.Errorf("Over: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextPlayer(t *testing.T) {
	tests := []struct {
		name    string
		players []Player
		active  int
		want    int
	}{
		{"next in line", []Player{{}, {}, {}}, 0, 1},
		{"wraps", []Player{{}, {}, {}}, 2, 0},
		{"skips dead", []Player{{}, {Dead: true}, {}}, 0, 2},
		{"only survivor", []Player{{}, {Dead: true}}, 0, 0},
		{"active dead", []Player{{Dead: true}, {}}, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGame(t, tt.players...)
			g.Active = tt.active
			if got := NextPlayer(g); got != tt.want {
				t.Errorf("NextPlayer: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidMoves(t *testing.T) {
	g := testGame(t)

	tests := []struct {
		room int
		want []types.Direction
	}{
		{4, []types.Direction{types.North, types.South, types.East}},
		{3, []types.Direction{types.South}},
		{6, []types.Direction{types.North, types.South, types.West}},
	}
	for _, tt := range tests {
		got := ValidMoves(g, tt.room)
		if len(got) != len(tt.want) {
			t.Errorf("room %d: got %v, want %v", tt.room, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("room %d: got %v, want %v", tt.room, got, tt.want)
				break
			}
		}
	}
}

func TestRoomFeatures_RequiresVisit(t *testing.T) {
	g := testGame(t)

	if _, err := RoomFeatures(g, 0); !errors.Is(err, ErrNotVisited) {
		t.Errorf("expected ErrNotVisited, got %v", err)
	}

	g.Maze.Room(0).Visited = true
	f, err := RoomFeatures(g, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !f.Has(types.Wumpus) {
		t.Error("cave 0 should hold the Wumpus")
	}

	if _, err := RoomFeatures(g, 42); err == nil {
		t.Error("expected error for a room outside the maze")
	}
}

func TestRoomSmells(t *testing.T) {
	g := testGame(t)
	for _, id := range []int{4, 5, 7} {
		g.Maze.Room(id).Visited = true
	}

	smells, err := RoomSmells(g, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(smells) != 2 {
		t.Errorf("cave 4 is next to the Wumpus and a pit: got %v", smells)
	}

	smells, err = RoomSmells(g, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(smells) != 0 {
		t.Errorf("cave 5: got %v, want none", smells)
	}

	smells, err = RoomSmells(g, 7)
	if err != nil {
		t.Fatal(err)
	}
	if smells != nil {
		t.Errorf("tunnels sense nothing: got %v", smells)
	}

	if _, err := RoomSmells(g, 9); !errors.Is(err, ErrNotVisited) {
		t.Errorf("expected ErrNotVisited, got %v", err)
	}
}

func TestOccupants(t *testing.T) {
	g := testGame(t,
		Player{Name: "a", Room: 4},
		Player{Name: "b", Room: 5},
		Player{Name: "c", Room: 4},
		Player{Name: "d", Room: 4, Dead: true},
	)

	got := Occupants(g, 4)
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("occupants of 4: got %v, want [0 2]", got)
	}
	if got := Occupants(g, 9); len(got) != 0 {
		t.Errorf("occupants of 9: got %v, want none", got)
	}
}

func TestRefreshRooms_Sorted(t *testing.T) {
	g := testGame(t)
	for _, id := range []int{9, 2, 5, 2} {
		g.Refresh.Put(id)
	}

	got := RefreshRooms(g)
	want := []int{2, 5, 9}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestInfo(t *testing.T) {
	g := testGame(t, Player{Name: "alice", Room: 4, Arrows: 3, Gold: 50})

	info := Info(g, 0)
	want := types.PlayerInfo{Name: "alice", Room: 4, Cave: "C3", Gold: 50, Arrows: 3}
	if info != want {
		t.Errorf("got %+v, want %+v", info, want)
	}
}
