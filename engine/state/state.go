// Package state holds the mutable game state and the read-only queries
// renderers and controllers use between turns.
package state

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/nathoo/cavern/engine/maze"
	"github.com/nathoo/cavern/types"
)

// ErrNotVisited is returned when asking for the contents of a room the
// players have not seen yet.
var ErrNotVisited = errors.New("room not visited")

// Player is one participant. Players are owned by the Game and mutated only
// through effects.
type Player struct {
	Name   string
	Room   int
	Arrows int
	Gold   int
	Dead   bool
	Won    bool
}

// Game is the complete mutable state of a session.
type Game struct {
	Maze    *maze.Maze
	Rules   string
	Players []Player
	Active  int
	Goal    int // goal cave of the gold rules, maze.NoRoom otherwise
	Quit    bool

	// Message is the latest notification for the players.
	Message string
	// Refresh holds the room ids whose display changed during the last
	// command.
	Refresh mapset.Set[int]
	// Explored holds the tunnels already revealed to the players.
	Explored mapset.Set[int]

	TurnCount  int
	CommandLog []string
}

// New creates a game over a finished maze. Players are placed by the engine.
func New(m *maze.Maze, rules string) *Game {
	return &Game{
		Maze:     m,
		Rules:    rules,
		Goal:     maze.NoRoom,
		Refresh:  mapset.New[int](),
		Explored: mapset.New[int](),
	}
}

// ActivePlayer returns the player whose turn it is.
func ActivePlayer(g *Game) *Player {
	return &g.Players[g.Active]
}

// Won reports whether any player has won.
func Won(g *Game) bool {
	for _, p := range g.Players {
		if p.Won {
			return true
		}
	}
	return false
}

// AllDead reports whether no player is left alive.
func AllDead(g *Game) bool {
	for _, p := range g.Players {
		if !p.Dead {
			return false
		}
	}
	return true
}

// Over reports whether play has ended: a win, every player dead, or a quit.
func Over(g *Game) bool {
	return g.Quit || Won(g) || AllDead(g)
}

// NextPlayer returns the index of the next living player after the active
// one, wrapping around. It returns the active index when nobody else lives.
func NextPlayer(g *Game) int {
	n := len(g.Players)
	for step := 1; step <= n; step++ {
		i := (g.Active + step) % n
		if !g.Players[i].Dead {
			return i
		}
	}
	return g.Active
}

// ValidMoves returns the directions leading out of a cave, in direction
// order.
func ValidMoves(g *Game, room int) []types.Direction {
	var dirs []types.Direction
	r := g.Maze.Room(room)
	for _, d := range types.Directions {
		if r.Adjacent[d] != maze.NoRoom {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

func checkVisited(g *Game, room int) (*maze.Room, error) {
	if room < 0 || room >= len(g.Maze.Rooms) {
		return nil, fmt.Errorf("room %d does not exist", room)
	}
	r := g.Maze.Room(room)
	if !r.Visited {
		return nil, fmt.Errorf("room %d: %w", room, ErrNotVisited)
	}
	return r, nil
}

// RoomFeatures returns the features of a visited room.
func RoomFeatures(g *Game, room int) (types.FeatureSet, error) {
	r, err := checkVisited(g, room)
	if err != nil {
		return types.FeatureSet{}, err
	}
	return r.Features, nil
}

// RoomSmells returns the warnings sensed in a visited room. Tunnels sense
// nothing.
func RoomSmells(g *Game, room int) ([]types.Smell, error) {
	r, err := checkVisited(g, room)
	if err != nil {
		return nil, err
	}
	if !r.IsCave() {
		return nil, nil
	}
	return g.Maze.Smells(room), nil
}

// Occupants returns the indexes of the living players standing in a room.
func Occupants(g *Game, room int) []int {
	var ids []int
	for i, p := range g.Players {
		if p.Room == room && !p.Dead {
			ids = append(ids, i)
		}
	}
	return ids
}

// RefreshRooms returns the rooms changed by the last command, sorted.
func RefreshRooms(g *Game) []int {
	ids := make([]int, 0, g.Refresh.Size())
	g.Refresh.Each(func(id int) {
		ids = append(ids, id)
	})
	sort.Ints(ids)
	return ids
}

// Info returns a snapshot of player i.
func Info(g *Game, i int) types.PlayerInfo {
	p := g.Players[i]
	return types.PlayerInfo{
		Name:   p.Name,
		Room:   p.Room,
		Cave:   g.Maze.Room(p.Room).Label,
		Gold:   p.Gold,
		Arrows: p.Arrows,
		Dead:   p.Dead,
		Won:    p.Won,
	}
}
