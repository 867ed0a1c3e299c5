package maze

import (
	"fmt"

	"github.com/nathoo/cavern/types"
)

// NoRoom marks a missing neighbour.
const NoRoom = -1

// Kind tells caves from tunnels.
type Kind int

const (
	KindCave Kind = iota
	KindTunnel
)

func (k Kind) String() string {
	if k == KindTunnel {
		return "tunnel"
	}
	return "cave"
}

// Room is one cell of the classified maze. Rooms live in an arena indexed by
// cell id and refer to each other by index.
//
// A tunnel has exactly two exits and no features; everything else is a cave.
// Adjacent and Tunnels are only populated for caves: Adjacent holds the cave
// reached in each direction once tunnel chains are folded away, and Tunnels
// the tunnel ids crossed on the way.
type Room struct {
	ID       int
	Kind     Kind
	Label    string
	Exits    [4]int
	Visited  bool
	Features types.FeatureSet
	Adjacent [4]int
	Tunnels  [4][]int
}

// IsCave reports whether the room is a cave.
func (r *Room) IsCave() bool {
	return r.Kind == KindCave
}

// Classify turns the carved grid into rooms. Degree-2 cells become tunnels
// and all others caves; then every cave direction that leads into a tunnel
// is folded through the chain to the cave at its far end.
func Classify(g *Grid) ([]Room, error) {
	n := g.Size()
	rooms := make([]Room, n)
	caves := 0
	for id := 0; id < n; id++ {
		r := Room{
			ID:       id,
			Exits:    g.Exits(id),
			Adjacent: [4]int{NoRoom, NoRoom, NoRoom, NoRoom},
		}
		degree := 0
		for _, e := range r.Exits {
			if e != NoRoom {
				degree++
			}
		}
		if degree == 2 {
			r.Kind = KindTunnel
		} else {
			r.Kind = KindCave
			r.Label = fmt.Sprintf("C%d", caves)
			caves++
		}
		rooms[id] = r
	}

	for id := range rooms {
		if !rooms[id].IsCave() {
			continue
		}
		for _, d := range types.Directions {
			first := rooms[id].Exits[d]
			if first == NoRoom {
				continue
			}
			cave, tunnels, err := fold(rooms, first, d)
			if err != nil {
				return nil, fmt.Errorf("folding %s of room %d: %w", d, id, err)
			}
			rooms[id].Adjacent[d] = cave
			rooms[id].Tunnels[d] = tunnels
		}
	}
	return rooms, nil
}

// fold follows a tunnel chain starting at room cur, entered while travelling
// in direction d, until it reaches a cave. It returns the cave, the tunnels
// crossed in order, and the direction of travel on arrival.
func fold(rooms []Room, cur int, d types.Direction) (int, []int, error) {
	cave, tunnels, _, err := walk(rooms, cur, d, true)
	return cave, tunnels, err
}

func walk(rooms []Room, cur int, d types.Direction, collect bool) (int, []int, types.Direction, error) {
	var tunnels []int
	for steps := 0; !rooms[cur].IsCave(); steps++ {
		if steps > len(rooms) {
			return NoRoom, nil, d, fmt.Errorf("%w: tunnel chain from room %d never reaches a cave", ErrMalformedMaze, cur)
		}
		if collect {
			tunnels = append(tunnels, cur)
		}
		out, ok := otherExit(&rooms[cur], d.Inverse())
		if !ok {
			return NoRoom, nil, d, fmt.Errorf("%w: tunnel %d has no way out", ErrMalformedMaze, cur)
		}
		d = out
		cur = rooms[cur].Exits[out]
	}
	return cur, tunnels, d, nil
}

// otherExit returns the exit of a tunnel that is not the one it was entered
// through.
func otherExit(r *Room, incoming types.Direction) (types.Direction, bool) {
	for _, d := range types.Directions {
		if d != incoming && r.Exits[d] != NoRoom {
			return d, true
		}
	}
	return 0, false
}

// FindCaveAtDistance returns the distance-th cave on the line leaving cave
// `from` in direction d, counting `from` itself as 1. Tunnels bend the path
// and are not counted; at each cave the walk continues in its current
// direction of travel. It returns NoRoom if a wall stops the walk early.
// A distance of 1 or less is the starting cave.
func FindCaveAtDistance(rooms []Room, from int, d types.Direction, distance int) (int, error) {
	cur := from
	for hops := distance - 1; hops > 0; hops-- {
		next := rooms[cur].Exits[d]
		if next == NoRoom {
			return NoRoom, nil
		}
		cave, _, dir, err := walk(rooms, next, d, false)
		if err != nil {
			return NoRoom, err
		}
		cur, d = cave, dir
	}
	return cur, nil
}
