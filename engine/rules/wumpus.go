package rules

import (
	"fmt"

	"github.com/nathoo/cavern/engine/maze"
	"github.com/nathoo/cavern/engine/state"
	"github.com/nathoo/cavern/types"
)

// Wumpus is the classic hunt: one Wumpus, bats that carry players off and
// bottomless pits. Players win by shooting the Wumpus.
type Wumpus struct{}

func (Wumpus) Name() string { return "wumpus" }
func (Wumpus) Arrows() bool { return true }
func (Wumpus) Goal() bool   { return false }

// Placements places the Wumpus once and bats and pits by percentage.
func (Wumpus) Placements(percent map[types.FeatureKind]int) []maze.Placement {
	return []maze.Placement{
		{Kind: types.Wumpus},
		{Kind: types.Bat, Percent: percent[types.Bat]},
		{Kind: types.Pit, Percent: percent[types.Pit]},
	}
}

// Enter resolves, in order: the Wumpus kills; bats carry the player to
// another cave half of the time; a pit kills unless the bats carried the
// player away first.
func (Wumpus) Enter(g *state.Game, room int, src Source) []types.Effect {
	f := g.Maze.Room(room).Features

	if f.Has(types.Wumpus) {
		return []types.Effect{say("You have come across the Wumpus, you lost"), kill("wumpus")}
	}

	var effs []types.Effect
	if f.Has(types.Bat) {
		caves := g.Maze.Caves()
		if src.Bool() && len(caves) > 1 {
			dest := room
			for dest == room {
				dest = caves[src.Intn(len(caves))]
			}
			return []types.Effect{
				say(fmt.Sprintf("Bats transported you to %s", g.Maze.Room(dest).Label)),
				{Type: "relocate_player", Params: map[string]any{"room": dest}},
			}
		}
		effs = append(effs, say("Bats seem lazy, they did not transport you"))
	}

	if f.Has(types.Pit) {
		effs = append(effs, say("You have fallen into a pit, you lost"), kill("pit"))
	}
	return effs
}
