package rules

import (
	"fmt"

	"github.com/nathoo/cavern/engine/maze"
	"github.com/nathoo/cavern/engine/state"
	"github.com/nathoo/cavern/types"
)

const (
	goldPerCave      = 100
	thiefKeepPercent = 90
)

// Gold is the treasure run: players pick up gold on the way to a goal cave
// while thieves skim a share of what they carry. Reaching the goal wins.
type Gold struct{}

func (Gold) Name() string { return "gold" }
func (Gold) Arrows() bool { return false }
func (Gold) Goal() bool   { return true }

// Placements spreads gold and thieves by percentage, never in the same cave.
func (Gold) Placements(percent map[types.FeatureKind]int) []maze.Placement {
	return []maze.Placement{
		{Kind: types.Gold, Percent: percent[types.Gold], Exclusive: []types.FeatureKind{types.Thief}},
		{Kind: types.Thief, Percent: percent[types.Thief], Exclusive: []types.FeatureKind{types.Gold}},
	}
}

// Enter collects gold, lets a thief rob the player and checks the goal.
func (Gold) Enter(g *state.Game, room int, _ Source) []types.Effect {
	f := g.Maze.Room(room).Features

	var effs []types.Effect
	if f.Has(types.Gold) {
		effs = append(effs,
			say(fmt.Sprintf("You picked up %d gold", goldPerCave)),
			types.Effect{Type: "collect_gold", Params: map[string]any{"amount": goldPerCave}},
		)
	}
	if f.Has(types.Thief) {
		effs = append(effs,
			say(fmt.Sprintf("A thief robbed you, you keep %d%% of your gold", thiefKeepPercent)),
			types.Effect{Type: "steal_gold", Params: map[string]any{"keep_percent": thiefKeepPercent}},
		)
	}
	if room == g.Goal {
		effs = append(effs, say("You reached the goal, you won!!!"), win("goal"))
	}
	return effs
}
