// Package rules holds the rule sets a game can be played under. A rule set
// decides which features a maze carries and what happens when a player
// enters a cave; the engine applies the effects it returns.
package rules

import (
	"fmt"

	"github.com/nathoo/cavern/engine/maze"
	"github.com/nathoo/cavern/engine/state"
	"github.com/nathoo/cavern/types"
)

// Source is the random source rules draw from. engine.RNG satisfies it.
type Source interface {
	Intn(n int) int
	Bool() bool
}

// RuleSet is the capability table of one game variant.
type RuleSet interface {
	// Name is the config name of the rule set.
	Name() string
	// Placements turns configured percentages into feature placements.
	Placements(percent map[types.FeatureKind]int) []maze.Placement
	// Enter returns the effects of the active player arriving in room.
	// A relocate_player effect asks the engine to enter its room next.
	Enter(g *state.Game, room int, src Source) []types.Effect
	// Arrows reports whether players may shoot.
	Arrows() bool
	// Goal reports whether the game needs a goal cave.
	Goal() bool
}

// ForName returns the rule set registered under name.
func ForName(name string) (RuleSet, error) {
	switch name {
	case "", "wumpus":
		return Wumpus{}, nil
	case "gold":
		return Gold{}, nil
	}
	return nil, fmt.Errorf("unknown rules %q (want \"wumpus\" or \"gold\")", name)
}

// Safe reports whether a cave holds nothing that acts on a player entering
// it. Players start and the goal lies only in safe caves.
func Safe(f types.FeatureSet) bool {
	return !f.Has(types.Wumpus) && !f.Has(types.Bat) && !f.Has(types.Pit) && !f.Has(types.Thief)
}

func say(text string) types.Effect {
	return types.Effect{Type: "say", Params: map[string]any{"text": text}}
}

func kill(cause string) types.Effect {
	return types.Effect{Type: "kill_player", Params: map[string]any{"cause": cause}}
}

func win(cause string) types.Effect {
	return types.Effect{Type: "player_won", Params: map[string]any{"cause": cause}}
}
