package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/nathoo/cavern/engine/maze"
	"github.com/nathoo/cavern/engine/state"
	"github.com/nathoo/cavern/types"
)

// Shoot fires an arrow from the active player's cave in direction d across
// distance cave hops. Tunnels on the way bend its flight and do not count as
// hops. A distance of 0 lands in the shooter's own cave and always misses.
//
// Every shot costs an arrow. Hitting the Wumpus wins the game; a miss with
// the last arrow kills the shooter.
func (e *Engine) Shoot(d types.Direction, distance int) (types.Result, error) {
	g := e.State
	if state.Over(g) {
		return types.Result{}, ErrGameOver
	}
	if !e.Rules.Arrows() {
		return types.Result{}, ErrUnsupported
	}
	if distance < 0 {
		return types.Result{}, fmt.Errorf("%w: %d", ErrNegativeDistance, distance)
	}
	p := state.ActivePlayer(g)
	if p.Arrows <= 0 {
		return types.Result{}, ErrNoArrows
	}

	target, err := g.Maze.FindCaveAtDistance(p.Room, d, distance+1)
	if err != nil {
		return types.Result{}, err
	}
	hit := target != maze.NoRoom && g.Maze.Room(target).Features.Has(types.Wumpus)

	effs := []types.Effect{{Type: "spend_arrow"}}
	switch {
	case hit:
		effs = append(effs,
			types.Effect{Type: "say", Params: map[string]any{"text": "You successfully destroyed the Wumpus, you won!!!"}},
			types.Effect{Type: "player_won", Params: map[string]any{"cause": "arrow"}},
		)
	case p.Arrows == 1:
		effs = append(effs,
			types.Effect{Type: "say", Params: map[string]any{"text": "Your arrow was unsuccessful. Your arrows are over, you lost"}},
			types.Effect{Type: "kill_player", Params: map[string]any{"cause": "arrows"}},
		)
	default:
		effs = append(effs,
			types.Effect{Type: "say", Params: map[string]any{"text": "Your arrow was unsuccessful."}},
		)
	}

	g.Refresh = mapset.New[int]()
	e.log.WithFields(logrus.Fields{
		"player": p.Name, "direction": d.String(), "distance": distance, "target": target, "hit": hit,
	}).Debug("arrow fired")

	result := e.apply(effs)
	merge(&result, e.endTurn())
	result.Refresh = state.RefreshRooms(g)
	return result, nil
}
