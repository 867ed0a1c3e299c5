// Package effects implements centralized state mutation via the Apply function.
// Every effect type is one atomic operation. No logic in effects.
package effects

import (
	"github.com/nathoo/cavern/engine/state"
	"github.com/nathoo/cavern/types"
)

// Context identifies who the effects apply to.
type Context struct {
	Player int // index of the acting player
}

// Apply applies a list of effects to the game state, mutating it.
// Returns events emitted and output text collected.
func Apply(g *state.Game, effects []types.Effect, ctx Context) ([]types.Event, []string) {
	var events []types.Event
	var output []string
	p := &g.Players[ctx.Player]

	for _, eff := range effects {
		switch eff.Type {
		case "say":
			text, _ := eff.Params["text"].(string)
			g.Message = text
			output = append(output, text)

		case "move_player":
			room := toInt(eff.Params["room"])
			g.Refresh.Put(p.Room)
			g.Refresh.Put(room)
			p.Room = room
			g.Maze.Room(room).Visited = true
			for _, id := range toInts(eff.Params["tunnels"]) {
				g.Maze.Room(id).Visited = true
				if !g.Explored.Has(id) {
					g.Explored.Put(id)
					g.Refresh.Put(id)
				}
			}
			events = append(events, types.Event{
				Type: "room_entered",
				Data: map[string]any{"player": p.Name, "room": room},
			})

		case "relocate_player":
			room := toInt(eff.Params["room"])
			g.Refresh.Put(p.Room)
			g.Refresh.Put(room)
			from := p.Room
			p.Room = room
			g.Maze.Room(room).Visited = true
			events = append(events, types.Event{
				Type: "player_relocated",
				Data: map[string]any{"player": p.Name, "from": from, "room": room},
			})

		case "kill_player":
			cause, _ := eff.Params["cause"].(string)
			p.Dead = true
			events = append(events, types.Event{
				Type: "player_died",
				Data: map[string]any{"player": p.Name, "cause": cause, "room": p.Room},
			})

		case "player_won":
			cause, _ := eff.Params["cause"].(string)
			p.Won = true
			events = append(events, types.Event{
				Type: "player_won",
				Data: map[string]any{"player": p.Name, "cause": cause},
			})

		case "spend_arrow":
			if p.Arrows > 0 {
				p.Arrows--
			}
			events = append(events, types.Event{
				Type: "arrow_spent",
				Data: map[string]any{"player": p.Name, "arrows": p.Arrows},
			})

		case "collect_gold":
			amount := toInt(eff.Params["amount"])
			g.Maze.Room(p.Room).Features[types.Gold] = false
			g.Refresh.Put(p.Room)
			p.Gold += amount
			events = append(events, types.Event{
				Type: "gold_collected",
				Data: map[string]any{"player": p.Name, "amount": amount, "gold": p.Gold},
			})

		case "steal_gold":
			keep := toInt(eff.Params["keep_percent"])
			before := p.Gold
			p.Gold = p.Gold * keep / 100
			events = append(events, types.Event{
				Type: "gold_stolen",
				Data: map[string]any{"player": p.Name, "stolen": before - p.Gold, "gold": p.Gold},
			})

		case "end_turn":
			g.Active = state.NextPlayer(g)
			events = append(events, types.Event{
				Type: "turn_passed",
				Data: map[string]any{"player": g.Players[g.Active].Name},
			})
		}
	}

	return events, output
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case int64:
		return int(n)
	default:
		return 0
	}
}

func toInts(v any) []int {
	ids, _ := v.([]int)
	return ids
}
