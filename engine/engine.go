// Package engine provides the turn orchestrator that wires together maze
// generation, parsing, rules, effects, and events.
package engine

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/nathoo/cavern/engine/effects"
	"github.com/nathoo/cavern/engine/events"
	"github.com/nathoo/cavern/engine/maze"
	"github.com/nathoo/cavern/engine/parser"
	"github.com/nathoo/cavern/engine/rules"
	"github.com/nathoo/cavern/engine/state"
	"github.com/nathoo/cavern/types"
)

// Usage errors. None of them changes the game state.
var (
	ErrNoPassage        = errors.New("no passage in that direction")
	ErrNotVisited       = state.ErrNotVisited
	ErrNoArrows         = errors.New("no arrows left")
	ErrGameOver         = errors.New("game is over")
	ErrNegativeDistance = errors.New("distance cannot be negative")
	ErrUnsupported      = errors.New("not part of this game")
)

// Engine holds the maze, the players and the random source of one session.
type Engine struct {
	State *state.Game
	Rules rules.RuleSet
	RNG   rules.Source // *RNG unless replaced for tests

	log       logrus.FieldLogger
	observers []events.Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sends construction steps and game events to l at debug level.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

// WithObserver registers an observer for every event the engine emits.
func WithObserver(o events.Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

// New generates the maze for cfg and places the players. One RNG seeded
// from cfg.Maze.Seed drives carving, placement, starts and play.
func New(cfg types.GameConfig, opts ...Option) (*Engine, error) {
	rs, err := rules.ForName(cfg.Rules)
	if err != nil {
		return nil, err
	}
	if len(cfg.Players) == 0 {
		return nil, fmt.Errorf("%w: at least one player is required", maze.ErrInvalidArgument)
	}

	e := &Engine{Rules: rs, RNG: NewRNG(cfg.Maze.Seed)}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = discardLogger()
	}
	e.observers = append(e.observers, events.LogObserver{Log: e.log})

	m, err := maze.Generate(cfg.Maze, rs.Placements(cfg.Percent), e.RNG, e.log)
	if err != nil {
		return nil, err
	}
	e.State = state.New(m, rs.Name())

	if err := e.placePlayers(cfg.Players); err != nil {
		return nil, err
	}
	e.log.WithFields(logrus.Fields{
		"rules": rs.Name(), "players": len(cfg.Players), "goal": e.State.Goal,
	}).Debug("game started")
	return e, nil
}

// placePlayers puts every player on a distinct safe cave, then picks the
// goal among the remaining safe caves when the rules need one.
func (e *Engine) placePlayers(players []types.PlayerConfig) error {
	g := e.State
	caves := g.Maze.Caves()

	safe := 0
	for _, id := range caves {
		if rules.Safe(g.Maze.Room(id).Features) {
			safe++
		}
	}
	need := len(players)
	if e.Rules.Goal() {
		need++
	}
	if safe < need {
		return fmt.Errorf("%w: %d safe caves for %d players", maze.ErrInvalidArgument, safe, len(players))
	}

	taken := mapset.New[int]()
	pick := func() int {
		for {
			id := caves[e.RNG.Intn(len(caves))]
			if rules.Safe(g.Maze.Room(id).Features) && !taken.Has(id) {
				taken.Put(id)
				return id
			}
		}
	}

	for _, pc := range players {
		room := pick()
		g.Maze.Room(room).Visited = true
		g.Players = append(g.Players, state.Player{Name: pc.Name, Room: room, Arrows: pc.Arrows})
	}
	if e.Rules.Goal() {
		g.Goal = pick()
	}

	for i := range g.Players {
		g.Active = i
		e.enter(g.Players[i].Room)
	}
	g.Active = 0
	g.Message = ""
	g.Refresh = mapset.New[int]()
	return nil
}

// Move walks the active player to the next cave in direction d, through
// any tunnels in between, and resolves what happens there.
func (e *Engine) Move(d types.Direction) (types.Result, error) {
	g := e.State
	if state.Over(g) {
		return types.Result{}, ErrGameOver
	}
	p := state.ActivePlayer(g)
	from := g.Maze.Room(p.Room)
	dest := from.Adjacent[d]
	if dest == maze.NoRoom {
		return types.Result{}, fmt.Errorf("%w: %s from %s", ErrNoPassage, d, from.Label)
	}

	g.Refresh = mapset.New[int]()
	result := e.apply([]types.Effect{{
		Type:   "move_player",
		Params: map[string]any{"room": dest, "tunnels": from.Tunnels[d]},
	}})
	merge(&result, e.enter(dest))
	merge(&result, e.endTurn())
	result.Refresh = state.RefreshRooms(g)
	return result, nil
}

// Quit ends the session.
func (e *Engine) Quit() types.Result {
	e.State.Quit = true
	return types.Result{Output: []string{"Goodbye."}}
}

// enter resolves the entry effects of the active player arriving in room.
// Bat relocations feed the next cave back in until a cave keeps the player.
func (e *Engine) enter(room int) types.Result {
	var result types.Result
	for {
		effs := e.Rules.Enter(e.State, room, e.RNG)
		merge(&result, e.apply(effs))
		next, ok := relocation(effs)
		if !ok {
			return result
		}
		room = next
	}
}

func relocation(effs []types.Effect) (int, bool) {
	for _, eff := range effs {
		if eff.Type == "relocate_player" {
			room, _ := eff.Params["room"].(int)
			return room, true
		}
	}
	return 0, false
}

// endTurn hands the turn to the next living player unless play has ended.
func (e *Engine) endTurn() types.Result {
	if state.Over(e.State) || len(e.State.Players) < 2 {
		return types.Result{}
	}
	return e.apply([]types.Effect{{Type: "end_turn"}})
}

// apply runs effects for the active player and dispatches their events.
func (e *Engine) apply(effs []types.Effect) types.Result {
	if len(effs) == 0 {
		return types.Result{}
	}
	evts, output := effects.Apply(e.State, effs, effects.Context{Player: e.State.Active})
	events.Dispatch(evts, e.observers)
	return types.Result{Effects: effs, Events: evts, Output: output}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func merge(dst *types.Result, src types.Result) {
	dst.Effects = append(dst.Effects, src.Effects...)
	dst.Events = append(dst.Events, src.Events...)
	dst.Output = append(dst.Output, src.Output...)
}

// Step processes one command line and returns the result. Usage errors
// become output; they never change state.
func (e *Engine) Step(input string) types.Result {
	var result types.Result
	g := e.State

	if state.Over(g) {
		result.Output = append(result.Output, "Game over. Use /quit to exit.")
		return result
	}

	cmd := parser.Parse(input)
	g.CommandLog = append(g.CommandLog, input)

	if cmd.Verb == "" {
		result.Output = append(result.Output, "What do you want to do?")
		return result
	}
	if cmd.Bad != "" {
		result.Output = append(result.Output, fmt.Sprintf("I don't understand %q.", cmd.Bad))
		return result
	}

	var err error
	switch cmd.Verb {
	case "move":
		if !cmd.HasDir {
			result.Output = append(result.Output, "Move where?")
			return result
		}
		result, err = e.Move(cmd.Direction)
	case "shoot":
		if !cmd.HasDir {
			result.Output = append(result.Output, "Shoot where?")
			return result
		}
		result, err = e.Shoot(cmd.Direction, cmd.Distance)
	case "look":
		result.Output = e.describe()
		return result
	case "help":
		result.Output = e.help()
		return result
	case "quit":
		return e.Quit()
	default:
		result.Output = append(result.Output, fmt.Sprintf("I don't know how to %s.", cmd.Verb))
		return result
	}

	if err != nil {
		result.Output = append(result.Output, usageMessage(err))
		return result
	}
	if !state.Over(g) {
		result.Output = append(result.Output, e.describe()...)
	}
	g.TurnCount++
	return result
}

func usageMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoPassage):
		return "You can't go that way."
	case errors.Is(err, ErrNoArrows):
		return "You have no arrows left."
	case errors.Is(err, ErrNegativeDistance):
		return "Distance cannot be negative."
	case errors.Is(err, ErrUnsupported):
		return "There are no arrows in this game."
	}
	return err.Error()
}

// describe reports where the active player stands and what they sense.
func (e *Engine) describe() []string {
	g := e.State
	p := state.ActivePlayer(g)
	r := g.Maze.Room(p.Room)

	out := []string{fmt.Sprintf("%s is in cave %s.", p.Name, r.Label)}
	for _, s := range g.Maze.Smells(p.Room) {
		switch s {
		case types.Stench:
			out = append(out, "You smell a terrible stench.")
		case types.Draft:
			out = append(out, "You feel a cold draft.")
		}
	}

	var dirs []string
	for _, d := range state.ValidMoves(g, p.Room) {
		dirs = append(dirs, d.String())
	}
	if len(dirs) > 0 {
		out = append(out, "Exits: "+strings.Join(dirs, ", ")+".")
	}
	if e.Rules.Arrows() {
		out = append(out, fmt.Sprintf("Arrows: %d.", p.Arrows))
	} else {
		out = append(out, fmt.Sprintf("Gold: %d.", p.Gold))
	}
	return out
}

func (e *Engine) help() []string {
	lines := []string{
		"Commands:",
		"  n, s, e, w           move to the next cave",
		"  look                 describe your cave",
	}
	if e.Rules.Arrows() {
		lines = append(lines, "  shoot <dir> <dist>   fire an arrow <dist> caves away (default 1)")
	}
	return append(lines, "  quit                 leave the game")
}

// ActivePlayer returns a snapshot of the player whose turn it is.
func (e *Engine) ActivePlayer() types.PlayerInfo {
	return state.Info(e.State, e.State.Active)
}

// Players returns snapshots of every player in turn order.
func (e *Engine) Players() []types.PlayerInfo {
	infos := make([]types.PlayerInfo, len(e.State.Players))
	for i := range infos {
		infos[i] = state.Info(e.State, i)
	}
	return infos
}

// ValidMoves returns the directions open to the active player.
func (e *Engine) ValidMoves() []types.Direction {
	return state.ValidMoves(e.State, state.ActivePlayer(e.State).Room)
}

// RoomFeatures returns the features of a visited room.
func (e *Engine) RoomFeatures(room int) (types.FeatureSet, error) {
	return state.RoomFeatures(e.State, room)
}

// RoomSmells returns the warnings sensed in a visited room.
func (e *Engine) RoomSmells(room int) ([]types.Smell, error) {
	return state.RoomSmells(e.State, room)
}

// Refresh returns the rooms changed by the last command.
func (e *Engine) Refresh() []int {
	return state.RefreshRooms(e.State)
}

// Message returns the latest notification.
func (e *Engine) Message() string {
	return e.State.Message
}

// Won reports whether a player has won.
func (e *Engine) Won() bool {
	return state.Won(e.State)
}

// Over reports whether play has ended.
func (e *Engine) Over() bool {
	return state.Over(e.State)
}

// Maze returns the maze being played.
func (e *Engine) Maze() *maze.Maze {
	return e.State.Maze
}
