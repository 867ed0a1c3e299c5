package loader

import (
	"fmt"
	"math"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/cavern/types"
)

// Defaults for the optional fields of a game file.
const (
	DefaultArrows = 3
	DefaultRules  = "wumpus"
)

// DefaultPercent holds the feature percentages used when the Game table
// leaves them out.
var DefaultPercent = map[types.FeatureKind]int{
	types.Bat:   20,
	types.Pit:   15,
	types.Gold:  20,
	types.Thief: 10,
}

// percentKeys maps Game table keys to the feature they size.
var percentKeys = map[string]types.FeatureKind{
	"bats":    types.Bat,
	"pits":    types.Pit,
	"gold":    types.Gold,
	"thieves": types.Thief,
}

var (
	mazeKeys   = []string{"rows", "cols", "perfect", "wrapping", "remaining_walls", "wrapping_walls", "seed"}
	gameKeys   = []string{"rules", "bats", "pits", "gold", "thieves"}
	playerKeys = []string{"arrows"}
)

type rawPlayer struct {
	name  string
	table *lua.LTable
}

// fields reads typed values out of one table, recording type errors
// against the table's name.
type fields struct {
	owner string
	tbl   *lua.LTable
	ve    *ValidationError
	set   map[string]bool
}

func newFields(owner string, tbl *lua.LTable, ve *ValidationError) *fields {
	f := &fields{owner: owner, tbl: tbl, ve: ve, set: map[string]bool{}}
	if tbl == nil {
		return f
	}
	tbl.ForEach(func(k, _ lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			f.set[string(ks)] = true
		}
	})
	return f
}

func (f *fields) has(key string) bool { return f.set[key] }

func (f *fields) intField(key string, def int) int {
	if !f.has(key) {
		return def
	}
	n, ok := f.tbl.RawGetString(key).(lua.LNumber)
	if !ok || float64(n) != math.Trunc(float64(n)) {
		f.ve.errorf("%s.%s must be an integer", f.owner, key)
		return def
	}
	return int(n)
}

func (f *fields) boolField(key string, def bool) bool {
	if !f.has(key) {
		return def
	}
	b, ok := f.tbl.RawGetString(key).(lua.LBool)
	if !ok {
		f.ve.errorf("%s.%s must be true or false", f.owner, key)
		return def
	}
	return bool(b)
}

func (f *fields) stringField(key, def string) string {
	if !f.has(key) {
		return def
	}
	s, ok := f.tbl.RawGetString(key).(lua.LString)
	if !ok {
		f.ve.errorf("%s.%s must be a string", f.owner, key)
		return def
	}
	return string(s)
}

// unknown warns about keys outside known, in name order.
func (f *fields) unknown(known []string) {
	allowed := map[string]bool{}
	for _, k := range known {
		allowed[k] = true
	}
	var extra []string
	for k := range f.set {
		if !allowed[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		f.ve.warnf("%s.%s is not a known field", f.owner, k)
	}
}

// compile turns the collected tables into a config. Type errors and
// unknown fields go into the returned ValidationError; range checks are
// left to validate.
func compile(coll *collector) (*types.GameConfig, *ValidationError) {
	ve := &ValidationError{}
	for _, name := range coll.dups {
		ve.errorf("%s is declared more than once", name)
	}

	cfg := &types.GameConfig{Percent: map[types.FeatureKind]int{}}

	if coll.maze == nil {
		ve.errorf("Maze { rows = ..., cols = ... } is required")
	} else {
		m := newFields("Maze", coll.maze, ve)
		m.unknown(mazeKeys)
		if !m.has("rows") {
			ve.errorf("Maze.rows is required")
		}
		if !m.has("cols") {
			ve.errorf("Maze.cols is required")
		}
		cfg.Maze = types.MazeConfig{
			Rows:           m.intField("rows", 0),
			Cols:           m.intField("cols", 0),
			Perfect:        m.boolField("perfect", true),
			Wrapping:       m.boolField("wrapping", false),
			RemainingWalls: m.intField("remaining_walls", 0),
			WrappingWalls:  m.intField("wrapping_walls", 0),
			Seed:           int64(m.intField("seed", 0)),
		}
		switch {
		case cfg.Maze.Perfect && (m.has("remaining_walls") || m.has("wrapping_walls")):
			ve.warnf("a perfect maze ignores remaining_walls and wrapping_walls")
		case !cfg.Maze.Perfect && !m.has("remaining_walls"):
			ve.errorf("Maze.remaining_walls is required for an imperfect maze")
		}
	}

	g := newFields("Game", coll.game, ve)
	g.unknown(gameKeys)
	cfg.Rules = g.stringField("rules", DefaultRules)
	for _, key := range gameKeys {
		kind, ok := percentKeys[key]
		if !ok {
			continue
		}
		cfg.Percent[kind] = g.intField(key, DefaultPercent[kind])
		if g.has(key) && !usesFeature(cfg.Rules, kind) {
			ve.warnf("Game.%s is ignored by the %s rules", key, cfg.Rules)
		}
	}

	for _, rp := range coll.players {
		p := newFields(fmt.Sprintf("Player %q", rp.name), rp.table, ve)
		p.unknown(playerKeys)
		cfg.Players = append(cfg.Players, types.PlayerConfig{
			Name:   rp.name,
			Arrows: p.intField("arrows", DefaultArrows),
		})
	}
	return cfg, ve
}

// usesFeature reports whether a rule set places kind. Unknown rules use
// nothing; validate reports them.
func usesFeature(rules string, kind types.FeatureKind) bool {
	switch rules {
	case "wumpus":
		return kind == types.Bat || kind == types.Pit
	case "gold":
		return kind == types.Gold || kind == types.Thief
	}
	return false
}
