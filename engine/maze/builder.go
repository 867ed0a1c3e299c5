package maze

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/nathoo/cavern/types"
)

// Maze is a finished, classified maze. Its grid and room classification are
// frozen; only feature sets (during placement) and visited flags (during
// play) change afterwards.
type Maze struct {
	Grid       *Grid
	Rooms      []Room
	Perfect    bool
	Placements []Placement

	caves []int
}

// Room returns the room with the given id.
func (m *Maze) Room(id int) *Room {
	return &m.Rooms[id]
}

// Caves returns the ids of all caves in cell order.
func (m *Maze) Caves() []int {
	return m.caves
}

// CavesWith returns the ids of caves holding a feature.
func (m *Maze) CavesWith(k types.FeatureKind) []int {
	var ids []int
	for _, id := range m.caves {
		if m.Rooms[id].Features.Has(k) {
			ids = append(ids, id)
		}
	}
	return ids
}

// AllWalls returns every closed internal wall.
func (m *Maze) AllWalls() []Wall {
	return m.Grid.AllWalls()
}

// FindCaveAtDistance walks straight from a cave; see the package function.
func (m *Maze) FindCaveAtDistance(from int, d types.Direction, distance int) (int, error) {
	return FindCaveAtDistance(m.Rooms, from, d, distance)
}

// Smells returns the warnings sensed in a cave from its adjacent caves.
func (m *Maze) Smells(id int) []types.Smell {
	var wumpus, pit bool
	for _, adj := range m.Rooms[id].Adjacent {
		if adj == NoRoom {
			continue
		}
		f := m.Rooms[adj].Features
		wumpus = wumpus || f.Has(types.Wumpus)
		pit = pit || f.Has(types.Pit)
	}
	var smells []types.Smell
	if wumpus {
		smells = append(smells, types.Stench)
	}
	if pit {
		smells = append(smells, types.Draft)
	}
	return smells
}

// FromGrid classifies a carved grid into a maze without features.
func FromGrid(g *Grid, perfect bool) (*Maze, error) {
	rooms, err := Classify(g)
	if err != nil {
		return nil, err
	}
	m := &Maze{Grid: g, Rooms: rooms, Perfect: perfect}
	for id := range rooms {
		if rooms[id].IsCave() {
			m.caves = append(m.caves, id)
		}
	}
	return m, nil
}

// Options configure a Builder.
type Options struct {
	Rows     int
	Cols     int
	Perfect  bool
	Wrapping bool
	// Logger receives debug output of each construction step. Nil discards it.
	Logger logrus.FieldLogger
}

// Builder runs the construction pipeline: carve, classify, place, verify.
// The first failing step is sticky; later steps do nothing and Build
// returns the error.
type Builder struct {
	opts       Options
	grid       *Grid
	carver     *Carver
	src        Source
	placements []Placement
	log        logrus.FieldLogger
	err        error
}

// NewBuilder validates the dimensions and prepares an uncarved grid.
func NewBuilder(opts Options, src Source) *Builder {
	log := opts.Logger
	if log == nil {
		log = discardLogger()
	}
	b := &Builder{opts: opts, src: src, log: log}
	g, err := NewGrid(opts.Rows, opts.Cols, opts.Wrapping)
	if err != nil {
		b.err = err
		return b
	}
	b.grid = g
	b.carver = NewCarver(g, opts.Perfect, src, log)
	return b
}

// RemoveInsideWalls carves the spanning tree of a perfect maze. Imperfect
// mazes say how many walls to leave with RemoveInsideWallsLeaving.
func (b *Builder) RemoveInsideWalls() *Builder {
	if b.err != nil {
		return b
	}
	if !b.opts.Perfect {
		b.err = fmt.Errorf("%w: an imperfect maze needs a remaining wall count", ErrInvalidState)
		return b
	}
	b.carver.RemoveInsideWalls()
	return b
}

// RemoveInsideWallsLeaving carves the spanning tree and then opens extra
// walls until exactly remaining internal walls stand. A perfect maze only
// accepts the wall count its spanning tree leaves anyway.
func (b *Builder) RemoveInsideWallsLeaving(remaining int) *Builder {
	if b.err != nil {
		return b
	}
	limit := b.grid.MaxRemovableWalls()
	if remaining < 0 || remaining > limit {
		b.err = fmt.Errorf("%w: remaining walls must be between 0 and %d, got %d", ErrInvalidArgument, limit, remaining)
		return b
	}
	if b.opts.Perfect {
		if remaining != limit {
			b.err = fmt.Errorf("%w: a perfect maze leaves exactly %d walls, got %d", ErrInvalidArgument, limit, remaining)
			return b
		}
		b.carver.RemoveInsideWalls()
		return b
	}
	b.carver.RemoveInsideWalls()
	b.err = b.carver.RemoveAdditionalWalls(remaining)
	return b
}

// RemoveWrappingWalls opens k boundary edges of an imperfect wrapping maze.
func (b *Builder) RemoveWrappingWalls(k int) *Builder {
	if b.err != nil {
		return b
	}
	b.err = b.carver.RemoveWrappingWalls(k)
	return b
}

// AddFeatures records the placements applied by Build.
func (b *Builder) AddFeatures(placements ...Placement) *Builder {
	if b.err != nil {
		return b
	}
	b.placements = append(b.placements, placements...)
	return b
}

// Build checks connectivity, classifies rooms, places and verifies features.
func (b *Builder) Build() (*Maze, error) {
	if b.err != nil {
		return nil, b.err
	}
	if !b.carver.carved {
		return nil, fmt.Errorf("%w: inside walls were never removed", ErrInvalidState)
	}
	if !b.grid.Connected() {
		return nil, fmt.Errorf("%w: not every cell is reachable", ErrInvariant)
	}

	m, err := FromGrid(b.grid, b.opts.Perfect)
	if err != nil {
		return nil, err
	}
	m.Placements = b.placements
	b.log.WithFields(logrus.Fields{
		"caves": len(m.caves), "tunnels": len(m.Rooms) - len(m.caves),
	}).Debug("rooms classified")

	if len(b.placements) > 0 {
		if err := PlaceFeatures(m.Rooms, m.caves, b.placements, b.src); err != nil {
			return nil, err
		}
		if err := VerifyFeatures(m.Rooms, m.caves, b.placements); err != nil {
			return nil, err
		}
		for _, p := range b.placements {
			b.log.WithFields(logrus.Fields{
				"feature": p.Kind.String(), "caves": m.CavesWith(p.Kind),
			}).Debug("features placed")
		}
	}
	return m, nil
}

// Generate runs the canonical pipeline for a config: a perfect maze removes
// its inside walls; an imperfect one leaves cfg.RemainingWalls and, when
// wrapping, opens cfg.WrappingWalls boundary edges.
func Generate(cfg types.MazeConfig, placements []Placement, src Source, log logrus.FieldLogger) (*Maze, error) {
	b := NewBuilder(Options{
		Rows:     cfg.Rows,
		Cols:     cfg.Cols,
		Perfect:  cfg.Perfect,
		Wrapping: cfg.Wrapping,
		Logger:   log,
	}, src)
	switch {
	case cfg.Perfect:
		b.RemoveInsideWalls()
	case cfg.Wrapping:
		b.RemoveInsideWallsLeaving(cfg.RemainingWalls).RemoveWrappingWalls(cfg.WrappingWalls)
	default:
		b.RemoveInsideWallsLeaving(cfg.RemainingWalls)
	}
	m, err := b.AddFeatures(placements...).Build()
	if err != nil {
		return nil, fmt.Errorf("building %dx%d maze: %w", cfg.Rows, cfg.Cols, err)
	}
	return m, nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
