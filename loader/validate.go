package loader

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nathoo/cavern/engine/maze"
	"github.com/nathoo/cavern/types"
)

// Limits enforced on a game file.
const (
	MaxDimension = 100
	MaxPlayers   = 2
)

// ValidationError collects every problem found in a game file.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

// report logs the warnings through the standard logrus logger.
func (e *ValidationError) report() {
	for _, w := range e.Warnings {
		logrus.WithField("component", "loader").Warn(w)
	}
}

// validate checks ranges and cross-field constraints, adding to ve.
func validate(cfg *types.GameConfig, ve *ValidationError) {
	validateMaze(cfg.Maze, ve)

	switch cfg.Rules {
	case "wumpus", "gold":
	default:
		ve.errorf("Game.rules must be \"wumpus\" or \"gold\", got %q", cfg.Rules)
	}

	for _, kind := range types.FeatureKinds {
		pct, ok := cfg.Percent[kind]
		if !ok || !usesFeature(cfg.Rules, kind) {
			continue
		}
		if pct < 1 || pct > 100 {
			ve.errorf("%s percentage must be between 1 and 100, got %d", kind, pct)
		}
	}

	validatePlayers(cfg, ve)
}

func validateMaze(m types.MazeConfig, ve *ValidationError) {
	before := len(ve.Errors)
	if m.Rows < 1 || m.Rows > MaxDimension {
		ve.errorf("Maze.rows must be between 1 and %d, got %d", MaxDimension, m.Rows)
	}
	if m.Cols < 1 || m.Cols > MaxDimension {
		ve.errorf("Maze.cols must be between 1 and %d, got %d", MaxDimension, m.Cols)
	}
	if m.Rows <= 2 && m.Cols <= 2 {
		ve.errorf("a %dx%d maze is too small: rows or cols must exceed 2", m.Rows, m.Cols)
	}
	if len(ve.Errors) > before || m.Perfect {
		return
	}

	g, err := maze.NewGrid(m.Rows, m.Cols, m.Wrapping)
	if err != nil {
		ve.errorf("%v", err)
		return
	}
	if limit := g.MaxRemovableWalls(); m.RemainingWalls < 0 || m.RemainingWalls > limit {
		ve.errorf("Maze.remaining_walls must be between 0 and %d for a %dx%d maze, got %d",
			limit, m.Rows, m.Cols, m.RemainingWalls)
	}

	if !m.Wrapping {
		if m.WrappingWalls != 0 {
			ve.errorf("Maze.wrapping_walls needs wrapping = true")
		}
		return
	}
	limit := len(g.WrapEdges(maze.RowWrap)) + len(g.WrapEdges(maze.ColWrap))
	if m.WrappingWalls < 0 || m.WrappingWalls > limit {
		ve.errorf("Maze.wrapping_walls must be between 0 and %d for a %dx%d maze, got %d",
			limit, m.Rows, m.Cols, m.WrappingWalls)
	}
}

func validatePlayers(cfg *types.GameConfig, ve *ValidationError) {
	if n := len(cfg.Players); n < 1 || n > MaxPlayers {
		ve.errorf("a game needs 1 to %d players, got %d", MaxPlayers, n)
	}

	seen := map[string]bool{}
	for _, p := range cfg.Players {
		switch {
		case strings.TrimSpace(p.Name) == "":
			ve.errorf("player names must not be empty")
		case seen[p.Name]:
			ve.errorf("player %q is declared more than once", p.Name)
		}
		seen[p.Name] = true

		if cfg.Rules == "wumpus" && p.Arrows < 1 {
			ve.errorf("player %q needs at least 1 arrow, got %d", p.Name, p.Arrows)
		}
	}
}
