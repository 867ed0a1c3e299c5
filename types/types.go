// Package types defines the shared data structures for the cavern engine.
// This package contains only type definitions and their trivial helpers.
package types

import "strings"

// Direction is a compass direction on the maze grid.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// Directions lists every compass direction in index order.
var Directions = [4]Direction{North, South, East, West}

// Inverse returns the opposite direction.
func (d Direction) Inverse() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	}
	return "unknown"
}

// ParseDirection accepts full names and single-letter abbreviations.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "north":
		return North, true
	case "s", "south":
		return South, true
	case "e", "east":
		return East, true
	case "w", "west":
		return West, true
	}
	return 0, false
}

// FeatureKind is a hazard or object placed in a cave.
type FeatureKind int

const (
	Wumpus FeatureKind = iota
	Bat
	Pit
	Gold
	Thief

	featureKindCount
)

// FeatureKinds lists every feature kind in declaration order.
var FeatureKinds = []FeatureKind{Wumpus, Bat, Pit, Gold, Thief}

func (k FeatureKind) String() string {
	switch k {
	case Wumpus:
		return "wumpus"
	case Bat:
		return "bat"
	case Pit:
		return "pit"
	case Gold:
		return "gold"
	case Thief:
		return "thief"
	}
	return "unknown"
}

// FeatureSet records which features a cave holds.
type FeatureSet [featureKindCount]bool

// Has reports whether the kind is present.
func (f FeatureSet) Has(k FeatureKind) bool { return f[k] }

// Smell is a warning sensed in a cave next to a hazard.
type Smell string

const (
	Stench Smell = "stench" // adjacent wumpus
	Draft  Smell = "draft"  // adjacent pit
)

// Command is the parsed representation of a player command.
type Command struct {
	Verb      string // "move", "shoot", "quit", "look", "help"
	Direction Direction
	Distance  int
	HasDir    bool
	Bad       string // argument that could not be parsed, if any
}

// Effect is a single atomic state mutation instruction.
type Effect struct {
	Type   string
	Params map[string]any
}

// Event is emitted after effects are applied.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single game step.
type Result struct {
	Effects []Effect
	Events  []Event
	Output  []string
	Refresh []int // room ids whose display changed
}

// MazeConfig holds the construction parameters of a maze.
type MazeConfig struct {
	Rows           int
	Cols           int
	Perfect        bool
	Wrapping       bool
	RemainingWalls int // imperfect only
	WrappingWalls  int // imperfect wrapping only
	Seed           int64
}

// PlayerConfig describes one player before play starts.
type PlayerConfig struct {
	Name   string
	Arrows int
}

// GameConfig holds everything needed to start a game.
type GameConfig struct {
	Maze    MazeConfig
	Rules   string              // "wumpus" or "gold"
	Percent map[FeatureKind]int // target percentage per non-apex feature
	Players []PlayerConfig
}

// PlayerInfo is a read-only snapshot of a player.
type PlayerInfo struct {
	Name   string
	Room   int
	Cave   string
	Gold   int
	Arrows int
	Dead   bool
	Won    bool
}
