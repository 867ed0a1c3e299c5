// Cavern is a seeded Hunt-the-Wumpus style game on generated mazes.
// Usage: cavern [--version] [--plain] [--trace] [--seed <n>] [--script <file>] <game_directory|game.lua>
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nathoo/cavern/cli"
	"github.com/nathoo/cavern/engine"
	"github.com/nathoo/cavern/loader"
	"github.com/nathoo/cavern/tui"
	"github.com/nathoo/cavern/types"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: cavern [--version] [--plain] [--trace] [--seed <n>] [--script <file>] <game_directory|game.lua>"

func main() {
	plain := false
	trace := false
	var gamePath, scriptFile, seedArg string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("cavern %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--seed", "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "%s requires a value\n", args[i])
				os.Exit(1)
			}
			if args[i] == "--seed" {
				seedArg = args[i+1]
			} else {
				scriptFile = args[i+1]
			}
			i++
		default:
			if gamePath == "" {
				gamePath = args[i]
			}
		}
	}

	if gamePath == "" {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	log := logrus.StandardLogger()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	if trace {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg, err := load(gamePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game: %v\n", err)
		os.Exit(1)
	}
	if seedArg != "" {
		seed, err := strconv.ParseInt(seedArg, 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "--seed: %v\n", err)
			os.Exit(1)
		}
		cfg.Maze.Seed = seed
	}

	eng, err := engine.New(*cfg, engine.WithLogger(log.WithField("seed", cfg.Maze.Seed)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting game: %v\n", err)
		os.Exit(1)
	}
	title := fmt.Sprintf("Cavern: %s rules, %dx%d maze, seed %d",
		cfg.Rules, cfg.Maze.Rows, cfg.Maze.Cols, cfg.Maze.Seed)

	// Script mode: read commands from a file, force plain output, echo them.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(eng, title)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		return
	}

	if plain || !isTerminal() {
		c := cli.New(eng, title)
		c.Trace = trace
		c.Run()
		return
	}

	// The TUI owns the screen; its own trace lines replace debug logging.
	log.SetLevel(logrus.WarnLevel)
	if err := tui.Run(eng, title, trace); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// load reads a single Lua file or every Lua file in a directory.
func load(path string) (*types.GameConfig, error) {
	if strings.HasSuffix(path, ".lua") {
		return loader.LoadFile(path)
	}
	return loader.Load(path)
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
