// Package cli runs a game over plain text streams: a prompt, one command
// per line, and slash meta-commands for the person at the keyboard.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/cavern/engine"
	"github.com/nathoo/cavern/engine/maze"
	"github.com/nathoo/cavern/types"
)

// CLI handles line-based interaction with the players.
type CLI struct {
	Engine    *engine.Engine
	Title     string
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool // echo each input line after the prompt, for scripts

	lastCmd  string
	reported bool
}

// New creates a CLI on stdin and stdout.
func New(eng *engine.Engine, title string) *CLI {
	return &CLI{
		Engine: eng,
		Title:  title,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run shows the title and the first player's cave, then loops:
// prompt, input, dispatch, output. It returns at /quit or end of input.
func (c *CLI) Run() {
	if c.Title != "" {
		c.printLine(c.Title)
		c.printLine("")
	}
	c.printResult(c.Engine.Step("look"))

	scanner := bufio.NewScanner(c.In)
	for {
		c.print(c.prompt())
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" || strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return
			}
			continue
		}

		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printResult(result)
		if c.Trace {
			c.printTrace(result)
		}
		c.reportOutcome()
	}
}

// prompt names the player to move when several share the keyboard.
func (c *CLI) prompt() string {
	if len(c.Engine.Players()) > 1 && !c.Engine.Over() {
		return c.Engine.ActivePlayer().Name + "> "
	}
	return "> "
}

// reportOutcome prints the final standings once, when play ends.
func (c *CLI) reportOutcome() {
	if c.reported || !c.Engine.Over() {
		return
	}
	c.reported = true
	c.printLine("")
	for _, p := range c.Engine.Players() {
		c.printLine(standing(p))
	}
	c.printSystem("Game over. /map shows the whole maze, /quit leaves.")
}

func standing(p types.PlayerInfo) string {
	switch {
	case p.Won:
		return fmt.Sprintf("%s won in cave %s.", p.Name, p.Cave)
	case p.Dead:
		return fmt.Sprintf("%s died in cave %s.", p.Name, p.Cave)
	}
	return fmt.Sprintf("%s stopped in cave %s.", p.Name, p.Cave)
}

// handleMeta dispatches meta-commands. Returns true if the session should end.
func (c *CLI) handleMeta(input string) bool {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/map":
		c.cmdMap()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}
	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /quit         Exit the game",
		"  /help         Show this help",
		"  /state        Show players and turn count",
		"  /map          Show the explored maze",
		"  /trace        Toggle effect and event trace output",
		"",
		"Game commands:",
		"  n, s, e, w (or go <dir>)   Move to the next cave",
		"  shoot <dir> <dist>         Fire an arrow <dist> caves away",
		"  look (l)                   Describe your cave",
		"  again (g)                  Repeat your last command",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	s := c.Engine.State
	c.printSystem(fmt.Sprintf("Turn: %d", s.TurnCount))
	c.printSystem(fmt.Sprintf("Rules: %s", s.Rules))
	for _, p := range c.Engine.Players() {
		line := fmt.Sprintf("%s: cave %s, arrows %d, gold %d", p.Name, p.Cave, p.Arrows, p.Gold)
		switch {
		case p.Won:
			line += ", won"
		case p.Dead:
			line += ", dead"
		}
		c.printSystem(line)
	}
}

// cmdMap shows what the players have explored, or everything once play
// has ended.
func (c *CLI) cmdMap() {
	m := c.Engine.Maze()
	if c.Engine.Over() {
		c.print(maze.Render(m, true))
		return
	}
	c.print(maze.RenderExplored(m))
}

func (c *CLI) printTrace(result types.Result) {
	for _, e := range result.Effects {
		c.printSystem(fmt.Sprintf("[trace] effect %s %v", e.Type, e.Params))
	}
	for _, e := range result.Events {
		c.printSystem(fmt.Sprintf("[trace] event %s %v", e.Type, e.Data))
	}
	if len(result.Refresh) > 0 {
		c.printSystem(fmt.Sprintf("[trace] refresh %v", result.Refresh))
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
