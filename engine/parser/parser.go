// Package parser converts command strings into Command structs.
// Plain word matching; there is no grammar beyond verb, direction and distance.
package parser

import (
	"strconv"
	"strings"

	"github.com/nathoo/cavern/types"
)

var verbAliases = map[string]string{
	// Movement
	"m":      "move",
	"go":     "move",
	"walk":   "move",
	"run":    "move",
	"head":   "move",
	"crawl":  "move",
	"travel": "move",

	// Arrows
	"f":     "shoot",
	"fire":  "shoot",
	"arrow": "shoot",
	"throw": "shoot",

	// Miscellaneous
	"l":        "look",
	"sniff":    "look",
	"smell":    "look",
	"listen":   "look",
	"q":        "quit",
	"exit":     "quit",
	"?":        "help",
	"h":        "help",
	"commands": "help",
}

var fillers = map[string]bool{
	"the": true, "a": true, "an": true,
	"to": true, "towards": true,
	"arrow": true, "arrows": true,
	"caves": true, "cave": true, "rooms": true,
}

// Parse converts a raw command string into a Command.
//
//	n | north | go north           → move north
//	shoot north 2 | f n 2          → shoot north, distance 2
//	shoot n                        → shoot north, distance 1
//	look | quit | help
func Parse(input string) types.Command {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Command{}
	}

	words := strings.Fields(strings.ToLower(input))

	// Direction shortcut: bare "n", "south", etc. → move <direction>
	if len(words) == 1 {
		if d, ok := types.ParseDirection(words[0]); ok {
			return types.Command{Verb: "move", Direction: d, HasDir: true}
		}
	}

	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}
	cmd := types.Command{Verb: words[0]}
	rest := stripFillers(words[1:])

	switch cmd.Verb {
	case "move":
		parseDirection(&cmd, rest)
	case "shoot":
		rest = parseDirection(&cmd, rest)
		cmd.Distance = 1
		if len(rest) > 0 && cmd.Bad == "" {
			n, err := strconv.Atoi(rest[0])
			if err != nil {
				cmd.Bad = rest[0]
			} else {
				cmd.Distance = n
			}
		}
	}
	return cmd
}

// parseDirection consumes a leading direction word and returns the rest.
func parseDirection(cmd *types.Command, words []string) []string {
	if len(words) == 0 {
		return words
	}
	d, ok := types.ParseDirection(words[0])
	if !ok {
		cmd.Bad = words[0]
		return words[1:]
	}
	cmd.Direction = d
	cmd.HasDir = true
	return words[1:]
}

func stripFillers(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !fillers[w] {
			result = append(result, w)
		}
	}
	return result
}
