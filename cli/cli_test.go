package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nathoo/cavern/engine"
	"github.com/nathoo/cavern/types"
)

func testConfig(players ...string) types.GameConfig {
	cfg := types.GameConfig{
		Maze:    types.MazeConfig{Rows: 5, Cols: 6, RemainingWalls: 8, Seed: 15000},
		Rules:   "wumpus",
		Percent: map[types.FeatureKind]int{types.Bat: 10, types.Pit: 10},
	}
	for _, name := range players {
		cfg.Players = append(cfg.Players, types.PlayerConfig{Name: name, Arrows: 3})
	}
	return cfg
}

func newTestCLI(t *testing.T, input string, players ...string) (*CLI, *bytes.Buffer) {
	t.Helper()
	if len(players) == 0 {
		players = []string{"alice"}
	}
	eng, err := engine.New(testConfig(players...))
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	var out bytes.Buffer
	c := &CLI{
		Engine: eng,
		Title:  "Test Caves",
		In:     strings.NewReader(input),
		Out:    &out,
	}
	return c, &out
}

func TestCLI_TitleAndStartingCave(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Test Caves") {
		t.Error("expected title in output")
	}
	want := "alice is in cave " + c.Engine.ActivePlayer().Cave + "."
	if !strings.Contains(output, want) {
		t.Errorf("expected %q in output:\n%s", want, output)
	}
}

func TestCLI_Move(t *testing.T) {
	c, out := newTestCLI(t, "")
	moves := c.Engine.ValidMoves()
	if len(moves) == 0 {
		t.Fatal("start cave has no exits")
	}
	c.In = strings.NewReader(moves[0].String() + "\n/quit\n")
	start := c.Engine.ActivePlayer().Room
	c.Run()

	if c.Engine.ActivePlayer().Room == start && !c.Engine.Over() {
		t.Errorf("player did not leave cave %d:\n%s", start, out.String())
	}
	if c.Engine.State.TurnCount != 1 {
		t.Errorf("turn count: got %d, want 1", c.Engine.State.TurnCount)
	}
}

func TestCLI_UsageErrorsKeepPlaying(t *testing.T) {
	c, out := newTestCLI(t, "dance\nshoot\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "I don't know how to dance.") {
		t.Error("expected unknown verb message")
	}
	if !strings.Contains(output, "Shoot where?") {
		t.Error("expected missing direction message")
	}
	if c.Engine.Over() {
		t.Error("usage errors should not end the game")
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out := newTestCLI(t, "/help\n/quit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{"/quit", "/map", "/state", "shoot <dir> <dist>"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in help output", want)
		}
	}
}

func TestCLI_StateCommand(t *testing.T) {
	c, out := newTestCLI(t, "/state\n/quit\n", "alice", "bob")
	c.Run()

	output := out.String()
	for _, want := range []string{"[Turn: 0]", "[Rules: wumpus]", "alice: cave", "bob: cave", "arrows 3"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in state output:\n%s", want, output)
		}
	}
}

func TestCLI_MapCommand(t *testing.T) {
	c, out := newTestCLI(t, "/map\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "?") {
		t.Error("unexplored cells should be hidden")
	}
	if !strings.Contains(output, c.Engine.ActivePlayer().Cave) {
		t.Error("the start cave should be on the map")
	}
}

func TestCLI_MapAfterGameOverShowsEverything(t *testing.T) {
	c, out := newTestCLI(t, "quit\n/map\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "alice stopped in cave") {
		t.Errorf("expected final standings:\n%s", output)
	}
	if !strings.Contains(output, "W") {
		t.Errorf("the full map should reveal the Wumpus:\n%s", output)
	}
}

func TestCLI_MultiplayerPrompt(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n", "alice", "bob")
	c.Run()

	if !strings.Contains(out.String(), "alice> ") {
		t.Errorf("expected the active player in the prompt:\n%s", out.String())
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	c, out := newTestCLI(t, "/bogus\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Unknown command") {
		t.Error("expected unknown command message")
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out := newTestCLI(t, "")
	c.In = strings.NewReader("/trace\n" + c.Engine.ValidMoves()[0].String() + "\n/trace\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Trace output enabled") {
		t.Error("expected trace enabled message")
	}
	if !strings.Contains(output, "[trace] effect move_player") {
		t.Errorf("expected effect trace:\n%s", output)
	}
	if !strings.Contains(output, "Trace output disabled") {
		t.Error("expected trace disabled message")
	}
}

func TestCLI_SkipsBlankAndCommentLines(t *testing.T) {
	c, out := newTestCLI(t, "\n# a comment\n\n/quit\n")
	c.Run()

	if strings.Contains(out.String(), "What do you want to do?") {
		t.Error("blank and comment lines should be skipped")
	}
}

func TestCLI_EchoInput(t *testing.T) {
	c, out := newTestCLI(t, "look\n/quit\n")
	c.EchoInput = true
	c.Run()

	if !strings.Contains(out.String(), "> look\n") {
		t.Errorf("expected echoed command:\n%s", out.String())
	}
}

func TestCLI_Again(t *testing.T) {
	c, out := newTestCLI(t, "look\nagain\ng\n/quit\n")
	c.Run()

	want := "alice is in cave " + c.Engine.ActivePlayer().Cave + "."
	if got := strings.Count(out.String(), want); got != 4 {
		t.Errorf("expected the description 4 times (start, look, again, g), got %d", got)
	}
}

func TestCLI_Again_NothingToRepeat(t *testing.T) {
	c, out := newTestCLI(t, "again\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Nothing to repeat") {
		t.Error("expected 'Nothing to repeat' when no prior command")
	}
}
