package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI installs the three constructors a game file may call:
//
//	Maze { rows = 5, cols = 6, perfect = false, remaining_walls = 4, seed = 7 }
//	Game { rules = "wumpus", bats = 20, pits = 15 }
//	Player "alice" { arrows = 3 }
func registerAPI(L *lua.LState, coll *collector) {
	L.SetGlobal("Maze", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		if coll.maze != nil {
			coll.dups = append(coll.dups, "Maze")
		}
		coll.maze = tbl
		return 0
	}))

	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		if coll.game != nil {
			coll.dups = append(coll.dups, "Game")
		}
		coll.game = tbl
		return 0
	}))

	// Player "name" { ... } is curried: Player("name") returns a function
	// that takes the table.
	L.SetGlobal("Player", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.OptTable(1, L.NewTable())
			coll.players = append(coll.players, rawPlayer{name: name, table: tbl})
			return 0
		}))
		return 1
	}))
}
