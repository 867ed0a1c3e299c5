// Package loader reads a Lua game description into a types.GameConfig.
// The Lua VM is discarded after loading; nothing of it survives into play.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/cavern/types"
)

// collector accumulates the constructor calls made while the files run.
type collector struct {
	maze    *lua.LTable
	game    *lua.LTable
	players []rawPlayer
	dups    []string
}

// Load runs every .lua file in dir, game.lua first, and returns the
// validated configuration.
func Load(dir string) (*types.GameConfig, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading game directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}

	paths := make([]string, 0, len(luaFiles))
	for _, f := range sortedLuaFiles(luaFiles) {
		paths = append(paths, filepath.Join(dir, f))
	}
	return run(paths)
}

// LoadFile runs a single Lua file.
func LoadFile(path string) (*types.GameConfig, error) {
	return run([]string{path})
}

func run(paths []string) (*types.GameConfig, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, path := range paths {
		if err := L.DoFile(path); err != nil {
			return nil, fmt.Errorf("executing %s: %w", filepath.Base(path), err)
		}
	}

	cfg, ve := compile(coll)
	validate(cfg, ve)
	ve.report()
	if len(ve.Errors) > 0 {
		return nil, ve
	}
	return cfg, nil
}

// openSafeLibs opens base, table, string and math. Nothing that touches
// files, processes or the clock.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that load code or escape the VM, and the random
// functions so every draw comes from the game seed.
func sandbox(L *lua.LState) {
	for _, name := range []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	} {
		L.SetGlobal(name, lua.LNil)
	}

	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("random", lua.LNil)
		tbl.RawSetString("randomseed", lua.LNil)
	}
}

// sortedLuaFiles puts game.lua first and the rest in name order.
func sortedLuaFiles(files []string) []string {
	var first bool
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			first = true
			continue
		}
		others = append(others, f)
	}
	sort.Strings(others)
	if first {
		return append([]string{"game.lua"}, others...)
	}
	return others
}
