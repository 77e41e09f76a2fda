package script

import (
	lua "github.com/yuin/gopher-lua"
)

// newState creates a sandboxed Lua state. Only the base, table,
// string, and math libraries are opened; io, os, debug, and package
// stay closed so scripts cannot reach the filesystem or the process.
func newState() *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// base brings code-loading escape hatches along; remove them
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	return L
}
