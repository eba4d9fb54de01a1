// Package scripting exposes the launcher to host-side scripts. The host's
// scripting engine gets exactly one operation surface: restart the
// companion and report success. This mirrors the function the native
// plugin registers with the host's own script VM.
package scripting

import (
	lua "github.com/yuin/gopher-lua"
)

// Restarter is the operation exposed to scripts.
type Restarter interface {
	LaunchOrRestart() bool
}

// Install registers the launcher module into the Lua state under the given
// global name, with:
//
//	<name>.restart() -> bool   launch or restart the companion
//	<name>.running() -> bool   whether any companion instance is running
//
// running may be nil, in which case the function always returns false.
func Install(L *lua.LState, name string, r Restarter, running func() bool) {
	mod := L.NewTable()

	L.SetField(mod, "restart", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(r.LaunchOrRestart()))
		return 1
	}))

	L.SetField(mod, "running", L.NewFunction(func(L *lua.LState) int {
		if running == nil {
			L.Push(lua.LFalse)
			return 1
		}
		L.Push(lua.LBool(running()))
		return 1
	}))

	L.SetGlobal(name, mod)
}

// RunFile executes a script file with the binding installed.
func RunFile(path, name string, r Restarter, running func() bool) error {
	L := lua.NewState()
	defer L.Close()

	Install(L, name, r, running)
	return L.DoFile(path)
}
