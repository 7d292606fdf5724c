// Package initscript runs the user's init.lua during bootstrap.
//
// The script executes in a restricted Lua state exposing a single `doom`
// table through which user configuration flows back into the bootstrap
// layer: autoload rule registration, settings overrides, and read-only
// environment access. Scripted configuration mistakes (a pattern that
// does not compile, an unknown settings key) fail the script load, which
// matches the fail-fast policy for registration-time errors.
package initscript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/jhirn/doom-emacs/internal/autoload"
	"github.com/jhirn/doom-emacs/internal/config"
	"github.com/jhirn/doom-emacs/internal/location"
	"github.com/jhirn/doom-emacs/internal/mode"
)

// File returns the conventional init script path for a layout:
// <root>/init.lua.
func File(loc location.Registry) string {
	return filepath.Join(loc.Root, "init.lua")
}

// Runner executes init scripts against the bootstrap state.
type Runner struct {
	table    *autoload.Table
	modes    *mode.Registry
	settings *config.Settings
}

// New creates a runner that registers rules on table, resolves mode
// names through modes, and applies doom.set calls to settings.
func New(table *autoload.Table, modes *mode.Registry, settings *config.Settings) *Runner {
	return &Runner{table: table, modes: modes, settings: settings}
}

// Run executes the script at path. A missing script is not an error; a
// tree without an init.lua simply boots with file/env configuration
// alone.
func (r *Runner) Run(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	L := r.newState()
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		return fmt.Errorf("init script %s: %w", path, err)
	}
	return nil
}

// RunString executes script source directly. Used by tests and by
// embedded configuration snippets.
func (r *Runner) RunString(src string) error {
	L := r.newState()
	defer L.Close()

	if err := L.DoString(src); err != nil {
		return fmt.Errorf("init script: %w", err)
	}
	return nil
}

// newState builds a sandboxed Lua state with the doom table installed.
func (r *Runner) newState() *lua.LState {
	L := lua.NewState()

	// The init script configures the editor; it has no business loading
	// arbitrary chunks or touching the process environment beyond the
	// read-only doom.getenv.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "os", "io"} {
		L.SetGlobal(name, lua.LNil)
	}

	doom := L.NewTable()
	L.SetFuncs(doom, map[string]lua.LGFunction{
		"autoload": r.luaAutoload,
		"set":      r.luaSet,
		"get":      r.luaGet,
		"getenv":   luaGetenv,
	})
	L.SetGlobal("doom", doom)

	return L
}

// luaAutoload implements doom.autoload(pattern, mode...).
func (r *Runner) luaAutoload(L *lua.LState) int {
	pattern := L.CheckString(1)
	if L.GetTop() < 2 {
		L.RaiseError("doom.autoload: at least one mode name required")
		return 0
	}

	for i := 2; i <= L.GetTop(); i++ {
		modeName := L.CheckString(i)
		if err := r.table.Register(pattern, r.modes.Action(modeName)); err != nil {
			L.RaiseError("doom.autoload: %v", err)
			return 0
		}
	}
	return 0
}

// luaSet implements doom.set(key, value).
func (r *Runner) luaSet(L *lua.LState) int {
	key := L.CheckString(1)
	val := L.CheckAny(2)

	if err := r.setKey(key, val); err != nil {
		L.RaiseError("doom.set: %v", err)
	}
	return 0
}

// luaGet implements doom.get(key).
func (r *Runner) luaGet(L *lua.LState) int {
	key := L.CheckString(1)

	v, ok := r.getKey(key)
	if !ok {
		L.RaiseError("doom.get: unknown key %q", key)
		return 0
	}
	L.Push(v)
	return 1
}

// luaGetenv implements doom.getenv(name).
func luaGetenv(L *lua.LState) int {
	name := L.CheckString(1)
	if v, ok := os.LookupEnv(name); ok {
		L.Push(lua.LString(v))
	} else {
		L.Push(lua.LNil)
	}
	return 1
}

func (r *Runner) setKey(key string, val lua.LValue) error {
	switch strings.ToLower(key) {
	case "encoding":
		r.settings.Encoding = lua.LVAsString(val)
	case "history_length":
		r.settings.HistoryLength = int(lua.LVAsNumber(val))
	case "gc_percent":
		r.settings.GCPercent = int(lua.LVAsNumber(val))
	case "log_level":
		r.settings.LogLevel = lua.LVAsString(val)
	case "backup.enabled":
		r.settings.Backup.Enabled = lua.LVAsBool(val)
	case "backup.dir":
		r.settings.Backup.Dir = lua.LVAsString(val)
	case "backup.versioned":
		r.settings.Backup.Versioned = lua.LVAsBool(val)
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

func (r *Runner) getKey(key string) (lua.LValue, bool) {
	switch strings.ToLower(key) {
	case "encoding":
		return lua.LString(r.settings.Encoding), true
	case "history_length":
		return lua.LNumber(r.settings.HistoryLength), true
	case "gc_percent":
		return lua.LNumber(r.settings.GCPercent), true
	case "log_level":
		return lua.LString(r.settings.LogLevel), true
	case "backup.enabled":
		return lua.LBool(r.settings.Backup.Enabled), true
	case "backup.dir":
		return lua.LString(r.settings.Backup.Dir), true
	case "backup.versioned":
		return lua.LBool(r.settings.Backup.Versioned), true
	default:
		return lua.LNil, false
	}
}
