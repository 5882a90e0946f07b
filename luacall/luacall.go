// Package luacall adapts a sandboxed Lua snippet into a shortcode.Callback,
// so a plugin can ship render logic as data next to its definition map.
//
// The snippet must define a global function
//
//	function expand(attrs, content, tag)
//
// which receives the merged attributes as a table and returns the expansion
// output as a string.
package luacall

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/pluglink/shortcode/shortcode"
)

const expandFn = "expand"

var (
	// ErrInvalidScript is returned when the snippet does not load.
	ErrInvalidScript = errors.New("luacall: script failed to load")
	// ErrMissingExpand is returned when the snippet defines no expand function.
	ErrMissingExpand = errors.New("luacall: script defines no expand function")
)

// sandbox strips the state of everything that could execute commands, touch
// the filesystem, or load external code. string, table, and math stay.
func sandbox(L *lua.LState) {
	L.SetGlobal("os", lua.LNil)
	L.SetGlobal("io", lua.LNil)
	L.SetGlobal("require", lua.LNil)
	L.SetGlobal("dofile", lua.LNil)
	L.SetGlobal("loadfile", lua.LNil)
	L.SetGlobal("load", lua.LNil)
	L.SetGlobal("loadstring", lua.LNil)
	L.SetGlobal("debug", lua.LNil)
}

func newSandboxedState() *lua.LState {
	L := lua.NewState()
	sandbox(L)
	return L
}

// New compiles script and returns a Callback that executes its expand
// function. The script is checked once up front; each invocation then runs
// in a fresh sandboxed state, so the returned Callback is safe for
// concurrent render-time use.
func New(script string) (shortcode.Callback, error) {
	L := newSandboxedState()
	defer L.Close()

	if err := L.DoString(script); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if L.GetGlobal(expandFn).Type() != lua.LTFunction {
		return nil, ErrMissingExpand
	}

	return func(ctx context.Context, attrs shortcode.Attributes, content, tag string) string {
		return run(ctx, script, attrs, content, tag)
	}, nil
}

// run executes the script's expand function in a fresh sandboxed state.
// Errors are logged and expand to empty output, matching the registry's
// log-and-continue policy.
func run(ctx context.Context, script string, attrs shortcode.Attributes, content, tag string) string {
	L := newSandboxedState()
	defer L.Close()
	L.SetContext(ctx)

	if err := L.DoString(script); err != nil {
		log.Error().Err(err).Str("tag", tag).Msg("lua shortcode script failed to load")
		return ""
	}

	table := L.NewTable()
	for key, value := range attrs {
		table.RawSetString(key, lua.LString(value))
	}

	err := L.CallByParam(lua.P{
		Fn:      L.GetGlobal(expandFn),
		NRet:    1,
		Protect: true,
	}, table, lua.LString(content), lua.LString(tag))
	if err != nil {
		log.Error().Err(err).Str("tag", tag).Msg("lua shortcode expand failed")
		return ""
	}

	result := L.Get(-1)
	L.Pop(1)
	return lua.LVAsString(result)
}
