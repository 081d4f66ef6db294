// Package scripting runs map bonus scripts in a sandboxed GopherLua VM.
// Scripts define a map_bonus(ship) function returning the post-cap
// multiplier a ship receives on the current map.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the maximum number of Lua opcodes allowed per
// call when no override is configured.
const DefaultInstructionLimit = 100_000

// opcodeBudget cancels itself once its budget is spent. GopherLua polls
// Done on every opcode of a VM with a context, so the budget counts opcodes.
type opcodeBudget struct {
	context.Context
	stop context.CancelFunc
	left atomic.Int64
}

func (b *opcodeBudget) Done() <-chan struct{} {
	if b.left.Add(-1) <= 0 {
		b.stop()
	}
	return b.Context.Done()
}

func newOpcodeBudget(limit int) *opcodeBudget {
	ctx, stop := context.WithCancel(context.Background())
	b := &opcodeBudget{Context: ctx, stop: stop}
	b.left.Store(int64(limit))
	return b
}

// Limit installs a fresh budget of limit opcodes on L. Call it before every
// script execution; the budget does not refill on its own.
//
// Precondition: limit >= 0; 0 uses DefaultInstructionLimit.
// Postcondition: The returned cancel func releases the budget's context.
func Limit(L *lua.LState, limit int) context.CancelFunc {
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}
	b := newOpcodeBudget(limit)
	L.SetContext(b)
	return b.stop
}

// NewSandboxedState creates a GopherLua LState with:
//   - Only safe stdlib loaded: base, table, string, math
//   - Dangerous globals removed: dofile, loadfile, load, collectgarbage, require
//   - Execution limited to at most instLimit Lua opcodes
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit.
// Postcondition: Returns a non-nil LState and the cancel func of its first
// budget. The caller owns the LState and must call L.Close() when done.
func NewSandboxedState(instLimit int) (*lua.LState, context.CancelFunc) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	return L, Limit(L, instLimit)
}
