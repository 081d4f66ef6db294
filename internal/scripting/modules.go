package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/fleetcalc/internal/game/ship"
)

// RegisterModules registers the fleetcalc Lua table into L:
//
//	fleetcalc.count(list, value...) counts entries of list equal to any value.
//	fleetcalc.contains(list, value) reports whether list holds value.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: fleetcalc global is defined in L.
func RegisterModules(L *lua.LState) {
	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"count":    luaCount,
		"contains": luaContains,
	})
	L.SetGlobal("fleetcalc", mod)
}

func countIn(list *lua.LTable, values []lua.LValue) int {
	n := 0
	list.ForEach(func(_, v lua.LValue) {
		for _, want := range values {
			if v == want {
				n++
				return
			}
		}
	})
	return n
}

func luaCount(L *lua.LState) int {
	list := L.CheckTable(1)
	var values []lua.LValue
	for i := 2; i <= L.GetTop(); i++ {
		values = append(values, L.Get(i))
	}
	L.Push(lua.LNumber(countIn(list, values)))
	return 1
}

func luaContains(L *lua.LState) int {
	list := L.CheckTable(1)
	L.Push(lua.LBool(countIn(list, []lua.LValue{L.Get(2)}) > 0))
	return 1
}

// shipTable converts s into the table passed to map_bonus:
// id, name, class, type, level and gears (equipped gear ids in slot order).
func shipTable(L *lua.LState, s *ship.Ship) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("id", lua.LNumber(s.ID))
	t.RawSetString("name", lua.LString(s.Name))
	t.RawSetString("class", lua.LNumber(s.Class))
	t.RawSetString("type", lua.LString(s.Type.String()))
	t.RawSetString("level", lua.LNumber(s.Level))
	gears := L.NewTable()
	for _, id := range s.GearIDs() {
		gears.Append(lua.LNumber(id))
	}
	t.RawSetString("gears", gears)
	return t
}
