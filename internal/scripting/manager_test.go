package scripting_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/fleetcalc/internal/game/gear"
	"github.com/cory-johannsen/fleetcalc/internal/game/ship"
	"github.com/cory-johannsen/fleetcalc/internal/scripting"
	"github.com/cory-johannsen/fleetcalc/internal/testutil"
)

func newTestManager(t testing.TB, instLimit int) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	mgr := scripting.NewManager(instLimit, zap.New(core))
	t.Cleanup(mgr.Close)
	return mgr, logs
}

func writeTempLua(t testing.TB, filename, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(src), 0644))
	return dir
}

func nagato(t testing.TB, gearIDs ...int) *ship.Ship {
	t.Helper()
	gs := make(map[gear.SlotKey]gear.State, len(gearIDs))
	for i, g := range gearIDs {
		gs[gear.StandardKey(i)] = gear.State{GearID: g}
	}
	s, ok := ship.Compose(testutil.Registry(), nil, ship.DefaultBonusRules(),
		ship.State{ShipID: testutil.Nagato, Level: 99, Gears: gs})
	require.True(t, ok)
	return s
}

func TestManager_NoScripts(t *testing.T) {
	mgr, _ := newTestManager(t, 0)
	assert.Equal(t, 0.0, mgr.MapBonus(nagato(t)))
}

func TestManager_MapBonus_ShipTable(t *testing.T) {
	mgr, logs := newTestManager(t, 0)
	dir := writeTempLua(t, "bonus.lua", `
		function map_bonus(ship)
			if ship.id ~= 80 or ship.type ~= "BB" or ship.level ~= 99 then
				return 1
			end
			if fleetcalc.contains(ship.gears, 9) then
				return 1.1 + 0.05 * fleetcalc.count(ship.gears, 9, 35)
			end
			return 1.05
		end
	`)
	require.NoError(t, mgr.LoadDir(dir))
	assert.Equal(t, 1, logs.FilterMessage("scripting: loaded map bonus scripts").Len())

	assert.Equal(t, 1.05, mgr.MapBonus(nagato(t)))
	assert.InDelta(t, 1.2, mgr.MapBonus(nagato(t, testutil.Gun46Triple, testutil.Type3Shell)), 1e-12)
}

func TestManager_LoadDir_LexicographicOrder(t *testing.T) {
	mgr, _ := newTestManager(t, 0)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.lua"), []byte(`function map_bonus(s) return 1.1 end`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.lua"), []byte(`function map_bonus(s) return 1.3 end`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`not lua`), 0644))
	require.NoError(t, mgr.LoadDir(dir))
	assert.Equal(t, 1.3, mgr.MapBonus(nagato(t)))
}

func TestManager_LoadDir_ErrorKeepsPreviousVM(t *testing.T) {
	mgr, _ := newTestManager(t, 0)
	require.NoError(t, mgr.LoadDir(writeTempLua(t, "ok.lua", `function map_bonus(s) return 1.2 end`)))

	err := mgr.LoadDir(writeTempLua(t, "bad.lua", `function map_bonus(`))
	require.Error(t, err)
	assert.Equal(t, 1.2, mgr.MapBonus(nagato(t)))

	assert.Error(t, mgr.LoadDir(filepath.Join(t.TempDir(), "missing")))
}

func TestManager_MapBonus_RuntimeErrorLogged(t *testing.T) {
	mgr, logs := newTestManager(t, 0)
	require.NoError(t, mgr.LoadDir(writeTempLua(t, "err.lua", `function map_bonus(s) error("boom") end`)))
	assert.Equal(t, 0.0, mgr.MapBonus(nagato(t)))
	assert.Equal(t, 1, logs.FilterMessage("scripting: Lua runtime error").Len())
}

func TestManager_MapBonus_NonNumeric(t *testing.T) {
	mgr, _ := newTestManager(t, 0)
	require.NoError(t, mgr.LoadDir(writeTempLua(t, "s.lua", `function map_bonus(s) return "x" end`)))
	assert.Equal(t, 0.0, mgr.MapBonus(nagato(t)))
}

func TestManager_MapBonus_InstructionLimitPerCall(t *testing.T) {
	mgr, _ := newTestManager(t, 500)
	require.NoError(t, mgr.LoadDir(writeTempLua(t, "spin.lua", `
		function map_bonus(s)
			if s.level == 1 then
				while true do end
			end
			return 1.1
		end
	`)))
	s := nagato(t)
	for i := 0; i < 20; i++ {
		assert.Equal(t, 1.1, mgr.MapBonus(s), "budget refills on every call")
	}
	lv1, ok := ship.Compose(testutil.Registry(), nil, ship.DefaultBonusRules(), ship.State{ShipID: testutil.Nagato})
	require.True(t, ok)
	assert.Equal(t, 0.0, mgr.MapBonus(lv1))
	assert.Equal(t, 1.1, mgr.MapBonus(s), "VM recovers after a runaway script")
}

func TestManager_ConcurrentCalls(t *testing.T) {
	mgr, _ := newTestManager(t, 0)
	require.NoError(t, mgr.LoadDir(writeTempLua(t, "c.lua", `function map_bonus(s) return 1.15 end`)))
	s := nagato(t)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, 1.15, mgr.MapBonus(s))
		}()
	}
	wg.Wait()
}
