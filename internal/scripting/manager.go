package scripting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/fleetcalc/internal/game/ship"
)

// MapBonusHook is the Lua global the Manager calls for every ship.
const MapBonusHook = "map_bonus"

// Manager owns one sandboxed LState loaded with every map bonus script.
//
// Manager is safe for concurrent use; calls into the VM are serialized.
type Manager struct {
	mu        sync.Mutex
	L         *lua.LState
	cancel    context.CancelFunc
	instLimit int
	logger    *zap.Logger
}

// NewManager creates a Manager with an empty VM.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a non-nil Manager; MapBonus returns 0 until scripts
// are loaded.
func NewManager(instLimit int, logger *zap.Logger) *Manager {
	L, cancel := NewSandboxedState(instLimit)
	RegisterModules(L)
	return &Manager{L: L, cancel: cancel, instLimit: instLimit, logger: logger}
}

// LoadDir replaces the VM with a fresh one that has executed every *.lua file
// in scriptDir in lexicographic order.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: On error the previous VM stays in place.
func (m *Manager) LoadDir(scriptDir string) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	L, cancel := NewSandboxedState(m.instLimit)
	RegisterModules(L)
	for _, path := range luaFiles {
		if err := L.DoFile(path); err != nil {
			cancel()
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.mu.Lock()
	m.cancel()
	m.L.Close()
	m.L, m.cancel = L, cancel
	m.mu.Unlock()

	m.logger.Info("scripting: loaded map bonus scripts",
		zap.String("dir", scriptDir),
		zap.Int("files", len(luaFiles)),
	)
	return nil
}

// MapBonus calls map_bonus with s converted to a table. It returns 0 when
// the hook is undefined, fails, or returns anything but a positive number.
// Lua runtime errors are logged at Warn level and never propagated.
//
// Precondition: s must be non-nil.
func (m *Manager) MapBonus(s *ship.Ship) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	fn := m.L.GetGlobal(MapBonusHook)
	if fn == lua.LNil {
		return 0
	}

	m.cancel()
	m.cancel = Limit(m.L, m.instLimit)
	if err := m.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, shipTable(m.L, s)); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", MapBonusHook),
			zap.Int("ship", s.ID),
			zap.Error(err),
		)
		return 0
	}

	ret := m.L.Get(-1)
	m.L.Pop(1)
	n, ok := ret.(lua.LNumber)
	if !ok || n <= 0 {
		return 0
	}
	return float64(n)
}

// Close releases the VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancel()
	m.L.Close()
}
