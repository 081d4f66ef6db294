package calc_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/fleetcalc/internal/calc"
	"github.com/cory-johannsen/fleetcalc/internal/config"
	"github.com/cory-johannsen/fleetcalc/internal/game/master"
)

const gearsJSON = `[
  {"id": 2, "name": "12.7cm Twin Gun Mount", "category": 1, "icon": 1, "firepower": 2, "antiAir": 2, "range": 1, "improvable": true}
]`

const shipsJSON = `[
  {"id": 9, "sortId": 11, "name": "Fubuki", "shipType": 2, "shipClass": 12, "slots": [0, 0],
   "maxHp": [15, 31], "firepower": [10, 29], "torpedo": [27, 79], "antiAir": [10, 39], "armor": [5, 19],
   "asw": [20, 49], "los": [5, 19], "evasion": [40, 79], "luck": [10, 49], "speed": 10, "range": 1}
]`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func dataDir(t *testing.T) config.DataConfig {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, master.GearsFile, gearsJSON)
	writeFile(t, dir, master.ShipsFile, shipsJSON)
	return config.DataConfig{MasterDir: dir}
}

func fubukiQuery() calc.Query {
	return calc.Query{Deck: json.RawMessage(
		`{"version":4,"f1":{"s1":{"id":9,"lv":99,"items":{"i1":{"id":2}}}}}`)}
}

func TestLoad_MasterOnly(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	svc, closer, err := calc.Load(dataDir(t), config.RandomConfig{}, zap.New(core))
	require.NoError(t, err)
	defer closer()

	entries := logs.FilterMessage("master data loaded").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 1, entries[0].ContextMap()["gears"])
	assert.EqualValues(t, 1, entries[0].ContextMap()["ships"])

	r, err := svc.Analyze(fubukiQuery())
	require.NoError(t, err)
	require.Len(t, r.Ships, 1)
	assert.Equal(t, "Fubuki", r.Ships[0].Name)
	assert.Zero(t, r.Ships[0].MapBonus)
}

func TestLoad_Overrides(t *testing.T) {
	data := dataDir(t)
	dir := t.TempDir()
	data.RulesFile = writeFile(t, dir, "rules.yaml", "formations:\n  diamond:\n    fleet_anti_air: 1.7\n")
	data.BonusFile = writeFile(t, dir, "bonus.yaml", `
rules:
  - name: twin guns on Fubuki class
    ships: {classes: [12]}
    gears: {ids: [2]}
    bonus: {firepower: 2}
`)
	scripts := filepath.Join(dir, "scripts")
	require.NoError(t, os.Mkdir(scripts, 0o755))
	writeFile(t, scripts, "e3.lua", `function map_bonus(s) if s.id == 9 then return 1.25 end return 1 end`)
	data.ScriptDir = scripts

	svc, closer, err := calc.Load(data, config.RandomConfig{Seed: 42}, zap.NewNop())
	require.NoError(t, err)
	defer closer()

	r, err := svc.Analyze(fubukiQuery())
	require.NoError(t, err)
	assert.Equal(t, 1.25, r.Ships[0].MapBonus)

	base, closeBase, err := calc.Load(dataDir(t), config.RandomConfig{}, zap.NewNop())
	require.NoError(t, err)
	defer closeBase()
	rb, err := base.Analyze(fubukiQuery())
	require.NoError(t, err)
	assert.Equal(t, rb.Ships[0].Stats.Firepower+2, r.Ships[0].Stats.Firepower)
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]func(t *testing.T) config.DataConfig{
		"missing master": func(t *testing.T) config.DataConfig {
			return config.DataConfig{MasterDir: filepath.Join(t.TempDir(), "none")}
		},
		"missing rules": func(t *testing.T) config.DataConfig {
			d := dataDir(t)
			d.RulesFile = filepath.Join(t.TempDir(), "none.yaml")
			return d
		},
		"missing bonus": func(t *testing.T) config.DataConfig {
			d := dataDir(t)
			d.BonusFile = filepath.Join(t.TempDir(), "none.yaml")
			return d
		},
		"broken script": func(t *testing.T) config.DataConfig {
			d := dataDir(t)
			d.ScriptDir = t.TempDir()
			writeFile(t, d.ScriptDir, "bad.lua", `function map_bonus(`)
			return d
		},
	}
	for name, build := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := calc.Load(build(t), config.RandomConfig{}, zap.NewNop())
			assert.Error(t, err, fmt.Sprintf("case %s", name))
		})
	}
}
