package ship_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/fleetcalc/internal/game/gear"
	"github.com/cory-johannsen/fleetcalc/internal/game/master"
	"github.com/cory-johannsen/fleetcalc/internal/game/ship"
	"github.com/cory-johannsen/fleetcalc/internal/testutil"
)

func compose(t *testing.T, st ship.State) *ship.Ship {
	t.Helper()
	s, ok := ship.Compose(testutil.Registry(), nil, ship.DefaultBonusRules(), st)
	require.True(t, ok, "ship %d", st.ShipID)
	return s
}

func gears(ids ...int) map[gear.SlotKey]gear.State {
	out := make(map[gear.SlotKey]gear.State, len(ids))
	for i, id := range ids {
		if id != 0 {
			out[gear.StandardKey(i)] = gear.State{GearID: id}
		}
	}
	return out
}

func intp(v int) *int { return &v }

func TestCompose_DisplayedStats(t *testing.T) {
	s := compose(t, ship.State{
		ShipID: testutil.Fubuki,
		Level:  99,
		Gears:  gears(testutil.Gun127Twin, testutil.TorpedoQuad61, testutil.SkilledLookouts),
	})

	assert.Equal(t, 13, s.Firepower.Total())
	assert.Equal(t, 10, s.Firepower.Naked)
	assert.Equal(t, 2, s.Firepower.Equipment)
	assert.Equal(t, 1, s.Firepower.Bonus)
	assert.Equal(t, 39, s.Torpedo.Total())
	assert.Equal(t, 12, s.AntiAir.Total())
	assert.Equal(t, 49, s.Asw.Total())
	assert.Equal(t, 20, s.Los.Total())
	assert.Equal(t, 19, s.NakedLos())
	assert.Equal(t, 83, s.Evasion.Total())
	assert.Equal(t, 2, s.Accuracy.Total())
	assert.Equal(t, 15, s.MaxHP.Total())
	assert.Equal(t, 1, s.Range)
	assert.Equal(t, master.SpeedFast, s.Speed)
	assert.Empty(t, s.InvalidSlots)
	assert.Equal(t, []int{testutil.Gun127Twin, testutil.TorpedoQuad61, testutil.SkilledLookouts}, s.GearIDs())
	assert.True(t, s.Equipment.HasExclusive())
}

func TestCompose_LevelInterpolation(t *testing.T) {
	s := compose(t, ship.State{ShipID: testutil.Fubuki, Level: 50})
	// asw 20..49, los 5..19, evasion 40..79 at level 50
	assert.Equal(t, 34, s.Asw.Total())
	assert.Equal(t, 12, s.Los.Total())
	assert.Equal(t, 59, s.Evasion.Total())
}

func TestCompose_DefaultLevelAndMorale(t *testing.T) {
	s := compose(t, ship.State{ShipID: testutil.Fubuki})
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, ship.DefaultMorale, s.Morale)
	assert.Equal(t, ship.Normal, s.MoraleState())
	assert.Equal(t, ship.Less, s.DamageState())
}

func TestCompose_MarriageHP(t *testing.T) {
	s := compose(t, ship.State{ShipID: testutil.Fubuki, Level: 100})
	assert.Equal(t, 19, s.MaxHP.Total())

	s = compose(t, ship.State{ShipID: testutil.Fubuki, Level: 100, Mod: ship.Modernization{MaxHP: 2}})
	assert.Equal(t, 21, s.MaxHP.Total())

	// Nagato: base 80 + 8 = 88, cap 99
	s = compose(t, ship.State{ShipID: testutil.Nagato, Level: 175, Mod: ship.Modernization{MaxHP: 30}})
	assert.Equal(t, 99, s.MaxHP.Total())
}

func TestCompose_ModernizationCapped(t *testing.T) {
	s := compose(t, ship.State{ShipID: testutil.Nagato, Mod: ship.Modernization{Firepower: 50, Luck: 5}})
	assert.Equal(t, 99, s.Firepower.Naked)
	assert.Equal(t, 25, s.Luck.Total())
}

func TestCompose_UnknownIDs(t *testing.T) {
	_, ok := ship.Compose(testutil.Registry(), nil, nil, ship.State{ShipID: 424242})
	assert.False(t, ok)

	s := compose(t, ship.State{ShipID: testutil.Fubuki, Gears: gears(424242, testutil.Gun127Twin)})
	assert.Nil(t, s.Equipment.Gear("g1"))
	assert.NotNil(t, s.Equipment.Gear("g2"))
}

func TestCompose_AbsentBoundsFallBackToZero(t *testing.T) {
	s := compose(t, ship.State{ShipID: testutil.Hayasui, Level: 99})
	v, known := s.Asw.NakedValue()
	assert.False(t, known)
	assert.Equal(t, 0, v)
	assert.Equal(t, 0, s.Asw.Total())
	_, known = s.Los.NakedValue()
	assert.False(t, known)
	_, known = s.Firepower.NakedValue()
	assert.True(t, known)
}

func TestCompose_InvalidSlots(t *testing.T) {
	s := compose(t, ship.State{ShipID: testutil.Fubuki, Gears: gears(testutil.Zuiun, testutil.Gun127Twin)})
	assert.Equal(t, []gear.SlotKey{"g1"}, s.InvalidSlots)
}

func TestCompose_AbyssalHasNoExclusiveSlot(t *testing.T) {
	s := compose(t, ship.State{ShipID: testutil.AbyssalDD})
	assert.False(t, s.Equipment.HasExclusive())
}

func TestCompose_CurrentHPClamped(t *testing.T) {
	s := compose(t, ship.State{ShipID: testutil.Fubuki, CurrentHP: intp(99)})
	assert.Equal(t, 15, s.Health.Current)
	s = compose(t, ship.State{ShipID: testutil.Fubuki, CurrentHP: intp(7)})
	assert.Equal(t, ship.Chuuha, s.DamageState())
	s = compose(t, ship.State{ShipID: testutil.Fubuki, CurrentHP: intp(-4)})
	assert.Equal(t, ship.Sunk, s.DamageState())
}

func TestSpeed_EngineRule(t *testing.T) {
	exclusive := func(base []int, ex int) ship.State {
		st := ship.State{ShipID: testutil.Nagato, Gears: gears(base...)}
		if ex != 0 {
			st.Gears[gear.ExclusiveKey] = gear.State{GearID: ex}
		}
		return st
	}
	assert.Equal(t, master.SpeedSlow, compose(t, exclusive(nil, testutil.Turbine)).Speed)
	assert.Equal(t, master.SpeedFast, compose(t, exclusive([]int{testutil.Boiler}, testutil.Turbine)).Speed)
	assert.Equal(t, master.SpeedFastPlus,
		compose(t, exclusive([]int{testutil.Boiler, testutil.NewModelBoiler}, testutil.Turbine)).Speed)
	assert.Equal(t, master.SpeedSlow, compose(t, exclusive([]int{testutil.Boiler}, 0)).Speed)
}

func TestCompose_RangeFromGear(t *testing.T) {
	s := compose(t, ship.State{ShipID: testutil.Fubuki, Gears: gears(testutil.Secondary152)})
	assert.Equal(t, 2, s.Range)
}

func TestBonusRules_PerGearAndStars(t *testing.T) {
	st := ship.State{ShipID: testutil.Akizuki, Gears: map[gear.SlotKey]gear.State{
		"g1": {GearID: testutil.HighAngle10cmFD, Stars: 4},
		"g2": {GearID: testutil.HighAngle10cmFD},
	}}
	s := compose(t, st)
	assert.Equal(t, ship.StatDelta{Firepower: 2, AntiAir: 4, Evasion: 1}, s.Bonus)
}

func TestBonusRules_MinCount(t *testing.T) {
	one := compose(t, ship.State{ShipID: testutil.Nagato, Gears: gears(testutil.Type22Radar)})
	assert.Equal(t, ship.StatDelta{}, one.Bonus)
	two := compose(t, ship.State{ShipID: testutil.Nagato, Gears: gears(testutil.Type22Radar, testutil.Type22Radar)})
	assert.Equal(t, ship.StatDelta{Accuracy: 1, Evasion: 1}, two.Bonus)
}

func TestLoadBonusRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bonus.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rules:
  - name: twin guns on Fubuki class
    ships: {classes: [12]}
    gears: {ids: [2]}
    per_gear: true
    bonus: {firepower: 2, anti_air: 1}
`), 0o644))
	rules, err := ship.LoadBonusRules(path)
	require.NoError(t, err)
	require.Len(t, rules, 1)

	s, ok := ship.Compose(testutil.Registry(), nil, rules, ship.State{
		ShipID: testutil.Fubuki, Gears: gears(testutil.Gun127Twin, testutil.Gun127Twin),
	})
	require.True(t, ok)
	assert.Equal(t, ship.StatDelta{Firepower: 4, AntiAir: 2}, s.Bonus)
}

func TestLoadBonusRules_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bonus.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rules:
  - name: broken
    ships: {types: [ZZ]}
    gears: {}
`), 0o644))
	_, err := ship.LoadBonusRules(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ZZ")
	assert.Contains(t, err.Error(), "gear filter is empty")
}

func TestDefaultBonusRules_Valid(t *testing.T) {
	assert.NoError(t, ship.DefaultBonusRules().Validate())
}

func TestAdjustedAntiAir(t *testing.T) {
	s := compose(t, ship.State{ShipID: testutil.Akizuki, Gears: gears(testutil.HighAngle10cmFD, testutil.HighAngle10cmFD, testutil.MG77)})
	assert.Equal(t, 142.0, s.AdjustedAntiAir())

	odd := compose(t, ship.State{ShipID: testutil.Akizuki, Mod: ship.Modernization{AntiAir: 1}})
	assert.Equal(t, 50.0, odd.AdjustedAntiAir())

	enemy := compose(t, ship.State{ShipID: testutil.AbyssalDD})
	assert.Equal(t, 0.0, enemy.AdjustedAntiAir())
}

func TestAdjustedAntiAir_EnemyDoublesRootOfNaked(t *testing.T) {
	princess := compose(t, ship.State{ShipID: testutil.AirfieldPrinces})
	require.True(t, princess.IsAbyssal())
	// 2 * floor(sqrt(70)), no even rounding.
	assert.Equal(t, 16.0, princess.AdjustedAntiAir())
}

func TestIsCarrierShelling(t *testing.T) {
	assert.True(t, compose(t, ship.State{ShipID: testutil.Akagi}).IsCarrierShelling())
	assert.False(t, compose(t, ship.State{ShipID: testutil.Hayasui}).IsCarrierShelling())
	assert.True(t, compose(t, ship.State{ShipID: testutil.Hayasui, Gears: gears(testutil.Type97Torpedo)}).IsCarrierShelling())
	assert.False(t, compose(t, ship.State{ShipID: testutil.Nagato}).IsCarrierShelling())
}

func TestDamageStateOf_Thresholds(t *testing.T) {
	assert.Equal(t, ship.Less, ship.DamageStateOf(40, 40))
	assert.Equal(t, ship.Less, ship.DamageStateOf(31, 40))
	assert.Equal(t, ship.Shouha, ship.DamageStateOf(30, 40))
	assert.Equal(t, ship.Chuuha, ship.DamageStateOf(20, 40))
	assert.Equal(t, ship.Taiha, ship.DamageStateOf(10, 40))
	assert.Equal(t, ship.Sunk, ship.DamageStateOf(0, 40))
}

func TestDamageState_Modifiers(t *testing.T) {
	assert.Equal(t, 0.7, ship.Chuuha.ShellingModifier())
	assert.Equal(t, 0.4, ship.Taiha.ShellingModifier())
	assert.Equal(t, 0.8, ship.Chuuha.TorpedoModifier())
	assert.Equal(t, 0.0, ship.Taiha.TorpedoModifier())
	assert.Equal(t, 1.0, ship.Shouha.NightModifier())
}

func TestDamageStateOf_Property_Monotone(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		max := rapid.IntRange(1, 1000).Draw(t, "max")
		prev := ship.Sunk
		for hp := 0; hp <= max; hp++ {
			d := ship.DamageStateOf(hp, max)
			if d > prev {
				t.Fatalf("damage state worsened from %v to %v at hp %d", prev, d, hp)
			}
			prev = d
		}
		if prev != ship.Less {
			t.Fatalf("full health classified as %v", prev)
		}
	})
}

func TestMoraleStateOf(t *testing.T) {
	assert.Equal(t, ship.Sparkle, ship.MoraleStateOf(53))
	assert.Equal(t, ship.Normal, ship.MoraleStateOf(52))
	assert.Equal(t, ship.Normal, ship.MoraleStateOf(33))
	assert.Equal(t, ship.Orange, ship.MoraleStateOf(20))
	assert.Equal(t, ship.Red, ship.MoraleStateOf(19))
	assert.Equal(t, 1.2, ship.Sparkle.AccuracyModifier())
	assert.Equal(t, 1.4, ship.Red.DefenderModifier())
}
