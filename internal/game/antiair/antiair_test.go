package antiair_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/fleetcalc/internal/game/antiair"
	"github.com/cory-johannsen/fleetcalc/internal/game/battle"
	"github.com/cory-johannsen/fleetcalc/internal/game/fleet"
	"github.com/cory-johannsen/fleetcalc/internal/game/gear"
	"github.com/cory-johannsen/fleetcalc/internal/game/roll"
	"github.com/cory-johannsen/fleetcalc/internal/game/ship"
	"github.com/cory-johannsen/fleetcalc/internal/testutil"
)

func compose(t *testing.T, id int, gearIDs ...int) *ship.Ship {
	t.Helper()
	gs := make(map[gear.SlotKey]gear.State, len(gearIDs))
	for i, g := range gearIDs {
		gs[gear.StandardKey(i)] = gear.State{GearID: g}
	}
	s, ok := ship.Compose(testutil.Registry(), nil, ship.DefaultBonusRules(), ship.State{ShipID: id, Level: 1, Gears: gs})
	require.True(t, ok)
	return s
}

func akizuki(t *testing.T) *ship.Ship {
	return compose(t, testutil.Akizuki, testutil.HighAngle10cmFD, testutil.HighAngle10cmFD, testutil.Type13AirRadar)
}

func TestDefs(t *testing.T) {
	defs := antiair.Defs()
	require.NotEmpty(t, defs)
	for i := 1; i < len(defs); i++ {
		assert.Less(t, defs[i-1].ID, defs[i].ID)
	}
	for _, d := range defs {
		assert.Greater(t, d.BaseRate, 0.0, d.ID)
		assert.LessOrEqual(t, d.BaseRate, 1.0, d.ID)
		assert.Greater(t, d.FixedModifier, 1.0, d.ID)
	}
	d, ok := antiair.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, 7, d.MinBonus)
	_, ok = antiair.Lookup(999)
	assert.False(t, ok)
}

func TestEligible(t *testing.T) {
	tests := []struct {
		name string
		ship *ship.Ship
		want []int
	}{
		{"akizuki", akizuki(t), []int{1, 2, 3, 5, 8}},
		{"isuzu kai ni", compose(t, testutil.IsuzuKai2, testutil.HighAngle10cm, testutil.Triple25Conc, testutil.Type13AirRadar), []int{13, 14, 15}},
		{"high-angle concentrated radar", compose(t, testutil.Fubuki, testutil.HighAngle10cm, testutil.Triple25Conc, testutil.Type13AirRadar), []int{13}},
		{"battleship", compose(t, testutil.Nagato, testutil.Gun46Triple, testutil.Type3Shell, testutil.Type94AAFD, testutil.Type13AirRadar), []int{4, 6}},
		{"plain destroyer", compose(t, testutil.Fubuki, testutil.Gun127Twin, testutil.MG77), nil},
		{"enemy", compose(t, testutil.AbyssalDD, testutil.AbyssalGun), nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, antiair.Eligible(tc.ship))
		})
	}
}

func TestShipRates(t *testing.T) {
	m := antiair.ShipRates(akizuki(t))
	assert.Equal(t, []int{1, 2, 3, 5, 8}, m.Keys())
	assert.InDelta(t, 0.65, m.Get(1), 1e-12)
	assert.InDelta(t, 0.35*0.58, m.Get(2), 1e-12)
	assert.InDelta(t, 1-0.35*0.42*0.5*0.45*0.5, m.Total(), 1e-12)
}

func TestFleetRates(t *testing.T) {
	a := akizuki(t)
	f := fleet.New(map[fleet.ShipKey]*ship.Ship{"s1": a, "s2": akizuki(t)})
	single := antiair.ShipRates(a)
	fr := antiair.FleetRates(f)

	miss := 1 - single.Total()
	assert.InDelta(t, 1-miss*miss, fr.Total(), 1e-12)
	assert.Equal(t, 8, fr.Keys()[0], "highest id is resolved first")
}

func TestCalculate(t *testing.T) {
	sd := antiair.Calculate(antiair.Input{AdjustedAntiAir: 142, FleetAntiAir: 11, Side: battle.Player})
	assert.InDelta(t, 0.355, sd.Proportional, 1e-12)
	assert.Equal(t, 15, sd.Fixed)
	assert.Equal(t, 1, sd.Minimum)

	def, _ := antiair.Lookup(1)
	withCutin := antiair.Calculate(antiair.Input{AdjustedAntiAir: 142, FleetAntiAir: 11, Side: battle.Player, Cutin: &def})
	assert.Equal(t, 26, withCutin.Fixed)
	assert.Equal(t, 7, withCutin.Minimum)

	enemy := antiair.Calculate(antiair.Input{AdjustedAntiAir: 40, FleetAntiAir: 10, Side: battle.Enemy})
	assert.Equal(t, 0, enemy.Minimum)
	assert.Equal(t, 4, enemy.Fixed)
}

func TestCombinedModifier(t *testing.T) {
	assert.Equal(t, 1.0, antiair.CombinedModifier(battle.Position{}))
	assert.Equal(t, 0.72, antiair.CombinedModifier(battle.Position{FleetType: battle.CarrierTaskForce}))
	assert.Equal(t, 0.48, antiair.CombinedModifier(battle.Position{FleetType: battle.CarrierTaskForce, Role: battle.Escort}))
	assert.Equal(t, 0.8, antiair.CombinedModifier(battle.Position{Side: battle.Enemy, FleetType: battle.EnemyCombined}))
}

func TestShootDown_Sample(t *testing.T) {
	sd := antiair.Calculate(antiair.Input{AdjustedAntiAir: 40, FleetAntiAir: 10, Side: battle.Player})
	assert.Equal(t, 7, sd.Sample(18, &roll.Fixed{Values: []float64{0.3, 0.3}}))
	assert.Equal(t, 1, sd.Sample(18, &roll.Fixed{Values: []float64{0.9, 0.9}}))
	assert.Equal(t, 6, sd.Sample(18, &roll.Fixed{Values: []float64{0.9, 0.3}}))
	assert.Equal(t, 2, sd.Sample(2, &roll.Fixed{Values: []float64{0.3, 0.3}}))
}

func TestShootDown_Property_SampleWithinSlot(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		sd := antiair.Calculate(antiair.Input{
			AdjustedAntiAir: rapid.Float64Range(0, 300).Draw(rt, "adj"),
			FleetAntiAir:    rapid.Float64Range(0, 200).Draw(rt, "fleet"),
		})
		slot := rapid.IntRange(0, 60).Draw(rt, "slot")
		src := roll.NewSeeded(rapid.Uint64().Draw(rt, "seed"))
		got := sd.Sample(slot, src)
		assert.GreaterOrEqual(rt, got, 0)
		assert.LessOrEqual(rt, got, slot)
	})
}
