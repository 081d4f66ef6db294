package improvement_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/fleetcalc/internal/game/improvement"
	"github.com/cory-johannsen/fleetcalc/internal/game/master"
)

func TestApply(t *testing.T) {
	assert.Equal(t, 0.0, improvement.Apply(nil, 10))
	assert.InDelta(t, 2.0, improvement.Apply(&improvement.Formula{Multiplier: 0.2, Shape: improvement.Linear}, 10), 1e-9)
	assert.InDelta(t, 1.5*math.Sqrt(4), improvement.Apply(&improvement.Formula{Multiplier: 1.5, Shape: improvement.Sqrt}, 4), 1e-9)
	assert.Equal(t, 0.0, improvement.Apply(&improvement.Formula{Multiplier: 3, Shape: improvement.Sqrt}, 0))
}

func TestApply_Property_NonNegativeAndMonotone(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := &improvement.Formula{
			Multiplier: rapid.Float64Range(0, 5).Draw(t, "m"),
			Shape:      improvement.Shape(rapid.IntRange(0, 1).Draw(t, "shape")),
		}
		prev := 0.0
		for stars := 0; stars <= 10; stars++ {
			v := improvement.Apply(f, stars)
			if v < prev {
				t.Fatalf("Apply decreased at %d stars", stars)
			}
			prev = v
		}
	})
}

func TestResolve_LargeCaliberShelling(t *testing.T) {
	g := &master.MasterGear{ID: 9, Category: master.LargeMainGun, GearStats: master.GearStats{Firepower: 26}}
	g.Attrs = master.GearMainGun | master.GearLargeCaliberGun
	table := improvement.Resolve(g)
	require.Contains(t, table, improvement.ShellingPower)
	assert.Equal(t, &improvement.Formula{Multiplier: 1.5, Shape: improvement.Sqrt}, table[improvement.ShellingPower])
	assert.InDelta(t, 1.5*math.Sqrt(10), table.At(10).Get(improvement.ShellingPower), 1e-9)
}

func TestResolve_TorpedoBomberShellingIsLinear(t *testing.T) {
	g := &master.MasterGear{ID: 16, Category: master.CbTorpedoBomber, GearStats: master.GearStats{Torpedo: 5}}
	table := improvement.Resolve(g)
	assert.InDelta(t, 2.0, table.At(10).Get(improvement.ShellingPower), 1e-9)
	assert.NotContains(t, table, improvement.NightPower)
}

func TestResolve_SmallGunHasNoFirepowerOverride(t *testing.T) {
	g := &master.MasterGear{ID: 2, Category: master.SmallMainGun, GearStats: master.GearStats{Firepower: 2}}
	g.Attrs = master.GearMainGun
	table := improvement.Resolve(g)
	assert.InDelta(t, 2.0, table.At(4).Get(improvement.ShellingPower), 1e-9)
	assert.InDelta(t, 2.0, table.At(4).Get(improvement.ShellingAccuracy), 1e-9)
	assert.InDelta(t, 2.0, table.At(4).Get(improvement.NightPower), 1e-9)
	assert.Equal(t, 0.0, table.At(4).Get(improvement.TorpedoPower))
}

func TestResolve_AntiAirGunThreshold(t *testing.T) {
	weak := &master.MasterGear{ID: 37, Category: master.AntiAirGun, Attrs: master.GearAntiAirGun, GearStats: master.GearStats{AntiAir: 2}}
	strong := &master.MasterGear{ID: 131, Category: master.AntiAirGun, Attrs: master.GearAntiAirGun, GearStats: master.GearStats{AntiAir: 9}}
	assert.InDelta(t, 2*math.Sqrt(4), improvement.Resolve(weak).At(4).Get(improvement.AdjustedAntiAir), 1e-9)
	assert.InDelta(t, 3*math.Sqrt(4), improvement.Resolve(strong).At(4).Get(improvement.AdjustedAntiAir), 1e-9)
}

func TestResolver_OverridesReplaceChains(t *testing.T) {
	r, err := improvement.NewResolver(map[int]map[string]master.FormulaRecord{
		2: {
			"shelling_power":  {Multiplier: 0.5, Shape: "linear"},
			"night_power":     {Multiplier: 0},
			"torpedo_evasion": {Multiplier: 1, Shape: "sqrt"},
		},
	})
	require.NoError(t, err)
	g := &master.MasterGear{ID: 2, Category: master.SmallMainGun, Attrs: master.GearMainGun}
	b := r.Resolve(g).At(4)
	assert.InDelta(t, 2.0, b.Get(improvement.ShellingPower), 1e-9)
	assert.Equal(t, 0.0, b.Get(improvement.NightPower))
	assert.InDelta(t, 2.0, b.Get(improvement.TorpedoEvasion), 1e-9)
	// accuracy comes from the chain
	assert.InDelta(t, 2.0, b.Get(improvement.ShellingAccuracy), 1e-9)
}

func TestNewResolver_RejectsUnknownKindOrShape(t *testing.T) {
	_, err := improvement.NewResolver(map[int]map[string]master.FormulaRecord{1: {"laser": {Multiplier: 1}}})
	assert.Error(t, err)
	_, err = improvement.NewResolver(map[int]map[string]master.FormulaRecord{1: {"night_power": {Multiplier: 1, Shape: "cubic"}}})
	assert.Error(t, err)
}

func TestNilResolver_UsesChains(t *testing.T) {
	var r *improvement.Resolver
	g := &master.MasterGear{ID: 14, Category: master.Torpedo, Attrs: master.GearTorpedo}
	assert.Contains(t, r.Resolve(g), improvement.TorpedoAccuracy)
}

func TestKind_RoundTrip(t *testing.T) {
	for _, k := range improvement.Kinds() {
		got, ok := improvement.ParseKind(k.String())
		require.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}
	assert.Len(t, improvement.Kinds(), 15)
}

func TestFormula_RecordRoundTrip(t *testing.T) {
	f := improvement.Formula{Multiplier: 1.25, Shape: improvement.Sqrt}
	back, err := improvement.FromRecord(f.Record())
	require.NoError(t, err)
	assert.Equal(t, f, *back)
}
